package care

import (
	"context"
	"database/sql"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/model"
	apperrors "github.com/HarshaPerabathula/backend-hcl-wellness/pkg/errors"
)

type fakeCareRepo struct {
	items map[uuid.UUID]*model.PreventiveCare
}

func newFakeCareRepo() *fakeCareRepo {
	return &fakeCareRepo{items: make(map[uuid.UUID]*model.PreventiveCare)}
}

func (f *fakeCareRepo) Create(_ context.Context, item *model.PreventiveCare) error {
	if item.Reminders == nil {
		item.Reminders = model.CareReminders{}
	}
	f.items[item.ID] = item
	return nil
}

func (f *fakeCareRepo) ListForPatient(_ context.Context, patientID uuid.UUID) ([]*model.PreventiveCare, error) {
	var out []*model.PreventiveCare
	for _, it := range f.items {
		if it.PatientID == patientID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledDate.Before(out[j].ScheduledDate) })
	return out, nil
}

func (f *fakeCareRepo) ListUpcoming(_ context.Context, patientID uuid.UUID, from time.Time, limit int) ([]*model.PreventiveCare, error) {
	all, _ := f.ListForPatient(context.Background(), patientID)
	var out []*model.PreventiveCare
	for _, it := range all {
		if it.Status == model.CareStatusScheduled && !it.ScheduledDate.Before(from) {
			out = append(out, it)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeCareRepo) ListOverdueScheduled(_ context.Context, patientID uuid.UUID, asOf time.Time) ([]*model.PreventiveCare, error) {
	var out []*model.PreventiveCare
	for _, it := range f.items {
		if it.PatientID == patientID && it.Status == model.CareStatusScheduled && it.ScheduledDate.Before(asOf) {
			snapshot := *it
			out = append(out, &snapshot)
		}
	}
	return out, nil
}

func (f *fakeCareRepo) MarkOverdue(_ context.Context, patientID uuid.UUID, asOf time.Time) (int64, error) {
	var n int64
	for _, it := range f.items {
		if it.PatientID == patientID && it.Status == model.CareStatusScheduled && it.ScheduledDate.Before(asOf) {
			it.Status = model.CareStatusOverdue
			n++
		}
	}
	return n, nil
}

func (f *fakeCareRepo) CompleteForPatient(_ context.Context, id, patientID uuid.UUID, completedDate time.Time, notes string) (*model.PreventiveCare, error) {
	it, ok := f.items[id]
	if !ok || it.PatientID != patientID {
		return nil, sql.ErrNoRows
	}
	return f.complete(it, completedDate, notes), nil
}

func (f *fakeCareRepo) CompleteForProvider(_ context.Context, id, providerID uuid.UUID, completedDate time.Time, notes string) (*model.PreventiveCare, error) {
	it, ok := f.items[id]
	if !ok || it.ProviderID == nil || *it.ProviderID != providerID {
		return nil, sql.ErrNoRows
	}
	return f.complete(it, completedDate, notes), nil
}

func (f *fakeCareRepo) complete(it *model.PreventiveCare, completedDate time.Time, notes string) *model.PreventiveCare {
	it.Status = model.CareStatusCompleted
	it.CompletedDate = &completedDate
	if notes != "" {
		it.Notes = notes
	}
	return it
}

func (f *fakeCareRepo) Reschedule(_ context.Context, id, patientID uuid.UUID, newDate time.Time) (*model.PreventiveCare, error) {
	it, ok := f.items[id]
	if !ok || it.PatientID != patientID {
		return nil, sql.ErrNoRows
	}
	it.ScheduledDate = newDate
	it.Status = model.CareStatusScheduled
	it.CompletedDate = nil
	return it, nil
}

func (f *fakeCareRepo) ListDueForReminder(_ context.Context, from, to time.Time) ([]*model.PreventiveCare, error) {
	var out []*model.PreventiveCare
	for _, it := range f.items {
		if it.Status == model.CareStatusScheduled && len(it.Reminders) == 0 &&
			!it.ScheduledDate.Before(from) && !it.ScheduledDate.After(to) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeCareRepo) AppendReminder(_ context.Context, id uuid.UUID, reminder model.CareReminder) error {
	it, ok := f.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	it.Reminders = append(it.Reminders, reminder)
	return nil
}

type fakeAccountRepo struct {
	accounts map[uuid.UUID]*model.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uuid.UUID]*model.Account)}
}

func (f *fakeAccountRepo) Create(_ context.Context, a *model.Account) error {
	f.accounts[a.ID] = a
	return nil
}

func (f *fakeAccountRepo) Get(_ context.Context, id uuid.UUID) (*model.Account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return a, nil
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	for _, a := range f.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAccountRepo) Update(_ context.Context, a *model.Account) error {
	f.accounts[a.ID] = a
	return nil
}

func (f *fakeAccountRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	if a, ok := f.accounts[id]; ok {
		a.LastLogin = &at
	}
	return nil
}

func (f *fakeAccountRepo) SetConsent(_ context.Context, id uuid.UUID, given bool) error {
	if a, ok := f.accounts[id]; ok {
		a.ConsentGiven = given
	}
	return nil
}

func (f *fakeAccountRepo) GetAssignedPatient(_ context.Context, patientID, providerID uuid.UUID) (*model.Account, error) {
	a, ok := f.accounts[patientID]
	if !ok || a.Role != model.RolePatient || a.PatientInfo == nil ||
		a.PatientInfo.AssignedProvider == nil || *a.PatientInfo.AssignedProvider != providerID {
		return nil, sql.ErrNoRows
	}
	return a, nil
}

func (f *fakeAccountRepo) ListPatientsForProvider(_ context.Context, providerID uuid.UUID) ([]*model.Account, error) {
	var out []*model.Account
	for _, a := range f.accounts {
		if a.Role == model.RolePatient && a.PatientInfo != nil &&
			a.PatientInfo.AssignedProvider != nil && *a.PatientInfo.AssignedProvider == providerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func newTestPatient(providerID *uuid.UUID) *model.Account {
	return &model.Account{
		Base:  model.Base{ID: uuid.New()},
		Email: "patient@example.com",
		Role:  model.RolePatient,
		PatientInfo: &model.PatientInfo{
			AssignedProvider: providerID,
			Allergies:        []string{},
			Medications:      []string{},
		},
		IsActive: true,
	}
}

func TestBookDefaultsToAssignedProvider(t *testing.T) {
	providerID := uuid.New()
	patient := newTestPatient(&providerID)

	accounts := newFakeAccountRepo()
	accounts.accounts[patient.ID] = patient
	repo := newFakeCareRepo()
	svc := NewService(repo, accounts, nil, nil)

	booked, err := svc.Book(context.Background(), patient.ID, &model.BookCareRequest{
		CareType:      model.CareAnnualCheckup,
		ScheduledDate: time.Now().AddDate(0, 0, 14),
	})
	require.NoError(t, err)

	require.NotNil(t, booked.ProviderID)
	assert.Equal(t, providerID, *booked.ProviderID)
	assert.Equal(t, model.CareStatusScheduled, booked.Status)
	assert.Equal(t, model.PriorityMedium, booked.Priority)
}

func TestBookWithExplicitProvider(t *testing.T) {
	patient := newTestPatient(nil)
	accounts := newFakeAccountRepo()
	accounts.accounts[patient.ID] = patient
	svc := NewService(newFakeCareRepo(), accounts, nil, nil)

	explicit := uuid.New()
	booked, err := svc.Book(context.Background(), patient.ID, &model.BookCareRequest{
		CareType:      model.CareVaccination,
		ScheduledDate: time.Now().AddDate(0, 1, 0),
		ProviderID:    &explicit,
		Priority:      model.PriorityHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, explicit, *booked.ProviderID)
	assert.Equal(t, model.PriorityHigh, booked.Priority)
}

func TestOverdueSweepFlipsPastScheduledItems(t *testing.T) {
	patient := newTestPatient(nil)
	accounts := newFakeAccountRepo()
	accounts.accounts[patient.ID] = patient
	repo := newFakeCareRepo()
	svc := NewService(repo, accounts, nil, nil)

	past, err := svc.Book(context.Background(), patient.ID, &model.BookCareRequest{
		CareType:      model.CareAnnualCheckup,
		ScheduledDate: time.Now().AddDate(0, 0, -1),
	})
	require.NoError(t, err)

	future, err := svc.Book(context.Background(), patient.ID, &model.BookCareRequest{
		CareType:      model.CareBloodTest,
		ScheduledDate: time.Now().AddDate(0, 0, 7),
	})
	require.NoError(t, err)

	overdue, err := svc.ListOverdue(context.Background(), patient.ID)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, past.ID, overdue[0].ID)

	// The stored statuses flipped, the future item is untouched.
	assert.Equal(t, model.CareStatusOverdue, repo.items[past.ID].Status)
	assert.Equal(t, model.CareStatusScheduled, repo.items[future.ID].Status)
}

func TestCompleteAfterOverdueKeepsCompletion(t *testing.T) {
	patient := newTestPatient(nil)
	accounts := newFakeAccountRepo()
	accounts.accounts[patient.ID] = patient
	repo := newFakeCareRepo()
	svc := NewService(repo, accounts, nil, nil)

	item, err := svc.Book(context.Background(), patient.ID, &model.BookCareRequest{
		CareType:      model.CareAnnualCheckup,
		ScheduledDate: time.Now().AddDate(0, 0, -2),
	})
	require.NoError(t, err)

	_, err = svc.ListOverdue(context.Background(), patient.ID)
	require.NoError(t, err)

	done, err := svc.Complete(context.Background(), item.ID, patient.ID, model.RolePatient, &model.CompleteCareRequest{})
	require.NoError(t, err)
	assert.Equal(t, model.CareStatusCompleted, done.Status)
	require.NotNil(t, done.CompletedDate)

	// A second sweep must not resurrect the completed item.
	again, err := svc.ListOverdue(context.Background(), patient.ID)
	require.NoError(t, err)
	assert.Empty(t, again)
	assert.Equal(t, model.CareStatusCompleted, repo.items[item.ID].Status)
}

func TestCompleteOwnership(t *testing.T) {
	providerID := uuid.New()
	patient := newTestPatient(&providerID)
	accounts := newFakeAccountRepo()
	accounts.accounts[patient.ID] = patient
	repo := newFakeCareRepo()
	svc := NewService(repo, accounts, nil, nil)

	item, err := svc.Book(context.Background(), patient.ID, &model.BookCareRequest{
		CareType:      model.CareBloodTest,
		ScheduledDate: time.Now().AddDate(0, 0, 3),
	})
	require.NoError(t, err)

	// A stranger patient cannot complete it; a missing item looks the same.
	_, err = svc.Complete(context.Background(), item.ID, uuid.New(), model.RolePatient, &model.CompleteCareRequest{})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	// The assigned provider matches on the provider column.
	done, err := svc.Complete(context.Background(), item.ID, providerID, model.RoleProvider, &model.CompleteCareRequest{Notes: "all clear"})
	require.NoError(t, err)
	assert.Equal(t, model.CareStatusCompleted, done.Status)
	assert.Equal(t, "all clear", done.Notes)
}

func TestRescheduleReactivatesOverdueItem(t *testing.T) {
	patient := newTestPatient(nil)
	accounts := newFakeAccountRepo()
	accounts.accounts[patient.ID] = patient
	repo := newFakeCareRepo()
	svc := NewService(repo, accounts, nil, nil)

	item, err := svc.Book(context.Background(), patient.ID, &model.BookCareRequest{
		CareType:      model.CareAnnualCheckup,
		ScheduledDate: time.Now().AddDate(0, 0, -5),
	})
	require.NoError(t, err)

	_, err = svc.ListOverdue(context.Background(), patient.ID)
	require.NoError(t, err)
	require.Equal(t, model.CareStatusOverdue, repo.items[item.ID].Status)

	newDate := time.Now().AddDate(0, 0, 10)
	moved, err := svc.Reschedule(context.Background(), patient.ID, &model.RescheduleCareRequest{
		AppointmentID: item.ID,
		NewDate:       newDate,
	})
	require.NoError(t, err)
	assert.Equal(t, model.CareStatusScheduled, moved.Status)
	assert.True(t, moved.ScheduledDate.Equal(newDate))
}

func TestRescheduleUnknownAppointment(t *testing.T) {
	patient := newTestPatient(nil)
	accounts := newFakeAccountRepo()
	accounts.accounts[patient.ID] = patient
	svc := NewService(newFakeCareRepo(), accounts, nil, nil)

	_, err := svc.Reschedule(context.Background(), patient.ID, &model.RescheduleCareRequest{
		AppointmentID: uuid.New(),
		NewDate:       time.Now().AddDate(0, 0, 1),
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

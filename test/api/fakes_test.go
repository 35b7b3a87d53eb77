package api_test

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/model"
	apperrors "github.com/HarshaPerabathula/backend-hcl-wellness/pkg/errors"
)

// In-memory repositories backing the API under test. They mirror the
// ownership and uniqueness semantics of the Postgres implementations.

type memAccountRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*model.Account
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{accounts: make(map[uuid.UUID]*model.Account)}
}

func (r *memAccountRepo) Create(_ context.Context, a *model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if existing.Email == a.Email {
			return apperrors.Conflict("email already registered", nil)
		}
	}
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	r.accounts[a.ID] = a
	return nil
}

func (r *memAccountRepo) Get(_ context.Context, id uuid.UUID) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return a, nil
}

func (r *memAccountRepo) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memAccountRepo) Update(_ context.Context, a *model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.UpdatedAt = time.Now()
	r.accounts[a.ID] = a
	return nil
}

func (r *memAccountRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.accounts[id]; ok {
		a.LastLogin = &at
	}
	return nil
}

func (r *memAccountRepo) SetConsent(_ context.Context, id uuid.UUID, given bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.accounts[id]; ok {
		a.ConsentGiven = given
	}
	return nil
}

func (r *memAccountRepo) GetAssignedPatient(_ context.Context, patientID, providerID uuid.UUID) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[patientID]
	if !ok || a.Role != model.RolePatient || a.PatientInfo == nil ||
		a.PatientInfo.AssignedProvider == nil || *a.PatientInfo.AssignedProvider != providerID {
		return nil, sql.ErrNoRows
	}
	return a, nil
}

func (r *memAccountRepo) ListPatientsForProvider(_ context.Context, providerID uuid.UUID) ([]*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Account
	for _, a := range r.accounts {
		if a.Role == model.RolePatient && a.PatientInfo != nil &&
			a.PatientInfo.AssignedProvider != nil && *a.PatientInfo.AssignedProvider == providerID {
			out = append(out, a)
		}
	}
	return out, nil
}

// assign wires a patient to a provider directly in the store, standing in for
// the out-of-band onboarding flow.
func (r *memAccountRepo) assign(patientID, providerID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.accounts[patientID]; ok && a.PatientInfo != nil {
		a.PatientInfo.AssignedProvider = &providerID
	}
}

type memGoalRepo struct {
	mu       sync.Mutex
	goals    map[uuid.UUID]*model.WellnessGoal
	progress *memProgressRepo
}

func newMemGoalRepo(progress *memProgressRepo) *memGoalRepo {
	return &memGoalRepo{goals: make(map[uuid.UUID]*model.WellnessGoal), progress: progress}
}

func (r *memGoalRepo) Create(_ context.Context, g *model.WellnessGoal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g.CreatedAt = time.Now()
	g.UpdatedAt = g.CreatedAt
	r.goals[g.ID] = g
	return nil
}

func (r *memGoalRepo) Get(_ context.Context, id uuid.UUID) (*model.WellnessGoal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.goals[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return g, nil
}

func (r *memGoalRepo) GetForPatient(_ context.Context, id, patientID uuid.UUID) (*model.WellnessGoal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.goals[id]
	if !ok || g.PatientID != patientID {
		return nil, sql.ErrNoRows
	}
	return g, nil
}

func (r *memGoalRepo) GetForProvider(_ context.Context, id, providerID uuid.UUID) (*model.WellnessGoal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.goals[id]
	if !ok || g.AssignedBy != providerID {
		return nil, sql.ErrNoRows
	}
	return g, nil
}

func (r *memGoalRepo) Update(_ context.Context, g *model.WellnessGoal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g.UpdatedAt = time.Now()
	r.goals[g.ID] = g
	return nil
}

func (r *memGoalRepo) UpdateAggregates(_ context.Context, id uuid.UUID, progress model.GoalProgress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.goals[id]; ok {
		g.Progress = progress
	}
	return nil
}

func (r *memGoalRepo) ListActive(_ context.Context, patientID uuid.UUID) ([]*model.WellnessGoal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.WellnessGoal
	for _, g := range r.goals {
		if g.PatientID == patientID && g.Status == model.GoalStatusActive {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *memGoalRepo) ListForPatient(_ context.Context, patientID uuid.UUID) ([]*model.WellnessGoal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.WellnessGoal
	for _, g := range r.goals {
		if g.PatientID == patientID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *memGoalRepo) DeleteCascade(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	delete(r.goals, id)
	r.mu.Unlock()
	r.progress.deleteForGoal(id)
	return nil
}

type progressKey struct {
	patient uuid.UUID
	goal    uuid.UUID
	date    time.Time
}

type memProgressRepo struct {
	mu   sync.Mutex
	rows map[progressKey]*model.DailyProgress
}

func newMemProgressRepo() *memProgressRepo {
	return &memProgressRepo{rows: make(map[progressKey]*model.DailyProgress)}
}

func (r *memProgressRepo) Upsert(_ context.Context, rec *model.DailyProgress) (*model.DailyProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := progressKey{patient: rec.PatientID, goal: rec.GoalID, date: rec.Date}
	if existing, ok := r.rows[key]; ok {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
	} else {
		rec.CreatedAt = time.Now()
	}
	rec.UpdatedAt = time.Now()
	r.rows[key] = rec
	return rec, nil
}

func (r *memProgressRepo) ListForGoal(_ context.Context, goalID uuid.UUID) ([]*model.DailyProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.DailyProgress
	for _, row := range r.rows {
		if row.GoalID == goalID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *memProgressRepo) RecentForGoal(ctx context.Context, goalID uuid.UUID, limit int) ([]*model.DailyProgress, error) {
	rows, _ := r.ListForGoal(ctx, goalID)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.After(rows[j].Date) })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *memProgressRepo) List(_ context.Context, filter *model.ProgressFilter) ([]*model.DailyProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.DailyProgress
	for _, row := range r.rows {
		if row.PatientID != filter.PatientID {
			continue
		}
		if filter.GoalID != nil && row.GoalID != *filter.GoalID {
			continue
		}
		if filter.StartDate != nil && row.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && row.Date.After(*filter.EndDate) {
			continue
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *memProgressRepo) ListForPatientOnDate(_ context.Context, patientID uuid.UUID, date time.Time) ([]*model.DailyProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	day := model.Midnight(date)
	var out []*model.DailyProgress
	for _, row := range r.rows {
		if row.PatientID == patientID && row.Date.Equal(day) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *memProgressRepo) deleteForGoal(goalID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, row := range r.rows {
		if row.GoalID == goalID {
			delete(r.rows, key)
		}
	}
}

type memCareRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*model.PreventiveCare
}

func newMemCareRepo() *memCareRepo {
	return &memCareRepo{items: make(map[uuid.UUID]*model.PreventiveCare)}
}

func (r *memCareRepo) Create(_ context.Context, item *model.PreventiveCare) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.Reminders == nil {
		item.Reminders = model.CareReminders{}
	}
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	r.items[item.ID] = item
	return nil
}

func (r *memCareRepo) ListForPatient(_ context.Context, patientID uuid.UUID) ([]*model.PreventiveCare, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.PreventiveCare
	for _, it := range r.items {
		if it.PatientID == patientID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledDate.Before(out[j].ScheduledDate) })
	return out, nil
}

func (r *memCareRepo) ListUpcoming(ctx context.Context, patientID uuid.UUID, from time.Time, limit int) ([]*model.PreventiveCare, error) {
	all, _ := r.ListForPatient(ctx, patientID)
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

func (r *memCareRepo) ListOverdueScheduled(_ context.Context, patientID uuid.UUID, asOf time.Time) ([]*model.PreventiveCare, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.PreventiveCare
	for _, it := range r.items {
		if it.PatientID == patientID && it.Status == model.CareStatusScheduled && it.ScheduledDate.Before(asOf) {
			snapshot := *it
			out = append(out, &snapshot)
		}
	}
	return out, nil
}

func (r *memCareRepo) MarkOverdue(_ context.Context, patientID uuid.UUID, asOf time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, it := range r.items {
		if it.PatientID == patientID && it.Status == model.CareStatusScheduled && it.ScheduledDate.Before(asOf) {
			it.Status = model.CareStatusOverdue
			n++
		}
	}
	return n, nil
}

func (r *memCareRepo) CompleteForPatient(_ context.Context, id, patientID uuid.UUID, completedDate time.Time, notes string) (*model.PreventiveCare, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok || it.PatientID != patientID {
		return nil, sql.ErrNoRows
	}
	return completeCare(it, completedDate, notes), nil
}

func (r *memCareRepo) CompleteForProvider(_ context.Context, id, providerID uuid.UUID, completedDate time.Time, notes string) (*model.PreventiveCare, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok || it.ProviderID == nil || *it.ProviderID != providerID {
		return nil, sql.ErrNoRows
	}
	return completeCare(it, completedDate, notes), nil
}

func completeCare(it *model.PreventiveCare, completedDate time.Time, notes string) *model.PreventiveCare {
	it.Status = model.CareStatusCompleted
	it.CompletedDate = &completedDate
	if notes != "" {
		it.Notes = notes
	}
	it.UpdatedAt = time.Now()
	return it
}

func (r *memCareRepo) Reschedule(_ context.Context, id, patientID uuid.UUID, newDate time.Time) (*model.PreventiveCare, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok || it.PatientID != patientID {
		return nil, sql.ErrNoRows
	}
	it.ScheduledDate = newDate
	it.Status = model.CareStatusScheduled
	it.CompletedDate = nil
	it.UpdatedAt = time.Now()
	return it, nil
}

func (r *memCareRepo) ListDueForReminder(_ context.Context, from, to time.Time) ([]*model.PreventiveCare, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.PreventiveCare
	for _, it := range r.items {
		if it.Status == model.CareStatusScheduled && len(it.Reminders) == 0 &&
			!it.ScheduledDate.Before(from) && !it.ScheduledDate.After(to) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *memCareRepo) AppendReminder(_ context.Context, id uuid.UUID, reminder model.CareReminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	it.Reminders = append(it.Reminders, reminder)
	return nil
}

type metricsKey struct {
	patient uuid.UUID
	date    time.Time
}

type memHealthMetricsRepo struct {
	mu   sync.Mutex
	rows map[metricsKey]*model.HealthMetrics
}

func newMemHealthMetricsRepo() *memHealthMetricsRepo {
	return &memHealthMetricsRepo{rows: make(map[metricsKey]*model.HealthMetrics)}
}

func (r *memHealthMetricsRepo) Upsert(_ context.Context, rec *model.HealthMetrics) (*model.HealthMetrics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := metricsKey{patient: rec.PatientID, date: rec.Date}
	if existing, ok := r.rows[key]; ok {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
	} else {
		rec.CreatedAt = time.Now()
	}
	rec.UpdatedAt = time.Now()
	r.rows[key] = rec
	return rec, nil
}

func (r *memHealthMetricsRepo) List(_ context.Context, patientID uuid.UUID, from, to *time.Time) ([]*model.HealthMetrics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.HealthMetrics
	for _, rec := range r.rows {
		if rec.PatientID != patientID {
			continue
		}
		if from != nil && rec.Date.Before(*from) {
			continue
		}
		if to != nil && rec.Date.After(*to) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

type memTipRepo struct {
	mu   sync.Mutex
	tips []*model.HealthTip
}

func (r *memTipRepo) Create(_ context.Context, tip *model.HealthTip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tip.CreatedAt = time.Now()
	tip.UpdatedAt = tip.CreatedAt
	r.tips = append(r.tips, tip)
	return nil
}

func (r *memTipRepo) ListActive(_ context.Context, category *model.TipCategory) ([]*model.HealthTip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.HealthTip
	for _, t := range r.tips {
		if !t.IsActive {
			continue
		}
		if category != nil && t.Category != *category {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

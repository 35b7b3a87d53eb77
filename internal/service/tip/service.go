package tip

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"

	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/model"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/repository"
)

const (
	activeTipsCacheKey = "tips:active"
	cacheTTL           = 5 * time.Minute
	cacheCleanup       = 15 * time.Minute
)

// Service serves editorial health tips. The active list is cached: tips
// change rarely and every dashboard load wants one.
type Service struct {
	repo  repository.TipRepository
	cache *cache.Cache
}

func NewService(repo repository.TipRepository) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(cacheTTL, cacheCleanup),
	}
}

func (s *Service) Create(ctx context.Context, createdBy uuid.UUID, req *model.CreateTipRequest) (*model.HealthTip, error) {
	tip := &model.HealthTip{
		Base:        model.Base{ID: uuid.New()},
		Title:       req.Title,
		Content:     req.Content,
		Category:    req.Category,
		IsActive:    true,
		PublishDate: time.Now(),
		CreatedBy:   &createdBy,
	}

	if err := s.repo.Create(ctx, tip); err != nil {
		return nil, err
	}

	s.cache.Delete(activeTipsCacheKey)
	return tip, nil
}

// ListActive returns active tips, optionally filtered by category. Only the
// unfiltered list is cached.
func (s *Service) ListActive(ctx context.Context, category *model.TipCategory) ([]*model.HealthTip, error) {
	if category != nil {
		return s.repo.ListActive(ctx, category)
	}

	if cached, ok := s.cache.Get(activeTipsCacheKey); ok {
		return cached.([]*model.HealthTip), nil
	}

	tips, err := s.repo.ListActive(ctx, nil)
	if err != nil {
		return nil, err
	}

	s.cache.Set(activeTipsCacheKey, tips, cache.DefaultExpiration)
	return tips, nil
}

// RandomActive picks one active tip for the dashboard, or nil when none
// exist.
func (s *Service) RandomActive(ctx context.Context) (*model.HealthTip, error) {
	tips, err := s.ListActive(ctx, nil)
	if err != nil {
		return nil, err
	}
	if len(tips) == 0 {
		return nil, nil
	}
	return tips[rand.Intn(len(tips))], nil
}

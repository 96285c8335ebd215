package catalog

import (
	"context"
	"time"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/cache"
)

const (
	servicesKey = "landing:services"
	servicesTTL = time.Hour
)

// Service serves the landing-page reference catalogs through the
// cache; the four tables change rarely and are read on every landing
// view.
type Service struct {
	repo  CatalogRepository
	cache *cache.Cache
}

func NewService(repo CatalogRepository, c *cache.Cache) *Service {
	return &Service{repo: repo, cache: c}
}

func (s *Service) LandingServices(ctx context.Context) (*domain.LandingServices, error) {
	var out domain.LandingServices
	err := s.cache.GetOrCompute(ctx, servicesKey, servicesTTL, &out, func(ctx context.Context) (any, error) {
		return s.repo.ListAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh drops the cached catalogs; the next read recomputes.
func (s *Service) Refresh(ctx context.Context) error {
	return s.cache.Forget(ctx, servicesKey)
}

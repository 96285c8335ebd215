package catalog

import (
	"context"

	"tutorhub/internal/domain"
)

type CatalogRepository interface {
	ListAll(ctx context.Context) (*domain.LandingServices, error)
}

package repository

import (
	"context"

	"tutorhub/internal/domain"

	"gorm.io/gorm"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListAll loads the four reference catalogs in one go; the catalog
// service caches the combined payload.
func (r *CatalogRepository) ListAll(ctx context.Context) (*domain.LandingServices, error) {
	out := &domain.LandingServices{}

	if err := r.db.WithContext(ctx).Order("name").Find(&out.ProctoredExams).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Order("name").Find(&out.OnlineExams).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Order("name").Find(&out.AtiModules).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Order("name").Find(&out.OnlineClasses).Error; err != nil {
		return nil, err
	}
	return out, nil
}

package repository

import (
	"context"
	"errors"

	"tutorhub/internal/domain"

	"gorm.io/gorm"
)

var ErrDuplicateSlug = errors.New("slug already in use")

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateSlug
		}
		return err
	}
	return nil
}

func (r *PostRepository) Update(ctx context.Context, p *domain.Post) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Post{}, id).Error
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	var p domain.Post
	tx := r.db.WithContext(ctx).First(&p, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

func (r *PostRepository) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	var p domain.Post
	tx := r.db.WithContext(ctx).Where("slug = ?", slug).First(&p)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

func (r *PostRepository) ListNewest(ctx context.Context) ([]domain.Post, error) {
	var posts []domain.Post
	tx := r.db.WithContext(ctx).Order("created_at DESC").Find(&posts)
	return posts, tx.Error
}

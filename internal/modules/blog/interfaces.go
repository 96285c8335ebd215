package blog

import (
	"context"

	"tutorhub/internal/domain"
)

type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) error
	Update(ctx context.Context, p *domain.Post) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Post, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Post, error)
	ListNewest(ctx context.Context) ([]domain.Post, error)
}

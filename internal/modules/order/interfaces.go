package order

import (
	"context"

	"tutorhub/internal/domain"
)

type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByOwner(ctx context.Context, ownerID int64, status string, page, limit int) ([]domain.Order, int64, error)
}

type MessageLister interface {
	ListByOrder(ctx context.Context, orderID int64) ([]domain.Message, error)
}

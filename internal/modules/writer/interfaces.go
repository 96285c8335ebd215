package writer

import (
	"context"

	"tutorhub/internal/domain"
)

type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListAvailable(ctx context.Context) ([]domain.Order, error)
	ListByWriter(ctx context.Context, writerID int64, statuses ...domain.OrderStatus) ([]domain.Order, error)
	CountByWriter(ctx context.Context, writerID int64) (int64, error)
	CountAvailable(ctx context.Context) (int64, error)
	Claim(ctx context.Context, orderID, writerID int64) (bool, error)
	UpdateStatusByWriter(ctx context.Context, orderID, writerID int64, from, to domain.OrderStatus, extra map[string]any) (bool, error)
}

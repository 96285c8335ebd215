package message

import (
	"context"
	"time"

	"tutorhub/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	ListByOrder(ctx context.Context, orderID int64) ([]domain.Message, error)
	LatestSince(ctx context.Context, orderID int64, since time.Time) (*domain.Message, error)
}

type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListConversations(ctx context.Context, ownerID int64) ([]domain.Order, error)
}

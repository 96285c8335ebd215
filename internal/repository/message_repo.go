package repository

import (
	"context"
	"errors"
	"time"

	"tutorhub/internal/domain"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// ListByOrder returns the full thread, oldest first.
func (r *MessageRepository) ListByOrder(ctx context.Context, orderID int64) ([]domain.Message, error) {
	var msgs []domain.Message
	tx := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&msgs)
	return msgs, tx.Error
}

// LatestSince returns the newest message created after the watermark,
// or nil when nothing new exists.
func (r *MessageRepository) LatestSince(ctx context.Context, orderID int64, since time.Time) (*domain.Message, error) {
	var m domain.Message
	tx := r.db.WithContext(ctx).
		Where("order_id = ? AND created_at > ?", orderID, since).
		Order("created_at DESC").
		First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &m, nil
}

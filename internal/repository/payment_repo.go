package repository

import (
	"context"
	"errors"

	"tutorhub/internal/domain"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.PendingPayment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// GetPending returns the user's pending descriptor for a provider
// payment id, or nil when none exists.
func (r *PaymentRepository) GetPending(ctx context.Context, userID int64) (*domain.PendingPayment, error) {
	var p domain.PendingPayment
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, domain.PendingPaymentCreated).
		Order("created_at DESC").
		First(&p)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &p, nil
}

// Consume flips a pending row to completed; the conditional update
// makes the confirmation one-shot, so a replayed callback cannot credit
// the wallet twice.
func (r *PaymentRepository) Consume(ctx context.Context, providerID string, userID int64) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&domain.PendingPayment{}).
		Where("provider_id = ? AND user_id = ? AND status = ?", providerID, userID, domain.PendingPaymentCreated).
		Update("status", domain.PendingPaymentCompleted)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

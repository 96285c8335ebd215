package domain

import "time"

type PendingPaymentStatus string

const (
	PendingPaymentCreated   PendingPaymentStatus = "pending"
	PendingPaymentCompleted PendingPaymentStatus = "completed"
)

// PendingPayment tracks an initiated wallet top-up between the redirect
// to the provider and the success callback. A row is consumed exactly
// once; a replayed callback finds no pending row.
type PendingPayment struct {
	ID         int64                `json:"id"`
	UserID     int64                `json:"user_id" gorm:"index"`
	ProviderID string               `json:"provider_id" gorm:"uniqueIndex"`
	Amount     float64              `json:"amount"`
	Status     PendingPaymentStatus `json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

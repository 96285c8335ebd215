package payment

import (
	"context"

	"tutorhub/internal/domain"
)

// CreatedPayment is what the provider hands back when a payment is
// initiated: its identifier and where to send the payer.
type CreatedPayment struct {
	ID          string
	ApprovalURL string
}

// ExecutedPayment is the provider's capture confirmation.
type ExecutedPayment struct {
	ID     string
	State  string
	Amount float64
}

// Provider is the payment gateway seam. The real implementation talks
// to PayPal; tests swap in a fake.
type Provider interface {
	CreatePayment(ctx context.Context, amount float64, returnURL, cancelURL string) (*CreatedPayment, error)
	ExecutePayment(ctx context.Context, paymentID, payerID string) (*ExecutedPayment, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.PendingPayment) error
	GetPending(ctx context.Context, userID int64) (*domain.PendingPayment, error)
	Consume(ctx context.Context, providerID string, userID int64) (bool, error)
}

type WalletRepository interface {
	IncrementWallet(ctx context.Context, userID int64, amount float64) error
}

package payment

import (
	"context"

	"tutorhub/internal/domain"
)

type Service struct {
	provider Provider
	payments PaymentRepository
	wallets  WalletRepository
	baseURL  string
}

func NewService(provider Provider, payments PaymentRepository, wallets WalletRepository, baseURL string) *Service {
	return &Service{provider: provider, payments: payments, wallets: wallets, baseURL: baseURL}
}

// StartTopUp initiates a wallet top-up: the payment is created at the
// provider, a pending row records what we expect back, and the caller
// is sent to the approval URL. Nothing is credited here.
func (s *Service) StartTopUp(ctx context.Context, userID int64, amount float64) (string, error) {
	if amount <= 0 {
		return "", ErrInvalidAmount
	}

	created, err := s.provider.CreatePayment(ctx, amount,
		s.baseURL+"/payment/success", s.baseURL+"/payment/cancel")
	if err != nil {
		return "", err
	}

	pending := &domain.PendingPayment{
		UserID:     userID,
		ProviderID: created.ID,
		Amount:     amount,
		Status:     domain.PendingPaymentCreated,
	}
	if err := s.payments.Create(ctx, pending); err != nil {
		return "", err
	}

	return created.ApprovalURL, nil
}

// CompleteTopUp handles the provider's success callback. The callback
// must name exactly the payment we are waiting on; the pending row is
// consumed with a conditional update, so a replayed callback credits
// nothing a second time.
func (s *Service) CompleteTopUp(ctx context.Context, userID int64, paymentID, payerID string) (float64, error) {
	pending, err := s.payments.GetPending(ctx, userID)
	if err != nil {
		return 0, err
	}
	if pending == nil {
		return 0, ErrNoPending
	}
	if pending.ProviderID != paymentID {
		return 0, ErrPaymentMismatch
	}

	if _, err := s.provider.ExecutePayment(ctx, paymentID, payerID); err != nil {
		return 0, err
	}

	consumed, err := s.payments.Consume(ctx, pending.ProviderID, userID)
	if err != nil {
		return 0, err
	}
	if !consumed {
		return 0, ErrAlreadyProcessed
	}

	if err := s.wallets.IncrementWallet(ctx, userID, pending.Amount); err != nil {
		return 0, err
	}
	return pending.Amount, nil
}

package payment

import "errors"

var (
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrNoPending means the success callback arrived with nothing to
	// complete: either it was never started here or it was already
	// consumed.
	ErrNoPending = errors.New("no pending payment")

	// ErrPaymentMismatch is a hard failure: the callback names a
	// different payment than the one we are waiting on. Crediting on a
	// mismatched descriptor is never acceptable.
	ErrPaymentMismatch = errors.New("payment does not match pending top-up")

	ErrAlreadyProcessed = errors.New("payment already processed")
)

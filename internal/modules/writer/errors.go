package writer

import "errors"

var (
	// ErrOrderTaken covers both a lost claim race and a vanished order;
	// the caller cannot tell them apart.
	ErrOrderTaken = errors.New("order is no longer available")

	// ErrNotFound covers a missing order and an order assigned to
	// someone else.
	ErrNotFound = errors.New("order not found or unauthorized")

	ErrBadTransition = errors.New("status transition not allowed")
)

package message

import "errors"

var (
	ErrEmptyMessage = errors.New("message cannot be empty")
	ErrNotFound     = errors.New("order not found")
	ErrForbidden    = errors.New("not authorized for this order")
)

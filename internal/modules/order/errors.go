package order

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("order not found")
	ErrForbidden  = errors.New("not authorized for this order")
)

package admin

import "errors"

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidRole   = errors.New("invalid role")
	ErrNotAWriter    = errors.New("assignee is not a writer")

	// ErrSelfDemotion guards the last admin against locking themselves
	// out of the admin area.
	ErrSelfDemotion = errors.New("cannot change your own role")
)

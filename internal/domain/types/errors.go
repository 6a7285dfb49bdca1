package types

import "errors"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrInvalidLimit   = errors.New("limit must not be negative")
	ErrInvalidSession = errors.New("invalid session")
	ErrNotAdmin       = errors.New("admin role required")
	ErrUserInactive   = errors.New("user is not active")
)

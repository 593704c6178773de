package services

import "errors"

// Operation-level failures surfaced to callers. Storage corruption is the
// one failure class recovered internally (see internal/storage) and never
// shows up here.
var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrEmptyCart              = errors.New("cart is empty, nothing to checkout")
	ErrValidation             = errors.New("validation failed")
)

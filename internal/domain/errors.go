package domain

import "errors"

// Domain errors (no external dependencies). Handlers map these onto the HTTP
// taxonomy: 400 invalid input, 401 unauthenticated, 403 forbidden, 404 not
// found, 409 conflict. Everything else is a 500.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrUsernameTaken     = errors.New("username already in use")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidStatus     = errors.New("invalid shipping status")
	ErrTerminalStatus    = errors.New("order is in a terminal status")
	ErrDuplicateTracking = errors.New("tracking number already in use")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("access denied")
	ErrConflict          = errors.New("conflict with current state")
	ErrHasOrders         = errors.New("user still has shipping orders")
)

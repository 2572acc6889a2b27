package usecase

import "errors"

// Sentinel errors shared by the services. Handlers translate these into
// HTTP statuses with errors.Is; services wrap them with context via %w.
var (
	ErrNotFound             = errors.New("not found")
	ErrInventoryUnavailable = errors.New("no rooms available")
	ErrPastCheckIn          = errors.New("check-in date is in the past")
	ErrAlreadyCancelled     = errors.New("booking already cancelled")
	ErrTerminalState        = errors.New("booking is in a terminal state")
	ErrInvalidStatus        = errors.New("invalid booking status")
	ErrInvalidPrice         = errors.New("invalid room price")
	ErrValidation           = errors.New("validation failed")
	ErrGateway              = errors.New("payment gateway error")
)

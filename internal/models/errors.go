package models

import "errors"

// Error constants for claim and completion-link operations
var (
	ErrSinistroNotFound     = errors.New("sinistro not found")
	ErrNotManagerCreated    = errors.New("sinistro was not created on behalf of a client")
	ErrTokenExpired         = errors.New("completion token expired")
	ErrInvalidToken         = errors.New("invalid completion token")
	ErrInvalidCPF           = errors.New("invalid CPF format")
	ErrInvalidPlate         = errors.New("invalid plate format")
	ErrInvalidClaimType     = errors.New("invalid claim type")
	ErrUnknownStatus        = errors.New("unknown status")
	ErrTerminalStatus       = errors.New("sinistro is in a terminal status")
	ErrInactiveStatus       = errors.New("status is not active")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInactiveUser         = errors.New("user is inactive")
	ErrInsufficientRole     = errors.New("role is not allowed")
	ErrStepIncomplete       = errors.New("current step is incomplete")
	ErrUnknownTransition    = errors.New("no transition for state and event")
)

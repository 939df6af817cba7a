package services

import (
	"errors"

	"okultedarik/internal/repositories"
)

// Lifecycle and workflow errors. All of them leave stored state unchanged.
var (
	ErrInvalidTransition       = errors.New("invalid status transition")
	ErrNotCancellable          = errors.New("order is not cancellable in its current status")
	ErrDuplicatePendingRequest = errors.New("order already has a pending cancellation request")
	ErrAlreadyProcessed        = errors.New("already processed")
	ErrInvalidDecision         = errors.New("decision must be APPROVED or REJECTED")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidInput            = errors.New("invalid input")
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = repositories.ErrNotFound

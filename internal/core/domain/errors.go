package domain

import "errors"

// Sentinel errors shared across workflows. The HTTP layer maps each to a
// deterministic status code in the central error handler.
var (
	ErrMissingCredentials  = errors.New("email and password are required")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailTaken          = errors.New("email already registered")
	ErrUserNotFound        = errors.New("user not found")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrAdminNotFound       = errors.New("no administrator account configured")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrInvalidSlot         = errors.New("invalid date or time format")
	ErrForbidden           = errors.New("access forbidden")
)

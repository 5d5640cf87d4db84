package leads

import "errors"

var (
	// ErrInvalidKind is returned when the lead kind is not a known form.
	ErrInvalidKind = errors.New("unknown lead kind")

	// ErrInvalidName is returned when the name is missing.
	ErrInvalidName = errors.New("full_name is required")

	// ErrMissingContact is returned when both email and phone are missing.
	ErrMissingContact = errors.New("either email or phone is required")

	// ErrLeadNotFound is returned when a lead is not found.
	ErrLeadNotFound = errors.New("lead not found")
)

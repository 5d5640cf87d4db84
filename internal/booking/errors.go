package booking

import "errors"

var (
	// ErrBookingNotFound is returned when no booking matches the id or reference.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrValidation wraps intake input problems. Callers surface the message verbatim.
	ErrValidation = errors.New("validation failed")

	// ErrVerificationFailed is returned when the gateway reports a non-success
	// charge or cannot be reached during verification.
	ErrVerificationFailed = errors.New("payment verification failed")

	// ErrAmountMismatch is returned when the verified amount disagrees with the
	// amount quoted at intake.
	ErrAmountMismatch = errors.New("paid amount does not match booking amount")

	// ErrBookingMismatch is returned when webhook metadata names a different
	// booking than the one the reference resolves to.
	ErrBookingMismatch = errors.New("payment metadata does not match booking")
)

package core

import "errors"

// Sentinel errors forming the service failure taxonomy. Services wrap them
// with context (fmt.Errorf("...: %w", ErrX)) so adapters can map them to
// HTTP statuses with errors.Is.
var (
	// ErrNotFound: a referenced material or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput: a missing, malformed, or out-of-range field.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientStock: an outbound movement would drive the material's
	// quantity below zero. The movement is rejected and nothing is written.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrUnauthorized: missing or invalid credentials.
	ErrUnauthorized = errors.New("invalid credentials")

	// ErrForbidden: the caller's role does not permit the operation.
	ErrForbidden = errors.New("operation not allowed")

	// ErrEmailTaken: registration with an email that already has an account.
	ErrEmailTaken = errors.New("email already registered")
)

package service

import "errors"

// Sentinel errors the HTTP layer maps onto status codes.
var (
	// ErrValidation marks missing or malformed input.
	ErrValidation = errors.New("invalid input")
	// ErrEmailTaken is returned when registering with an email that
	// already has an account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password;
	// the two cases are deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotOwner is returned when a mutation targets a listing that is
	// missing or belongs to someone else. The two cases collapse on
	// purpose so non-owners cannot probe for listing existence.
	ErrNotOwner = errors.New("not your listing or listing not found")
	// ErrNotFound marks a read of a missing listing.
	ErrNotFound = errors.New("product not found")
)

package service

import "errors"

var (
	// ErrNotFound means an identifier did not resolve to a record.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidCredentials covers both unknown username and wrong
	// password so the two are indistinguishable to a caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

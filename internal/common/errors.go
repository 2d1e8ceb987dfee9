// Package common defines shared constants and sentinel errors used across
// kbcli components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Service-level errors.
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")

	// Q&A session errors.
	ErrAskInFlight = errors.New("another question is already in flight")
)

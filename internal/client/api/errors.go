package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable marks transport-level failures: the request never
	// produced an HTTP response.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized matches 401/403 responses via errors.Is.
	ErrUnauthorized = errors.New("unauthorized")
)

// StatusError is returned for any non-2xx response. Status carries the
// server's message when the body had one, otherwise the standard status
// text.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s", e.Code, e.Status)
}

func (e *StatusError) Is(target error) bool {
	if target == ErrUnauthorized {
		return e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden
	}
	return false
}

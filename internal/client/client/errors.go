package client

import (
	"errors"
	"fmt"
)

// ErrUnavailable reports that the remote could not be reached at all:
// no endpoint configured, connection refused, timeout.
var ErrUnavailable = errors.New("server unavailable")

// StatusError is returned when the remote answered with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("remote returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("remote returned status %d: %s", e.StatusCode, e.Body)
}

package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrTimeout      = errors.New("request timed out")
)

// StatusError is returned for any non-2xx answer. A 401 matches
// ErrUnauthorized under errors.Is.
type StatusError struct {
	Path string
	Code int
	// Detail is the backend's "detail" field, if it sent one.
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.Code, e.Detail)
	}
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.Code == http.StatusUnauthorized
}

// Detail extracts the backend-provided message from err, if any.
func Detail(err error) (string, bool) {
	var se *StatusError
	if errors.As(err, &se) && se.Detail != "" {
		return se.Detail, true
	}
	return "", false
}

package retailapi

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when the retail API answers 401.
	ErrUnauthorized = errors.New("retail API rejected the session token")

	// ErrTransport wraps network failures and timeouts.
	ErrTransport = errors.New("retail API unreachable")

	// ErrUnexpectedResponse is returned for bodies that do not match the endpoint's schema.
	ErrUnexpectedResponse = errors.New("unexpected response from retail API")
)

// RequestError is a well-formed `success: false` answer.
type RequestError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s failed with status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s failed: %s", e.Endpoint, e.Message)
}

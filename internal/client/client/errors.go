package client

import (
	"errors"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadResponse  = errors.New("invalid server response")
)

// genericFailureMessage is shown for transport and decoding failures where
// the server did not provide a message of its own.
const genericFailureMessage = "Could not reach the server. Please try again."

// APIError is a non-2xx reply. Message is the server-provided text, shown
// to the user verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap maps the status onto the package sentinels so callers can use
// errors.Is(err, ErrUnauthorized) regardless of the message.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	default:
		return nil
	}
}

// Message returns the text to present for err: the server message for API
// errors and a generic message for everything else.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return genericFailureMessage
}

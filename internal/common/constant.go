// Package common contains shared constants and sentinel errors used across
// the Wiki Reader client components.
package common

const (
	// AuthorizationHeaderName carries the bearer session token on
	// protected requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix is prepended to the session token in the
	// Authorization header.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName tags every outbound request so that client and
	// server log lines can be correlated.
	RequestIDHeaderName = "X-Request-ID"
)

// Package common defines shared constants and sentinel errors used across
// the client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrInvalidToken is returned when a stored session token cannot be
	// opened or parsed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when a session token carries an expiry
	// that already passed.
	ErrTokenExpired = errors.New("token expired")
)

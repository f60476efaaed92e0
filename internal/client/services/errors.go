package services

import "errors"

var (
	// ErrAuthRequired is returned before any remote call when an action
	// needs a session and there is none.
	ErrAuthRequired = errors.New("authentication required")
	// ErrBusy is returned when a submission is already in flight.
	ErrBusy = errors.New("a request is already in progress")
	// ErrNoResult is returned by result-dependent actions before the first
	// successful submission.
	ErrNoResult     = errors.New("no summary available")
	ErrHistoryIndex = errors.New("no such history entry")
)

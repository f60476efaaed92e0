package models

import "time"

// HistoryEntry is one locally remembered query.
type HistoryEntry struct {
	Title    string `json:"title"`
	Language string `json:"language"`
	// Timestamp is Unix time in milliseconds.
	Timestamp int64 `json:"timestamp"`
}

// Time converts Timestamp back to a time.Time.
func (e HistoryEntry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// SameQuery reports whether both entries share title and language.
func (e HistoryEntry) SameQuery(o HistoryEntry) bool {
	return e.Title == o.Title && e.Language == o.Language
}

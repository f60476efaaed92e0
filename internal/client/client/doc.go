// Package client contains client-side building blocks for the Wiki Reader
// terminal client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) for the
//     summarization backend: Login/Register, preferences, Scrape, Summarize,
//     TTS, remote history and bookmarks, Voices and Ping.
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient) that attaches
//     the bearer token and a request ID, and maps failures to sentinel errors.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations),
//     wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Non-2xx replies become *APIError carrying the server message. APIError
// unwraps to ErrUnauthorized or ErrUnavailable depending on the status, and
// transport failures are reported as ErrUnavailable. Use Message to obtain
// user-facing text for any error.
//
// No call retries and none sets a timeout; cancellation is left to ctx.
package client

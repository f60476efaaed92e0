// Package cli provides the interactive Wiki Reader command-line client.
//
// It wires configuration, the local vault, the API client and the services
// behind an interactive REPL. Typical flow: restore the stored session,
// start a background connectivity watcher, then edit the form and run
// actions on the summary it produces.
//
// Key features:
//   - Register / Login / Logout with a session kept across restarts
//   - Submit a title for scraping and summarization
//   - Play, download and bookmark the current summary
//   - Local query history with replay, remote history and bookmarks
//   - Preferences (language, voice, dark mode) stored on the server
//   - Optional voice input for the title
//
// NewRootCommand exposes the REPL and one-shot subcommands through cobra.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli

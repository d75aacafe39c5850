// Package app provides the orchestration layer for the application.
//
// # Overview
//
// This package is the composition root: it wires configuration, logging,
// the diary store, the metadata providers, the session controller, and the
// UI together, then blocks in ui.Run until the user exits or the context is
// cancelled.
//
// # Architecture
//
// Run follows a simple initialization pattern:
//
//  1. Load configuration from ~/.config/mediadiary/config.toml
//  2. Open the file logger and the SQLite-backed diary store
//  3. Construct the TMDB and Spotify clients for whichever providers have
//     credentials configured; unconfigured providers degrade to disabled
//     search rather than failing startup
//  4. Build the metadata aggregator over the available providers
//  5. Launch the preference watcher goroutine
//  6. Start the TUI and block
//
// # Error Handling
//
// Fatal errors (returned from Run): invalid configuration, store open
// failure, provider client construction failure when credentials are
// present. Recoverable conditions (logged, startup continues): missing
// provider credentials, preference watch failures.
package app

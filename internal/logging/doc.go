// Package logging builds the application's slog logger.
//
// The TUI owns the terminal, so logs always go to a file as JSON lines;
// configuring an empty path disables logging entirely. Level parsing
// accepts debug, info, warn, and error and falls back to info.
package logging

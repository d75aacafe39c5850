// Package config handles loading and parsing the application configuration
// file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/mediadiary/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// Provider credentials (the TMDB API key and the Spotify client pair) have
// no defaults; surfaces that need a provider validate the fields at
// construction time.
//
// # TOML Format
//
// Example config.toml:
//
//	database_path = "~/.local/share/mediadiary/diary.db"
//	log_level = "info"
//
//	[tmdb]
//	api_key = "..."
//	language = "en-US"
//
//	[spotify]
//	client_id = "..."
//	client_secret = "..."
//
// Every field is optional. Tilde expansion is performed automatically for
// path fields.
//
// # Error Handling
//
// Load returns errors for path expansion failures, file read errors (except
// os.ErrNotExist, which triggers defaults), and TOML parsing errors. A
// missing config file is NOT an error - defaults are used instead, so the
// app starts out-of-the-box and reports missing credentials only when a
// provider is actually used.
//
// The package is read-only and stateless - it loads configuration once at
// startup and returns an immutable Config struct.
package config

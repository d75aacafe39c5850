// Package spotify provides a client for the Spotify Web API (albums,
// artists, album search) and a TokenSource that manages the short-lived
// client-credentials bearer token those calls require.
//
// # Token lifecycle
//
// TokenSource.Token returns the cached token while it is still inside its
// validity window, with no network traffic. When the token is absent or
// expired it performs one client-credentials exchange against the configured
// token endpoint (basic-auth client id/secret, grant_type=client_credentials)
// and caches the result for a fixed hour. The expires_in granted by the
// endpoint is deliberately ignored in favor of that conservative window.
//
// Concurrent callers never race duplicate exchanges: the first caller to
// find the token expired starts the exchange, later callers block on its
// completion and share the outcome. A failed exchange leaves any previous
// token in place and surfaces the error; retry happens naturally on the
// next access.
package spotify

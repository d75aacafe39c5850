// Package metadata unifies the two structurally different upstream
// providers behind one fetch surface.
//
// # Dispatch
//
// A Query names a media type plus provider identifiers. Movies and TV
// resolve with a single catalog call (TMDB details, or the season
// sub-resource when a season is requested). Albums resolve with two
// concurrent music-provider calls, album plus artist, authenticated with a
// bearer token from the TokenProvider; if either call fails the whole fetch
// fails. The result is a tagged Record discriminated by the same type field
// used for dispatch, never by inspecting payload shape.
//
// # Handles and caching
//
// Fetch returns a Handle immediately: an explicit future with pending,
// ready, and error states that callers poll (Status) or await (Await).
// The aggregator keeps at most one handle per query key. A pending handle
// is joined by later callers, so identical concurrent fetches share a
// single upstream attempt; a ready handle is a permanent hit for the rest
// of the session, since upstream metadata for a historical item is treated
// as immutable. Error handles are kept for observation but do not count as
// hits: the next Fetch for the same key starts a fresh attempt. Nothing is
// ever evicted and nothing retries automatically.
//
// # Cancellation
//
// A fetch runs to completion once started. Await honors the caller's
// context, but cancelling it only abandons the wait; the handle still
// resolves and stays cached for whoever looks next.
package metadata

// Package media defines the domain types shared across the application:
// media types, selected catalog items, diary entries, filter criteria, and
// the user preference record.
//
// # Identifiers
//
// A catalog item is identified by its media type plus a provider ID: TMDB IDs
// for movies and TV, Spotify IDs for albums (with a second ID for the album's
// artist). The composite document key "type_id" (e.g. "movie_603",
// "album_4aawyAB9vmqN3uQ7FjRGTy") keys the media-info documents in the store.
//
// # Timestamps
//
// Diary dates are persisted as unix milliseconds. DiaryTime and AddedTime
// convert to local time for display and editing; the log editor converts the
// other way on save.
//
// # Filters
//
// DiaryFilters and BookmarkFilters are plain criteria records. Nil pointer
// fields mean unconstrained; Matches evaluates an entry against every set
// field. They carry no behavior beyond that and are stored as-is in the
// session state.
package media

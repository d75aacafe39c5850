// Package diarystore persists diary entries, cached media metadata, and the
// user preference record in a local SQLite database.
//
// The store is a path-keyed JSON document table rather than a relational
// schema: Update merges partial records at the top level, BatchWrite groups
// operations into one transaction, and Watch polls a path for changes.
// Typed helpers (SaveEntry, ListDiary, LoadPreference) layer the diary
// domain over the generic document surface.
//
// Writes retry briefly on SQLITE_BUSY since the TUI and background fetches
// share one database file.
package diarystore

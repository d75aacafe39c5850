// Package logedit holds the form state for one open diary-entry editor:
// the attributed date, the half-star rating, the "consumed before" flag,
// and the set of watched episodes for TV items.
//
// The state is value-typed and side-effect free. Set applies a shallow
// single-field override; everything else about the entry (catalog item,
// persistence, validation) belongs to the surface that owns the editor.
// A State is created when the editor opens, from defaults for a new entry
// or from the persisted entry when editing, and is dropped when the editor
// closes.
package logedit

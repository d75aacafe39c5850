package session

import "mediadiary/internal/media"

type actionKind int

const (
	actionSelect actionKind = iota
	actionLog
	actionInfo
	actionDay
	actionEdit
	actionShow
	actionFilter
	actionSaving
	actionSavedEdit
	actionSavedPreference
	actionSaved
	actionDayClose
	actionSetField
)

// Field names a State field the generic SetField override may target.
type Field string

const (
	FieldPreference      Field = "preference"
	FieldBookmarkFilters Field = "bookmarkFilters"
	FieldSaving          Field = "saving"
)

// Action is one discrete state transition request. Construct actions with
// the helper functions below; the zero Action is a no-op select.
type Action struct {
	kind     actionKind
	selected media.Selected
	entry    media.DiaryEntry
	view     View
	filters  media.DiaryFilters
	pref     media.Preference
	field    Field
	value    any
}

// Select records the item the user is pointing at without changing the view.
func Select(item media.Selected) Action {
	return Action{kind: actionSelect, selected: item}
}

// Log opens the log editor for a catalog item. Any in-progress diary edit is
// dropped.
func Log(item media.Selected) Action {
	return Action{kind: actionLog, selected: item}
}

// Info opens the metadata panel for a catalog item.
func Info(item media.Selected) Action {
	return Action{kind: actionInfo, selected: item}
}

// Day opens the day drawer for an existing diary entry.
func Day(entry media.DiaryEntry) Action {
	return Action{kind: actionDay, entry: entry}
}

// Edit switches to the edit surface for the entry already held in State.Edit.
func Edit() Action {
	return Action{kind: actionEdit}
}

// Show switches the active surface without touching the selection.
func Show(v View) Action {
	return Action{kind: actionShow, view: v}
}

// Filter replaces the diary filters and returns to the diary list.
func Filter(f media.DiaryFilters) Action {
	return Action{kind: actionFilter, filters: f}
}

// Saving marks a persistence operation as in flight.
func Saving() Action {
	return Action{kind: actionSaving}
}

// SavedEdit records a successful entry save and shows the day drawer for it.
func SavedEdit(entry media.DiaryEntry) Action {
	return Action{kind: actionSavedEdit, entry: entry}
}

// SavedPreference records a successful preference save.
func SavedPreference(p media.Preference) Action {
	return Action{kind: actionSavedPreference, pref: p}
}

// Saved clears the saving flag and returns to the diary list.
//
// Saved and DayClose apply the identical transition. They stay separate
// constructors because callers mean different things by them (completing a
// save vs. dismissing the drawer) and merging would lose that signal.
func Saved() Action {
	return Action{kind: actionSaved}
}

// DayClose dismisses the day drawer and returns to the diary list.
func DayClose() Action {
	return Action{kind: actionDayClose}
}

// SetField overrides a single simple field. Unknown fields and mismatched
// value types are ignored rather than rejected; the machine stays total.
func SetField(f Field, value any) Action {
	return Action{kind: actionSetField, field: f, value: value}
}

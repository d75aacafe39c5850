package session

import (
	"sync"

	"mediadiary/internal/media"
)

// View names the active interactive surface. Exactly one surface is active
// at a time, or none.
type View string

const (
	ViewNone     View = ""
	ViewSearch   View = "search"
	ViewLog      View = "log"
	ViewEdit     View = "edit"
	ViewDay      View = "day"
	ViewDiary    View = "diary"
	ViewActivity View = "activity"
	ViewInfo     View = "info"
)

// PreferenceStatus tracks whether the preference record has been read yet.
// The onboarding gate needs to distinguish "not read" from "read, absent".
type PreferenceStatus int

const (
	PreferenceUnloaded PreferenceStatus = iota
	PreferenceMissing
	PreferenceLoaded
)

// State is the full view state at a point in time. Selected and Edit are
// never both non-nil; every transition that sets one clears the other.
type State struct {
	View            View
	Selected        *media.Selected
	Edit            *media.DiaryEntry
	DiaryFilters    media.DiaryFilters
	BookmarkFilters media.BookmarkFilters
	Preference      media.Preference
	PrefStatus      PreferenceStatus
	Saving          bool
}

// Controller owns the view state and applies actions to it. It is the only
// place "what is the user doing" changes. Safe for concurrent use; each
// dispatch is applied atomically and in arrival order.
type Controller struct {
	mu    sync.RWMutex
	state State
}

// NewController returns a controller in the initial state: no surface
// active, preference not yet loaded.
func NewController() *Controller {
	return &Controller{}
}

// Dispatch applies one action and returns the resulting state snapshot.
func (c *Controller) Dispatch(action Action) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = reduce(c.state, action)
	return c.state.clone()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.clone()
}

func reduce(state State, action Action) State {
	switch action.kind {
	case actionSelect:
		state.Selected = cloneSelected(action.selected)
		state.Edit = nil
	case actionLog:
		state.Selected = cloneSelected(action.selected)
		state.Edit = nil
		state.View = ViewLog
	case actionInfo:
		state.Selected = cloneSelected(action.selected)
		state.Edit = nil
		state.View = ViewInfo
	case actionDay:
		state.Edit = cloneEntry(action.entry)
		state.Selected = nil
		state.View = ViewDay
	case actionEdit:
		state.View = ViewEdit
	case actionShow:
		state.View = action.view
	case actionFilter:
		state.DiaryFilters = action.filters
		state.View = ViewDiary
	case actionSaving:
		state.Saving = true
	case actionSavedEdit:
		state.Saving = false
		state.Edit = cloneEntry(action.entry)
		state.Selected = nil
		state.View = ViewDay
	case actionSavedPreference:
		state.Saving = false
		state.Preference = action.pref
		state.PrefStatus = PreferenceLoaded
	case actionSaved, actionDayClose:
		state.Saving = false
		state.Edit = nil
		state.View = ViewDiary
	case actionSetField:
		state = setField(state, action.field, action.value)
	}
	return state
}

func setField(state State, field Field, value any) State {
	switch field {
	case FieldPreference:
		switch v := value.(type) {
		case media.Preference:
			state.Preference = v
			state.PrefStatus = PreferenceLoaded
		case nil:
			state.Preference = media.Preference{}
			state.PrefStatus = PreferenceMissing
		}
	case FieldBookmarkFilters:
		if v, ok := value.(media.BookmarkFilters); ok {
			state.BookmarkFilters = v
		}
	case FieldSaving:
		if v, ok := value.(bool); ok {
			state.Saving = v
		}
	}
	return state
}

func (s State) clone() State {
	out := s
	if s.Selected != nil {
		sel := *s.Selected
		out.Selected = &sel
	}
	if s.Edit != nil {
		out.Edit = cloneEntry(*s.Edit)
	}
	return out
}

func cloneSelected(item media.Selected) *media.Selected {
	dup := item
	return &dup
}

func cloneEntry(entry media.DiaryEntry) *media.DiaryEntry {
	dup := entry
	if len(entry.SeenEpisodes) > 0 {
		dup.SeenEpisodes = make([]int64, len(entry.SeenEpisodes))
		copy(dup.SeenEpisodes, entry.SeenEpisodes)
	}
	return &dup
}

// Package session owns the application's view state: which surface is
// active, which catalog item or diary entry it operates on, the active
// filters, and the save-in-progress flag.
//
// # State machine
//
// Every user interaction funnels through Controller.Dispatch as a discrete
// Action. Actions are applied synchronously, atomically, and in arrival
// order; the reducer never suspends and never performs I/O. The rendering
// layer observes the resulting State and mounts the surface named by View.
// Fetch results never flow back through the controller; they travel directly
// to the surface that requested them.
//
// # Transitions
//
//	Select(item)          Selected = item, Edit = nil, view unchanged
//	Log(item)             Selected = item, Edit = nil, View = log
//	Info(item)            Selected = item, Edit = nil, View = info
//	Day(entry)            Edit = entry, Selected = nil, View = day
//	Edit()                View = edit (operates on current Edit)
//	Show(v)               View = v, selection unchanged
//	Filter(criteria)      DiaryFilters = criteria, View = diary
//	Saving()              Saving = true
//	SavedEdit(entry)      Saving = false, Edit = entry, View = day
//	SavedPreference(p)    Saving = false, Preference = p
//	Saved() / DayClose()  Saving = false, Edit = nil, View = diary
//	SetField(f, v)        single-field override for simple fields
//
// # Invariants
//
// Selected and Edit are never both non-nil after any transition. View is set
// explicitly by each transition, never derived from the selection. The
// machine is total: no action is rejected. Dispatching Log with a zero item,
// or Edit with no entry held, is a bug in the caller; surfaces treat an
// undefined selection for their view as a contract violation rather than
// recovering inside the reducer.
//
// # Saving flag
//
// The controller does not auto-recover Saving on persistence failure. A
// surface that dispatches Saving must guarantee an eventual Saved, DayClose,
// SavedEdit, or SavedPreference in both success and failure paths, or the UI
// stays stuck in its saving state.
//
// # Concurrency
//
// Controller is a constructor-injected state holder, not ambient state, so
// tests and future multi-session hosts can run isolated instances. Dispatch
// and Snapshot use an RWMutex and return defensive copies in the manner of
// a snapshot store: callers can hold or mutate returned state freely.
package session

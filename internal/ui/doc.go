// Package ui provides the Bubble Tea terminal interface.
//
// The Model is a thin projection layer: it never mutates view state
// directly. Key handlers translate input into session actions, dispatch
// them to the controller, and re-render from the returned snapshot.
// Persistence and provider calls run as tea.Cmd functions off the update
// loop; their results come back as messages and are folded in the same way.
//
// Surfaces map one-to-one onto session views: search, the log/edit form,
// the day drawer, the info panel, the diary list, and the activity summary.
// A missing preference record gates everything behind the onboarding
// picker.
package ui

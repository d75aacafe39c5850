package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	ForceQuit  key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// Surface switching
	Search   key.Binding
	Diary    key.Binding
	Activity key.Binding

	// List actions
	LogItem  key.Binding
	InfoItem key.Binding
	OpenDay  key.Binding
	Filter   key.Binding

	// Navigation
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Confirm key.Binding

	// Log editor
	RatingUp      key.Binding
	RatingDown    key.Binding
	DayBack       key.Binding
	DayForward    key.Binding
	ToggleBefore  key.Binding
	SeasonBack    key.Binding
	SeasonForward key.Binding
	ToggleEpisode key.Binding
	Save          key.Binding

	// Day drawer
	EditEntry   key.Binding
	DeleteEntry key.Binding

	// Onboarding
	TogglePick key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "Q"),
			key.WithHelp("Q", "Quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back to diary"),
		),

		Search: key.NewBinding(
			key.WithKeys("/", "s"),
			key.WithHelp("/", "Search"),
		),
		Diary: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Diary"),
		),
		Activity: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Activity"),
		),

		LogItem: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Log selection"),
		),
		InfoItem: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "Item info"),
		),
		OpenDay: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open entry"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Cycle type filter"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),

		RatingUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Rating up"),
		),
		RatingDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Rating down"),
		),
		DayBack: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Day earlier"),
		),
		DayForward: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Day later"),
		),
		ToggleBefore: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Toggle seen before"),
		),
		SeasonBack: key.NewBinding(
			key.WithKeys("{"),
			key.WithHelp("{", "Earlier season"),
		),
		SeasonForward: key.NewBinding(
			key.WithKeys("}"),
			key.WithHelp("}", "Later season"),
		),
		ToggleEpisode: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Toggle episode"),
		),
		Save: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Save"),
		),

		EditEntry: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Edit entry"),
		),
		DeleteEntry: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Delete entry"),
		),

		TogglePick: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "Toggle media type"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Diary, k.Activity, k.Escape},
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.LogItem, k.InfoItem, k.OpenDay, k.Filter},
		{k.RatingUp, k.RatingDown, k.DayBack, k.DayForward, k.ToggleBefore, k.Save},
		{k.SeasonBack, k.SeasonForward, k.ToggleEpisode},
		{k.EditEntry, k.DeleteEntry},
		{k.CycleTheme, k.Help, k.Quit},
	}
}

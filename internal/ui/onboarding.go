package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"mediadiary/internal/diarystore"
	"mediadiary/internal/media"
	"mediadiary/internal/session"
)

// handleOnboardingKey drives the first-run media type picker. The rest of
// the app stays gated until a preference with at least one type is saved.
func (m Model) handleOnboardingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	types := media.Types()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Down):
		if m.onboardCursor < len(types)-1 {
			m.onboardCursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.onboardCursor > 0 {
			m.onboardCursor--
		}

	case key.Matches(msg, m.keys.TogglePick):
		m.onboardPick = togglePick(m.onboardPick, types[m.onboardCursor])

	case key.Matches(msg, m.keys.Confirm):
		if !m.onboardPick.Any() || m.sess.Saving {
			return m, nil
		}
		pref := media.Preference{MediaTypes: m.onboardPick}
		m.dispatch(session.Saving())
		return m, savePreferenceCmd(m.ctx, m.store, pref)
	}

	return m, nil
}

func togglePick(pick media.MediaTypes, t media.Type) media.MediaTypes {
	switch t {
	case media.TypeMovie:
		pick.Movie = !pick.Movie
	case media.TypeTV:
		pick.TV = !pick.TV
	case media.TypeAlbum:
		pick.Album = !pick.Album
	}
	return pick
}

func savePreferenceCmd(ctx context.Context, store *diarystore.Store, pref media.Preference) tea.Cmd {
	return func() tea.Msg {
		if err := store.SavePreference(ctx, pref); err != nil {
			return preferenceSavedMsg{err: err}
		}
		return preferenceSavedMsg{pref: pref}
	}
}

// renderOnboarding draws the first-run media type picker.
func (m Model) renderOnboarding() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.Logo.Render("mediadiary"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render("What do you want to keep a diary of?"))
	b.WriteString("\n\n")

	for i, t := range media.Types() {
		mark := "[ ]"
		if m.onboardPick.Enabled(t) {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s", mark, string(t))
		if i == m.onboardCursor {
			b.WriteString(styles.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.sess.Saving {
		b.WriteString(styles.MutedText.Render("Saving..."))
	} else {
		b.WriteString(styles.FaintText.Render("space: toggle  enter: continue"))
	}
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(styles.DangerText.Render(m.status))
		b.WriteString("\n")
	}
	return b.String()
}

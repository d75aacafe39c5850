package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"mediadiary/internal/diarystore"
	"mediadiary/internal/logedit"
	"mediadiary/internal/media"
	"mediadiary/internal/session"
)

// handleDayKey drives the day drawer for one diary entry.
func (m Model) handleDayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entry := m.sess.Edit
	if entry == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.EditEntry):
		m.edit = logedit.NewFromEntry(*entry)
		m.episodes = nil
		m.episodesErr = nil
		m.episodeCursor = 0
		m.dispatch(session.Edit())
		if entry.Type == media.TypeTV && entry.Season > 0 {
			return m, m.fetchEpisodesCmd(mediaIDFromKey(entry.MediaKey), entry.Season)
		}
		return m, nil

	case key.Matches(msg, m.keys.DeleteEntry):
		return m, deleteEntryCmd(m.ctx, m.store, entry.ID)
	}

	return m, nil
}

func deleteEntryCmd(ctx context.Context, store *diarystore.Store, id string) tea.Cmd {
	return func() tea.Msg {
		return entryDeletedMsg{err: store.DeleteEntry(ctx, id)}
	}
}

// renderDay draws the drawer for the entry held in State.Edit.
func (m Model) renderDay() string {
	styles := m.theme.Styles()
	entry := m.sess.Edit
	if entry == nil {
		return styles.MutedText.Render("No entry open.")
	}

	var b strings.Builder
	b.WriteString(styles.TypeStyle(string(entry.Type)).Render(string(entry.Type)))
	b.WriteString(" ")
	b.WriteString(styles.AccentText.Render(entry.Title))
	if entry.Artist != "" {
		b.WriteString(styles.MutedText.Render(" - " + entry.Artist))
	}
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  Logged        %s\n", styles.Text.Render(entry.DiaryTime().Format("Mon, Jan 2 2006"))))
	b.WriteString(fmt.Sprintf("  Rating        %s\n", styles.WarningText.Render(ratingStars(entry.Rating))))
	b.WriteString(fmt.Sprintf("  Seen before   %s\n", styles.Text.Render(yesNo(entry.LoggedBefore))))
	if entry.Season > 0 {
		b.WriteString(fmt.Sprintf("  Season        %s\n", styles.Text.Render(fmt.Sprintf("%d", entry.Season))))
	}
	if len(entry.SeenEpisodes) > 0 {
		b.WriteString(fmt.Sprintf("  Episodes      %s\n", styles.Text.Render(fmt.Sprintf("%d watched", len(entry.SeenEpisodes)))))
	}
	if entry.ReleasedDate != "" {
		b.WriteString(fmt.Sprintf("  Released      %s\n", styles.Text.Render(entry.ReleasedDate)))
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("e: edit  x: delete  esc: close"))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(styles.DangerText.Render(m.status))
		b.WriteString("\n")
	}
	return b.String()
}

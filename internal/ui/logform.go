package ui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"mediadiary/internal/diarystore"
	"mediadiary/internal/logedit"
	"mediadiary/internal/media"
	"mediadiary/internal/metadata"
	"mediadiary/internal/session"
)

// handleLogEditorKey drives the log/edit form. ViewLog logs the current
// selection as a new entry; ViewEdit re-saves the entry held in State.Edit.
func (m Model) handleLogEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.RatingUp):
		m.edit = m.edit.Set(logedit.FieldRating, clampRating(m.edit.Rating+0.5))
	case key.Matches(msg, m.keys.RatingDown):
		m.edit = m.edit.Set(logedit.FieldRating, clampRating(m.edit.Rating-0.5))
	case key.Matches(msg, m.keys.DayBack):
		m.edit = m.edit.Set(logedit.FieldDiaryDate, m.edit.DiaryDate.AddDate(0, 0, -1))
	case key.Matches(msg, m.keys.DayForward):
		// Entries are never attributed to the future.
		if next := m.edit.DiaryDate.AddDate(0, 0, 1); !afterToday(next, time.Now()) {
			m.edit = m.edit.Set(logedit.FieldDiaryDate, next)
		}
	case key.Matches(msg, m.keys.ToggleBefore):
		m.edit = m.edit.Set(logedit.FieldLoggedBefore, !m.edit.LoggedBefore)

	case key.Matches(msg, m.keys.SeasonBack):
		return m.stepSeason(-1)
	case key.Matches(msg, m.keys.SeasonForward):
		return m.stepSeason(1)

	case key.Matches(msg, m.keys.Down):
		if m.episodeCursor < len(m.episodes)-1 {
			m.episodeCursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.episodeCursor > 0 {
			m.episodeCursor--
		}
	case key.Matches(msg, m.keys.ToggleEpisode):
		if m.episodeCursor >= 0 && m.episodeCursor < len(m.episodes) {
			m.edit = m.edit.ToggleEpisode(m.episodes[m.episodeCursor].ID)
		}

	case key.Matches(msg, m.keys.Save):
		if m.sess.Saving {
			return m, nil
		}
		fromEdit := m.sess.View == session.ViewEdit
		entry, ok := m.buildEntry(fromEdit)
		if !ok {
			return m, nil
		}
		m.dispatch(session.Saving())
		var sel *media.Selected
		if m.sess.Selected != nil {
			dup := *m.sess.Selected
			sel = &dup
		}
		return m, saveEntryCmd(m.ctx, m.store, entry, sel, fromEdit)
	}

	return m, nil
}

// stepSeason restates which season of the selected show the new log covers.
// Season 0 means the show as a whole. Only new logs can change season; an
// existing entry keeps the one it was logged against.
func (m Model) stepSeason(delta int) (tea.Model, tea.Cmd) {
	if m.sess.View != session.ViewLog || m.sess.Selected == nil || m.sess.Selected.Type != media.TypeTV {
		return m, nil
	}
	sel := *m.sess.Selected
	next := max(0, sel.Season+delta)
	if next == sel.Season {
		return m, nil
	}
	sel.Season = next
	m.dispatch(session.Select(sel))

	// The seen set belongs to one season's episode list.
	m.edit = m.edit.Set(logedit.FieldSeenEpisodes, []int64{})
	m.episodes = nil
	m.episodesErr = nil
	m.episodeCursor = 0
	if next == 0 {
		return m, nil
	}
	return m, m.fetchEpisodesCmd(sel.MediaID, next)
}

// fetchEpisodesCmd resolves the season's episode list through the metadata
// cache, so revisiting a season costs no extra provider call.
func (m Model) fetchEpisodesCmd(showID string, season int) tea.Cmd {
	if m.meta == nil || season <= 0 {
		return nil
	}
	handle := m.meta.Fetch(m.ctx, metadata.Query{
		Type:    media.TypeTV,
		FirstID: showID,
		Season:  season,
	})
	ctx := m.ctx
	return func() tea.Msg {
		waitCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		record, err := handle.Await(waitCtx)
		if err != nil {
			return episodesMsg{err: err}
		}
		if record.SeasonInfo == nil {
			return episodesMsg{}
		}
		return episodesMsg{episodes: record.SeasonInfo.Episodes}
	}
}

// buildEntry assembles the diary entry from the editor state plus either the
// current selection (new log) or the entry being edited.
func (m Model) buildEntry(fromEdit bool) (media.DiaryEntry, bool) {
	entry := media.DiaryEntry{
		DiaryDate:    m.edit.DiaryDate.UnixMilli(),
		Rating:       m.edit.Rating,
		LoggedBefore: m.edit.LoggedBefore,
		SeenEpisodes: m.edit.SeenEpisodes,
	}

	if fromEdit {
		if m.sess.Edit == nil {
			return media.DiaryEntry{}, false
		}
		prior := *m.sess.Edit
		entry.ID = prior.ID
		entry.MediaKey = prior.MediaKey
		entry.Type = prior.Type
		entry.AddedDate = prior.AddedDate
		entry.Season = prior.Season
		entry.Title = prior.Title
		entry.Artist = prior.Artist
		entry.Poster = prior.Poster
		entry.Genre = prior.Genre
		entry.ReleasedDate = prior.ReleasedDate
		return entry, true
	}

	if m.sess.Selected == nil {
		return media.DiaryEntry{}, false
	}
	sel := *m.sess.Selected
	entry.MediaKey = sel.Key()
	entry.Type = sel.Type
	entry.AddedDate = time.Now().UnixMilli()
	entry.Season = sel.Season
	entry.Title = sel.Title
	entry.Artist = sel.Artist
	entry.Poster = sel.Poster
	entry.Genre = sel.Genre
	entry.ReleasedDate = sel.ReleasedDate
	return entry, true
}

func saveEntryCmd(ctx context.Context, store *diarystore.Store, entry media.DiaryEntry, sel *media.Selected, fromEdit bool) tea.Cmd {
	return func() tea.Msg {
		saved, err := store.SaveEntry(ctx, entry)
		if err != nil {
			return entrySavedMsg{err: err, fromEdit: fromEdit}
		}
		if sel != nil {
			// Metadata cache write is best effort; the entry is already safe.
			_ = store.SaveMedia(ctx, *sel)
		}
		return entrySavedMsg{entry: saved, fromEdit: fromEdit}
	}
}

func clampRating(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 5 {
		return 5
	}
	return r
}

// renderLogEditor draws the log/edit form.
func (m Model) renderLogEditor() string {
	styles := m.theme.Styles()
	var b strings.Builder

	title := "Log"
	subject := ""
	tvLog := false
	switch {
	case m.sess.View == session.ViewEdit && m.sess.Edit != nil:
		title = "Edit entry"
		subject = m.sess.Edit.Title
	case m.sess.Selected != nil:
		subject = m.sess.Selected.Title
		if m.sess.Selected.Artist != "" {
			subject += " - " + m.sess.Selected.Artist
		}
		tvLog = m.sess.View == session.ViewLog && m.sess.Selected.Type == media.TypeTV
	}

	b.WriteString(styles.AccentText.Render(title))
	if subject != "" {
		b.WriteString("  ")
		b.WriteString(styles.Text.Render(subject))
	}
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  Date          %s\n", styles.Text.Render(m.edit.DiaryDate.Format("Mon, Jan 2 2006"))))
	b.WriteString(fmt.Sprintf("  Rating        %s\n", styles.WarningText.Render(ratingStars(m.edit.Rating))))
	b.WriteString(fmt.Sprintf("  Seen before   %s\n", styles.Text.Render(yesNo(m.edit.LoggedBefore))))
	switch {
	case tvLog:
		label := "whole show"
		if m.sess.Selected.Season > 0 {
			label = fmt.Sprintf("%d", m.sess.Selected.Season)
		}
		b.WriteString(fmt.Sprintf("  Season        %s\n", styles.Text.Render(label)))
	case m.sess.View == session.ViewEdit && m.sess.Edit != nil && m.sess.Edit.Season > 0:
		b.WriteString(fmt.Sprintf("  Season        %s\n", styles.Text.Render(fmt.Sprintf("%d", m.sess.Edit.Season))))
	}

	switch {
	case m.episodesErr != nil:
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render("episode list failed: " + m.episodesErr.Error()))
		b.WriteString("\n")
	case len(m.episodes) > 0:
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("  Episodes watched"))
		b.WriteString("\n")
		for i, ep := range m.episodes {
			mark := "[ ]"
			if slices.Contains(m.edit.SeenEpisodes, ep.ID) {
				mark = "[x]"
			}
			line := fmt.Sprintf("%s %2d  %s", mark, ep.EpisodeNumber, ep.Name)
			if i == m.episodeCursor {
				b.WriteString(styles.Selected.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
	case len(m.edit.SeenEpisodes) > 0:
		b.WriteString(fmt.Sprintf("  Episodes      %s\n", styles.Text.Render(fmt.Sprintf("%d selected", len(m.edit.SeenEpisodes)))))
	}

	b.WriteString("\n")
	if m.sess.Saving {
		b.WriteString(styles.MutedText.Render("Saving..."))
	} else {
		hint := "[/]: date  +/-: rating  b: seen before  enter: save  esc: cancel"
		if tvLog {
			hint = "{/}: season  " + hint
		}
		if len(m.episodes) > 0 {
			hint = "j/k: episode  space: toggle  " + hint
		}
		b.WriteString(styles.FaintText.Render(hint))
	}
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(styles.DangerText.Render(m.status))
		b.WriteString("\n")
	}
	return b.String()
}

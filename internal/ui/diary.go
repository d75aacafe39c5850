package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"mediadiary/internal/media"
	"mediadiary/internal/session"
)

// handleDiaryKey navigates the diary list.
func (m Model) handleDiaryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.entries)

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.diaryCursor < count-1 {
			m.diaryCursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.diaryCursor > 0 {
			m.diaryCursor--
		}
	case key.Matches(msg, m.keys.Top):
		m.diaryCursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.diaryCursor = max(0, count-1)

	case key.Matches(msg, m.keys.Filter):
		filters := cycleTypeFilter(m.sess.DiaryFilters)
		m.dispatch(session.Filter(filters))
		m.savePrefs()
		return m, loadDiaryCmd(m.ctx, m.store, m.sess.DiaryFilters)

	case key.Matches(msg, m.keys.OpenDay):
		if m.diaryCursor >= 0 && m.diaryCursor < count {
			m.dispatch(session.Day(m.entries[m.diaryCursor]))
		}

	case key.Matches(msg, m.keys.InfoItem):
		if m.diaryCursor >= 0 && m.diaryCursor < count {
			item := selectionFromEntry(m.entries[m.diaryCursor])
			m.dispatch(session.Info(item))
			return m, m.fetchInfo(item)
		}
	}

	return m, nil
}

// cycleTypeFilter steps the media-type constraint through
// all -> movie -> tv -> album -> all, preserving the other filters.
func cycleTypeFilter(filters media.DiaryFilters) media.DiaryFilters {
	order := media.Types()
	if filters.MediaType == nil {
		filters.MediaType = &order[0]
		return filters
	}
	for i, t := range order {
		if *filters.MediaType == t {
			if i == len(order)-1 {
				filters.MediaType = nil
			} else {
				filters.MediaType = &order[i+1]
			}
			return filters
		}
	}
	filters.MediaType = nil
	return filters
}

// selectionFromEntry rebuilds a catalog selection from a logged entry so the
// info panel can fetch its metadata.
func selectionFromEntry(entry media.DiaryEntry) media.Selected {
	mediaID := mediaIDFromKey(entry.MediaKey)
	return media.Selected{
		Type:         entry.Type,
		MediaID:      mediaID,
		Season:       entry.Season,
		Title:        entry.Title,
		Artist:       entry.Artist,
		Poster:       entry.Poster,
		Genre:        entry.Genre,
		ReleasedDate: entry.ReleasedDate,
	}
}

// renderDiary draws the diary list.
func (m Model) renderDiary() string {
	styles := m.theme.Styles()
	var b strings.Builder

	label := "All"
	if m.sess.DiaryFilters.MediaType != nil {
		label = string(*m.sess.DiaryFilters.MediaType)
	}
	b.WriteString(styles.AccentText.Render("Diary"))
	b.WriteString(styles.MutedText.Render("  filter: " + label))
	b.WriteString("\n\n")

	if m.diaryErr != nil {
		b.WriteString(styles.DangerText.Render("diary load failed: " + m.diaryErr.Error()))
		b.WriteString("\n")
		return b.String()
	}
	if len(m.entries) == 0 {
		b.WriteString(styles.MutedText.Render("Nothing logged yet. Press / to search and l to log."))
		b.WriteString("\n")
		return b.String()
	}

	lastYear := 0
	for i, entry := range m.entries {
		if year := entry.DiaryYear(); year != lastYear {
			if lastYear != 0 {
				b.WriteString("\n")
			}
			b.WriteString(styles.FaintText.Render(fmt.Sprintf("%d", year)))
			b.WriteString("\n")
			lastYear = year
		}

		line := fmt.Sprintf("%s  %-6s %s  %s",
			entry.DiaryTime().Format("Jan 02"),
			string(entry.Type),
			ratingStars(entry.Rating),
			entryLabel(entry),
		)
		if i == m.diaryCursor {
			b.WriteString(styles.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("enter: open  i: info  f: filter  /: search  a: activity"))
	return b.String()
}

func entryLabel(entry media.DiaryEntry) string {
	label := entry.Title
	if entry.Artist != "" {
		label += " - " + entry.Artist
	}
	if entry.LoggedBefore {
		label += " (rewatch)"
	}
	return label
}

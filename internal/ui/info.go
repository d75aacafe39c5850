package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"mediadiary/internal/metadata"
)

// handleInfoKey drives the metadata panel. A failed fetch is not a cache
// hit, so pressing i again starts a fresh provider attempt.
func (m Model) handleInfoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.InfoItem) && m.sess.Selected != nil {
		return m, m.fetchInfo(*m.sess.Selected)
	}
	return m, nil
}

// renderInfo draws the metadata panel for the current selection.
func (m Model) renderInfo() string {
	styles := m.theme.Styles()
	var b strings.Builder

	if m.sess.Selected != nil {
		b.WriteString(styles.TypeStyle(string(m.sess.Selected.Type)).Render(string(m.sess.Selected.Type)))
		b.WriteString(" ")
		b.WriteString(styles.AccentText.Render(m.sess.Selected.Title))
		if m.sess.Selected.Artist != "" {
			b.WriteString(styles.MutedText.Render(" - " + m.sess.Selected.Artist))
		}
		b.WriteString("\n\n")
	}

	if m.infoHandle == nil {
		b.WriteString(styles.MutedText.Render("No metadata requested."))
		return b.String()
	}

	switch m.infoHandle.Status() {
	case metadata.StatusPending:
		b.WriteString(styles.MutedText.Render("Fetching details..."))

	case metadata.StatusError:
		_, err := m.infoHandle.Result()
		b.WriteString(styles.DangerText.Render("metadata fetch failed: " + err.Error()))
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("i: retry  esc: back"))

	case metadata.StatusReady:
		record, _ := m.infoHandle.Result()
		b.WriteString(renderRecord(record, styles))
	}

	return b.String()
}

func renderRecord(record metadata.Record, styles Styles) string {
	var b strings.Builder

	if record.SeasonInfo != nil {
		season := record.SeasonInfo
		b.WriteString(styles.Text.Render(season.Name))
		b.WriteString("\n")
		if season.AirDate != "" {
			b.WriteString(styles.MutedText.Render("Aired " + season.AirDate))
			b.WriteString("\n")
		}
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("%d episodes", len(season.Episodes))))
		b.WriteString("\n\n")
		if season.Overview != "" {
			b.WriteString(styles.Text.Render(season.Overview))
			b.WriteString("\n")
		}
		return b.String()
	}

	if record.Catalog != nil {
		item := record.Catalog
		if item.Tagline != "" {
			b.WriteString(styles.MutedText.Render(item.Tagline))
			b.WriteString("\n\n")
		}
		if item.Overview != "" {
			b.WriteString(styles.Text.Render(item.Overview))
			b.WriteString("\n\n")
		}
		if item.Runtime > 0 {
			b.WriteString(styles.MutedText.Render(fmt.Sprintf("Runtime: %d min", item.Runtime)))
			b.WriteString("\n")
		}
		if item.NumberSeasons > 0 {
			b.WriteString(styles.MutedText.Render(fmt.Sprintf("Seasons: %d", item.NumberSeasons)))
			b.WriteString("\n")
		}
		if len(item.Genres) > 0 {
			names := make([]string, len(item.Genres))
			for i, genre := range item.Genres {
				names[i] = genre.Name
			}
			b.WriteString(styles.MutedText.Render("Genres: " + strings.Join(names, ", ")))
			b.WriteString("\n")
		}
		if item.VoteCount > 0 {
			b.WriteString(styles.MutedText.Render(fmt.Sprintf("Score: %.1f (%d votes)", item.VoteAverage, item.VoteCount)))
			b.WriteString("\n")
		}
		return b.String()
	}

	if record.Album != nil {
		album := record.Album
		b.WriteString(styles.Text.Render(album.Name))
		b.WriteString("\n")
		if album.ReleaseDate != "" {
			b.WriteString(styles.MutedText.Render("Released " + album.ReleaseDate))
			b.WriteString("\n")
		}
		if album.Label != "" {
			b.WriteString(styles.MutedText.Render("Label: " + album.Label))
			b.WriteString("\n")
		}
		if tracks := len(album.Tracks.Items); tracks > 0 {
			b.WriteString(styles.MutedText.Render(fmt.Sprintf("%d tracks", tracks)))
			b.WriteString("\n")
		}
		if record.Artist != nil {
			b.WriteString("\n")
			b.WriteString(styles.Text.Render(record.Artist.Name))
			b.WriteString("\n")
			if len(record.Artist.Genres) > 0 {
				b.WriteString(styles.MutedText.Render("Genres: " + strings.Join(record.Artist.Genres, ", ")))
				b.WriteString("\n")
			}
			if record.Artist.Followers.Total > 0 {
				b.WriteString(styles.MutedText.Render(fmt.Sprintf("Followers: %d", record.Artist.Followers.Total)))
				b.WriteString("\n")
			}
		}
		return b.String()
	}

	return styles.MutedText.Render("No details available.")
}

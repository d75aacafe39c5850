package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"mediadiary/internal/logedit"
	"mediadiary/internal/media"
	"mediadiary/internal/metadata"
	"mediadiary/internal/metadata/spotify"
	"mediadiary/internal/metadata/tmdb"
	"mediadiary/internal/session"
)

// handleSearchInputKey drives the query text field.
func (m Model) handleSearchInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape):
		m.searchTyping = false
		m.searchInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		query := strings.TrimSpace(m.searchInput.Value())
		if query == "" {
			return m, nil
		}
		return m, searchCmd(m.ctx, m.catalog, m.music, m.tokens, query, m.sess.Preference.MediaTypes)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleSearchResultsKey navigates and acts on the result list.
func (m Model) handleSearchResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.searchResults)

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.searchCursor < count-1 {
			m.searchCursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.searchCursor > 0 {
			m.searchCursor--
		}
	case key.Matches(msg, m.keys.Top):
		m.searchCursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.searchCursor = max(0, count-1)

	case key.Matches(msg, m.keys.LogItem), key.Matches(msg, m.keys.Confirm):
		if item, ok := m.selectedResult(); ok {
			m.dispatch(session.Log(item))
			m.edit = logedit.NewDefault(time.Now())
			m.episodes = nil
			m.episodesErr = nil
			m.episodeCursor = 0
		}

	case key.Matches(msg, m.keys.InfoItem):
		if item, ok := m.selectedResult(); ok {
			m.dispatch(session.Info(item))
			return m, m.fetchInfo(item)
		}
	}

	return m, nil
}

func (m Model) selectedResult() (media.Selected, bool) {
	if m.searchCursor < 0 || m.searchCursor >= len(m.searchResults) {
		return media.Selected{}, false
	}
	return m.searchResults[m.searchCursor], true
}

// fetchInfo starts (or joins) the metadata fetch for the item and returns a
// command that repaints when it lands.
func (m *Model) fetchInfo(item media.Selected) tea.Cmd {
	if m.meta == nil {
		return nil
	}
	query := metadata.Query{
		Type:     item.Type,
		FirstID:  item.MediaID,
		SecondID: item.ArtistID,
		Season:   item.Season,
	}
	m.infoHandle = m.meta.Fetch(m.ctx, query)
	return awaitMetadataCmd(m.ctx, m.infoHandle)
}

// searchCmd queries both providers and merges the results, filtered to the
// media types the user tracks. A provider that is not configured is skipped.
func searchCmd(ctx context.Context, catalog *tmdb.Client, music *spotify.Client, tokens metadata.TokenProvider, query string, tracked media.MediaTypes) tea.Cmd {
	return func() tea.Msg {
		var items []media.Selected
		var firstErr error

		if catalog != nil && (tracked.Movie || tracked.TV) {
			resp, err := catalog.SearchMulti(ctx, query, 1)
			if err != nil {
				firstErr = err
			} else {
				for _, record := range resp.Results {
					item, ok := catalogResult(record)
					if ok && tracked.Enabled(item.Type) {
						items = append(items, item)
					}
				}
			}
		}

		if music != nil && tokens != nil && tracked.Album {
			token, err := tokens.Token(ctx)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
			} else {
				resp, err := music.SearchAlbums(ctx, query, token)
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
				} else {
					for _, album := range resp.Albums.Items {
						items = append(items, albumResult(album))
					}
				}
			}
		}

		if len(items) > 0 {
			// Partial provider failures still surface whatever came back.
			firstErr = nil
		}
		return searchResultsMsg{items: items, err: firstErr}
	}
}

func catalogResult(record tmdb.Record) (media.Selected, bool) {
	var mediaType media.Type
	switch record.MediaType {
	case "movie":
		mediaType = media.TypeMovie
	case "tv":
		mediaType = media.TypeTV
	default:
		return media.Selected{}, false
	}

	released := record.ReleaseDate
	if mediaType == media.TypeTV {
		released = record.FirstAirDate
	}
	return media.Selected{
		Type:         mediaType,
		MediaID:      fmt.Sprintf("%d", record.ID),
		Title:        record.DisplayTitle(),
		Poster:       record.PosterPath,
		ReleasedDate: released,
		Overview:     record.Overview,
	}, true
}

func albumResult(album spotify.Album) media.Selected {
	item := media.Selected{
		Type:         media.TypeAlbum,
		MediaID:      album.ID,
		Title:        album.Name,
		ReleasedDate: album.ReleaseDate,
	}
	if len(album.Artists) > 0 {
		item.ArtistID = album.Artists[0].ID
		item.Artist = album.Artists[0].Name
	}
	if len(album.Images) > 0 {
		item.Poster = album.Images[0].URL
	}
	return item
}

// renderSearch draws the query field and result list.
func (m Model) renderSearch() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.AccentText.Render("Search"))
	b.WriteString("\n\n")
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	if m.searchErr != nil {
		b.WriteString(styles.DangerText.Render("search failed: " + m.searchErr.Error()))
		b.WriteString("\n")
		return b.String()
	}
	if len(m.searchResults) == 0 {
		b.WriteString(styles.MutedText.Render("No results yet. Type a query and press enter."))
		b.WriteString("\n")
		return b.String()
	}

	for i, item := range m.searchResults {
		line := fmt.Sprintf("%s %s", styles.TypeStyle(string(item.Type)).Render(string(item.Type)), resultLabel(item))
		if i == m.searchCursor {
			line = styles.Selected.Render("> " + resultLabel(item) + " [" + string(item.Type) + "]")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("l: log  i: info  esc: back"))
	return b.String()
}

func resultLabel(item media.Selected) string {
	label := item.Title
	if item.Artist != "" {
		label += " - " + item.Artist
	}
	if year := releasedYear(item.ReleasedDate); year != "" {
		label += " (" + year + ")"
	}
	return label
}

package ui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"mediadiary/internal/logedit"
	"mediadiary/internal/media"
	"mediadiary/internal/metadata"
	"mediadiary/internal/metadata/tmdb"
	"mediadiary/internal/session"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func spaceKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
}

func pressLogEditor(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.handleLogEditorKey(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("handler returned %T, want Model", next)
	}
	return out
}

func TestLogEditorDateNeverAdvancesPastToday(t *testing.T) {
	m := New(Options{})
	m.dispatch(session.Log(media.Selected{Type: media.TypeMovie, MediaID: "603", Title: "The Matrix"}))
	m.edit = logedit.NewDefault(time.Now())

	for i := 0; i < 5; i++ {
		m = pressLogEditor(t, m, runeKey(']'))
	}
	if afterToday(m.edit.DiaryDate, time.Now()) {
		t.Fatalf("DiaryDate = %v, advanced past today", m.edit.DiaryDate)
	}
}

func TestLogEditorDateStepsForwardUpToToday(t *testing.T) {
	m := New(Options{})
	m.dispatch(session.Log(media.Selected{Type: media.TypeMovie, MediaID: "603", Title: "The Matrix"}))
	m.edit = logedit.NewDefault(time.Now().AddDate(0, 0, -2))

	m = pressLogEditor(t, m, runeKey(']'))
	yesterday := time.Now().AddDate(0, 0, -1)
	if got := m.edit.DiaryDate; got.Day() != yesterday.Day() {
		t.Fatalf("DiaryDate = %v, want yesterday", got)
	}
	m = pressLogEditor(t, m, runeKey(']'))
	if got := m.edit.DiaryDate; got.Day() != time.Now().Day() {
		t.Fatalf("DiaryDate = %v, want today", got)
	}
}

func TestLogEditorEpisodeToggle(t *testing.T) {
	m := New(Options{})
	m.dispatch(session.Log(media.Selected{Type: media.TypeTV, MediaID: "1399", Season: 1, Title: "Game of Thrones"}))
	m.edit = logedit.NewDefault(time.Now())
	m.episodes = []tmdb.Episode{
		{ID: 11, EpisodeNumber: 1, Name: "Winter Is Coming"},
		{ID: 12, EpisodeNumber: 2, Name: "The Kingsroad"},
	}

	m = pressLogEditor(t, m, spaceKey())
	m = pressLogEditor(t, m, runeKey('j'))
	m = pressLogEditor(t, m, spaceKey())
	if len(m.edit.SeenEpisodes) != 2 || m.edit.SeenEpisodes[0] != 11 || m.edit.SeenEpisodes[1] != 12 {
		t.Fatalf("SeenEpisodes = %v, want [11 12]", m.edit.SeenEpisodes)
	}

	m = pressLogEditor(t, m, spaceKey())
	if len(m.edit.SeenEpisodes) != 1 || m.edit.SeenEpisodes[0] != 11 {
		t.Fatalf("SeenEpisodes = %v, want [11] after untoggle", m.edit.SeenEpisodes)
	}
}

func TestLogEditorSeasonStepResetsSeenEpisodes(t *testing.T) {
	m := New(Options{})
	m.dispatch(session.Log(media.Selected{Type: media.TypeTV, MediaID: "1399", Title: "Game of Thrones"}))
	m.edit = logedit.NewDefault(time.Now()).Set(logedit.FieldSeenEpisodes, []int64{11})
	m.episodes = []tmdb.Episode{{ID: 11, EpisodeNumber: 1}}

	m = pressLogEditor(t, m, runeKey('}'))
	if m.sess.Selected == nil || m.sess.Selected.Season != 1 {
		t.Fatalf("Selected = %#v, want season 1", m.sess.Selected)
	}
	if len(m.edit.SeenEpisodes) != 0 {
		t.Fatalf("SeenEpisodes = %v, want empty after season change", m.edit.SeenEpisodes)
	}
	if len(m.episodes) != 0 {
		t.Fatalf("episodes = %v, want cleared after season change", m.episodes)
	}

	m = pressLogEditor(t, m, runeKey('{'))
	m = pressLogEditor(t, m, runeKey('{'))
	if m.sess.Selected.Season != 0 {
		t.Fatalf("Season = %d, want clamp at 0", m.sess.Selected.Season)
	}
}

func TestLogEditorSeasonStepIgnoredWhileEditing(t *testing.T) {
	m := New(Options{})
	m.dispatch(session.Day(media.DiaryEntry{ID: "e1", MediaKey: "tv_1399", Type: media.TypeTV, Season: 2}))
	m.edit = logedit.NewFromEntry(*m.sess.Edit)
	m.dispatch(session.Edit())

	m = pressLogEditor(t, m, runeKey('}'))
	if m.sess.Edit == nil || m.sess.Edit.Season != 2 {
		t.Fatalf("Edit = %#v, want season untouched", m.sess.Edit)
	}
}

type stubCatalog struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *stubCatalog) MovieDetails(ctx context.Context, movieID int64) (*tmdb.Record, error) {
	s.mu.Lock()
	s.calls++
	err := s.err
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return &tmdb.Record{ID: movieID, Title: "The Matrix", MediaType: "movie"}, nil
}

func (s *stubCatalog) TVDetails(ctx context.Context, showID int64) (*tmdb.Record, error) {
	return nil, errors.New("not used")
}

func (s *stubCatalog) SeasonDetails(ctx context.Context, showID int64, seasonNumber int) (*tmdb.SeasonDetails, error) {
	return nil, errors.New("not used")
}

func (s *stubCatalog) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func TestInfoPanelRetryRedispatchesFailedFetch(t *testing.T) {
	stub := &stubCatalog{err: errors.New("boom")}
	m := New(Options{Metadata: metadata.NewAggregator(stub, nil, nil, nil)})

	item := media.Selected{Type: media.TypeMovie, MediaID: "603", Title: "The Matrix"}
	m.dispatch(session.Info(item))
	if cmd := m.fetchInfo(item); cmd != nil {
		cmd() // blocks until the fetch resolves
	}
	if m.infoHandle == nil || m.infoHandle.Status() != metadata.StatusError {
		t.Fatalf("handle after failed fetch = %#v", m.infoHandle)
	}

	stub.setErr(nil)
	next, cmd := m.handleInfoKey(runeKey('i'))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("retry key produced no command")
	}
	cmd()

	record, err := m.infoHandle.Result()
	if err != nil {
		t.Fatalf("retry did not re-dispatch: %v", err)
	}
	if record.Catalog == nil || record.Catalog.ID != 603 {
		t.Fatalf("record = %#v, want movie 603", record)
	}
}

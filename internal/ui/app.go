package ui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mediadiary/internal/diarystore"
	"mediadiary/internal/logedit"
	"mediadiary/internal/media"
	"mediadiary/internal/metadata"
	"mediadiary/internal/metadata/spotify"
	"mediadiary/internal/metadata/tmdb"
	"mediadiary/internal/prefs"
	"mediadiary/internal/session"
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *session.Controller
	Store      *diarystore.Store
	Metadata   *metadata.Aggregator
	Catalog    *tmdb.Client    // nil when TMDB is not configured
	Music      *spotify.Client // nil when Spotify is not configured
	Tokens     metadata.TokenProvider
	Logger     *slog.Logger
	ThemeName  string
	PrefsPath  string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Collaborators
	ctx        context.Context
	controller *session.Controller
	store      *diarystore.Store
	meta       *metadata.Aggregator
	catalog    *tmdb.Client
	music      *spotify.Client
	tokens     metadata.TokenProvider
	logger     *slog.Logger
	prefsPath  string

	// UI state
	keys     keyMap
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool
	status   string

	// View state snapshot; the controller owns the authoritative copy.
	sess session.State

	// Search surface
	searchInput   textinput.Model
	searchResults []media.Selected
	searchCursor  int
	searchErr     error
	searchTyping  bool

	// Diary surface
	entries     []media.DiaryEntry
	diaryCursor int
	diaryErr    error

	// Log editor surface
	edit          logedit.State
	episodes      []tmdb.Episode
	episodesErr   error
	episodeCursor int

	// Info surface
	infoHandle *metadata.Handle

	// Onboarding surface
	onboardPick   media.MediaTypes
	onboardCursor int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themeOrder[0]
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	input := textinput.New()
	input.Placeholder = "Search movies, shows, albums..."
	input.CharLimit = 120

	controller := opts.Controller
	if controller == nil {
		controller = session.NewController()
	}

	return Model{
		ctx:         ctx,
		controller:  controller,
		store:       opts.Store,
		meta:        opts.Metadata,
		catalog:     opts.Catalog,
		music:       opts.Music,
		tokens:      opts.Tokens,
		logger:      logger,
		prefsPath:   prefsPath,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		sess:        controller.Snapshot(),
		searchInput: input,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen}
	if m.store != nil {
		cmds = append(cmds,
			loadPreferenceCmd(m.ctx, m.store),
			loadDiaryCmd(m.ctx, m.store, m.sess.DiaryFilters),
		)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case preferenceMsg:
		if msg.err != nil {
			m.status = "preference load failed: " + msg.err.Error()
			return m, nil
		}
		if msg.found {
			m.dispatch(session.SetField(session.FieldPreference, msg.pref))
			if m.sess.View == session.ViewNone {
				m.dispatch(session.Show(session.ViewDiary))
			}
		} else {
			m.dispatch(session.SetField(session.FieldPreference, nil))
			m.onboardPick = media.MediaTypes{}
		}
		return m, nil

	case preferenceSavedMsg:
		if msg.err != nil {
			m.dispatch(session.SetField(session.FieldSaving, false))
			m.status = "preference save failed: " + msg.err.Error()
			return m, nil
		}
		m.dispatch(session.SavedPreference(msg.pref))
		m.dispatch(session.Show(session.ViewDiary))
		return m, nil

	case diaryMsg:
		m.entries = msg.entries
		m.diaryErr = msg.err
		if m.diaryCursor >= len(m.entries) {
			m.diaryCursor = max(0, len(m.entries)-1)
		}
		return m, nil

	case searchResultsMsg:
		m.searchResults = msg.items
		m.searchErr = msg.err
		m.searchCursor = 0
		m.searchTyping = false
		m.searchInput.Blur()
		return m, nil

	case entrySavedMsg:
		if msg.err != nil {
			m.dispatch(session.SetField(session.FieldSaving, false))
			m.status = "save failed: " + msg.err.Error()
			return m, nil
		}
		if msg.fromEdit {
			m.dispatch(session.SavedEdit(msg.entry))
		} else {
			m.dispatch(session.Saved())
		}
		return m, loadDiaryCmd(m.ctx, m.store, m.sess.DiaryFilters)

	case entryDeletedMsg:
		if msg.err != nil {
			m.status = "delete failed: " + msg.err.Error()
			return m, nil
		}
		m.dispatch(session.DayClose())
		return m, loadDiaryCmd(m.ctx, m.store, m.sess.DiaryFilters)

	case episodesMsg:
		m.episodes = msg.episodes
		m.episodesErr = msg.err
		if m.episodeCursor >= len(m.episodes) {
			m.episodeCursor = max(0, len(m.episodes)-1)
		}
		return m, nil

	case metadataMsg:
		// Resolution already landed on the handle; this just repaints.
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.sess.PrefStatus == session.PreferenceMissing {
		return m.renderOnboarding()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

func (m Model) renderContent() string {
	switch m.sess.View {
	case session.ViewSearch:
		return m.renderSearch()
	case session.ViewLog, session.ViewEdit:
		return m.renderLogEditor()
	case session.ViewDay:
		return m.renderDay()
	case session.ViewInfo:
		return m.renderInfo()
	case session.ViewActivity:
		return m.renderActivity()
	default:
		return m.renderDiary()
	}
}

// dispatch applies an action and refreshes the local snapshot.
func (m *Model) dispatch(action session.Action) {
	m.sess = m.controller.Dispatch(action)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.sess.PrefStatus == session.PreferenceMissing {
		return m.handleOnboardingKey(msg)
	}

	// The search input swallows everything while typing.
	if m.sess.View == session.ViewSearch && m.searchTyping {
		return m.handleSearchInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		if m.sess.View != session.ViewSearch {
			m.dispatch(session.Show(session.ViewSearch))
		}
		m.searchTyping = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Diary):
		m.dispatch(session.Show(session.ViewDiary))
		return m, loadDiaryCmd(m.ctx, m.store, m.sess.DiaryFilters)

	case key.Matches(msg, m.keys.Activity):
		m.dispatch(session.Show(session.ViewActivity))
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.sess.View == session.ViewDay {
			m.dispatch(session.DayClose())
		} else {
			m.dispatch(session.Show(session.ViewDiary))
		}
		return m, nil
	}

	switch m.sess.View {
	case session.ViewSearch:
		return m.handleSearchResultsKey(msg)
	case session.ViewLog, session.ViewEdit:
		return m.handleLogEditorKey(msg)
	case session.ViewDay:
		return m.handleDayKey(msg)
	case session.ViewInfo:
		return m.handleInfoKey(msg)
	case session.ViewDiary, session.ViewNone:
		return m.handleDiaryKey(msg)
	}

	return m, nil
}

// savePrefs persists the local display preferences. Best effort: losing a
// theme or filter choice is not worth interrupting the session over.
func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name}
	if m.sess.DiaryFilters.MediaType != nil {
		p.DiaryFilter = string(*m.sess.DiaryFilters.MediaType)
	}
	_ = prefs.Save(m.prefsPath, p)
}

// Messages

type preferenceMsg struct {
	pref  media.Preference
	found bool
	err   error
}

type preferenceSavedMsg struct {
	pref media.Preference
	err  error
}

type diaryMsg struct {
	entries []media.DiaryEntry
	err     error
}

type searchResultsMsg struct {
	items []media.Selected
	err   error
}

type entrySavedMsg struct {
	entry    media.DiaryEntry
	fromEdit bool
	err      error
}

type entryDeletedMsg struct {
	err error
}

type episodesMsg struct {
	episodes []tmdb.Episode
	err      error
}

type metadataMsg struct {
	handle *metadata.Handle
}

// Commands

func loadPreferenceCmd(ctx context.Context, store *diarystore.Store) tea.Cmd {
	return func() tea.Msg {
		pref, found, err := store.LoadPreference(ctx)
		return preferenceMsg{pref: pref, found: found, err: err}
	}
}

func loadDiaryCmd(ctx context.Context, store *diarystore.Store, filters media.DiaryFilters) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		entries, err := store.ListDiary(ctx, filters)
		return diaryMsg{entries: entries, err: err}
	}
}

func awaitMetadataCmd(ctx context.Context, handle *metadata.Handle) tea.Cmd {
	return func() tea.Msg {
		waitCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		_, _ = handle.Await(waitCtx)
		return metadataMsg{handle: handle}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

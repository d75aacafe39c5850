package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mediadiary/internal/config"
	"mediadiary/internal/diarystore"
	"mediadiary/internal/logging"
	"mediadiary/internal/media"
	"mediadiary/internal/metadata"
	"mediadiary/internal/metadata/spotify"
	"mediadiary/internal/metadata/tmdb"
	"mediadiary/internal/prefs"
	"mediadiary/internal/session"
	"mediadiary/internal/ui"
)

// Options configure the application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/mediadiary/prefs.toml
}

// Run boots the TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, logCloser, err := logging.New(logging.Options{Level: cfg.LogLevel, Path: cfg.LogPath})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logCloser.Close() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	store, err := diarystore.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open diary store: %w", err)
	}
	defer func() { _ = store.Close() }()

	var catalog *tmdb.Client
	if cfg.TMDB.APIKey != "" {
		catalog, err = tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language)
		if err != nil {
			return fmt.Errorf("init tmdb client: %w", err)
		}
	} else {
		logger.Warn("tmdb api key not configured, movie/tv search disabled")
	}

	var music *spotify.Client
	var tokens *spotify.TokenSource
	if cfg.Spotify.ClientID != "" && cfg.Spotify.ClientSecret != "" {
		music, err = spotify.New(cfg.Spotify.BaseURL)
		if err != nil {
			return fmt.Errorf("init spotify client: %w", err)
		}
		tokens, err = spotify.NewTokenSource(cfg.Spotify.TokenEndpoint, cfg.Spotify.ClientID, cfg.Spotify.ClientSecret)
		if err != nil {
			return fmt.Errorf("init spotify token source: %w", err)
		}
	} else {
		logger.Warn("spotify credentials not configured, album search disabled")
	}

	var catalogProv metadata.CatalogProvider
	if catalog != nil {
		catalogProv = catalog
	}
	var musicProv metadata.MusicProvider
	var tokenProv metadata.TokenProvider
	if music != nil {
		musicProv = music
		tokenProv = tokens
	}
	meta := metadata.NewAggregator(catalogProv, musicProv, tokenProv, logger)

	controller := session.NewController()

	// Restore the diary filter the user last narrowed to.
	if mediaType, ok := userPrefs.FilterType(); ok {
		controller.Dispatch(session.Filter(media.DiaryFilters{MediaType: &mediaType}))
	}

	// Keep the controller's preference in step with out-of-band writes to
	// the preference document.
	StartPreferenceWatcher(ctx, store, controller, defaultWatchInterval, logger)

	logger.Info("starting",
		slog.String("db", cfg.DatabasePath),
		slog.Bool("tmdb", catalog != nil),
		slog.Bool("spotify", music != nil))

	return ui.Run(ui.Options{
		Context:    ctx,
		Controller: controller,
		Store:      store,
		Metadata:   meta,
		Catalog:    catalog,
		Music:      music,
		Tokens:     tokenProv,
		Logger:     logger,
		ThemeName:  userPrefs.Theme,
		PrefsPath:  opts.PrefsPath,
	})
}

const defaultWatchInterval = 2 * time.Second

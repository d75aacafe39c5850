package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"mediadiary/internal/media"
	"mediadiary/internal/metadata/spotify"
	"mediadiary/internal/metadata/tmdb"
)

// Query identifies one metadata fetch. FirstID is the primary provider ID
// (TMDB ID for movies/TV, Spotify album ID for albums); SecondID is the
// Spotify artist ID and only meaningful for albums; Season selects the TV
// season sub-resource when positive.
type Query struct {
	Type     media.Type
	FirstID  string
	SecondID string
	Season   int
}

func (q Query) key() string {
	return fmt.Sprintf("%s|%s|%s|%d", q.Type, q.FirstID, q.SecondID, q.Season)
}

// Record is the unified fetch result, discriminated by Type: movies and TV
// populate Catalog (or SeasonInfo when a season was requested), albums
// populate the Album/Artist pair.
type Record struct {
	Type       media.Type
	Catalog    *tmdb.Record
	SeasonInfo *tmdb.SeasonDetails
	Album      *spotify.Album
	Artist     *spotify.Artist
}

// CatalogProvider is the single-call catalog lookup surface (TMDB).
type CatalogProvider interface {
	MovieDetails(ctx context.Context, movieID int64) (*tmdb.Record, error)
	TVDetails(ctx context.Context, showID int64) (*tmdb.Record, error)
	SeasonDetails(ctx context.Context, showID int64, seasonNumber int) (*tmdb.SeasonDetails, error)
}

// MusicProvider is the two-call album+artist lookup surface (Spotify).
type MusicProvider interface {
	Album(ctx context.Context, albumID, token string) (*spotify.Album, error)
	Artist(ctx context.Context, artistID, token string) (*spotify.Artist, error)
}

// TokenProvider supplies bearer tokens for the music provider.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Aggregator dispatches metadata fetches to the right provider and caches
// results per query. Safe for concurrent use.
type Aggregator struct {
	catalog CatalogProvider
	music   MusicProvider
	tokens  TokenProvider
	logger  *slog.Logger

	mu    sync.Mutex
	cache map[string]*Handle
}

// NewAggregator builds an aggregator over the given providers. The logger
// may be nil.
func NewAggregator(catalog CatalogProvider, music MusicProvider, tokens TokenProvider, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Aggregator{
		catalog: catalog,
		music:   music,
		tokens:  tokens,
		logger:  logger,
		cache:   make(map[string]*Handle),
	}
}

// Fetch returns the handle for the query, starting a provider fetch only
// when no usable entry exists. Ready handles are permanent cache hits and
// pending handles are joined, so concurrent callers with the same query
// share one upstream attempt. Error handles are not treated as hits: the
// next Fetch for that query re-dispatches.
//
// The fetch runs to completion even if the caller's context is cancelled;
// a surface that stopped observing the key simply ignores the result.
func (a *Aggregator) Fetch(ctx context.Context, query Query) *Handle {
	key := query.key()

	a.mu.Lock()
	if existing, ok := a.cache[key]; ok && existing.Status() != StatusError {
		a.mu.Unlock()
		return existing
	}
	handle := newHandle(query)
	a.cache[key] = handle
	a.mu.Unlock()

	go a.dispatch(context.WithoutCancel(ctx), handle)
	return handle
}

// Lookup returns the cached handle for the query without dispatching.
func (a *Aggregator) Lookup(query Query) (*Handle, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	handle, ok := a.cache[query.key()]
	return handle, ok
}

func (a *Aggregator) dispatch(ctx context.Context, handle *Handle) {
	record, err := a.resolve(ctx, handle.query)
	if err != nil {
		a.logger.Warn("metadata fetch failed",
			slog.String("type", string(handle.query.Type)),
			slog.String("first_id", handle.query.FirstID),
			slog.Any("error", err))
	}
	handle.resolve(record, err)
}

func (a *Aggregator) resolve(ctx context.Context, query Query) (Record, error) {
	switch query.Type {
	case media.TypeMovie, media.TypeTV:
		return a.resolveCatalog(ctx, query)
	case media.TypeAlbum:
		return a.resolveMusic(ctx, query)
	default:
		return Record{}, fmt.Errorf("unsupported media type %q", query.Type)
	}
}

func (a *Aggregator) resolveCatalog(ctx context.Context, query Query) (Record, error) {
	if a.catalog == nil {
		return Record{}, errors.New("catalog provider not configured")
	}
	id, err := strconv.ParseInt(query.FirstID, 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("parse catalog id %q: %w", query.FirstID, err)
	}

	record := Record{Type: query.Type}
	switch {
	case query.Type == media.TypeTV && query.Season > 0:
		season, err := a.catalog.SeasonDetails(ctx, id, query.Season)
		if err != nil {
			return Record{}, err
		}
		record.SeasonInfo = season
	case query.Type == media.TypeTV:
		show, err := a.catalog.TVDetails(ctx, id)
		if err != nil {
			return Record{}, err
		}
		record.Catalog = show
	default:
		movie, err := a.catalog.MovieDetails(ctx, id)
		if err != nil {
			return Record{}, err
		}
		record.Catalog = movie
	}
	return record, nil
}

func (a *Aggregator) resolveMusic(ctx context.Context, query Query) (Record, error) {
	if a.music == nil || a.tokens == nil {
		return Record{}, errors.New("music provider not configured")
	}
	if query.SecondID == "" {
		return Record{}, errors.New("album fetch requires an artist id")
	}
	token, err := a.tokens.Token(ctx)
	if err != nil {
		return Record{}, fmt.Errorf("obtain music token: %w", err)
	}

	record := Record{Type: media.TypeAlbum}
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		album, err := a.music.Album(groupCtx, query.FirstID, token)
		if err != nil {
			return fmt.Errorf("fetch album: %w", err)
		}
		record.Album = album
		return nil
	})
	group.Go(func() error {
		artist, err := a.music.Artist(groupCtx, query.SecondID, token)
		if err != nil {
			return fmt.Errorf("fetch artist: %w", err)
		}
		record.Artist = artist
		return nil
	})
	if err := group.Wait(); err != nil {
		return Record{}, err
	}
	return record, nil
}

package tmdb_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"mediadiary/internal/metadata/tmdb"
)

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := tmdb.New("", "https://example.com", "en-US"); err == nil {
		t.Fatal("expected error when api key missing")
	}
}

func TestMovieDetailsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/603" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("api_key") != "key" {
			t.Fatalf("expected api_key query parameter, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":603,"title":"The Matrix","release_date":"1999-03-31"}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "en-US")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	record, err := client.MovieDetails(context.Background(), 603)
	if err != nil {
		t.Fatalf("MovieDetails returned error: %v", err)
	}
	if record.Title != "The Matrix" || record.MediaType != "movie" {
		t.Fatalf("unexpected record: %#v", record)
	}
}

func TestSeasonDetailsPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tv/1399/season/2" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":2,"season_number":2,"episodes":[{"id":10,"episode_number":1}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	season, err := client.SeasonDetails(context.Background(), 1399, 2)
	if err != nil {
		t.Fatalf("SeasonDetails returned error: %v", err)
	}
	if len(season.Episodes) != 1 || season.Episodes[0].ID != 10 {
		t.Fatalf("unexpected season: %#v", season)
	}
}

func TestTVDetailsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.TVDetails(context.Background(), 42); err == nil {
		t.Fatal("expected error when TMDB returns non-200")
	}
}

func TestSearchMultiEmptyQuery(t *testing.T) {
	client, err := tmdb.New("key", "https://example.com", "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.SearchMulti(context.Background(), "  ", 1); err == nil {
		t.Fatal("expected error for empty query")
	}
}

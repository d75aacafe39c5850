package spotify_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"mediadiary/internal/metadata/spotify"
)

func TestAlbumSendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/albums/4aawyAB9vmqN3uQ7FjRGTy" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Fatalf("Authorization = %q, want Bearer tok", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"4aawyAB9vmqN3uQ7FjRGTy","name":"Global Warming","artists":[{"id":"art","name":"Pitbull"}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := spotify.New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	album, err := client.Album(context.Background(), "4aawyAB9vmqN3uQ7FjRGTy", "tok")
	if err != nil {
		t.Fatalf("Album returned error: %v", err)
	}
	if album.Name != "Global Warming" || len(album.Artists) != 1 {
		t.Fatalf("unexpected album: %#v", album)
	}
}

func TestAlbumRequiresToken(t *testing.T) {
	client, err := spotify.New("https://example.com")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Album(context.Background(), "abc", ""); err == nil {
		t.Fatal("expected error when token missing")
	}
}

func TestArtistHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	client, err := spotify.New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Artist(context.Background(), "art", "tok"); err == nil {
		t.Fatal("expected error when spotify returns non-200")
	}
}

func TestSearchAlbums(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("q") != "graceland" || query.Get("type") != "album" {
			t.Fatalf("unexpected query %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"albums":{"items":[{"id":"a1","name":"Graceland"}],"total":1}}`))
	}))
	t.Cleanup(server.Close)

	client, err := spotify.New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	resp, err := client.SearchAlbums(context.Background(), "graceland", "tok")
	if err != nil {
		t.Fatalf("SearchAlbums returned error: %v", err)
	}
	if len(resp.Albums.Items) != 1 || resp.Albums.Items[0].ID != "a1" {
		t.Fatalf("unexpected response: %#v", resp)
	}
}

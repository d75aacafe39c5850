package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Image is a Spotify artwork reference.
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ArtistRef is the slim artist reference embedded in album payloads.
type ArtistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Track is one album track.
type Track struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TrackNumber int    `json:"track_number"`
	DurationMS  int    `json:"duration_ms"`
}

// Album is a full album record.
type Album struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	ReleaseDate string      `json:"release_date"`
	Label       string      `json:"label"`
	Images      []Image     `json:"images"`
	Artists     []ArtistRef `json:"artists"`
	Genres      []string    `json:"genres"`
	Tracks      struct {
		Items []Track `json:"items"`
	} `json:"tracks"`
}

// Artist is a full artist record.
type Artist struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Images    []Image  `json:"images"`
	Genres    []string `json:"genres"`
	Followers struct {
		Total int64 `json:"total"`
	} `json:"followers"`
}

// AlbumSearchResponse models the album search payload.
type AlbumSearchResponse struct {
	Albums struct {
		Items []Album `json:"items"`
		Total int     `json:"total"`
	} `json:"albums"`
}

// Client provides read access to the Spotify Web API. Every call requires a
// bearer token from a TokenSource.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a Spotify client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("spotify base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Album fetches a full album record by Spotify ID.
func (c *Client) Album(ctx context.Context, albumID, token string) (*Album, error) {
	if strings.TrimSpace(albumID) == "" {
		return nil, errors.New("album id required")
	}
	var payload Album
	if err := c.get(ctx, "/albums/"+url.PathEscape(albumID), nil, token, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Artist fetches a full artist record by Spotify ID.
func (c *Client) Artist(ctx context.Context, artistID, token string) (*Artist, error) {
	if strings.TrimSpace(artistID) == "" {
		return nil, errors.New("artist id required")
	}
	var payload Artist
	if err := c.get(ctx, "/artists/"+url.PathEscape(artistID), nil, token, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// SearchAlbums searches for albums by name.
func (c *Client) SearchAlbums(ctx context.Context, query, token string) (*AlbumSearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "album")
	var payload AlbumSearchResponse
	if err := c.get(ctx, "/search", params, token, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, token string, dest any) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("bearer token required")
	}
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse spotify url: %w", err)
	}
	if params != nil {
		endpoint.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("spotify %s returned %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode spotify response: %w", err)
	}
	return nil
}

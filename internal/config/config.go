package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// TMDB configures the movie/TV catalog provider.
type TMDB struct {
	APIKey   string
	BaseURL  string
	Language string
}

// Spotify configures the music provider and its token exchange.
type Spotify struct {
	ClientID      string
	ClientSecret  string
	BaseURL       string
	TokenEndpoint string
}

// Config is the resolved application configuration.
type Config struct {
	TMDB    TMDB
	Spotify Spotify

	DatabasePath string
	LogPath      string
	LogLevel     string
}

const (
	defaultConfigPath   = "~/.config/mediadiary/config.toml"
	defaultDatabasePath = "~/.local/share/mediadiary/diary.db"
	defaultLogPath      = "~/.local/share/mediadiary/mediadiary.log"
	defaultLogLevel     = "info"

	defaultTMDBBaseURL  = "https://api.themoviedb.org/3"
	defaultTMDBLanguage = "en-US"
	defaultSpotifyAPI   = "https://api.spotify.com/v1"
	defaultSpotifyToken = "https://accounts.spotify.com/api/token"
)

// Load locates and parses the config file, falling back to defaults when it
// is missing. Provider credentials have no defaults; callers validate the
// fields they need.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		DatabasePath string `toml:"database_path"`
		LogPath      string `toml:"log_path"`
		LogLevel     string `toml:"log_level"`
		TMDB         struct {
			APIKey   string `toml:"api_key"`
			BaseURL  string `toml:"base_url"`
			Language string `toml:"language"`
		} `toml:"tmdb"`
		Spotify struct {
			ClientID      string `toml:"client_id"`
			ClientSecret  string `toml:"client_secret"`
			BaseURL       string `toml:"base_url"`
			TokenEndpoint string `toml:"token_endpoint"`
		} `toml:"spotify"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	override(&cfg.DatabasePath, raw.DatabasePath)
	override(&cfg.LogPath, raw.LogPath)
	override(&cfg.LogLevel, raw.LogLevel)
	override(&cfg.TMDB.APIKey, raw.TMDB.APIKey)
	override(&cfg.TMDB.BaseURL, raw.TMDB.BaseURL)
	override(&cfg.TMDB.Language, raw.TMDB.Language)
	override(&cfg.Spotify.ClientID, raw.Spotify.ClientID)
	override(&cfg.Spotify.ClientSecret, raw.Spotify.ClientSecret)
	override(&cfg.Spotify.BaseURL, raw.Spotify.BaseURL)
	override(&cfg.Spotify.TokenEndpoint, raw.Spotify.TokenEndpoint)

	cfg.DatabasePath = mustExpand(cfg.DatabasePath)
	cfg.LogPath = mustExpand(cfg.LogPath)

	return cfg, nil
}

func defaults() Config {
	return Config{
		TMDB: TMDB{
			BaseURL:  defaultTMDBBaseURL,
			Language: defaultTMDBLanguage,
		},
		Spotify: Spotify{
			BaseURL:       defaultSpotifyAPI,
			TokenEndpoint: defaultSpotifyToken,
		},
		DatabasePath: mustExpand(defaultDatabasePath),
		LogPath:      mustExpand(defaultLogPath),
		LogLevel:     defaultLogLevel,
	}
}

func override(dst *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*dst = trimmed
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

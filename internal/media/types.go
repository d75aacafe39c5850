package media

import (
	"fmt"
	"strings"
	"time"
)

// Type identifies which catalog a media item belongs to.
type Type string

const (
	TypeMovie Type = "movie"
	TypeTV    Type = "tv"
	TypeAlbum Type = "album"
)

// Types lists every media type in display order.
func Types() []Type {
	return []Type{TypeMovie, TypeTV, TypeAlbum}
}

// Valid reports whether t is one of the known media types.
func (t Type) Valid() bool {
	switch t {
	case TypeMovie, TypeTV, TypeAlbum:
		return true
	}
	return false
}

// Selected is a catalog item the user is currently viewing or logging.
// MediaID keys the primary provider lookup; ArtistID is only set for albums
// and Season only for TV items. The display fields are denormalized from the
// search result so surfaces can render without a metadata fetch.
type Selected struct {
	Type     Type   `json:"type"`
	MediaID  string `json:"mediaId"`
	ArtistID string `json:"artistId,omitempty"`
	Season   int    `json:"season,omitempty"`

	Title        string `json:"title"`
	Artist       string `json:"artist,omitempty"`
	Poster       string `json:"poster,omitempty"`
	Genre        string `json:"genre,omitempty"`
	ReleasedDate string `json:"releasedDate,omitempty"`
	Overview     string `json:"overview,omitempty"`
}

// Key returns the composite document key for this item, e.g. "movie_603".
func (s Selected) Key() string {
	return fmt.Sprintf("%s_%s", s.Type, s.MediaID)
}

// DiaryEntry is one logged consumption event. DiaryDate and AddedDate are
// persisted as unix milliseconds (see diarystore); SeenEpisodes is only
// meaningful for TV entries and holds episode IDs with duplicates collapsed.
type DiaryEntry struct {
	ID           string  `json:"id"`
	MediaKey     string  `json:"mediaKey"`
	Type         Type    `json:"type"`
	DiaryDate    int64   `json:"diaryDate"`
	AddedDate    int64   `json:"addedDate"`
	Rating       float64 `json:"rating"`
	LoggedBefore bool    `json:"loggedBefore"`
	SeenEpisodes []int64 `json:"seenEpisodes,omitempty"`
	Season       int     `json:"season,omitempty"`

	Title        string `json:"title"`
	Artist       string `json:"artist,omitempty"`
	Poster       string `json:"poster,omitempty"`
	Genre        string `json:"genre,omitempty"`
	ReleasedDate string `json:"releasedDate,omitempty"`
}

// DiaryTime converts the persisted millisecond timestamp to local time.
func (e DiaryEntry) DiaryTime() time.Time {
	return time.UnixMilli(e.DiaryDate).Local()
}

// AddedTime converts the persisted added timestamp to local time.
func (e DiaryEntry) AddedTime() time.Time {
	return time.UnixMilli(e.AddedDate).Local()
}

// DiaryYear returns the calendar year the entry is attributed to.
func (e DiaryEntry) DiaryYear() int {
	return e.DiaryTime().Year()
}

// ReleasedYear parses the leading year from the released date, or zero.
func (e DiaryEntry) ReleasedYear() int {
	trimmed := strings.TrimSpace(e.ReleasedDate)
	if len(trimmed) < 4 {
		return 0
	}
	var year int
	if _, err := fmt.Sscanf(trimmed[:4], "%d", &year); err != nil {
		return 0
	}
	return year
}

// MediaTypes records which catalogs the user tracks.
type MediaTypes struct {
	Movie bool `json:"movie"`
	TV    bool `json:"tv"`
	Album bool `json:"album"`
}

// Enabled reports whether the given type is tracked.
func (m MediaTypes) Enabled(t Type) bool {
	switch t {
	case TypeMovie:
		return m.Movie
	case TypeTV:
		return m.TV
	case TypeAlbum:
		return m.Album
	}
	return false
}

// Any reports whether at least one media type is tracked.
func (m MediaTypes) Any() bool {
	return m.Movie || m.TV || m.Album
}

// Preference is the user's onboarding configuration.
type Preference struct {
	MediaTypes MediaTypes `json:"mediaTypes"`
}

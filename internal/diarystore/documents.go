package diarystore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"mediadiary/internal/media"
)

const (
	diaryPrefix    = "diary/"
	mediaPrefix    = "media/"
	preferencePath = "preference"
)

func diaryPath(id string) string {
	return diaryPrefix + id
}

func mediaPath(key string) string {
	return mediaPrefix + key
}

// SaveEntry writes a diary entry, assigning a fresh ID when the entry has
// none, and returns the stored entry.
func (s *Store) SaveEntry(ctx context.Context, entry media.DiaryEntry) (media.DiaryEntry, error) {
	if strings.TrimSpace(entry.MediaKey) == "" {
		return media.DiaryEntry{}, errors.New("diary entry requires a media key")
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	encoded, err := json.Marshal(entry)
	if err != nil {
		return media.DiaryEntry{}, fmt.Errorf("encode diary entry: %w", err)
	}
	var partial map[string]any
	if err := json.Unmarshal(encoded, &partial); err != nil {
		return media.DiaryEntry{}, fmt.Errorf("decode diary entry fields: %w", err)
	}
	if err := s.Update(ctx, diaryPath(entry.ID), partial); err != nil {
		return media.DiaryEntry{}, err
	}
	return entry, nil
}

// GetEntry loads a diary entry by ID, or ErrNotFound.
func (s *Store) GetEntry(ctx context.Context, id string) (media.DiaryEntry, error) {
	raw, err := s.Get(ctx, diaryPath(id))
	if err != nil {
		return media.DiaryEntry{}, err
	}
	var entry media.DiaryEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return media.DiaryEntry{}, fmt.Errorf("decode diary entry %q: %w", id, err)
	}
	return entry, nil
}

// DeleteEntry removes a diary entry by ID.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	return s.Delete(ctx, diaryPath(id))
}

// ListDiary returns every entry matching the filters, newest diary date
// first. A zero filters value matches everything.
func (s *Store) ListDiary(ctx context.Context, filters media.DiaryFilters) ([]media.DiaryEntry, error) {
	docs, err := s.listPrefix(ctx, diaryPrefix)
	if err != nil {
		return nil, err
	}

	entries := make([]media.DiaryEntry, 0, len(docs))
	for path, raw := range docs {
		var entry media.DiaryEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, fmt.Errorf("decode diary entry at %q: %w", path, err)
		}
		if filters.Matches(entry) {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].DiaryDate != entries[j].DiaryDate {
			return entries[i].DiaryDate > entries[j].DiaryDate
		}
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}

// SaveMedia stores display metadata for a selection under its media key so
// diary rows can render without a provider round trip.
func (s *Store) SaveMedia(ctx context.Context, sel media.Selected) error {
	if strings.TrimSpace(sel.MediaID) == "" {
		return errors.New("selection has no media id")
	}
	key := sel.Key()
	encoded, err := json.Marshal(sel)
	if err != nil {
		return fmt.Errorf("encode media record: %w", err)
	}
	var partial map[string]any
	if err := json.Unmarshal(encoded, &partial); err != nil {
		return fmt.Errorf("decode media record fields: %w", err)
	}
	return s.Update(ctx, mediaPath(key), partial)
}

// GetMedia loads stored display metadata by media key, or ErrNotFound.
func (s *Store) GetMedia(ctx context.Context, key string) (media.Selected, error) {
	raw, err := s.Get(ctx, mediaPath(key))
	if err != nil {
		return media.Selected{}, err
	}
	var sel media.Selected
	if err := json.Unmarshal(raw, &sel); err != nil {
		return media.Selected{}, fmt.Errorf("decode media record %q: %w", key, err)
	}
	return sel, nil
}

// WatchPreference observes the preference document for changes.
func (s *Store) WatchPreference(ctx context.Context, interval time.Duration) <-chan WatchEvent {
	return s.Watch(ctx, preferencePath, interval)
}

// SavePreference persists the user preference record.
func (s *Store) SavePreference(ctx context.Context, pref media.Preference) error {
	return s.Update(ctx, preferencePath, map[string]any{
		"mediaTypes": map[string]any{
			"movie": pref.MediaTypes.Movie,
			"tv":    pref.MediaTypes.TV,
			"album": pref.MediaTypes.Album,
		},
	})
}

// LoadPreference returns the stored preference. found is false when the
// user has never completed onboarding.
func (s *Store) LoadPreference(ctx context.Context) (media.Preference, bool, error) {
	raw, err := s.Get(ctx, preferencePath)
	if errors.Is(err, ErrNotFound) {
		return media.Preference{}, false, nil
	}
	if err != nil {
		return media.Preference{}, false, err
	}
	var pref media.Preference
	if err := json.Unmarshal(raw, &pref); err != nil {
		return media.Preference{}, false, fmt.Errorf("decode preference: %w", err)
	}
	return pref, true, nil
}

package logedit

import (
	"slices"
	"time"

	"mediadiary/internal/media"
)

// Field names one mutable editor field.
type Field string

const (
	FieldDiaryDate    Field = "diaryDate"
	FieldRating       Field = "rating"
	FieldLoggedBefore Field = "loggedBefore"
	FieldSeenEpisodes Field = "seenEpisodes"
)

// State holds the mutable fields of an in-progress diary-entry form. One
// State exists per open editor and is discarded when the editor closes.
// Rating uses half-star granularity, 0 through 5.
type State struct {
	DiaryDate    time.Time
	Rating       float64
	LoggedBefore bool
	SeenEpisodes []int64
}

// NewDefault returns the editor state for logging a new entry.
func NewDefault(now time.Time) State {
	return State{DiaryDate: now, Rating: 0, LoggedBefore: false}
}

// NewFromEntry seeds the editor from an existing entry, converting the
// persisted millisecond timestamp to a local date value.
func NewFromEntry(entry media.DiaryEntry) State {
	return State{
		DiaryDate:    entry.DiaryTime(),
		Rating:       entry.Rating,
		LoggedBefore: entry.LoggedBefore,
		SeenEpisodes: normalizeEpisodes(entry.SeenEpisodes),
	}
}

// Set performs a shallow override of a single field and returns the updated
// state. Unknown fields and mismatched value types leave the state unchanged.
// No validation happens here; the submit path owns range checks, and the
// editing surface bounds the selectable date range so DiaryDate is never in
// the future at submit time.
func (s State) Set(field Field, value any) State {
	switch field {
	case FieldDiaryDate:
		if v, ok := value.(time.Time); ok {
			s.DiaryDate = v
		}
	case FieldRating:
		if v, ok := value.(float64); ok {
			s.Rating = v
		}
	case FieldLoggedBefore:
		if v, ok := value.(bool); ok {
			s.LoggedBefore = v
		}
	case FieldSeenEpisodes:
		if v, ok := value.([]int64); ok {
			s.SeenEpisodes = normalizeEpisodes(v)
		}
	}
	return s
}

// ToggleEpisode adds the episode to the seen set, or removes it when
// already present.
func (s State) ToggleEpisode(id int64) State {
	if slices.Contains(s.SeenEpisodes, id) {
		out := make([]int64, 0, len(s.SeenEpisodes)-1)
		for _, seen := range s.SeenEpisodes {
			if seen != id {
				out = append(out, seen)
			}
		}
		s.SeenEpisodes = out
		return s
	}
	s.SeenEpisodes = normalizeEpisodes(append(slices.Clone(s.SeenEpisodes), id))
	return s
}

// normalizeEpisodes collapses duplicates; insertion order is irrelevant so
// the set is kept sorted for stable comparisons.
func normalizeEpisodes(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

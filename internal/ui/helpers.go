package ui

import (
	"fmt"
	"strings"
	"time"
)

// ratingStars renders a half-star rating as "★★★½ (3.5)". Zero means
// unrated.
func ratingStars(rating float64) string {
	if rating <= 0 {
		return "unrated"
	}
	full := int(rating)
	half := rating-float64(full) >= 0.5

	var b strings.Builder
	b.WriteString(strings.Repeat("★", full))
	if half {
		b.WriteString("½")
	}
	fmt.Fprintf(&b, " (%.1f)", rating)
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// releasedYear extracts the leading year from a provider date string.
func releasedYear(date string) string {
	trimmed := strings.TrimSpace(date)
	if len(trimmed) < 4 {
		return ""
	}
	year := trimmed[:4]
	for _, r := range year {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return year
}

// afterToday reports whether t falls on a calendar day after now's, in
// local time. Hour-of-day differences within the same day do not count.
func afterToday(t, now time.Time) bool {
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	if ty != ny {
		return ty > ny
	}
	if tm != nm {
		return tm > nm
	}
	return td > nd
}

// mediaIDFromKey extracts the provider ID from a composite media key such
// as "movie_603".
func mediaIDFromKey(key string) string {
	if idx := strings.LastIndex(key, "_"); idx >= 0 {
		return key[idx+1:]
	}
	return key
}

// truncate shortens s to width runes with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

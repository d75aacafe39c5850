package ui

import (
	"fmt"
	"sort"
	"strings"

	"mediadiary/internal/media"
)

// yearActivity summarizes one diary year.
type yearActivity struct {
	Year      int
	Counts    map[media.Type]int
	Total     int
	RatingSum float64
	Rated     int
}

// AverageRating returns the mean of the rated entries, or zero.
func (y yearActivity) AverageRating() float64 {
	if y.Rated == 0 {
		return 0
	}
	return y.RatingSum / float64(y.Rated)
}

// activityByYear folds the diary into per-year summaries, newest first.
func activityByYear(entries []media.DiaryEntry) []yearActivity {
	byYear := make(map[int]*yearActivity)
	for _, entry := range entries {
		year := entry.DiaryYear()
		summary, ok := byYear[year]
		if !ok {
			summary = &yearActivity{Year: year, Counts: make(map[media.Type]int)}
			byYear[year] = summary
		}
		summary.Counts[entry.Type]++
		summary.Total++
		if entry.Rating > 0 {
			summary.RatingSum += entry.Rating
			summary.Rated++
		}
	}

	out := make([]yearActivity, 0, len(byYear))
	for _, summary := range byYear {
		out = append(out, *summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out
}

// renderActivity draws the per-year summary of the diary.
func (m Model) renderActivity() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.AccentText.Render("Activity"))
	b.WriteString("\n\n")

	years := activityByYear(m.entries)
	if len(years) == 0 {
		b.WriteString(styles.MutedText.Render("Nothing logged yet."))
		b.WriteString("\n")
		return b.String()
	}

	for _, year := range years {
		b.WriteString(styles.Text.Render(fmt.Sprintf("%d", year.Year)))
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("  %d logged", year.Total)))
		if year.Rated > 0 {
			b.WriteString(styles.MutedText.Render(fmt.Sprintf(", avg %s", ratingStars(year.AverageRating()))))
		}
		b.WriteString("\n")
		for _, t := range media.Types() {
			if count := year.Counts[t]; count > 0 {
				b.WriteString(fmt.Sprintf("    %-6s %d\n", string(t), count))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.FaintText.Render("d: diary  esc: back"))
	return b.String()
}

package ui

import (
	"strings"

	"mediadiary/internal/session"
)

// renderHeader draws the logo line with the current state summary.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.Logo.Render(" mediadiary "))
	b.WriteString("  ")
	b.WriteString(styles.MutedText.Render(viewTitle(m.sess.View)))
	if m.sess.Saving {
		b.WriteString("  ")
		b.WriteString(styles.WarningText.Render("saving"))
	}
	return styles.Header.Width(max(m.width, 0)).Render(b.String())
}

// renderCommandBar draws the persistent key hints.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	parts := []string{
		"/ search",
		"d diary",
		"a activity",
		"? help",
		"Q quit",
	}
	return styles.Footer.Width(max(m.width, 0)).Render(strings.Join(parts, "   "))
}

func viewTitle(v session.View) string {
	switch v {
	case session.ViewSearch:
		return "Search"
	case session.ViewLog:
		return "Log"
	case session.ViewEdit:
		return "Edit"
	case session.ViewDay:
		return "Entry"
	case session.ViewInfo:
		return "Info"
	case session.ViewActivity:
		return "Activity"
	case session.ViewDiary:
		return "Diary"
	default:
		return ""
	}
}

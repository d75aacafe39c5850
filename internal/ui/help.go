package ui

import (
	"fmt"
	"strings"
)

// renderHelp draws the full-screen help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.AccentText.Render("Keys"))
	b.WriteString("\n\n")

	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			help := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s %s\n", styles.WarningText.Render(help.Key), help.Desc))
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.FaintText.Render("Press any key to close."))
	return b.String()
}

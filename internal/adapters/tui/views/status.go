package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"archeologist/internal/adapters/tui/styles"
)

// Stats are the counts shown in the status bar
type Stats struct {
	Nodes    int
	Links    int
	Clusters int
	Stale    bool
}

// RenderStatusBar draws the bottom line: counts on the left, a transient
// message and key hints on the right
func RenderStatusBar(width int, stats Stats, message string, isErr bool) string {
	left := styles.StatusKey.Render("archeologist") +
		styles.StatusText.Render(fmt.Sprintf("%d nodes · %d links · %d clusters", stats.Nodes, stats.Links, stats.Clusters))
	if stats.Stale {
		left += "  " + RenderMessage("cached", true)
	}

	right := RenderMessage(message, isErr)
	if right == "" {
		right = RenderHelpLine(Keys.Search, Keys.Chat, Keys.Overview, Keys.Help)
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - styles.StatusBar.GetHorizontalFrameSize()
	if gap < 1 {
		right = ""
		gap = max(width-lipgloss.Width(left)-styles.StatusBar.GetHorizontalFrameSize(), 0)
	}
	return styles.StatusBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

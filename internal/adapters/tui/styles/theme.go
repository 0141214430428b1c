// Package styles holds the dark theme shared by every pane.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"archeologist/internal/domain"
)

// Colors
var (
	Primary   = lipgloss.Color("#0A84FF")
	Secondary = lipgloss.Color("#30D158")
	Muted     = lipgloss.Color("#6B7280")
	Warning   = lipgloss.Color("#FF9F0A")
	Error     = lipgloss.Color("#FF375F")
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")
	Surface   = lipgloss.Color("#1C1C23")
	Edge      = lipgloss.Color("#3A3A44")
	CodeText  = lipgloss.Color("#D1D5DB")
)

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func strong(c lipgloss.Color) lipgloss.Style {
	return fg(c).Bold(true)
}

func boxed(border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1)
}

// Panes and splitters
var (
	Pane           = boxed(Edge)
	PaneActive     = boxed(Primary)
	Title          = strong(White)
	Subtitle       = fg(Muted).Italic(true)
	Splitter       = fg(Edge)
	SplitterActive = strong(Primary)
)

// Graph canvas and lists
var (
	GraphLink    = fg(Edge)
	NodeSelected = strong(White)
	ListSelected = strong(White).Background(Primary)
)

// Status bar
var (
	StatusBar  = fg(White).Background(Surface).Padding(0, 1)
	StatusKey  = fg(White).Background(Primary).Padding(0, 1).MarginRight(1)
	StatusText = fg(Muted)
)

// Inputs, help and chat
var (
	InputLabel    = strong(Secondary)
	InputField    = boxed(Edge)
	InputFocused  = boxed(Primary)
	HelpKey       = strong(Primary)
	HelpDesc      = fg(Muted)
	HelpSeparator = fg(Muted).SetString(" • ")
	ChatUser      = strong(Primary)
	ChatSystem    = fg(White)
)

// Messages and text
var (
	Success   = strong(Secondary)
	ErrorMsg  = strong(Error)
	Code      = fg(CodeText)
	MutedText = fg(Muted)
)

// ClusterColor returns the palette color for a cluster ID
func ClusterColor(id domain.ClusterID) lipgloss.Color {
	return lipgloss.Color(domain.ClusterColor(id))
}

// ClusterDot renders a colored bullet for a cluster
func ClusterDot(id domain.ClusterID) string {
	return fg(ClusterColor(id)).Render("●")
}

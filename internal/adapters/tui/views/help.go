package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"archeologist/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// CloseHelpMsg is sent when the help overlay is dismissed
type CloseHelpMsg struct{}

// HelpModel is the model for the help view
type HelpModel struct {
	width  int
	height int
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (*HelpModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, HelpKeys.Close) {
		return m, func() tea.Msg {
			return CloseHelpMsg{}
		}
	}
	return m, nil
}

// helpSections lists the key reference, one block per area
var helpSections = []struct {
	title string
	rows  [][2]string
}{
	{"Camera", [][2]string{
		{"click node", "Focus node / click again to release"},
		{"← → / h l", "Orbit"},
		{"↑ ↓ / k j", "Tilt"},
		{"+ / - / wheel", "Zoom"},
		{"o", "Back to overview"},
		{"esc", "Clear selection"},
	}},
	{"Panels", [][2]string{
		{"tab", "Switch between graph and clusters"},
		{"enter", "Fly to the highlighted cluster"},
		{"[ / ]", "Page through clusters"},
		{"drag │ ─", "Resize panels"},
	}},
	{"Actions", [][2]string{
		{"/", "Search nodes by name"},
		{"c", "Ask the backend a question"},
		{"y", "Copy the selected node ID"},
		{"e", "Open the selected node in $EDITOR"},
		{"r", "Reload the graph"},
	}},
	{"General", [][2]string{
		{"?", "Toggle help"},
		{"q / Ctrl+C", "Quit"},
	}},
}

// View renders the key reference centered on screen
func (m *HelpModel) View() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Code Archaeologist") + "\n\n")
	b.WriteString(styles.Subtitle.Render("Explore a codebase as a 3D call graph") + "\n\n")

	for _, sec := range helpSections {
		b.WriteString(styles.InputLabel.Render(sec.title) + "\n")
		for _, row := range sec.rows {
			b.WriteString(helpLine(row[0], row[1]))
		}
		b.WriteByte('\n')
	}

	b.WriteString(RenderKeyHelp(HelpKeys.Close))

	box := styles.Pane.Padding(1, 2).Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

// SetSize updates the view dimensions
func (m *HelpModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

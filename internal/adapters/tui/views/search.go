package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"archeologist/internal/adapters/tui/styles"
	"archeologist/internal/domain"
	"archeologist/internal/ports"
)

// SearchSelectMsg is sent when a search result is picked
type SearchSelectMsg struct {
	Node *domain.Node
}

// SearchBlurMsg is sent when the search input gives up focus
type SearchBlurMsg struct{}

// SearchModel is the search bar and its results dropdown. The query and
// results live in the navigator; the model only tracks input focus and the
// highlighted row.
type SearchModel struct {
	nav    ports.Navigator
	input  textinput.Model
	cursor int
	shown  bool
}

// NewSearchModel creates a search bar bound to nav
func NewSearchModel(nav ports.Navigator) *SearchModel {
	input := textinput.New()
	input.Placeholder = "Search nodes by name..."
	input.Prompt = "⌕ "

	return &SearchModel{nav: nav, input: input}
}

// Focus activates the input. A non-empty query shows its results again.
func (m *SearchModel) Focus() tea.Cmd {
	if q := m.input.Value(); strings.TrimSpace(q) != "" {
		m.nav.Search(q)
		m.shown = true
	}
	return m.input.Focus()
}

// Blur releases the input and hides the dropdown, keeping the query
func (m *SearchModel) Blur() {
	m.input.Blur()
	m.shown = false
}

// Focused reports whether the input has focus
func (m *SearchModel) Focused() bool {
	return m.input.Focused()
}

// Reset empties the input after the navigator cleared the search
func (m *SearchModel) Reset() {
	m.input.SetValue("")
	m.cursor = 0
	m.shown = false
}

// Results returns the dropdown rows currently shown
func (m *SearchModel) Results() domain.SearchResults {
	if !m.shown {
		return domain.SearchResults{}
	}
	return m.nav.SearchState()
}

// Update handles input while focused
func (m *SearchModel) Update(msg tea.Msg) (*SearchModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		results := m.nav.SearchState()
		switch {
		case key.Matches(keyMsg, InputKeys.Cancel):
			m.nav.ClearSearch()
			m.Reset()
			m.input.Blur()
			return m, func() tea.Msg { return SearchBlurMsg{} }

		case key.Matches(keyMsg, InputKeys.Leave):
			m.Blur()
			return m, func() tea.Msg { return SearchBlurMsg{} }

		case key.Matches(keyMsg, InputKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(keyMsg, InputKeys.Down):
			if m.cursor < len(results.Nodes)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(keyMsg, InputKeys.Submit):
			if !m.shown || m.cursor >= len(results.Nodes) {
				return m, nil
			}
			return m, m.pick(results.Nodes[m.cursor])
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if q := m.input.Value(); q != before {
		results := m.nav.Search(q)
		m.shown = results.Visible
		m.cursor = 0
	}
	return m, cmd
}

// Pick selects the result on the given dropdown row
func (m *SearchModel) Pick(row int) tea.Cmd {
	results := m.Results()
	if row < 0 || row >= len(results.Nodes) {
		return nil
	}
	return m.pick(results.Nodes[row])
}

func (m *SearchModel) pick(n *domain.Node) tea.Cmd {
	m.Reset()
	m.input.Blur()
	return func() tea.Msg { return SearchSelectMsg{Node: n} }
}

// DropdownLines returns the dropdown rows, top to bottom
func (m *SearchModel) DropdownLines(width int) []string {
	results := m.Results()
	if !results.Visible {
		return nil
	}
	if results.Empty() {
		return []string{styles.MutedText.Render("  No nodes found")}
	}

	lines := make([]string, 0, len(results.Nodes))
	for i, n := range results.Nodes {
		tag := "Cluster " + n.Cluster.String()
		name := Truncate(n.Name, width-len(tag)-lenFile(n)-8)
		text := fmt.Sprintf("%s %s %s  %s", styles.ClusterDot(n.Cluster), name,
			styles.MutedText.Render(n.FileName()), styles.MutedText.Render(tag))
		if i == m.cursor {
			text = styles.ListSelected.Render("›") + " " + text
		} else {
			text = "  " + text
		}
		lines = append(lines, text)
	}
	return lines
}

func lenFile(n *domain.Node) int {
	return len(n.FileName())
}

// View renders the input box
func (m *SearchModel) View(width int) string {
	style := styles.InputField
	if m.input.Focused() {
		style = styles.InputFocused
	}
	m.input.Width = max(width-style.GetHorizontalFrameSize()-len(m.input.Prompt)-1, 1)
	return style.Width(width - style.GetHorizontalBorderSize()).Render(m.input.View())
}

package views

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archeologist/internal/application"
	"archeologist/internal/domain"
)

type nopAnimator struct{}

func (nopAnimator) AnimateTo(position, lookAt domain.Vec3, duration time.Duration) {}

func newSearchNavigator() *application.Navigator {
	nodes := []*domain.Node{
		{ID: "auth.py::login", Name: "login", File: "src/auth.py", Cluster: domain.NumericClusterID(1)},
		{ID: "auth.py::logout", Name: "logout", File: "src/auth.py", Cluster: domain.NumericClusterID(1)},
		{ID: "db.py::connect", Name: "connect", File: "src/db.py", Cluster: domain.NumericClusterID(2)},
	}
	for i, n := range nodes {
		n.SetPosition(domain.Vec3{X: float64(10 * (i + 1))})
	}
	return application.NewNavigator(domain.NewGraph(nodes, nil), nopAnimator{})
}

func typeText(m *SearchModel, s string) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return cmd
}

func TestSearchModel_TypingSearches(t *testing.T) {
	nav := newSearchNavigator()
	m := NewSearchModel(nav)
	m.Focus()

	typeText(m, "log")
	results := m.Results()
	assert.True(t, results.Visible)
	assert.Len(t, results.Nodes, 2)
	assert.Len(t, m.DropdownLines(60), 2)
	assert.Equal(t, "log", nav.SearchState().Query)
}

func TestSearchModel_NoMatches(t *testing.T) {
	m := NewSearchModel(newSearchNavigator())
	m.Focus()

	typeText(m, "zzz")
	lines := m.DropdownLines(60)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "No nodes found")
}

func TestSearchModel_EscClears(t *testing.T) {
	nav := newSearchNavigator()
	m := NewSearchModel(nav)
	m.Focus()
	typeText(m, "log")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, SearchBlurMsg{}, cmd())
	assert.False(t, nav.SearchState().Visible)
	assert.Empty(t, m.DropdownLines(60))
	assert.False(t, m.Focused())
}

func TestSearchModel_RefocusShowsResults(t *testing.T) {
	m := NewSearchModel(newSearchNavigator())
	m.Focus()
	typeText(m, "conn")

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Empty(t, m.DropdownLines(60), "blur hides the dropdown")

	m.Focus()
	assert.Len(t, m.Results().Nodes, 1)
}

func TestSearchModel_SubmitPicksHighlighted(t *testing.T) {
	m := NewSearchModel(newSearchNavigator())
	m.Focus()
	typeText(m, "log")
	m.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(SearchSelectMsg)
	require.True(t, ok)
	assert.Equal(t, "logout", msg.Node.Name)
	assert.False(t, m.Focused())
}

func TestSearchModel_PickOutOfRange(t *testing.T) {
	m := NewSearchModel(newSearchNavigator())
	m.Focus()
	typeText(m, "log")

	assert.Nil(t, m.Pick(-1))
	assert.Nil(t, m.Pick(2))
	assert.NotNil(t, m.Pick(0))
}

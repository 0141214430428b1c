package views

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archeologist/internal/domain"
)

type queryBackend struct {
	answer string
	err    error
	asked  []string
}

func (b *queryBackend) FetchGraph(ctx context.Context) (*domain.Graph, error) {
	return nil, errors.New("not used")
}

func (b *queryBackend) FetchClusters(ctx context.Context) ([]domain.ClusterSummary, error) {
	return nil, errors.New("not used")
}

func (b *queryBackend) Query(ctx context.Context, text string) (string, error) {
	b.asked = append(b.asked, text)
	return b.answer, b.err
}

func TestChatModel_Greeting(t *testing.T) {
	m := NewChatModel(&queryBackend{})

	require.Len(t, m.Messages(), 1)
	assert.Equal(t, ChatGreeting, m.Messages()[0].Content)
	assert.Equal(t, RoleSystem, m.Messages()[0].Role)
}

func TestChatModel_SubmitAsksBackend(t *testing.T) {
	backend := &queryBackend{answer: "It parses config."}
	m := NewChatModel(backend)
	m.Focus()
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("what does main do?")})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.Loading())
	assert.Equal(t, RoleUser, m.Messages()[1].Role)
	assert.Contains(t, m.View(40, 10), "Analyzing")

	m.Update(ChatReplyMsg{Answer: "It parses config."})
	assert.False(t, m.Loading())
	assert.Equal(t, "It parses config.", m.Messages()[2].Content)
}

func TestChatModel_EmptySubmitIgnored(t *testing.T) {
	m := NewChatModel(&queryBackend{})
	m.Focus()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Len(t, m.Messages(), 1)
}

func TestChatModel_ErrorReply(t *testing.T) {
	m := NewChatModel(&queryBackend{})

	m.Update(ChatReplyMsg{Err: errors.New("dial tcp: refused")})
	require.Len(t, m.Messages(), 2)
	assert.Equal(t, ChatConnectionError, m.Messages()[1].Content)
}

func TestChatModel_LeaveBlurs(t *testing.T) {
	m := NewChatModel(&queryBackend{})
	m.Focus()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, ChatBlurMsg{}, cmd())
	assert.False(t, m.Focused())
}

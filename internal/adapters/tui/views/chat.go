package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"archeologist/internal/adapters/tui/styles"
	"archeologist/internal/ports"
)

const (
	// ChatGreeting opens every conversation
	ChatGreeting = "Hello! I am your Code Archaeologist. Ask me anything about this repository."

	// ChatConnectionError replaces the answer when the backend fails
	ChatConnectionError = "Connection error."
)

// ChatRole tells who wrote a chat message
type ChatRole int

const (
	RoleSystem ChatRole = iota
	RoleUser
)

// ChatMessage is one entry of the conversation
type ChatMessage struct {
	Role    ChatRole
	Content string
}

// ChatReplyMsg carries the backend's answer to a question
type ChatReplyMsg struct {
	Answer string
	Err    error
}

// ChatBlurMsg is sent when the chat input gives up focus
type ChatBlurMsg struct{}

// ChatModel is the question/answer sub-panel
type ChatModel struct {
	backend  ports.Backend
	input    textinput.Model
	history  viewport.Model
	spinner  spinner.Model
	messages []ChatMessage
	loading  bool
	width    int
}

// NewChatModel creates a chat asking backend
func NewChatModel(backend ports.Backend) *ChatModel {
	input := textinput.New()
	input.Placeholder = "Ask about the code..."
	input.Prompt = "› "

	return &ChatModel{
		backend:  backend,
		input:    input,
		history:  viewport.New(0, 0),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.HelpKey)),
		messages: []ChatMessage{{Role: RoleSystem, Content: ChatGreeting}},
	}
}

// Messages returns the conversation so far
func (m *ChatModel) Messages() []ChatMessage {
	return m.messages
}

// Loading reports whether a question is in flight
func (m *ChatModel) Loading() bool {
	return m.loading
}

// Focus activates the input
func (m *ChatModel) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur releases the input
func (m *ChatModel) Blur() {
	m.input.Blur()
}

// Focused reports whether the input has focus
func (m *ChatModel) Focused() bool {
	return m.input.Focused()
}

// Update handles input while focused, replies and spinner ticks
func (m *ChatModel) Update(msg tea.Msg) (*ChatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ChatReplyMsg:
		m.loading = false
		answer := msg.Answer
		if msg.Err != nil {
			answer = ChatConnectionError
		}
		m.messages = append(m.messages, ChatMessage{Role: RoleSystem, Content: answer})
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, InputKeys.Submit):
			return m, m.submit()
		case key.Matches(msg, InputKeys.Leave), key.Matches(msg, InputKeys.Cancel):
			m.input.Blur()
			return m, func() tea.Msg { return ChatBlurMsg{} }
		case key.Matches(msg, InputKeys.Up):
			m.history.LineUp(1)
			return m, nil
		case key.Matches(msg, InputKeys.Down):
			m.history.LineDown(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ChatModel) submit() tea.Cmd {
	text := m.input.Value()
	if strings.TrimSpace(text) == "" || m.loading {
		return nil
	}
	m.messages = append(m.messages, ChatMessage{Role: RoleUser, Content: text})
	m.input.SetValue("")
	m.loading = true
	m.refresh()

	backend := m.backend
	ask := func() tea.Msg {
		answer, err := backend.Query(context.Background(), text)
		return ChatReplyMsg{Answer: answer, Err: err}
	}
	return tea.Batch(ask, m.spinner.Tick)
}

func (m *ChatModel) refresh() {
	width := max(m.width, 10)
	var b strings.Builder
	for i, msg := range m.messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch msg.Role {
		case RoleUser:
			b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(styles.ChatUser.Render(msg.Content)))
		default:
			b.WriteString(styles.ChatSystem.Width(width).Render(msg.Content))
		}
	}
	m.history.SetContent(b.String())
	m.history.GotoBottom()
}

// View renders the pane body in width×height cells
func (m *ChatModel) View(width, height int) string {
	if width != m.width {
		m.width = width
		m.refresh()
	}
	status := ""
	if m.loading {
		status = m.spinner.View() + " " + styles.MutedText.Render("Analyzing...")
	}

	style := styles.InputField
	if m.input.Focused() {
		style = styles.InputFocused
	}
	m.input.Width = max(width-style.GetHorizontalFrameSize()-len(m.input.Prompt)-1, 1)
	input := style.Width(width - style.GetHorizontalBorderSize()).Render(m.input.View())

	m.history.Width = width
	m.history.Height = max(height-lipgloss.Height(input)-1, 0)
	return lipgloss.JoinVertical(lipgloss.Left, m.history.View(), status, input)
}

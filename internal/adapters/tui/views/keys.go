package views

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the explorer's key bindings
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	OrbitLeft  key.Binding
	OrbitRight key.Binding
	OrbitUp    key.Binding
	OrbitDown  key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	Select     key.Binding
	Overview   key.Binding
	Clear      key.Binding
	NextPane   key.Binding
	Search     key.Binding
	Chat       key.Binding
	Copy       key.Binding
	Edit       key.Binding
	Reload     key.Binding
	PrevPage   key.Binding
	NextPage   key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var Keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	OrbitLeft: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "orbit left"),
	),
	OrbitRight: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "orbit right"),
	),
	OrbitUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "tilt up"),
	),
	OrbitDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "tilt down"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "zoom out"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Overview: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "overview"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear"),
	),
	NextPane: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next pane"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Chat: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "ask"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy id"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("pgup", "["),
		key.WithHelp("[", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("pgdown", "]"),
		key.WithHelp("]", "next page"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// InputKeys are the bindings active while a text input has focus
var InputKeys = struct {
	Submit key.Binding
	Leave  key.Binding
	Cancel key.Binding
	Up     key.Binding
	Down   key.Binding
	Quit   key.Binding
}{
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	Leave:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "leave")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Up:     key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

package ports

import "os/exec"

// EditorOpener defines the interface for opening source files in an external editor
type EditorOpener interface {
	// OpenFile opens path in the user's preferred editor, jumping to line
	// when it is positive
	OpenFile(path string, line int) error

	// Command returns an exec.Cmd for opening a file in the editor
	// This is useful for integrating with bubbletea's ExecProcess
	Command(path string, line int) (*exec.Cmd, error)
}

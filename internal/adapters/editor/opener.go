package editor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"archeologist/internal/ports"
)

// Opener implements ports.EditorOpener
type Opener struct {
	root   string
	getenv func(string) string
	lookup func(string) (string, error)
}

var _ ports.EditorOpener = (*Opener)(nil)

// Option configures an Opener
type Option func(*Opener)

// WithRoot resolves relative node file paths against the analyzed repository
func WithRoot(root string) Option {
	return func(o *Opener) {
		o.root = root
	}
}

// NewOpener creates a new editor opener
func NewOpener(opts ...Option) *Opener {
	o := &Opener{getenv: os.Getenv, lookup: exec.LookPath}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// OpenFile opens a file in the user's preferred editor
func (o *Opener) OpenFile(path string, line int) error {
	cmd, err := o.Command(path, line)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening a file in the editor.
// This is useful for integrating with bubbletea's ExecProcess
func (o *Opener) Command(path string, line int) (*exec.Cmd, error) {
	if path == "" {
		return nil, fmt.Errorf("node has no source file")
	}
	editor := o.findEditor()
	if editor == "" {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	fields := strings.Fields(editor)
	args := append(fields[1:], lineArgs(fields[0], o.resolve(path), line)...)

	cmd := exec.Command(fields[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

func (o *Opener) resolve(path string) string {
	if o.root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(o.root, path)
}

// lineArgs builds the file arguments, adding the jump-to-line syntax the
// editor understands
func lineArgs(editor, path string, line int) []string {
	if line <= 0 {
		return []string{path}
	}
	n := strconv.Itoa(line)
	switch filepath.Base(editor) {
	case "code", "codium", "cursor":
		return []string{"-g", path + ":" + n}
	case "subl", "zed", "hx":
		return []string{path + ":" + n}
	case "nvim", "vim", "vi", "nano", "emacs", "emacsclient", "micro", "kak":
		return []string{"+" + n, path}
	default:
		return []string{path}
	}
}

// findEditor returns the editor to use
func (o *Opener) findEditor() string {
	if editor := strings.TrimSpace(o.getenv("EDITOR")); editor != "" {
		return editor
	}

	if visual := strings.TrimSpace(o.getenv("VISUAL")); visual != "" {
		return visual
	}

	editors := []string{"nvim", "vim", "vi", "nano", "code"}
	for _, editor := range editors {
		if path, err := o.lookup(editor); err == nil {
			return path
		}
	}

	return ""
}

package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

var fallbackEditors = []string{"nvim", "vim", "vi", "nano"}

// Opener implements ports.EditorOpener
type Opener struct {
	// Editor overrides $VISUAL and $EDITOR when set. It may carry
	// arguments, e.g. "code --wait".
	Editor   string
	lookPath func(string) (string, error)
}

// NewOpener creates a new editor opener
func NewOpener(editor string) *Opener {
	return &Opener{Editor: editor, lookPath: exec.LookPath}
}

// OpenFile opens a file in the user's preferred editor
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening a file in the editor
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	if path == "" {
		return nil, fmt.Errorf("no file to open")
	}
	args := strings.Fields(o.findEditor())
	if len(args) == 0 {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	cmd := exec.Command(args[0], append(args[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

func (o *Opener) findEditor() string {
	if o.Editor != "" {
		return o.Editor
	}
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	lookPath := o.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	for _, name := range fallbackEditors {
		if path, err := lookPath(name); err == nil {
			return path
		}
	}
	return ""
}

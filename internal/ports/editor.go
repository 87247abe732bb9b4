package ports

import "os/exec"

// EditorOpener opens animation sources in an external editor
type EditorOpener interface {
	// OpenFile opens path and waits for the editor to exit
	OpenFile(path string) error

	// Command returns the editor process for path without starting it,
	// for use with bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)
}

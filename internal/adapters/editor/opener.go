package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Opener hands bubble text to the user's editor through a temporary file
type Opener struct {
	dir string
}

// NewOpener creates an opener writing its files to dir; empty means os.TempDir
func NewOpener(dir string) *Opener {
	return &Opener{dir: dir}
}

// Session is one bubble being edited outside the program
type Session struct {
	Path string
	Cmd  *exec.Cmd
}

// Edit writes text to a fresh file and prepares the editor command for it.
// Run the command (or hand it to tea.ExecProcess), then call Result.
func (o *Opener) Edit(name, text string) (*Session, error) {
	f, err := os.CreateTemp(o.dir, name+"-*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to create edit file: %w", err)
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write edit file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, err
	}

	cmd, err := o.Command(f.Name())
	if err != nil {
		os.Remove(f.Name())
		return nil, err
	}
	return &Session{Path: f.Name(), Cmd: cmd}, nil
}

// Result reads the edited text back and removes the file.
// A single trailing newline added by the editor is dropped.
func (s *Session) Result() (string, error) {
	defer os.Remove(s.Path)
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read edit file: %w", err)
	}
	text := string(data)
	text = strings.TrimSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\r")
	return text, nil
}

// Discard removes the file without reading it
func (s *Session) Discard() {
	os.Remove(s.Path)
}

// Command returns an exec.Cmd for opening a file in the editor
// This is useful for integrating with bubbletea's ExecProcess
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	editor := findEditor()
	if editor == "" {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	// $EDITOR may carry arguments, e.g. "code --wait"
	fields := strings.Fields(editor)
	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// findEditor returns the editor to use
func findEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	for _, editor := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := exec.LookPath(editor); err == nil {
			return path
		}
	}
	return ""
}

// Package editor runs an external text editor against a temporary file.
package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/studiowebux/gist/internal/config"
)

// MaxContentSize is the largest gist accepted, in bytes
const MaxContentSize = 1024 * 1024

var (
	// ErrEmptyContent is returned for blank content
	ErrEmptyContent = errors.New("content is empty")
	// ErrContentTooLarge is returned for content above MaxContentSize
	ErrContentTooLarge = errors.New("content exceeds 1MB")
)

// ValidateContent checks content is non-blank and within size limits
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyContent
	}
	if len(content) > MaxContentSize {
		return ErrContentTooLarge
	}
	return nil
}

// Session is one editor invocation backed by a fresh temporary file
type Session struct {
	editor string
	path   string
}

// NewSession creates the temp file and writes seed into it
func NewSession(editorCmd, seed string) (*Session, error) {
	if strings.TrimSpace(editorCmd) == "" {
		return nil, fmt.Errorf("no editor configured")
	}

	f, err := os.CreateTemp("", "gist-*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := f.WriteString(seed); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}

	return &Session{editor: editorCmd, path: f.Name()}, nil
}

// Path returns the temp file path
func (s *Session) Path() string {
	return s.path
}

// Cmd builds the editor process; the editor string is split on whitespace and
// the temp file path appended as the last argument
func (s *Session) Cmd() *exec.Cmd {
	parts := strings.Fields(s.editor)
	args := append(parts[1:], s.path)
	return exec.Command(parts[0], args...)
}

// Result reads back the edited content and removes the temp file.
// runErr is the editor's exit error; it is returned as-is after cleanup.
func (s *Session) Result(runErr error) (string, error) {
	defer os.Remove(s.path)

	if runErr != nil {
		return "", fmt.Errorf("editor failed: %w", runErr)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("failed to read temp file: %w", err)
	}
	return string(data), nil
}

// Edit runs the editor attached to the current terminal and returns the result
func Edit(editorCmd, seed string) (string, error) {
	s, err := NewSession(editorCmd, seed)
	if err != nil {
		return "", err
	}

	cmd := s.Cmd()
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return s.Result(cmd.Run())
}

// EditWithSettings resolves the editor from settings and runs Edit
func EditWithSettings(settings config.Settings, seed string) (string, error) {
	return Edit(config.ResolveEditor(settings.Editor), seed)
}

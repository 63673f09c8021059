package tui

import (
	"context"
	"fmt"
	"log"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/gist/internal/config"
	"github.com/studiowebux/gist/internal/filter"
	"github.com/studiowebux/gist/internal/keybinds"
	"github.com/studiowebux/gist/internal/types"
	"github.com/studiowebux/gist/internal/worker"
)

// Clipboard is the system clipboard as seen by the viewer
type Clipboard interface {
	WriteAll(text string) error
	ReadAll() (string, error)
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }
func (systemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }

// Options configures a viewer session
type Options struct {
	// Store is handed to the background worker; the viewer never calls it directly
	Store worker.Store
	// Gists is the initial list, newest first
	Gists []types.Gist
	// Mirror, when set, is kept in sync with every applied change
	Mirror    *[]types.Gist
	Settings  config.Settings
	Keybinds  *keybinds.Registry
	Clipboard Clipboard
	// Editor overrides the editor resolved from Settings
	Editor string
}

// New creates a TUI model with its worker already started
func New(opts Options) (Model, error) {
	if opts.Store == nil {
		return Model{}, fmt.Errorf("no store provided")
	}

	registry := opts.Keybinds
	if registry == nil {
		registry = keybinds.NewDefaultRegistry()
	}

	clip := opts.Clipboard
	if clip == nil {
		clip = systemClipboard{}
	}

	editorCmd := opts.Editor
	if editorCmd == "" {
		editorCmd = config.ResolveEditor(opts.Settings.Editor)
	}

	w := worker.New(opts.Store)
	w.Start(context.Background())

	m := Model{
		worker:       w,
		keybinds:     registry,
		settings:     opts.Settings,
		editorCmd:    editorCmd,
		clipboard:    clip,
		palette:      paletteFor(opts.Settings.Theme),
		all:          append([]types.Gist(nil), opts.Gists...),
		mirror:       opts.Mirror,
		mode:         ModeNormal,
		focusedPanel: panelList,
		helpView:     viewport.New(80, 20),
	}
	m.refilter()
	m.syncMirror()

	return m, nil
}

// Close stops the worker after queued operations complete and folds their
// results into the model
func (m *Model) Close() {
	for _, res := range m.worker.Close() {
		m.applyResult(res)
	}
}

// Run starts the TUI and blocks until the user quits
func Run(opts Options) (Result, error) {
	if config.DebugEnabled() {
		f, err := tea.LogToFile(config.LogFile, "gist")
		if err != nil {
			return NoChanges, fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
	}

	m, err := New(opts)
	if err != nil {
		return NoChanges, err
	}

	// Pass pointer since Update uses pointer receiver
	p := tea.NewProgram(&m, tea.WithAltScreen())
	_, runErr := p.Run()

	m.Close()
	log.Printf("viewer closed: %s", m.sessionResult())

	if runErr != nil {
		return m.sessionResult(), fmt.Errorf("failed to run viewer: %w", runErr)
	}
	return m.sessionResult(), nil
}

// sessionResult derives the outcome from the modified flag so changes drained
// during Close are still reported
func (m *Model) sessionResult() Result {
	if m.modified {
		return Modified
	}
	return NoChanges
}

// refilter recomputes filtered from all and the applied query, then clamps
// the selection
func (m *Model) refilter() {
	m.filtered = filter.Apply(m.all, m.query)
	m.clampSelection()
}

func (m *Model) clampSelection() {
	switch {
	case len(m.filtered) == 0:
		m.selected = -1
	case m.selected < 0:
		m.selected = 0
	case m.selected >= len(m.filtered):
		m.selected = len(m.filtered) - 1
	}
}

// syncMirror copies all into the caller-owned mirror
func (m *Model) syncMirror() {
	if m.mirror == nil {
		return
	}
	*m.mirror = append((*m.mirror)[:0], m.all...)
}

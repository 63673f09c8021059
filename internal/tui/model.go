package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/gist/internal/config"
	"github.com/studiowebux/gist/internal/keybinds"
	"github.com/studiowebux/gist/internal/types"
	"github.com/studiowebux/gist/internal/worker"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeTagEdit
	ModeHelp
	ModeConfirm
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeSearch:
		return "search"
	case ModeTagEdit:
		return "tags"
	case ModeHelp:
		return "help"
	case ModeConfirm:
		return "confirm"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ConfirmKind is the action a confirmation dialog guards
type ConfirmKind int

const (
	ConfirmDelete ConfirmKind = iota
	ConfirmQuit
)

// ConfirmAction is the pending action while in ModeConfirm
type ConfirmAction struct {
	Kind ConfirmKind
	ID   int64 // only for ConfirmDelete
}

// Result reports whether the session changed stored data
type Result int

const (
	NoChanges Result = iota
	Modified
)

func (r Result) String() string {
	if r == Modified {
		return "modified"
	}
	return "no changes"
}

const (
	panelList    = "list"
	panelContent = "content"
)

// Model represents the TUI state
type Model struct {
	// Collaborators
	worker    *worker.Worker
	keybinds  *keybinds.Registry
	settings  config.Settings
	editorCmd string
	clipboard Clipboard
	palette   palette

	// Gist lists; filtered is always derived from all and query
	all      []types.Gist
	filtered []types.Gist
	mirror   *[]types.Gist
	selected int // index into filtered, -1 when filtered is empty
	query    string

	// Mode state
	mode        Mode
	confirm     ConfirmAction
	searchInput string
	tagBuffer   string
	tagTarget   int64

	// Background operations
	pending  int // mutating requests submitted but not yet drained
	modified bool

	// UI state
	width        int
	height       int
	focusedPanel string
	statusMsg    string
	statusSeq    int
	statusAt     time.Time
	helpView     viewport.Model
	helpOffset   int

	quitting bool
	result   Result
}

// Init starts the result poll loop
func (m *Model) Init() tea.Cmd {
	return pollResults()
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateHelpView()

	case pollMsg:
		cmds := []tea.Cmd{pollResults()}
		for _, res := range m.worker.Poll() {
			cmds = append(cmds, m.applyResult(res))
		}
		cmd = tea.Batch(cmds...)

	case editorFinishedMsg:
		cmd = m.handleEditorFinished(msg)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMsg = ""
		}

	case errorMsg:
		cmd = m.setStatusMessage(string(msg))
	}

	return m, cmd
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.mode {
	case ModeHelp:
		return m.renderHelp()
	case ModeConfirm:
		return m.renderConfirm(m.renderMain())
	default:
		return m.renderMain()
	}
}

// Result returns the session outcome; meaningful once the program has exited
func (m *Model) Result() Result {
	return m.result
}

// Custom message types
type pollMsg time.Time

type clearStatusMsg struct {
	seq int
}

type editorKind int

const (
	editorAdd editorKind = iota
	editorEdit
)

type editorFinishedMsg struct {
	kind     editorKind
	id       int64
	original string
	content  string
	err      error
}

type errorMsg string

func pollResults() tea.Cmd {
	return tea.Tick(PollInterval, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}

// setStatusMessage shows msg in the status bar and schedules its expiry
func (m *Model) setStatusMessage(msg string) tea.Cmd {
	m.statusMsg = truncate(msg, StatusMaxLength)
	m.statusAt = time.Now()
	m.statusSeq++

	seq := m.statusSeq
	return tea.Tick(m.messageTimeout(), func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (m *Model) messageTimeout() time.Duration {
	if m.settings.MessageTimeout > 0 {
		return time.Duration(m.settings.MessageTimeout) * time.Second
	}
	return config.DefaultMessageTimeout * time.Second
}

// statusActive reports whether the status message has not yet expired
func (m *Model) statusActive() bool {
	return m.statusMsg != "" && time.Since(m.statusAt) < m.messageTimeout()
}

// currentGist returns the selected gist, or nil when nothing is selected
func (m *Model) currentGist() *types.Gist {
	if m.selected < 0 || m.selected >= len(m.filtered) {
		return nil
	}
	return &m.filtered[m.selected]
}

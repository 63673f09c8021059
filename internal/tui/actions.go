package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/gist/internal/editor"
	"github.com/studiowebux/gist/internal/store"
	"github.com/studiowebux/gist/internal/types"
	"github.com/studiowebux/gist/internal/worker"
)

const statusInProgress = "Operation in progress"

func notFoundMessage(id int64) string {
	return fmt.Sprintf("Gist #%d not found", id)
}

// navigate moves the selection by delta, wrapping at both ends
func (m *Model) navigate(delta int) {
	n := len(m.filtered)
	if n == 0 {
		m.selected = -1
		return
	}
	m.selected = ((m.selected+delta)%n + n) % n
}

// moveClamped moves the selection by delta without wrapping
func (m *Model) moveClamped(delta int) {
	if len(m.filtered) == 0 {
		return
	}
	m.selected += delta
	m.clampSelection()
}

func (m *Model) goToTop() {
	if len(m.filtered) > 0 {
		m.selected = 0
	}
}

func (m *Model) goToBottom() {
	if len(m.filtered) > 0 {
		m.selected = len(m.filtered) - 1
	}
}

func (m *Model) scrollHelp(delta int) {
	m.helpOffset += delta
	if m.helpOffset < 0 {
		m.helpOffset = 0
	}
	if limit := m.helpMaxOffset(); m.helpOffset > limit {
		m.helpOffset = limit
	}
	m.helpView.SetYOffset(m.helpOffset)
}

// gistByID looks up a gist in the full list
func (m *Model) gistByID(id int64) *types.Gist {
	if i := types.FindByID(m.all, id); i >= 0 {
		return &m.all[i]
	}
	return nil
}

// openEditor suspends the terminal and runs the external editor on a temp file
// seeded with seed
func (m *Model) openEditor(kind editorKind, id int64, seed string) tea.Cmd {
	session, err := editor.NewSession(m.editorCmd, seed)
	if err != nil {
		return m.setStatusMessage(fmt.Sprintf("Failed to open editor: %v", err))
	}

	return tea.ExecProcess(session.Cmd(), func(runErr error) tea.Msg {
		content, err := session.Result(runErr)
		return editorFinishedMsg{
			kind:     kind,
			id:       id,
			original: seed,
			content:  content,
			err:      err,
		}
	})
}

// handleEditorFinished turns the edited buffer into an add or update request
func (m *Model) handleEditorFinished(msg editorFinishedMsg) tea.Cmd {
	if msg.err != nil {
		return m.setStatusMessage(msg.err.Error())
	}

	if err := editor.ValidateContent(msg.content); err != nil {
		if errors.Is(err, editor.ErrEmptyContent) {
			return m.setStatusMessage("No content, nothing saved")
		}
		return m.setStatusMessage(fmt.Sprintf("Not saved: %v", err))
	}

	switch msg.kind {
	case editorAdd:
		return m.submit(worker.Add(msg.content, ""))

	case editorEdit:
		if msg.content == msg.original {
			return m.setStatusMessage("No changes made")
		}
		g := m.gistByID(msg.id)
		if g == nil {
			return m.setStatusMessage(notFoundMessage(msg.id))
		}
		return m.submit(worker.Update(msg.id, msg.content, g.Tags))
	}

	return nil
}

// copySelected copies the selected gist's content to the clipboard
func (m *Model) copySelected() tea.Cmd {
	g := m.currentGist()
	if g == nil {
		return nil
	}
	if err := m.clipboard.WriteAll(g.Content); err != nil {
		return m.setStatusMessage(fmt.Sprintf("Failed to copy: %v", err))
	}
	return m.setStatusMessage(fmt.Sprintf("Copied gist #%d to clipboard", g.ID))
}

// reload asks the worker for a fresh list
func (m *Model) reload() tea.Cmd {
	return m.submit(worker.Reload())
}

// submit queues req on the worker. Mutations are refused while another one
// has not been drained yet.
func (m *Model) submit(req worker.Request) tea.Cmd {
	if req.Op.Mutates() && m.pending > 0 {
		return m.setStatusMessage(statusInProgress)
	}

	if err := m.worker.Submit(req); err != nil {
		return m.setStatusMessage(fmt.Sprintf("Failed to %s gist: %v", req.Op, err))
	}

	if req.Op.Mutates() {
		m.pending++
		m.statusMsg = ""
	} else {
		return m.setStatusMessage("Reloading...")
	}
	return nil
}

// applyResult folds one worker result into all, filtered, the mirror and the
// modified flag, then clamps the selection
func (m *Model) applyResult(res worker.Result) tea.Cmd {
	if res.Op.Mutates() && m.pending > 0 {
		m.pending--
	}

	if res.Failed() {
		if errors.Is(res.Err, store.ErrNotFound) {
			return m.setStatusMessage(notFoundMessage(res.ID))
		}
		return m.setStatusMessage(fmt.Sprintf("Failed to %s gist: %v", res.Op, res.Err))
	}

	var status string
	switch res.Op {
	case worker.OpAdd:
		if res.Gist == nil {
			return nil
		}
		m.all = append([]types.Gist{*res.Gist}, m.all...)
		m.modified = true
		m.refilter()
		if i := types.FindByID(m.filtered, res.ID); i >= 0 {
			m.selected = i
		}
		status = fmt.Sprintf("Saved as gist #%d", res.ID)

	case worker.OpUpdate:
		i := types.FindByID(m.all, res.ID)
		if i < 0 || res.Gist == nil {
			return m.setStatusMessage(notFoundMessage(res.ID))
		}
		m.all[i] = *res.Gist
		m.modified = true
		m.refilter()
		status = fmt.Sprintf("Updated gist #%d", res.ID)

	case worker.OpDelete:
		if !res.Found {
			return m.setStatusMessage(notFoundMessage(res.ID))
		}
		if i := types.FindByID(m.all, res.ID); i >= 0 {
			m.all = append(m.all[:i:i], m.all[i+1:]...)
		}
		m.modified = true
		m.refilter()
		status = fmt.Sprintf("Deleted gist #%d", res.ID)

	case worker.OpReload:
		m.all = res.Gists
		m.refilter()
		status = fmt.Sprintf("Reloaded %d gists", len(m.all))
	}

	m.syncMirror()
	return m.setStatusMessage(status)
}

// quit ends the session and records its result
func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.result = m.sessionResult()
	return tea.Quit
}

// singleLine flattens pasted text for one-line prompts
func singleLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(s)
}

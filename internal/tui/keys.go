package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/gist/internal/keybinds"
	"github.com/studiowebux/gist/internal/tags"
	"github.com/studiowebux/gist/internal/worker"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// Global keys (work in all modes)
	if action, ok := m.keybinds.Match(keybinds.ContextGlobal, msg.String()); ok && action == keybinds.ActionQuitForce {
		return m.forceQuit()
	}

	switch m.mode {
	case ModeNormal:
		return m.handleNormalKeys(msg)
	case ModeSearch, ModeTagEdit:
		return m.handleTextInputKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	case ModeConfirm:
		return m.handleConfirmKeys(msg)
	}

	return nil
}

// forceQuit exits at once when nothing changed. With unsaved session changes
// it asks first; a second press while asking exits.
func (m *Model) forceQuit() tea.Cmd {
	if !m.modified || (m.mode == ModeConfirm && m.confirm.Kind == ConfirmQuit) {
		return m.quit()
	}
	m.confirm = ConfirmAction{Kind: ConfirmQuit}
	m.mode = ModeConfirm
	return nil
}

// handleNormalKeys handles keyboard input in the list/content view
func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextNormal, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuit:
		if !m.modified {
			return m.quit()
		}
		m.confirm = ConfirmAction{Kind: ConfirmQuit}
		m.mode = ModeConfirm

	case keybinds.ActionNavigateDown:
		m.navigate(1)

	case keybinds.ActionNavigateUp:
		m.navigate(-1)

	case keybinds.ActionPageDown:
		m.moveClamped(PageSize)

	case keybinds.ActionPageUp:
		m.moveClamped(-PageSize)

	case keybinds.ActionGoToTop:
		m.goToTop()

	case keybinds.ActionGoToBottom:
		m.goToBottom()

	case keybinds.ActionSwitchFocus:
		if m.focusedPanel == panelList {
			m.focusedPanel = panelContent
		} else {
			m.focusedPanel = panelList
		}

	case keybinds.ActionOpenSearch:
		m.searchInput = ""
		m.mode = ModeSearch

	case keybinds.ActionEditTags:
		g := m.currentGist()
		if g == nil {
			return nil
		}
		m.tagTarget = g.ID
		m.tagBuffer = g.Tags
		m.mode = ModeTagEdit

	case keybinds.ActionDelete:
		g := m.currentGist()
		if g == nil {
			return nil
		}
		m.confirm = ConfirmAction{Kind: ConfirmDelete, ID: g.ID}
		m.mode = ModeConfirm

	case keybinds.ActionOpenHelp:
		m.helpOffset = 0
		m.updateHelpView()
		m.mode = ModeHelp

	case keybinds.ActionAdd:
		if m.pending > 0 {
			return m.setStatusMessage(statusInProgress)
		}
		return m.openEditor(editorAdd, 0, "")

	case keybinds.ActionEdit:
		g := m.currentGist()
		if g == nil {
			return nil
		}
		if m.pending > 0 {
			return m.setStatusMessage(statusInProgress)
		}
		return m.openEditor(editorEdit, g.ID, g.Content)

	case keybinds.ActionCopy:
		return m.copySelected()

	case keybinds.ActionReload:
		return m.reload()
	}

	return nil
}

// handleTextInputKeys handles typing in the search and tag edit prompts
func (m *Model) handleTextInputKeys(msg tea.KeyMsg) tea.Cmd {
	buf := &m.searchInput
	if m.mode == ModeTagEdit {
		buf = &m.tagBuffer
	}

	action, ok := m.keybinds.Match(keybinds.ContextTextInput, msg.String())
	if ok {
		switch action {
		case keybinds.ActionTextSubmit:
			return m.submitTextInput()

		case keybinds.ActionTextCancel:
			m.cancelTextInput()

		case keybinds.ActionTextBackspace:
			if r := []rune(*buf); len(r) > 0 {
				*buf = string(r[:len(r)-1])
			}

		case keybinds.ActionTextClear:
			*buf = ""

		case keybinds.ActionTextPaste:
			text, err := m.clipboard.ReadAll()
			if err != nil {
				return m.setStatusMessage("Failed to paste: " + err.Error())
			}
			*buf += singleLine(text)
		}
		return nil
	}

	switch msg.Type {
	case tea.KeyRunes:
		*buf += string(msg.Runes)
	case tea.KeySpace:
		*buf += " "
	}

	return nil
}

func (m *Model) submitTextInput() tea.Cmd {
	if m.mode == ModeSearch {
		m.query = m.searchInput
		m.searchInput = ""
		m.selected = 0
		m.refilter()
		m.mode = ModeNormal
		return nil
	}

	id := m.tagTarget
	buffer := m.tagBuffer
	m.tagBuffer = ""
	m.tagTarget = 0
	m.mode = ModeNormal

	g := m.gistByID(id)
	if g == nil {
		return m.setStatusMessage(notFoundMessage(id))
	}
	return m.submit(worker.Update(id, g.Content, tags.Sanitize(buffer)))
}

// cancelTextInput discards the prompt; for search it also drops the filter
func (m *Model) cancelTextInput() {
	if m.mode == ModeSearch {
		m.searchInput = ""
		m.query = ""
		m.refilter()
	} else {
		m.tagBuffer = ""
		m.tagTarget = 0
	}
	m.mode = ModeNormal
}

// handleHelpKeys handles scrolling and closing the help screen
func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextHelp, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionCloseModal:
		m.mode = ModeNormal
	case keybinds.ActionScrollDown:
		m.scrollHelp(1)
	case keybinds.ActionScrollUp:
		m.scrollHelp(-1)
	case keybinds.ActionPageDown:
		m.scrollHelp(PageSize)
	case keybinds.ActionPageUp:
		m.scrollHelp(-PageSize)
	}

	return nil
}

// handleConfirmKeys handles the delete and quit confirmation dialog
func (m *Model) handleConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextConfirm, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionConfirm:
		pending := m.confirm
		m.confirm = ConfirmAction{}
		m.mode = ModeNormal

		if pending.Kind == ConfirmQuit {
			return m.quit()
		}
		return m.submit(worker.Delete(pending.ID))

	case keybinds.ActionCancel:
		m.confirm = ConfirmAction{}
		m.mode = ModeNormal
	}

	return nil
}

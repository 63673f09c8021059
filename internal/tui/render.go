package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	overlay "github.com/rmhubbert/bubbletea-overlay"
	"github.com/studiowebux/gist/internal/keybinds"
	"github.com/studiowebux/gist/internal/tags"
	"github.com/studiowebux/gist/internal/types"
)

// palette holds the colors for one theme
type palette struct {
	title      lipgloss.TerminalColor
	focus      lipgloss.TerminalColor
	border     lipgloss.TerminalColor
	subtle     lipgloss.TerminalColor
	warning    lipgloss.TerminalColor
	selectedBg lipgloss.TerminalColor
	selectedFg lipgloss.TerminalColor
}

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
	colorSelBg  = lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}
	colorSelFg  = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"}
)

// paletteFor picks fixed colors for dark/light and adaptive ones for system
func paletteFor(theme types.Theme) palette {
	pick := func(c lipgloss.AdaptiveColor) lipgloss.TerminalColor {
		switch theme {
		case types.ThemeDark:
			return lipgloss.Color(c.Dark)
		case types.ThemeLight:
			return lipgloss.Color(c.Light)
		}
		return c
	}

	return palette{
		title:      pick(colorCyan),
		focus:      pick(colorGreen),
		border:     pick(colorGray),
		subtle:     pick(colorGray),
		warning:    pick(colorYellow),
		selectedBg: pick(colorSelBg),
		selectedFg: pick(colorSelFg),
	}
}

func (p palette) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(p.title)
}

func (p palette) subtleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.subtle)
}

func (p palette) selectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Background(p.selectedBg).Foreground(p.selectedFg)
}

// renderMain renders the list panel, content panel and status bar
func (m *Model) renderMain() string {
	listWidth := m.width * ListWidthPercent / 100
	contentWidth := m.width - listWidth
	panelHeight := m.height - StatusBarHeight - PanelBorderWidth
	if panelHeight < 1 {
		panelHeight = 1
	}

	listBorder := m.palette.border
	contentBorder := m.palette.border
	if m.focusedPanel == panelList {
		listBorder = m.palette.focus
	} else {
		contentBorder = m.palette.focus
	}

	// Inner widths exclude the border and one column of padding per side
	listInner := listWidth - PanelBorderWidth - 2
	contentInner := contentWidth - PanelBorderWidth - 2

	listBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(listBorder).
		Width(listWidth - PanelBorderWidth).
		Height(panelHeight).
		Padding(0, 1).
		Render(m.renderList(listInner, panelHeight))

	contentBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(contentBorder).
		Width(contentWidth - PanelBorderWidth).
		Height(panelHeight).
		Padding(0, 1).
		Render(m.renderContent(contentInner, panelHeight))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, listBox, contentBox)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		mainView,
		m.renderStatusBar(),
	)
}

// renderList renders one row per filtered gist, keeping the selection visible
func (m *Model) renderList(width, height int) string {
	title := fmt.Sprintf("Gists (%d)", len(m.filtered))
	if m.query != "" {
		title = fmt.Sprintf("Gists (%d/%d)", len(m.filtered), len(m.all))
	}
	lines := []string{m.palette.titleStyle().Render(title), ""}

	rows := height - PanelHeaderLines
	if rows < 1 {
		rows = 1
	}

	offset := 0
	if m.selected >= rows {
		offset = m.selected - rows + 1
	}
	end := offset + rows
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	for i := offset; i < end; i++ {
		g := m.filtered[i]
		line := fmt.Sprintf("#%d", g.ID)
		if g.Tags != "" {
			line += " " + g.Tags
		}
		line = truncate(line, width)

		if i == m.selected {
			line = m.palette.selectedStyle().Width(width).Render(line)
		}
		lines = append(lines, line)
	}

	if len(m.filtered) == 0 {
		lines = append(lines, m.palette.subtleStyle().Render("No gists"))
	}

	return strings.Join(lines, "\n")
}

// renderContent renders the selected gist wrapped to the panel width
func (m *Model) renderContent(width, height int) string {
	g := m.currentGist()
	if g == nil {
		msg := "No gists yet. Press 'a' to add one."
		if m.query != "" {
			msg = fmt.Sprintf("No gists match '%s'. Press '/' to search again.", m.query)
		}
		return m.palette.subtleStyle().Render(wordwrap.String(msg, width))
	}

	var lines []string
	lines = append(lines, m.palette.titleStyle().Render(fmt.Sprintf("Gist #%d", g.ID)))

	created := "unknown"
	if !g.CreatedAt.IsZero() {
		created = g.CreatedAt.Local().Format("2006-01-02 15:04:05")
	}
	meta := fmt.Sprintf("Created: %s", created)
	if g.Tags != "" {
		meta += " | Tags: " + g.Tags
	}
	lines = append(lines, m.palette.subtleStyle().Render(truncate(meta, width)), "")

	body := wordwrap.String(strings.ReplaceAll(g.Content, "\t", "    "), width)
	lines = append(lines, strings.Split(body, "\n")...)

	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// renderStatusBar renders the one-line footer: active message first, then the
// prompt buffer, then the key hint line
func (m *Model) renderStatusBar() string {
	left := fmt.Sprintf("%d gists", len(m.all))
	if m.pending > 0 {
		left += " | saving..."
	}

	var right string
	switch {
	case m.statusActive():
		right = m.statusMsg
	case m.mode == ModeSearch:
		right = fmt.Sprintf("Search: %s", addCursor(m.searchInput))
	case m.mode == ModeTagEdit:
		right = fmt.Sprintf("Tags #%d: %s", m.tagTarget, addCursor(m.tagBuffer))
	default:
		right = m.palette.subtleStyle().Render(m.hintLine())
	}

	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}

	return left + strings.Repeat(" ", spacing) + right
}

func (m *Model) hintLine() string {
	key := func(a keybinds.Action) string {
		if keys := m.keybinds.GetBinding(keybinds.ContextNormal, a); len(keys) > 0 {
			return keys[0]
		}
		return "-"
	}
	return fmt.Sprintf("%s search | %s add | %s edit | %s tags | %s delete | %s help | %s quit",
		key(keybinds.ActionOpenSearch),
		key(keybinds.ActionAdd),
		key(keybinds.ActionEdit),
		key(keybinds.ActionEditTags),
		key(keybinds.ActionDelete),
		key(keybinds.ActionOpenHelp),
		key(keybinds.ActionQuit))
}

// confirmSize returns the dialog size, a fixed share of the terminal
func (m *Model) confirmSize() (int, int) {
	w := m.width * ConfirmWidthPercent / 100
	h := m.height * ConfirmHeightPercent / 100
	if w < ConfirmMinWidth {
		w = ConfirmMinWidth
	}
	if h < ConfirmMinHeight {
		h = ConfirmMinHeight
	}
	if w > m.width {
		w = m.width
	}
	if h > m.height {
		h = m.height
	}
	return w, h
}

// renderConfirm draws the confirmation dialog centered over background
func (m *Model) renderConfirm(background string) string {
	question := "Quit the viewer?"
	if m.confirm.Kind == ConfirmDelete {
		question = fmt.Sprintf("Delete gist #%d?", m.confirm.ID)
	}

	confirmKey := m.keybinds.GetBindingString(keybinds.ContextConfirm, keybinds.ActionConfirm)
	cancelKey := m.keybinds.GetBindingString(keybinds.ContextConfirm, keybinds.ActionCancel)
	footer := m.palette.subtleStyle().Render(fmt.Sprintf("[%s] yes  [%s] no", confirmKey, cancelKey))

	w, h := m.confirmSize()
	dialog := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.palette.warning).
		Width(w-PanelBorderWidth).
		Height(h-PanelBorderWidth).
		Align(lipgloss.Center, lipgloss.Center).
		Render(m.palette.titleStyle().Render(question) + "\n\n" + footer)

	return overlay.Composite(dialog, background, overlay.Center, overlay.Center, 0, 0)
}

// renderHelp renders the full-screen help viewport
func (m *Model) renderHelp() string {
	closeKey := m.keybinds.GetBindingString(keybinds.ContextHelp, keybinds.ActionCloseModal)
	footer := m.palette.subtleStyle().Render(fmt.Sprintf("↑/↓ scroll | PgUp/PgDn page | %s close", closeKey))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.palette.focus).
		Padding(0, 1).
		Render(m.helpView.View())

	return lipgloss.JoinVertical(lipgloss.Left, box, footer)
}

// updateHelpView sizes the help viewport and refreshes its content
func (m *Model) updateHelpView() {
	if m.width > 0 {
		m.helpView.Width = m.width - PanelBorderWidth - 2
		m.helpView.Height = m.height - PanelBorderWidth - StatusBarHeight
		if m.helpView.Height < 1 {
			m.helpView.Height = 1
		}
	}
	m.helpView.SetContent(m.helpText())
	if m.helpOffset > m.helpMaxOffset() {
		m.helpOffset = m.helpMaxOffset()
	}
	m.helpView.SetYOffset(m.helpOffset)
}

func (m *Model) helpMaxOffset() int {
	limit := m.helpView.TotalLineCount() - m.helpView.Height
	if limit < 0 {
		return 0
	}
	return limit
}

type helpEntry struct {
	action keybinds.Action
	label  string
}

// helpText lists the active bindings so user overrides show up
func (m *Model) helpText() string {
	var sb strings.Builder

	section := func(title string, ctx keybinds.Context, entries []helpEntry) {
		sb.WriteString(m.palette.titleStyle().Render(title) + "\n")
		for _, e := range entries {
			sb.WriteString(fmt.Sprintf("  %-18s %s\n", m.keybinds.GetBindingString(ctx, e.action), e.label))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Gist - Keyboard Shortcuts\n\n")

	section("NAVIGATION", keybinds.ContextNormal, []helpEntry{
		{keybinds.ActionNavigateUp, "Previous gist (wraps)"},
		{keybinds.ActionNavigateDown, "Next gist (wraps)"},
		{keybinds.ActionPageUp, "Up 10"},
		{keybinds.ActionPageDown, "Down 10"},
		{keybinds.ActionGoToTop, "First gist"},
		{keybinds.ActionGoToBottom, "Last gist"},
		{keybinds.ActionSwitchFocus, "Switch focus (list / content)"},
	})

	section("GISTS", keybinds.ContextNormal, []helpEntry{
		{keybinds.ActionAdd, "Add a gist in the editor"},
		{keybinds.ActionEdit, "Edit selected gist in the editor"},
		{keybinds.ActionEditTags, "Edit tags of selected gist"},
		{keybinds.ActionDelete, "Delete selected gist"},
		{keybinds.ActionCopy, "Copy content to clipboard"},
		{keybinds.ActionReload, "Reload from database"},
	})

	section("SEARCH", keybinds.ContextNormal, []helpEntry{
		{keybinds.ActionOpenSearch, "Search content, tags and ids"},
	})

	section("PROMPTS", keybinds.ContextTextInput, []helpEntry{
		{keybinds.ActionTextSubmit, "Apply"},
		{keybinds.ActionTextCancel, "Cancel (search also clears the filter)"},
		{keybinds.ActionTextBackspace, "Delete last character"},
		{keybinds.ActionTextClear, "Clear"},
		{keybinds.ActionTextPaste, "Paste"},
	})

	section("GENERAL", keybinds.ContextNormal, []helpEntry{
		{keybinds.ActionOpenHelp, "Toggle help"},
		{keybinds.ActionQuit, "Quit (asks first when gists changed)"},
	})
	sb.WriteString(fmt.Sprintf("  %-18s %s\n\n", m.keybinds.GetBindingString(keybinds.ContextGlobal, keybinds.ActionQuitForce), "Quit immediately"))

	sb.WriteString(fmt.Sprintf("Tags: up to %d, comma separated\n", tags.MaxTags))

	return sb.String()
}

// addCursor adds a visible cursor (█) to a text string
func addCursor(text string) string {
	return text + "█"
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

package tui

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/gist/internal/types"
)

func TestNew_InitializesStateCorrectly(t *testing.T) {
	m, _, mirror := CreateTestModel(t, sampleGists()...)

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "focusedPanel", m.focusedPanel, panelList)
	AssertModelField(t, "selected", m.selected, 0)
	AssertModelField(t, "modified", m.modified, false)
	AssertModelField(t, "len(filtered)", len(m.filtered), 3)

	if !reflect.DeepEqual(ids(*mirror), []int64{3, 2, 1}) {
		t.Errorf("mirror = %v, want [3 2 1]", ids(*mirror))
	}
}

func TestNew_EmptyList(t *testing.T) {
	m, _, _ := CreateTestModel(t)

	AssertModelField(t, "selected", m.selected, -1)

	press(m, "j")
	press(m, "k")
	press(m, "end")
	press(m, "pgdown")
	AssertModelField(t, "selected after navigation", m.selected, -1)

	if m.currentGist() != nil {
		t.Error("currentGist() should be nil on an empty list")
	}
}

func TestNew_RequiresStore(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Error("Expected error without a store")
	}
}

func TestNavigation_Wraparound(t *testing.T) {
	m, _, _ := CreateTestModel(t, sampleGists()...)

	press(m, "k")
	AssertModelField(t, "up from first", m.selected, 2)

	press(m, "j")
	AssertModelField(t, "down from last", m.selected, 0)

	press(m, "down")
	press(m, "down")
	AssertModelField(t, "two down", m.selected, 2)

	press(m, "up")
	AssertModelField(t, "one up", m.selected, 1)
}

func TestNavigation_PageAndEndsClamp(t *testing.T) {
	gists := make([]types.Gist, 0, 25)
	for i := 25; i >= 1; i-- {
		gists = append(gists, types.Gist{ID: int64(i), Content: "x"})
	}
	m, _, _ := CreateTestModel(t, gists...)

	press(m, "pgdown")
	AssertModelField(t, "pgdown", m.selected, 10)
	press(m, "pgdown")
	press(m, "pgdown")
	AssertModelField(t, "pgdown clamps", m.selected, 24)

	press(m, "pgup")
	AssertModelField(t, "pgup", m.selected, 14)
	press(m, "pgup")
	press(m, "pgup")
	AssertModelField(t, "pgup clamps", m.selected, 0)

	press(m, "end")
	AssertModelField(t, "end", m.selected, 24)
	press(m, "home")
	AssertModelField(t, "home", m.selected, 0)
}

func TestSwitchFocus(t *testing.T) {
	m, _, _ := CreateTestModel(t, sampleGists()...)

	press(m, "tab")
	AssertModelField(t, "focus after tab", m.focusedPanel, panelContent)
	AssertModelField(t, "selection unchanged", m.selected, 0)

	press(m, "tab")
	AssertModelField(t, "focus after second tab", m.focusedPanel, panelList)
}

func TestSearch_FiltersOnEnter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{"content", "select", []int64{3}},
		{"tags case insensitive", "RUST", []int64{2}},
		{"id", "1", []int64{1}},
		{"shared substring", "e", []int64{3, 1}},
		{"no match", "python", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, _ := CreateTestModel(t, sampleGists()...)

			press(m, "/")
			AssertModelField(t, "mode", m.mode, ModeSearch)

			typeText(m, tt.query)
			press(m, "enter")

			AssertModelField(t, "mode", m.mode, ModeNormal)
			AssertModelField(t, "query", m.query, tt.query)
			if !reflect.DeepEqual(ids(m.filtered), tt.want) {
				t.Errorf("filtered = %v, want %v", ids(m.filtered), tt.want)
			}
			if len(tt.want) == 0 {
				AssertModelField(t, "selected", m.selected, -1)
			} else {
				AssertModelField(t, "selected", m.selected, 0)
			}
		})
	}
}

func TestSearch_BackspaceAndClear(t *testing.T) {
	m, _, _ := CreateTestModel(t, sampleGists()...)

	press(m, "s")
	typeText(m, "rustx")
	press(m, "backspace")
	AssertModelField(t, "after backspace", m.searchInput, "rust")

	press(m, "ctrl+k")
	AssertModelField(t, "after clear", m.searchInput, "")

	press(m, "backspace")
	AssertModelField(t, "backspace on empty", m.searchInput, "")
}

func TestSearch_EscIsIdempotent(t *testing.T) {
	m, _, _ := CreateTestModel(t, sampleGists()...)

	before := ids(m.filtered)

	press(m, "/")
	typeText(m, "sql")
	press(m, "esc")

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "searchInput", m.searchInput, "")
	AssertModelField(t, "query", m.query, "")
	if !reflect.DeepEqual(ids(m.filtered), before) {
		t.Errorf("filtered = %v, want %v", ids(m.filtered), before)
	}
}

func TestSearch_EscClearsAppliedFilter(t *testing.T) {
	m, _, _ := CreateTestModel(t, sampleGists()...)

	press(m, "/")
	typeText(m, "rust")
	press(m, "enter")
	AssertModelField(t, "len(filtered)", len(m.filtered), 1)

	press(m, "/")
	press(m, "esc")
	AssertModelField(t, "len(filtered) after esc", len(m.filtered), 3)
}

func TestSearch_QuitKeyIsText(t *testing.T) {
	m, _, _ := CreateTestModel(t, sampleGists()...)

	press(m, "/")
	cmd := press(m, "q")

	if cmd != nil {
		t.Error("q in search should not produce a command")
	}
	AssertModelField(t, "searchInput", m.searchInput, "q")
	AssertModelField(t, "quitting", m.quitting, false)
}

func TestSearch_Paste(t *testing.T) {
	m, _, _ := CreateTestModel(t, sampleGists()...)
	m.clipboard = &fakeClipboard{paste: "select\n*"}

	press(m, "/")
	press(m, "ctrl+v")
	AssertModelField(t, "searchInput", m.searchInput, "select *")
}

func TestTagEdit_RequiresSelection(t *testing.T) {
	m, _, _ := CreateTestModel(t)

	press(m, "t")
	AssertModelField(t, "mode", m.mode, ModeNormal)

	press(m, "d")
	AssertModelField(t, "mode after d", m.mode, ModeNormal)
}

func TestTagEdit_SeedsAndEscDiscards(t *testing.T) {
	m, _, _ := CreateTestModel(t, sampleGists()...)

	press(m, "t")
	AssertModelField(t, "mode", m.mode, ModeTagEdit)
	AssertModelField(t, "tagBuffer", m.tagBuffer, "sql, db")
	AssertModelField(t, "tagTarget", m.tagTarget, int64(3))

	typeText(m, ", extra")
	press(m, "esc")

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "tagBuffer", m.tagBuffer, "")
	AssertModelField(t, "pending", m.pending, 0)
	AssertModelField(t, "tags unchanged", m.all[0].Tags, "sql, db")
}

func TestHelp_Scroll(t *testing.T) {
	m, _, _ := CreateTestModel(t, sampleGists()...)
	m.height = 15

	press(m, "?")
	AssertModelField(t, "mode", m.mode, ModeHelp)
	AssertModelField(t, "helpOffset", m.helpOffset, 0)

	if m.helpMaxOffset() < PageSize+1 {
		t.Fatalf("help text too short to scroll: max offset %d", m.helpMaxOffset())
	}

	press(m, "up")
	AssertModelField(t, "floor at 0", m.helpOffset, 0)

	press(m, "down")
	AssertModelField(t, "down", m.helpOffset, 1)

	press(m, "pgdown")
	AssertModelField(t, "pgdown", m.helpOffset, 11)

	press(m, "pgup")
	press(m, "pgup")
	AssertModelField(t, "pgup floors", m.helpOffset, 0)

	press(m, "?")
	AssertModelField(t, "closed with ?", m.mode, ModeNormal)

	press(m, "?")
	press(m, "esc")
	AssertModelField(t, "closed with esc", m.mode, ModeNormal)
}

func TestQuit_WithoutChanges(t *testing.T) {
	m, _, _ := CreateTestModel(t, sampleGists()...)

	cmd := press(m, "q")
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "quitting", m.quitting, true)
	AssertModelField(t, "result", m.Result(), NoChanges)
}

func TestQuit_WithChangesAsksFirst(t *testing.T) {
	m, _, _ := CreateTestModel(t, sampleGists()...)
	m.modified = true

	if cmd := press(m, "q"); cmd != nil {
		t.Error("q with changes should not quit directly")
	}
	AssertModelField(t, "mode", m.mode, ModeConfirm)
	AssertModelField(t, "confirm kind", m.confirm.Kind, ConfirmQuit)

	press(m, "esc")
	AssertModelField(t, "mode after esc", m.mode, ModeNormal)
	AssertModelField(t, "quitting after esc", m.quitting, false)

	press(m, "q")
	cmd := press(m, "y")
	if cmd == nil {
		t.Fatal("Expected quit command after confirm")
	}
	AssertModelField(t, "quitting", m.quitting, true)
	AssertModelField(t, "result", m.Result(), Modified)
}

func TestQuit_ForceWithoutChanges(t *testing.T) {
	m, _, _ := CreateTestModel(t, sampleGists()...)

	press(m, "/")
	cmd := press(m, "ctrl+c")
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	AssertModelField(t, "quitting", m.quitting, true)
	AssertModelField(t, "result", m.Result(), NoChanges)
}

func TestQuit_ForceWithChangesAsksFirst(t *testing.T) {
	m, _, _ := CreateTestModel(t, sampleGists()...)
	m.modified = true

	press(m, "/")
	if cmd := press(m, "ctrl+c"); cmd != nil {
		t.Error("ctrl+c with changes should not quit directly")
	}
	AssertModelField(t, "mode", m.mode, ModeConfirm)
	AssertModelField(t, "confirm kind", m.confirm.Kind, ConfirmQuit)
	AssertModelField(t, "quitting", m.quitting, false)

	press(m, "esc")
	AssertModelField(t, "mode after esc", m.mode, ModeNormal)

	press(m, "ctrl+c")
	cmd := press(m, "ctrl+c")
	if cmd == nil {
		t.Fatal("Expected quit command on second ctrl+c")
	}
	AssertModelField(t, "quitting", m.quitting, true)
	AssertModelField(t, "result", m.Result(), Modified)
}

func TestCopy(t *testing.T) {
	m, _, _ := CreateTestModel(t, sampleGists()...)
	clip := &fakeClipboard{}
	m.clipboard = clip

	press(m, "j")
	press(m, "y")

	AssertModelField(t, "clipboard", clip.written, "fn main() {}")
	AssertModelField(t, "status", m.statusMsg, "Copied gist #2 to clipboard")
}

func TestCopy_FailureIsStatusOnly(t *testing.T) {
	m, _, _ := CreateTestModel(t, sampleGists()...)
	m.clipboard = &fakeClipboard{err: errors.New("no clipboard")}

	press(m, "y")

	AssertModelField(t, "mode", m.mode, ModeNormal)
	if !strings.Contains(m.statusMsg, "no clipboard") {
		t.Errorf("status = %q, want clipboard error", m.statusMsg)
	}
}

func TestStatus_ClearOnlyMatchingSequence(t *testing.T) {
	m, _, _ := CreateTestModel(t, sampleGists()...)

	m.setStatusMessage("first")
	stale := m.statusSeq
	m.setStatusMessage("second")

	m.Update(clearStatusMsg{seq: stale})
	AssertModelField(t, "status after stale clear", m.statusMsg, "second")

	m.Update(clearStatusMsg{seq: m.statusSeq})
	AssertModelField(t, "status after clear", m.statusMsg, "")
}

func TestStatus_TruncatesOnRuneBoundary(t *testing.T) {
	m, _, _ := CreateTestModel(t, sampleGists()...)

	m.setStatusMessage(strings.Repeat("é", 200))

	if !utf8.ValidString(m.statusMsg) {
		t.Fatalf("status is not valid UTF-8: %q", m.statusMsg)
	}
	if n := utf8.RuneCountInString(m.statusMsg); n != StatusMaxLength {
		t.Errorf("status length = %d runes, want %d", n, StatusMaxLength)
	}
	if !strings.HasSuffix(m.statusMsg, "...") {
		t.Errorf("status = %q, want ellipsis suffix", m.statusMsg)
	}
}

func TestStatus_Expires(t *testing.T) {
	m, _, _ := CreateTestModel(t, sampleGists()...)

	m.setStatusMessage("saved")
	if !m.statusActive() {
		t.Error("fresh status should be active")
	}

	m.statusAt = time.Now().Add(-6 * time.Second)
	if m.statusActive() {
		t.Error("status older than the timeout should not be active")
	}
	if strings.Contains(m.renderStatusBar(), "saved") {
		t.Error("expired status should not be rendered")
	}
}

func TestView_Layout(t *testing.T) {
	m, _, _ := CreateTestModel(t, sampleGists()...)

	view := m.View()
	for _, want := range []string{"Gists (3)", "#3 sql, db", "Gist #3", "SELECT * FROM users;"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	press(m, "d")
	view = m.View()
	if !strings.Contains(view, "Delete gist #3?") {
		t.Error("confirm overlay missing delete question")
	}

	press(m, "esc")
	press(m, "?")
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help view missing title")
	}
}

func TestView_StatusBarPrompts(t *testing.T) {
	m, _, _ := CreateTestModel(t, sampleGists()...)

	if !strings.Contains(m.renderStatusBar(), "/ search") {
		t.Error("status bar should show the hint line")
	}

	press(m, "/")
	typeText(m, "ru")
	if !strings.Contains(m.renderStatusBar(), "Search: ru█") {
		t.Errorf("status bar = %q, want search buffer", m.renderStatusBar())
	}

	press(m, "esc")
	press(m, "t")
	if !strings.Contains(m.renderStatusBar(), "Tags #3: sql, db█") {
		t.Errorf("status bar = %q, want tag buffer", m.renderStatusBar())
	}
}

func TestView_EmptyPlaceholder(t *testing.T) {
	m, _, _ := CreateTestModel(t)

	if !strings.Contains(m.View(), "No gists yet") {
		t.Error("empty view should show placeholder")
	}
}

func TestConfirmSize_FixedShare(t *testing.T) {
	m, _, _ := CreateTestModel(t)

	m.width, m.height = 200, 50
	w, h := m.confirmSize()
	AssertModelField(t, "width", w, 100)
	AssertModelField(t, "height", h, 10)

	m.width, m.height = 20, 4
	w, h = m.confirmSize()
	AssertModelField(t, "small width", w, 20)
	AssertModelField(t, "small height", h, 4)
}

func TestPaletteFor(t *testing.T) {
	dark := paletteFor(types.ThemeDark)
	if dark.focus != lipgloss.Color("#00ff00") {
		t.Errorf("dark focus = %v", dark.focus)
	}

	light := paletteFor(types.ThemeLight)
	if light.focus != lipgloss.Color("#006400") {
		t.Errorf("light focus = %v", light.focus)
	}

	system := paletteFor(types.ThemeSystem)
	if _, ok := system.focus.(lipgloss.AdaptiveColor); !ok {
		t.Errorf("system focus should be adaptive, got %T", system.focus)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"abc", 2, "ab"},
		{"abc", 0, ""},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

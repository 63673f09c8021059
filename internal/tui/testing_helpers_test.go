package tui

import (
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/gist/internal/config"
	"github.com/studiowebux/gist/internal/store"
	"github.com/studiowebux/gist/internal/types"
)

// fakeStore is an in-memory worker.Store for viewer tests
type fakeStore struct {
	mu     sync.Mutex
	gists  map[int64]types.Gist
	nextID int64
	failOn string
}

func newFakeStore(gists ...types.Gist) *fakeStore {
	s := &fakeStore{gists: make(map[int64]types.Gist), nextID: 1}
	for _, g := range gists {
		s.gists[g.ID] = g
		if g.ID >= s.nextID {
			s.nextID = g.ID + 1
		}
	}
	return s
}

func (s *fakeStore) Insert(content, tags string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn == "insert" {
		return 0, errors.New("disk full")
	}
	id := s.nextID
	s.nextID++
	s.gists[id] = types.Gist{ID: id, Content: content, Tags: tags, CreatedAt: time.Now()}
	return id, nil
}

func (s *fakeStore) Update(id int64, content, tags string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.gists[id]
	if !ok {
		return store.ErrNotFound
	}
	g.Content = content
	g.Tags = tags
	s.gists[id] = g
	return nil
}

func (s *fakeStore) Delete(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.gists[id]; !ok {
		return false, nil
	}
	delete(s.gists, id)
	return true, nil
}

func (s *fakeStore) Get(id int64) (*types.Gist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.gists[id]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (s *fakeStore) List(limit int, sortKey string) ([]types.Gist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Gist, 0, len(s.gists))
	for _, g := range s.gists {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeClipboard records writes and serves a fixed paste value
type fakeClipboard struct {
	written string
	paste   string
	err     error
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.written = text
	return nil
}

func (c *fakeClipboard) ReadAll() (string, error) {
	return c.paste, c.err
}

// sampleGists returns three gists, newest first
func sampleGists() []types.Gist {
	return []types.Gist{
		{ID: 3, Content: "SELECT * FROM users;", Tags: "sql, db"},
		{ID: 2, Content: "fn main() {}", Tags: "rust"},
		{ID: 1, Content: "echo hello", Tags: "bash"},
	}
}

// CreateTestModel creates a Model backed by an in-memory store. The worker
// is closed when the test ends.
func CreateTestModel(t *testing.T, gists ...types.Gist) (*Model, *fakeStore, *[]types.Gist) {
	t.Helper()

	fs := newFakeStore(gists...)
	mirror := []types.Gist{}

	m, err := New(Options{
		Store:     fs,
		Gists:     gists,
		Mirror:    &mirror,
		Settings:  config.DefaultSettings(),
		Clipboard: &fakeClipboard{},
		Editor:    "true",
	})
	if err != nil {
		t.Fatalf("Failed to create test model: %v", err)
	}
	m.width = 120
	m.height = 40

	t.Cleanup(func() {
		m.worker.Close()
	})

	return &m, fs, &mirror
}

// drainResults waits for n worker results and applies each one
func drainResults(t *testing.T, m *Model, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		select {
		case res, ok := <-m.worker.Results():
			if !ok {
				t.Fatalf("result channel closed after %d of %d results", i, n)
			}
			m.applyResult(res)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for result %d of %d", i+1, n)
		}
	}
}

// press sends one key to the model
func press(m *Model, key string) tea.Cmd {
	_, cmd := m.Update(keyMsg(key))
	return cmd
}

// typeText sends each rune as a key press
func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+k":
		return tea.KeyMsg{Type: tea.KeyCtrlK}
	case "ctrl+v":
		return tea.KeyMsg{Type: tea.KeyCtrlV}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}

// ids returns the ids of gists in order
func ids(gists []types.Gist) []int64 {
	out := make([]int64, 0, len(gists))
	for _, g := range gists {
		out = append(out, g.ID)
	}
	return out
}

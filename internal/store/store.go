package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/gist/internal/config"
	"github.com/studiowebux/gist/internal/migrations"
	"github.com/studiowebux/gist/internal/types"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when an operation targets an id that does not exist
var ErrNotFound = errors.New("gist not found")

const timestampLayout = "2006-01-02 15:04:05"

// Sort keys accepted by List
const (
	SortCreated = "created_at"
	SortID      = "id"
	SortTags    = "tags"
)

var sortColumns = map[string]string{
	"id":         "id DESC",
	"tags":       "tags DESC, id DESC",
	"created":    "created_at DESC, id DESC",
	"created_at": "created_at DESC, id DESC",
}

type Manager struct {
	db *sql.DB
}

func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite serializes writers; one connection keeps VACUUM and transactions simple
	db.SetMaxOpenConns(1)

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db}, nil
}

// Insert stores a new gist and returns its id
func (m *Manager) Insert(content, tags string) (int64, error) {
	res, err := m.db.Exec(
		"INSERT INTO gists (content, tags, created_at) VALUES (?, ?, ?)",
		content, tags, time.Now().UTC().Format(timestampLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert gist: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	return id, nil
}

// Update replaces content and tags of an existing gist
func (m *Manager) Update(id int64, content, tags string) error {
	res, err := m.db.Exec("UPDATE gists SET content = ?, tags = ? WHERE id = ?", content, tags, id)
	if err != nil {
		return fmt.Errorf("failed to update gist %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update gist %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: #%d", ErrNotFound, id)
	}
	return nil
}

// Delete removes a gist. It reports false when the id did not exist.
func (m *Manager) Delete(id int64) (bool, error) {
	res, err := m.db.Exec("DELETE FROM gists WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete gist %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete gist %d: %w", id, err)
	}
	return n > 0, nil
}

// Get returns the gist with the given id, or nil when it does not exist
func (m *Manager) Get(id int64) (*types.Gist, error) {
	rows, err := m.db.Query("SELECT id, content, tags, created_at FROM gists WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get gist %d: %w", id, err)
	}
	defer rows.Close()

	gists, err := scanGists(rows)
	if err != nil {
		return nil, err
	}
	if len(gists) == 0 {
		return nil, nil
	}
	return &gists[0], nil
}

// List returns up to limit gists ordered descending by sortKey
// Unknown sort keys fall back to creation time; limit <= 0 means no limit
func (m *Manager) List(limit int, sortKey string) ([]types.Gist, error) {
	order, ok := sortColumns[strings.ToLower(sortKey)]
	if !ok {
		order = sortColumns[SortCreated]
	}
	if limit <= 0 {
		limit = -1
	}

	query := "SELECT id, content, tags, created_at FROM gists ORDER BY " + order + " LIMIT ?"
	rows, err := m.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list gists: %w", err)
	}
	defer rows.Close()

	return scanGists(rows)
}

// Search returns gists whose content or tags contain query, newest first
func (m *Manager) Search(query string, tagsOnly bool) ([]types.Gist, error) {
	pattern := "%" + escapeLike(query) + "%"

	where := `content LIKE ? ESCAPE '\' OR tags LIKE ? ESCAPE '\'`
	args := []interface{}{pattern, pattern}
	if tagsOnly {
		where = `tags LIKE ? ESCAPE '\'`
		args = args[:1]
	}

	rows, err := m.db.Query(
		"SELECT id, content, tags, created_at FROM gists WHERE "+where+" ORDER BY created_at DESC, id DESC",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search gists: %w", err)
	}
	defer rows.Close()

	return scanGists(rows)
}

// Count returns the number of stored gists
func (m *Manager) Count() (int, error) {
	var count int
	if err := m.db.QueryRow("SELECT COUNT(*) FROM gists").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count gists: %w", err)
	}
	return count, nil
}

// Export writes every gist to w as a versioned envelope in the given format (json or yaml)
func (m *Manager) Export(w io.Writer, format string) (int, error) {
	gists, err := m.List(0, SortCreated)
	if err != nil {
		return 0, err
	}

	export := types.ExportFile{Version: types.ExportVersion, Gists: gists}
	if export.Gists == nil {
		export.Gists = []types.Gist{}
	}

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(export); err != nil {
			return 0, fmt.Errorf("failed to encode export: %w", err)
		}
		if err := enc.Close(); err != nil {
			return 0, fmt.Errorf("failed to encode export: %w", err)
		}
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(export); err != nil {
			return 0, fmt.Errorf("failed to encode export: %w", err)
		}
	}

	return len(gists), nil
}

// Import reads an export envelope and inserts every gist in one transaction
// Ids are reassigned; creation times are preserved. Entries with blank content are skipped.
func (m *Manager) Import(r io.Reader, format string) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("failed to read import: %w", err)
	}

	var file types.ExportFile
	switch format {
	case "yaml":
		err = yaml.Unmarshal(data, &file)
	default:
		err = json.Unmarshal(data, &file)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to decode import: %w", err)
	}

	if len(file.Gists) == 0 {
		return 0, nil
	}

	tx, err := m.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT INTO gists (content, tags, created_at) VALUES (?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare import: %w", err)
	}
	defer stmt.Close()

	count := 0
	for _, g := range file.Gists {
		if strings.TrimSpace(g.Content) == "" {
			continue
		}
		created := g.CreatedAt
		if created.IsZero() {
			created = time.Now()
		}
		if _, err := stmt.Exec(g.Content, g.Tags, created.UTC().Format(timestampLayout)); err != nil {
			return 0, fmt.Errorf("failed to import gist: %w", err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return count, nil
}

// Optimize compacts the database file and refreshes query planner statistics
func (m *Manager) Optimize() error {
	if _, err := m.db.Exec("VACUUM"); err != nil {
		return fmt.Errorf("failed to vacuum database: %w", err)
	}
	if _, err := m.db.Exec("ANALYZE"); err != nil {
		return fmt.Errorf("failed to analyze database: %w", err)
	}
	return nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

// FormatForPath picks the export format from a file extension
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

func scanGists(rows *sql.Rows) ([]types.Gist, error) {
	var gists []types.Gist
	for rows.Next() {
		var g types.Gist
		var tags sql.NullString
		var created sql.NullString

		if err := rows.Scan(&g.ID, &g.Content, &tags, &created); err != nil {
			return nil, fmt.Errorf("failed to scan gist: %w", err)
		}

		g.Tags = tags.String
		g.CreatedAt = parseTimestamp(created.String)
		gists = append(gists, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read gists: %w", err)
	}
	return gists, nil
}

// parseTimestamp accepts the formats SQLite and the driver hand back
func parseTimestamp(s string) time.Time {
	layouts := []string{time.RFC3339Nano, timestampLayout, "2006-01-02T15:04:05Z", "2006-01-02 15:04:05.999999999-07:00"}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t
		}
	}
	return time.Time{}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

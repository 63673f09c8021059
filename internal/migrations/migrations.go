package migrations

import (
	"database/sql"
	"fmt"
)

// Migration represents a single database migration
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// AllMigrations contains all database migrations in order
var AllMigrations = []Migration{
	{
		Version: 1,
		Name:    "Add content and tags indices",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_gists_content ON gists(content);
			CREATE INDEX IF NOT EXISTS idx_gists_tags ON gists(tags);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_gists_content;
			DROP INDEX IF EXISTS idx_gists_tags;
		`,
	},
	{
		Version: 2,
		Name:    "Add created_at ordering index",
		Up: `
			-- Default listing order is newest first
			CREATE INDEX IF NOT EXISTS idx_gists_created_at ON gists(created_at DESC, id DESC);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_gists_created_at;
		`,
	},
	{
		Version: 3,
		Name:    "Normalize NULL tags",
		Up: `
			-- Early databases allowed NULL tags
			UPDATE gists SET tags = '' WHERE tags IS NULL;
		`,
		Down: `
			-- Cannot distinguish restored NULLs
		`,
	},
}

// InitSchema creates the gists table
// This must be called before running migrations to ensure the table exists
func InitSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS gists (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		content TEXT NOT NULL,
		tags TEXT DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// Run executes all pending migrations on the database
func Run(db *sql.DB) error {
	if err := InitSchema(db); err != nil {
		return err
	}

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := GetCurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	for _, migration := range AllMigrations {
		if migration.Version <= currentVersion {
			continue
		}

		if err := apply(db, migration); err != nil {
			return err
		}
	}

	return nil
}

// apply runs one migration and records it in the same transaction
func apply(db *sql.DB, migration Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin migration %d: %w", migration.Version, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(migration.Up); err != nil {
		return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
	}

	_, err = tx.Exec(
		"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
		migration.Version,
		migration.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
	}

	return tx.Commit()
}

// GetCurrentVersion returns the current database schema version
func GetCurrentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow(`
		SELECT COALESCE(MAX(version), 0)
		FROM schema_migrations
	`).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	return version, nil
}

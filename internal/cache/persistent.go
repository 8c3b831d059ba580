package cache

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Open adds a persistent, SQLite-backed tier at path to an existing Cache,
// running any pending goose migrations first. path may be ":memory:" for
// a store that is never written to disk; each Cache that opens ":memory:"
// gets its own, separate database.
func (c *Cache) Open(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("cache: open %s: %w", path, err)
	}

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return fmt.Errorf("cache: set dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		db.Close()
		return fmt.Errorf("cache: migrate %s: %w", path, err)
	}

	c.db = db
	return nil
}

// Close closes the persistent tier, if one is open. The in-memory tier is
// unaffected and remains usable.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Package db opens the SQLite database that keeps reading history.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// FileName is the database file created inside the data directory.
const FileName = "aliverse.db"

// DB wraps a sql.DB with schema management.
type DB struct {
	*sql.DB
	path string
}

// Open creates or opens a SQLite database at the given path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	d := &DB{DB: sqlDB, path: path}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return d, nil
}

// OpenDir opens FileName inside dataDir.
func OpenDir(dataDir string) (*DB, error) {
	return Open(filepath.Join(dataDir, FileName))
}

// OpenMemory creates an in-memory SQLite database (useful for testing).
func OpenMemory() (*DB, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)

	d := &DB{DB: sqlDB, path: ":memory:"}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return d, nil
}

// Path returns the file the database was opened from.
func (d *DB) Path() string { return d.path }

// migrate runs all schema migrations.
func (d *DB) migrate() error {
	if _, err := d.Exec(schema); err != nil {
		return err
	}
	for _, c := range addedColumns {
		ok, err := d.hasColumn(c.table, c.name)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		if _, err := d.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", c.table, c.name, c.decl)); err != nil {
			return fmt.Errorf("adding %s.%s: %w", c.table, c.name, err)
		}
	}
	return nil
}

// addedColumns are columns introduced after a table's first release.
// CREATE TABLE IF NOT EXISTS leaves older files without them.
var addedColumns = []struct {
	table, name, decl string
}{
	{"readings", "thresholds", "TEXT NOT NULL DEFAULT ''"},
}

func (d *DB) hasColumn(table, column string) (bool, error) {
	var n int
	err := d.QueryRow("SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?", table, column).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("inspecting %s: %w", table, err)
	}
	return n > 0, nil
}

// schema contains the full database schema. New tables are added here.
const schema = `
CREATE TABLE IF NOT EXISTS readings (
    id TEXT PRIMARY KEY,
    created_at DATETIME NOT NULL DEFAULT (datetime('now')),
    name TEXT NOT NULL DEFAULT '',
    gender TEXT NOT NULL DEFAULT '',
    birth_year INTEGER NOT NULL,
    birth_month INTEGER NOT NULL CHECK(birth_month BETWEEN 1 AND 12),
    birth_day INTEGER NOT NULL CHECK(birth_day BETWEEN 1 AND 31),
    hour_slot INTEGER NOT NULL CHECK(hour_slot BETWEEN 0 AND 12),
    pillars TEXT NOT NULL,
    score INTEGER NOT NULL CHECK(score BETWEEN 0 AND 100),
    bucket TEXT NOT NULL CHECK(bucket IN ('deficient','weak','balanced','strong','dominant')),
    thresholds TEXT NOT NULL DEFAULT '',
    favorable TEXT NOT NULL DEFAULT '',
    unfavorable TEXT NOT NULL DEFAULT '',
    fuel TEXT,
    hexagram INTEGER CHECK(hexagram BETWEEN 1 AND 64)
);

CREATE INDEX IF NOT EXISTS idx_readings_created ON readings(created_at);
CREATE INDEX IF NOT EXISTS idx_readings_bucket ON readings(bucket);
`

package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteBackend stores history in a SQLite table with one column per Entry
// field.
type SQLiteBackend struct {
	db   *sql.DB
	path string
}

// NewSQLiteBackend opens (or creates) the database at dbPath.
func NewSQLiteBackend(dbPath string) (*SQLiteBackend, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
			return nil, fmt.Errorf("creating history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	// One connection keeps ":memory:" databases shared and writes ordered.
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteBackend{db: db, path: dbPath}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS history (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   TEXT NOT NULL,
			method      TEXT NOT NULL,
			url         TEXT NOT NULL,
			status_code INTEGER,
			elapsed_ms  REAL NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating history table: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) Path() string { return b.path }

func (b *SQLiteBackend) Load() ([]Entry, int, error) {
	rows, err := b.db.Query(`
		SELECT timestamp, method, url, status_code, elapsed_ms
		FROM history
		ORDER BY id ASC`)
	if err != nil {
		return nil, 0, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	skipped := 0
	for rows.Next() {
		var (
			ts, method, url sql.NullString
			status          sql.NullInt64
			elapsed         sql.NullFloat64
		)
		if err := rows.Scan(&ts, &method, &url, &status, &elapsed); err != nil {
			skipped++
			continue
		}
		parsed, err := time.Parse(time.RFC3339Nano, ts.String)
		if err != nil || !elapsed.Valid {
			skipped++
			continue
		}
		e := Entry{
			Timestamp: parsed.UTC(),
			Method:    method.String,
			URL:       url.String,
			ElapsedMS: elapsed.Float64,
		}
		if status.Valid {
			e.StatusCode = Status(int(status.Int64))
		}
		if !e.valid() {
			skipped++
			continue
		}
		entries = append(entries, e)
	}
	return entries, skipped, rows.Err()
}

// Save replaces the table contents in a single transaction.
func (b *SQLiteBackend) Save(entries []Entry) error {
	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning history tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM history"); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	stmt, err := tx.Prepare(`
		INSERT INTO history (timestamp, method, url, status_code, elapsed_ms)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing history insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		var status any
		if e.StatusCode != nil {
			status = *e.StatusCode
		}
		if _, err := stmt.Exec(
			e.Timestamp.UTC().Format(time.RFC3339Nano),
			e.Method, e.URL, status, e.ElapsedMS,
		); err != nil {
			return fmt.Errorf("inserting history: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing history: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (b *SQLiteBackend) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

// Package history persists selection attempts to a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

const dbFile = ".dropdown/history.db"

// ErrEmptyMenuID is returned when recording an attempt without a menu id.
var ErrEmptyMenuID = errors.New("attempt has no menu id")

// Attempt is one recorded selection attempt and its outcome.
type Attempt struct {
	ID        int64     `json:"id"`
	MenuID    string    `json:"menu_id"`
	ItemKey   string    `json:"item_key"`
	Prevented bool      `json:"prevented"`
	At        time.Time `json:"at"`
}

// Recorder receives selection attempts together with their outcome.
type Recorder interface {
	Record(ctx context.Context, a Attempt) (int64, error)
}

// Store wraps the history database connection.
type Store struct {
	conn    *sql.DB
	baseDir string
}

// Path returns the database location under baseDir.
func Path(baseDir string) string {
	return filepath.Join(baseDir, dbFile)
}

// Open opens the history database under baseDir, creating it and its schema
// if needed.
func Open(baseDir string) (*Store, error) {
	dbPath := Path(baseDir)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	// single writer
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	conn.Exec("PRAGMA synchronous=NORMAL")

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &Store{conn: conn, baseDir: baseDir}
	if err := s.setSchemaVersion(schemaVersion); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.conn.Close()
}

// BaseDir returns the directory the store was opened under.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// SchemaVersion returns the stored schema version, or 0 if none is set.
func (s *Store) SchemaVersion() (int, error) {
	var v string
	err := s.conn.QueryRow(`SELECT value FROM schema_info WHERE key = 'version'`).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(v)
}

func (s *Store) setSchemaVersion(v int) error {
	_, err := s.conn.Exec(`INSERT OR REPLACE INTO schema_info (key, value) VALUES ('version', ?)`, strconv.Itoa(v))
	if err != nil {
		return fmt.Errorf("set schema version: %w", err)
	}
	return nil
}

// Record stores an attempt. A zero At is replaced with the current time.
func (s *Store) Record(ctx context.Context, a Attempt) (int64, error) {
	if a.MenuID == "" {
		return 0, ErrEmptyMenuID
	}
	if a.At.IsZero() {
		a.At = time.Now()
	}

	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO attempts (menu_id, item_key, prevented, attempted_at) VALUES (?, ?, ?, ?)`,
		a.MenuID, a.ItemKey, a.Prevented, a.At.UTC())
	if err != nil {
		return 0, fmt.Errorf("record attempt: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit attempts, newest first. A limit <= 0 returns
// every attempt.
func (s *Store) Recent(ctx context.Context, limit int) ([]Attempt, error) {
	return s.query(ctx, "", limit)
}

// ForMenu returns up to limit attempts for one menu, newest first.
func (s *Store) ForMenu(ctx context.Context, menuID string, limit int) ([]Attempt, error) {
	return s.query(ctx, menuID, limit)
}

func (s *Store) query(ctx context.Context, menuID string, limit int) ([]Attempt, error) {
	q := `SELECT id, menu_id, item_key, prevented, attempted_at FROM attempts`
	var args []any
	if menuID != "" {
		q += ` WHERE menu_id = ?`
		args = append(args, menuID)
	}
	q += ` ORDER BY attempted_at DESC, id DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		var prevented int
		if err := rows.Scan(&a.ID, &a.MenuID, &a.ItemKey, &prevented, &a.At); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.Prevented = prevented != 0
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// Stats summarizes recorded attempts.
type Stats struct {
	Total     int
	Prevented int
}

// Stats counts all recorded attempts and how many were prevented.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.conn.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(prevented), 0) FROM attempts`).Scan(&st.Total, &st.Prevented)
	if err != nil {
		return Stats{}, fmt.Errorf("count attempts: %w", err)
	}
	return st, nil
}

// Clear deletes every recorded attempt.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM attempts`); err != nil {
		return fmt.Errorf("clear attempts: %w", err)
	}
	return nil
}

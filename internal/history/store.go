package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	// sqlite driver for the history database.
	_ "modernc.org/sqlite"
)

// DefaultPath is where the CLI keeps the history database.
const DefaultPath = ".leaprecord/history.db"

// timeLayout is fixed-width so that stored times sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store persists Changes in a SQLite database.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// NewStore creates a store. If logger is nil, a discard logger is used.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{logger: logger}
}

// Open opens the database at path, creating its directory, and migrates it.
// Use ":memory:" for an in-memory database.
func (s *Store) Open(path string) error {
	dsn := ":memory:"
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("failed to create history directory: %w", err)
			}
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	// An in-memory database lives only as long as its single connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping history database: %w", err)
	}
	if err := MigrateWithDB(db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	s.path = path
	s.logger.Debug("history opened", slog.String("path", path))
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the path the store was opened with.
func (s *Store) Path() string { return s.path }

// Record stores c, assigning its ID and time when they are unset.
func (s *Store) Record(ctx context.Context, c Change) (*Change, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.AppliedAt.IsZero() {
		c.AppliedAt = time.Now().UTC()
	}
	if c.Statements == nil {
		c.Statements = []string{}
	}
	stmts, err := json.Marshal(c.Statements)
	if err != nil {
		return nil, fmt.Errorf("failed to encode statements: %w", err)
	}
	var errMsg *string
	if c.Error != "" {
		errMsg = &c.Error
	}

	s.logger.Debug("recording change",
		slog.String("id", c.ID),
		slog.String("op", c.Op),
		slog.String("status", string(c.Status)))

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO changes (id, op, table_name, column_name, dialect, target, statements, atomic, status, error, applied_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Op, c.Table, c.Column, c.Dialect, c.Target, string(stmts), c.Atomic, string(c.Status), errMsg,
		c.AppliedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record change: %w", err)
	}
	return &c, nil
}

// ListOptions filter List.
type ListOptions struct {
	// Table keeps only changes to this table.
	Table string
	// Limit caps the number of changes; 0 means no cap.
	Limit int
}

// List returns changes, newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]*Change, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	query := `SELECT id, op, table_name, column_name, dialect, target, statements, atomic, status, error, applied_at FROM changes`
	var args []any
	if opts.Table != "" {
		query += ` WHERE table_name = ?`
		args = append(args, opts.Table)
	}
	query += ` ORDER BY applied_at DESC, rowid DESC`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list changes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var changes []*Change
	for rows.Next() {
		c, err := scanChange(rows)
		if err != nil {
			return nil, err
		}
		changes = append(changes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list changes: %w", err)
	}
	return changes, nil
}

func scanChange(rows *sql.Rows) (*Change, error) {
	var (
		c         Change
		stmts     string
		status    string
		errMsg    sql.NullString
		appliedAt string
	)
	if err := rows.Scan(&c.ID, &c.Op, &c.Table, &c.Column, &c.Dialect, &c.Target,
		&stmts, &c.Atomic, &status, &errMsg, &appliedAt); err != nil {
		return nil, fmt.Errorf("failed to scan change: %w", err)
	}
	if err := json.Unmarshal([]byte(stmts), &c.Statements); err != nil {
		return nil, fmt.Errorf("failed to decode statements of change %s: %w", c.ID, err)
	}
	t, err := time.Parse(timeLayout, appliedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse time of change %s: %w", c.ID, err)
	}
	c.Status = Status(status)
	c.Error = errMsg.String
	c.AppliedAt = t
	return &c, nil
}

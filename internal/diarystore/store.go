package diarystore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound reports a document path with no record.
var ErrNotFound = errors.New("document not found")

// Store is a small document store backed by SQLite. Documents are JSON
// objects keyed by a slash-separated path; reads and writes are atomic and
// partial updates merge at the top level.
type Store struct {
	db   *sql.DB
	path string
}

const (
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Open initializes or connects to the document database at path.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("database path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS documents (
	path TEXT PRIMARY KEY,
	data TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_updated ON documents(updated_at);
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == 5 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

// Get returns the document at path, or ErrNotFound.
func (s *Store) Get(ctx context.Context, path string) (json.RawMessage, error) {
	ctx = ensureContext(ctx)
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM documents WHERE path = ?`, path).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", path, err)
	}
	return json.RawMessage(data), nil
}

// Update merges the partial record into the document at path, creating the
// document when absent. The merge is shallow: top-level keys of partial
// replace existing keys.
func (s *Store) Update(ctx context.Context, path string, partial map[string]any) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin update: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if err := applyUpdate(ctx, tx, path, partial); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit update: %w", err)
		}
		return nil
	})
}

// Delete removes the document at path. Deleting a missing document is not
// an error.
func (s *Store) Delete(ctx context.Context, path string) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE path = ?`, path); err != nil {
			return fmt.Errorf("delete %q: %w", path, err)
		}
		return nil
	})
}

// OpKind distinguishes batch operations.
type OpKind int

const (
	OpUpdate OpKind = iota
	OpDelete
)

// Op is one operation in a batch write.
type Op struct {
	Kind    OpKind
	Path    string
	Partial map[string]any
}

// BatchWrite applies every operation inside a single transaction; either
// all of them land or none do.
func (s *Store) BatchWrite(ctx context.Context, ops []Op) error {
	if len(ops) == 0 {
		return nil
	}
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin batch: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		for _, op := range ops {
			switch op.Kind {
			case OpUpdate:
				if err := applyUpdate(ctx, tx, op.Path, op.Partial); err != nil {
					return err
				}
			case OpDelete:
				if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE path = ?`, op.Path); err != nil {
					return fmt.Errorf("batch delete %q: %w", op.Path, err)
				}
			default:
				return fmt.Errorf("unknown batch op kind %d", op.Kind)
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit batch: %w", err)
		}
		return nil
	})
}

func applyUpdate(ctx context.Context, tx *sql.Tx, path string, partial map[string]any) error {
	merged := make(map[string]any, len(partial))

	var existing string
	err := tx.QueryRowContext(ctx, `SELECT data FROM documents WHERE path = ?`, path).Scan(&existing)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("read %q for update: %w", path, err)
	default:
		if err := json.Unmarshal([]byte(existing), &merged); err != nil {
			return fmt.Errorf("decode existing document %q: %w", path, err)
		}
	}
	for key, value := range partial {
		merged[key] = value
	}

	encoded, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("encode document %q: %w", path, err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (path, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		path, string(encoded), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}

// listPrefix returns every document whose path starts with prefix.
func (s *Store) listPrefix(ctx context.Context, prefix string) (map[string]json.RawMessage, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, data FROM documents WHERE path LIKE ? ORDER BY path`, prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", prefix, err)
	}
	defer rows.Close()

	out := make(map[string]json.RawMessage)
	for rows.Next() {
		var path, data string
		if err := rows.Scan(&path, &data); err != nil {
			return nil, fmt.Errorf("scan %q: %w", prefix, err)
		}
		out[path] = json.RawMessage(data)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %q: %w", prefix, err)
	}
	return out, nil
}

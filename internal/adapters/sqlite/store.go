package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"bubblesea/internal/config"
	"bubblesea/internal/domain"
	"bubblesea/internal/ports"
)

const schemaVersion = "1"

// Store implements ports.BubbleStore using SQLite.
// Bubbles are kept in their encoded form, keyed by the ID's bit pattern.
type Store struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
}

// Ensure Store implements TxStore
var _ ports.TxStore = (*Store)(nil)

// Open opens or creates the database at path
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	path = config.ExpandHome(path)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// WAL lets the server and the TUI share one file
	db, err := sql.Open("sqlite3", "file:"+path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS bubbles (
			id INTEGER PRIMARY KEY,
			body TEXT NOT NULL,
			mtime INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	s := &Store{db: db, path: path, logger: logger}
	if err := s.updateMeta(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}
	return s, nil
}

// Path returns the database file
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) updateMeta() error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion)
	return err
}

// SchemaVersion returns the version recorded in the database
func (s *Store) SchemaVersion(ctx context.Context) (string, error) {
	var version string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&version)
	return version, err
}

// key maps an ID onto SQLite's signed integers without losing bits
func key(id domain.ID) int64 {
	return int64(id)
}

// Lookup returns the encoded bubble. Query failures are logged and reported as absence.
func (s *Store) Lookup(ctx context.Context, id domain.ID) (string, bool) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM bubbles WHERE id = ?`, key(id)).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		s.logger.Error("sqlite lookup failed", zap.Stringer("id", id), zap.Error(err))
		return "", false
	}
	return body, true
}

// Store inserts or replaces the encoded bubble
func (s *Store) Store(ctx context.Context, id domain.ID, encoded string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO bubbles (id, body, mtime)
		VALUES (?, ?, ?)
	`, key(id), encoded, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", id, err)
	}
	return nil
}

// Delete removes a bubble by ID
func (s *Store) Delete(ctx context.Context, id domain.ID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM bubbles WHERE id = ?`, key(id))
	return err
}

// IDs lists every stored bubble in ascending order
func (s *Store) IDs(ctx context.Context) ([]domain.ID, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM bubbles`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []domain.ID
	for rows.Next() {
		var k int64
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		ids = append(ids, domain.ID(k))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	slices.Sort(ids)
	return ids, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"bubblesea/internal/domain"
	"bubblesea/internal/ports"
)

// storeTx implements ports.BubbleTx
type storeTx struct {
	tx    *sql.Tx
	mtime int64
}

// Ensure storeTx implements BubbleTx
var _ ports.BubbleTx = (*storeTx)(nil)

// BeginTx starts a batch of writes that become visible together
func (s *Store) BeginTx(ctx context.Context) (ports.BubbleTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &storeTx{tx: tx, mtime: time.Now().Unix()}, nil
}

// Store inserts or replaces a bubble inside the transaction
func (t *storeTx) Store(ctx context.Context, id domain.ID, encoded string) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO bubbles (id, body, mtime)
		VALUES (?, ?, ?)
	`, key(id), encoded, t.mtime)
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", id, err)
	}
	return nil
}

// Commit commits the transaction
func (t *storeTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *storeTx) Rollback() error {
	return t.tx.Rollback()
}

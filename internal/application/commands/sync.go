package commands

import (
	"context"
	"fmt"

	"bubblesea/internal/codec"
	"bubblesea/internal/ports"
)

// SyncStats counts what a sync did
type SyncStats struct {
	Scanned int
	Copied  int
	Skipped int
}

// SyncResult contains the result of copying bubbles between stores
type SyncResult struct {
	Stats   SyncStats
	Message string
}

// SyncCommand copies every bubble from one store into another.
// Bubbles that do not decode are skipped. When the destination supports
// transactions the copy becomes visible all at once.
type SyncCommand struct {
	from ports.BubbleStore
	to   ports.BubbleStore
}

// NewSyncCommand creates a new SyncCommand
func NewSyncCommand(from, to ports.BubbleStore) *SyncCommand {
	return &SyncCommand{from: from, to: to}
}

// Execute runs the sync command
func (c *SyncCommand) Execute(ctx context.Context) (*SyncResult, error) {
	ids, err := c.from.IDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list source bubbles: %w", err)
	}

	var sink ports.BubbleSink = c.to
	var tx ports.BubbleTx
	if txStore, ok := c.to.(ports.TxStore); ok {
		tx, err = txStore.BeginTx(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to begin sync: %w", err)
		}
		sink = tx
	}

	var stats SyncStats
	for _, id := range ids {
		stats.Scanned++
		text, ok := c.from.Lookup(ctx, id)
		if !ok {
			stats.Skipped++
			continue
		}
		if _, ok := codec.Decode(text); !ok {
			stats.Skipped++
			continue
		}
		if err := sink.Store(ctx, id, text); err != nil {
			if tx != nil {
				_ = tx.Rollback()
			}
			return nil, err
		}
		stats.Copied++
	}

	if tx != nil {
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit sync: %w", err)
		}
	}

	return &SyncResult{
		Stats:   stats,
		Message: fmt.Sprintf("Copied %d of %d bubbles (%d skipped)", stats.Copied, stats.Scanned, stats.Skipped),
	}, nil
}

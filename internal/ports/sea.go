package ports

import (
	"context"

	"bubblesea/internal/domain"
)

// RemoteSea is some service holding Bubbles we have not seen yet.
//
// Lookup returns the textual form of a Bubble so that decoding stays in one
// place. Absence covers both "no such bubble" and transport failures, which
// implementations are expected to log themselves.
type RemoteSea interface {
	Lookup(ctx context.Context, id domain.ID) (string, bool)
}

// BubbleSink receives encoded Bubbles after they change locally
type BubbleSink interface {
	Store(ctx context.Context, id domain.ID, encoded string) error
}

// BubbleStore is a persistent home for Bubbles that can serve as both the
// remote side of a sea and the target of its write-through.
type BubbleStore interface {
	RemoteSea
	BubbleSink

	// Delete removes a stored bubble; deleting a missing one is not an error
	Delete(ctx context.Context, id domain.ID) error

	// IDs lists every stored bubble in ascending order
	IDs(ctx context.Context) ([]domain.ID, error)

	Close() error
}

// Outline is the editing surface over the current snapshot, implemented by
// sea.Sea. Absence is never an error here: edits against unknown bubbles
// leave the outline unchanged.
type Outline interface {
	Lookup(ctx context.Context, id domain.ID) (domain.Bubble, bool)
	ModifyText(ctx context.Context, id domain.ID, text string)
	Link(ctx context.Context, id, parent domain.ID)
	Unlink(ctx context.Context, id, parent domain.ID)
	CreateRoot(ctx context.Context) domain.ID
	Create(ctx context.Context, parent domain.ID) domain.ID
	Indent(ctx context.Context, id, senpai, parent domain.ID)
	Unindent(ctx context.Context, id, parent, grandparent domain.ID)
}

// BubbleTx groups writes that become visible together
type BubbleTx interface {
	BubbleSink
	Commit() error
	Rollback() error
}

// TxStore is a BubbleStore that can batch writes
type TxStore interface {
	BubbleStore
	BeginTx(ctx context.Context) (BubbleTx, error)
}

package sea

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"bubblesea/internal/codec"
	"bubblesea/internal/domain"
	"bubblesea/internal/ports"
)

// Sea is the operation layer over snapshots.
//
// It holds the current snapshot and replaces it with a single atomic store
// after each operation. Operations are serialized, so a composite edit such
// as Indent always reads the snapshot produced by the previous edit.
// When a sink is configured, every bubble an operation changed is encoded
// and written to it, in the order the operation touched them.
type Sea struct {
	mu      sync.Mutex
	current atomic.Pointer[Snapshot]

	sink   ports.BubbleSink
	logger *zap.Logger
	newID  func() domain.ID
}

// Option configures a Sea
type Option func(*Sea)

// WithSink writes changed bubbles through to sink
func WithSink(sink ports.BubbleSink) Option {
	return func(s *Sea) {
		s.sink = sink
	}
}

// WithLogger sets the logger used for cache fills and write-through failures
func WithLogger(logger *zap.Logger) Option {
	return func(s *Sea) {
		s.logger = logger
	}
}

// WithIDSource replaces domain.NewID for created bubbles
func WithIDSource(newID func() domain.ID) Option {
	return func(s *Sea) {
		s.newID = newID
	}
}

// New creates a Sea starting from initial
func New(initial *Snapshot, opts ...Option) *Sea {
	if initial == nil {
		initial = NewSnapshot(nil)
	}
	s := &Sea{
		logger: zap.NewNop(),
		newID:  domain.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.current.Store(initial)
	return s
}

// Current returns the latest committed snapshot
func (s *Sea) Current() *Snapshot {
	return s.current.Load()
}

// Lookup finds a bubble, filling the cache from the remote on a miss.
//
// The remote is asked without holding the writer lock, so concurrent misses
// do not queue behind each other or behind writers. The fill is committed
// only if no writer stored the id in the meantime; otherwise the newer
// cached bubble wins.
func (s *Sea) Lookup(ctx context.Context, id domain.ID) (domain.Bubble, bool) {
	snap := s.Current()
	if b, ok := snap.Get(id); ok {
		return b, true
	}
	r := snap.Lookup(ctx, id)
	if !r.Found {
		return domain.Bubble{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current.Load()
	if b, ok := cur.Get(id); ok {
		return b, true
	}
	s.current.Store(cur.with(id, r.Bubble))
	s.logger.Debug("cache filled", zap.Stringer("id", id))
	return r.Bubble, true
}

// Modify replaces a bubble completely
func (s *Sea) Modify(ctx context.Context, id domain.ID, b domain.Bubble) {
	s.apply(ctx, func(snap *Snapshot) (*Snapshot, []domain.ID) {
		return snap.Modify(id, b), []domain.ID{id}
	})
}

// ModifyText replaces the text of a bubble, creating it if unknown
func (s *Sea) ModifyText(ctx context.Context, id domain.ID, text string) {
	s.apply(ctx, func(snap *Snapshot) (*Snapshot, []domain.ID) {
		return snap.ModifyText(ctx, id, text), []domain.ID{id}
	})
}

// Link makes id the last child of parent
func (s *Sea) Link(ctx context.Context, id, parent domain.ID) {
	s.apply(ctx, func(snap *Snapshot) (*Snapshot, []domain.ID) {
		return snap.Link(ctx, id, parent), []domain.ID{parent}
	})
}

// Unlink removes id from parent's children
func (s *Sea) Unlink(ctx context.Context, id, parent domain.ID) {
	s.apply(ctx, func(snap *Snapshot) (*Snapshot, []domain.ID) {
		return snap.Unlink(ctx, id, parent), []domain.ID{parent}
	})
}

// CreateRoot creates an empty bubble with no parent
func (s *Sea) CreateRoot(ctx context.Context) domain.ID {
	var id domain.ID
	s.apply(ctx, func(snap *Snapshot) (*Snapshot, []domain.ID) {
		id = s.freshID(snap)
		return snap.Create(ctx, id), []domain.ID{id}
	})
	return id
}

// Create creates an empty bubble as the last child of parent
func (s *Sea) Create(ctx context.Context, parent domain.ID) domain.ID {
	var id domain.ID
	s.apply(ctx, func(snap *Snapshot) (*Snapshot, []domain.ID) {
		id = s.freshID(snap)
		return snap.CreateUnder(ctx, id, parent), []domain.ID{id, parent}
	})
	return id
}

// Indent makes id the last child of senpai, its preceding sibling under parent
func (s *Sea) Indent(ctx context.Context, id, senpai, parent domain.ID) {
	s.apply(ctx, func(snap *Snapshot) (*Snapshot, []domain.ID) {
		return snap.Indent(ctx, id, senpai, parent), []domain.ID{parent, senpai}
	})
}

// Unindent makes id the sibling following parent under grandparent
func (s *Sea) Unindent(ctx context.Context, id, parent, grandparent domain.ID) {
	s.apply(ctx, func(snap *Snapshot) (*Snapshot, []domain.ID) {
		return snap.Unindent(ctx, id, parent, grandparent), []domain.ID{parent, grandparent}
	})
}

// maxIDDraws bounds how often the id source is asked before freshID
// steps upward from its last answer instead.
const maxIDDraws = 8

// freshID returns an id not present in snap. It runs under the writer lock,
// so it must terminate even when the source keeps repeating itself.
func (s *Sea) freshID(snap *Snapshot) domain.ID {
	var id domain.ID
	for range maxIDDraws {
		id = s.newID()
		if _, taken := snap.Get(id); !taken {
			return id
		}
	}
	s.logger.Warn("id source keeps colliding", zap.Stringer("id", id))
	for {
		id++
		if _, taken := snap.Get(id); !taken {
			return id
		}
	}
}

// apply runs op against the current snapshot under the writer lock and
// commits the result. op also names the ids it may have changed, in the
// order they should reach the sink.
func (s *Sea) apply(ctx context.Context, op func(*Snapshot) (*Snapshot, []domain.ID)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.current.Load()
	next, touched := op(old)
	if next == old {
		return
	}
	s.current.Store(next)

	if s.sink == nil {
		return
	}
	for _, id := range touched {
		s.writeThrough(ctx, old, next, id)
	}
}

func (s *Sea) writeThrough(ctx context.Context, old, next *Snapshot, id domain.ID) {
	nb, ok := next.Get(id)
	if !ok {
		return
	}
	if ob, had := old.Get(id); had && ob.Equal(nb) {
		return
	}
	encoded, err := codec.Encode(nb)
	if err != nil {
		s.logger.Warn("bubble not written through",
			zap.Stringer("id", id),
			zap.Error(err),
		)
		return
	}
	if err := s.sink.Store(ctx, id, encoded); err != nil {
		s.logger.Error("write-through failed",
			zap.Stringer("id", id),
			zap.Error(err),
		)
	}
}

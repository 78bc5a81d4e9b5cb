// Package sea keeps the cache of known Bubbles.
//
// A Snapshot is an immutable map from ID to Bubble backed by a remote for
// cache misses. Every operation that changes anything returns a new
// Snapshot and leaves the receiver untouched, so any number of goroutines
// may read a Snapshot they hold. Sea owns "the current snapshot" and
// serializes the operations that replace it.
package sea

import (
	"context"
	"maps"
	"slices"

	"bubblesea/internal/codec"
	"bubblesea/internal/domain"
	"bubblesea/internal/ports"
)

// Entry seeds a snapshot with a known bubble
type Entry struct {
	ID     domain.ID
	Bubble domain.Bubble
}

// NoRemote is a remote that never has anything
type NoRemote struct{}

// Lookup always reports absence
func (NoRemote) Lookup(context.Context, domain.ID) (string, bool) {
	return "", false
}

// Snapshot is one immutable state of the cache
type Snapshot struct {
	remote ports.RemoteSea
	nodes  map[domain.ID]domain.Bubble
}

// NewSnapshot creates a snapshot using remote for misses, seeded with entries.
// A nil remote behaves like NoRemote.
func NewSnapshot(remote ports.RemoteSea, entries ...Entry) *Snapshot {
	if remote == nil {
		remote = NoRemote{}
	}
	nodes := make(map[domain.ID]domain.Bubble, len(entries))
	for _, e := range entries {
		nodes[e.ID] = e.Bubble.Clone()
	}
	return &Snapshot{remote: remote, nodes: nodes}
}

// LookupResult is the outcome of resolving an ID.
//
// Next is the snapshot to continue from: the receiver itself when nothing
// changed, or a successor holding the freshly fetched bubble.
type LookupResult struct {
	Bubble domain.Bubble
	Found  bool
	Filled bool
	Next   *Snapshot
}

// Get returns a cached bubble without consulting the remote
func (s *Snapshot) Get(id domain.ID) (domain.Bubble, bool) {
	b, ok := s.nodes[id]
	if !ok {
		return domain.Bubble{}, false
	}
	return b.Clone(), true
}

// Len returns the number of cached bubbles
func (s *Snapshot) Len() int {
	return len(s.nodes)
}

// IDs returns the cached IDs in ascending order
func (s *Snapshot) IDs() []domain.ID {
	return slices.Sorted(maps.Keys(s.nodes))
}

// Lookup resolves id from the cache, falling back to the remote.
// A bubble fetched and decoded successfully is inserted into Next before
// the result is returned; a missing or undecodable one is simply not found.
func (s *Snapshot) Lookup(ctx context.Context, id domain.ID) LookupResult {
	if b, ok := s.Get(id); ok {
		return LookupResult{Bubble: b, Found: true, Next: s}
	}
	if ctx.Err() != nil {
		return LookupResult{Next: s}
	}
	text, ok := s.remote.Lookup(ctx, id)
	if !ok {
		return LookupResult{Next: s}
	}
	b, ok := codec.Decode(text)
	if !ok {
		return LookupResult{Next: s}
	}
	return LookupResult{Bubble: b.Clone(), Found: true, Filled: true, Next: s.with(id, b)}
}

func (s *Snapshot) with(id domain.ID, b domain.Bubble) *Snapshot {
	nodes := maps.Clone(s.nodes)
	if nodes == nil {
		nodes = make(map[domain.ID]domain.Bubble, 1)
	}
	nodes[id] = b.Clone()
	return &Snapshot{remote: s.remote, nodes: nodes}
}

// Modify replaces the bubble at id, creating it if needed
func (s *Snapshot) Modify(id domain.ID, b domain.Bubble) *Snapshot {
	return s.with(id, b)
}

// ModifyText replaces the text of id and keeps its children.
// An unknown id gets a fresh bubble with no children.
func (s *Snapshot) ModifyText(ctx context.Context, id domain.ID, text string) *Snapshot {
	r := s.Lookup(ctx, id)
	if !r.Found {
		return r.Next.with(id, domain.Bubble{Text: text, Children: []domain.ID{}})
	}
	return r.Next.with(id, r.Bubble.WithText(text))
}

// Unlink removes every occurrence of id from parent's children.
// Nothing happens when parent cannot be found.
func (s *Snapshot) Unlink(ctx context.Context, id, parent domain.ID) *Snapshot {
	r := s.Lookup(ctx, parent)
	if !r.Found {
		return r.Next
	}
	return r.Next.with(parent, r.Bubble.Without(id))
}

// Link makes id the last child of parent, exactly once.
// Nothing happens when parent cannot be found.
func (s *Snapshot) Link(ctx context.Context, id, parent domain.ID) *Snapshot {
	r := s.Lookup(ctx, parent)
	if !r.Found {
		return r.Next
	}
	return r.Next.with(parent, r.Bubble.WithAppended(id))
}

// Create initializes id as an empty bubble
func (s *Snapshot) Create(ctx context.Context, id domain.ID) *Snapshot {
	return s.ModifyText(ctx, id, "")
}

// CreateUnder initializes id as an empty bubble and links it under parent.
// The bubble exists in the snapshot before it is linked.
func (s *Snapshot) CreateUnder(ctx context.Context, id, parent domain.ID) *Snapshot {
	return s.Create(ctx, id).Link(ctx, id, parent)
}

// Indent moves id from parent to the end of senpai's children.
//
// Both steps run on the same evolving snapshot. When senpai cannot be
// found the whole operation is skipped so id is never left detached.
func (s *Snapshot) Indent(ctx context.Context, id, senpai, parent domain.ID) *Snapshot {
	if id == senpai || id == parent || senpai == parent {
		return s
	}
	r := s.Lookup(ctx, senpai)
	if !r.Found {
		return r.Next
	}
	next := r.Next.Unlink(ctx, id, parent)
	return next.Link(ctx, id, senpai)
}

// Unindent moves id from parent into grandparent, right after parent.
//
// When parent is not a child of grandparent, id goes last. When grandparent
// cannot be found the whole operation is skipped.
func (s *Snapshot) Unindent(ctx context.Context, id, parent, grandparent domain.ID) *Snapshot {
	if id == parent || id == grandparent || parent == grandparent {
		return s
	}
	r := s.Lookup(ctx, grandparent)
	if !r.Found {
		return r.Next
	}
	next := r.Next.Unlink(ctx, id, parent)
	g := next.Lookup(ctx, grandparent)
	if !g.Found {
		return g.Next
	}
	return g.Next.with(grandparent, g.Bubble.WithInsertedAfter(parent, id))
}

package sea

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"bubblesea/internal/domain"
)

type stored struct {
	ID      domain.ID
	Encoded string
}

// recordingSink remembers every write in order
type recordingSink struct {
	mu     sync.Mutex
	writes []stored
	err    error
}

func (s *recordingSink) Store(_ context.Context, id domain.ID, encoded string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.writes = append(s.writes, stored{id, encoded})
	return nil
}

func (s *recordingSink) ids() []domain.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ID, 0, len(s.writes))
	for _, w := range s.writes {
		out = append(out, w.ID)
	}
	return out
}

func sequentialIDs(start uint64) func() domain.ID {
	next := start
	var mu sync.Mutex
	return func() domain.ID {
		mu.Lock()
		defer mu.Unlock()
		id := domain.ID(next)
		next++
		return id
	}
}

func TestSea_CreateThenLookup(t *testing.T) {
	ctx := context.Background()
	root := domain.MustParseID("0x10")
	s := New(NewSnapshot(nil, Entry{root, domain.Bubble{Text: "root", Children: []domain.ID{}}}),
		WithIDSource(sequentialIDs(0x100)),
	)

	id := s.Create(ctx, root)

	assert.Equal(t, domain.ID(0x100), id)
	b, ok := s.Lookup(ctx, id)
	require.True(t, ok)
	assert.Equal(t, domain.Bubble{Text: "", Children: []domain.ID{}}, b)

	parent, ok := s.Lookup(ctx, root)
	require.True(t, ok)
	assert.Equal(t, []domain.ID{id}, parent.Children)
}

func TestSea_FreshIDSkipsCachedIDs(t *testing.T) {
	ctx := context.Background()
	taken := domain.ID(0x100)
	s := New(NewSnapshot(nil, Entry{taken, domain.Bubble{Text: "taken", Children: []domain.ID{}}}),
		WithIDSource(sequentialIDs(0x100)),
	)

	id := s.CreateRoot(ctx)

	assert.Equal(t, domain.ID(0x101), id)
	b, _ := s.Lookup(ctx, taken)
	assert.Equal(t, "taken", b.Text)
}

func TestSea_RepeatingIDSourceStillCreates(t *testing.T) {
	ctx := context.Background()
	s := New(NewSnapshot(nil), WithIDSource(func() domain.ID { return 7 }))

	done := make(chan [3]domain.ID, 1)
	go func() {
		done <- [3]domain.ID{s.CreateRoot(ctx), s.CreateRoot(ctx), s.CreateRoot(ctx)}
	}()

	select {
	case ids := <-done:
		assert.Equal(t, [3]domain.ID{7, 8, 9}, ids)
		assert.Equal(t, 3, s.Current().Len())
	case <-time.After(2 * time.Second):
		t.Fatal("CreateRoot did not return with a repeating id source")
	}
}

func TestSea_LookupCommitsFill(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote(map[domain.ID]string{id1: `(bubble "from remote")`})
	s := New(NewSnapshot(remote))

	b, ok := s.Lookup(ctx, id1)
	require.True(t, ok)
	assert.Equal(t, "from remote", b.Text)
	assert.Equal(t, 1, s.Current().Len())

	_, _ = s.Lookup(ctx, id1)
	assert.Equal(t, 1, remote.callsFor(id1))
}

// hookRemote runs a callback in the middle of every remote lookup
type hookRemote struct {
	text   string
	during func()
}

func (r hookRemote) Lookup(context.Context, domain.ID) (string, bool) {
	r.during()
	return r.text, true
}

func TestSea_WriteDuringRemoteLookupWins(t *testing.T) {
	ctx := context.Background()
	var s *Sea
	remote := hookRemote{
		text: `(bubble "stale")`,
		// blocks forever if the lookup held the writer lock
		during: func() { s.Modify(ctx, id1, domain.Bubble{Text: "fresh", Children: []domain.ID{}}) },
	}
	s = New(NewSnapshot(remote))

	done := make(chan domain.Bubble, 1)
	go func() {
		b, _ := s.Lookup(ctx, id1)
		done <- b
	}()

	select {
	case b := <-done:
		assert.Equal(t, "fresh", b.Text)
		now, _ := s.Current().Get(id1)
		assert.Equal(t, "fresh", now.Text)
	case <-time.After(2 * time.Second):
		t.Fatal("Lookup held the writer lock during the remote call")
	}
}

func TestSea_LookupMissDoesNotReplaceSnapshot(t *testing.T) {
	s := New(nil)
	before := s.Current()

	_, ok := s.Lookup(context.Background(), id1)

	assert.False(t, ok)
	assert.Same(t, before, s.Current())
}

func TestSea_HeldSnapshotIsImmutable(t *testing.T) {
	ctx := context.Background()
	s := New(NewSnapshot(nil, Entry{id1, bubble1}))
	held := s.Current()

	s.ModifyText(ctx, id1, "changed")

	b, _ := held.Get(id1)
	assert.Equal(t, "1", b.Text)
	now, _ := s.Lookup(ctx, id1)
	assert.Equal(t, "changed", now.Text)
}

func TestSea_WriteThroughOrder(t *testing.T) {
	ctx := context.Background()
	p, b, c := id3, id1, id2
	sink := &recordingSink{}
	s := New(NewSnapshot(nil,
		Entry{p, domain.Bubble{Text: "P", Children: []domain.ID{b, c}}},
		Entry{b, domain.Bubble{Text: "B", Children: []domain.ID{}}},
		Entry{c, domain.Bubble{Text: "C", Children: []domain.ID{}}},
	), WithSink(sink))

	s.Indent(ctx, c, b, p)

	require.Equal(t, []domain.ID{p, b}, sink.ids())
	assert.Equal(t, `(bubble "P" 0x1)`, sink.writes[0].Encoded)
	assert.Equal(t, `(bubble "B" 0x2)`, sink.writes[1].Encoded)
}

func TestSea_WriteThroughCreatesBeforeLinking(t *testing.T) {
	ctx := context.Background()
	sink := &recordingSink{}
	s := New(NewSnapshot(nil, Entry{id1, bubble1}),
		WithSink(sink),
		WithIDSource(sequentialIDs(0xA0)),
	)

	id := s.Create(ctx, id1)

	assert.Equal(t, []domain.ID{id, id1}, sink.ids())
	assert.Equal(t, `(bubble "")`, sink.writes[0].Encoded)
}

func TestSea_WriteThroughSkipsNoOps(t *testing.T) {
	ctx := context.Background()
	sink := &recordingSink{}
	s := New(NewSnapshot(nil, Entry{id1, bubble1}), WithSink(sink))

	s.Link(ctx, id2, domain.MustParseID("0x77"))
	s.Unlink(ctx, id2, id1)

	assert.Empty(t, sink.ids())
}

func TestSea_SinkFailureIsLogged(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.WarnLevel)
	sink := &recordingSink{err: errors.New("disk full")}
	s := New(NewSnapshot(nil, Entry{id1, bubble1}),
		WithSink(sink),
		WithLogger(zap.New(core)),
	)

	s.ModifyText(ctx, id1, "kept in cache")

	b, _ := s.Lookup(ctx, id1)
	assert.Equal(t, "kept in cache", b.Text)
	require.Equal(t, 1, logs.FilterMessage("write-through failed").Len())
}

func TestSea_UnencodableTextStaysCached(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.WarnLevel)
	sink := &recordingSink{}
	s := New(NewSnapshot(nil, Entry{id1, bubble1}),
		WithSink(sink),
		WithLogger(zap.New(core)),
	)

	s.ModifyText(ctx, id1, `say "hi"`)

	b, _ := s.Lookup(ctx, id1)
	assert.Equal(t, `say "hi"`, b.Text)
	assert.Empty(t, sink.ids())
	assert.Equal(t, 1, logs.FilterMessage("bubble not written through").Len())
}

func TestSea_ConcurrentWritersKeepEveryEdit(t *testing.T) {
	ctx := context.Background()
	root := domain.MustParseID("0x1")
	s := New(NewSnapshot(nil, Entry{root, domain.Bubble{Text: "root", Children: []domain.ID{}}}),
		WithIDSource(sequentialIDs(0x1000)),
	)

	const writers = 16
	const perWriter = 25
	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWriter {
				s.Create(ctx, root)
				_, _ = s.Lookup(ctx, root)
			}
		}()
	}
	wg.Wait()

	b, ok := s.Lookup(ctx, root)
	require.True(t, ok)
	assert.Len(t, b.Children, writers*perWriter)
	assert.Equal(t, writers*perWriter+1, s.Current().Len())
}

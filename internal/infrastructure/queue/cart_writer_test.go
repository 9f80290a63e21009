package queue

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/99minutos/storefront/internal/core/domain"
)

// recordingStore keeps the last snapshot per identity and the order of writes.
type recordingStore struct {
	mu     sync.Mutex
	carts  map[string][]domain.LineItem
	writes []string
	delay  time.Duration
}

func newRecordingStore() *recordingStore {
	return &recordingStore{carts: make(map[string][]domain.LineItem)}
}

func (s *recordingStore) LoadCart(_ context.Context, id string) ([]domain.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.carts[id], nil
}

func (s *recordingStore) SaveCart(_ context.Context, id string, items []domain.LineItem) error {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[id] = items
	s.writes = append(s.writes, fmt.Sprintf("save:%s:%d", id, domain.ItemCount(items)))
	return nil
}

func (s *recordingStore) DeleteCart(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, id)
	s.writes = append(s.writes, "delete:"+id)
	return nil
}

func (s *recordingStore) cart(id string) []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.carts[id]
}

func items(qty int) []domain.LineItem {
	return []domain.LineItem{{ProductID: "p1", UnitPrice: 10, Quantity: qty}}
}

func TestCartWriter_SynchronousBeforeStart(t *testing.T) {
	store := newRecordingStore()
	w := NewCartWriter(2, store, zerolog.Nop())

	w.Write("alice", items(2))
	assert.Equal(t, items(2), store.cart("alice"))

	w.Delete("alice")
	assert.Nil(t, store.cart("alice"))
	require.NoError(t, w.Sync(context.Background(), "alice"))
}

func TestCartWriter_PreservesOrderPerIdentity(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := newRecordingStore()
	store.delay = time.Millisecond
	w := NewCartWriter(4, store, zerolog.Nop())
	w.Start()

	for i := 1; i <= 20; i++ {
		w.Write("alice", items(i))
		w.Write("bob", items(100+i))
	}
	w.Delete("bob")

	require.NoError(t, w.Sync(context.Background(), "alice"))
	require.NoError(t, w.Sync(context.Background(), "bob"))
	w.Close()

	assert.Equal(t, items(20), store.cart("alice"))
	assert.Nil(t, store.cart("bob"))

	var aliceSeen []string
	for _, wr := range store.writes {
		if strings.HasPrefix(wr, "save:alice:") {
			aliceSeen = append(aliceSeen, wr)
		}
	}
	require.Len(t, aliceSeen, 20)
	for i, wr := range aliceSeen {
		assert.Equal(t, fmt.Sprintf("save:alice:%d", i+1), wr)
	}
}

func TestCartWriter_SyncHonoursContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := newRecordingStore()
	store.delay = 200 * time.Millisecond
	w := NewCartWriter(1, store, zerolog.Nop())
	w.Start()
	defer w.Close()

	w.Write("alice", items(1))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := w.Sync(ctx, "alice")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCartWriter_CloseDrainsAndRejects(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := newRecordingStore()
	w := NewCartWriter(2, store, zerolog.Nop())
	w.Start()

	w.Write("alice", items(3))
	w.Close()
	w.Close()

	assert.Equal(t, items(3), store.cart("alice"), "pending writes finish before Close returns")

	w.Write("alice", items(9))
	assert.Equal(t, items(3), store.cart("alice"), "writes after Close are dropped")
	assert.ErrorIs(t, w.Sync(context.Background(), "alice"), ErrWriterClosed)
}

func TestCartWriter_ShardIndexIsStable(t *testing.T) {
	w := NewCartWriter(8, newRecordingStore(), zerolog.Nop())
	for _, id := range []string{"alice", "bob", "6650f0c2a1"} {
		first := w.shardIndex(id)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, w.shardIndex(id))
		}
		assert.GreaterOrEqual(t, first, 0)
		assert.Less(t, first, 8)
	}
}

package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

var ErrWriterClosed = errors.New("cart writer closed")

type opKind int

const (
	opSave opKind = iota
	opDelete
	opBarrier
)

type writeOp struct {
	kind       opKind
	identityID string
	items      []domain.LineItem
	done       chan struct{}
}

// CartWriter routes cart persistence to a fixed set of workers using
// consistent hashing on the identity id, so writes for one identity are
// applied in the order they were issued.
type CartWriter struct {
	store   ports.CartStore
	log     zerolog.Logger
	workers []chan writeOp

	mu      sync.RWMutex
	closed  bool
	started bool
	wg      sync.WaitGroup
}

// NewCartWriter creates a CartWriter with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewCartWriter(numWorkers int, store ports.CartStore, log zerolog.Logger) *CartWriter {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	w := &CartWriter{
		store:   store,
		log:     log,
		workers: make([]chan writeOp, numWorkers),
	}
	for i := range w.workers {
		w.workers[i] = make(chan writeOp, channelBuffer)
	}
	return w
}

// Start launches the worker goroutines. They drain their queues and exit on
// Close. Until Start is called writes are applied synchronously.
func (w *CartWriter) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started || w.closed {
		return
	}
	w.started = true
	for i, ch := range w.workers {
		w.wg.Add(1)
		go w.runWorker(i, ch)
	}
}

// Write enqueues a full snapshot of identityID's cart.
func (w *CartWriter) Write(identityID string, items []domain.LineItem) {
	w.enqueue(writeOp{kind: opSave, identityID: identityID, items: items})
}

// Delete enqueues removal of identityID's cart partition.
func (w *CartWriter) Delete(identityID string) {
	w.enqueue(writeOp{kind: opDelete, identityID: identityID})
}

// Sync waits until every write issued for identityID before the call is applied.
func (w *CartWriter) Sync(ctx context.Context, identityID string) error {
	done := make(chan struct{})
	if !w.enqueue(writeOp{kind: opBarrier, identityID: identityID, done: done}) {
		return ErrWriterClosed
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting writes and waits for pending ones to finish.
func (w *CartWriter) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	for _, ch := range w.workers {
		close(ch)
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *CartWriter) enqueue(op writeOp) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		w.log.Warn().Str("identity_id", op.identityID).Msg("cart write after close dropped")
		return false
	}
	idx := w.shardIndex(op.identityID)
	if !w.started {
		// Without workers the write is applied on the caller's goroutine.
		w.apply(idx, op)
		return true
	}
	w.workers[idx] <- op
	metrics.CartWriterQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(w.workers[idx])))
	return true
}

// shardIndex maps an identity id deterministically to a worker index.
func (w *CartWriter) shardIndex(identityID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(identityID))
	return int(h.Sum32() % uint32(len(w.workers)))
}

func (w *CartWriter) runWorker(id int, ch <-chan writeOp) {
	defer w.wg.Done()
	for op := range ch {
		w.apply(id, op)
		metrics.CartWriterQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
	}
}

func (w *CartWriter) apply(worker int, op writeOp) {
	// Writes must land even when the request that caused them is gone.
	ctx := context.Background()

	var err error
	switch op.kind {
	case opSave:
		err = w.store.SaveCart(ctx, op.identityID, op.items)
	case opDelete:
		err = w.store.DeleteCart(ctx, op.identityID)
	case opBarrier:
		close(op.done)
		return
	}
	if err != nil {
		metrics.CartPersistErrorsTotal.Inc()
		w.log.Error().Err(err).
			Str("identity_id", op.identityID).
			Int("worker_id", worker).
			Msg("cart persistence failed")
	}
}

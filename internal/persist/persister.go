package persist

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/GabrielePre11/storefront/internal/cart"
	"github.com/GabrielePre11/storefront/internal/domain"
	"github.com/GabrielePre11/storefront/internal/favorites"
	"github.com/GabrielePre11/storefront/internal/storage"
)

const saveTimeout = time.Second

// Persister subscribes to store change events and serializes snapshots
// in the background, keeping the stores persistence-agnostic. Writes are
// fire-and-forget from the mutator's perspective: bursts coalesce to the
// latest snapshot per record and errors are logged, never propagated.
type Persister struct {
	snapshots storage.SnapshotStore

	mu      sync.Mutex
	pending map[string][]byte
	latest  map[string]uint64

	wake     chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func New(snapshots storage.SnapshotStore) *Persister {
	p := &Persister{
		snapshots: snapshots,
		pending:   make(map[string][]byte),
		latest:    make(map[string]uint64),
		wake:      make(chan struct{}, 1),
		stop:      make(chan struct{}),
	}

	p.wg.Add(1)
	go p.loop()

	return p
}

// Watch subscribes the persister to both stores. The returned function
// cancels the subscriptions.
func (p *Persister) Watch(c *cart.Store, f *favorites.Store) (unwatch func()) {
	unsubCart := c.Subscribe(func(seq uint64, lines []domain.CartLine) {
		p.enqueue(storage.RecordCart, seq, lines)
	})
	unsubFav := f.Subscribe(func(seq uint64, entries []domain.Product) {
		p.enqueue(storage.RecordFavorites, seq, entries)
	})
	return func() {
		unsubCart()
		unsubFav()
	}
}

// Close flushes pending snapshots and stops the background writer.
func (p *Persister) Close() {
	p.stopOnce.Do(func() {
		close(p.stop)
	})
	p.wg.Wait()
}

// enqueue records a snapshot for the background writer. Store
// notifications can arrive out of mutation order, so the store's
// sequence number decides which snapshot is newest; anything at or
// below the highest seq already seen for the record is stale and
// dropped.
func (p *Persister) enqueue(name string, seq uint64, state any) {
	data, err := json.Marshal(state)
	if err != nil {
		log.Printf("marshal snapshot %q error: %v", name, err)
		return
	}

	p.mu.Lock()
	if seq <= p.latest[name] {
		p.mu.Unlock()
		return
	}
	p.latest[name] = seq
	p.pending[name] = data
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *Persister) loop() {
	defer p.wg.Done()

	for {
		select {
		case <-p.wake:
			p.flush()
		case <-p.stop:
			p.flush()
			return
		}
	}
}

func (p *Persister) flush() {
	p.mu.Lock()
	batch := p.pending
	p.pending = make(map[string][]byte)
	p.mu.Unlock()

	for name, data := range batch {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		if err := p.snapshots.Save(ctx, name, data); err != nil {
			log.Printf("save snapshot %q error: %v", name, err)
		}
		cancel()
	}
}

// Restore seeds both stores from their persisted records. A missing
// record means an empty store; a corrupt one is logged and skipped so a
// bad snapshot can never block startup.
func Restore(ctx context.Context, snapshots storage.SnapshotStore, c *cart.Store, f *favorites.Store) error {
	data, err := snapshots.Load(ctx, storage.RecordCart)
	switch {
	case err == nil:
		var lines []domain.CartLine
		if err := json.Unmarshal(data, &lines); err != nil {
			log.Printf("corrupt cart snapshot, starting empty: %v", err)
		} else {
			c.Restore(lines)
		}
	case !errors.Is(err, storage.ErrNotFound):
		return err
	}

	data, err = snapshots.Load(ctx, storage.RecordFavorites)
	switch {
	case err == nil:
		var entries []domain.Product
		if err := json.Unmarshal(data, &entries); err != nil {
			log.Printf("corrupt favorites snapshot, starting empty: %v", err)
		} else {
			f.Restore(entries)
		}
	case !errors.Is(err, storage.ErrNotFound):
		return err
	}

	return nil
}

package browse

import (
	"context"
	"sync"

	"github.com/GabrielePre11/storefront/internal/domain"
)

// Pager fetches one page of the catalog. Consumers define this
// interface, not the catalog client.
type Pager interface {
	Page(ctx context.Context, page, size int) ([]domain.Product, error)
}

// Feed accumulates catalog pages into one running product list, the
// "load more" flow. Products whose id is already accumulated are
// filtered out, since the upstream may return overlapping items across
// page boundaries.
//
// Every load carries a monotonic request token; a response that is not
// the latest issued request is discarded, so the accumulated list always
// reflects the last-requested load regardless of completion order.
type Feed struct {
	pager    Pager
	pageSize int

	mu       sync.Mutex
	page     int
	seq      uint64
	seen     map[int64]struct{}
	products []domain.Product
}

func NewFeed(pager Pager, pageSize int) *Feed {
	return &Feed{
		pager:    pager,
		pageSize: pageSize,
		seen:     make(map[int64]struct{}),
	}
}

// LoadNext fetches the page after the last applied one and appends its
// unseen products. It returns the full accumulated list. A load that was
// superseded while in flight is dropped and the current list returned
// unchanged. A failed load does not advance the page, so the next call
// retries the same page.
func (f *Feed) LoadNext(ctx context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	f.seq++
	token := f.seq
	page := f.page + 1
	f.mu.Unlock()

	products, err := f.pager.Page(ctx, page, f.pageSize)

	f.mu.Lock()
	defer f.mu.Unlock()

	if token != f.seq {
		return f.snapshotLocked(), nil
	}
	if err != nil {
		return nil, err
	}

	f.page = page
	for _, p := range products {
		if _, dup := f.seen[p.ID]; dup {
			continue
		}
		f.seen[p.ID] = struct{}{}
		f.products = append(f.products, p)
	}
	return f.snapshotLocked(), nil
}

// Products returns the accumulated list so far.
func (f *Feed) Products() []domain.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// Page returns the number of the last successfully applied page.
func (f *Feed) Page() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page
}

// Reset drops the accumulated list and starts over from page one.
// In-flight loads are invalidated.
func (f *Feed) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	f.page = 0
	f.seen = make(map[int64]struct{})
	f.products = nil
}

func (f *Feed) snapshotLocked() []domain.Product {
	return append([]domain.Product(nil), f.products...)
}

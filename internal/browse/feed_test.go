package browse

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/GabrielePre11/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPager struct {
	mu    sync.Mutex
	pages map[int][]domain.Product
	err   error
	calls []int
}

func (p *stubPager) Page(_ context.Context, page, _ int) ([]domain.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, page)
	if p.err != nil {
		return nil, p.err
	}
	return p.pages[page], nil
}

func products(ids ...int64) []domain.Product {
	result := make([]domain.Product, len(ids))
	for i, id := range ids {
		result[i] = domain.Product{ID: id}
	}
	return result
}

func ids(products []domain.Product) []int64 {
	result := make([]int64, len(products))
	for i, p := range products {
		result[i] = p.ID
	}
	return result
}

func TestLoadNext_AccumulatesPages(t *testing.T) {
	pager := &stubPager{pages: map[int][]domain.Product{
		1: products(1, 2, 3),
		2: products(4, 5, 6),
	}}
	feed := NewFeed(pager, 3)

	first, err := feed.LoadNext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids(first))

	second, err := feed.LoadNext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6}, ids(second))
	assert.Equal(t, []int{1, 2}, pager.calls)
}

func TestLoadNext_FiltersOverlappingIDs(t *testing.T) {
	// The upstream may return overlapping items across page boundaries;
	// each id must appear exactly once in the accumulated list.
	pager := &stubPager{pages: map[int][]domain.Product{
		1: products(1, 2, 3),
		2: products(3, 4, 5),
	}}
	feed := NewFeed(pager, 3)

	_, err := feed.LoadNext(context.Background())
	require.NoError(t, err)
	accumulated, err := feed.LoadNext(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(accumulated))
}

func TestLoadNext_ErrorDoesNotAdvancePage(t *testing.T) {
	pager := &stubPager{err: errors.New("boom")}
	feed := NewFeed(pager, 10)

	_, err := feed.LoadNext(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, feed.Page())
	assert.Empty(t, feed.Products())

	pager.mu.Lock()
	pager.err = nil
	pager.pages = map[int][]domain.Product{1: products(1, 2)}
	pager.mu.Unlock()

	accumulated, err := feed.LoadNext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids(accumulated))
	assert.Equal(t, 1, feed.Page())
	// Both attempts asked for page 1.
	assert.Equal(t, []int{1, 1}, pager.calls)
}

type pageResult struct {
	products []domain.Product
	err      error
}

// manualPager blocks every Page call until the test completes it,
// so completion order can be controlled explicitly.
type manualPager struct {
	mu       sync.Mutex
	inFlight []chan pageResult
	started  chan struct{}
}

func newManualPager() *manualPager {
	return &manualPager{started: make(chan struct{}, 8)}
}

func (m *manualPager) Page(context.Context, int, int) ([]domain.Product, error) {
	ch := make(chan pageResult)
	m.mu.Lock()
	m.inFlight = append(m.inFlight, ch)
	m.mu.Unlock()
	m.started <- struct{}{}

	res := <-ch
	return res.products, res.err
}

func (m *manualPager) complete(i int, res pageResult) {
	m.mu.Lock()
	ch := m.inFlight[i]
	m.mu.Unlock()
	ch <- res
}

func TestLoadNext_StaleResponseDiscarded(t *testing.T) {
	pager := newManualPager()
	feed := NewFeed(pager, 3)

	results := make(chan []domain.Product, 2)
	load := func() {
		accumulated, err := feed.LoadNext(context.Background())
		assert.NoError(t, err)
		results <- accumulated
	}

	// Two loads issued back to back; the earlier-issued one resolves last.
	go load()
	waitStarted(t, pager)
	go load()
	waitStarted(t, pager)

	pager.complete(1, pageResult{products: products(3, 4, 5)})
	newest := <-results
	assert.Equal(t, []int64{3, 4, 5}, ids(newest))

	pager.complete(0, pageResult{products: products(1, 2, 3)})
	stale := <-results

	// The stale response is ignored: the accumulated list still reflects
	// the last-requested load.
	assert.Equal(t, []int64{3, 4, 5}, ids(stale))
	assert.Equal(t, []int64{3, 4, 5}, ids(feed.Products()))
}

func TestReset(t *testing.T) {
	pager := &stubPager{pages: map[int][]domain.Product{1: products(1, 2)}}
	feed := NewFeed(pager, 2)

	_, err := feed.LoadNext(context.Background())
	require.NoError(t, err)

	feed.Reset()

	assert.Empty(t, feed.Products())
	assert.Equal(t, 0, feed.Page())

	// After a reset previously seen ids accumulate again.
	accumulated, err := feed.LoadNext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids(accumulated))
}

func waitStarted(t *testing.T, pager *manualPager) {
	t.Helper()
	select {
	case <-pager.started:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for page request")
	}
}

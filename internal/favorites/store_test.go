package favorites

import (
	"testing"

	"github.com/GabrielePre11/storefront/internal/domain"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(id int64) domain.Product {
	return domain.Product{
		ID:       id,
		Title:    gofakeit.ProductName(),
		Category: gofakeit.ProductCategory(),
		Price:    decimal.NewFromFloat(gofakeit.Price(1, 100)),
		Images:   []string{gofakeit.URL()},
	}
}

func TestAddAndContains(t *testing.T) {
	s := New()
	p := testProduct(1)

	assert.False(t, s.Contains(1))
	s.Add(p)
	assert.True(t, s.Contains(1))
}

func TestAdd_DuplicateIsIdempotent(t *testing.T) {
	s := New()
	p := testProduct(1)

	s.Add(p)
	s.Add(p)

	assert.Len(t, s.Entries(), 1)
}

func TestRemove(t *testing.T) {
	s := New()
	s.Add(testProduct(1))

	s.Remove(1)

	assert.False(t, s.Contains(1))
	assert.Empty(t, s.Entries())
}

func TestRemove_AbsentIsNoOp(t *testing.T) {
	s := New()
	s.Add(testProduct(1))
	before := s.Entries()

	s.Remove(42)

	if diff := cmp.Diff(before, s.Entries()); diff != "" {
		t.Errorf("favorites changed (-before +after):\n%s", diff)
	}
}

func TestToggle(t *testing.T) {
	s := New()
	p := testProduct(1)

	assert.True(t, s.Toggle(p))
	assert.True(t, s.Contains(1))

	assert.False(t, s.Toggle(p))
	assert.False(t, s.Contains(1))
}

func TestEntries_InsertionOrder(t *testing.T) {
	s := New()
	s.Add(testProduct(7))
	s.Add(testProduct(3))
	s.Add(testProduct(11))

	entries := s.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, int64(7), entries[0].ID)
	assert.Equal(t, int64(3), entries[1].ID)
	assert.Equal(t, int64(11), entries[2].ID)
}

func TestRestore_DropsDuplicateIDs(t *testing.T) {
	s := New()
	p := testProduct(1)

	s.Restore([]domain.Product{p, p, testProduct(2)})

	assert.Len(t, s.Entries(), 2)
}

func TestRestore_DoesNotNotify(t *testing.T) {
	s := New()
	notified := 0
	s.Subscribe(func(uint64, []domain.Product) { notified++ })

	s.Restore([]domain.Product{testProduct(1)})

	assert.Equal(t, 0, notified)
}

func TestSubscribe_NotifiedOnMutation(t *testing.T) {
	s := New()

	var states [][]domain.Product
	s.Subscribe(func(_ uint64, entries []domain.Product) {
		states = append(states, entries)
	})

	s.Add(testProduct(1))
	s.Remove(1)

	require.Len(t, states, 2)
	assert.Len(t, states[0], 1)
	assert.Empty(t, states[1])
}

func TestSubscribe_DuplicateAddDoesNotNotify(t *testing.T) {
	s := New()
	p := testProduct(1)
	s.Add(p)

	notified := 0
	s.Subscribe(func(uint64, []domain.Product) { notified++ })

	s.Add(p)

	assert.Equal(t, 0, notified)
}

func TestUnsubscribe(t *testing.T) {
	s := New()
	notified := 0
	unsubscribe := s.Subscribe(func(uint64, []domain.Product) { notified++ })

	s.Add(testProduct(1))
	unsubscribe()
	s.Add(testProduct(2))

	assert.Equal(t, 1, notified)
}

func TestSubscribe_SeqIncreasesPerMutation(t *testing.T) {
	s := New()

	var seqs []uint64
	s.Subscribe(func(seq uint64, _ []domain.Product) {
		seqs = append(seqs, seq)
	})

	s.Add(testProduct(1))
	s.Toggle(testProduct(2))
	s.Remove(1)

	require.Len(t, seqs, 3)
	assert.Less(t, seqs[0], seqs[1])
	assert.Less(t, seqs[1], seqs[2])
}

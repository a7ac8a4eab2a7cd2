package storage

import (
	"context"
	"errors"
)

// Record names for the two persisted stores.
const (
	RecordCart      = "cart"
	RecordFavorites = "favorites"
)

var ErrNotFound = errors.New("snapshot not found")

// SnapshotStore is durable local key-value storage: each named record
// holds a JSON snapshot of one store's full state. Records are read once
// at startup and rewritten on change.
type SnapshotStore interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
	Close() error
}

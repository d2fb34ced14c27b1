package cards

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a card is not present in a store.
var ErrNotFound = errors.New("card not found")

// Store persists raw card records. Lookups are by exact card name.
type Store interface {
	Get(ctx context.Context, name string) (*RawCard, error)
	Put(ctx context.Context, card *RawCard) error
	Close() error
}

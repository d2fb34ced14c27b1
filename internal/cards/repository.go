package cards

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Repository resolves card names to parsed metadata, layering an
// in-memory cache over a store over an optional remote catalog. It is
// passed explicitly into every component that needs card data; there
// is no package-level instance.
type Repository struct {
	cache   *gocache.Cache
	store   Store
	catalog *Catalog
	log     *zap.Logger
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithCatalog attaches a remote catalog consulted on store misses.
// Fetched cards are written back to the store.
func WithCatalog(catalog *Catalog) RepositoryOption {
	return func(r *Repository) { r.catalog = catalog }
}

// WithCacheTTL overrides the default one-hour metadata cache TTL.
func WithCacheTTL(ttl time.Duration) RepositoryOption {
	return func(r *Repository) { r.cache = gocache.New(ttl, 2*ttl) }
}

// NewRepository builds a repository over the store.
func NewRepository(store Store, log *zap.Logger, opts ...RepositoryOption) *Repository {
	repo := &Repository{
		cache: gocache.New(time.Hour, 10*time.Minute),
		store: store,
		log:   log,
	}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// GetCard returns parsed metadata for the named card, consulting the
// cache, then the store, then the catalog.
func (r *Repository) GetCard(ctx context.Context, name string) (*CardMetadata, error) {
	key := strings.ToLower(name)
	if cached, ok := r.cache.Get(key); ok {
		return cached.(*CardMetadata), nil
	}

	raw, err := r.lookupRaw(ctx, name)
	if err != nil {
		return nil, err
	}

	meta := BuildMetadata(raw)
	r.cache.SetDefault(key, meta)
	return meta, nil
}

// AddCard stores a raw card and invalidates any cached metadata so
// the next GetCard reparses it.
func (r *Repository) AddCard(ctx context.Context, card *RawCard) error {
	if err := r.store.Put(ctx, card); err != nil {
		return err
	}
	r.cache.Delete(strings.ToLower(card.Name))
	return nil
}

func (r *Repository) lookupRaw(ctx context.Context, name string) (*RawCard, error) {
	raw, err := r.store.Get(ctx, name)
	if err == nil {
		return raw, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("store lookup for %q: %w", name, err)
	}
	if r.catalog == nil {
		return nil, ErrNotFound
	}

	raw, err = r.catalog.FetchByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := r.store.Put(ctx, raw); err != nil {
		r.log.Warn("could not persist fetched card",
			zap.String("name", raw.Name), zap.Error(err))
	}
	return raw, nil
}

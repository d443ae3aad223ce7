package ledger

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/fortunaspin/fortuna/internal/domain"
)

// Cache sizing defaults
const (
	DefaultCacheSize = 4096
	DefaultCacheTTL  = 5 * time.Minute
)

// CachedStore wraps a Store with an in-memory LRU read-through cache.
// Snapshots are written through on Save so a cached read never regresses
// behind the durable copy held by the same process.
type CachedStore struct {
	inner Store
	lru   *expirable.LRU[string, domain.LedgerSnapshot]
}

// NewCachedStore creates a read-through cache in front of inner.
func NewCachedStore(inner Store, size int, ttl time.Duration) *CachedStore {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedStore{
		inner: inner,
		lru:   expirable.NewLRU[string, domain.LedgerSnapshot](size, nil, ttl),
	}
}

// Load returns the cached snapshot when present, falling back to the
// durable store and populating the cache.
func (c *CachedStore) Load(ctx context.Context, playerID string) (domain.LedgerSnapshot, error) {
	if snapshot, ok := c.lru.Get(playerID); ok {
		return snapshot, nil
	}

	snapshot, err := c.inner.Load(ctx, playerID)
	if err != nil {
		return domain.LedgerSnapshot{}, err
	}

	c.lru.Add(playerID, snapshot)
	return snapshot, nil
}

// Save writes through to the durable store first; the cache is only
// updated after the write succeeds.
func (c *CachedStore) Save(ctx context.Context, playerID string, snapshot domain.LedgerSnapshot) error {
	if err := c.inner.Save(ctx, playerID, snapshot); err != nil {
		return err
	}
	c.lru.Add(playerID, snapshot)
	return nil
}

// DailyCount is not cached: the counter gates spins and staleness here
// would let a capped player spin again.
func (c *CachedStore) DailyCount(ctx context.Context, playerID string) (string, int, error) {
	return c.inner.DailyCount(ctx, playerID)
}

// SetDailyCount delegates to the durable store.
func (c *CachedStore) SetDailyCount(ctx context.Context, playerID, date string, count int) error {
	return c.inner.SetDailyCount(ctx, playerID, date, count)
}

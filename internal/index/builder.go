package index

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"tradeboard/internal/dataset"
	"tradeboard/internal/logger"
)

// Builder lazily builds the Index for the store's current dataset version and
// caches it. Reads after the first build are lock-free.
type Builder struct {
	store *dataset.Store

	mu      sync.Mutex
	current atomic.Pointer[Index]
	builds  atomic.Int64
}

func NewBuilder(store *dataset.Store) *Builder {
	return &Builder{store: store}
}

// Get ensures the dataset is loaded and returns the index for it. Load
// failures are returned unchanged so callers can match dataset.ErrDataUnavailable.
func (b *Builder) Get(ctx context.Context) (*Index, error) {
	if err := b.store.Ensure(ctx); err != nil {
		return nil, err
	}

	version := b.store.Version()
	if idx := b.current.Load(); idx != nil && idx.Version == version {
		return idx, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if idx := b.current.Load(); idx != nil && idx.Version == version {
		return idx, nil
	}

	start := time.Now()
	idx := Build(b.store.All(), version)
	b.current.Store(idx)
	b.builds.Add(1)

	log := logger.FromContext(ctx)
	log.Info().
		Int("records", len(idx.Records)).
		Int("companies", idx.Companies.Len()).
		Int("commodities", idx.Commodities.Len()).
		Int("months", idx.Months.Len()).
		Dur("took", time.Since(start)).
		Msg("shipment indices built")

	return idx, nil
}

// Builds reports how many times an index has been built
func (b *Builder) Builds() int64 {
	return b.builds.Load()
}

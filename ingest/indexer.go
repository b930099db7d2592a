// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ingest

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/lokum/ai"
	"github.com/poiesic/lokum/core"
	"github.com/poiesic/lokum/storage"
)

const (
	defaultRetryAttempts = 3
	defaultRetryDelay    = 500 * time.Millisecond
)

// Indexer feeds listings from the authoritative store into the vector index.
// Indexing never overwrites: a listing whose id is already present in the
// index is skipped, so repeated runs are idempotent.
type Indexer struct {
	listings storage.ListingRepository
	index    storage.VectorIndex
	embedder ai.Embedder
	pool     *ants.Pool

	retryAttempts int
	retryDelay    time.Duration
	logger        *slog.Logger
}

// Option configures an Indexer.
type Option func(*Indexer) error

// WithPoolSize sets the worker pool size for bulk population.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(idx *Indexer) error {
		if size < 1 {
			size = 1
		}

		if idx.pool != nil {
			idx.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		idx.pool = pool
		return nil
	}
}

// WithRetry configures how embedding calls are retried.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(idx *Indexer) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		idx.retryAttempts = maxAttempts
		idx.retryDelay = baseDelay
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(idx *Indexer) error {
		if logger == nil {
			logger = slog.Default()
		}
		idx.logger = logger.With("component", "indexer")
		return nil
	}
}

// NewIndexer creates a new indexer over the given store, index and embedder.
func NewIndexer(
	listings storage.ListingRepository,
	index storage.VectorIndex,
	embedder ai.Embedder,
	opts ...Option,
) (*Indexer, error) {
	if listings == nil {
		return nil, ErrListingRepositoryRequired
	}
	if index == nil {
		return nil, ErrVectorIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	idx := &Indexer{
		listings:      listings,
		index:         index,
		embedder:      embedder,
		pool:          pool,
		retryAttempts: defaultRetryAttempts,
		retryDelay:    defaultRetryDelay,
		logger:        slog.Default().With("component", "indexer"),
	}

	for _, opt := range opts {
		if optErr := opt(idx); optErr != nil {
			idx.Release()
			return nil, optErr
		}
	}

	return idx, nil
}

// Add indexes a single listing. It reports true when a new vector was
// written, false when the listing was skipped: already indexed, or carrying
// no text to embed.
func (idx *Indexer) Add(ctx context.Context, listing *core.Listing) (bool, error) {
	if err := core.ValidateListing(listing); err != nil {
		return false, err
	}

	if !listing.HasTextContent() {
		idx.logger.Debug("skipping listing without text content", "id", listing.Id)
		return false, nil
	}

	exists, err := idx.index.Has(ctx, listing.Id)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	text := BuildEmbeddingText(listing)

	var vector []float32
	embed := func() error {
		var embedErr error
		vector, embedErr = idx.embedder.EmbedText(ctx, text)
		return embedErr
	}
	if err := RetryWithBackoff(ctx, embed, idx.retryAttempts, idx.retryDelay); err != nil {
		return false, err
	}

	return idx.index.Put(ctx, &core.ListingVector{
		Id:     listing.Id,
		Text:   text,
		Vector: vector,
		Meta:   BuildVectorMeta(listing),
	})
}

// PopulateStats summarizes one bulk population run.
type PopulateStats struct {
	Processed int64 // listings read from the store
	Added     int64 // new vectors written
	Skipped   int64 // already indexed or no text content
	Failed    int64 // listings that errored after retries
}

// Populate indexes all rent listings, then all sale listings. A positive
// limit caps how many listings are read per scope. Individual failures are
// logged and counted; only storage iteration errors abort the run.
func (idx *Indexer) Populate(ctx context.Context, limit int) (*PopulateStats, error) {
	var processed, added, skipped, failed atomic.Int64
	var wg sync.WaitGroup

	for _, scope := range []core.Scope{core.ScopeRent, core.ScopeSale} {
		idx.logger.Info("populating index", "scope", scope, "limit", limit)

		err := idx.listings.ForEachListing(ctx, scope, limit, func(listing *core.Listing) error {
			wg.Add(1)
			submitErr := idx.pool.Submit(func() {
				defer wg.Done()

				processed.Add(1)
				ok, addErr := idx.Add(ctx, listing)
				switch {
				case addErr != nil:
					failed.Add(1)
					idx.logger.Error("failed to index listing", "id", listing.Id, "err", addErr)
				case ok:
					added.Add(1)
				default:
					skipped.Add(1)
				}
			})
			if submitErr != nil {
				wg.Done()
				return submitErr
			}
			return nil
		})
		if err != nil {
			wg.Wait()
			return nil, err
		}
	}

	wg.Wait()

	stats := &PopulateStats{
		Processed: processed.Load(),
		Added:     added.Load(),
		Skipped:   skipped.Load(),
		Failed:    failed.Load(),
	}
	idx.logger.Info("population complete",
		"processed", stats.Processed,
		"added", stats.Added,
		"skipped", stats.Skipped,
		"failed", stats.Failed)
	return stats, nil
}

// Release releases the worker pool.
// The indexer should not be used after calling Release.
func (idx *Indexer) Release() {
	if idx.pool != nil {
		idx.pool.Release()
	}
}

package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/lokum/ai/mock"
	"github.com/poiesic/lokum/core"
	"github.com/poiesic/lokum/storage"
	"github.com/poiesic/lokum/storage/badger"
	"github.com/poiesic/lokum/storage/memory"
)

func newTestIndexer(t *testing.T) (*Indexer, *memory.ListingRepository, storage.VectorIndex, *mock.MockEmbedder) {
	t.Helper()

	repo := memory.NewListingRepository()
	index, _, err := badger.NewMemoryVectorIndex()
	require.NoError(t, err)
	t.Cleanup(func() { index.Close() })

	embedder := mock.NewMockEmbedder()
	indexer, err := NewIndexer(repo, index, embedder,
		WithPoolSize(2),
		WithRetry(3, time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(indexer.Release)

	return indexer, repo, index, embedder
}

func rentListing(id, title string) *core.Listing {
	return &core.Listing{
		Id:    id,
		Scope: core.ScopeRent,
		Title: title,
		City:  "Warszawa",
		Price: 3000,
	}
}

func TestNewIndexer(t *testing.T) {
	repo := memory.NewListingRepository()
	index, _, err := badger.NewMemoryVectorIndex()
	require.NoError(t, err)
	defer index.Close()
	embedder := mock.NewMockEmbedder()

	t.Run("requires listing repository", func(t *testing.T) {
		_, err := NewIndexer(nil, index, embedder)
		assert.ErrorIs(t, err, ErrListingRepositoryRequired)
	})

	t.Run("requires vector index", func(t *testing.T) {
		_, err := NewIndexer(repo, nil, embedder)
		assert.ErrorIs(t, err, ErrVectorIndexRequired)
	})

	t.Run("requires embedder", func(t *testing.T) {
		_, err := NewIndexer(repo, index, nil)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})

	t.Run("rejects invalid retry configuration", func(t *testing.T) {
		_, err := NewIndexer(repo, index, embedder, WithRetry(0, 0))
		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
	})
}

func TestIndexerAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("indexes a listing with text", func(t *testing.T) {
		indexer, _, index, _ := newTestIndexer(t)

		added, err := indexer.Add(ctx, rentListing("a", "Mieszkanie na Woli"))
		require.NoError(t, err)
		assert.True(t, added)

		vec, err := index.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, BuildEmbeddingText(rentListing("a", "Mieszkanie na Woli")), vec.Text)
		assert.NotEmpty(t, vec.Vector)
		assert.Equal(t, core.ScopeRent, vec.Meta.Scope)
	})

	t.Run("skips already indexed ids", func(t *testing.T) {
		indexer, _, _, embedder := newTestIndexer(t)

		added, err := indexer.Add(ctx, rentListing("a", "Pierwsza wersja"))
		require.NoError(t, err)
		require.True(t, added)
		callsAfterFirst := embedder.CallCount()

		added, err = indexer.Add(ctx, rentListing("a", "Druga wersja"))
		require.NoError(t, err)
		assert.False(t, added)
		assert.Equal(t, callsAfterFirst, embedder.CallCount(), "should not embed again")
	})

	t.Run("skips listings without text content", func(t *testing.T) {
		indexer, _, index, embedder := newTestIndexer(t)

		added, err := indexer.Add(ctx, &core.Listing{Id: "bare", Scope: core.ScopeRent})
		require.NoError(t, err)
		assert.False(t, added)
		assert.Zero(t, embedder.CallCount())

		exists, err := index.Has(ctx, "bare")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("rejects invalid listings", func(t *testing.T) {
		indexer, _, _, _ := newTestIndexer(t)

		_, err := indexer.Add(ctx, &core.Listing{Scope: core.ScopeRent, Title: "bez id"})
		assert.ErrorIs(t, err, core.ErrMissingID)
	})

	t.Run("retries transient embedding failures", func(t *testing.T) {
		indexer, _, _, embedder := newTestIndexer(t)

		failures := 2
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			if failures > 0 {
				failures--
				return nil, errors.New("temporarily unavailable")
			}
			return []float32{1, 0, 0}, nil
		}

		added, err := indexer.Add(ctx, rentListing("a", "Mieszkanie"))
		require.NoError(t, err)
		assert.True(t, added)
	})
}

func TestIndexerPopulate(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, repo *memory.ListingRepository) {
		t.Helper()
		require.NoError(t, repo.UpsertListing(ctx, rentListing("r1", "Kawalerka na Pradze")))
		require.NoError(t, repo.UpsertListing(ctx, rentListing("r2", "Dwa pokoje na Woli")))
		require.NoError(t, repo.UpsertListing(ctx, &core.Listing{
			Id:    "s1",
			Scope: core.ScopeSale,
			Title: "Apartament w centrum",
			Sale:  &core.SaleDetails{MarketType: "wtorny"},
		}))
	}

	t.Run("indexes both scopes", func(t *testing.T) {
		indexer, repo, index, _ := newTestIndexer(t)
		seed(t, repo)

		stats, err := indexer.Populate(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.Processed)
		assert.Equal(t, int64(3), stats.Added)
		assert.Zero(t, stats.Failed)

		idxStats, err := index.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, idxStats.Rent)
		assert.Equal(t, 1, idxStats.Sale)
	})

	t.Run("second run skips everything", func(t *testing.T) {
		indexer, repo, _, _ := newTestIndexer(t)
		seed(t, repo)

		_, err := indexer.Populate(ctx, 0)
		require.NoError(t, err)

		stats, err := indexer.Populate(ctx, 0)
		require.NoError(t, err)
		assert.Zero(t, stats.Added)
		assert.Equal(t, int64(3), stats.Skipped)
	})

	t.Run("limit caps listings per scope", func(t *testing.T) {
		indexer, repo, _, _ := newTestIndexer(t)
		seed(t, repo)

		stats, err := indexer.Populate(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.Processed, "one rent and one sale listing")
	})

	t.Run("per-item failures do not abort the run", func(t *testing.T) {
		indexer, repo, _, embedder := newTestIndexer(t)
		seed(t, repo)

		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			if text == BuildEmbeddingText(rentListing("r1", "Kawalerka na Pradze")) {
				return nil, errors.New("broken")
			}
			return []float32{0, 1, 0}, nil
		}

		stats, err := indexer.Populate(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stats.Failed)
		assert.Equal(t, int64(2), stats.Added)
	})
}

package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/lokum/ai/mock"
	"github.com/poiesic/lokum/core"
	"github.com/poiesic/lokum/storage"
	"github.com/poiesic/lokum/storage/badger"
)

// queryTowardsX embeds every query as the x axis so similarity reduces to the
// first vector component.
func queryTowardsX() *mock.MockEmbedder {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0, 0}, nil
	}
	return embedder
}

func newTestIndex(t *testing.T) storage.VectorIndex {
	t.Helper()
	index, _, err := badger.NewMemoryVectorIndex()
	require.NoError(t, err)
	t.Cleanup(func() { index.Close() })
	return index
}

func putVector(t *testing.T, index storage.VectorIndex, id string, scope core.Scope, vector []float32) {
	t.Helper()
	added, err := index.Put(context.Background(), &core.ListingVector{
		Id:     id,
		Text:   "listing " + id,
		Vector: vector,
		Meta:   core.VectorMeta{Scope: scope},
	})
	require.NoError(t, err)
	require.True(t, added)
}

func TestNewReranker(t *testing.T) {
	index := newTestIndex(t)

	t.Run("requires vector index", func(t *testing.T) {
		_, err := NewReranker(nil, queryTowardsX())
		assert.ErrorIs(t, err, ErrVectorIndexRequired)
	})

	t.Run("requires embedder", func(t *testing.T) {
		_, err := NewReranker(index, nil)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})

	t.Run("rejects non-positive over-fetch", func(t *testing.T) {
		_, err := NewReranker(index, queryTowardsX(), WithOverFetch(0))
		assert.ErrorIs(t, err, ErrInvalidOverFetch)
	})
}

func TestRerankerSearch(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) storage.VectorIndex {
		index := newTestIndex(t)
		putVector(t, index, "close", core.ScopeRent, []float32{1, 0, 0})
		putVector(t, index, "near", core.ScopeRent, []float32{0.8, 0.6, 0})
		putVector(t, index, "far", core.ScopeRent, []float32{0, 1, 0})
		return index
	}

	t.Run("orders hits by similarity", func(t *testing.T) {
		reranker, err := NewReranker(seed(t), queryTowardsX())
		require.NoError(t, err)

		hits := reranker.Search(ctx, "mieszkanie blisko parku", core.ScopeRent, nil, 3)
		require.Len(t, hits, 3)
		assert.Equal(t, "close", hits[0].Id)
		assert.Equal(t, "near", hits[1].Id)
		assert.Equal(t, "far", hits[2].Id)
		assert.Greater(t, hits[0].Score, hits[1].Score)
	})

	t.Run("empty query yields no hits", func(t *testing.T) {
		reranker, err := NewReranker(seed(t), queryTowardsX())
		require.NoError(t, err)

		assert.Empty(t, reranker.Search(ctx, "", core.ScopeRent, nil, 3))
	})

	t.Run("non-positive topK yields no hits", func(t *testing.T) {
		reranker, err := NewReranker(seed(t), queryTowardsX())
		require.NoError(t, err)

		assert.Empty(t, reranker.Search(ctx, "query", core.ScopeRent, nil, 0))
	})

	t.Run("restricts hits to the candidate set", func(t *testing.T) {
		reranker, err := NewReranker(seed(t), queryTowardsX())
		require.NoError(t, err)

		hits := reranker.Search(ctx, "query", core.ScopeRent, []string{"near", "far"}, 5)
		require.Len(t, hits, 2)
		assert.Equal(t, "near", hits[0].Id)
		assert.Equal(t, "far", hits[1].Id)
	})

	t.Run("topK capped by candidate count", func(t *testing.T) {
		reranker, err := NewReranker(seed(t), queryTowardsX())
		require.NoError(t, err)

		hits := reranker.Search(ctx, "query", core.ScopeRent, []string{"close"}, 10)
		require.Len(t, hits, 1)
		assert.Equal(t, "close", hits[0].Id)
	})

	t.Run("unrestricted search truncates to topK", func(t *testing.T) {
		reranker, err := NewReranker(seed(t), queryTowardsX())
		require.NoError(t, err)

		hits := reranker.Search(ctx, "query", core.ScopeRent, nil, 2)
		require.Len(t, hits, 2)
		assert.Equal(t, "close", hits[0].Id)
	})

	t.Run("embedder failure degrades to empty", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("service down")
		}

		reranker, err := NewReranker(seed(t), embedder)
		require.NoError(t, err)

		assert.Empty(t, reranker.Search(ctx, "query", core.ScopeRent, nil, 3))
	})

	t.Run("scope restriction applies", func(t *testing.T) {
		index := seed(t)
		putVector(t, index, "sale-close", core.ScopeSale, []float32{1, 0, 0})

		reranker, err := NewReranker(index, queryTowardsX())
		require.NoError(t, err)

		hits := reranker.Search(ctx, "query", core.ScopeSale, nil, 5)
		require.Len(t, hits, 1)
		assert.Equal(t, "sale-close", hits[0].Id)
	})
}

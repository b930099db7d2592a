package badger

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/lokum/core"
	"github.com/poiesic/lokum/storage"
)

// VectorIndex implements storage.VectorIndex for BadgerDB.
//
// Vectors are stored normalized, so cosine similarity reduces to a dot
// product at query time. Put never overwrites: the first embedding written
// for an id is the one that stays.
type VectorIndex struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.VectorIndex = (*VectorIndex)(nil)

// NewVectorIndex creates a new VectorIndex on the given backend.
func NewVectorIndex(backend *Backend) *VectorIndex {
	return &VectorIndex{
		backend: backend,
		logger:  slog.Default().With("component", "vector-index"),
	}
}

// Put stores the vector unless the id is already indexed.
func (x *VectorIndex) Put(ctx context.Context, vec *core.ListingVector) (bool, error) {
	if vec == nil || vec.Id == "" {
		return false, fmt.Errorf("%w: %w", storage.ErrInvalidQuery, core.ErrMissingID)
	}

	stored := *vec
	stored.Vector = core.NormalizeVector(vec.Vector)

	added := false
	err := x.backend.WithTx(func(tx *badger.Txn) error {
		key := makeListingVectorKey(vec.Id)

		_, err := tx.Get(key)
		if err == nil {
			// Already indexed; embeddings are written once.
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		if err := tx.Set(key, storage.MarshalListingVector(&stored)); err != nil {
			return err
		}
		added = true
		return tx.Commit()
	}, true)

	return added, err
}

// Has reports whether a vector with the given id is indexed.
func (x *VectorIndex) Has(ctx context.Context, id string) (bool, error) {
	found := false
	err := x.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeListingVectorKey(id))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	}, false)
	return found, err
}

// Get retrieves an indexed vector by id.
func (x *VectorIndex) Get(ctx context.Context, id string) (*core.ListingVector, error) {
	var result *core.ListingVector
	err := x.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeListingVectorKey(id))
		if err == badger.ErrKeyNotFound {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			result, unmarshalErr = storage.UnmarshalListingVector(val)
			return unmarshalErr
		})
	}, false)
	return result, err
}

// Query returns up to k documents most similar to the given vector.
// Results are ordered by descending similarity; ties keep index order.
func (x *VectorIndex) Query(ctx context.Context, vector []float32, scope core.Scope, k int) ([]*core.ScoredDocument, error) {
	if k <= 0 {
		return nil, nil
	}

	var results []*core.ScoredDocument
	err := x.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = listingVectorKeyPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var vec *core.ListingVector
			err := iter.Item().Value(func(val []byte) error {
				var err error
				vec, err = storage.UnmarshalListingVector(val)
				return err
			})
			if err != nil {
				return err
			}
			if vec == nil || len(vec.Vector) == 0 {
				continue
			}

			if scope == core.ScopeRent || scope == core.ScopeSale {
				if vec.Meta.Scope != scope {
					continue
				}
			}

			results = append(results, &core.ScoredDocument{
				Id:    vec.Id,
				Score: dotProduct(vector, vec.Vector),
				Text:  vec.Text,
				Meta:  vec.Meta,
			})
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	// Stable sort keeps index order for equal scores
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}

	return results, nil
}

// Stats counts indexed documents per scope.
func (x *VectorIndex) Stats(ctx context.Context) (storage.IndexStats, error) {
	var stats storage.IndexStats
	err := x.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = listingVectorKeyPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var vec *core.ListingVector
			err := iter.Item().Value(func(val []byte) error {
				var err error
				vec, err = storage.UnmarshalListingVector(val)
				return err
			})
			if err != nil {
				return err
			}
			stats.Total++
			switch vec.Meta.Scope {
			case core.ScopeRent:
				stats.Rent++
			case core.ScopeSale:
				stats.Sale++
			}
		}
		return nil
	}, false)
	return stats, err
}

// Clear drops every indexed document.
func (x *VectorIndex) Clear(ctx context.Context) error {
	return x.backend.DropAll()
}

// Close closes the underlying backend.
func (x *VectorIndex) Close() error {
	return x.backend.Close()
}

// dotProduct calculates the dot product of two vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

package storage

import (
	"context"

	"github.com/poiesic/lokum/core"
)

// ListingRepository provides read and upsert access to the authoritative
// listing collections. Scope must be a concrete collection scope (rent or
// sale); callers expand ScopeBoth themselves.
type ListingRepository interface {
	// FindListings returns listings of the given scope matching the criteria,
	// up to limit, in the store's natural order. A nil criteria matches
	// everything. Criteria should be sanitized before the call; the
	// repository applies constraints as given.
	FindListings(ctx context.Context, scope core.Scope, criteria *core.Criteria, limit int) ([]*core.Listing, error)

	// GetListing retrieves a single listing by id.
	// Returns ErrNotFound if the listing doesn't exist.
	GetListing(ctx context.Context, scope core.Scope, id string) (*core.Listing, error)

	// UpsertListing inserts the listing or replaces the stored document with
	// the same id. The listing must pass core.ValidateListing.
	UpsertListing(ctx context.Context, listing *core.Listing) error

	// ForEachListing streams listings of the given scope to fn in the store's
	// natural order. A limit > 0 caps the number streamed; 0 streams all.
	// Iteration stops on the first error from fn.
	ForEachListing(ctx context.Context, scope core.Scope, limit int, fn func(*core.Listing) error) error

	// Close releases the underlying client.
	Close(ctx context.Context) error
}

// IndexStats summarizes the vector index contents per scope.
type IndexStats struct {
	Total int
	Rent  int
	Sale  int
}

// VectorIndex holds one embedding per listing id and answers similarity
// queries in cosine space: scores are in [-1, 1] and higher is better.
type VectorIndex interface {
	// Put stores the vector if no vector with the same id exists yet.
	// Returns false without modifying the index when the id is already
	// present: embeddings are written at most once and never overwritten.
	Put(ctx context.Context, vec *core.ListingVector) (bool, error)

	// Has reports whether a vector with the given id is indexed.
	Has(ctx context.Context, id string) (bool, error)

	// Get retrieves an indexed vector by id.
	// Returns ErrNotFound if the id is not indexed.
	Get(ctx context.Context, id string) (*core.ListingVector, error)

	// Query returns up to k documents most similar to the given vector,
	// ordered by descending score with ties kept in index order. A concrete
	// scope restricts the search to that scope's documents; ScopeBoth or the
	// zero value searches everything. The query vector must be normalized.
	Query(ctx context.Context, vector []float32, scope core.Scope, k int) ([]*core.ScoredDocument, error)

	// Stats counts indexed documents per scope.
	Stats(ctx context.Context) (IndexStats, error)

	// Clear drops every indexed document.
	Clear(ctx context.Context) error

	// Close closes the index backend and releases resources.
	Close() error
}

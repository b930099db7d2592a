package ingest

import "errors"

var (
	// ErrListingRepositoryRequired is returned when a listing repository is not provided.
	ErrListingRepositoryRequired = errors.New("listing repository required")

	// ErrVectorIndexRequired is returned when a vector index is not provided.
	ErrVectorIndexRequired = errors.New("vector index required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInvalidMaxAttempts is returned when retry is configured with a
	// non-positive attempt count.
	ErrInvalidMaxAttempts = errors.New("max attempts must be greater than zero")
)

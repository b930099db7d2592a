// Package ingest builds and maintains the derived vector index from the
// authoritative listing store.
//
// The Indexer type manages the indexing workflow for listings, including:
//   - Rendering the canonical embedding text for a listing
//   - Generating embeddings through an ai.Embedder, with retry
//   - Writing vectors to the index, skipping ids that are already present
//
// Bulk population is performed concurrently using a worker pool to maximize
// throughput. Errors on individual listings are logged and counted but do not
// fail the population run.
package ingest

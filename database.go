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


package lokum

import (
	"context"
	"log/slog"

	"github.com/poiesic/lokum/ai"
	"github.com/poiesic/lokum/ai/openai"
	"github.com/poiesic/lokum/ingest"
	"github.com/poiesic/lokum/search"
	"github.com/poiesic/lokum/storage"
	"github.com/poiesic/lokum/storage/badger"
	lokummongo "github.com/poiesic/lokum/storage/mongo"
)

// Database wires together the authoritative MongoDB listing store, the
// badger-backed vector index and the embedding service.
type Database struct {
	listings storage.ListingRepository
	index    storage.VectorIndex
	embedder ai.Embedder
	logger   *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig     *ai.Config
	databaseName string
}

// WithAIConfig overrides the embedding service configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithDatabaseName overrides the MongoDB database name.
func WithDatabaseName(name string) DatabaseOption {
	return func(o *databaseOptions) {
		o.databaseName = name
	}
}

// NewDatabase connects to MongoDB at mongoURI, opens the vector index at
// indexPath and configures the embedding service.
func NewDatabase(ctx context.Context, mongoURI string, indexPath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	client, err := lokummongo.Connect(ctx, mongoURI)
	if err != nil {
		return nil, err
	}
	listings := lokummongo.NewListingRepository(client, options.databaseName)

	backend, err := badger.OpenBackend(indexPath, false)
	if err != nil {
		listings.Close(ctx)
		return nil, err
	}
	index := badger.NewVectorIndex(backend)

	embedder, err := openai.NewEmbedder(options.aiConfig)
	if err != nil {
		index.Close()
		listings.Close(ctx)
		return nil, err
	}

	return &Database{
		listings: listings,
		index:    index,
		embedder: embedder,
		logger:   slog.Default(),
	}, nil
}

func (db *Database) Close(ctx context.Context) error {
	if err := db.index.Close(); err != nil {
		db.logger.Error("error closing vector index", "err", err)
		return err
	}
	if err := db.listings.Close(ctx); err != nil {
		db.logger.Error("error closing listing repository", "err", err)
		return err
	}
	return nil
}

func (db *Database) ListingRepository() storage.ListingRepository {
	return db.listings
}

func (db *Database) VectorIndex() storage.VectorIndex {
	return db.index
}

func (db *Database) NewIndexer(opts ...ingest.Option) (*ingest.Indexer, error) {
	return ingest.NewIndexer(db.listings, db.index, db.embedder, opts...)
}

func (db *Database) NewSearcher(opts ...search.Option) (*search.HybridSearcher, error) {
	reranker, err := search.NewReranker(db.index, db.embedder)
	if err != nil {
		return nil, err
	}
	return search.NewHybridSearcher(db.listings, reranker, opts...)
}

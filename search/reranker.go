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


package search

import (
	"context"
	"log/slog"

	"github.com/poiesic/lokum/ai"
	"github.com/poiesic/lokum/core"
	"github.com/poiesic/lokum/storage"
)

// DefaultOverFetch is the multiplier applied to topK when querying the vector
// index with a candidate restriction. The index ranks the whole scope, so the
// query over-fetches to keep enough candidate hits after filtering.
const DefaultOverFetch = 20

// Reranker orders candidate listings by semantic similarity to a query text.
type Reranker struct {
	index     storage.VectorIndex
	embedder  ai.Embedder
	overFetch int
	logger    *slog.Logger
}

// RerankerOption configures a Reranker.
type RerankerOption func(*Reranker) error

// WithOverFetch sets the over-fetch multiplier used when a candidate
// restriction is in effect. Default is DefaultOverFetch.
func WithOverFetch(multiplier int) RerankerOption {
	return func(r *Reranker) error {
		if multiplier <= 0 {
			return ErrInvalidOverFetch
		}
		r.overFetch = multiplier
		return nil
	}
}

// WithRerankerLogger sets a custom logger.
// Default is slog.Default().
func WithRerankerLogger(logger *slog.Logger) RerankerOption {
	return func(r *Reranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger.With("component", "reranker")
		return nil
	}
}

// NewReranker creates a reranker over the given index and embedder.
func NewReranker(index storage.VectorIndex, embedder ai.Embedder, opts ...RerankerOption) (*Reranker, error) {
	if index == nil {
		return nil, ErrVectorIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	r := &Reranker{
		index:     index,
		embedder:  embedder,
		overFetch: DefaultOverFetch,
		logger:    slog.Default().With("component", "reranker"),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Search returns up to topK index hits for the query text, best first. When
// candidateIDs is non-empty, hits are restricted to that set and topK is
// additionally capped by the candidate count. Failures degrade to an empty
// result and are logged, never returned.
func (r *Reranker) Search(ctx context.Context, queryText string, scope core.Scope, candidateIDs []string, topK int) []*core.ScoredDocument {
	if queryText == "" || topK <= 0 {
		return nil
	}

	restricted := len(candidateIDs) > 0
	if restricted && topK > len(candidateIDs) {
		topK = len(candidateIDs)
	}

	embedding, err := r.embedder.EmbedText(ctx, queryText)
	if err != nil {
		r.logger.Error("error generating embedding for query", "err", err)
		return nil
	}
	if len(embedding) == 0 {
		r.logger.Warn("embedder returned empty query vector")
		return nil
	}
	embedding = core.NormalizeVector(embedding)

	fetchK := topK
	if restricted {
		fetchK = topK * r.overFetch
	}

	hits, err := r.index.Query(ctx, embedding, scope, fetchK)
	if err != nil {
		r.logger.Error("error querying vector index", "scope", scope, "k", fetchK, "err", err)
		return nil
	}

	if !restricted {
		if len(hits) > topK {
			hits = hits[:topK]
		}
		return hits
	}

	candidates := make(map[string]bool, len(candidateIDs))
	for _, id := range candidateIDs {
		candidates[id] = true
	}

	filtered := make([]*core.ScoredDocument, 0, topK)
	for _, hit := range hits {
		if !candidates[hit.Id] {
			continue
		}
		filtered = append(filtered, hit)
		if len(filtered) == topK {
			break
		}
	}
	return filtered
}

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
	"sort"

	"github.com/poiesic/lokum/core"
	"github.com/poiesic/lokum/storage"
)

const (
	// DefaultLimit is the result count used when a query does not set one.
	DefaultLimit = 10

	// DefaultCandidatePool is how many filtered listings per scope are
	// offered to the reranker when the query carries semantic text. The
	// structured filter narrows, the reranker orders; a wide pool keeps the
	// ordering decision with the reranker.
	DefaultCandidatePool = 10000
)

// Query describes one hybrid search request.
type Query struct {
	// Criteria holds the structured constraints. May be nil.
	Criteria *core.Criteria

	// Text is the free-form semantic query. When empty the structured
	// filter alone produces the results.
	Text string

	// Scope selects rent, sale or both collections.
	Scope core.Scope

	// Limit caps the number of results. Non-positive means DefaultLimit.
	Limit int
}

// HybridSearcher combines the structured filter with the semantic reranker.
type HybridSearcher struct {
	listings      storage.ListingRepository
	reranker      *Reranker
	candidatePool int
	logger        *slog.Logger
}

// Option configures a HybridSearcher.
type Option func(*HybridSearcher) error

// WithCandidatePool sets how many filtered listings per scope are collected
// as reranker candidates. Default is DefaultCandidatePool.
func WithCandidatePool(size int) Option {
	return func(s *HybridSearcher) error {
		if size <= 0 {
			return ErrInvalidCandidatePool
		}
		s.candidatePool = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *HybridSearcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "hybrid-searcher")
		return nil
	}
}

// NewHybridSearcher creates a new searcher over the given store and reranker.
func NewHybridSearcher(listings storage.ListingRepository, reranker *Reranker, opts ...Option) (*HybridSearcher, error) {
	if listings == nil {
		return nil, ErrListingRepositoryRequired
	}
	if reranker == nil {
		return nil, ErrRerankerRequired
	}

	s := &HybridSearcher{
		listings:      listings,
		reranker:      reranker,
		candidatePool: DefaultCandidatePool,
		logger:        slog.Default().With("component", "hybrid-searcher"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Search runs a hybrid search and returns ranked results, best first.
func (s *HybridSearcher) Search(ctx context.Context, query *Query) []*core.ScoredListing {
	return s.SearchWithMonitor(ctx, query, nil)
}

// SearchWithMonitor runs a hybrid search with monitoring callbacks at each
// stage. Stage failures are logged and degrade to empty or partial results;
// the method never fails outright.
func (s *HybridSearcher) SearchWithMonitor(ctx context.Context, query *Query, monitor SearchMonitor) []*core.ScoredListing {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if query == nil {
		query = &Query{}
	}

	monitor.Start(query)

	limit := query.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	if dropped := query.Criteria.Sanitize(); len(dropped) > 0 {
		s.logger.Warn("dropped malformed criteria", "dropped", dropped)
		monitor.CriteriaSanitized(dropped)
	}

	queryScope := query.Scope
	if queryScope == "" {
		queryScope = core.ScopeBoth
	}
	scopes := core.QueryScopes(queryScope)
	if len(scopes) == 0 {
		s.logger.Warn("unknown query scope", "scope", query.Scope)
		return []*core.ScoredListing{}
	}

	semantic := query.Text != ""
	pool := limit
	if semantic {
		pool = s.candidatePool
	}

	results := make([]*core.ScoredListing, 0, limit)
	for _, scope := range scopes {
		listings, err := s.listings.FindListings(ctx, scope, query.Criteria, pool)
		if err != nil {
			s.logger.Error("structured filter failed", "scope", scope, "err", err)
			continue
		}
		monitor.AfterStructuredFilter(scope, listings)
		if len(listings) == 0 {
			continue
		}

		if !semantic {
			for _, l := range listings {
				result := &core.ScoredListing{
					Listing:   l,
					Relevance: core.RelevanceFilter,
				}
				monitor.FilterHit(result)
				results = append(results, result)
			}
			continue
		}

		byID := make(map[string]*core.Listing, len(listings))
		ids := make([]string, 0, len(listings))
		for _, l := range listings {
			byID[l.Id] = l
			ids = append(ids, l.Id)
		}

		hits := s.reranker.Search(ctx, query.Text, scope, ids, limit)
		monitor.AfterSemanticRerank(scope, hits)

		for _, hit := range hits {
			l, ok := byID[hit.Id]
			if !ok {
				continue
			}
			result := &core.ScoredListing{
				Listing:       l,
				SemanticScore: hit.Score,
				Relevance:     core.RelevanceHybrid,
			}
			monitor.HybridHit(result)
			results = append(results, result)
		}
	}

	// Best semantic score first; price breaks ties, highest first.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].SemanticScore != results[j].SemanticScore {
			return results[i].SemanticScore > results[j].SemanticScore
		}
		return results[i].Listing.Price > results[j].Listing.Price
	})
	if len(results) > limit {
		results = results[:limit]
	}

	monitor.Finish(results)
	return results
}

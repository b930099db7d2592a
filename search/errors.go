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

import "errors"

var (
	// ErrListingRepositoryRequired is returned when a listing repository is not provided.
	ErrListingRepositoryRequired = errors.New("listing repository required")

	// ErrVectorIndexRequired is returned when a vector index is not provided.
	ErrVectorIndexRequired = errors.New("vector index required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrRerankerRequired is returned when a reranker is not provided.
	ErrRerankerRequired = errors.New("reranker required")

	// ErrInvalidOverFetch is returned when the over-fetch multiplier is not positive.
	ErrInvalidOverFetch = errors.New("over-fetch multiplier must be greater than zero")

	// ErrInvalidCandidatePool is returned when the candidate pool size is not positive.
	ErrInvalidCandidatePool = errors.New("candidate pool size must be greater than zero")
)

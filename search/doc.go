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


// Package search provides hybrid structured and semantic search over listings.
//
// The HybridSearcher type implements a two-stage search algorithm:
//   - Structured filtering against the authoritative listing store
//   - Semantic reranking of the filtered candidates using vector embeddings
//
// When a query carries no semantic text, results come from the structured
// filter alone. Search degrades rather than fails: stage errors are logged
// and produce empty or partial results, never a panic.
package search

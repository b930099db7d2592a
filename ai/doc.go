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


// Package ai provides abstractions for the AI services used in lokum.
//
// This package defines the Embedder interface for text embedding generation.
// Business logic depends on the abstraction rather than a concrete provider,
// which keeps search and ingestion testable without external services.
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewEmbedder) return INTERFACE types to enforce
// abstraction and prevent accidental coupling to concrete implementations:
//
//	embedder, err := openai.NewEmbedder(config)  // returns ai.Embedder
//
// Test utility constructors (mock.NewMockEmbedder) return CONCRETE types to
// enable test assertions and behavior injection via public fields:
//
//	mockEmbed := mock.NewMockEmbedder()  // returns *mock.MockEmbedder
//	mockEmbed.EmbedTextFunc = ...        // needs concrete type
//	count := mockEmbed.CallCount()       // test assertion
//
// # Usage Example
//
//	config := ai.NewConfig(
//	    ai.WithEmbeddingHost("http://localhost:11434/v1"),
//	    ai.WithEmbeddingModel("embeddinggemma"),
//	)
//	embedder, err := openai.NewEmbedder(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	vector, err := embedder.EmbedText(ctx, "two bedroom flat near a park")
package ai

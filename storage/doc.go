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


// Package storage provides the storage abstraction layer for lokum.
//
// Two stores collaborate, with a clear ownership split:
//
//   - ListingRepository holds the authoritative listing data, one logical
//     collection per scope (rent, sale). The MongoDB implementation lives in
//     storage/mongo; storage/memory offers an in-memory substitute for tests.
//   - VectorIndex holds the derived embedding index used for semantic
//     ranking. It is an eventually-consistent cache over listing text: it may
//     be rebuilt from the repository at any time and must tolerate being
//     empty or stale. The BadgerDB implementation lives in storage/badger.
//
// # Constructor Return Type Pattern
//
// Public constructors return the interfaces defined here rather than the
// concrete backend types, so consumers never couple to MongoDB or BadgerDB
// specifics and tests can swap in substitutes without modification.
//
// # Thread Safety
//
// Query methods are safe for concurrent use. The write paths (UpsertListing,
// Put) are not designed for concurrent writers racing on the same fresh id;
// callers must not race Put calls for an id that is not indexed yet.
//
// # Context Support
//
// All methods accept context.Context for cancellation and timeout support.
package storage

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


// Package storage provides the vector-store abstraction for pageindex.
//
// This package defines the CollectionStore interface that decouples the
// ingestion pipeline from any particular vector database. Two backends
// implement it:
//
//   - astra: the Astra DB Data API over HTTPS
//   - badger: a local BadgerDB store for offline runs and tests
//
// # Constructor Return Type Pattern
//
// Public constructors return the storage.CollectionStore interface:
//
//	store, err := astra.NewStore(endpoint, token)
//	store, err := badger.NewStore("/path/to/db")
//
// Internal constructors may return concrete types since they're only used
// within the implementation package.
//
// # Errors
//
// Backends map their failures onto the sentinel errors in this package so
// callers can use errors.Is regardless of backend.
package storage

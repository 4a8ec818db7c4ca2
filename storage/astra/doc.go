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


// Package astra implements storage.CollectionStore against the Astra DB
// Data API.
//
// Requests are JSON commands POSTed to {endpoint}/api/json/v1/{keyspace}
// for keyspace-level commands and .../{keyspace}/{collection} for
// collection-level commands. The application token travels in the Token
// header. A response that carries any entry in its errors array is treated
// as a failure, even when the HTTP status is 200.
//
// Documents are written as
//
//	{"_id": "...", "page": "...", "text": "...", "$vector": [...]}
package astra

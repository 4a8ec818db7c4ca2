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


// Package chunking splits page-delimited Markdown exports into labelled chunks.
//
// Documents are expected to separate pages with a literal delimiter token
// ("pageseparator" by default). Number adds a "Page Number - <N>" header to each
// page; Split recovers those headers as chunk labels. Unrecognized headers fall
// back to core.UnknownLabel rather than failing.
package chunking

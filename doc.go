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


// Package pageindex indexes page-delimited Markdown documents into a vector
// database.
//
// An Indexer wires an embedding provider and a store backend from a Config
// and runs the ingestion pipeline over the configured input file:
//
//	cfg := pageindex.EnvConfig(pageindex.WithInputPath("numbered_output.md"))
//	indexer, err := pageindex.NewIndexer(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer indexer.Close()
//
//	result, err := indexer.Run(ctx)
//
// Input documents are produced by the page-numbering pre-pass in package
// chunking, which prefixes each page with a "Page Number - N" header.
package pageindex

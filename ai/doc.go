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


// Package ai provides abstractions for the embedding services used by pageindex.
//
// The package defines the Embedder and AIProvider interfaces so the pipeline
// depends on a contract (text in, fixed-width vector out) rather than on a
// particular vendor SDK.
//
// # Implementation Packages
//
//   - ai/gemini: Google Gemini embeddings with a task-type hint
//   - ai/openai: OpenAI-compatible embeddings (OpenAI, Ollama, LocalAI) via langchaingo
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (gemini.NewProvider, openai.NewEmbedder, etc.) return
// INTERFACE types. Mock constructors return CONCRETE types so tests can inject
// behavior and read call counts.
//
//	provider, err := gemini.NewProvider(ctx, config)  // returns ai.AIProvider
//	mockEmbed := mock.NewMockEmbedder()                // returns *mock.MockEmbedder
//	count := mockEmbed.CallCount()
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithAPIKey(os.Getenv("GEMINI_API_KEY")))
//	provider, err := gemini.NewProvider(ctx, config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "Page Number - 1\n\nHello")
package ai

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


package ai

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Supported embedding providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Task-type hints understood by providers that support them.
const (
	TaskTypeRetrievalDocument  = "RETRIEVAL_DOCUMENT"
	TaskTypeRetrievalQuery     = "RETRIEVAL_QUERY"
	TaskTypeSemanticSimilarity = "SEMANTIC_SIMILARITY"
	TaskTypeClassification     = "CLASSIFICATION"
	TaskTypeClustering         = "CLUSTERING"
)

var taskTypes = []string{
	TaskTypeRetrievalDocument,
	TaskTypeRetrievalQuery,
	TaskTypeSemanticSimilarity,
	TaskTypeClassification,
	TaskTypeClustering,
}

// Config holds configuration for the embedding provider.
type Config struct {
	// Provider selects the implementation: "gemini" or "openai".
	Provider string

	// EmbeddingHost is the base URL of an OpenAI-compatible embedding API.
	// Ignored by the gemini provider.
	// Example: "http://localhost:11434/v1" for a local Ollama server
	EmbeddingHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "text-embedding-004", "nomic-embed-text"
	EmbeddingModel string

	// APIKey authenticates against the provider. Required for gemini;
	// optional for local OpenAI-compatible servers.
	APIKey string

	// TaskType is the task hint sent with each request when the provider
	// supports one. Empty means unspecified.
	// Default: RETRIEVAL_DOCUMENT
	TaskType string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithProvider selects the embedding provider.
func WithProvider(provider string) ConfigOption {
	return func(c *Config) {
		c.Provider = provider
	}
}

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithEmbeddingModel sets the model used for text embeddings.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithAPIKey sets the provider API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithTaskType sets the task-type hint.
func WithTaskType(taskType string) ConfigOption {
	return func(c *Config) {
		c.TaskType = taskType
	}
}

// DefaultConfig returns the reference configuration: Gemini text-embedding-004
// (768 dimensions) with the document-retrieval task hint.
func DefaultConfig() *Config {
	return &Config{
		Provider:       ProviderGemini,
		EmbeddingHost:  "http://localhost:11434/v1",
		EmbeddingModel: "text-embedding-004",
		TaskType:       TaskTypeRetrievalDocument,
	}
}

// NewConfig creates a new Config with the given options.
// Starts with default values and applies each option in order.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithProvider(ai.ProviderOpenAI),
//	    ai.WithEmbeddingHost("http://localhost:11434"),
//	    ai.WithEmbeddingModel("nomic-embed-text"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize lowercases the provider and ensures OpenAI-compatible hosts end with /v1.
func (c *Config) Normalize() {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	c.TaskType = strings.ToUpper(strings.TrimSpace(c.TaskType))

	if c.Provider == ProviderOpenAI && c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		// Remove trailing slash if present before adding /v1
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/")
		c.EmbeddingHost = c.EmbeddingHost + "/v1"
	}
}

// Validate checks that the configuration is complete for the selected provider.
func (c *Config) Validate() error {
	// Normalize first to ensure hosts are in correct format
	c.Normalize()

	switch c.Provider {
	case ProviderGemini:
		if c.APIKey == "" {
			return errors.New("ai config: APIKey is required for the gemini provider")
		}
	case ProviderOpenAI:
		if c.EmbeddingHost == "" {
			return errors.New("ai config: EmbeddingHost is required for the openai provider")
		}
	case "":
		return errors.New("ai config: Provider is required")
	default:
		return fmt.Errorf("ai config: unknown Provider %q", c.Provider)
	}

	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.TaskType != "" && !slices.Contains(taskTypes, c.TaskType) {
		return fmt.Errorf("ai config: unknown TaskType %q", c.TaskType)
	}
	return nil
}

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


package pageindex

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/poiesic/pageindex/ai"
	"github.com/poiesic/pageindex/chunking"
	"github.com/poiesic/pageindex/embedding"
	"github.com/poiesic/pageindex/ingestion"
	"github.com/poiesic/pageindex/storage/astra"
)

// Store backends.
const (
	StoreAstra  = "astra"
	StoreBadger = "badger"
)

// Environment variables read by EnvConfig.
const (
	EnvEmbeddingAPIKey = "GEMINI_API_KEY"
	EnvStoreToken      = "ASTRA_TOKEN"
	EnvStoreEndpoint   = "ASTRA_API_ENDPOINT"
)

// DefaultInputPath is the file written by the page-numbering pre-pass.
const DefaultInputPath = "numbered_output.md"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the complete configuration of an indexing run.
type Config struct {
	// InputPath is the numbered document to index.
	InputPath string

	// Delimiter separates pages in the input.
	Delimiter string

	// Embedding provider settings; see ai.Config.
	EmbeddingProvider string
	EmbeddingHost     string
	EmbeddingModel    string
	EmbeddingAPIKey   string
	TaskType          string

	// StoreBackend selects "astra" or "badger".
	StoreBackend string

	// Astra settings.
	StoreToken    string
	StoreEndpoint string
	StoreKeyspace string

	// StorePath is the BadgerDB directory for the badger backend.
	StorePath string

	Collection      string
	BatchSize       int
	VectorDimension int

	// MaxAttempts is the number of embedding attempts per chunk.
	MaxAttempts int

	// RetryDelay is the base backoff between attempts. Zero retries immediately.
	RetryDelay time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithInputPath sets the document to index.
func WithInputPath(path string) ConfigOption {
	return func(c *Config) { c.InputPath = path }
}

// WithDelimiter sets the page delimiter.
func WithDelimiter(delimiter string) ConfigOption {
	return func(c *Config) { c.Delimiter = delimiter }
}

// WithEmbeddingProvider selects the embedding provider.
func WithEmbeddingProvider(provider string) ConfigOption {
	return func(c *Config) { c.EmbeddingProvider = provider }
}

// WithEmbeddingHost sets the OpenAI-compatible embedding host.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) { c.EmbeddingHost = host }
}

// WithEmbeddingModel sets the embedding model.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) { c.EmbeddingModel = model }
}

// WithEmbeddingAPIKey sets the embedding API key.
func WithEmbeddingAPIKey(key string) ConfigOption {
	return func(c *Config) { c.EmbeddingAPIKey = key }
}

// WithTaskType sets the embedding task-type hint.
func WithTaskType(taskType string) ConfigOption {
	return func(c *Config) { c.TaskType = taskType }
}

// WithStoreBackend selects the store backend.
func WithStoreBackend(backend string) ConfigOption {
	return func(c *Config) { c.StoreBackend = backend }
}

// WithAstra sets the Astra endpoint and token.
func WithAstra(endpoint, token string) ConfigOption {
	return func(c *Config) {
		c.StoreEndpoint = endpoint
		c.StoreToken = token
	}
}

// WithKeyspace sets the Astra keyspace.
func WithKeyspace(keyspace string) ConfigOption {
	return func(c *Config) { c.StoreKeyspace = keyspace }
}

// WithStorePath sets the BadgerDB directory.
func WithStorePath(path string) ConfigOption {
	return func(c *Config) { c.StorePath = path }
}

// WithCollection sets the target collection.
func WithCollection(name string) ConfigOption {
	return func(c *Config) { c.Collection = name }
}

// WithBatchSize sets the number of documents per insert.
func WithBatchSize(size int) ConfigOption {
	return func(c *Config) { c.BatchSize = size }
}

// WithVectorDimension sets the collection vector dimension.
func WithVectorDimension(dim int) ConfigOption {
	return func(c *Config) { c.VectorDimension = dim }
}

// WithMaxAttempts sets the per-chunk embedding attempts.
func WithMaxAttempts(n int) ConfigOption {
	return func(c *Config) { c.MaxAttempts = n }
}

// WithRetryDelay sets the base backoff delay.
func WithRetryDelay(d time.Duration) ConfigOption {
	return func(c *Config) { c.RetryDelay = d }
}

// DefaultConfig returns the reference configuration: Gemini
// text-embedding-004 into the Astra collection "textbook", 768 dimensions,
// batches of 10, three attempts per chunk.
func DefaultConfig() *Config {
	aiDefaults := ai.DefaultConfig()
	return &Config{
		InputPath:         DefaultInputPath,
		Delimiter:         chunking.DefaultDelimiter,
		EmbeddingProvider: aiDefaults.Provider,
		EmbeddingHost:     aiDefaults.EmbeddingHost,
		EmbeddingModel:    aiDefaults.EmbeddingModel,
		TaskType:          aiDefaults.TaskType,
		StoreBackend:      StoreAstra,
		StoreKeyspace:     astra.DefaultKeyspace,
		Collection:        ingestion.DefaultCollection,
		BatchSize:         ingestion.DefaultBatchSize,
		VectorDimension:   ingestion.DefaultDimension,
		MaxAttempts:       embedding.DefaultMaxAttempts,
	}
}

// NewConfig creates a Config from the defaults and the given options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// EnvConfig creates a Config whose secrets come from GEMINI_API_KEY,
// ASTRA_TOKEN and ASTRA_API_ENDPOINT. Options are applied afterwards.
func EnvConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	cfg.EmbeddingAPIKey = os.Getenv(EnvEmbeddingAPIKey)
	cfg.StoreToken = os.Getenv(EnvStoreToken)
	cfg.StoreEndpoint = os.Getenv(EnvStoreEndpoint)
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// AIConfig returns the embedding provider configuration.
func (c *Config) AIConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithProvider(c.EmbeddingProvider),
		ai.WithEmbeddingHost(c.EmbeddingHost),
		ai.WithEmbeddingModel(c.EmbeddingModel),
		ai.WithAPIKey(c.EmbeddingAPIKey),
		ai.WithTaskType(c.TaskType),
	)
}

// Validate checks every field and reports all failures together.
func (c *Config) Validate() error {
	var errs []error

	if c.InputPath == "" {
		errs = append(errs, errors.New("InputPath is required"))
	}
	if c.Delimiter == "" {
		errs = append(errs, errors.New("Delimiter is required"))
	}
	if c.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("BatchSize must be greater than 0, got %d", c.BatchSize))
	}
	if c.VectorDimension <= 0 {
		errs = append(errs, fmt.Errorf("VectorDimension must be greater than 0, got %d", c.VectorDimension))
	}
	if c.MaxAttempts <= 0 {
		errs = append(errs, fmt.Errorf("MaxAttempts must be greater than 0, got %d", c.MaxAttempts))
	}
	if c.RetryDelay < 0 {
		errs = append(errs, fmt.Errorf("RetryDelay cannot be negative, got %s", c.RetryDelay))
	}
	if c.Collection == "" {
		errs = append(errs, errors.New("Collection is required"))
	}

	c.StoreBackend = strings.ToLower(strings.TrimSpace(c.StoreBackend))
	switch c.StoreBackend {
	case StoreAstra:
		if c.StoreToken == "" {
			errs = append(errs, fmt.Errorf("StoreToken is required for the astra backend (set %s)", EnvStoreToken))
		}
		if c.StoreEndpoint == "" {
			errs = append(errs, fmt.Errorf("StoreEndpoint is required for the astra backend (set %s)", EnvStoreEndpoint))
		}
	case StoreBadger:
		if c.StorePath == "" {
			errs = append(errs, errors.New("StorePath is required for the badger backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown StoreBackend %q", c.StoreBackend))
	}

	if err := c.AIConfig().Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/poiesic/pageindex/ai"
	"github.com/poiesic/pageindex/ai/gemini"
	"github.com/poiesic/pageindex/ai/openai"
	"github.com/poiesic/pageindex/ingestion"
	"github.com/poiesic/pageindex/storage"
	"github.com/poiesic/pageindex/storage/astra"
	"github.com/poiesic/pageindex/storage/badger"
)

// Indexer owns an embedding provider and a store and runs the ingestion
// pipeline against them.
type Indexer struct {
	config   *Config
	provider ai.AIProvider
	store    storage.CollectionStore
	pipeline *ingestion.Pipeline
	logger   *slog.Logger
}

// IndexerOption configures an Indexer.
type IndexerOption func(*indexerOptions)

type indexerOptions struct {
	provider ai.AIProvider
	store    storage.CollectionStore
	progress io.Writer
	logger   *slog.Logger
}

// WithProvider uses provider instead of building one from the config.
// The Indexer takes ownership and closes it.
func WithProvider(provider ai.AIProvider) IndexerOption {
	return func(o *indexerOptions) { o.provider = provider }
}

// WithStore uses store instead of opening one from the config.
// The Indexer takes ownership and closes it.
func WithStore(store storage.CollectionStore) IndexerOption {
	return func(o *indexerOptions) { o.store = store }
}

// WithProgress sets where human-readable progress lines are written.
func WithProgress(out io.Writer) IndexerOption {
	return func(o *indexerOptions) { o.progress = out }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) IndexerOption {
	return func(o *indexerOptions) { o.logger = logger }
}

// NewIndexer validates cfg, then builds the provider, store and pipeline.
func NewIndexer(ctx context.Context, cfg *Config, opts ...IndexerOption) (*Indexer, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &indexerOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	logger := options.logger.With("component", "indexer")

	provider := options.provider
	if provider == nil {
		var err error
		if provider, err = newProvider(ctx, cfg); err != nil {
			return nil, fmt.Errorf("failed to create embedding provider: %w", err)
		}
	}

	store := options.store
	if store == nil {
		var err error
		if store, err = newStore(cfg, logger); err != nil {
			provider.Close()
			return nil, fmt.Errorf("failed to open %s store: %w", cfg.StoreBackend, err)
		}
	}

	pipeline, err := ingestion.NewPipeline(provider.Embedder(), store,
		ingestion.WithDelimiter(cfg.Delimiter),
		ingestion.WithMaxAttempts(cfg.MaxAttempts),
		ingestion.WithRetryDelay(cfg.RetryDelay),
		ingestion.WithLogger(options.logger),
		ingestion.WithProgress(options.progress),
		ingestion.WithWriterOptions(
			ingestion.WithCollection(cfg.Collection),
			ingestion.WithDimension(cfg.VectorDimension),
			ingestion.WithBatchSize(cfg.BatchSize),
		),
	)
	if err != nil {
		store.Close()
		provider.Close()
		return nil, err
	}

	logger.Debug("indexer ready",
		"provider", cfg.EmbeddingProvider, "model", cfg.EmbeddingModel,
		"store", cfg.StoreBackend, "collection", cfg.Collection)

	return &Indexer{
		config:   cfg,
		provider: provider,
		store:    store,
		pipeline: pipeline,
		logger:   logger,
	}, nil
}

func newProvider(ctx context.Context, cfg *Config) (ai.AIProvider, error) {
	aiConfig := cfg.AIConfig()
	switch aiConfig.Provider {
	case ai.ProviderOpenAI:
		return openai.NewProvider(aiConfig)
	default:
		return gemini.NewProvider(ctx, aiConfig)
	}
}

func newStore(cfg *Config, logger *slog.Logger) (storage.CollectionStore, error) {
	switch cfg.StoreBackend {
	case StoreBadger:
		return badger.NewStore(cfg.StorePath)
	default:
		return astra.NewStore(cfg.StoreEndpoint, cfg.StoreToken,
			astra.WithKeyspace(cfg.StoreKeyspace),
			astra.WithLogger(logger))
	}
}

// Config returns the validated configuration.
func (ix *Indexer) Config() *Config {
	return ix.config
}

// Run indexes the configured input file.
func (ix *Indexer) Run(ctx context.Context) (*ingestion.Result, error) {
	return ix.RunFile(ctx, ix.config.InputPath)
}

// RunFile indexes the document at path with the configured settings.
func (ix *Indexer) RunFile(ctx context.Context, path string) (*ingestion.Result, error) {
	return ix.pipeline.Run(ctx, path)
}

// Close releases the provider and the store.
func (ix *Indexer) Close() error {
	var errs []error
	if err := ix.provider.Close(); err != nil {
		ix.logger.Error("error closing embedding provider", "err", err)
		errs = append(errs, err)
	}
	if err := ix.store.Close(); err != nil {
		ix.logger.Error("error closing store", "err", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

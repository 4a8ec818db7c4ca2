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


package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/poiesic/pageindex"
	"github.com/poiesic/pageindex/chunking"
	"github.com/poiesic/pageindex/ingestion"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	defaults := pageindex.DefaultConfig()

	return &cli.App{
		Name:  "pageindex",
		Usage: "Number, embed and index page-delimited Markdown documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load environment variables from this file if it exists",
				Value: ".env",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "number",
				Usage:  "Prefix every page with a \"Page Number - N\" header",
				Action: numberCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "in",
						Aliases:  []string{"i"},
						Usage:    "Markdown export to number",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Destination for the numbered document",
						Value:   defaults.InputPath,
					},
					&cli.StringFlag{
						Name:  "delimiter",
						Usage: "Page separator token",
						Value: defaults.Delimiter,
					},
				},
			},
			{
				Name:   "index",
				Usage:  "Chunk, embed and store a numbered document",
				Action: indexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "in",
						Aliases: []string{"i"},
						Usage:   "Numbered document to index",
						Value:   defaults.InputPath,
					},
					&cli.StringFlag{
						Name:  "delimiter",
						Usage: "Page separator token",
						Value: defaults.Delimiter,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of documents per insert request",
						Value: defaults.BatchSize,
					},
					&cli.IntFlag{
						Name:  "dimension",
						Usage: "Vector dimension of the collection",
						Value: defaults.VectorDimension,
					},
					&cli.StringFlag{
						Name:  "collection",
						Usage: "Target collection name",
						Value: defaults.Collection,
					},
					&cli.IntFlag{
						Name:  "max-attempts",
						Usage: "Embedding attempts per chunk",
						Value: defaults.MaxAttempts,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff between attempts (0 retries immediately)",
						Value: defaults.RetryDelay,
					},
					&cli.StringFlag{
						Name:  "embedding-provider",
						Usage: "Embedding provider (gemini, openai)",
						Value: defaults.EmbeddingProvider,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "OpenAI-compatible embedding service host URL",
						Value: defaults.EmbeddingHost,
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: defaults.EmbeddingModel,
					},
					&cli.StringFlag{
						Name:  "task-type",
						Usage: "Embedding task-type hint",
						Value: defaults.TaskType,
					},
					&cli.StringFlag{
						Name:    "embedding-api-key",
						Usage:   "Embedding API key",
						EnvVars: []string{pageindex.EnvEmbeddingAPIKey},
					},
					&cli.StringFlag{
						Name:  "store",
						Usage: "Store backend (astra, badger)",
						Value: defaults.StoreBackend,
					},
					&cli.StringFlag{
						Name:    "astra-token",
						Usage:   "Astra DB application token",
						EnvVars: []string{pageindex.EnvStoreToken},
					},
					&cli.StringFlag{
						Name:    "astra-endpoint",
						Usage:   "Astra DB API endpoint",
						EnvVars: []string{pageindex.EnvStoreEndpoint},
					},
					&cli.StringFlag{
						Name:  "keyspace",
						Usage: "Astra DB keyspace",
						Value: defaults.StoreKeyspace,
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory (badger store)",
					},
				},
			},
		},
	}
}

func setup(c *cli.Context) error {
	if err := loadEnv(c.String("env-file")); err != nil {
		return err
	}
	return setupLogger(c)
}

// loadEnv loads path into the environment. Variables already set win.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func numberCommand(c *cli.Context) error {
	in := c.String("in")
	out := c.String("out")

	pages, err := chunking.NumberFile(in, out, c.String("delimiter"))
	if err != nil {
		return fmt.Errorf("numbering failed: %w", err)
	}

	fmt.Fprintf(c.App.ErrWriter, "Numbered %d pages from %s into %s\n", pages, in, out)
	return nil
}

func indexCommand(c *cli.Context) error {
	ctx := c.Context
	w := c.App.ErrWriter

	cfg := pageindex.NewConfig(
		pageindex.WithInputPath(c.String("in")),
		pageindex.WithDelimiter(c.String("delimiter")),
		pageindex.WithBatchSize(c.Int("batch-size")),
		pageindex.WithVectorDimension(c.Int("dimension")),
		pageindex.WithCollection(c.String("collection")),
		pageindex.WithMaxAttempts(c.Int("max-attempts")),
		pageindex.WithRetryDelay(c.Duration("retry-delay")),
		pageindex.WithEmbeddingProvider(c.String("embedding-provider")),
		pageindex.WithEmbeddingHost(c.String("embedding-host")),
		pageindex.WithEmbeddingModel(c.String("embedding-model")),
		pageindex.WithTaskType(c.String("task-type")),
		pageindex.WithEmbeddingAPIKey(c.String("embedding-api-key")),
		pageindex.WithStoreBackend(c.String("store")),
		pageindex.WithAstra(c.String("astra-endpoint"), c.String("astra-token")),
		pageindex.WithKeyspace(c.String("keyspace")),
		pageindex.WithStorePath(c.String("db")),
	)

	indexer, err := pageindex.NewIndexer(ctx, cfg, pageindex.WithProgress(w))
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer indexer.Close()

	fmt.Fprintf(w, "Input: %s\n", cfg.InputPath)
	fmt.Fprintf(w, "Embedding: %s %s\n", cfg.EmbeddingProvider, cfg.EmbeddingModel)
	fmt.Fprintf(w, "Store: %s collection %q\n", cfg.StoreBackend, cfg.Collection)
	fmt.Fprintln(w)

	result, err := indexer.Run(ctx)
	if err != nil {
		if errors.Is(err, chunking.ErrSourceRead) {
			// Nothing to process; reported but not a failure.
			fmt.Fprintf(w, "Error reading file: %v\n", err)
			return nil
		}
		return fmt.Errorf("indexing failed: %w", err)
	}

	printSummary(w, result)
	return nil
}

func printSummary(w io.Writer, result *ingestion.Result) {
	switch {
	case result.Chunks == 0:
		fmt.Fprintln(w, "No chunks found in the document.")
	case result.Embedded == 0:
		fmt.Fprintln(w, "No embeddings generated. Nothing stored.")
	default:
		fmt.Fprintf(w, "Stored %d of %d chunks in %q (%d batches, source %s)\n",
			result.Stored, result.Chunks, result.Collection, result.Batches, result.SourceDigest)
	}
	if len(result.Dropped) > 0 {
		fmt.Fprintf(w, "Dropped pages: %s\n", strings.Join(result.Dropped, ", "))
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

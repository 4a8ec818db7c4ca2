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


package embedding

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/pageindex/ai"
	"github.com/poiesic/pageindex/core"
)

// DefaultMaxAttempts is the number of tries each chunk gets.
const DefaultMaxAttempts = 3

// Result is the outcome of embedding a sequence of chunks.
type Result struct {
	// Chunks holds the successfully embedded chunks in input order.
	Chunks []core.EmbeddedChunk

	// Dropped holds the chunks that exhausted every attempt.
	Dropped []core.Chunk
}

// Option configures an Embedder.
type Option func(*Embedder)

// WithMaxAttempts sets the per-chunk attempt limit.
func WithMaxAttempts(n int) Option {
	return func(e *Embedder) {
		e.maxAttempts = n
	}
}

// WithRetryDelay sets the base backoff delay between attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(e *Embedder) {
		e.retryDelay = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Embedder) {
		e.logger = logger
	}
}

// WithProgress sets where per-chunk progress lines are written.
func WithProgress(w io.Writer) Option {
	return func(e *Embedder) {
		e.progress = w
	}
}

// Embedder embeds chunks sequentially with per-chunk retry.
type Embedder struct {
	embedder    ai.Embedder
	maxAttempts int
	retryDelay  time.Duration
	logger      *slog.Logger
	progress    io.Writer
}

// New creates an Embedder over the given embedding service.
func New(embedder ai.Embedder, opts ...Option) (*Embedder, error) {
	if embedder == nil {
		return nil, ErrNilEmbedder
	}

	e := &Embedder{
		embedder:    embedder,
		maxAttempts: DefaultMaxAttempts,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.maxAttempts <= 0 {
		return nil, ErrInvalidMaxAttempts
	}
	e.logger = e.logger.With("component", "embedding")

	return e, nil
}

// Embed embeds each chunk in order. A chunk whose attempts are all
// exhausted is dropped and processing continues. The only error returned
// is the context's, in which case the partial result is returned too.
func (e *Embedder) Embed(ctx context.Context, chunks []core.Chunk) (*Result, error) {
	result := &Result{
		Chunks:  make([]core.EmbeddedChunk, 0, len(chunks)),
		Dropped: []core.Chunk{},
	}

	tracker := NewProgressTracker(e.progress, len(chunks))
	tracker.Start()
	defer tracker.Finish()

	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if err := core.ValidateChunk(chunk); err != nil {
			e.logger.Warn("skipping invalid chunk", "label", chunk.Label, "err", err)
			tracker.Dropped(chunk.Label)
			result.Dropped = append(result.Dropped, chunk)
			continue
		}

		vector, err := e.embedOne(ctx, chunk, tracker)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
				return result, err
			}
			e.logger.Warn("dropping chunk after failed attempts",
				"label", chunk.Label, "attempts", e.maxAttempts, "err", err)
			tracker.Dropped(chunk.Label)
			result.Dropped = append(result.Dropped, chunk)
			continue
		}

		tracker.Succeeded(chunk.Label)
		result.Chunks = append(result.Chunks, core.EmbeddedChunk{
			Label:  chunk.Label,
			Text:   chunk.Text,
			Vector: vector,
		})
	}

	e.logger.Info("embedding complete",
		"chunks", len(chunks), "embedded", len(result.Chunks), "dropped", len(result.Dropped))
	return result, nil
}

func (e *Embedder) embedOne(ctx context.Context, chunk core.Chunk, tracker *ProgressTracker) ([]float32, error) {
	var vector []float32
	err := Retry(ctx, func(attempt int) error {
		v, err := e.embedder.EmbedText(ctx, chunk.Text)
		if err == nil && len(v) == 0 {
			err = core.ErrEmptyVector
		}
		if err != nil {
			tracker.AttemptFailed(chunk.Label, attempt, e.maxAttempts, err)
			return err
		}
		vector = v
		return nil
	}, e.maxAttempts, e.retryDelay)
	return vector, err
}

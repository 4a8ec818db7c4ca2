package ingestion

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/pageindex/ai"
	"github.com/poiesic/pageindex/chunking"
	"github.com/poiesic/pageindex/core"
	"github.com/poiesic/pageindex/embedding"
	"github.com/poiesic/pageindex/storage"
)

// Result summarizes one pipeline run.
type Result struct {
	// Stage is the last stage the run reached.
	Stage core.Stage

	// SourceDigest identifies the source contents; empty if unread.
	SourceDigest string

	// Collection is the target collection name.
	Collection string

	// CollectionCreated reports whether the run created the collection.
	CollectionCreated bool

	Chunks   int
	Embedded int
	Stored   int
	Batches  int

	// Dropped lists the labels of chunks that could not be embedded.
	Dropped []string
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithDelimiter sets the page delimiter.
// Default is chunking.DefaultDelimiter.
func WithDelimiter(delimiter string) Option {
	return func(p *Pipeline) error {
		if delimiter == "" {
			delimiter = chunking.DefaultDelimiter
		}
		p.delimiter = delimiter
		return nil
	}
}

// WithMaxAttempts sets the per-chunk embedding attempt limit.
func WithMaxAttempts(n int) Option {
	return func(p *Pipeline) error {
		if n <= 0 {
			return embedding.ErrInvalidMaxAttempts
		}
		p.maxAttempts = n
		return nil
	}
}

// WithRetryDelay sets the base backoff delay between embedding attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(p *Pipeline) error {
		p.retryDelay = d
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithProgress sets where human-readable progress lines are written.
func WithProgress(out io.Writer) Option {
	return func(p *Pipeline) error {
		p.progress = out
		return nil
	}
}

// WithWriterOptions configures the batch writer.
func WithWriterOptions(opts ...WriterOption) Option {
	return func(p *Pipeline) error {
		p.writerOpts = append(p.writerOpts, opts...)
		return nil
	}
}

// Pipeline runs chunking, embedding and storing in sequence.
type Pipeline struct {
	embedder *embedding.Embedder
	writer   *Writer

	delimiter   string
	maxAttempts int
	retryDelay  time.Duration
	writerOpts  []WriterOption
	progress    io.Writer
	logger      *slog.Logger
}

// NewPipeline creates a pipeline that embeds with embedder and writes to store.
func NewPipeline(embedder ai.Embedder, store storage.CollectionStore, opts ...Option) (*Pipeline, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}

	p := &Pipeline{
		delimiter:   chunking.DefaultDelimiter,
		maxAttempts: embedding.DefaultMaxAttempts,
		progress:    io.Discard,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	if p.progress == nil {
		p.progress = io.Discard
	}
	p.logger = p.logger.With("component", "pipeline")

	var err error
	p.embedder, err = embedding.New(embedder,
		embedding.WithMaxAttempts(p.maxAttempts),
		embedding.WithRetryDelay(p.retryDelay),
		embedding.WithLogger(p.logger),
		embedding.WithProgress(p.progress),
	)
	if err != nil {
		return nil, err
	}

	writerOpts := append([]WriterOption{
		WithWriterLogger(p.logger),
		WithWriterProgress(p.progress),
	}, p.writerOpts...)
	p.writer, err = NewWriter(store, writerOpts...)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Run processes the document at path. Chunking completes before embedding
// starts, and embedding completes before anything is written.
//
// A missing or unreadable source returns Stage Aborted with a
// *chunking.SourceReadError. A document with no chunks, or whose chunks
// all failed to embed, returns without touching the store. Store failures
// return Stage Aborted with a *StoreError.
func (p *Pipeline) Run(ctx context.Context, path string) (*Result, error) {
	result := &Result{
		Stage:      core.StageStart,
		Collection: p.writer.Collection(),
		Dropped:    []string{},
	}
	logger := p.logger.With("path", path)

	text, err := chunking.ReadSource(path)
	if err != nil {
		logger.Error("failed to read source", "err", err)
		result.Stage = core.StageAborted
		return result, err
	}
	result.SourceDigest = core.Digest(text)
	logger = logger.With("digest", result.SourceDigest)

	chunks := chunking.Split(text, p.delimiter)
	result.Chunks = len(chunks)
	result.Stage = core.StageChunked
	logger.Info("chunked document", "chunks", len(chunks))
	if len(chunks) == 0 {
		logger.Warn("no chunks found, nothing to embed")
		return result, nil
	}

	embedded, err := p.embedder.Embed(ctx, chunks)
	if err != nil {
		result.Stage = core.StageAborted
		return result, err
	}
	result.Embedded = len(embedded.Chunks)
	for _, c := range embedded.Dropped {
		result.Dropped = append(result.Dropped, c.Label)
	}
	result.Stage = core.StageEmbedded
	if len(embedded.Chunks) == 0 {
		logger.Warn("no embeddings generated, nothing to store")
		return result, nil
	}

	written, err := p.writer.Write(ctx, embedded.Chunks)
	result.CollectionCreated = written.Created
	result.Stored = written.Stored
	result.Batches = written.Batches
	if err != nil {
		result.Stage = core.StageAborted
		return result, err
	}

	result.Stage = core.StageStored
	logger.Info("stored document",
		"collection", result.Collection, "stored", result.Stored,
		"batches", result.Batches, "dropped", len(result.Dropped))
	return result, nil
}

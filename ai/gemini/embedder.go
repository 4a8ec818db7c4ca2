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


package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/generative-ai-go/genai"
	"github.com/poiesic/pageindex/ai"
)

// Embedder implements ai.Embedder using a Gemini embedding model.
type Embedder struct {
	model  *genai.EmbeddingModel
	logger *slog.Logger
}

func newEmbedder(client *genai.Client, config *ai.Config) *Embedder {
	model := client.EmbeddingModel(config.EmbeddingModel)
	model.TaskType = taskType(config.TaskType)
	return &Embedder{
		model:  model,
		logger: slog.Default().With("component", "gemini-embedder"),
	}
}

// EmbedText generates a vector embedding for a single text string.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	e.logger.Debug("generating embedding for single text", "length", len(text))

	res, err := e.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		e.logger.Debug("failed to generate embedding", "err", err)
		return nil, err
	}

	if res == nil || res.Embedding == nil {
		e.logger.Warn("embedder returned empty result")
		return []float32{}, nil
	}

	return res.Embedding.Values, nil
}

// EmbedTexts generates vector embeddings for multiple text strings in a
// single batch request.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("generating embeddings for texts", "count", len(texts))
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	batch := e.model.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}

	res, err := e.model.BatchEmbedContents(ctx, batch)
	if err != nil {
		e.logger.Debug("failed to generate embeddings", "count", len(texts), "err", err)
		return nil, err
	}
	if len(res.Embeddings) != len(texts) {
		return nil, fmt.Errorf("gemini: expected %d embeddings, got %d", len(texts), len(res.Embeddings))
	}

	vectors := make([][]float32, len(res.Embeddings))
	for i, embedding := range res.Embeddings {
		if embedding != nil {
			vectors[i] = embedding.Values
		}
	}
	return vectors, nil
}

// taskType maps a configured task hint onto the client's enum.
// Unknown or empty hints are sent as unspecified.
func taskType(hint string) genai.TaskType {
	switch hint {
	case ai.TaskTypeRetrievalDocument:
		return genai.TaskTypeRetrievalDocument
	case ai.TaskTypeRetrievalQuery:
		return genai.TaskTypeRetrievalQuery
	case ai.TaskTypeSemanticSimilarity:
		return genai.TaskTypeSemanticSimilarity
	case ai.TaskTypeClassification:
		return genai.TaskTypeClassification
	case ai.TaskTypeClustering:
		return genai.TaskTypeClustering
	default:
		return genai.TaskTypeUnspecified
	}
}

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


package chunking

import (
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/pageindex/core"
)

const (
	// DefaultDelimiter separates pages in exported Markdown documents.
	DefaultDelimiter = "pageseparator"

	// HeaderPrefix starts the synthetic page header written by Number.
	HeaderPrefix = "Page Number"
)

// Split divides text on every literal occurrence of delimiter into ordered chunks.
// Spans are trimmed and empty spans are dropped. Each chunk is labelled from its
// first line via ParseLabel.
func Split(text, delimiter string) []core.Chunk {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}

	spans := strings.Split(text, delimiter)
	chunks := make([]core.Chunk, 0, len(spans))
	for _, span := range spans {
		span = strings.TrimSpace(span)
		if span == "" {
			continue
		}
		chunks = append(chunks, core.Chunk{
			Label: ParseLabel(firstLine(span)),
			Text:  span,
		})
	}
	return chunks
}

// ParseLabel extracts the page label from a "Page Number - <value>" header line.
// The value runs up to the next '-' and is trimmed. Lines without the header,
// without a separator, or with an empty value yield core.UnknownLabel.
func ParseLabel(line string) string {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, HeaderPrefix) {
		return core.UnknownLabel
	}

	parts := strings.Split(line, "-")
	if len(parts) < 2 {
		return core.UnknownLabel
	}

	value := strings.TrimSpace(parts[1])
	if value == "" {
		return core.UnknownLabel
	}
	return value
}

// ReadSource returns the contents of the document at path.
// A read failure is reported as a *SourceReadError.
func ReadSource(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", &SourceReadError{Path: path, Err: err}
	}
	return string(content), nil
}

// ReadChunks reads the document at path and splits it with Split.
// A read failure yields an empty slice and a *SourceReadError.
func ReadChunks(path, delimiter string) ([]core.Chunk, error) {
	content, err := ReadSource(path)
	if err != nil {
		return []core.Chunk{}, err
	}

	chunks := Split(content, delimiter)
	slog.Debug("split document into chunks", "path", path, "chunks", len(chunks))
	return chunks, nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimRight(line, "\r")
}

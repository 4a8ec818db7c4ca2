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


package core

import (
	"fmt"
	"strings"
)

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - Text must not be empty or whitespace only
//
// NOT validated:
//   - Label (any string is accepted, UnknownLabel included)
func ValidateChunk(chunk Chunk) error {
	if strings.TrimSpace(chunk.Text) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyText)
	}
	return nil
}

// ValidateEmbeddedChunk validates an EmbeddedChunk according to domain rules.
//
// Validation rules:
//   - Text must not be empty or whitespace only
//   - Vector must have at least one element
//
// The vector width is not checked here; the store enforces its collection dimension.
func ValidateEmbeddedChunk(chunk EmbeddedChunk) error {
	if strings.TrimSpace(chunk.Text) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEmbeddedChunk, ErrEmptyText)
	}
	if len(chunk.Vector) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidEmbeddedChunk, ErrEmptyVector)
	}
	return nil
}

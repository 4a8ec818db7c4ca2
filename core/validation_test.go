package core

import (
	"errors"
	"testing"
)

func TestValidateChunk(t *testing.T) {
	tests := []struct {
		name    string
		chunk   Chunk
		wantErr error
	}{
		{
			name:    "valid chunk",
			chunk:   Chunk{Label: "1", Text: "Page Number - 1\n\nHello"},
			wantErr: nil,
		},
		{
			name:    "valid chunk with unknown label",
			chunk:   Chunk{Label: UnknownLabel, Text: "Hello"},
			wantErr: nil,
		},
		{
			name:    "empty text",
			chunk:   Chunk{Label: "1", Text: ""},
			wantErr: ErrEmptyText,
		},
		{
			name:    "whitespace text",
			chunk:   Chunk{Label: "1", Text: " \n\t "},
			wantErr: ErrEmptyText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChunk(tt.chunk)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateChunk() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateChunk() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidChunk) {
				t.Errorf("ValidateChunk() error should wrap ErrInvalidChunk, got %v", err)
			}
		})
	}
}

func TestValidateEmbeddedChunk(t *testing.T) {
	tests := []struct {
		name    string
		chunk   EmbeddedChunk
		wantErr error
	}{
		{
			name:    "valid",
			chunk:   EmbeddedChunk{Label: "1", Text: "Hello", Vector: []float32{0.1}},
			wantErr: nil,
		},
		{
			name:    "empty text",
			chunk:   EmbeddedChunk{Label: "1", Vector: []float32{0.1}},
			wantErr: ErrEmptyText,
		},
		{
			name:    "nil vector",
			chunk:   EmbeddedChunk{Label: "1", Text: "Hello"},
			wantErr: ErrEmptyVector,
		},
		{
			name:    "empty vector",
			chunk:   EmbeddedChunk{Label: "1", Text: "Hello", Vector: []float32{}},
			wantErr: ErrEmptyVector,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmbeddedChunk(tt.chunk)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateEmbeddedChunk() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateEmbeddedChunk() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidEmbeddedChunk) {
				t.Errorf("ValidateEmbeddedChunk() error should wrap ErrInvalidEmbeddedChunk, got %v", err)
			}
		})
	}
}

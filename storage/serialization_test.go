package storage

import (
	"math"
	"testing"

	"github.com/poiesic/pageindex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalStoredDocument(t *testing.T) {
	tests := []struct {
		name string
		doc  *core.StoredDocument
	}{
		{
			name: "typical document",
			doc: &core.StoredDocument{
				ID:     "0b9d3c3e-4c55-4b8f-9a8e-2b1b2c4f3a10",
				Label:  "12",
				Text:   "Page Number - 12\n\nPhotosynthesis converts light into chemical energy.",
				Vector: []float32{0.1, -0.25, 3.5e-8, 1},
			},
		},
		{
			name: "unknown label and unicode text",
			doc: &core.StoredDocument{
				ID:     "id",
				Label:  core.UnknownLabel,
				Text:   "Überschrift – Σ",
				Vector: []float32{0},
			},
		},
		{
			name: "special float values",
			doc: &core.StoredDocument{
				ID:     "id",
				Label:  "1",
				Text:   "x",
				Vector: []float32{float32(math.Inf(1)), float32(math.Inf(-1)), math.MaxFloat32, math.SmallestNonzeroFloat32},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalStoredDocument(tt.doc)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalStoredDocument(data)
			require.NoError(t, err)
			assert.Equal(t, tt.doc, decoded)
		})
	}
}

func TestUnmarshalStoredDocument_Invalid(t *testing.T) {
	valid := MarshalStoredDocument(&core.StoredDocument{
		ID:     "id",
		Label:  "1",
		Text:   "text",
		Vector: []float32{1, 2, 3},
	})

	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"truncated", valid[:len(valid)-1]},
		{"truncated header", valid[:3]},
		{"trailing bytes", append(append([]byte{}, valid...), 0x01)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalStoredDocument(tt.data)
			assert.Error(t, err)
		})
	}
}

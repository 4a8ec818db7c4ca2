package core

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/go-crypt/x/blake2b"
	"github.com/google/uuid"
)

// UnknownLabel is assigned to chunks whose first line carries no usable page header.
const UnknownLabel = "unknown"

// Chunk is a delimiter-bounded span of a source document plus its page label.
type Chunk struct {
	Label string // Page identifier, or UnknownLabel
	Text  string // Trimmed span text, never empty
}

// EmbeddedChunk is a Chunk with the vector produced by the embedding provider.
type EmbeddedChunk struct {
	Label  string
	Text   string
	Vector []float32
}

// StoredDocument is the shape written to a vector store collection.
type StoredDocument struct {
	ID     string    // Fresh UUID assigned at write time
	Label  string    // Page label
	Text   string    // Chunk text
	Vector []float32 // Embedding stored under the store's vector field
}

// NewDocumentID returns a new random (v4) UUID string.
func NewDocumentID() string {
	return uuid.NewString()
}

// NewStoredDocument attaches a fresh identifier to an embedded chunk.
func NewStoredDocument(chunk EmbeddedChunk) *StoredDocument {
	return &StoredDocument{
		ID:     NewDocumentID(),
		Label:  chunk.Label,
		Text:   chunk.Text,
		Vector: chunk.Vector,
	}
}

// Digest returns a 64-bit blake2b digest of text rendered as 16 hex characters.
// It identifies a source document in run results and logs.
func Digest(text string) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return fmt.Sprintf("%016x", binary.BigEndian.Uint64(sum))
}

// Stage is the position of a pipeline run in its state machine:
// Start -> Chunked -> Embedded -> Stored, with Aborted reachable from any state.
type Stage int

const (
	StageStart Stage = iota
	StageChunked
	StageEmbedded
	StageStored
	StageAborted
)

func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StageChunked:
		return "chunked"
	case StageEmbedded:
		return "embedded"
	case StageStored:
		return "stored"
	case StageAborted:
		return "aborted"
	default:
		return "stage(" + strconv.Itoa(int(s)) + ")"
	}
}

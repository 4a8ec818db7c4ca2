package core

import (
	"testing"
)

func TestDigest(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "simple content", content: "Page Number - 1\n\nHello"},
		{name: "empty string", content: ""},
		{name: "long content", content: "This is a much longer piece of content that should still hash consistently"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d1 := Digest(tt.content)
			d2 := Digest(tt.content)

			if d1 != d2 {
				t.Errorf("Digest() produced different values for same content: %s vs %s", d1, d2)
			}
			if len(d1) != 16 {
				t.Errorf("Digest() length = %d, want 16", len(d1))
			}
		})
	}

	if Digest("a") == Digest("b") {
		t.Error("Digest() should differ for different content")
	}
}

func TestNewDocumentID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewDocumentID()
		if id == "" {
			t.Fatal("NewDocumentID() returned empty id")
		}
		if seen[id] {
			t.Fatalf("NewDocumentID() returned duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestNewStoredDocument(t *testing.T) {
	chunk := EmbeddedChunk{Label: "3", Text: "Page Number - 3\n\nBody", Vector: []float32{1, 2, 3}}

	doc := NewStoredDocument(chunk)

	if doc.ID == "" {
		t.Error("expected generated id")
	}
	if doc.Label != "3" || doc.Text != chunk.Text {
		t.Errorf("unexpected document fields: %+v", doc)
	}
	if len(doc.Vector) != 3 {
		t.Errorf("expected vector of length 3, got %d", len(doc.Vector))
	}

	other := NewStoredDocument(chunk)
	if other.ID == doc.ID {
		t.Error("expected distinct ids for distinct documents")
	}
}

func TestStageString(t *testing.T) {
	tests := []struct {
		stage Stage
		want  string
	}{
		{StageStart, "start"},
		{StageChunked, "chunked"},
		{StageEmbedded, "embedded"},
		{StageStored, "stored"},
		{StageAborted, "aborted"},
		{Stage(42), "stage(42)"},
	}

	for _, tt := range tests {
		if got := tt.stage.String(); got != tt.want {
			t.Errorf("Stage(%d).String() = %q, want %q", int(tt.stage), got, tt.want)
		}
	}
}

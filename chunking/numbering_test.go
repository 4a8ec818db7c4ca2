package chunking

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	got := Number("first\npageseparator\n  second  ", "pageseparator")

	want := "Page Number - 1\n\nfirst\n\npageseparator\n\nPage Number - 2\n\nsecond"
	assert.Equal(t, want, got)
}

func TestNumber_KeepsEmptyPages(t *testing.T) {
	got := Number("a pageseparator  pageseparator c", "pageseparator")

	assert.Equal(t, 3, strings.Count(got, HeaderPrefix))
	assert.Contains(t, got, "Page Number - 2\n\n\n\npageseparator")
}

func TestNumber_NoDelimiter(t *testing.T) {
	assert.Equal(t, "Page Number - 1\n\nonly page", Number("only page", "pageseparator"))
}

func TestNumberThenSplit_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
	}{
		{"single page", []string{"alpha"}},
		{"three pages", []string{"alpha", "beta", "gamma"}},
		{"blank page in the middle", []string{"alpha", "   ", "gamma"}},
		{"pages with dashes", []string{"a - b", "c-d-e", "- leading"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			numbered := Number(strings.Join(tt.pages, "pageseparator"), "pageseparator")

			chunks := Split(numbered, "pageseparator")

			require.Len(t, chunks, len(tt.pages))
			for i, chunk := range chunks {
				assert.Equal(t, fmt.Sprint(i+1), chunk.Label, "page %d label", i+1)
				assert.True(t, strings.HasPrefix(chunk.Text, Header(i+1)))
			}
		})
	}
}

func TestNumberFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "export.md")
	dst := filepath.Join(dir, "numbered.md")
	require.NoError(t, os.WriteFile(src, []byte("one\npageseparator\ntwo\npageseparator\nthree"), 0644))

	pages, err := NumberFile(src, dst, "pageseparator")
	require.NoError(t, err)
	assert.Equal(t, 3, pages)

	out, err := os.ReadFile(dst)
	require.NoError(t, err)
	chunks := Split(string(out), "pageseparator")
	require.Len(t, chunks, 3)
	assert.Equal(t, "3", chunks[2].Label)
}

func TestNumberFile_MissingSource(t *testing.T) {
	dir := t.TempDir()

	_, err := NumberFile(filepath.Join(dir, "nope.md"), filepath.Join(dir, "out.md"), "")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceRead)
	_, statErr := os.Stat(filepath.Join(dir, "out.md"))
	assert.True(t, os.IsNotExist(statErr), "output should not be written")
}

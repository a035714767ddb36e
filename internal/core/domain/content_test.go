package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFileContent(t *testing.T) {
	fc := NewFileContent("id-1", MediaTypeMsWordX)

	assert.Equal(t, "id-1", fc.ID)
	assert.Equal(t, MediaTypePlainText, fc.MediaType)
	assert.Equal(t, MediaTypeMsWordX, fc.SourceMediaType)
	assert.Empty(t, fc.Sections)
	assert.Equal(t, 0, fc.PageCount())
}

func TestFileContent_AddAndText(t *testing.T) {
	fc := NewFileContent("id-1", MediaTypeMsWordX)
	fc.Add(NewChunk("Intro\n", 1, ChunkMeta(true)))
	fc.Add(NewChunk("Page2 text\n", 2, ChunkMeta(true)))

	assert.Len(t, fc.Sections, 2)
	assert.Equal(t, "Intro\nPage2 text\n", fc.Text())
	assert.Equal(t, 2, fc.PageCount())
}

func TestChunk_SentencesAreComplete(t *testing.T) {
	tests := []struct {
		name     string
		meta     map[string]any
		expected bool
	}{
		{name: "true flag", meta: ChunkMeta(true), expected: true},
		{name: "false flag", meta: ChunkMeta(false), expected: false},
		{name: "nil metadata", meta: nil, expected: false},
		{name: "wrong type", meta: map[string]any{MetaSentencesAreComplete: "yes"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChunk("x", 1, tt.meta)
			assert.Equal(t, tt.expected, c.SentencesAreComplete())
		})
	}
}

package plaintext

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdecode/internal/core/domain"
)

func TestSupportsMediaType(t *testing.T) {
	d := New()

	tests := []struct {
		mediaType string
		want      bool
	}{
		{"text/plain", true},
		{"text/plain; charset=utf-8", true},
		{"text/markdown", true},
		{"text/csv", true},
		{"TEXT/X-GO", true},
		{"application/json", true},
		{"application/yaml", true},
		{"application/pdf", false},
		{"application/octet-stream", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.mediaType, func(t *testing.T) {
			assert.Equal(t, tt.want, d.SupportsMediaType(tt.mediaType))
		})
	}
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 5, New().Priority())
}

func TestDecode_SinglePage(t *testing.T) {
	result, err := New().Decode(context.Background(), strings.NewReader("  line one\r\nline two  "), "text/plain")

	require.NoError(t, err)
	require.Len(t, result.Sections, 1)
	assert.Equal(t, "  line one\nline two  ", result.Sections[0].Text)
	assert.Equal(t, 1, result.Sections[0].PageNumber)
	assert.True(t, result.Sections[0].SentencesAreComplete())
	assert.Equal(t, "text/plain", result.SourceMediaType)
}

func TestDecode_FormFeedPages(t *testing.T) {
	result, err := New().Decode(context.Background(), strings.NewReader("one\n\ftwo\n\f"), "text/plain")

	require.NoError(t, err)
	require.Len(t, result.Sections, 3)
	assert.Equal(t, "one\n", result.Sections[0].Text)
	assert.Equal(t, "two\n", result.Sections[1].Text)
	assert.Equal(t, "", result.Sections[2].Text)
	assert.Equal(t, []int{1, 2, 3}, []int{
		result.Sections[0].PageNumber,
		result.Sections[1].PageNumber,
		result.Sections[2].PageNumber,
	})
}

func TestDecode_Empty(t *testing.T) {
	result, err := New().Decode(context.Background(), strings.NewReader(""), "text/markdown")

	require.NoError(t, err)
	require.Len(t, result.Sections, 1)
	assert.Equal(t, "", result.Sections[0].Text)
}

func TestDecode_InvalidUTF8AndBOM(t *testing.T) {
	result, err := New().Decode(context.Background(), strings.NewReader("\uFEFFok \xff"), "text/plain")

	require.NoError(t, err)
	assert.Equal(t, "ok \uFFFD", result.Text())
}

func TestDecode_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New().Decode(ctx, strings.NewReader("x"), "text/plain")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrCancelled)
}

func TestDecode_Unsupported(t *testing.T) {
	_, err := New().Decode(context.Background(), strings.NewReader("x"), "image/png")

	var unsupported *domain.UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "image/png", unsupported.MediaType)
}

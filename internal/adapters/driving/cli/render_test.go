package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdecode/internal/core/domain"
)

func threePages() *domain.FileContent {
	content := domain.NewFileContent("id-1", domain.MediaTypeODT)
	content.Add(domain.NewChunk("one\n", 1, domain.ChunkMeta(true)))
	content.Add(domain.NewChunk("", 2, domain.ChunkMeta(true)))
	content.Add(domain.NewChunk("three", 3, domain.ChunkMeta(true)))
	return content
}

func TestWriteContent_Plain(t *testing.T) {
	buf := new(bytes.Buffer)

	writeContent(buf, newOutputStyles(false), "doc.odt", threePages())

	expected := "==> doc.odt (" + domain.MediaTypeODT + ", 3 pages)\n" +
		"--- page 1 ---\none\n" +
		"--- page 2 ---\n" +
		"--- page 3 ---\nthree\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteFailure_Plain(t *testing.T) {
	buf := new(bytes.Buffer)

	writeFailure(buf, newOutputStyles(false), "bad.docx", errors.New("boom"))

	assert.Equal(t, "failed bad.docx: boom\n", buf.String())
}

func TestStylesFor_BufferIsNotTerminal(t *testing.T) {
	assert.False(t, stylesFor(new(bytes.Buffer)).enabled)
}

func TestSelectPage(t *testing.T) {
	t.Run("zero keeps all pages", func(t *testing.T) {
		content := threePages()
		got, err := selectPage(content, 0)
		require.NoError(t, err)
		assert.Same(t, content, got)
	})

	t.Run("selects one page without mutating the input", func(t *testing.T) {
		content := threePages()
		got, err := selectPage(content, 3)
		require.NoError(t, err)
		require.Len(t, got.Sections, 1)
		assert.Equal(t, "three", got.Sections[0].Text)
		assert.Len(t, content.Sections, 3)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := selectPage(threePages(), 4)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

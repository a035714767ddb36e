package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdecode/internal/core/domain"
	"github.com/custodia-labs/docdecode/internal/decoders/builtin"
	"github.com/custodia-labs/docdecode/internal/testutil"
)

func newTestDecodeService(maxBytes int64) *DecodeService {
	return NewDecodeService(builtin.NewRegistry(domain.DecodeSettings{}), maxBytes)
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestNewDecodeService_DefaultLimit(t *testing.T) {
	s := newTestDecodeService(0)

	assert.Equal(t, domain.DefaultMaxBytes, s.maxBytes)
}

func TestDecodeService_DecodeFile_DeclaredType(t *testing.T) {
	s := newTestDecodeService(0)
	path := writeFile(t, "report.bin", testutil.Docx(testutil.Para("Intro"), testutil.BreakPara("Page2 text")))

	content, err := s.DecodeFile(context.Background(), path, domain.MediaTypeMsWordX)

	require.NoError(t, err)
	require.Len(t, content.Sections, 2)
	assert.Equal(t, "Intro\n", content.Sections[0].Text)
	assert.Equal(t, "Page2 text\n", content.Sections[1].Text)
}

func TestDecodeService_DecodeFile_SniffsByExtension(t *testing.T) {
	s := newTestDecodeService(0)
	path := writeFile(t, "report.docx", testutil.Docx(testutil.Para("Hello")))

	content, err := s.DecodeFile(context.Background(), path, "")

	require.NoError(t, err)
	assert.Equal(t, domain.MediaTypeMsWordX, content.SourceMediaType)
	assert.Equal(t, "Hello\n", content.Text())
}

func TestDecodeService_DecodeFile_OctetStreamIsSniffed(t *testing.T) {
	s := newTestDecodeService(0)
	path := writeFile(t, "notes.md", []byte("# Notes\n\nbody\n"))

	content, err := s.DecodeFile(context.Background(), path, domain.MediaTypeOctetStream)

	require.NoError(t, err)
	assert.Equal(t, domain.MediaTypeMarkdown, content.SourceMediaType)
	assert.Equal(t, "# Notes\n\nbody\n", content.Text())
}

func TestDecodeService_DecodeFile_Errors(t *testing.T) {
	s := newTestDecodeService(16)

	t.Run("missing file", func(t *testing.T) {
		_, err := s.DecodeFile(context.Background(), filepath.Join(t.TempDir(), "nope.docx"), "")
		assert.ErrorIs(t, err, domain.ErrIO)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := s.DecodeFile(context.Background(), t.TempDir(), "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("too large", func(t *testing.T) {
		path := writeFile(t, "big.txt", []byte(strings.Repeat("x", 17)))
		_, err := s.DecodeFile(context.Background(), path, "text/plain")
		assert.ErrorIs(t, err, domain.ErrInputTooLarge)
		assert.ErrorIs(t, err, domain.ErrIO)
	})
}

func TestDecodeService_DecodeBytes_Sniffing(t *testing.T) {
	s := newTestDecodeService(0)

	tests := []struct {
		name     string
		data     []byte
		wantType string
		wantText string
	}{
		{
			name:     "html",
			data:     []byte("<!DOCTYPE html><html><body><p>Hi there</p></body></html>"),
			wantType: "text/html",
			wantText: "Hi there\n",
		},
		{
			name:     "plain text",
			data:     []byte("just some words"),
			wantType: "text/plain",
			wantText: "just some words",
		},
		{
			name:     "pdf",
			data:     testutil.PDF([]string{"Sniffed PDF"}),
			wantType: "application/pdf",
			wantText: "Sniffed PDF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, err := s.DecodeBytes(context.Background(), tt.data, "")

			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(content.SourceMediaType, tt.wantType), content.SourceMediaType)
			assert.Contains(t, content.Text(), tt.wantText)
		})
	}
}

func TestDecodeService_DecodeBytes_Unsupported(t *testing.T) {
	s := newTestDecodeService(0)

	_, err := s.DecodeBytes(context.Background(), []byte{0x00, 0x01, 0x02, 0x03}, "")

	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)

	_, err = s.DecodeBytes(context.Background(), []byte("x"), "image/png")

	var unsupported *domain.UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "image/png", unsupported.MediaType)
}

func TestDecodeService_DecodeBytes_TooLarge(t *testing.T) {
	s := newTestDecodeService(4)

	_, err := s.DecodeBytes(context.Background(), []byte("12345"), "text/plain")

	assert.ErrorIs(t, err, domain.ErrInputTooLarge)
}

func TestDecodeService_DecodeBytes_MalformedPassesThrough(t *testing.T) {
	s := newTestDecodeService(0)
	data := testutil.Zip(testutil.File{Name: "other.xml", Body: "<x/>"})

	_, err := s.DecodeBytes(context.Background(), data, domain.MediaTypeMsWordX)

	var malformed *domain.MalformedDocumentError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "missing main part", malformed.Reason)
}

func TestDecodeService_DecodeReader(t *testing.T) {
	s := newTestDecodeService(0)

	content, err := s.DecodeReader(context.Background(), strings.NewReader("page one\fpage two"), "text/plain")

	require.NoError(t, err)
	require.Len(t, content.Sections, 2)
	assert.Equal(t, 2, content.PageCount())
}

func TestDecodeService_DecodeReader_TooLarge(t *testing.T) {
	s := newTestDecodeService(8)

	_, err := s.DecodeReader(context.Background(), strings.NewReader(strings.Repeat("y", 100)), "text/plain")

	assert.ErrorIs(t, err, domain.ErrInputTooLarge)
}

func TestDecodeService_Cancelled(t *testing.T) {
	s := newTestDecodeService(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	content, err := s.DecodeBytes(ctx, testutil.Docx(testutil.Para("x")), domain.MediaTypeMsWordX)

	assert.Nil(t, content)
	assert.ErrorIs(t, err, domain.ErrCancelled)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecodeService_Decoders(t *testing.T) {
	s := newTestDecodeService(0)

	infos := s.Decoders()

	require.Len(t, infos, 6)
	assert.Equal(t, "docx", infos[0].Name)
	assert.Equal(t, []string{domain.MediaTypeMsWordX}, infos[0].MediaTypes)
	assert.Equal(t, "plaintext", infos[len(infos)-1].Name)
	assert.Equal(t, 5, infos[len(infos)-1].Priority)
}

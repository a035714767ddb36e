// Package plaintext decodes text formats that need no markup removal.
package plaintext

import (
	"context"
	"io"
	"strings"

	"github.com/custodia-labs/docdecode/internal/core/domain"
	"github.com/custodia-labs/docdecode/internal/core/ports/driven"
	"github.com/custodia-labs/docdecode/internal/decoders"
	"github.com/custodia-labs/docdecode/internal/logger"
	"github.com/custodia-labs/docdecode/internal/textutil"
)

// formFeed separates printed pages in plain text.
const formFeed = "\f"

// Ensure Decoder implements the interface.
var _ driven.Decoder = (*Decoder)(nil)

// Decoder is the fallback for any text/* type and for structured text
// formats. Format specific decoders registered at a higher priority win
// over it.
type Decoder struct{}

// New creates a new plain text decoder.
func New() *Decoder {
	return &Decoder{}
}

// Name returns the decoder name.
func (d *Decoder) Name() string {
	return "plaintext"
}

// SupportedMediaTypes returns the media type families this decoder handles.
func (d *Decoder) SupportedMediaTypes() []string {
	return []string{
		"text/",
		"application/json",
		"application/xml",
		"application/yaml",
		"application/x-yaml",
		"application/toml",
		"application/javascript",
		"application/x-sh",
	}
}

// SupportsMediaType reports whether mediaType is a text format.
func (d *Decoder) SupportsMediaType(mediaType string) bool {
	return domain.MatchesMediaType(mediaType, d.SupportedMediaTypes())
}

// Priority returns the selection priority.
func (d *Decoder) Priority() int {
	return 5 // Fallback
}

// DecodeFile decodes the text file at path.
func (d *Decoder) DecodeFile(ctx context.Context, path string) (*domain.FileContent, error) {
	return decoders.DecodeFile(ctx, d, path, domain.MediaTypePlainText)
}

// DecodeBytes decodes in-memory text.
func (d *Decoder) DecodeBytes(ctx context.Context, data []byte) (*domain.FileContent, error) {
	return decoders.DecodeBytes(ctx, d, data, domain.MediaTypePlainText)
}

// Decode splits the text into pages at form feeds. Text without form
// feeds is a single page. Invalid UTF-8 is replaced.
func (d *Decoder) Decode(ctx context.Context, r io.Reader, mediaType string) (*domain.FileContent, error) {
	if err := decoders.CheckMediaType(d, mediaType); err != nil {
		return nil, err
	}
	if err := decoders.CheckContext(ctx); err != nil {
		return nil, err
	}

	data, err := decoders.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.ToValidUTF8(string(data), "\uFFFD")
	text = strings.TrimPrefix(text, "\uFEFF")

	result := decoders.NewContent(mediaType)
	for i, page := range strings.Split(text, formFeed) {
		if err := decoders.CheckContext(ctx); err != nil {
			return nil, err
		}
		result.Add(domain.NewChunk(textutil.NormaliseNewlines(page, false), i+1, domain.ChunkMeta(true)))
	}

	logger.Debug("extracted %d text pages", len(result.Sections))
	return result, nil
}

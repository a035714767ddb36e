// Package docx decodes Word (.docx) documents into page-scoped text.
package docx

import (
	"context"
	"io"
	"strings"

	"github.com/custodia-labs/docdecode/internal/core/domain"
	"github.com/custodia-labs/docdecode/internal/core/ports/driven"
	"github.com/custodia-labs/docdecode/internal/decoders"
	"github.com/custodia-labs/docdecode/internal/decoders/opc"
	"github.com/custodia-labs/docdecode/internal/logger"
	"github.com/custodia-labs/docdecode/internal/textutil"
)

const (
	format = "docx"

	// defaultMainPart is used when the package has no officeDocument
	// relationship.
	defaultMainPart = "word/document.xml"
)

// Ensure Decoder implements the interface.
var _ driven.Decoder = (*Decoder)(nil)

// Decoder handles Word documents.
type Decoder struct {
	open func(r io.ReaderAt, size int64) (*opc.Package, error)
}

// New creates a new Word decoder.
func New() *Decoder {
	return &Decoder{open: opc.Open}
}

// Name returns the decoder name.
func (d *Decoder) Name() string {
	return format
}

// SupportedMediaTypes returns the media types this decoder handles.
func (d *Decoder) SupportedMediaTypes() []string {
	return []string{domain.MediaTypeMsWordX}
}

// SupportsMediaType reports whether mediaType is a Word document type.
func (d *Decoder) SupportsMediaType(mediaType string) bool {
	return domain.MatchesMediaType(mediaType, d.SupportedMediaTypes())
}

// Priority returns the selection priority.
func (d *Decoder) Priority() int {
	return 50 // Generic MIME decoder
}

// DecodeFile decodes the Word document stored at path.
func (d *Decoder) DecodeFile(ctx context.Context, path string) (*domain.FileContent, error) {
	return decoders.DecodeFile(ctx, d, path, domain.MediaTypeMsWordX)
}

// DecodeBytes decodes an in-memory Word document.
func (d *Decoder) DecodeBytes(ctx context.Context, data []byte) (*domain.FileContent, error) {
	return decoders.DecodeBytes(ctx, d, data, domain.MediaTypeMsWordX)
}

// Decode extracts the text of a Word document, one chunk per detected page
// plus the trailing page. The package is released on every exit path.
func (d *Decoder) Decode(ctx context.Context, r io.Reader, mediaType string) (*domain.FileContent, error) {
	if err := decoders.CheckMediaType(d, mediaType); err != nil {
		return nil, err
	}
	if err := decoders.CheckContext(ctx); err != nil {
		return nil, err
	}

	logger.Debug("extracting text from MS Word file")

	ra, size, err := decoders.ReaderAt(r)
	if err != nil {
		return nil, err
	}

	pkg, err := d.open(ra, size)
	if err != nil {
		return nil, err
	}
	defer pkg.Close()

	mainPart, err := findMainPart(pkg)
	if err != nil {
		return nil, err
	}

	rc, err := pkg.OpenPart(mainPart)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	paragraphs, err := parseBody(ctx, rc)
	if err != nil {
		return nil, err
	}

	return paginate(ctx, paragraphs, mediaType)
}

// findMainPart resolves the main document part through the package
// relationships, falling back to the conventional part name.
func findMainPart(pkg *opc.Package) (string, error) {
	name, ok, err := pkg.MainPart()
	if err != nil {
		return "", err
	}
	if !ok {
		name = defaultMainPart
	}
	if !pkg.Has(name) {
		return "", domain.Malformed(format, "missing main part")
	}
	return name, nil
}

// paginate groups paragraphs into page chunks.
//
// A paragraph whose first run carries a last-rendered page break closes
// the current page before its own text is added. The marker is only
// present when the authoring application recorded its layout, so page
// numbers are an approximation of the visual pages. Chunk text is not
// trimmed; only line endings are normalised.
func paginate(ctx context.Context, paragraphs []paragraph, mediaType string) (*domain.FileContent, error) {
	result := decoders.NewContent(mediaType)

	var sb strings.Builder
	pageNumber := 1
	for i := range paragraphs {
		if err := decoders.CheckContext(ctx); err != nil {
			return nil, err
		}

		p := &paragraphs[i]
		if p.LastRenderedPageBreak != nil {
			pageContent := textutil.NormaliseNewlines(sb.String(), false)
			sb.Reset()
			result.Add(domain.NewChunk(pageContent, pageNumber, domain.ChunkMeta(true)))
			pageNumber++
		}

		textutil.AppendLineNix(&sb, p.Text)
	}

	lastPageContent := textutil.NormaliseNewlines(sb.String(), false)
	result.Add(domain.NewChunk(lastPageContent, pageNumber, domain.ChunkMeta(true)))

	logger.Debug("extracted %d paragraphs into %d pages", len(paragraphs), pageNumber)
	return result, nil
}

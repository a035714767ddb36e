// Package pdf decodes PDF documents, one chunk per page.
package pdf

import (
	"context"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/custodia-labs/docdecode/internal/core/domain"
	"github.com/custodia-labs/docdecode/internal/core/ports/driven"
	"github.com/custodia-labs/docdecode/internal/decoders"
	"github.com/custodia-labs/docdecode/internal/logger"
	"github.com/custodia-labs/docdecode/internal/textutil"
)

const format = "pdf"

// Ensure Decoder implements the interface.
var _ driven.Decoder = (*Decoder)(nil)

// Decoder handles PDF documents.
type Decoder struct{}

// New creates a new PDF decoder.
func New() *Decoder {
	return &Decoder{}
}

// Name returns the decoder name.
func (d *Decoder) Name() string {
	return format
}

// SupportedMediaTypes returns the media types this decoder handles.
func (d *Decoder) SupportedMediaTypes() []string {
	return []string{domain.MediaTypePDF}
}

// SupportsMediaType reports whether mediaType is PDF.
func (d *Decoder) SupportsMediaType(mediaType string) bool {
	return domain.MatchesMediaType(mediaType, d.SupportedMediaTypes())
}

// Priority returns the selection priority.
func (d *Decoder) Priority() int {
	return 50
}

// DecodeFile decodes the PDF at path.
func (d *Decoder) DecodeFile(ctx context.Context, path string) (*domain.FileContent, error) {
	return decoders.DecodeFile(ctx, d, path, domain.MediaTypePDF)
}

// DecodeBytes decodes an in-memory PDF.
func (d *Decoder) DecodeBytes(ctx context.Context, data []byte) (*domain.FileContent, error) {
	return decoders.DecodeBytes(ctx, d, data, domain.MediaTypePDF)
}

// Decode extracts the text shown by each page's content stream. Page n of
// the PDF becomes the chunk with page number n, empty pages included.
func (d *Decoder) Decode(ctx context.Context, r io.Reader, mediaType string) (*domain.FileContent, error) {
	if err := decoders.CheckMediaType(d, mediaType); err != nil {
		return nil, err
	}
	if err := decoders.CheckContext(ctx); err != nil {
		return nil, err
	}

	logger.Debug("extracting text from PDF file")

	ra, size, err := decoders.ReaderAt(r)
	if err != nil {
		return nil, err
	}

	pdfCtx, err := api.ReadValidateAndOptimize(io.NewSectionReader(ra, 0, size), model.NewDefaultConfiguration())
	if err != nil {
		return nil, domain.IOFailure("read pdf", err)
	}
	if pdfCtx.PageCount == 0 {
		return nil, domain.Malformed(format, "no pages")
	}

	result := decoders.NewContent(mediaType)
	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		if err := decoders.CheckContext(ctx); err != nil {
			return nil, err
		}
		text, err := pageText(pdfCtx, pageNr)
		if err != nil {
			return nil, err
		}
		result.Add(domain.NewChunk(textutil.NormaliseNewlines(text, false), pageNr, domain.ChunkMeta(false)))
	}

	logger.Debug("extracted %d pdf pages", pdfCtx.PageCount)
	return result, nil
}

func pageText(pdfCtx *model.Context, pageNr int) (string, error) {
	r, err := pdfcpu.ExtractPageContent(pdfCtx, pageNr)
	if err != nil {
		return "", domain.IOFailure(fmt.Sprintf("extract page %d", pageNr), err)
	}
	if r == nil {
		return "", nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", domain.IOFailure(fmt.Sprintf("read page %d", pageNr), err)
	}
	return ShownText(data), nil
}

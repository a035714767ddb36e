package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/docdecode/internal/core/domain"
)

// DecodeService is the caller-facing entry point for decoding documents.
// An empty mediaType (or application/octet-stream) asks the service to
// sniff the type from the content.
type DecodeService interface {
	// DecodeFile decodes the document stored at path.
	DecodeFile(ctx context.Context, path, mediaType string) (*domain.FileContent, error)

	// DecodeBytes decodes an in-memory document.
	DecodeBytes(ctx context.Context, data []byte, mediaType string) (*domain.FileContent, error)

	// DecodeReader decodes a caller-supplied stream.
	DecodeReader(ctx context.Context, r io.Reader, mediaType string) (*domain.FileContent, error)

	// Decoders describes the registered decoders in selection order.
	Decoders() []domain.DecoderInfo
}

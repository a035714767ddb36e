package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/docdecode/internal/core/domain"
)

// DecoderRegistry selects the appropriate decoder for a document.
// It maintains a priority-ordered list of decoders and dispatches by
// capability predicate rather than a static lookup table.
type DecoderRegistry interface {
	// Register adds a decoder to the registry.
	Register(decoder Decoder)

	// Select returns the highest priority decoder supporting mediaType.
	Select(mediaType string) (Decoder, error)

	// Decode decodes r with the best matching decoder.
	Decode(ctx context.Context, r io.Reader, mediaType string) (*domain.FileContent, error)

	// SupportedMediaTypes returns all media types that can be decoded.
	SupportedMediaTypes() []string

	// Decoders returns the registered decoders in selection order.
	Decoders() []Decoder
}

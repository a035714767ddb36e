package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/docdecode/internal/core/domain"
)

// Decoder turns a binary document into paginated plain text.
// Each decoder handles a family of media types (e.g. Word, PDF).
type Decoder interface {
	// Name returns a short identifier such as "docx". Used in config to
	// disable a decoder.
	Name() string

	// SupportsMediaType reports whether the decoder handles mediaType.
	// Matching is a case-insensitive prefix test against the declared
	// family. It never panics; unknown types return false.
	SupportsMediaType(mediaType string) bool

	// SupportedMediaTypes returns the declared family of media types.
	SupportedMediaTypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Generic MIME decoders should return 50-89.
	// Fallback decoders should return 1-9.
	Priority() int

	// Decode reads the document from r. The caller guarantees r is
	// positioned at the start of the document and is not written to
	// during the call. mediaType must be one the decoder supports.
	Decode(ctx context.Context, r io.Reader, mediaType string) (*domain.FileContent, error)
}

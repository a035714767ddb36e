package decoders

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/custodia-labs/docdecode/internal/core/domain"
	"github.com/custodia-labs/docdecode/internal/core/ports/driven"
)

// NewContent creates an empty result with a fresh ID.
func NewContent(sourceMediaType string) *domain.FileContent {
	return domain.NewFileContent(uuid.New().String(), sourceMediaType)
}

// CheckMediaType returns an UnsupportedFormatError unless d supports
// mediaType. Decoders call it first thing in Decode.
func CheckMediaType(d driven.Decoder, mediaType string) error {
	if !d.SupportsMediaType(mediaType) {
		return domain.Unsupported(mediaType)
	}
	return nil
}

// CheckContext returns a CancellationError once ctx is done.
func CheckContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return domain.Cancelled(err)
	}
	return nil
}

// DecodeFile opens path and decodes it with d. The file is closed on
// every exit path.
func DecodeFile(ctx context.Context, d driven.Decoder, path, mediaType string) (*domain.FileContent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.IOFailure("open "+path, err)
	}
	defer f.Close()
	return d.Decode(ctx, f, mediaType)
}

// DecodeBytes decodes an in-memory document with d.
func DecodeBytes(ctx context.Context, d driven.Decoder, data []byte, mediaType string) (*domain.FileContent, error) {
	return d.Decode(ctx, bytes.NewReader(data), mediaType)
}

// sizedReaderAt is satisfied by bytes.Reader, strings.Reader and
// io.SectionReader.
type sizedReaderAt interface {
	io.ReaderAt
	Size() int64
}

// ReaderAt returns a random access view of r, which container formats
// such as zip need. Streams that cannot be read at an offset are buffered
// in memory.
func ReaderAt(r io.Reader) (io.ReaderAt, int64, error) {
	switch v := r.(type) {
	case sizedReaderAt:
		return v, v.Size(), nil
	case *os.File:
		info, err := v.Stat()
		if err != nil {
			return nil, 0, domain.IOFailure("stat input", err)
		}
		return v, info.Size(), nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, domain.IOFailure("read input", err)
	}
	return bytes.NewReader(data), int64(len(data)), nil
}

// ReadAll reads the whole stream, mapping failures to IOError.
func ReadAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, domain.IOFailure("read input", err)
	}
	return data, nil
}

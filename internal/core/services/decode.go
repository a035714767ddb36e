package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gabriel-vasile/mimetype"

	"github.com/custodia-labs/docdecode/internal/core/domain"
	"github.com/custodia-labs/docdecode/internal/core/ports/driven"
	"github.com/custodia-labs/docdecode/internal/core/ports/driving"
	"github.com/custodia-labs/docdecode/internal/logger"
)

// Ensure DecodeService implements the interface.
var _ driving.DecodeService = (*DecodeService)(nil)

// DecodeService routes documents to the registered decoders. It sniffs
// undeclared media types and rejects inputs above the configured size.
type DecodeService struct {
	registry driven.DecoderRegistry
	maxBytes int64
}

// NewDecodeService creates a new decode service. A non-positive maxBytes
// uses domain.DefaultMaxBytes.
func NewDecodeService(registry driven.DecoderRegistry, maxBytes int64) *DecodeService {
	if maxBytes <= 0 {
		maxBytes = domain.DefaultMaxBytes
	}
	return &DecodeService{
		registry: registry,
		maxBytes: maxBytes,
	}
}

// DecodeFile decodes the document stored at path.
func (s *DecodeService) DecodeFile(ctx context.Context, path, mediaType string) (*domain.FileContent, error) {
	defer logger.Timer("decode " + path)()

	f, err := os.Open(path)
	if err != nil {
		return nil, domain.IOFailure("open "+path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, domain.IOFailure("stat "+path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}
	if info.Size() > s.maxBytes {
		return nil, s.tooLarge(path, info.Size())
	}

	if domain.IsUndeclaredMediaType(mediaType) {
		detected, err := mimetype.DetectReader(f)
		if err != nil {
			return nil, domain.IOFailure("sniff "+path, err)
		}
		mediaType = refine(detected, path)
		logger.Debug("sniffed %s as %s", path, mediaType)
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, domain.IOFailure("rewind "+path, err)
		}
	}

	return s.decode(ctx, f, mediaType, path)
}

// DecodeBytes decodes an in-memory document.
func (s *DecodeService) DecodeBytes(ctx context.Context, data []byte, mediaType string) (*domain.FileContent, error) {
	if int64(len(data)) > s.maxBytes {
		return nil, s.tooLarge("input", int64(len(data)))
	}
	if domain.IsUndeclaredMediaType(mediaType) {
		mediaType = sniff(data, "")
		logger.Debug("sniffed input as %s", mediaType)
	}
	return s.decode(ctx, bytes.NewReader(data), mediaType, "input")
}

// DecodeReader decodes a stream. The stream is buffered up to the size
// limit, since container formats need random access anyway.
func (s *DecodeService) DecodeReader(ctx context.Context, r io.Reader, mediaType string) (*domain.FileContent, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, domain.IOFailure("read input", err)
	}
	return s.DecodeBytes(ctx, data, mediaType)
}

// Decoders describes the registered decoders in selection order.
func (s *DecodeService) Decoders() []domain.DecoderInfo {
	decoders := s.registry.Decoders()
	out := make([]domain.DecoderInfo, len(decoders))
	for i, d := range decoders {
		out[i] = domain.DecoderInfo{
			Name:       d.Name(),
			MediaTypes: d.SupportedMediaTypes(),
			Priority:   d.Priority(),
		}
	}
	return out
}

func (s *DecodeService) decode(ctx context.Context, r io.Reader, mediaType, name string) (*domain.FileContent, error) {
	content, err := s.registry.Decode(ctx, r, mediaType)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	logger.Debug("decoded %s as %s: %d pages, %d bytes of text (id %s)",
		name, mediaType, content.PageCount(), len(content.Text()), content.ID)
	return content, nil
}

func (s *DecodeService) tooLarge(name string, size int64) error {
	return domain.IOFailure(fmt.Sprintf("read %s (%d bytes, limit %d)", name, size, s.maxBytes), domain.ErrInputTooLarge)
}

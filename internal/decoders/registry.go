package decoders

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/custodia-labs/docdecode/internal/core/domain"
	"github.com/custodia-labs/docdecode/internal/core/ports/driven"
	"github.com/custodia-labs/docdecode/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.DecoderRegistry = (*Registry)(nil)

// Registry holds decoders ordered by priority. Decoders with equal
// priority keep their registration order. Lookups are safe for concurrent
// use; the registry is normally populated once at startup.
type Registry struct {
	mu       sync.RWMutex
	decoders []driven.Decoder
}

// NewRegistry creates a registry with the given decoders.
func NewRegistry(decoders ...driven.Decoder) *Registry {
	r := &Registry{}
	for _, d := range decoders {
		r.Register(d)
	}
	return r
}

// Register adds a decoder to the registry. Nil decoders are ignored.
func (r *Registry) Register(decoder driven.Decoder) {
	if decoder == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.decoders = append(r.decoders, decoder)
	sort.SliceStable(r.decoders, func(i, j int) bool {
		return r.decoders[i].Priority() > r.decoders[j].Priority()
	})
}

// Select returns the highest priority decoder supporting mediaType.
func (r *Registry) Select(mediaType string) (driven.Decoder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.decoders {
		if d.SupportsMediaType(mediaType) {
			return d, nil
		}
	}
	return nil, domain.Unsupported(mediaType)
}

// Decode decodes r with the best matching decoder.
func (r *Registry) Decode(ctx context.Context, rd io.Reader, mediaType string) (*domain.FileContent, error) {
	d, err := r.Select(mediaType)
	if err != nil {
		return nil, err
	}
	logger.Debug("decoder %s selected for %s", d.Name(), mediaType)
	return d.Decode(ctx, rd, mediaType)
}

// SupportedMediaTypes returns all media types that can be decoded,
// deduplicated, in selection order.
func (r *Registry) SupportedMediaTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var types []string
	for _, d := range r.decoders {
		for _, t := range d.SupportedMediaTypes() {
			if seen[t] {
				continue
			}
			seen[t] = true
			types = append(types, t)
		}
	}
	return types
}

// Decoders returns a copy of the registered decoders in selection order.
func (r *Registry) Decoders() []driven.Decoder {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]driven.Decoder, len(r.decoders))
	copy(out, r.decoders)
	return out
}

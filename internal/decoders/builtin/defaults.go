// Package builtin wires the decoders shipped with docdecode into a registry.
package builtin

import (
	"github.com/custodia-labs/docdecode/internal/core/domain"
	"github.com/custodia-labs/docdecode/internal/core/ports/driven"
	"github.com/custodia-labs/docdecode/internal/decoders"
	"github.com/custodia-labs/docdecode/internal/decoders/docx"
	"github.com/custodia-labs/docdecode/internal/decoders/html"
	"github.com/custodia-labs/docdecode/internal/decoders/odt"
	"github.com/custodia-labs/docdecode/internal/decoders/pdf"
	"github.com/custodia-labs/docdecode/internal/decoders/plaintext"
	"github.com/custodia-labs/docdecode/internal/decoders/pptx"
	"github.com/custodia-labs/docdecode/internal/logger"
)

// All returns a fresh instance of every built-in decoder.
func All() []driven.Decoder {
	return []driven.Decoder{
		docx.New(),
		pptx.New(),
		odt.New(),
		pdf.New(),
		html.New(),
		plaintext.New(),
	}
}

// RegisterDefaults registers the built-in decoders with the registry,
// skipping those the settings disable.
func RegisterDefaults(r *decoders.Registry, settings domain.DecodeSettings) {
	for _, d := range All() {
		if settings.IsDecoderDisabled(d.Name()) {
			logger.Debug("decoder %s disabled by configuration", d.Name())
			continue
		}
		r.Register(d)
	}
}

// NewRegistry returns a registry holding the enabled built-in decoders.
func NewRegistry(settings domain.DecodeSettings) *decoders.Registry {
	r := decoders.NewRegistry()
	RegisterDefaults(r, settings)
	return r
}

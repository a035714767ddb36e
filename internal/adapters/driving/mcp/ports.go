package mcp

import (
	"github.com/custodia-labs/docdecode/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Decode turns documents into text.
	Decode driving.DecodeService

	// Settings exposes the effective configuration. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Decode == nil {
		return ErrMissingDecodeService
	}
	return nil
}

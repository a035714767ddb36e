// Package mcp provides an MCP (Model Context Protocol) server adapter for
// docdecode. It lets AI assistants decode local documents into paginated
// plain text.
package mcp

import "errors"

var (
	// ErrMissingDecodeService is returned when the decode service is not provided.
	ErrMissingDecodeService = errors.New("mcp: decode service is required")

	// ErrMissingInput is returned when a decode request names neither a
	// path nor inline content.
	ErrMissingInput = errors.New("mcp: either path or content is required")

	// ErrAmbiguousInput is returned when a decode request names both.
	ErrAmbiguousInput = errors.New("mcp: path and content are mutually exclusive")
)

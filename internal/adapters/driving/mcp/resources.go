package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for docdecode resources.
	uriScheme = "docdecode://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "decoders",
		Name:        "decoders",
		Description: "Registered decoders in selection order",
		MIMEType:    "application/json",
	}, s.handleDecodersResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Effective decode settings",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "files/{path}",
		Name:        "decoded-file",
		Description: "Plain text of a local document, pages separated by form feeds",
		MIMEType:    "text/plain",
	}, s.handleFileResource)
}

func (s *Server) handleDecodersResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Decode.Decoders())
}

func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Settings == nil {
		return jsonResource(req.Params.URI, map[string]any{})
	}

	values := make(map[string]any)
	for _, key := range s.ports.Settings.Keys() {
		val, err := s.ports.Settings.GetValue(key)
		if err != nil {
			return nil, fmt.Errorf("reading setting %s: %w", key, err)
		}
		values[key] = val
	}
	return jsonResource(req.Params.URI, values)
}

// handleFileResource decodes the file named by the URI.
func (s *Server) handleFileResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	path := extractFilePath(req.Params.URI)
	if path == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	content, err := s.ports.Decode.DecodeFile(ctx, path, "")
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	pages := make([]string, len(content.Sections))
	for i, c := range content.Sections {
		pages[i] = c.Text
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     strings.Join(pages, "\f"),
		}},
	}, nil
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractFilePath extracts the path from a URI like
// docdecode://files/{path}. The path is URL escaped in the URI.
func extractFilePath(uri string) string {
	const prefix = uriScheme + "files/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	path, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return ""
	}
	return path
}

package mcp

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docdecode/internal/core/domain"
)

// DecodeInput is the input schema for the decode_document tool.
type DecodeInput struct {
	Path      string `json:"path,omitempty" jsonschema:"local file path of the document to decode"`
	Content   string `json:"content,omitempty" jsonschema:"base64 encoded document bytes, used instead of path"`
	MediaType string `json:"media_type,omitempty" jsonschema:"declared media type; detected from the content when empty"`
	Page      int    `json:"page,omitempty" jsonschema:"return only this 1-based page"`
}

// DecodeOutput is the output schema for the decode_document tool.
type DecodeOutput struct {
	ID              string        `json:"id"`
	MediaType       string        `json:"media_type"`
	SourceMediaType string        `json:"source_media_type"`
	PageCount       int           `json:"page_count"`
	Chunks          []ChunkOutput `json:"chunks"`
}

// ChunkOutput is one page of decoded text.
type ChunkOutput struct {
	Page                 int    `json:"page"`
	Text                 string `json:"text"`
	SentencesAreComplete bool   `json:"sentences_are_complete"`
}

// ListDecodersInput is the input schema for the list_decoders tool.
type ListDecodersInput struct{}

// ListDecodersOutput is the output schema for the list_decoders tool.
type ListDecodersOutput struct {
	Decoders []domain.DecoderInfo `json:"decoders"`
	Count    int                  `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "decode_document",
		Description: "Decode a document (docx, pptx, odt, pdf, html, text) into paginated plain text",
	}, s.handleDecode)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_decoders",
		Description: "List the available decoders and the media types they accept",
	}, s.handleListDecoders)
}

// handleDecode handles the decode_document tool invocation.
func (s *Server) handleDecode(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DecodeInput,
) (*mcp.CallToolResult, DecodeOutput, error) {
	var (
		content *domain.FileContent
		err     error
	)

	switch {
	case input.Path != "" && input.Content != "":
		return nil, DecodeOutput{}, ErrAmbiguousInput
	case input.Path != "":
		content, err = s.ports.Decode.DecodeFile(ctx, input.Path, input.MediaType)
	case input.Content != "":
		data, decodeErr := base64.StdEncoding.DecodeString(input.Content)
		if decodeErr != nil {
			return nil, DecodeOutput{}, fmt.Errorf("%w: content is not valid base64: %v", domain.ErrInvalidInput, decodeErr)
		}
		content, err = s.ports.Decode.DecodeBytes(ctx, data, input.MediaType)
	default:
		return nil, DecodeOutput{}, ErrMissingInput
	}
	if err != nil {
		return nil, DecodeOutput{}, err
	}

	output := toDecodeOutput(content)
	if input.Page > 0 {
		if input.Page > len(output.Chunks) {
			return nil, DecodeOutput{}, fmt.Errorf("%w: page %d out of range 1-%d",
				domain.ErrInvalidInput, input.Page, len(output.Chunks))
		}
		output.Chunks = output.Chunks[input.Page-1 : input.Page]
	}

	return nil, output, nil
}

// handleListDecoders handles the list_decoders tool invocation.
func (s *Server) handleListDecoders(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListDecodersInput,
) (*mcp.CallToolResult, ListDecodersOutput, error) {
	decoders := s.ports.Decode.Decoders()
	return nil, ListDecodersOutput{Decoders: decoders, Count: len(decoders)}, nil
}

func toDecodeOutput(content *domain.FileContent) DecodeOutput {
	output := DecodeOutput{
		ID:              content.ID,
		MediaType:       content.MediaType,
		SourceMediaType: content.SourceMediaType,
		PageCount:       content.PageCount(),
		Chunks:          make([]ChunkOutput, len(content.Sections)),
	}
	for i, c := range content.Sections {
		output.Chunks[i] = ChunkOutput{
			Page:                 c.PageNumber,
			Text:                 c.Text,
			SentencesAreComplete: c.SentencesAreComplete(),
		}
	}
	return output
}

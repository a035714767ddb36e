package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdecode/internal/core/domain"
	"github.com/custodia-labs/docdecode/internal/core/services"
	"github.com/custodia-labs/docdecode/internal/decoders/builtin"
	"github.com/custodia-labs/docdecode/internal/testutil"
)

// connect serves a real decode stack over in-memory transports and
// returns a connected client session.
func connect(t *testing.T) *mcp.ClientSession {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	registry := builtin.NewRegistry(domain.DefaultAppSettings().Decode)
	server, err := NewServer(&Ports{Decode: services.NewDecodeService(registry, 0)})
	require.NoError(t, err)

	serverT, clientT := mcp.NewInMemoryTransports()
	go server.RunTransport(ctx, serverT) //nolint:errcheck

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientT, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })

	return session
}

func TestSession_ListTools(t *testing.T) {
	session := connect(t)

	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"decode_document", "list_decoders"}, names)
}

func TestSession_DecodeDocument(t *testing.T) {
	session := connect(t)

	docx := testutil.Docx(
		testutil.Para("Cover"),
		testutil.BreakPara("Body"),
	)
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "decode_document",
		Arguments: map[string]any{
			"content":    base64.StdEncoding.EncodeToString(docx),
			"media_type": domain.MediaTypeMsWordX,
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent")

	var output DecodeOutput
	require.NoError(t, json.Unmarshal([]byte(text.Text), &output))
	assert.Equal(t, domain.MediaTypeMsWordX, output.SourceMediaType)
	assert.Equal(t, 2, output.PageCount)
	require.Len(t, output.Chunks, 2)
	assert.Equal(t, "Cover\n", output.Chunks[0].Text)
	assert.Equal(t, "Body\n", output.Chunks[1].Text)
}

func TestSession_DecodeDocumentError(t *testing.T) {
	session := connect(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "decode_document",
		Arguments: map[string]any{},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestSession_ReadDecodersResource(t *testing.T) {
	session := connect(t)

	result, err := session.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: "docdecode://decoders"})
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)

	var decoders []domain.DecoderInfo
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &decoders))
	require.NotEmpty(t, decoders)
	assert.Equal(t, "plaintext", decoders[len(decoders)-1].Name)
}

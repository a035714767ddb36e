package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docdecode/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server exposes the decode service to MCP clients.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "docdecode",
		Version: Version,
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(impl, &mcp.ServerOptions{
			Instructions: instructions(ports),
		}),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// instructions tells clients which formats the registry accepts.
func instructions(ports *Ports) string {
	decoders := ports.Decode.Decoders()
	names := make([]string, len(decoders))
	for i, d := range decoders {
		names[i] = d.Name
	}

	var sb strings.Builder
	sb.WriteString("Decode local documents into plain text split into pages. ")
	sb.WriteString("Call decode_document with a path or base64 content; ")
	sb.WriteString("the media type is detected when omitted.")
	if len(names) > 0 {
		sb.WriteString(" Available decoders: ")
		sb.WriteString(strings.Join(names, ", "))
		sb.WriteString(".")
	}
	return sb.String()
}

// Run serves one session over stdio until ctx is cancelled or the
// client disconnects.
func (s *Server) Run(ctx context.Context) error {
	logger.Debug("mcp: serving over stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunTransport serves a single session over the given transport.
func (s *Server) RunTransport(ctx context.Context, t mcp.Transport) error {
	return s.server.Run(ctx, t)
}

// RunHTTP serves streamable HTTP sessions on addr until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	logger.Info("mcp: listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

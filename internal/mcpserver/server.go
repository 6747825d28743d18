// Package mcpserver exposes brume's sync/search capability as Model
// Context Protocol tools, grounded on the teacher's
// internal/adapters/driving/mcp package and on original_source/src/mcp.rs.
// Tool handlers are thin wrappers over driving.SyncService/SearchService;
// no logic is duplicated here.
package mcpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/brume-cli/brume/internal/core/ports/driving"
)

const Version = "0.1.0"

// Server is brume's MCP server.
type Server struct {
	sync   driving.SyncService
	search driving.SearchService
	server *mcp.Server
}

// NewServer builds an MCP server over sync and search.
func NewServer(sync driving.SyncService, search driving.SearchService) *Server {
	impl := &mcp.Implementation{Name: "brume", Version: Version}
	s := &Server{sync: sync, search: search, server: mcp.NewServer(impl, nil)}
	s.registerTools()
	return s
}

// Run serves over stdio, blocking until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves over streamable HTTP at addr, blocking until ctx is
// cancelled. This surface serves only the user's own tooling, not
// external traffic, per SPEC_FULL.md §14's non-goals.
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
		_ = httpServer.Shutdown(context.Background())
	}()

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

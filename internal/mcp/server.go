// Package mcp exposes trend description as Model Context Protocol
// tools, so AI agents can request chart alt text over stdio.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/trendtell/internal/describe"
	"github.com/ziadkadry99/trendtell/internal/history"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes trend description tools.
type Server struct {
	describer *describe.Describer
	store     *history.Store
	mcp       *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
// The history store may be nil; the history tool then reports that
// recording is disabled.
func NewServer(describer *describe.Describer, store *history.Store) *Server {
	s := &Server{
		describer: describer,
		store:     store,
	}

	s.mcp = server.NewMCPServer(
		"trendtell",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(describeTrendTool, s.handleDescribeTrend)
	s.mcp.AddTool(recentDescriptionsTool, s.handleRecentDescriptions)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

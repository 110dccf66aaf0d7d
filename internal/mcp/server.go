// Package mcp exposes chart tools to AI agents over the Model Context
// Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/aliverse/internal/analysis"
	"github.com/ziadkadry99/aliverse/internal/readings"
	"github.com/ziadkadry99/aliverse/internal/report"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes chart tools.
type Server struct {
	analyzer *analysis.Analyzer
	brand    report.Brand
	readings *readings.Service
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(analyzer *analysis.Analyzer, brand report.Brand) *Server {
	s := &Server{
		analyzer: analyzer,
		brand:    brand,
	}

	s.mcp = server.NewMCPServer(
		"aliverse",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(computeChartTool, s.handleComputeChart)
	s.mcp.AddTool(tenGodTool, s.handleTenGod)
	s.mcp.AddTool(carMatrixTool, s.handleCarMatrix)
}

// SetReadings enables the tools that read stored history.
func (s *Server) SetReadings(svc *readings.Service) {
	s.readings = svc
	s.mcp.AddTool(getReadingTool, s.handleGetReading)
	s.mcp.AddTool(listReadingsTool, s.handleListReadings)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

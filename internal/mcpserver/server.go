// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the satellite catalog for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/marholt/satview/internal/query"
)

// Server wraps the MCP server with catalog tools.
type Server struct {
	mcp *server.MCPServer
	svc *query.Service
}

// New creates a new MCP server with all catalog tools registered.
func New(svc *query.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"satview",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("list_categories",
		mcp.WithDescription("List all satellite categories with member counts."),
	), s.listCategories)

	s.mcp.AddTool(mcp.NewTool("browse_category",
		mcp.WithDescription("List satellites in a category, optionally filtered and sorted."),
		mcp.WithString("category", mcp.Required(), mcp.Description("Category id, e.g. earth-observation")),
		mcp.WithString("name", mcp.Description("Optional case-insensitive name filter")),
		mcp.WithString("sortBy", mcp.Description("Optional sort key: name or type")),
	), s.browseCategory)

	s.mcp.AddTool(mcp.NewTool("search_satellites",
		mcp.WithDescription("Search the whole catalog by name, shortname, or id."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search text")),
	), s.searchSatellites)

	s.mcp.AddTool(mcp.NewTool("get_satellite",
		mcp.WithDescription("Get the full record for a single satellite."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Satellite id, e.g. iss-zarya-25544")),
	), s.getSatellite)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listCategories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.svc.Categories(), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) browseCategory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category, err := req.RequireString("category")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	filters := query.Filters{}
	if v, strErr := req.RequireString("name"); strErr == nil {
		filters.Name = v
	}
	if v, strErr := req.RequireString("sortBy"); strErr == nil {
		switch v {
		case query.SortByName, query.SortByType, query.SortByLaunchDate:
			filters.SortBy = v
		}
	}

	result := s.svc.BrowseByCategory(category, filters)
	out, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchSatellites(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result := s.svc.Search(query.Filters{Name: text})
	out, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getSatellite(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rec, lookupErr := s.svc.Detail(id)
	if lookupErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("satellite '%s' not found", id)), nil
	}
	out, _ := json.MarshalIndent(rec, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

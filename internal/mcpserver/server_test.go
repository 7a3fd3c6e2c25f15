package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/marholt/satview/internal/query"
	"github.com/marholt/satview/internal/testutil"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	store := testutil.TestStore(t, testutil.FixtureRecords()...)
	return New(query.NewService(store))
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so the handler
	// functions are exercised directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "list_categories":
		result, err = srv.listCategories(ctx, req)
	case "browse_category":
		result, err = srv.browseCategory(ctx, req)
	case "search_satellites":
		result, err = srv.searchSatellites(ctx, req)
	case "get_satellite":
		result, err = srv.getSatellite(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestListCategoriesTool(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "list_categories", map[string]interface{}{})
	text := resultText(r)
	if !strings.Contains(text, "Communication") || !strings.Contains(text, "\"count\"") {
		t.Errorf("categories output = %q", text)
	}
}

func TestBrowseCategoryTool(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "browse_category", map[string]interface{}{
		"category": "communication",
		"sortBy":   "name",
	})
	text := resultText(r)
	if !strings.Contains(text, "INTELSAT 39") || !strings.Contains(text, "STARLINK-3051") {
		t.Errorf("browse output = %q", text)
	}
	if strings.Index(text, "INTELSAT 39") > strings.Index(text, "STARLINK-3051") {
		t.Error("results not sorted by name")
	}
}

func TestBrowseCategoryToolMissingArg(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "browse_category", map[string]interface{}{})
	if !r.IsError {
		t.Error("expected error without category argument")
	}
}

func TestSearchSatellitesTool(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "search_satellites", map[string]interface{}{
		"query": "landsat",
	})
	text := resultText(r)
	if !strings.Contains(text, "LANDSAT 9") {
		t.Errorf("search output = %q", text)
	}
	if strings.Contains(text, "NOAA") {
		t.Errorf("search leaked unrelated records: %q", text)
	}
}

func TestGetSatelliteTool(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "get_satellite", map[string]interface{}{
		"id": "iss-zarya-25544",
	})
	text := resultText(r)
	if !strings.Contains(text, "ISS (ZARYA)") {
		t.Errorf("detail output = %q", text)
	}

	r = callTool(t, srv, "get_satellite", map[string]interface{}{
		"id": "missing",
	})
	if !r.IsError {
		t.Error("expected error for unknown satellite")
	}
}

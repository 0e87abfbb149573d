package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/trendtell/internal/history"
	"github.com/ziadkadry99/trendtell/internal/series"
)

// handleDescribeTrend runs the full describe flow for one series.
func (s *Server) handleDescribeTrend(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("series")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: series"), nil
	}

	target, err := series.Parse(text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid series: %v", err)), nil
	}

	res, err := s.describer.Describe(ctx, target)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("description failed: %v", err)), nil
	}

	return mcp.NewToolResultText(res.Description), nil
}

// handleRecentDescriptions lists recent runs from the history store.
func (s *Server) handleRecentDescriptions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.store == nil {
		return mcp.NewToolResultText("History recording is disabled; no past descriptions are available."), nil
	}

	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	runs, err := s.store.List(ctx, history.QueryFilter{Limit: limit})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing runs failed: %v", err)), nil
	}

	if len(runs) == 0 {
		return mcp.NewToolResultText("No descriptions recorded yet."), nil
	}

	return mcp.NewToolResultText(formatRuns(runs)), nil
}

func formatRuns(runs []history.Run) string {
	var b strings.Builder
	for i, run := range runs {
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, run.CreatedAt.Format("2006-01-02 15:04"), run.Series)
		fmt.Fprintf(&b, "   %s (model: %s)\n", run.Description, run.Model)
	}
	return b.String()
}

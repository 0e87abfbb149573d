package mcp

import "github.com/mark3labs/mcp-go/mcp"

// describeTrendTool defines the describe_trend MCP tool.
var describeTrendTool = mcp.NewTool("describe_trend",
	mcp.WithDescription("Generate a one-sentence natural-language trend description of a short numeric series, suitable as alt text for a chart."),
	mcp.WithString("series",
		mcp.Required(),
		mcp.Description("Comma-separated numeric values, e.g. \"132, 329, 583, 743, 966, 1123, 1298\""),
	),
)

// recentDescriptionsTool defines the recent_descriptions MCP tool.
var recentDescriptionsTool = mcp.NewTool("recent_descriptions",
	mcp.WithDescription("List recently generated trend descriptions with their series and models."),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of entries to return (default 10)"),
	),
)

package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/schemawalk/parser"
	"github.com/erraggy/schemawalk/traverse"
)

type schemaStatsInput struct {
	Schema   schemaInput `json:"schema"              jsonschema:"The JSON Schema document to summarize"`
	Pointer  string      `json:"pointer,omitempty"   jsonschema:"JSON pointer of the schema to start from. Defaults to the document root."`
	MaxDepth int         `json:"max_depth,omitempty" jsonschema:"Fail when schemas nest deeper than this. Defaults to SCHEMAWALK_MAX_DEPTH (0 = unlimited)."`
}

type schemaStatsOutput struct {
	SourceFormat   string         `json:"source_format"`
	SourceSize     string         `json:"source_size"`
	Total          int            `json:"total"`
	MaxDepth       int            `json:"max_depth"`
	BooleanSchemas int            `json:"boolean_schemas"`
	ByKeyword      map[string]int `json:"by_keyword,omitempty"`
}

func handleSchemaStats(_ context.Context, _ *mcp.CallToolRequest, input schemaStatsInput) (*mcp.CallToolResult, any, error) {
	opts, err := walkOptions(input.MaxDepth)
	if err != nil {
		return errResult(err), nil, nil
	}

	result, err := input.Schema.resolve()
	if err != nil {
		return errResult(err), nil, nil
	}
	start, _, err := startAt(result, input.Pointer)
	if err != nil {
		return errResult(err), nil, nil
	}

	stats, err := traverse.ComputeStats(start, opts...)
	if err != nil {
		return errResult(err), nil, nil
	}

	return nil, schemaStatsOutput{
		SourceFormat:   string(result.SourceFormat),
		SourceSize:     parser.FormatBytes(result.SourceSize),
		Total:          stats.Total,
		MaxDepth:       stats.MaxDepth,
		BooleanSchemas: stats.BooleanSchemas,
		ByKeyword:      stats.ByKeyword,
	}, nil
}

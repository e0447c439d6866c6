package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/schemawalk/internal/nodeutil"
)

type getSchemaInput struct {
	Schema  schemaInput `json:"schema"  jsonschema:"The JSON Schema document"`
	Pointer string      `json:"pointer" jsonschema:"JSON pointer of the value to return (e.g. /definitions/Pet). Empty returns the whole document."`
}

type getSchemaOutput struct {
	Pointer string          `json:"pointer"`
	Kind    string          `json:"kind"`
	Type    string          `json:"type,omitempty"`
	Value   json.RawMessage `json:"value"`
}

func handleGetSchema(_ context.Context, _ *mcp.CallToolRequest, input getSchemaInput) (*mcp.CallToolResult, any, error) {
	result, err := input.Schema.resolve()
	if err != nil {
		return errResult(err), nil, nil
	}
	node, ptr, err := startAt(result, input.Pointer)
	if err != nil {
		return errResult(err), nil, nil
	}

	raw, err := rawSchema(node)
	if err != nil {
		return errResult(fmt.Errorf("rendering %s: %w", input.Pointer, err)), nil, nil
	}
	return nil, getSchemaOutput{
		Pointer: ptr,
		Kind:    nodeutil.Kind(node),
		Type:    nodeutil.SchemaType(node),
		Value:   raw,
	}, nil
}

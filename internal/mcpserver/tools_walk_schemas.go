package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/schemawalk/internal/nodeutil"
	"github.com/erraggy/schemawalk/traverse"
)

type walkSchemasInput struct {
	Schema   schemaInput `json:"schema"              jsonschema:"The JSON Schema document to walk"`
	Pointer  string      `json:"pointer,omitempty"   jsonschema:"JSON pointer of the schema to start from (e.g. /definitions/Pet). Defaults to the document root."`
	Keyword  string      `json:"keyword,omitempty"   jsonschema:"Only list schemas found under this parent keyword (e.g. properties\\, allOf\\, items)"`
	Type     string      `json:"type,omitempty"      jsonschema:"Filter by the schema's type keyword (object\\, array\\, string\\, etc.)"`
	Prefix   string      `json:"prefix,omitempty"    jsonschema:"Only list schemas whose pointer equals or is below this pointer"`
	Detail   bool        `json:"detail,omitempty"    jsonschema:"Return full subschemas. WARNING: produces large output without filters on big documents."`
	GroupBy  string      `json:"group_by,omitempty"  jsonschema:"Group results and return counts instead of individual items. Values: keyword\\, type\\, depth"`
	MaxDepth int         `json:"max_depth,omitempty" jsonschema:"Fail when schemas nest deeper than this. Defaults to SCHEMAWALK_MAX_DEPTH (0 = unlimited)."`
	Limit    int         `json:"limit,omitempty"     jsonschema:"Maximum results (default 100)"`
	Offset   int         `json:"offset,omitempty"    jsonschema:"Skip the first N results (for pagination)"`
}

type schemaSummary struct {
	Pointer       string   `json:"pointer"`
	Keyword       string   `json:"keyword,omitempty"`
	Key           string   `json:"key,omitempty"`
	Type          string   `json:"type,omitempty"`
	Depth         int      `json:"depth"`
	PropertyCount int      `json:"property_count,omitempty"`
	Required      []string `json:"required,omitempty"`
	Ref           string   `json:"ref,omitempty"`
}

type schemaDetail struct {
	Pointer string          `json:"pointer"`
	Keyword string          `json:"keyword,omitempty"`
	Schema  json.RawMessage `json:"schema"`
}

type walkSchemasOutput struct {
	Total     int             `json:"total"`
	Matched   int             `json:"matched"`
	Returned  int             `json:"returned"`
	Summaries []schemaSummary `json:"summaries,omitempty"`
	Schemas   []schemaDetail  `json:"schemas,omitempty"`
	Groups    []groupCount    `json:"groups,omitempty"`
}

func handleWalkSchemas(_ context.Context, _ *mcp.CallToolRequest, input walkSchemasInput) (*mcp.CallToolResult, any, error) {
	if err := validateGroupBy(input.GroupBy, input.Detail, []string{"keyword", "type", "depth"}); err != nil {
		return errResult(err), nil, nil
	}
	if input.Keyword != "" && !traverse.IsKeyword(input.Keyword) {
		return errResult(fmt.Errorf("unknown keyword %q; valid keywords: %s", input.Keyword, strings.Join(traverse.Keywords(), ", "))), nil, nil
	}
	opts, err := walkOptions(input.MaxDepth)
	if err != nil {
		return errResult(err), nil, nil
	}

	result, err := input.Schema.resolve()
	if err != nil {
		return errResult(err), nil, nil
	}
	start, base, err := startAt(result, input.Pointer)
	if err != nil {
		return errResult(err), nil, nil
	}

	collector, err := traverse.CollectSchemas(start, opts...)
	if err != nil {
		return errResult(err), nil, nil
	}

	filtered := filterWalkSchemas(collector.All, base, input)

	if input.GroupBy != "" {
		groups := groupAndSort(filtered, func(info *traverse.SchemaInfo) string {
			switch strings.ToLower(input.GroupBy) {
			case "keyword":
				if info.Keyword == "" {
					return "(root)"
				}
				return info.Keyword
			case "type":
				return nodeutil.SchemaType(info.Node)
			default:
				return strconv.Itoa(info.Depth)
			}
		})
		paged := paginate(groups, input.Offset, input.Limit)
		return nil, walkSchemasOutput{
			Total:    len(collector.All),
			Matched:  len(filtered),
			Returned: len(paged),
			Groups:   paged,
		}, nil
	}

	limit := input.Limit
	if input.Detail {
		limit = detailLimit(limit)
	}
	returned := paginate(filtered, input.Offset, limit)

	output := walkSchemasOutput{
		Total:    len(collector.All),
		Matched:  len(filtered),
		Returned: len(returned),
	}

	if input.Detail {
		output.Schemas = makeSlice[schemaDetail](len(returned))
		for _, info := range returned {
			raw, err := rawSchema(info.Node)
			if err != nil {
				return errResult(err), nil, nil
			}
			output.Schemas = append(output.Schemas, schemaDetail{
				Pointer: base + info.Pointer,
				Keyword: info.Keyword,
				Schema:  raw,
			})
		}
		return nil, output, nil
	}

	output.Summaries = makeSlice[schemaSummary](len(returned))
	for _, info := range returned {
		output.Summaries = append(output.Summaries, summarize(info, base))
	}
	return nil, output, nil
}

// filterWalkSchemas applies keyword, type, and pointer prefix filters.
func filterWalkSchemas(schemas []*traverse.SchemaInfo, base string, input walkSchemasInput) []*traverse.SchemaInfo {
	prefix := strings.TrimSuffix(strings.TrimPrefix(input.Prefix, "#"), "/")

	var filtered []*traverse.SchemaInfo
	for _, info := range schemas {
		if input.Keyword != "" && info.Keyword != input.Keyword {
			continue
		}
		if input.Type != "" && !schemaTypeMatches(info.Node, input.Type) {
			continue
		}
		if prefix != "" && !pointerHasPrefix(base+info.Pointer, prefix) {
			continue
		}
		filtered = append(filtered, info)
	}
	return filtered
}

// pointerHasPrefix reports whether ptr is prefix or a descendant of it.
func pointerHasPrefix(ptr, prefix string) bool {
	return ptr == prefix || strings.HasPrefix(ptr, prefix+"/")
}

// schemaTypeMatches checks the type keyword, which may be a string or an
// array of strings.
func schemaTypeMatches(node *yaml.Node, filter string) bool {
	t := nodeutil.Get(node, "type")
	switch {
	case t == nil:
		return false
	case nodeutil.IsSequence(t):
		for _, item := range t.Content {
			if strings.EqualFold(item.Value, filter) {
				return true
			}
		}
		return false
	default:
		return strings.EqualFold(t.Value, filter)
	}
}

func summarize(info *traverse.SchemaInfo, base string) schemaSummary {
	s := schemaSummary{
		Pointer: base + info.Pointer,
		Keyword: info.Keyword,
		Key:     info.Key,
		Type:    nodeutil.SchemaType(info.Node),
		Depth:   info.Depth,
	}
	if props := nodeutil.Get(info.Node, "properties"); nodeutil.IsMapping(props) {
		s.PropertyCount = len(nodeutil.Entries(props))
	}
	if req := nodeutil.Get(info.Node, "required"); nodeutil.IsSequence(req) {
		for _, item := range req.Content {
			if item.Kind == yaml.ScalarNode {
				s.Required = append(s.Required, item.Value)
			}
		}
	}
	if ref := nodeutil.Get(info.Node, "$ref"); ref != nil && ref.Kind == yaml.ScalarNode {
		s.Ref = ref.Value
	}
	return s
}

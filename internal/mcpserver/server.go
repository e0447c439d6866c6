// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes schemawalk capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/schemawalk"
	"github.com/erraggy/schemawalk/internal/pathutil"
	"github.com/erraggy/schemawalk/parser"
	"github.com/erraggy/schemawalk/traverse"
)

const serverInstructions = `schemawalk MCP server: walks JSON Schema documents and reports their subschemas.

Schemas are visited depth-first through definitions, properties, patternProperties, dependencies, items, allOf, anyOf, oneOf, additionalItems, contains, additionalProperties, propertyNames, not, if, then and else. $ref is not resolved and boolean schemas are counted but not listed.

Configuration: defaults are configurable via SCHEMAWALK_* environment variables set in your MCP client config.

Key settings:
- SCHEMAWALK_WALK_LIMIT (default: 100): default result limit for walk_schemas
- SCHEMAWALK_WALK_DETAIL_LIMIT (default: 25): default limit in detail mode
- SCHEMAWALK_MAX_LIMIT (default: 1000): upper bound for any limit
- SCHEMAWALK_MAX_DEPTH (default: 0, unlimited): nesting limit for walks
- SCHEMAWALK_CACHE_ENABLED (default: true): disable schema caching entirely

Caching: parsed schemas are cached per session. File entries use path+mtime as key (auto-invalidated on change). URL entries are cached with a shorter TTL.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		schemaCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "schemawalk", Version: schemawalk.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "walk_schemas",
		Description: "Walk a JSON Schema document depth-first and list every subschema. Returns summaries (JSON pointer, parent keyword, key, type, depth) in pre-order, or full subschemas with detail=true. Filter by keyword (e.g. properties), type, or pointer prefix; use pointer to start the walk at a nested schema. Use group_by (keyword, type or depth) to get distribution counts instead of individual items. Default limit is configurable via SCHEMAWALK_WALK_LIMIT (default 100, 25 in detail mode).",
	}, handleWalkSchemas)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "schema_stats",
		Description: "Summarize a JSON Schema document: number of subschemas, deepest nesting level, counts per parent keyword and number of boolean schemas. Cheap to call on large documents; use it before walk_schemas to pick filters.",
	}, handleSchemaStats)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_schema",
		Description: "Return the value at a JSON pointer in a schema document (e.g. /definitions/Address or /properties/tags/items). Use pointers reported by walk_schemas.",
	}, handleGetSchema)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.WalkLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.WalkLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// detailLimit returns a lower default limit for detail mode output.
func detailLimit(limit int) int {
	if limit <= 0 {
		return cfg.WalkDetailLimit
	}
	return limit
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// pathPattern matches absolute filesystem paths in error messages.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount represents a single group in group_by results.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort groups items by key, sorts by count descending (ties
// broken alphabetically by key), and returns the sorted groups.
func groupAndSort[T any](items []T, keyFn func(T) string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		counts[keyFn(item)]++
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// validateGroupBy checks that group_by is a valid value and is not combined with detail.
func validateGroupBy(groupBy string, detail bool, allowed []string) error {
	if groupBy == "" {
		return nil
	}
	if detail {
		return fmt.Errorf("cannot use both group_by and detail")
	}
	for _, a := range allowed {
		if strings.EqualFold(groupBy, a) {
			return nil
		}
	}
	return fmt.Errorf("invalid group_by value %q; valid values: %s", groupBy, strings.Join(allowed, ", "))
}

// startAt resolves an optional JSON pointer against the parsed root.
func startAt(result *parser.ParseResult, pointer string) (*yaml.Node, string, error) {
	if pointer == "" || pointer == "#" {
		return result.Root, "", nil
	}
	node, err := pathutil.Lookup(result.Root, pointer)
	if err != nil {
		return nil, "", err
	}
	return node, strings.TrimPrefix(pointer, "#"), nil
}

// walkOptions returns traverse options for a tool call. A positive maxDepth
// overrides the configured default.
func walkOptions(maxDepth int) ([]traverse.Option, error) {
	if maxDepth < 0 {
		return nil, fmt.Errorf("max_depth must not be negative")
	}
	if maxDepth == 0 {
		maxDepth = cfg.MaxDepth
	}
	return []traverse.Option{traverse.WithMaxDepth(maxDepth)}, nil
}

// rawSchema renders node as order-preserving JSON.
func rawSchema(node *yaml.Node) (json.RawMessage, error) {
	data, err := parser.MarshalJSON(node, "")
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

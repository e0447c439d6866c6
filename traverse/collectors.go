package traverse

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/schemawalk/internal/nodeutil"
)

// SchemaInfo contains information about a collected schema.
type SchemaInfo struct {
	// Node is the schema object.
	Node *yaml.Node

	// Pointer is the JSON Pointer of the schema. Empty for the root.
	Pointer string

	// Keyword is the parent keyword under which the schema was found.
	// Empty for the root.
	Keyword string

	// Key is the property name or array index under which the schema was
	// found. Empty for the root and for single-schema keywords.
	Key string

	// Depth is the nesting depth. The root has depth 0.
	Depth int
}

// SchemaCollector holds schemas collected during a walk.
type SchemaCollector struct {
	// All contains all schemas in pre-order.
	All []*SchemaInfo

	// ByPointer provides lookup by JSON Pointer.
	ByPointer map[string]*SchemaInfo

	// ByKeyword groups schemas by parent keyword. The root is not included.
	ByKeyword map[string][]*SchemaInfo
}

// CollectSchemas walks root and collects every visited schema.
// Options other than hooks (max depth, logger) are honored; hooks passed in
// opts are replaced by the collector's own.
func CollectSchemas(root *yaml.Node, opts ...Option) (*SchemaCollector, error) {
	collector := &SchemaCollector{
		All:       make([]*SchemaInfo, 0),
		ByPointer: make(map[string]*SchemaInfo),
		ByKeyword: make(map[string][]*SchemaInfo),
	}

	opts = append(opts[:len(opts):len(opts)], WithCallbacks(Callbacks{
		Pre: func(v *Visit) error {
			info := &SchemaInfo{
				Node:    v.Node,
				Pointer: v.Pointer,
				Depth:   v.Depth(),
			}
			info.Key, _ = v.Key()
			if kw, ok := v.ParentKeyword(); ok {
				info.Keyword = kw
				collector.ByKeyword[kw] = append(collector.ByKeyword[kw], info)
			}
			collector.All = append(collector.All, info)
			collector.ByPointer[v.Pointer] = info
			return nil
		},
	}))

	if err := Traverse(root, opts...); err != nil {
		return nil, err
	}
	return collector, nil
}

// Stats summarizes the shape of a schema document.
type Stats struct {
	// Total is the number of schema objects visited, including the root.
	Total int `json:"total" yaml:"total"`

	// MaxDepth is the deepest nesting level reached. The root is level 0.
	MaxDepth int `json:"max_depth" yaml:"max_depth"`

	// ByKeyword counts visited schemas per parent keyword.
	ByKeyword map[string]int `json:"by_keyword" yaml:"by_keyword"`

	// BooleanSchemas counts true/false schemas found in schema positions.
	// They are never visited, so they are not part of Total.
	BooleanSchemas int `json:"boolean_schemas" yaml:"boolean_schemas"`
}

// ComputeStats walks root and returns counts of its subschemas.
func ComputeStats(root *yaml.Node, opts ...Option) (*Stats, error) {
	stats := &Stats{ByKeyword: make(map[string]int)}

	opts = append(opts[:len(opts):len(opts)], WithCallbacks(Callbacks{
		Pre: func(v *Visit) error {
			stats.Total++
			if d := v.Depth(); d > stats.MaxDepth {
				stats.MaxDepth = d
			}
			if kw, ok := v.ParentKeyword(); ok {
				stats.ByKeyword[kw]++
			}
			stats.BooleanSchemas += countBooleanChildren(v.Node)
			return nil
		},
	}))

	if err := Traverse(root, opts...); err != nil {
		return nil, err
	}
	return stats, nil
}

// countBooleanChildren counts boolean schemas in the schema positions of node,
// using the same keyword rules as the walk.
func countBooleanChildren(node *yaml.Node) int {
	n := 0
	for _, kw := range MapKeywords {
		for _, e := range nodeutil.Entries(nodeutil.Get(node, kw)) {
			if nodeutil.IsBool(e.Value) {
				n++
			}
		}
	}
	for _, kw := range ArrayKeywords {
		if val := nodeutil.Get(node, kw); nodeutil.IsSequence(val) {
			for _, item := range val.Content {
				if nodeutil.IsBool(item) {
					n++
				}
			}
		}
	}
	for _, kw := range SchemaKeywords {
		if nodeutil.IsBool(nodeutil.Get(node, kw)) {
			n++
		}
	}
	return n
}

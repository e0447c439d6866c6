// Package nodeutil provides small helpers for inspecting yaml.Node trees
// that hold JSON Schema documents.
package nodeutil

import (
	"strings"

	"go.yaml.in/yaml/v4"
)

// Entry is a single key/value pair of a mapping node.
type Entry struct {
	Key   string
	Value *yaml.Node
}

// Unwrap returns the content of a document node, or n itself for any other kind.
func Unwrap(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		n = n.Content[0]
	}
	return n
}

// IsMapping reports whether n is a mapping (JSON object) node.
func IsMapping(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.MappingNode
}

// IsSequence reports whether n is a sequence (JSON array) node.
func IsSequence(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.SequenceNode
}

// Entries returns the key/value pairs of a mapping node in source order.
// A key that occurs more than once keeps the position of its first
// occurrence and the value of its last, matching how JSON decoders treat
// duplicate object keys. Non-scalar keys are ignored.
func Entries(n *yaml.Node) []Entry {
	if !IsMapping(n) {
		return nil
	}

	entries := make([]Entry, 0, len(n.Content)/2)
	var seen map[string]int
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		if k.Kind != yaml.ScalarNode {
			continue
		}
		if pos, ok := seen[k.Value]; ok {
			entries[pos].Value = n.Content[i+1]
			continue
		}
		if seen == nil {
			seen = make(map[string]int, len(n.Content)/2)
		}
		seen[k.Value] = len(entries)
		entries = append(entries, Entry{Key: k.Value, Value: n.Content[i+1]})
	}
	return entries
}

// Get returns the value stored under key in a mapping node, or nil.
// When the key is duplicated the last value wins.
func Get(n *yaml.Node, key string) *yaml.Node {
	if !IsMapping(n) {
		return nil
	}
	var v *yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		if k := n.Content[i]; k.Kind == yaml.ScalarNode && k.Value == key {
			v = n.Content[i+1]
		}
	}
	return v
}

// Kind returns the JSON kind of a node: "object", "array", "boolean",
// "number", "string", "null" or "alias". Nil nodes report "null".
func Kind(n *yaml.Node) string {
	n = Unwrap(n)
	if n == nil {
		return "null"
	}
	switch n.Kind {
	case yaml.MappingNode:
		return "object"
	case yaml.SequenceNode:
		return "array"
	case yaml.AliasNode:
		return "alias"
	}
	switch n.ShortTag() {
	case "!!bool":
		return "boolean"
	case "!!int", "!!float":
		return "number"
	case "!!null":
		return "null"
	default:
		return "string"
	}
}

// IsBool reports whether n is a boolean scalar, i.e. a boolean schema.
func IsBool(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.ScalarNode && n.ShortTag() == "!!bool"
}

// SchemaType returns the "type" keyword of a schema object for display.
// Array forms are joined with ", ". Returns "" when absent.
func SchemaType(n *yaml.Node) string {
	t := Get(n, "type")
	if t == nil {
		return ""
	}
	switch t.Kind {
	case yaml.ScalarNode:
		return t.Value
	case yaml.SequenceNode:
		parts := make([]string, 0, len(t.Content))
		for _, c := range t.Content {
			if c.Kind == yaml.ScalarNode {
				parts = append(parts, c.Value)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

package parser

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/schemawalk/internal/nodeutil"
)

// MarshalJSON writes node as JSON, keeping the key order of every mapping.
// Alias nodes are expanded. An empty indent produces compact output.
func MarshalJSON(node *yaml.Node, indent string) ([]byte, error) {
	var buf bytes.Buffer
	if err := marshalNodeAsJSON(&buf, node); err != nil {
		return nil, fmt.Errorf("parser: marshaling JSON: %w", err)
	}
	if indent == "" {
		return buf.Bytes(), nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", indent); err != nil {
		return nil, fmt.Errorf("parser: indenting JSON: %w", err)
	}
	return out.Bytes(), nil
}

// MarshalYAML writes node as block-style YAML with two-space indentation.
// Flow collections and quoted scalars, as decoded from JSON input, are
// written in plain block style; the tree itself is not modified.
// Passing ParseResult.Document instead of Root keeps document comments.
func MarshalYAML(node *yaml.Node) ([]byte, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: marshaling YAML: nil node")
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(blockStyle(node)); err != nil {
		return nil, fmt.Errorf("parser: marshaling YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("parser: marshaling YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// blockStyle returns a copy of n without flow and quoting styles.
// Alias targets are shared with the original tree.
func blockStyle(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	cp := *n
	cp.Style &^= yaml.FlowStyle | yaml.DoubleQuotedStyle | yaml.SingleQuotedStyle
	if len(n.Content) > 0 {
		cp.Content = make([]*yaml.Node, len(n.Content))
		for i, c := range n.Content {
			cp.Content[i] = blockStyle(c)
		}
	}
	return &cp
}

// marshalNodeAsJSON writes a yaml.Node to a buffer as JSON.
func marshalNodeAsJSON(buf *bytes.Buffer, node *yaml.Node) error {
	if node == nil {
		buf.WriteString("null")
		return nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return marshalNodeAsJSON(buf, node.Content[0])

	case yaml.AliasNode:
		return marshalNodeAsJSON(buf, node.Alias)

	case yaml.MappingNode:
		buf.WriteByte('{')
		for i, e := range nodeutil.Entries(node) {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, e.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := marshalNodeAsJSON(buf, e.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range node.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := marshalNodeAsJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		return writeJSON(buf, v)
	}
}

// writeJSON encodes v without HTML escaping so that patterns and
// descriptions round-trip byte for byte.
func writeJSON(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1) // Encode appends a newline
	return nil
}

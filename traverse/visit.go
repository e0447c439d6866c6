package traverse

import "go.yaml.in/yaml/v4"

// Visit describes the schema node a hook is called for.
//
// The same *Visit is passed to the pre and post hooks of a node. Hooks must
// treat it as read-only; the nodes it points to may be modified.
type Visit struct {
	// Node is the schema object being visited. Always a yaml.MappingNode.
	Node *yaml.Node

	// Pointer is the JSON Pointer of Node relative to Root. Empty at the root.
	// Example: "/properties/address/allOf/0"
	Pointer string

	// Root is the root schema of the traversal. It is the same for every visit.
	Root *yaml.Node

	// Parent is the visit of the schema that contains Node, or nil at the root.
	Parent *Visit

	keyword string
	key     string
	index   int
	hasKey  bool
	depth   int
}

// IsRoot reports whether this is the visit of the root schema.
func (v *Visit) IsRoot() bool {
	return v.Parent == nil
}

// ParentPointer returns the JSON Pointer of the parent schema.
// ok is false at the root.
func (v *Visit) ParentPointer() (ptr string, ok bool) {
	if v.Parent == nil {
		return "", false
	}
	return v.Parent.Pointer, true
}

// ParentKeyword returns the keyword of the parent schema under which Node
// was found, e.g. "properties" or "not". ok is false at the root.
func (v *Visit) ParentKeyword() (keyword string, ok bool) {
	if v.Parent == nil {
		return "", false
	}
	return v.keyword, true
}

// ParentNode returns the parent schema node. ok is false at the root.
func (v *Visit) ParentNode() (*yaml.Node, bool) {
	if v.Parent == nil {
		return nil, false
	}
	return v.Parent.Node, true
}

// Key returns the property name (for map keywords) or the decimal array
// index (for array keywords) under which Node was found.
// ok is false at the root and for single-schema keywords such as "not".
func (v *Visit) Key() (key string, ok bool) {
	return v.key, v.hasKey
}

// Index returns the array index under which Node was found.
// ok is false unless the parent keyword held an array of schemas.
func (v *Visit) Index() (int, bool) {
	if !v.hasKey || v.index < 0 {
		return 0, false
	}
	return v.index, true
}

// Depth returns the number of ancestors. The root has depth 0.
func (v *Visit) Depth() int {
	return v.depth
}

// Ancestors returns all ancestors from immediate parent to root.
// Returns nil at the root.
func (v *Visit) Ancestors() []*Visit {
	if v.depth == 0 {
		return nil
	}
	ancestors := make([]*Visit, 0, v.depth)
	for p := v.Parent; p != nil; p = p.Parent {
		ancestors = append(ancestors, p)
	}
	return ancestors
}

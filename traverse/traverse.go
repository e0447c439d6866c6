package traverse

import (
	"errors"
	"strconv"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/schemawalk/internal/nodeutil"
	"github.com/erraggy/schemawalk/internal/options"
	"github.com/erraggy/schemawalk/internal/pathutil"
	"github.com/erraggy/schemawalk/parser"
	"github.com/erraggy/schemawalk/schemaerrors"
)

// Hook is called for every schema object reached by the walk.
//
// Returning a non-nil error aborts the walk immediately: no further hooks
// run, including the post hooks of the node and its ancestors, and the error
// is returned unchanged from Traverse. Two sentinel values are treated
// specially, see SkipChildren and Stop.
type Hook func(v *Visit) error

// Callbacks groups the two optional hooks of a traversal.
type Callbacks struct {
	// Pre is called before the node's children are visited.
	Pre Hook
	// Post is called after all of the node's children were visited.
	Post Hook
}

var (
	// SkipChildren, returned from a pre hook, skips the node's children and
	// its post hook. The walk continues with the next sibling. Returned from
	// a post hook it is ignored.
	SkipChildren = errors.New("skip children")

	// Stop ends the walk without error. Traverse returns nil.
	Stop = errors.New("stop traversal")
)

// Traverse walks root depth-first and calls the configured hooks for every
// schema object reachable through a composition keyword.
//
// For each schema object the pre hook runs first, then the children are
// visited in this order: MapKeywords entries in document order, ArrayKeywords
// elements in array order, then SchemaKeywords values. The post hook runs
// last. Values that are not objects (boolean schemas, scalars, arrays in a
// schema position, aliases) are skipped without a hook call.
//
// A yaml.DocumentNode root is unwrapped to its content. A nil root is a no-op.
// The tree is never modified by Traverse itself.
func Traverse(root *yaml.Node, opts ...Option) error {
	return run(root, newConfig(opts))
}

// TraverseFunc is Traverse with a bare pre hook. pre is applied after opts,
// so it replaces any pre hook set through WithPre or WithCallbacks. A nil
// pre leaves the options untouched.
func TraverseFunc(root *yaml.Node, pre Hook, opts ...Option) error {
	cfg := newConfig(opts)
	if pre != nil {
		cfg.pre = pre
	}
	return run(root, cfg)
}

func run(root *yaml.Node, cfg *config) error {
	if err := options.ValidateNonNegative("max depth", int64(cfg.maxDepth)); err != nil {
		return err
	}

	w := &walker{
		pre:      cfg.pre,
		post:     cfg.post,
		maxDepth: cfg.maxDepth,
		logger:   cfg.logger,
	}
	if w.logger != nil && cfg.allKeys {
		w.logger.Debug("allKeys requested; only the fixed keyword sets are traversed")
	}

	root = nodeutil.Unwrap(root)
	if !nodeutil.IsMapping(root) {
		w.skipped("", root)
		return nil
	}

	err := w.walk(&Visit{Node: root, Root: root, index: -1})
	if err == Stop { //nolint:errorlint // sentinel identity, like fs.SkipDir
		return nil
	}
	return err
}

// walker holds the per-call state of one traversal.
type walker struct {
	pre      Hook
	post     Hook
	maxDepth int
	logger   parser.Logger
}

// walk visits one schema object. v.Node is known to be a mapping node.
func (w *walker) walk(v *Visit) error {
	if w.maxDepth > 0 && v.depth > w.maxDepth {
		if w.logger != nil {
			w.logger.Debug("max depth exceeded", "pointer", v.Pointer, "depth", v.depth, "limit", w.maxDepth)
		}
		return &schemaerrors.ResourceLimitError{
			ResourceType: "nesting_depth",
			Pointer:      v.Pointer,
			Limit:        int64(w.maxDepth),
			Actual:       int64(v.depth),
		}
	}

	if w.pre != nil {
		if err := w.pre(v); err != nil {
			if err == SkipChildren { //nolint:errorlint // sentinel identity
				return nil
			}
			return err
		}
	}

	node := v.Node
	for _, kw := range MapKeywords {
		val := nodeutil.Get(node, kw)
		if val == nil {
			continue
		}
		if !nodeutil.IsMapping(val) {
			w.malformed(v.Pointer, kw, val)
			continue
		}
		for _, e := range nodeutil.Entries(val) {
			if !nodeutil.IsMapping(e.Value) {
				w.skipped(pathutil.Append(v.Pointer, kw, e.Key), e.Value)
				continue
			}
			child := w.child(v, e.Value, pathutil.Append(v.Pointer, kw, e.Key), kw)
			child.key, child.hasKey = e.Key, true
			if err := w.walk(child); err != nil {
				return err
			}
		}
	}

	for _, kw := range ArrayKeywords {
		val := nodeutil.Get(node, kw)
		if !nodeutil.IsSequence(val) {
			continue
		}
		for i, item := range val.Content {
			ptr := pathutil.AppendIndex(v.Pointer+"/"+kw, i)
			if !nodeutil.IsMapping(item) {
				w.skipped(ptr, item)
				continue
			}
			child := w.child(v, item, ptr, kw)
			child.key, child.index, child.hasKey = strconv.Itoa(i), i, true
			if err := w.walk(child); err != nil {
				return err
			}
		}
	}

	for _, kw := range SchemaKeywords {
		val := nodeutil.Get(node, kw)
		if val == nil || nodeutil.IsSequence(val) {
			continue
		}
		ptr := v.Pointer + "/" + kw
		if !nodeutil.IsMapping(val) {
			w.skipped(ptr, val)
			continue
		}
		if err := w.walk(w.child(v, val, ptr, kw)); err != nil {
			return err
		}
	}

	if w.post != nil {
		if err := w.post(v); err != nil && err != SkipChildren { //nolint:errorlint // sentinel identity
			return err
		}
	}
	return nil
}

func (w *walker) child(parent *Visit, node *yaml.Node, ptr, keyword string) *Visit {
	return &Visit{
		Node:    node,
		Pointer: ptr,
		Root:    parent.Root,
		Parent:  parent,
		keyword: keyword,
		index:   -1,
		depth:   parent.depth + 1,
	}
}

// skipped records a value in a schema position that is not a schema object.
func (w *walker) skipped(ptr string, n *yaml.Node) {
	if w.logger == nil {
		return
	}
	w.logger.Debug("skipping non-object schema", "pointer", ptr, "kind", nodeutil.Kind(n))
}

// malformed records a map keyword whose value is not an object.
func (w *walker) malformed(ptr, keyword string, n *yaml.Node) {
	if w.logger == nil {
		return
	}
	w.logger.Debug("ignoring keyword with non-object value", "pointer", ptr, "keyword", keyword, "kind", nodeutil.Kind(n))
}

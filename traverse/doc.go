// Package traverse walks JSON Schema documents depth-first and calls hooks
// for every nested subschema.
//
// Schemas are yaml.Node trees as produced by the parser package, so object
// keys are visited in the order they were written.
//
// # Quick Start
//
// Print the JSON Pointer of every subschema:
//
//	result, _ := parser.Parse("schema.json")
//
//	err := traverse.TraverseFunc(result.Root, func(v *traverse.Visit) error {
//	    fmt.Println(v.Pointer)
//	    return nil
//	})
//
// # Pre and Post Hooks
//
// A pre hook runs before a schema's children are visited and a post hook
// after all of them were. Together they give a strict pre-order/post-order
// walk in a single pass:
//
//	traverse.Traverse(root,
//	    traverse.WithPre(func(v *traverse.Visit) error { depth++; return nil }),
//	    traverse.WithPost(func(v *traverse.Visit) error { depth--; return nil }),
//	)
//
// [TraverseFunc] takes a bare pre hook that overrides any pre hook given in
// the options.
//
// # Traversal Rules
//
// Only three groups of keywords are followed, in this order:
//
//   - [MapKeywords]: definitions, properties, patternProperties, dependencies.
//     Every object-valued entry is visited in document order.
//   - [ArrayKeywords]: items, allOf, anyOf, oneOf, when the value is an array.
//     Every element is visited in array order.
//   - [SchemaKeywords]: additionalItems, items, contains, additionalProperties,
//     propertyNames, not, if, then, else, when the value is not an array.
//
// Boolean schemas and any other non-object value are skipped without a hook
// call. $ref is not resolved.
//
// # Visit Context
//
// Every hook receives a [*Visit] with the node, its JSON Pointer and the root.
// Parent information is returned by accessors whose second result is false
// at the root:
//
//	if kw, ok := v.ParentKeyword(); ok && kw == "properties" {
//	    name, _ := v.Key()
//	    fmt.Println("property", name)
//	}
//
// # Flow Control
//
// Hooks return an error. Any error other than the two sentinels below
// aborts the walk and is returned unchanged by Traverse:
//
//   - [SkipChildren]: from a pre hook, skip the node's children and its post hook
//   - [Stop]: end the walk; Traverse returns nil
//
// # Mutation
//
// Hooks receive the live nodes. Changes made by a pre hook to the current
// node are seen when its children are visited.
//
// # Collectors
//
// [CollectSchemas] and [ComputeStats] are ready-made walks that gather every
// subschema or summary counts.
package traverse

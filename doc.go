// Package schemawalk provides tools for walking JSON Schema documents.
//
// A JSON Schema is a tree: subschemas hang off composition keywords such as
// properties, allOf or not. schemawalk visits every one of them depth-first
// and calls your hooks before and after each subschema's children.
//
// # Overview
//
// The library consists of three packages:
//
//   - parser: Parse JSON or YAML schema documents into order-preserving trees
//   - traverse: Walk a schema tree with pre and post hooks
//   - schemaerrors: Typed errors shared by the other packages
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/erraggy/schemawalk
//
// Install the command-line tool:
//
//	go install github.com/erraggy/schemawalk/cmd/schemawalk@latest
//
// # Quick Start
//
// Parse a schema and print the JSON Pointer of every subschema:
//
//	import (
//		"github.com/erraggy/schemawalk/parser"
//		"github.com/erraggy/schemawalk/traverse"
//	)
//
//	result, err := parser.Parse("schema.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = traverse.TraverseFunc(result.Root, func(v *traverse.Visit) error {
//		fmt.Println(v.Pointer)
//		return nil
//	})
//
// Track nesting with a pre and a post hook:
//
//	depth := 0
//	err = traverse.Traverse(result.Root,
//		traverse.WithPre(func(v *traverse.Visit) error { depth++; return nil }),
//		traverse.WithPost(func(v *traverse.Visit) error { depth--; return nil }),
//	)
//
// # Parser Package
//
// The parser package reads schema files, URLs, readers or byte slices.
// JSON and YAML input are decoded into *yaml.Node trees so object keys keep
// their document order. MarshalJSON and MarshalYAML write a (possibly
// modified) tree back out.
//
// # Traverse Package
//
// The traverse package follows the schema-valued keywords of JSON Schema
// draft-07: definitions, properties, patternProperties and dependencies
// (objects of schemas), items, allOf, anyOf and oneOf (arrays of schemas),
// and additionalItems, items, contains, additionalProperties, propertyNames,
// not, if, then and else (single schemas). Boolean schemas are not visited
// and $ref is not resolved.
//
// Hooks return an error to abort the walk; traverse.SkipChildren and
// traverse.Stop control the walk without failing it.
//
// # Command-Line Tool
//
// The schemawalk command lists subschemas, prints statistics and serves the
// same operations over the Model Context Protocol:
//
//	schemawalk walk schema.json
//	schemawalk walk --keyword properties --format json schema.yaml
//	schemawalk stats schema.json
//	schemawalk mcp
package schemawalk

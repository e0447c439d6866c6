// Package parser loads JSON Schema documents into order-preserving
// yaml.Node trees.
//
// JSON and YAML inputs are both decoded with go.yaml.in/yaml/v4, so the key
// order of every object is kept exactly as written. The resulting tree is
// what the traverse package walks, and what callers mutate in place when
// they rewrite a schema.
//
// # Quick Start
//
//	result, err := parser.Parse("schema.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.SourceFormat, parser.FormatBytes(result.SourceSize))
//
// Inputs may also be given as bytes, an io.Reader, or an http(s) URL:
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithBytes(data),
//	    parser.WithLogger(parser.NewSlogAdapter(slog.Default())),
//	)
//
// # Output
//
// [MarshalJSON] and [MarshalYAML] write a (possibly modified) tree back out
// with the original key order.
package parser

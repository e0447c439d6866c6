// Package schemaerrors provides structured error types for schemawalk.
//
// Import path: github.com/erraggy/schemawalk/schemaerrors
//
// Callers can use [errors.Is] with the sentinel values and [errors.As] with
// the typed errors to tell apart the few failure categories the library has.
//
// # Error Types
//
//   - [ParseError]: JSON/YAML decoding failures and empty documents
//   - [ResourceLimitError]: a configured limit such as the maximum nesting depth was exceeded
//   - [ConfigError]: invalid options or input selection
//
// Errors returned by caller-supplied traversal hooks are never wrapped in one
// of these types; they reach the caller unchanged.
//
// # Usage
//
//	result, err := parser.Parse("schema.json")
//	if err != nil {
//	    var perr *schemaerrors.ParseError
//	    if errors.As(err, &perr) {
//	        fmt.Printf("line %d: %s\n", perr.Line, perr.Message)
//	    }
//	}
package schemaerrors

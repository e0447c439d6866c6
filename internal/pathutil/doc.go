// Package pathutil provides JSON Pointer (RFC 6901) helpers for schema
// traversal.
//
// Pointers are built one escaped token at a time with [Append]:
//
//	ptr := pathutil.Append("", "properties", "a/b") // "/properties/a~1b"
//
// [Split] turns a pointer back into its unescaped tokens, and [Lookup]
// resolves a pointer against a decoded yaml.Node tree:
//
//	node, err := pathutil.Lookup(root, "/definitions/Address")
//
// The empty string is the pointer to the whole document.
package pathutil

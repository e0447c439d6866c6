package traverse

// Keyword sets in traversal order. The same keyword may appear in more than
// one set ("items" is both an array keyword and a single-schema keyword); the
// shape of its value decides which pass handles it.
var (
	// MapKeywords hold an object whose values are subschemas, keyed by name.
	MapKeywords = []string{"definitions", "properties", "patternProperties", "dependencies"}

	// ArrayKeywords hold an array of subschemas.
	ArrayKeywords = []string{"items", "allOf", "anyOf", "oneOf"}

	// SchemaKeywords hold a single subschema.
	SchemaKeywords = []string{
		"additionalItems",
		"items",
		"contains",
		"additionalProperties",
		"propertyNames",
		"not",
		"if",
		"then",
		"else",
	}
)

// Keywords returns every traversed keyword once, in the order in which the
// walk first considers it.
func Keywords() []string {
	seen := make(map[string]bool)
	var out []string
	for _, set := range [][]string{MapKeywords, ArrayKeywords, SchemaKeywords} {
		for _, kw := range set {
			if !seen[kw] {
				seen[kw] = true
				out = append(out, kw)
			}
		}
	}
	return out
}

// IsKeyword reports whether kw is one of the traversed keywords.
func IsKeyword(kw string) bool {
	for _, set := range [][]string{MapKeywords, ArrayKeywords, SchemaKeywords} {
		for _, k := range set {
			if k == kw {
				return true
			}
		}
	}
	return false
}

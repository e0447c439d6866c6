package commands

import (
	"os"
	"path/filepath"
	"testing"
)

const testSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "definitions": {
    "Address": {
      "type": "object",
      "properties": {"city": {"type": "string"}}
    }
  },
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "tags": {"type": "array", "items": {"type": "string"}},
    "extra": true
  },
  "anyOf": [{"required": ["name"]}, {"required": ["tags"]}],
  "additionalProperties": false
}`

// writeSchema writes content to a temp file and returns its path.
func writeSchema(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

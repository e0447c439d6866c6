package mcpserver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/schemawalk/internal/nodeutil"
	"github.com/erraggy/schemawalk/schemaerrors"
)

const petSchema = `{
  "type": "object",
  "required": ["name"],
  "definitions": {
    "Tag": {"type": "object", "properties": {"label": {"type": "string"}}}
  },
  "properties": {
    "name": {"type": "string"},
    "tags": {"type": "array", "items": {"$ref": "#/definitions/Tag"}},
    "extra": true
  },
  "additionalProperties": false
}`

// writeTempSchema writes content to a file in a fresh temp dir and returns its path.
func writeTempSchema(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// withConfig swaps cfg for the duration of a test.
func withConfig(t *testing.T, mutate func(c *serverConfig)) {
	t.Helper()
	saved := *cfg
	t.Cleanup(func() { *cfg = saved })
	mutate(cfg)
}

func TestSchemaInput_ResolveFile(t *testing.T) {
	schemaCache.reset()
	path := writeTempSchema(t, "pet.json", petSchema)

	result, err := schemaInput{File: path}.resolve()
	require.NoError(t, err)
	require.NotNil(t, result.Root)
	assert.Equal(t, "object", nodeutil.SchemaType(result.Root))
	assert.EqualValues(t, "json", result.SourceFormat)
}

func TestSchemaInput_ResolveContent(t *testing.T) {
	schemaCache.reset()
	result, err := schemaInput{Content: "type: object\nproperties:\n  id:\n    type: integer\n"}.resolve()
	require.NoError(t, err)
	assert.EqualValues(t, "yaml", result.SourceFormat)
	assert.True(t, nodeutil.IsMapping(nodeutil.Get(result.Root, "properties")))
}

func TestSchemaInput_ResolveNoneProvided(t *testing.T) {
	_, err := schemaInput{}.resolve()
	require.Error(t, err)
	assert.True(t, errors.Is(err, schemaerrors.ErrConfig))
	assert.Contains(t, err.Error(), "no schema provided")
}

func TestSchemaInput_ResolveMultipleProvided(t *testing.T) {
	_, err := schemaInput{File: "foo.json", Content: "{}"}.resolve()
	require.Error(t, err)
	var cfgErr *schemaerrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "input", cfgErr.Option)
	assert.Contains(t, err.Error(), "exactly one of file, url, or content must be provided")
}

func TestSchemaInput_ResolveFileNotFound(t *testing.T) {
	schemaCache.reset()
	_, err := schemaInput{File: filepath.Join(t.TempDir(), "missing.json")}.resolve()
	assert.Error(t, err)
	assert.Zero(t, schemaCache.size())
}

func TestSchemaInput_InlineSizeLimit(t *testing.T) {
	schemaCache.reset()
	withConfig(t, func(c *serverConfig) { c.MaxInlineSize = 16 })

	_, err := schemaInput{Content: `{"type": "object", "title": "too long"}`}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum 16 bytes")
}

func TestSchemaCache_HitOnSameFile(t *testing.T) {
	schemaCache.reset()
	input := schemaInput{File: writeTempSchema(t, "pet.json", petSchema)}

	result1, err := input.resolve()
	require.NoError(t, err)
	assert.Equal(t, 1, schemaCache.size())

	result2, err := input.resolve()
	require.NoError(t, err)
	assert.Same(t, result1, result2, "expected same pointer from cache hit")
}

func TestSchemaCache_MissOnModifiedFile(t *testing.T) {
	schemaCache.reset()
	path := writeTempSchema(t, "schema.yaml", "title: V1\ntype: object\n")

	input := schemaInput{File: path}
	result1, err := input.resolve()
	require.NoError(t, err)
	assert.Equal(t, "V1", nodeutil.Get(result1.Root, "title").Value)

	require.NoError(t, os.WriteFile(path, []byte("title: V2\ntype: object\n"), 0o644))

	// Ensure mtime differs from the first write on coarse-grained filesystems.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	result2, err := input.resolve()
	require.NoError(t, err)
	assert.NotSame(t, result1, result2)
	assert.Equal(t, "V2", nodeutil.Get(result2.Root, "title").Value)
}

func TestSchemaCache_ContentHash(t *testing.T) {
	schemaCache.reset()
	input := schemaInput{Content: petSchema}

	result1, err := input.resolve()
	require.NoError(t, err)

	result2, err := input.resolve()
	require.NoError(t, err)
	assert.Same(t, result1, result2)
}

func TestSchemaCache_Disabled(t *testing.T) {
	schemaCache.reset()
	withConfig(t, func(c *serverConfig) { c.CacheEnabled = false })

	input := schemaInput{Content: petSchema}
	result1, err := input.resolve()
	require.NoError(t, err)
	result2, err := input.resolve()
	require.NoError(t, err)

	assert.NotSame(t, result1, result2)
	assert.Zero(t, schemaCache.size())
}

func TestSchemaCache_LRUEviction(t *testing.T) {
	schemaCache.reset()

	// Insert 11 schemas into a cache of size 10.
	var firstKey string
	for i := range 11 {
		content := fmt.Sprintf(`{"title": "Schema %c", "type": "object"}`, 'A'+i)
		if i == 0 {
			firstKey = makeCacheKey(schemaInput{Content: content})
		}
		_, err := schemaInput{Content: content}.resolve()
		require.NoError(t, err)
	}

	assert.Equal(t, 10, schemaCache.size())
	assert.Nil(t, schemaCache.get(firstKey), "expected oldest entry to be evicted")
}

func TestSchemaCache_Expiry(t *testing.T) {
	c := &schemaCacheStore{entries: make(map[string]*cacheEntry), maxSize: 4}
	result, err := schemaInput{Content: petSchema}.resolve()
	require.NoError(t, err)

	c.putWithTTL("stale", result, -time.Second)
	c.putWithTTL("fresh", result, time.Hour)
	assert.Equal(t, 2, c.size())

	c.sweep()
	assert.Equal(t, 1, c.size())
	assert.Nil(t, c.get("stale"))
	assert.Same(t, result, c.get("fresh"))
}

func TestMakeCacheKey(t *testing.T) {
	path := writeTempSchema(t, "a.json", "{}")

	tests := []struct {
		name   string
		input  schemaInput
		prefix string
	}{
		{"file", schemaInput{File: path}, "file:"},
		{"content", schemaInput{Content: "{}"}, "content:"},
		{"url", schemaInput{URL: "https://example.com/schema.json"}, "url:https://example.com/schema.json"},
		{"missing file", schemaInput{File: filepath.Join(t.TempDir(), "nope.json")}, ""},
		{"empty", schemaInput{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := makeCacheKey(tt.input)
			if tt.prefix == "" {
				assert.Empty(t, key)
				return
			}
			assert.True(t, strings.HasPrefix(key, tt.prefix), "key %q", key)
		})
	}
}

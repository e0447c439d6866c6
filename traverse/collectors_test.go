package traverse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/schemawalk/schemaerrors"
)

const collectorSchema = `{
	"definitions": {"Pet": {"properties": {"name": {"type": "string"}, "any": true}}},
	"allOf": [{"$ref": "#/definitions/Pet"}, false],
	"not": {"type": "null"},
	"additionalProperties": false
}`

func TestCollectSchemas(t *testing.T) {
	root := mustSchema(t, collectorSchema)

	c, err := CollectSchemas(root)
	require.NoError(t, err)

	var ptrs []string
	for _, info := range c.All {
		ptrs = append(ptrs, info.Pointer)
	}
	assert.Equal(t, []string{
		"",
		"/definitions/Pet",
		"/definitions/Pet/properties/name",
		"/allOf/0",
		"/not",
	}, ptrs)

	name := c.ByPointer["/definitions/Pet/properties/name"]
	require.NotNil(t, name)
	assert.Equal(t, "properties", name.Keyword)
	assert.Equal(t, "name", name.Key)
	assert.Equal(t, 2, name.Depth)

	rootInfo := c.ByPointer[""]
	require.NotNil(t, rootInfo)
	assert.Empty(t, rootInfo.Keyword)
	assert.Zero(t, rootInfo.Depth)

	assert.Len(t, c.ByKeyword["definitions"], 1)
	assert.Len(t, c.ByKeyword["allOf"], 1)
	assert.Equal(t, "0", c.ByKeyword["allOf"][0].Key)
	assert.Len(t, c.ByKeyword["not"], 1)
	assert.Empty(t, c.ByKeyword["not"][0].Key)
	assert.NotContains(t, c.ByKeyword, "")
}

func TestCollectSchemas_EmptyForNonObjectRoot(t *testing.T) {
	c, err := CollectSchemas(mustSchema(t, `false`))
	require.NoError(t, err)
	assert.Empty(t, c.All)
	assert.Empty(t, c.ByPointer)
}

func TestCollectSchemas_ReplacesCallerHooks(t *testing.T) {
	root := mustSchema(t, `{"not": {}}`)
	called := false

	c, err := CollectSchemas(root, WithPre(func(v *Visit) error {
		called = true
		return Stop
	}))
	require.NoError(t, err)
	assert.False(t, called)
	assert.Len(t, c.All, 2)
}

func TestCollectSchemas_MaxDepth(t *testing.T) {
	root := mustSchema(t, collectorSchema)

	_, err := CollectSchemas(root, WithMaxDepth(1))
	assert.ErrorIs(t, err, schemaerrors.ErrResourceLimit)
}

func TestCollectSchemas_OptionsNotAliased(t *testing.T) {
	root := mustSchema(t, `{"not": {}}`)

	opts := make([]Option, 1, 4)
	opts[0] = WithMaxDepth(5)
	_, err := CollectSchemas(root, opts...)
	require.NoError(t, err)

	// The spare capacity of opts must not have been written to.
	extended := opts[:2]
	assert.Nil(t, extended[1])
}

func TestComputeStats(t *testing.T) {
	root := mustSchema(t, collectorSchema)

	stats, err := ComputeStats(root)
	require.NoError(t, err)

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 2, stats.MaxDepth)
	assert.Equal(t, map[string]int{
		"definitions": 1,
		"properties":  1,
		"allOf":       1,
		"not":         1,
	}, stats.ByKeyword)
	// "any": true, allOf[1]: false, additionalProperties: false
	assert.Equal(t, 3, stats.BooleanSchemas)
}

func TestComputeStats_Empty(t *testing.T) {
	stats, err := ComputeStats(nil)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.MaxDepth)
	assert.Empty(t, stats.ByKeyword)
}

func TestCountBooleanChildren(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int
	}{
		{"none", `{"type": "string"}`, 0},
		{"map keyword", `{"properties": {"a": true, "b": {}, "c": false}}`, 2},
		{"array keyword", `{"anyOf": [true, {}, false, "x"]}`, 2},
		{"single keyword", `{"not": true, "if": false, "then": {}}`, 2},
		{"items as array is not a single schema", `{"items": [true]}`, 1},
		{"string true is not boolean", `{"not": "true"}`, 0},
		{"non-schema keyword ignored", `{"const": true, "default": false}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustSchema(t, tt.src)
			assert.Equal(t, tt.want, countBooleanChildren(doc.Content[0]))
		})
	}
}

package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a/b", "a~1b"},
		{"a~b", "a~0b"},
		{"~/", "~0~1"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Escape(tt.in))
			assert.Equal(t, tt.in, Unescape(tt.want))
		})
	}
}

func TestUnescape_OrderMatters(t *testing.T) {
	assert.Equal(t, "~1", Unescape("~01"))
	assert.Equal(t, "/0", Unescape("~10"))
}

func TestAppend(t *testing.T) {
	assert.Equal(t, "/properties/a~1b", Append("", "properties", "a/b"))
	assert.Equal(t, "/definitions/x/not", Append("/definitions/x", "not"))
	assert.Equal(t, "/p", Append("/p"))
	assert.Equal(t, "/allOf/3", AppendIndex("/allOf", 3))
}

func TestSplit(t *testing.T) {
	tokens, err := Split("")
	require.NoError(t, err)
	assert.Empty(t, tokens)

	tokens, err = Split("/properties/a~1b/items/0")
	require.NoError(t, err)
	assert.Equal(t, []string{"properties", "a/b", "items", "0"}, tokens)

	tokens, err = Split("#/definitions/x")
	require.NoError(t, err)
	assert.Equal(t, []string{"definitions", "x"}, tokens)

	tokens, err = Split("/")
	require.NoError(t, err)
	assert.Equal(t, []string{""}, tokens)

	_, err = Split("properties")
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(`{
		"properties": {"a/b": {"type": "string"}},
		"allOf": [{"type": "number"}, {"type": "integer"}]
	}`), &doc))

	n, err := Lookup(&doc, "")
	require.NoError(t, err)
	assert.Equal(t, yaml.MappingNode, n.Kind)

	n, err = Lookup(&doc, "/properties/a~1b/type")
	require.NoError(t, err)
	assert.Equal(t, "string", n.Value)

	n, err = Lookup(&doc, "/allOf/1/type")
	require.NoError(t, err)
	assert.Equal(t, "integer", n.Value)

	_, err = Lookup(&doc, "/allOf/2")
	assert.ErrorContains(t, err, "out of range")

	_, err = Lookup(&doc, "/allOf/01")
	assert.ErrorContains(t, err, "invalid array index")

	_, err = Lookup(&doc, "/allOf/-")
	assert.ErrorContains(t, err, "invalid array index")

	_, err = Lookup(&doc, "/missing")
	assert.ErrorContains(t, err, "/missing: no such key")

	_, err = Lookup(&doc, "/properties/a~1b/type/deeper")
	assert.ErrorContains(t, err, "cannot descend into string")

	_, err = Lookup(nil, "")
	assert.Error(t, err)
}

func TestLookup_FollowsAliases(t *testing.T) {
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("base: &b\n  type: string\nref: *b\n"), &doc))

	n, err := Lookup(&doc, "/ref/type")
	require.NoError(t, err)
	assert.Equal(t, "string", n.Value)
}

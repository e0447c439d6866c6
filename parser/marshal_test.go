package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/schemawalk/internal/nodeutil"
)

func TestMarshalJSON_PreservesOrder(t *testing.T) {
	result, err := ParseBytes([]byte(`{"zeta": 1, "alpha": [true, null, 1.5, "x<y"], "mid": {"b": "2", "a": 1}}`))
	require.NoError(t, err)

	out, err := MarshalJSON(result.Root, "")
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":1,"alpha":[true,null,1.5,"x<y"],"mid":{"b":"2","a":1}}`, string(out))
}

func TestMarshalJSON_FromYAML(t *testing.T) {
	result, err := ParseBytes([]byte("type: object\nproperties:\n  name:\n    type: string\nrequired: [name]\n"))
	require.NoError(t, err)

	out, err := MarshalJSON(result.Document, "  ")
	require.NoError(t, err)
	assert.Equal(t, `{
  "type": "object",
  "properties": {
    "name": {
      "type": "string"
    }
  },
  "required": [
    "name"
  ]
}`, string(out))
}

func TestMarshalJSON_ExpandsAliases(t *testing.T) {
	result, err := ParseBytes([]byte("defs:\n  s: &s {type: string}\nnot: *s\n"))
	require.NoError(t, err)

	out, err := MarshalJSON(result.Root, "")
	require.NoError(t, err)
	assert.Equal(t, `{"defs":{"s":{"type":"string"}},"not":{"type":"string"}}`, string(out))
}

func TestMarshalJSON_AfterMutation(t *testing.T) {
	result, err := ParseBytes([]byte(`{"type": "string"}`))
	require.NoError(t, err)

	result.Root.Content = append(result.Root.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "format"},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "uuid"},
	)
	out, err := MarshalJSON(result.Root, "")
	require.NoError(t, err)
	assert.Equal(t, `{"type":"string","format":"uuid"}`, string(out))
}

func TestMarshalJSON_Nil(t *testing.T) {
	out, err := MarshalJSON(nil, "")
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestMarshalYAML_RoundTrip(t *testing.T) {
	result, err := ParseBytes([]byte(petSchemaJSON))
	require.NoError(t, err)

	out, err := MarshalYAML(result.Root)
	require.NoError(t, err)

	again, err := ParseBytes(out)
	require.NoError(t, err)
	assert.Equal(t, keysOf(result.Root), keysOf(again.Root))
	assert.Equal(t, "integer", nodeutil.Get(nodeutil.Get(nodeutil.Get(again.Root, "properties"), "age"), "type").Value)

	_, err = MarshalYAML(nil)
	assert.Error(t, err)
}

func TestMarshalYAML_BlockStyle(t *testing.T) {
	result, err := ParseBytes([]byte(`{"type": "object", "properties": {"name": {"const": "x"}}}`))
	require.NoError(t, err)

	out, err := MarshalYAML(result.Root)
	require.NoError(t, err)
	assert.Equal(t, "type: object\nproperties:\n  name:\n    const: x\n", string(out))

	// the parsed tree keeps its flow style
	assert.NotZero(t, result.Root.Style&yaml.FlowStyle)
}

// Copyright 2026 The typegen Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the specific language governing permissions and limitations under the License.

package schema

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTrip parses jsonText, marshals the result, and re-parses the
// marshaled bytes, returning the twice-decoded schema for comparison.
// Property iteration order isn't preserved across a Marshal/re-Parse cycle
// (properties are marshaled as a plain map), so callers compare structural
// fields rather than raw byte output.
func roundTrip(t *testing.T, jsonText string) (original, reparsed *Schema) {
	t.Helper()
	doc, err := Parse([]byte(jsonText))
	require.NoError(t, err)

	out, err := Marshal(doc.Root)
	require.NoError(t, err)

	doc2, err := Parse(out)
	require.NoError(t, err)
	return doc.Root, doc2.Root
}

func TestMarshal_PrimitiveRoundTrip(t *testing.T) {
	orig, reparsed := roundTrip(t, `{"type":"integer","format":"uint8","minimum":0,"maximum":255}`)
	assert.Equal(t, orig.Types, reparsed.Types)
	assert.Equal(t, orig.Format, reparsed.Format)
	require.NotNil(t, reparsed.Numeric)
	assert.Equal(t, *orig.Numeric.Minimum, *reparsed.Numeric.Minimum)
	assert.Equal(t, *orig.Numeric.Maximum, *reparsed.Numeric.Maximum)
}

func TestMarshal_ObjectRoundTrip(t *testing.T) {
	orig, reparsed := roundTrip(t, `{
		"type": "object",
		"properties": {"id": {"type": "string"}, "age": {"type": "integer"}},
		"required": ["id"]
	}`)
	require.NotNil(t, reparsed.Object)
	assert.Equal(t, orig.Object.Properties.Len(), reparsed.Object.Properties.Len())
	assert.ElementsMatch(t, orig.Object.Required, reparsed.Object.Required)
	for pair := orig.Object.Properties.Oldest(); pair != nil; pair = pair.Next() {
		got, ok := reparsed.Object.Properties.Get(pair.Key)
		require.True(t, ok, "missing property %q after round trip", pair.Key)
		assert.Equal(t, pair.Value.Types, got.Types)
	}
}

// PatternProperties must survive a Marshal round trip (previously dropped).
func TestMarshal_PatternPropertiesRoundTrip(t *testing.T) {
	orig, reparsed := roundTrip(t, `{
		"type": "object",
		"patternProperties": {"^S_": {"type": "string"}, "^N_": {"type": "integer"}}
	}`)
	require.NotNil(t, orig.Object)
	require.NotNil(t, reparsed.Object)
	require.NotNil(t, reparsed.Object.PatternProperties)
	assert.Equal(t, orig.Object.PatternProperties.Len(), reparsed.Object.PatternProperties.Len())
	for pair := orig.Object.PatternProperties.Oldest(); pair != nil; pair = pair.Next() {
		got, ok := reparsed.Object.PatternProperties.Get(pair.Key)
		require.True(t, ok, "missing patternProperties key %q after round trip", pair.Key)
		assert.Equal(t, pair.Value.Types, got.Types)
	}
}

func TestMarshal_ArraySequenceRoundTrip(t *testing.T) {
	orig, reparsed := roundTrip(t, `{
		"type": "array",
		"items": [{"type": "string"}, {"type": "integer"}],
		"additionalItems": {"type": "boolean"},
		"minItems": 2,
		"maxItems": 2
	}`)
	require.NotNil(t, reparsed.Array)
	require.NotNil(t, reparsed.Array.Items)
	require.Len(t, reparsed.Array.Items.Sequence, len(orig.Array.Items.Sequence))
	for i, s := range orig.Array.Items.Sequence {
		assert.Equal(t, s.Types, reparsed.Array.Items.Sequence[i].Types)
	}
	require.NotNil(t, reparsed.Array.AdditionalItems)
	assert.Equal(t, orig.Array.AdditionalItems.Types, reparsed.Array.AdditionalItems.Types)
}

func TestMarshal_EnumAndConstRoundTrip(t *testing.T) {
	orig, reparsed := roundTrip(t, `{"type":"string","enum":["red","green","blue"]}`)
	assert.Equal(t, orig.Enum, reparsed.Enum)

	origConst, reparsedConst := roundTrip(t, `{"type":"string","const":"fixed"}`)
	assert.Equal(t, origConst.Enum, reparsedConst.Enum)
	assert.True(t, reparsedConst.HasConst)
}

func TestMarshal_CombinatorRoundTrip(t *testing.T) {
	orig, reparsed := roundTrip(t, `{"oneOf":[{"type":"string"},{"type":"integer"}]}`)
	assert.Equal(t, orig.Combinator, reparsed.Combinator)
	require.Len(t, reparsed.CombinatorOf, 2)
	for i, s := range orig.CombinatorOf {
		assert.Equal(t, s.Types, reparsed.CombinatorOf[i].Types)
	}
}

func TestMarshal_NotRoundTrip(t *testing.T) {
	orig, reparsed := roundTrip(t, `{"not":{"required":["x"]}}`)
	require.NotNil(t, reparsed.Not)
	assert.Equal(t, orig.Not.Object.Required, reparsed.Not.Object.Required)
}

func TestMarshal_ForeignTypeHintRoundTrip(t *testing.T) {
	orig, reparsed := roundTrip(t, `{"x-rust": {"path": "::std::net::Ipv4Addr", "crate": "std"}}`)
	require.NotNil(t, reparsed.ForeignType)
	assert.Equal(t, orig.ForeignType.Target, reparsed.ForeignType.Target)
	assert.Equal(t, orig.ForeignType.Path, reparsed.ForeignType.Path)
	assert.Equal(t, orig.ForeignType.Crate, reparsed.ForeignType.Crate)
}

func TestMarshal_BooleanLiterals(t *testing.T) {
	out, err := Marshal(True())
	require.NoError(t, err)
	var v any
	require.NoError(t, json.Unmarshal(out, &v))
	assert.Equal(t, true, v)

	out, err = Marshal(False())
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(out, &v))
	assert.Equal(t, false, v)
}

func TestMarshalDefinitions_RoundTrip(t *testing.T) {
	doc, err := Parse([]byte(`{
		"definitions": {
			"Widget": {"type": "object", "properties": {"id": {"type": "string"}}},
			"Gadget": {"type": "string"}
		}
	}`))
	require.NoError(t, err)

	out, err := MarshalDefinitions(doc.Definitions)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &raw))
	assert.Len(t, raw, 2)
	assert.Contains(t, raw, "Widget")
	assert.Contains(t, raw, "Gadget")
}

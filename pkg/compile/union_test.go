// Copyright 2026 The typegen Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the specific language governing permissions and limitations under the License.

package compile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaforge/typegen/pkg/typemodel"
)

func TestClassifyOneOf_OptionAsEnum(t *testing.T) {
	c, _ := newTestCompiler(t, `{}`)
	s := mustParseSchema(t, `{"oneOf":[{"type":"string"},{"type":"null"}]}`)
	_, entry := convertEntry(t, c, s, "MaybeName")
	opt, ok := entry.(typemodel.Option)
	require.True(t, ok, "expected Option, got %T", entry)
	assert.Equal(t, typemodel.StringT{}, entryAt(t, c, opt.Elem))
}

// External tagging: two single-key-object alternatives, one whose payload
// is null (a Simple variant) and one carrying a string payload.
func TestClassifyOneOf_ExternalTag(t *testing.T) {
	c, _ := newTestCompiler(t, `{}`)
	s := mustParseSchema(t, `{
		"oneOf": [
			{"type": "object", "properties": {"ping": {"type": "null"}}, "required": ["ping"]},
			{"type": "object", "properties": {"pong": {"type": "string"}}, "required": ["pong"]}
		]
	}`)
	_, entry := convertEntry(t, c, s, "Message")
	e, ok := entry.(typemodel.Enum)
	require.True(t, ok, "expected Enum, got %T", entry)
	assert.Equal(t, typemodel.External, e.Tag.Kind)
	require.Len(t, e.Variants, 2)
	assert.Equal(t, "ping", e.Variants[0].SerializedName)
	assert.IsType(t, typemodel.VariantSimple{}, e.Variants[0].Details)
	assert.Equal(t, "pong", e.Variants[1].SerializedName)
	assert.IsType(t, typemodel.VariantTuplePayload{}, e.Variants[1].Details)
}

// S6: internally-tagged enum sharing a discriminator field among all
// object alternatives.
func TestClassifyOneOf_InternalTag(t *testing.T) {
	c, _ := newTestCompiler(t, `{}`)
	s := mustParseSchema(t, `{
		"oneOf": [
			{
				"type": "object",
				"properties": {"kind": {"type": "string", "enum": ["circle"]}, "radius": {"type": "number"}},
				"required": ["kind", "radius"]
			},
			{
				"type": "object",
				"properties": {"kind": {"type": "string", "enum": ["square"]}, "side": {"type": "number"}},
				"required": ["kind", "side"]
			}
		]
	}`)
	_, entry := convertEntry(t, c, s, "Shape")
	e, ok := entry.(typemodel.Enum)
	require.True(t, ok, "expected Enum, got %T", entry)
	assert.Equal(t, typemodel.Internal, e.Tag.Kind)
	assert.Equal(t, "kind", e.Tag.Tag)
	require.Len(t, e.Variants, 2)
	assert.Equal(t, "circle", e.Variants[0].SerializedName)
	payload, ok := e.Variants[0].Details.(typemodel.VariantStructPayload)
	require.True(t, ok)
	require.Len(t, payload.Properties, 1)
	assert.Equal(t, "radius", payload.Properties[0].SerializedName)
}

// Adjacent tagging must be tried before internal: a shared {tag, content}
// key pair where content is NOT itself a fixed struct-shape.
func TestClassifyOneOf_AdjacentTag(t *testing.T) {
	c, _ := newTestCompiler(t, `{}`)
	s := mustParseSchema(t, `{
		"oneOf": [
			{
				"type": "object",
				"properties": {"type": {"type": "string", "enum": ["num"]}, "content": {"type": "integer"}},
				"required": ["type", "content"]
			},
			{
				"type": "object",
				"properties": {"type": {"type": "string", "enum": ["str"]}, "content": {"type": "string"}},
				"required": ["type", "content"]
			}
		]
	}`)
	_, entry := convertEntry(t, c, s, "Payload")
	e, ok := entry.(typemodel.Enum)
	require.True(t, ok, "expected Enum, got %T", entry)
	assert.Equal(t, typemodel.Adjacent, e.Tag.Kind)
	assert.Equal(t, "type", e.Tag.Tag)
	assert.Equal(t, "content", e.Tag.Content)
	require.Len(t, e.Variants, 2)
	assert.Equal(t, "num", e.Variants[0].SerializedName)
}

// Untagged fallback: alternatives share no discriminator shape at all, so
// invented Variant%d names are used.
func TestClassifyOneOf_UntaggedFallback(t *testing.T) {
	c, _ := newTestCompiler(t, `{}`)
	s := mustParseSchema(t, `{
		"oneOf": [
			{"type": "string"},
			{"type": "integer"}
		]
	}`)
	_, entry := convertEntry(t, c, s, "Value")
	e, ok := entry.(typemodel.Enum)
	require.True(t, ok, "expected Enum, got %T", entry)
	assert.Equal(t, typemodel.Untagged, e.Tag.Kind)
	require.Len(t, e.Variants, 2)
	assert.Equal(t, "Variant1", e.Variants[0].Name)
	assert.Equal(t, "Variant2", e.Variants[1].Name)
}

// anyOf promotion: alternatives with disjoint instance types are provably
// mutually exclusive, so anyOf is classified exactly like oneOf.
func TestBuildAnyOf_PromotesToOneOfWhenExclusive(t *testing.T) {
	c, _ := newTestCompiler(t, `{}`)
	s := mustParseSchema(t, `{
		"anyOf": [
			{"type": "string"},
			{"type": "integer"}
		]
	}`)
	_, entry := convertEntry(t, c, s, "Value")
	e, ok := entry.(typemodel.Enum)
	require.True(t, ok, "expected Enum via exclusivity promotion, got %T", entry)
	assert.Equal(t, typemodel.Untagged, e.Tag.Kind)
}

// anyOf with overlapping alternatives falls back to the optional-fields
// union struct.
func TestBuildAnyOf_FallsBackToOptionalUnionStruct(t *testing.T) {
	c, _ := newTestCompiler(t, `{}`)
	s := mustParseSchema(t, `{
		"anyOf": [
			{"type": "object", "properties": {"a": {"type": "string"}}},
			{"type": "object", "properties": {"b": {"type": "integer"}}}
		]
	}`)
	_, entry := convertEntry(t, c, s, "Combo")
	st, ok := entry.(typemodel.Struct)
	require.True(t, ok, "expected Struct, got %T", entry)
	require.Len(t, st.Properties, 2)
	for _, p := range st.Properties {
		assert.False(t, p.Required)
	}
}

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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_BooleanLiterals(t *testing.T) {
	doc, err := Parse([]byte(`true`))
	require.NoError(t, err)
	assert.True(t, doc.Root.IsTrue())

	doc, err = Parse([]byte(`false`))
	require.NoError(t, err)
	assert.True(t, doc.Root.IsFalse())
}

func TestParse_Primitives(t *testing.T) {
	doc, err := Parse([]byte(`{"type":"string","format":"uuid"}`))
	require.NoError(t, err)
	assert.Equal(t, []InstanceType{TypeString}, doc.Root.Types)
	assert.Equal(t, "uuid", doc.Root.Format)
}

func TestParse_NullablePair(t *testing.T) {
	doc, err := Parse([]byte(`{"type":["string","null"]}`))
	require.NoError(t, err)
	assert.ElementsMatch(t, []InstanceType{TypeString, TypeNull}, doc.Root.Types)
}

func TestParse_ObjectProperties(t *testing.T) {
	doc, err := Parse([]byte(`{
		"type": "object",
		"properties": {"id": {"type": "string"}, "age": {"type": "integer"}},
		"required": ["id"]
	}`))
	require.NoError(t, err)
	require.NotNil(t, doc.Root.Object)
	require.NotNil(t, doc.Root.Object.Properties)
	assert.Equal(t, 2, doc.Root.Object.Properties.Len())
	assert.True(t, doc.Root.Object.IsRequired("id"))
	assert.False(t, doc.Root.Object.IsRequired("age"))

	// Property insertion order is preserved.
	first := doc.Root.Object.Properties.Oldest()
	require.NotNil(t, first)
	assert.Equal(t, "id", first.Key)
}

func TestParse_ArrayUniformVsPositional(t *testing.T) {
	uniform, err := Parse([]byte(`{"type":"array","items":{"type":"string"}}`))
	require.NoError(t, err)
	require.NotNil(t, uniform.Root.Array)
	require.NotNil(t, uniform.Root.Array.Items)
	require.NotNil(t, uniform.Root.Array.Items.Uniform)
	assert.Nil(t, uniform.Root.Array.Items.Sequence)

	positional, err := Parse([]byte(`{"type":"array","items":[{"type":"string"},{"type":"integer"}]}`))
	require.NoError(t, err)
	require.NotNil(t, positional.Root.Array)
	require.NotNil(t, positional.Root.Array.Items)
	assert.Nil(t, positional.Root.Array.Items.Uniform)
	assert.Len(t, positional.Root.Array.Items.Sequence, 2)
}

func TestParse_EnumAndConst(t *testing.T) {
	enumDoc, err := Parse([]byte(`{"type":"string","enum":["a","b"]}`))
	require.NoError(t, err)
	assert.Equal(t, []Literal{"a", "b"}, enumDoc.Root.Enum)
	assert.False(t, enumDoc.Root.HasConst)

	constDoc, err := Parse([]byte(`{"type":"string","const":"fixed"}`))
	require.NoError(t, err)
	assert.Equal(t, []Literal{"fixed"}, constDoc.Root.Enum)
	assert.True(t, constDoc.Root.HasConst)
}

func TestParse_Combinators(t *testing.T) {
	allOf, err := Parse([]byte(`{"allOf":[{"type":"string"},{"minLength":3}]}`))
	require.NoError(t, err)
	assert.Equal(t, CombinatorAllOf, allOf.Root.Combinator)
	assert.Len(t, allOf.Root.CombinatorOf, 2)

	anyOf, err := Parse([]byte(`{"anyOf":[{"type":"string"},{"type":"integer"}]}`))
	require.NoError(t, err)
	assert.Equal(t, CombinatorAnyOf, anyOf.Root.Combinator)

	oneOf, err := Parse([]byte(`{"oneOf":[{"type":"string"},{"type":"integer"}]}`))
	require.NoError(t, err)
	assert.Equal(t, CombinatorOneOf, oneOf.Root.Combinator)

	not, err := Parse([]byte(`{"not":{"required":["x"]}}`))
	require.NoError(t, err)
	assert.Equal(t, CombinatorNot, not.Root.Combinator)
	require.NotNil(t, not.Root.Not)
	assert.Equal(t, []string{"x"}, not.Root.Not.Object.Required)
}

func TestParse_RefAndDefinitions(t *testing.T) {
	doc, err := Parse([]byte(`{
		"definitions": {"Widget": {"type": "object", "properties": {"id": {"type": "string"}}}},
		"$ref": "#/definitions/Widget"
	}`))
	require.NoError(t, err)
	assert.Equal(t, "#/definitions/Widget", doc.Root.Ref)
	assert.Equal(t, "Widget", RefKey(doc.Root.Ref))

	widget, ok := doc.Definitions.Lookup("Widget")
	require.True(t, ok)
	require.NotNil(t, widget.Object)
	assert.Equal(t, []string{"Widget"}, doc.Definitions.Keys())
}

func TestParse_DefsSynonym(t *testing.T) {
	doc, err := Parse([]byte(`{
		"$defs": {"Widget": {"type": "string"}},
		"$ref": "#/$defs/Widget"
	}`))
	require.NoError(t, err)
	widget, ok := doc.Definitions.Lookup("Widget")
	require.True(t, ok)
	assert.Equal(t, []InstanceType{TypeString}, widget.Types)
}

func TestParse_ForeignTypeExtension(t *testing.T) {
	doc, err := Parse([]byte(`{"x-rust": {"path": "::std::net::Ipv4Addr", "crate": "std"}}`))
	require.NoError(t, err)
	require.NotNil(t, doc.Root.ForeignType)
	assert.Equal(t, "rust", doc.Root.ForeignType.Target)
	assert.Equal(t, "::std::net::Ipv4Addr", doc.Root.ForeignType.Path)
	assert.Equal(t, "std", doc.Root.ForeignType.Crate)
}

func TestParse_UnrecognizedExtensionPreservedVerbatim(t *testing.T) {
	doc, err := Parse([]byte(`{"type":"string","x-nullable":true}`))
	require.NoError(t, err)
	assert.Nil(t, doc.Root.ForeignType)
	require.NotNil(t, doc.Root.Extensions)
	assert.Equal(t, true, doc.Root.Extensions["x-nullable"])
}

func TestParse_PatternPropertiesPreserved(t *testing.T) {
	doc, err := Parse([]byte(`{
		"type": "object",
		"patternProperties": {"^S_": {"type": "string"}}
	}`))
	require.NoError(t, err)
	require.NotNil(t, doc.Root.Object)
	require.NotNil(t, doc.Root.Object.PatternProperties)
	sub, ok := doc.Root.Object.PatternProperties.Get("^S_")
	require.True(t, ok)
	assert.Equal(t, []InstanceType{TypeString}, sub.Types)
}

func TestRefKey_TerminalSegment(t *testing.T) {
	assert.Equal(t, "Foo", RefKey("#/definitions/Foo"))
	assert.Equal(t, "Bar", RefKey("#/$defs/Bar"))
	assert.Equal(t, "Baz", RefKey("Baz"))
}

func TestIsEmptySchema(t *testing.T) {
	empty, err := Parse([]byte(`{}`))
	require.NoError(t, err)
	assert.True(t, empty.Root.IsEmptySchema())

	nonEmpty, err := Parse([]byte(`{"type":"string"}`))
	require.NoError(t, err)
	assert.False(t, nonEmpty.Root.IsEmptySchema())
}

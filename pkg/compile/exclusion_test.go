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

	"github.com/schemaforge/typegen/pkg/schema"
)

// mustAlts parses a JSON array of schemas by wrapping it in an anyOf and
// pulling out the decoded alternative list.
func mustAlts(t *testing.T, jsonArray string) []*schema.Schema {
	t.Helper()
	s := mustParseSchema(t, `{"anyOf":`+jsonArray+`}`)
	return s.CombinatorOf
}

func TestMutuallyExclusive_DisjointInstanceTypes(t *testing.T) {
	c, _ := newTestCompiler(t, `{}`)
	a := mustParseSchema(t, `{"type":"string"}`)
	b := mustParseSchema(t, `{"type":"integer"}`)
	assert.True(t, c.mutuallyExclusive(a, b, newRefGuard()))
}

func TestMutuallyExclusive_OverlappingInstanceTypesUnknown(t *testing.T) {
	c, _ := newTestCompiler(t, `{}`)
	a := mustParseSchema(t, `{"type":"object","properties":{"a":{"type":"string"}}}`)
	b := mustParseSchema(t, `{"type":"object","properties":{"b":{"type":"string"}}}`)
	assert.False(t, c.mutuallyExclusive(a, b, newRefGuard()))
}

func TestMutuallyExclusive_IncompatibleRequiredLiterals(t *testing.T) {
	c, _ := newTestCompiler(t, `{}`)
	a := mustParseSchema(t, `{
		"type": "object",
		"properties": {"kind": {"type": "string", "enum": ["a"]}},
		"required": ["kind"]
	}`)
	b := mustParseSchema(t, `{
		"type": "object",
		"properties": {"kind": {"type": "string", "enum": ["b"]}},
		"required": ["kind"]
	}`)
	assert.True(t, c.mutuallyExclusive(a, b, newRefGuard()))
}

func TestMutuallyExclusive_SameRequiredLiteralNotExclusive(t *testing.T) {
	c, _ := newTestCompiler(t, `{}`)
	a := mustParseSchema(t, `{
		"type": "object",
		"properties": {"kind": {"type": "string", "enum": ["a"]}, "x": {"type":"string"}},
		"required": ["kind"]
	}`)
	b := mustParseSchema(t, `{
		"type": "object",
		"properties": {"kind": {"type": "string", "enum": ["a"]}, "y": {"type":"integer"}},
		"required": ["kind"]
	}`)
	assert.False(t, c.mutuallyExclusive(a, b, newRefGuard()))
}

func TestMutuallyExclusive_IncompatibleEnumOrConst(t *testing.T) {
	c, _ := newTestCompiler(t, `{}`)
	a := mustParseSchema(t, `{"type":"string","enum":["red","green"]}`)
	b := mustParseSchema(t, `{"type":"string","enum":["blue","yellow"]}`)
	assert.True(t, c.mutuallyExclusive(a, b, newRefGuard()))
}

func TestMutuallyExclusive_OverlappingEnumNotExclusive(t *testing.T) {
	c, _ := newTestCompiler(t, `{}`)
	a := mustParseSchema(t, `{"type":"string","enum":["red","green"]}`)
	b := mustParseSchema(t, `{"type":"string","enum":["green","blue"]}`)
	assert.False(t, c.mutuallyExclusive(a, b, newRefGuard()))
}

func TestMutuallyExclusive_BooleanSchemaNeverExclusive(t *testing.T) {
	c, _ := newTestCompiler(t, `{}`)
	a := mustParseSchema(t, `true`)
	b := mustParseSchema(t, `{"type":"string"}`)
	assert.False(t, c.mutuallyExclusive(a, b, newRefGuard()))
}

// Exclusivity evidence is found through a $ref by resolving the referent.
func TestMutuallyExclusive_ThroughReference(t *testing.T) {
	c, _ := newTestCompiler(t, `{
		"definitions": {"Name": {"type": "string"}}
	}`)
	ref := mustParseSchema(t, `{"$ref":"#/definitions/Name"}`)
	other := mustParseSchema(t, `{"type":"integer"}`)
	assert.True(t, c.mutuallyExclusive(ref, other, newRefGuard()))
	assert.True(t, c.mutuallyExclusive(other, ref, newRefGuard()))
}

func TestAllMutuallyExclusive_RequiresEveryPair(t *testing.T) {
	c, _ := newTestCompiler(t, `{}`)
	list := mustAlts(t, `[{"type":"string"},{"type":"integer"},{"type":"boolean"}]`)
	assert.True(t, c.allMutuallyExclusive(list))

	mixed := mustAlts(t, `[{"type":"string"},{"type":"integer"},{"type":"object","properties":{"x":{"type":"string"}}}]`)
	// string/integer/object are pairwise type-disjoint, so still exclusive.
	assert.True(t, c.allMutuallyExclusive(mixed))

	overlapping := mustAlts(t, `[
		{"type":"object","properties":{"a":{"type":"string"}}},
		{"type":"object","properties":{"b":{"type":"string"}}}
	]`)
	assert.False(t, c.allMutuallyExclusive(overlapping))
}

func TestRoughlyEquivalent_ReflexiveAndSensitiveToShape(t *testing.T) {
	a := mustParseSchema(t, `{"type":"object","properties":{"x":{"type":"string"}},"required":["x"]}`)
	assert.True(t, roughlyEquivalent(a, a))

	b := mustParseSchema(t, `{"type":"object","properties":{"x":{"type":"string"}},"required":["x"],"title":"Different title, same shape"}`)
	assert.True(t, roughlyEquivalent(a, b))

	c := mustParseSchema(t, `{"type":"object","properties":{"x":{"type":"integer"}},"required":["x"]}`)
	assert.False(t, roughlyEquivalent(a, c))
}

// Copyright 2026 The typegen Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the specific language governing permissions and limitations under the License.

// Package schema is the in-memory representation of a JSON Schema document:
// the trivial/impossible booleans, instance-type constraints, the various
// families of validators, subschema combinators, and references. It carries
// no conversion or merge logic; see pkg/compile for that.
package schema

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// InstanceType is one of the seven JSON instance kinds.
type InstanceType string

const (
	TypeNull    InstanceType = "null"
	TypeBoolean InstanceType = "boolean"
	TypeInteger InstanceType = "integer"
	TypeNumber  InstanceType = "number"
	TypeString  InstanceType = "string"
	TypeArray   InstanceType = "array"
	TypeObject  InstanceType = "object"
)

// Combinator identifies which subschema field is populated on a Schema.
type Combinator int

const (
	CombinatorNone Combinator = iota
	CombinatorAllOf
	CombinatorAnyOf
	CombinatorOneOf
	CombinatorNot
)

// String returns the JSON Schema keyword for the combinator.
func (c Combinator) String() string {
	switch c {
	case CombinatorAllOf:
		return "allOf"
	case CombinatorAnyOf:
		return "anyOf"
	case CombinatorOneOf:
		return "oneOf"
	case CombinatorNot:
		return "not"
	default:
		return "none"
	}
}

// Properties is the ordered name-to-schema mapping used for "properties".
// Ordering is preserved from document order, so generated struct fields
// come out in declaration order.
type Properties = orderedmap.OrderedMap[string, *Schema]

// NewProperties returns an empty, ordered Properties map.
func NewProperties() *Properties {
	return orderedmap.New[string, *Schema]()
}

// Schema is a recursively-defined JSON Schema value. It is either the
// trivial schema (IsBool with BoolValue=true, admits everything), the
// impossible schema (IsBool with BoolValue=false, admits nothing), or an
// Object schema carrying any subset of
// the recognized validator families.
//
// IsBool distinguishes the two boolean-literal forms from the object form;
// when IsBool is true, BoolValue holds the literal and every other field is
// meaningless.
type Schema struct {
	IsBool    bool
	BoolValue bool

	// Instance type constraint: zero or more of the seven kinds. A nil/empty
	// Types means "no instance-type constraint" (the type is inferred from
	// whatever other validators are present, or the schema is fully
	// permissive).
	Types []InstanceType

	// Format is a free-form string; the converter recognizes a small
	// vocabulary (int8..uint64, uuid, date, date-time, uri, uri-template,
	// email, ip, ipv4, ipv6).
	Format string

	Numeric *NumericValidators
	String  *StringValidators
	Array   *ArrayValidators
	Object  *ObjectValidators

	// Enum is the JSON-encoded list of admitted literal values (nil if
	// absent). A `const` decodes as a one-element Enum so conversion and
	// merging treat them uniformly.
	Enum []Literal
	// HasConst records whether the schema originally specified `const`
	// rather than `enum`, so Marshal writes back the keyword that was
	// declared; semantically Const behaves as a singleton Enum.
	HasConst bool

	// Subschema combinator: exactly one of these may be populated, selected
	// by Combinator. A single-element list is unwrapped by the converter,
	// not here; the schema model stores exactly what was declared.
	Combinator   Combinator
	CombinatorOf []*Schema
	Not          *Schema

	// Ref is the raw `$ref` string, e.g. "#/definitions/Foo". Empty if this
	// schema has no `$ref`; other validators may be set beside it.
	Ref string

	// Title/Description are naming hints only, never semantically
	// significant.
	Title       string
	Description string

	// ForeignType is populated from a well-formed `x-<target>` extension
	// naming a pre-existing foreign type.
	ForeignType *ForeignTypeHint

	// Extensions carries any other `x-...` fields verbatim, keyed by field
	// name including the leading "x-", for forward compatibility with
	// callers that want to inspect extensions this package doesn't
	// interpret.
	Extensions map[string]any
}

// Literal is a JSON literal value as admitted by `enum`/`const`: one of nil,
// bool, float64, string, []Literal, or map[string]Literal; mirroring the
// shape `encoding/json` (and goccy/go-json) decode untyped JSON into.
type Literal = any

// ForeignTypeHint is the decoded form of an `x-<target>` extension object
// naming a type that already exists in the target language and should be
// referenced opaquely rather than generated.
type ForeignTypeHint struct {
	Target     string // the extension's target name, e.g. "rust", "go"
	Crate      string
	Path       string // must begin with "::"
	Version    string
	Parameters []*Schema
}

// True returns the trivial schema (admits every value).
func True() *Schema { return &Schema{IsBool: true, BoolValue: true} }

// False returns the impossible schema (admits no value).
func False() *Schema { return &Schema{IsBool: true, BoolValue: false} }

// IsTrue reports whether this schema is the trivial (admit-all) schema.
func (s *Schema) IsTrue() bool { return s != nil && s.IsBool && s.BoolValue }

// IsFalse reports whether this schema is the impossible (admit-none) schema.
func (s *Schema) IsFalse() bool { return s != nil && s.IsBool && !s.BoolValue }

// HasType reports whether t is among the schema's instance-type constraints.
// A schema with no Types constraint is treated as admitting every type, so
// HasType always returns true for such a schema.
func (s *Schema) HasType(t InstanceType) bool {
	if len(s.Types) == 0 {
		return true
	}
	for _, got := range s.Types {
		if got == t {
			return true
		}
	}
	return false
}

// SingleType returns the schema's sole instance type and true, or ("", false)
// if the schema has zero or more-than-one instance-type constraints.
func (s *Schema) SingleType() (InstanceType, bool) {
	if len(s.Types) != 1 {
		return "", false
	}
	return s.Types[0], true
}

// IsEmptySchema reports whether s carries no constraints whatsoever beyond
// metadata; the fully permissive shape, converted to the any-JSON type.
func (s *Schema) IsEmptySchema() bool {
	if s == nil || s.IsBool {
		return s.IsTrue()
	}
	return len(s.Types) == 0 &&
		s.Format == "" &&
		s.Numeric == nil &&
		s.String == nil &&
		s.Array == nil &&
		s.Object == nil &&
		s.Enum == nil &&
		s.Combinator == CombinatorNone &&
		s.Not == nil &&
		s.Ref == "" &&
		s.ForeignType == nil
}

// Definitions is the read-only mapping from reference key (the terminal
// segment of a `$ref` string) to its schema, populated once before
// conversion begins.
type Definitions struct {
	byKey map[string]*Schema
	order []string
}

// NewDefinitions builds a Definitions table from a name-to-schema mapping.
// Iteration order of Keys follows insertion order of the supplied keys
// slice, so callers that need determinism should pass keys in a stable
// order (e.g. sorted, or document order).
func NewDefinitions(keys []string, lookup map[string]*Schema) *Definitions {
	d := &Definitions{byKey: make(map[string]*Schema, len(keys)), order: append([]string(nil), keys...)}
	for _, k := range keys {
		d.byKey[k] = lookup[k]
	}
	return d
}

// Lookup resolves a reference key (already stripped of its path prefix) to
// its schema.
func (d *Definitions) Lookup(key string) (*Schema, bool) {
	if d == nil {
		return nil, false
	}
	s, ok := d.byKey[key]
	return s, ok
}

// Keys returns the definition keys in table order.
func (d *Definitions) Keys() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.order...)
}

// RefKey extracts the terminal segment of a JSON Pointer reference string,
// e.g. "#/definitions/Foo" -> "Foo". Only the terminal segment is
// significant for lookup.
func RefKey(ref string) string {
	i := len(ref) - 1
	for i >= 0 && ref[i] != '/' {
		i--
	}
	return ref[i+1:]
}

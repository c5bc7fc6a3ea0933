// Copyright 2026 The typegen Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the specific language governing permissions and limitations under the License.

package typemodel

// TagStrategyKind is the serde-style tagging discipline used to distinguish
// an Enum's variants on the wire.
type TagStrategyKind int

const (
	// External is serde's default: a bare string for Simple variants, or a
	// single-key object {variantName: payload} for variants with a payload.
	External TagStrategyKind = iota
	// Internal embeds a discriminator field directly among the variant's
	// own struct fields: {"<tag>": "variantName", ...fields}.
	Internal
	// Adjacent places the discriminator and payload at fixed sibling keys:
	// {"<tag>": "variantName", "<content>": payload}.
	Adjacent
	// Untagged has no discriminator at all; the variant is inferred from
	// which shape successfully matches.
	Untagged
)

// TagStrategy describes how an Enum's variants are distinguished on the
// wire. Tag and Content are meaningful only for Internal/Adjacent.
type TagStrategy struct {
	Kind    TagStrategyKind
	Tag     string
	Content string
}

// VariantDetails is the sealed union of an enum variant's payload shape.
type VariantDetails interface {
	variantSealed()
}

// VariantSimple is a no-payload variant.
type VariantSimple struct{}

func (VariantSimple) variantSealed() {}

// VariantTuplePayload is a positional-payload variant: the elements of a
// payload that converts to a Tuple, or a one-element tuple (the
// newtype-variant shape) for a payload that converts to a primitive,
// option, array, map, reference or opaque type.
type VariantTuplePayload struct{ Elems []TypeID }

func (VariantTuplePayload) variantSealed() {}

// VariantStructPayload is a record-payload variant: the remaining fields of
// an internally-tagged object, or the properties of a payload schema that
// converts to a non-empty Struct.
type VariantStructPayload struct{ Properties []Property }

func (VariantStructPayload) variantSealed() {}

// Variant is one arm of an Enum. SerializedName is the literal tag value or
// property key that identifies this arm on the wire; Name is the recased
// identifier. Variants are unique by SerializedName within a single Enum.
type Variant struct {
	Name           string
	SerializedName string
	Details        VariantDetails
}

// Enum is a tagged union, produced from oneOf/anyOf classification or from
// a string enum.
type Enum struct {
	Name     string
	Tag      TagStrategy
	Variants []Variant
}

func (Enum) sealed() {}

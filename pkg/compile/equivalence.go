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
	"github.com/schemaforge/typegen/pkg/schema"
)

// roughlyEquivalent is a reflexive structural comparison of two schemas up
// to trivial noise (title, description, extensions). It's used to decide
// whether a merge result is no more restrictive than an operand, which is
// what lets named references survive merges and lets anyOf alternatives
// that add nothing collapse.
func roughlyEquivalent(a, b *schema.Schema) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.IsBool || b.IsBool {
		return a.IsBool && b.IsBool && a.BoolValue == b.BoolValue
	}

	if !sameTypeSet(a.Types, b.Types) {
		return false
	}
	if a.Format != b.Format {
		return false
	}
	if a.Ref != b.Ref {
		return false
	}
	if !a.Numeric.Equal(b.Numeric) {
		return false
	}
	if !a.String.Equal(b.String) {
		return false
	}
	if !literalsEqual(a.Enum, b.Enum) {
		return false
	}
	if !roughlyEquivalentArray(a.Array, b.Array) {
		return false
	}
	if !roughlyEquivalentObject(a.Object, b.Object) {
		return false
	}
	if a.Combinator != b.Combinator {
		return false
	}
	if !roughlyEquivalentNot(a.Not, b.Not) {
		return false
	}
	if len(a.CombinatorOf) != len(b.CombinatorOf) {
		return false
	}
	for i := range a.CombinatorOf {
		if !roughlyEquivalent(a.CombinatorOf[i], b.CombinatorOf[i]) {
			return false
		}
	}
	return true
}

func roughlyEquivalentNot(a, b *schema.Schema) bool {
	if a == nil || b == nil {
		return a == b
	}
	return roughlyEquivalent(a, b)
}

func sameTypeSet(a, b []schema.InstanceType) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[schema.InstanceType]bool, len(a))
	for _, t := range a {
		seen[t] = true
	}
	for _, t := range b {
		if !seen[t] {
			return false
		}
	}
	return true
}

func literalsEqual(a, b []schema.Literal) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !literalEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// literalEqual compares two decoded JSON literals for deep equality. Slices
// and maps decoded from JSON are always []schema.Literal/map[string]schema.Literal,
// so a straightforward recursive walk suffices without reflect.DeepEqual's
// cost.
func literalEqual(a, b schema.Literal) bool {
	switch av := a.(type) {
	case []schema.Literal:
		bv, ok := b.([]schema.Literal)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !literalEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]schema.Literal:
		bv, ok := b.(map[string]schema.Literal)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bvv, ok := bv[k]
			if !ok || !literalEqual(v, bvv) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func roughlyEquivalentArray(a, b *schema.ArrayValidators) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !itemsEquivalent(a.Items, b.Items) {
		return false
	}
	if !roughlyEquivalentSchemaPtr(a.AdditionalItems, b.AdditionalItems) {
		return false
	}
	if !intPtrEqual(a.MinItems, b.MinItems) || !intPtrEqual(a.MaxItems, b.MaxItems) {
		return false
	}
	if a.UniqueItems != b.UniqueItems {
		return false
	}
	return roughlyEquivalentSchemaPtr(a.Contains, b.Contains)
}

func itemsEquivalent(a, b *schema.ItemsSpec) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !roughlyEquivalentSchemaPtr(a.Uniform, b.Uniform) {
		return false
	}
	if len(a.Sequence) != len(b.Sequence) {
		return false
	}
	for i := range a.Sequence {
		if !roughlyEquivalent(a.Sequence[i], b.Sequence[i]) {
			return false
		}
	}
	return true
}

func roughlyEquivalentObject(a, b *schema.ObjectValidators) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !sameStringSet(a.Required, b.Required) {
		return false
	}
	if !roughlyEquivalentSchemaPtr(a.AdditionalProperties, b.AdditionalProperties) {
		return false
	}
	if !intPtrEqual(a.MinProperties, b.MinProperties) || !intPtrEqual(a.MaxProperties, b.MaxProperties) {
		return false
	}
	return propertiesEquivalent(a.Properties, b.Properties)
}

func propertiesEquivalent(a, b *schema.Properties) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Len() != b.Len() {
		return false
	}
	for pair := a.Oldest(); pair != nil; pair = pair.Next() {
		bv, ok := b.Get(pair.Key)
		if !ok || !roughlyEquivalent(pair.Value, bv) {
			return false
		}
	}
	return true
}

func sameStringSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]bool, len(a))
	for _, s := range a {
		seen[s] = true
	}
	for _, s := range b {
		if !seen[s] {
			return false
		}
	}
	return true
}

func roughlyEquivalentSchemaPtr(a, b *schema.Schema) bool {
	if a == nil || b == nil {
		return a == b
	}
	return roughlyEquivalent(a, b)
}

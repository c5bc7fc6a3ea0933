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

// allMutuallyExclusive drives the anyOf-to-oneOf promotion: every pair of
// alternatives must be provably non-overlapping.
func (c *Compiler) allMutuallyExclusive(alts []*schema.Schema) bool {
	for i := 0; i < len(alts); i++ {
		for j := i + 1; j < len(alts); j++ {
			if !c.mutuallyExclusive(alts[i], alts[j], newRefGuard()) {
				return false
			}
		}
	}
	return true
}

// mutuallyExclusive is deliberately conservative: "exclusive" only on
// strong evidence, "unknown" (treated as non-exclusive) otherwise.
func (c *Compiler) mutuallyExclusive(a, b *schema.Schema, guard refGuard) bool {
	if a.IsBool || b.IsBool {
		return false
	}

	if disjointInstanceTypes(a, b) {
		return true
	}
	if incompatibleRequiredLiterals(a, b) {
		return true
	}
	if incompatibleEnumOrConst(a, b) {
		return true
	}

	if a.Ref != "" {
		return c.exclusiveThroughReference(a, b, guard)
	}
	if b.Ref != "" {
		return c.exclusiveThroughReference(b, a, guard)
	}

	return false
}

func (c *Compiler) exclusiveThroughReference(ref, other *schema.Schema, guard refGuard) bool {
	key := schema.RefKey(ref.Ref)
	target, ok := c.defs.Lookup(key)
	if !ok {
		return false
	}
	nextGuard, entered := guard.enter(key, refKeyOf(other))
	if !entered {
		return false // cycle: decline to promote rather than loop forever
	}
	return c.mutuallyExclusive(target, other, nextGuard)
}

func disjointInstanceTypes(a, b *schema.Schema) bool {
	if len(a.Types) == 0 || len(b.Types) == 0 {
		return false
	}
	bSet := make(map[schema.InstanceType]bool, len(b.Types))
	for _, t := range b.Types {
		bSet[t] = true
	}
	for _, t := range a.Types {
		if bSet[t] {
			return false
		}
	}
	return true
}

// incompatibleRequiredLiterals looks for a property name required by both
// sides where each side pins the value to a distinct literal (a singleton
// enum or const); e.g. both require "kind", one with kind pinned to "a"
// and the other to "b".
func incompatibleRequiredLiterals(a, b *schema.Schema) bool {
	if a.Object == nil || b.Object == nil {
		return false
	}
	if a.Object.Properties == nil || b.Object.Properties == nil {
		return false
	}
	for _, name := range a.Object.Required {
		if !b.Object.IsRequired(name) {
			continue
		}
		aProp, aOK := a.Object.Properties.Get(name)
		bProp, bOK := b.Object.Properties.Get(name)
		if !aOK || !bOK {
			continue
		}
		aVal, aHas := singletonLiteral(aProp)
		bVal, bHas := singletonLiteral(bProp)
		if aHas && bHas && !literalEqual(aVal, bVal) {
			return true
		}
	}
	return false
}

func incompatibleEnumOrConst(a, b *schema.Schema) bool {
	if len(a.Enum) == 0 || len(b.Enum) == 0 {
		return false
	}
	for _, v := range a.Enum {
		if literalInSet(v, b.Enum) {
			return false
		}
	}
	return true
}

// singletonLiteral reports the pinned value of a singleton enum/const
// schema, if s is one.
func singletonLiteral(s *schema.Schema) (schema.Literal, bool) {
	if s == nil || s.IsBool || len(s.Enum) != 1 {
		return nil, false
	}
	return s.Enum[0], true
}

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
	"fmt"

	"github.com/schemaforge/typegen/pkg/schema"
)

// TryMerge computes the semantic intersection of a and b: the schema
// admitting exactly the values admitted by both. It returns
// ErrUnsatisfiable when the intersection is provably empty.
func (c *Compiler) TryMerge(a, b *schema.Schema) (*schema.Schema, error) {
	return c.tryMerge(a, b, newRefGuard())
}

func (c *Compiler) tryMerge(a, b *schema.Schema, guard refGuard) (*schema.Schema, error) {
	// Short-circuits.
	if a.IsTrue() {
		return b, nil
	}
	if b.IsTrue() {
		return a, nil
	}
	if a.IsFalse() || b.IsFalse() {
		return nil, ErrUnsatisfiable
	}

	if a.Ref != "" && b.Ref != "" && schema.RefKey(a.Ref) == schema.RefKey(b.Ref) {
		return a, nil
	}
	if a.Ref != "" {
		return c.mergeReference(a, b, guard)
	}
	if b.Ref != "" {
		return c.mergeReference(b, a, guard)
	}

	merged, err := c.mergeBody(a, b, guard)
	if err != nil {
		return nil, err
	}

	merged, err = c.foldSubschemas(merged, a, guard)
	if err != nil {
		return nil, err
	}
	merged, err = c.foldSubschemas(merged, b, guard)
	if err != nil {
		return nil, err
	}

	return merged, nil
}

// mergeReference resolves ref (a Ref-only or Ref-plus-trivial-noise
// schema) against the definitions table, merges the resolved body with
// other, and returns the untouched reference if the merge result is
// roughly-equivalent to the referent, preserving the name across the
// merge instead of inlining it.
func (c *Compiler) mergeReference(ref, other *schema.Schema, guard refGuard) (*schema.Schema, error) {
	key := schema.RefKey(ref.Ref)
	target, ok := c.defs.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnresolvedReference, key)
	}

	otherKey := refKeyOf(other)
	nextGuard, entered := guard.enter(key, otherKey)
	if !entered {
		// Cycle: return the reference unchanged at this depth rather than
		// recursing forever; other's constraints are not folded in.
		return ref, nil
	}

	resolved, err := c.tryMerge(target, other, nextGuard)
	if err != nil {
		return nil, err
	}
	if roughlyEquivalent(resolved, target) {
		return ref, nil
	}
	return resolved, nil
}

func refKeyOf(s *schema.Schema) string {
	if s == nil || s.Ref == "" {
		return fmt.Sprintf("%p", s)
	}
	return schema.RefKey(s.Ref)
}

// mergeBody merges every field family except subschema combinators, which
// are folded in separately by foldSubschemas, once per operand, after the
// body merge.
func (c *Compiler) mergeBody(a, b *schema.Schema, guard refGuard) (*schema.Schema, error) {
	types, err := mergeTypes(a.Types, b.Types)
	if err != nil {
		return nil, err
	}

	format, err := mergeFormat(a.Format, b.Format)
	if err != nil {
		return nil, err
	}

	numeric, err := mergeNumeric(a.Numeric, b.Numeric)
	if err != nil {
		return nil, err
	}

	str, err := mergeString(a.String, b.String)
	if err != nil {
		return nil, err
	}

	arr, err := c.mergeArrayValidators(a.Array, b.Array, guard)
	if err != nil {
		return nil, err
	}

	obj, err := c.mergeObjectValidators(a.Object, b.Object, guard)
	if err != nil {
		return nil, err
	}

	merged := &schema.Schema{
		Types:   types,
		Format:  format,
		Numeric: numeric,
		String:  str,
		Array:   arr,
		Object:  obj,
		Title:   preferNonEmpty(a.Title, b.Title),
	}

	enum, err := mergeEnum(a, b)
	if err != nil {
		return nil, err
	}
	merged.Enum = filterEnum(enum, merged)
	merged.HasConst = a.HasConst && b.HasConst && len(merged.Enum) == 1

	if len(merged.Enum) == 0 && (len(a.Enum) > 0 || len(b.Enum) > 0) {
		return nil, ErrUnsatisfiable
	}

	return merged, nil
}

func preferNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// mergeTypes intersects two instance-type sets.
func mergeTypes(a, b []schema.InstanceType) ([]schema.InstanceType, error) {
	if len(a) == 0 {
		return append([]schema.InstanceType(nil), b...), nil
	}
	if len(b) == 0 {
		return append([]schema.InstanceType(nil), a...), nil
	}
	bSet := make(map[schema.InstanceType]bool, len(b))
	for _, t := range b {
		bSet[t] = true
	}
	var out []schema.InstanceType
	for _, t := range a {
		if bSet[t] {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil, ErrUnsatisfiable
	}
	return out, nil
}

// mergeFormat: equal is kept, one absent takes the other, ip narrows to
// ipv4/ipv6, anything else is unsatisfiable.
func mergeFormat(a, b string) (string, error) {
	if a == "" {
		return b, nil
	}
	if b == "" {
		return a, nil
	}
	if a == b {
		return a, nil
	}
	if a == "ip" && (b == "ipv4" || b == "ipv6") {
		return b, nil
	}
	if b == "ip" && (a == "ipv4" || a == "ipv6") {
		return a, nil
	}
	return "", fmt.Errorf("%w: incompatible formats %q and %q", ErrUnsatisfiable, a, b)
}

// mergeNumeric is conservative: absent takes the other, equal is kept,
// otherwise refused.
func mergeNumeric(a, b *schema.NumericValidators) (*schema.NumericValidators, error) {
	if a == nil {
		return b, nil
	}
	if b == nil {
		return a, nil
	}
	if a.Equal(b) {
		return a, nil
	}
	return nil, fmt.Errorf("%w: differing numeric validators", ErrUnsupported)
}

func mergeString(a, b *schema.StringValidators) (*schema.StringValidators, error) {
	if a == nil {
		return b, nil
	}
	if b == nil {
		return a, nil
	}
	if a.Equal(b) {
		return a, nil
	}
	return nil, fmt.Errorf("%w: differing string validators", ErrUnsupported)
}

// mergeEnum intersects the two value sets; a const has already been decoded
// as a one-element enum so it needs no special case. A nil, nil result
// (both operands unconstrained) is distinguished from "no survivors" by the
// caller checking original operand lengths.
func mergeEnum(a, b *schema.Schema) ([]schema.Literal, error) {
	aEnum, aHas := a.Enum, len(a.Enum) > 0
	bEnum, bHas := b.Enum, len(b.Enum) > 0
	if !aHas {
		return bEnum, nil
	}
	if !bHas {
		return aEnum, nil
	}
	var out []schema.Literal
	for _, v := range aEnum {
		if literalInSet(v, bEnum) {
			out = append(out, v)
		}
	}
	return out, nil
}

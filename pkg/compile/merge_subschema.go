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
	"errors"

	"github.com/schemaforge/typegen/pkg/schema"
)

// foldSubschemas folds operand's combinator (if any) and `not` clause into
// merged, which already carries the merged "body" of the two original
// operands. Called once per original operand, in the order (a folded in,
// then b folded in) by tryMerge.
func (c *Compiler) foldSubschemas(merged, operand *schema.Schema, guard refGuard) (*schema.Schema, error) {
	if operand.IsBool {
		return merged, nil
	}

	if operand.Not != nil {
		subtracted, err := c.subtractNot(merged, operand.Not)
		if err != nil {
			return nil, err
		}
		merged = subtracted
	}

	switch operand.Combinator {
	case schema.CombinatorNone:
		return merged, nil
	case schema.CombinatorAllOf:
		for _, sub := range operand.CombinatorOf {
			next, err := c.tryMerge(merged, sub, guard)
			if err != nil {
				return nil, err
			}
			merged = next
		}
		return merged, nil
	case schema.CombinatorAnyOf:
		return c.foldAlternatives(merged, operand.CombinatorOf, schema.CombinatorAnyOf, guard)
	case schema.CombinatorOneOf:
		return c.foldAlternatives(merged, operand.CombinatorOf, schema.CombinatorOneOf, guard)
	default:
		return merged, nil
	}
}

// foldAlternatives is the shared anyOf/oneOf folding algorithm (only the
// resulting combinator tag differs): pairwise-merge
// base with each alternative, drop unsatisfiable results, short-circuit
// when a merge result adds nothing new, and otherwise synthesize an allOf
// that preserves the alternative's exclusivity against its siblings.
func (c *Compiler) foldAlternatives(base *schema.Schema, alts []*schema.Schema, kind schema.Combinator, guard refGuard) (*schema.Schema, error) {
	var survivors []*schema.Schema

	for i, alt := range alts {
		candidate, err := c.tryMerge(base, alt, guard)
		if err != nil {
			if errors.Is(err, ErrUnsatisfiable) {
				c.opts.logger().Debug("dropping unsatisfiable alternative", "index", i, "combinator", kind)
				continue
			}
			return nil, err
		}

		if roughlyEquivalent(candidate, base) || roughlyEquivalent(candidate, alt) {
			survivors = append(survivors, candidate)
			continue
		}

		synthetic := &schema.Schema{
			Combinator:   schema.CombinatorAllOf,
			CombinatorOf: append([]*schema.Schema{base, alt}, negatedSiblings(alts, i)...),
		}
		survivors = append(survivors, synthetic)
	}

	switch len(survivors) {
	case 0:
		return nil, ErrUnsatisfiable
	case 1:
		return survivors[0], nil
	default:
		return &schema.Schema{Combinator: kind, CombinatorOf: survivors}, nil
	}
}

func negatedSiblings(alts []*schema.Schema, skip int) []*schema.Schema {
	var out []*schema.Schema
	for j, other := range alts {
		if j == skip {
			continue
		}
		out = append(out, &schema.Schema{Not: other})
	}
	return out
}

// subtractNot handles the recognized simple pattern, a `not` clause that
// is exactly `{required: [...]}` with no other constraints, and falls
// back to identity (a conservative loss of precision) for anything else.
// `not true` / `not false` are handled directly since they're unambiguous
// regardless of shape.
func (c *Compiler) subtractNot(positive, not *schema.Schema) (*schema.Schema, error) {
	if not.IsTrue() {
		return nil, ErrUnsatisfiable
	}
	if not.IsFalse() {
		return positive, nil
	}
	if !isBareRequiredNot(not) {
		c.opts.logger().Debug("not-subtraction falling back to identity for unrecognized shape")
		return positive, nil
	}

	result := *positive
	if result.Object != nil {
		objCopy := *result.Object
		result.Object = &objCopy
	}

	for _, name := range not.Object.Required {
		if result.Object != nil && result.Object.IsRequired(name) {
			return nil, ErrUnsatisfiable
		}
		if result.Object != nil && result.Object.Properties != nil {
			if _, ok := result.Object.Properties.Get(name); ok {
				props := clonedProperties(result.Object.Properties)
				props.Set(name, schema.False())
				result.Object.Properties = props
			}
		}
	}
	return &result, nil
}

func isBareRequiredNot(s *schema.Schema) bool {
	if s.IsBool {
		return false
	}
	return s.Object != nil &&
		len(s.Object.Required) > 0 &&
		s.Object.Properties == nil &&
		s.Object.AdditionalProperties == nil &&
		len(s.Types) == 0 &&
		s.Format == "" &&
		s.Numeric == nil &&
		s.String == nil &&
		s.Array == nil &&
		len(s.Enum) == 0 &&
		s.Combinator == schema.CombinatorNone &&
		s.Not == nil &&
		s.Ref == ""
}

func clonedProperties(p *schema.Properties) *schema.Properties {
	out := schema.NewProperties()
	for pair := p.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, pair.Value)
	}
	return out
}

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
	"github.com/schemaforge/typegen/pkg/typemodel"
)

// buildSubschema is the top-level dispatcher for a schema whose Combinator
// is set. allOf always folds by merge; anyOf is promoted to the oneOf
// classifier when every alternative is provably exclusive and otherwise
// becomes an optional-fields union struct; oneOf always goes through the
// tag classifier. A standalone `not` is subtracted during merging only,
// never converted on its own, so it lands in the unsupported branch here.
func (c *Compiler) buildSubschema(s *schema.Schema, hint string) (typemodel.TypeEntry, error) {
	switch s.Combinator {
	case schema.CombinatorAllOf:
		return c.buildAllOf(s, hint)
	case schema.CombinatorAnyOf:
		return c.buildAnyOf(s, hint)
	case schema.CombinatorOneOf:
		return c.buildOneOf(s, hint)
	default:
		return nil, fmt.Errorf("%w: combinator %s has no canonical type shape", ErrUnsupported, s.Combinator)
	}
}

// propagateMetadata copies s's title and description onto merged before
// building, where merged has none of its own, so a combinator schema that
// also carries them as sibling keywords (`allOf` alongside a `title`, for
// instance) doesn't lose them during folding. No other keyword is copied.
func propagateMetadata(s, merged *schema.Schema) *schema.Schema {
	out := *merged
	if out.Title == "" {
		out.Title = s.Title
	}
	if out.Description == "" {
		out.Description = s.Description
	}
	return &out
}

// buildAllOf folds every subschema together with TryMerge, starting from
// the fully-permissive schema, then converts the merged result. The merge
// fold produces a single flattened struct with every property in scope, so
// no separate subclass/embedding pass is needed.
func (c *Compiler) buildAllOf(s *schema.Schema, hint string) (typemodel.TypeEntry, error) {
	merged := schema.True()
	for _, sub := range s.CombinatorOf {
		next, err := c.TryMerge(merged, sub)
		if err != nil {
			return nil, err
		}
		merged = next
	}
	merged = propagateMetadata(s, merged)
	return c.buildEntry(merged, hint)
}

// buildAnyOf: when every pair of alternatives is provably mutually
// exclusive, treat it exactly like a oneOf (the classifier's output is
// indistinguishable whether the author wrote anyOf or oneOf once
// exclusivity holds); otherwise build the optional-fields union struct
// that admits any non-empty combination.
func (c *Compiler) buildAnyOf(s *schema.Schema, hint string) (typemodel.TypeEntry, error) {
	if len(s.CombinatorOf) == 0 {
		return nil, fmt.Errorf("%w: anyOf with no alternatives", ErrBadValue)
	}
	// A single-element combinator unwraps to its sole subschema rather
	// than classifying a one-alternative union.
	if len(s.CombinatorOf) == 1 {
		return c.buildEntry(propagateMetadata(s, s.CombinatorOf[0]), hint)
	}
	if c.allMutuallyExclusive(s.CombinatorOf) {
		return c.classifyOneOf(s.CombinatorOf, hint)
	}
	return c.buildOptionalUnionStruct(s.CombinatorOf, hint)
}

// buildOneOf always goes through tag classification, regardless of whether
// its alternatives are exclusive in practice: a producer who reaches for
// oneOf is declaring exclusivity as intent.
func (c *Compiler) buildOneOf(s *schema.Schema, hint string) (typemodel.TypeEntry, error) {
	if len(s.CombinatorOf) == 0 {
		return nil, fmt.Errorf("%w: oneOf with no alternatives", ErrBadValue)
	}
	// A single-element combinator unwraps to its sole subschema rather
	// than classifying a one-alternative union.
	if len(s.CombinatorOf) == 1 {
		return c.buildEntry(propagateMetadata(s, s.CombinatorOf[0]), hint)
	}
	return c.classifyOneOf(s.CombinatorOf, hint)
}

// buildOptionalUnionStruct is the anyOf fallback: a struct carrying every
// distinct property across all alternatives, each wrapped Optional, with
// DenyUnknownFields left false since an unrecognized alternative's extra
// fields aren't representable as a closed shape.
func (c *Compiler) buildOptionalUnionStruct(alts []*schema.Schema, hint string) (typemodel.TypeEntry, error) {
	name := typeName(hint)
	var properties []typemodel.Property
	seen := make(map[string]bool)

	for _, alt := range alts {
		if alt.IsBool || alt.Object == nil || alt.Object.Properties == nil {
			continue
		}
		for pair := alt.Object.Properties.Oldest(); pair != nil; pair = pair.Next() {
			key, propSchema := pair.Key, pair.Value
			if seen[key] {
				continue
			}
			seen[key] = true

			id, err := c.convert(propSchema, name+typeName(key))
			if err != nil {
				return nil, err
			}
			id = c.wrapOptional(id)

			properties = append(properties, typemodel.Property{
				FieldName:      fieldName(key),
				SerializedName: key,
				Type:           id,
				Required:       false,
			})
		}
	}

	return typemodel.Struct{Name: name, Properties: properties}, nil
}

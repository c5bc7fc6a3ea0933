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
	"fmt"

	"github.com/schemaforge/typegen/pkg/schema"
)

// mergeObjectValidators merges the object validator family: required
// unions, properties merge pointwise, additionalProperties intersects, and
// size bounds tighten.
func (c *Compiler) mergeObjectValidators(a, b *schema.ObjectValidators, guard refGuard) (*schema.ObjectValidators, error) {
	if a == nil {
		return b, nil
	}
	if b == nil {
		return a, nil
	}

	required := unionStrings(a.Required, b.Required)

	additional, err := mergeAdditionalProperties(a.AdditionalProperties, b.AdditionalProperties, c, guard)
	if err != nil {
		return nil, err
	}

	props, err := c.mergeProperties(a, b, required, guard)
	if err != nil {
		return nil, err
	}

	minProps, err := mergeMaxAsMin(a.MinProperties, b.MinProperties)
	if err != nil {
		return nil, err
	}
	maxProps, err := mergeMax(a.MaxProperties, b.MaxProperties)
	if err != nil {
		return nil, err
	}
	if minProps != nil && maxProps != nil && *minProps > *maxProps {
		return nil, fmt.Errorf("%w: object min/max property bounds don't overlap", ErrUnsatisfiable)
	}

	return &schema.ObjectValidators{
		Properties:           props,
		Required:             required,
		AdditionalProperties: additional,
		PatternProperties:    preferNonNilProperties(a.PatternProperties, b.PatternProperties),
		PropertyNames:        preferNonNilSchema(a.PropertyNames, b.PropertyNames),
		MinProperties:        minProps,
		MaxProperties:        maxProps,
	}, nil
}

func mergeMaxAsMin(a, b *int) (*int, error) {
	return mergeMin(a, b), nil
}

func preferNonNilProperties(a, b *schema.Properties) *schema.Properties {
	if a != nil {
		return a
	}
	return b
}

func preferNonNilSchema(a, b *schema.Schema) *schema.Schema {
	if a != nil {
		return a
	}
	return b
}

func unionStrings(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, s := range a {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range b {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// mergeAdditionalProperties: "any" yields to the other side; false wins
// outright; otherwise merge.
func mergeAdditionalProperties(a, b *schema.Schema, c *Compiler, guard refGuard) (*schema.Schema, error) {
	aAny := a == nil || a.IsTrue()
	bAny := b == nil || b.IsTrue()
	if a != nil && a.IsFalse() {
		return schema.False(), nil
	}
	if b != nil && b.IsFalse() {
		return schema.False(), nil
	}
	if aAny {
		return b, nil
	}
	if bAny {
		return a, nil
	}
	return c.tryMerge(a, b, guard)
}

// mergeProperties: shared names merge their schemas; names unique to one
// side are checked against the other
// side's additionalProperties (required-but-inadmissible is unsatisfiable;
// optional-but-inadmissible becomes schema `false`, or is dropped entirely
// if the other side's additional is `false`).
func (c *Compiler) mergeProperties(a, b *schema.ObjectValidators, required []string, guard refGuard) (*schema.Properties, error) {
	if a.Properties == nil && b.Properties == nil {
		return nil, nil
	}

	out := schema.NewProperties()
	requiredSet := make(map[string]bool, len(required))
	for _, r := range required {
		requiredSet[r] = true
	}

	if a.Properties != nil {
		for pair := a.Properties.Oldest(); pair != nil; pair = pair.Next() {
			name, aSchema := pair.Key, pair.Value
			if b.Properties != nil {
				if bSchema, ok := b.Properties.Get(name); ok {
					merged, err := c.tryMerge(aSchema, bSchema, guard)
					if err != nil {
						return nil, err
					}
					out.Set(name, merged)
					continue
				}
			}
			merged, err := admitAgainstOther(aSchema, b.AdditionalProperties, requiredSet[name], c, guard)
			if err != nil {
				return nil, err
			}
			if merged != nil {
				out.Set(name, merged)
			}
		}
	}

	if b.Properties != nil {
		for pair := b.Properties.Oldest(); pair != nil; pair = pair.Next() {
			name := pair.Key
			if a.Properties != nil {
				if _, ok := a.Properties.Get(name); ok {
					continue // already handled above
				}
			}
			merged, err := admitAgainstOther(pair.Value, a.AdditionalProperties, requiredSet[name], c, guard)
			if err != nil {
				return nil, err
			}
			if merged != nil {
				out.Set(name, merged)
			}
		}
	}

	return out, nil
}

func admitAgainstOther(propSchema, otherAdditional *schema.Schema, isRequired bool, c *Compiler, guard refGuard) (*schema.Schema, error) {
	if otherAdditional == nil || otherAdditional.IsTrue() {
		return propSchema, nil
	}
	if otherAdditional.IsFalse() {
		if isRequired {
			return nil, fmt.Errorf("%w: required property not admitted by other side's additionalProperties", ErrUnsatisfiable)
		}
		return nil, nil // drop the property entirely
	}
	merged, err := c.tryMerge(propSchema, otherAdditional, guard)
	if err != nil {
		// An optional property whose intersection is proven empty keeps
		// its named slot with the impossible schema; any other error
		// (an unsupported construct) propagates unchanged.
		if isRequired || !errors.Is(err, ErrUnsatisfiable) {
			return nil, err
		}
		return schema.False(), nil
	}
	return merged, nil
}

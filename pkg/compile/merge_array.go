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

// mergeArrayValidators merges size bounds, uniqueItems, contains, and the
// items/additionalItems pair.
func (c *Compiler) mergeArrayValidators(a, b *schema.ArrayValidators, guard refGuard) (*schema.ArrayValidators, error) {
	if a == nil {
		return b, nil
	}
	if b == nil {
		return a, nil
	}

	maxItems, err := mergeMax(a.MaxItems, b.MaxItems)
	if err != nil {
		return nil, err
	}
	minItems := mergeMin(a.MinItems, b.MinItems)
	if maxItems != nil && minItems != nil && *minItems > *maxItems {
		return nil, fmt.Errorf("%w: array min/max bounds don't overlap", ErrUnsatisfiable)
	}

	contains, err := mergeContains(a.Contains, b.Contains)
	if err != nil {
		return nil, err
	}

	items, additional, truncatedMax, err := c.mergeItems(a, b, guard, maxItems)
	if err != nil {
		return nil, err
	}
	if truncatedMax != nil {
		maxItems = clampMax(maxItems, *truncatedMax)
		// A truncation that lands below the declared minItems is
		// unsatisfiable. When minItems is unspecified the floor defaults
		// to 1 rather than 0: an unconstrained array still admits the
		// single-element case, so a truncation to an empty sequence must
		// not succeed.
		effectiveMin := 1
		if minItems != nil {
			effectiveMin = *minItems
		}
		if maxItems != nil && effectiveMin > *maxItems {
			return nil, fmt.Errorf("%w: item-merge truncation drops below minItems", ErrUnsatisfiable)
		}
	}

	// Once the sequence reaches the declared maxItems, no position beyond
	// it is ever reachable, so the additional-items schema is moot.
	if items != nil && maxItems != nil && len(items.Sequence) == *maxItems {
		additional = nil
	}

	return &schema.ArrayValidators{
		Items:           items,
		AdditionalItems: additional,
		MinItems:        minItems,
		MaxItems:        maxItems,
		UniqueItems:     a.UniqueItems || b.UniqueItems,
		Contains:        contains,
	}, nil
}

func mergeContains(a, b *schema.Schema) (*schema.Schema, error) {
	if a == nil {
		return b, nil
	}
	if b == nil {
		return a, nil
	}
	if roughlyEquivalent(a, b) {
		return a, nil
	}
	return nil, fmt.Errorf("%w: differing contains schemas", ErrUnsatisfiable)
}

func mergeMax(a, b *int) (*int, error) {
	if a == nil {
		return b, nil
	}
	if b == nil {
		return a, nil
	}
	if *a < *b {
		return a, nil
	}
	return b, nil
}

func mergeMin(a, b *int) *int {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if *a > *b {
		return a
	}
	return b
}

func clampMax(current *int, truncated int) *int {
	if current == nil || truncated < *current {
		return &truncated
	}
	return current
}

// mergeItems handles the nine-case items/additionalItems matrix, collapsed
// to the three shape combinations actually distinguished:
// uniform-vs-uniform, uniform-vs-sequence, sequence-vs-sequence. Returns the
// merged ItemsSpec, the merged AdditionalItems (meaningful only when the
// result is itself a sequence), and, when a sequence/sequence merge
// truncates early, the truncation point as a maxItems override.
func (c *Compiler) mergeItems(a, b *schema.ArrayValidators, guard refGuard, maxItems *int) (*schema.ItemsSpec, *schema.Schema, *int, error) {
	aItems, bItems := a.Items, b.Items
	if aItems == nil && bItems == nil {
		return nil, nil, nil, nil
	}
	if aItems == nil {
		return bItems, b.AdditionalItems, nil, nil
	}
	if bItems == nil {
		return aItems, a.AdditionalItems, nil, nil
	}

	switch {
	case aItems.Uniform != nil && bItems.Uniform != nil:
		merged, err := c.tryMerge(aItems.Uniform, bItems.Uniform, guard)
		if err != nil {
			return nil, nil, nil, err
		}
		return &schema.ItemsSpec{Uniform: merged}, nil, nil, nil

	case aItems.Uniform != nil && bItems.Sequence != nil:
		return c.mergeUniformVsSequence(aItems.Uniform, a.AdditionalItems, bItems.Sequence, b.AdditionalItems, guard)

	case aItems.Sequence != nil && bItems.Uniform != nil:
		return c.mergeUniformVsSequence(bItems.Uniform, b.AdditionalItems, aItems.Sequence, a.AdditionalItems, guard)

	default: // both Sequence
		return c.mergeSequences(aItems.Sequence, a.AdditionalItems, bItems.Sequence, b.AdditionalItems, guard, maxItems)
	}
}

func (c *Compiler) mergeUniformVsSequence(uniform, uniformAdditional *schema.Schema, seq []*schema.Schema, seqAdditional *schema.Schema, guard refGuard) (*schema.ItemsSpec, *schema.Schema, *int, error) {
	merged := make([]*schema.Schema, len(seq))
	for i, s := range seq {
		m, err := c.tryMerge(uniform, s, guard)
		if err != nil {
			return nil, nil, nil, err
		}
		merged[i] = m
	}
	additionalRHS := seqAdditional
	if additionalRHS == nil {
		additionalRHS = schema.True()
	}
	additionalLHS := uniformAdditional
	if additionalLHS == nil {
		additionalLHS = schema.True()
	}
	mergedAdditional, err := c.tryMerge(additionalLHS, additionalRHS, guard)
	if err != nil {
		return nil, nil, nil, err
	}
	return &schema.ItemsSpec{Sequence: merged}, mergedAdditional, nil, nil
}

// mergeSequences performs the sequence/sequence merge: iterate positions up
// to the longer length (capped by the merged maxItems when finite), using
// each side's
// AdditionalItems (or "any") past its own length, truncating the result at
// the first unsatisfiable position.
func (c *Compiler) mergeSequences(aSeq []*schema.Schema, aAdd *schema.Schema, bSeq []*schema.Schema, bAdd *schema.Schema, guard refGuard, maxItems *int) (*schema.ItemsSpec, *schema.Schema, *int, error) {
	n := len(aSeq)
	if len(bSeq) > n {
		n = len(bSeq)
	}
	if maxItems != nil && *maxItems < n {
		n = *maxItems
	}
	aAny := aAdd
	if aAny == nil {
		aAny = schema.True()
	}
	bAny := bAdd
	if bAny == nil {
		bAny = schema.True()
	}

	var merged []*schema.Schema
	for i := 0; i < n; i++ {
		aPos := aAny
		if i < len(aSeq) {
			aPos = aSeq[i]
		}
		bPos := bAny
		if i < len(bSeq) {
			bPos = bSeq[i]
		}
		m, err := c.tryMerge(aPos, bPos, guard)
		if err != nil {
			// Only a proven-empty position truncates; anything else
			// (an unsupported construct, say) stays fatal.
			if !errors.Is(err, ErrUnsatisfiable) {
				return nil, nil, nil, err
			}
			truncated := i
			return &schema.ItemsSpec{Sequence: merged}, schema.False(), &truncated, nil
		}
		merged = append(merged, m)
	}

	mergedAdditional, err := c.tryMerge(aAny, bAny, guard)
	if err != nil {
		if !errors.Is(err, ErrUnsatisfiable) {
			return nil, nil, nil, err
		}
		mergedAdditional = schema.False()
	}
	return &schema.ItemsSpec{Sequence: merged}, mergedAdditional, nil, nil
}

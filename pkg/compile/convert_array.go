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
	"github.com/schemaforge/typegen/pkg/typemodel"
)

// buildArray produces the array/tuple shapes. uniqueItems, contains, and
// size bounds on vectors are accepted on the schema model but not enforced
// in the produced type.
func (c *Compiler) buildArray(s *schema.Schema, hint string) (typemodel.TypeEntry, error) {
	arr := s.Array
	if arr == nil || arr.Items == nil {
		return typemodel.Array{Elem: c.reg.Intern(0, typemodel.AnyJSON())}, nil
	}

	if seq := arr.Items.Sequence; seq != nil && isExactTuple(arr, len(seq)) {
		ids := make([]typemodel.TypeID, len(seq))
		for i, elem := range seq {
			id, err := c.convert(elem, hint)
			if err != nil {
				return nil, err
			}
			ids[i] = id
		}
		return typemodel.Tuple{Elems: ids}, nil
	}

	if uniform := arr.Items.Uniform; uniform != nil {
		id, err := c.convert(uniform, itemNaming(hint))
		if err != nil {
			return nil, err
		}
		return typemodel.Array{Elem: id}, nil
	}

	// A positional sequence without matching min/maxItems pins no single
	// element type, so fall back to the any-JSON element, matching the
	// "array of any" case.
	return typemodel.Array{Elem: c.reg.Intern(0, typemodel.AnyJSON())}, nil
}

// isExactTuple reports whether arr's bounds pin the array to exactly n
// elements (minItems = maxItems = N), the tuple shape.
func isExactTuple(arr *schema.ArrayValidators, n int) bool {
	return arr.MinItems != nil && arr.MaxItems != nil &&
		*arr.MinItems == n && *arr.MaxItems == n
}

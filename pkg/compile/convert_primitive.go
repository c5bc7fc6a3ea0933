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
	"math"

	"github.com/schemaforge/typegen/pkg/schema"
	"github.com/schemaforge/typegen/pkg/typemodel"
)

// integerCandidate is one row of the ordered candidate table. NonZero rows
// have no Format name of their own and are emitted as BuiltinOpaque hints,
// since Go has no built-in non-zero integer type, but they still
// participate in the bounds-narrowing scan.
type integerCandidate struct {
	Format string // empty for NonZero rows, which no format string selects directly
	Kind   typemodel.PrimitiveKind
	Opaque string // non-empty for NonZero rows; Kind is ignored when set
	Lo, Hi float64
}

// integerCandidates is walked most-restrictive-first: i8, NonZero<u8>, u8,
// i16, NonZero<u16>, u16, i32 (also named "int"), NonZero<u32>, u32, i64,
// NonZero<u64>, u64.
var integerCandidates = []integerCandidate{
	{Format: "int8", Kind: typemodel.Int8, Lo: -128, Hi: 127},
	{Opaque: "nonzero_u8", Lo: 1, Hi: 255},
	{Format: "uint8", Kind: typemodel.Uint8, Lo: 0, Hi: 255},
	{Format: "int16", Kind: typemodel.Int16, Lo: -32768, Hi: 32767},
	{Opaque: "nonzero_u16", Lo: 1, Hi: 65535},
	{Format: "uint16", Kind: typemodel.Uint16, Lo: 0, Hi: 65535},
	{Format: "int", Kind: typemodel.Int32, Lo: -2147483648, Hi: 2147483647},
	{Format: "int32", Kind: typemodel.Int32, Lo: -2147483648, Hi: 2147483647},
	{Opaque: "nonzero_u32", Lo: 1, Hi: 4294967295},
	{Format: "uint", Kind: typemodel.Uint32, Lo: 0, Hi: 4294967295},
	{Format: "uint32", Kind: typemodel.Uint32, Lo: 0, Hi: 4294967295},
	{Format: "int64", Kind: typemodel.Int64, Lo: math.MinInt64, Hi: math.MaxInt64},
	{Opaque: "nonzero_u64", Lo: 1, Hi: 18446744073709551615},
	{Format: "uint64", Kind: typemodel.Uint64, Lo: 0, Hi: 18446744073709551615},
}

// buildInteger picks the narrowest primitive whose range contains the
// schema's stated bounds, honoring an explicit format when consistent.
func (c *Compiler) buildInteger(s *schema.Schema) (typemodel.TypeEntry, error) {
	lo, hi := integerBounds(s.Numeric)

	if s.Format != "" {
		for _, cand := range integerCandidates {
			if cand.Format == s.Format && boundsConsistent(cand, lo, hi) {
				return candidateEntry(cand), nil
			}
		}
	}

	if lo == nil && hi == nil {
		return typemodel.Primitive{Kind: typemodel.Int64}, nil
	}

	for _, cand := range integerCandidates {
		if rangeContains(cand, lo, hi) {
			entry := candidateEntry(cand)
			c.opts.logger().Debug("selected integer candidate", "bounds_lo", lo, "bounds_hi", hi, "candidate", entry)
			return entry, nil
		}
	}

	return nil, fmt.Errorf("%w: integer bounds [%v, %v] fit no candidate type", ErrUnsupported, lo, hi)
}

func candidateEntry(cand integerCandidate) typemodel.TypeEntry {
	if cand.Opaque != "" {
		return typemodel.BuiltinOpaque{TypeName: cand.Opaque}
	}
	return typemodel.Primitive{Kind: cand.Kind}
}

// boundsConsistent reports whether the stated bounds are either entirely
// absent or equal to the candidate's full range, the condition under
// which an explicit format is honored directly.
func boundsConsistent(cand integerCandidate, lo, hi *float64) bool {
	if lo == nil && hi == nil {
		return true
	}
	if lo != nil && *lo != cand.Lo {
		return false
	}
	if hi != nil && *hi != cand.Hi {
		return false
	}
	return true
}

func rangeContains(cand integerCandidate, lo, hi *float64) bool {
	if lo != nil && *lo < cand.Lo {
		return false
	}
	if hi != nil && *hi > cand.Hi {
		return false
	}
	return true
}

// integerBounds combines minimum/exclusiveMinimum into one lower bound (the
// tighter of the two, with exclusive adding one) and likewise for the
// upper bound.
func integerBounds(n *schema.NumericValidators) (lo, hi *float64) {
	if n == nil {
		return nil, nil
	}
	if n.Minimum != nil {
		v := *n.Minimum
		lo = &v
	}
	if n.ExclusiveMinimum != nil {
		v := *n.ExclusiveMinimum + 1
		if lo == nil || v > *lo {
			lo = &v
		}
	}
	if n.Maximum != nil {
		v := *n.Maximum
		hi = &v
	}
	if n.ExclusiveMaximum != nil {
		v := *n.ExclusiveMaximum - 1
		if hi == nil || v < *hi {
			hi = &v
		}
	}
	return lo, hi
}

// buildNumber always produces f64; bound validators on a bare `number`
// schema (as opposed to `integer`) are refused.
func (c *Compiler) buildNumber(s *schema.Schema) (typemodel.TypeEntry, error) {
	if s.Numeric != nil && (s.Numeric.Minimum != nil || s.Numeric.Maximum != nil ||
		s.Numeric.ExclusiveMinimum != nil || s.Numeric.ExclusiveMaximum != nil) {
		return nil, fmt.Errorf("%w: numeric validators on a \"number\" schema are not supported", ErrUnsupported)
	}
	return typemodel.Primitive{Kind: typemodel.Float64}, nil
}

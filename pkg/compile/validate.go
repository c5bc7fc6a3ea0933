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

// validatesAgainst is the helper the merger uses to filter enumerations:
// not a general runtime validator, just enough of one to decide whether a
// literal value admitted by one enum operand is still admitted by the
// merged schema's other validators.
func validatesAgainst(s *schema.Schema, v schema.Literal) bool {
	if s == nil || s.IsTrue() {
		return true
	}
	if s.IsFalse() {
		return false
	}
	if k := kindOf(v); len(s.Types) > 0 && !s.HasType(k) &&
		!(k == schema.TypeInteger && s.HasType(schema.TypeNumber)) {
		return false
	}
	if !validatesNumeric(s.Numeric, v) {
		return false
	}
	if !validatesString(s.String, v) {
		return false
	}
	if len(s.Enum) > 0 && !literalInSet(v, s.Enum) {
		return false
	}
	return true
}

// kindOf maps a decoded JSON literal to its instance type. Integers decode
// as float64 like everything numeric; distinguishing "integer" from
// "number" is done by checking the value has no fractional part.
func kindOf(v schema.Literal) schema.InstanceType {
	switch val := v.(type) {
	case nil:
		return schema.TypeNull
	case bool:
		return schema.TypeBoolean
	case float64:
		if val == float64(int64(val)) {
			return schema.TypeInteger
		}
		return schema.TypeNumber
	case string:
		return schema.TypeString
	case []schema.Literal:
		return schema.TypeArray
	case map[string]schema.Literal:
		return schema.TypeObject
	default:
		return schema.TypeNull
	}
}

func validatesNumeric(n *schema.NumericValidators, v schema.Literal) bool {
	if n == nil {
		return true
	}
	f, ok := v.(float64)
	if !ok {
		return true // not a numeric literal; instance-type check already covers mismatches
	}
	if n.Minimum != nil && f < *n.Minimum {
		return false
	}
	if n.Maximum != nil && f > *n.Maximum {
		return false
	}
	if n.ExclusiveMinimum != nil && f <= *n.ExclusiveMinimum {
		return false
	}
	if n.ExclusiveMaximum != nil && f >= *n.ExclusiveMaximum {
		return false
	}
	return true
}

func validatesString(sv *schema.StringValidators, v schema.Literal) bool {
	if sv == nil {
		return true
	}
	str, ok := v.(string)
	if !ok {
		return true
	}
	n := len([]rune(str))
	if sv.MinLength != nil && n < *sv.MinLength {
		return false
	}
	if sv.MaxLength != nil && n > *sv.MaxLength {
		return false
	}
	// Pattern is accepted but not enforced.
	return true
}

func literalInSet(v schema.Literal, set []schema.Literal) bool {
	for _, s := range set {
		if literalEqual(v, s) {
			return true
		}
	}
	return false
}

// filterEnum drops values from enum that no longer validate against the
// rest of the merged schema's fields, the final step of enum merging.
func filterEnum(enum []schema.Literal, s *schema.Schema) []schema.Literal {
	if enum == nil {
		return nil
	}
	out := make([]schema.Literal, 0, len(enum))
	for _, v := range enum {
		if validatesAgainst(s, v) {
			out = append(out, v)
		}
	}
	return out
}

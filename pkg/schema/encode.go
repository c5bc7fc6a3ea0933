// Copyright 2026 The typegen Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the specific language governing permissions and limitations under the License.

package schema

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Marshal serializes a Schema back to JSON Schema wire form. It is the
// inverse of decodeSchema/Parse, so the schema model round-trips through
// JSON, except that the order of properties is not preserved.
func Marshal(s *Schema) ([]byte, error) {
	m, err := toWireMap(s)
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

func toWireMap(s *Schema) (any, error) {
	if s == nil {
		return true, nil
	}
	if s.IsBool {
		return s.BoolValue, nil
	}

	m := make(map[string]any)

	switch len(s.Types) {
	case 0:
	case 1:
		m["type"] = string(s.Types[0])
	default:
		types := make([]string, len(s.Types))
		for i, t := range s.Types {
			types[i] = string(t)
		}
		m["type"] = types
	}

	if s.Format != "" {
		m["format"] = s.Format
	}
	if s.Title != "" {
		m["title"] = s.Title
	}
	if s.Description != "" {
		m["description"] = s.Description
	}
	if s.Ref != "" {
		m["$ref"] = s.Ref
	}

	if n := s.Numeric; n != nil {
		putFloatPtr(m, "minimum", n.Minimum)
		putFloatPtr(m, "maximum", n.Maximum)
		putFloatPtr(m, "exclusiveMinimum", n.ExclusiveMinimum)
		putFloatPtr(m, "exclusiveMaximum", n.ExclusiveMaximum)
		putFloatPtr(m, "multipleOf", n.MultipleOf)
	}

	if sv := s.String; sv != nil {
		putIntPtr(m, "minLength", sv.MinLength)
		putIntPtr(m, "maxLength", sv.MaxLength)
		if sv.Pattern != nil {
			m["pattern"] = *sv.Pattern
		}
	}

	if err := putArrayValidators(m, s.Array); err != nil {
		return nil, err
	}
	if err := putObjectValidators(m, s.Object); err != nil {
		return nil, err
	}

	if len(s.Enum) > 0 {
		if s.HasConst && len(s.Enum) == 1 {
			m["const"] = s.Enum[0]
		} else {
			m["enum"] = s.Enum
		}
	}

	if err := putCombinator(m, s); err != nil {
		return nil, err
	}

	if s.ForeignType != nil {
		hint := map[string]any{"path": s.ForeignType.Path}
		if s.ForeignType.Crate != "" {
			hint["crate"] = s.ForeignType.Crate
		}
		if s.ForeignType.Version != "" {
			hint["version"] = s.ForeignType.Version
		}
		if len(s.ForeignType.Parameters) > 0 {
			params := make([]any, len(s.ForeignType.Parameters))
			for i, p := range s.ForeignType.Parameters {
				pm, err := toWireMap(p)
				if err != nil {
					return nil, err
				}
				params[i] = pm
			}
			hint["parameters"] = params
		}
		m["x-"+s.ForeignType.Target] = hint
	}
	for k, v := range s.Extensions {
		m[k] = v
	}

	return m, nil
}

func putFloatPtr(m map[string]any, key string, v *float64) {
	if v != nil {
		m[key] = *v
	}
}

func putIntPtr(m map[string]any, key string, v *int) {
	if v != nil {
		m[key] = *v
	}
}

func putArrayValidators(m map[string]any, a *ArrayValidators) error {
	if a == nil {
		return nil
	}
	if a.Items != nil {
		switch {
		case a.Items.Uniform != nil:
			wm, err := toWireMap(a.Items.Uniform)
			if err != nil {
				return err
			}
			m["items"] = wm
		case a.Items.Sequence != nil:
			seq := make([]any, len(a.Items.Sequence))
			for i, sub := range a.Items.Sequence {
				wm, err := toWireMap(sub)
				if err != nil {
					return err
				}
				seq[i] = wm
			}
			m["items"] = seq
		}
	}
	if a.AdditionalItems != nil {
		wm, err := toWireMap(a.AdditionalItems)
		if err != nil {
			return err
		}
		m["additionalItems"] = wm
	}
	if a.Contains != nil {
		wm, err := toWireMap(a.Contains)
		if err != nil {
			return err
		}
		m["contains"] = wm
	}
	putIntPtr(m, "minItems", a.MinItems)
	putIntPtr(m, "maxItems", a.MaxItems)
	if a.UniqueItems {
		m["uniqueItems"] = true
	}
	return nil
}

func putObjectValidators(m map[string]any, o *ObjectValidators) error {
	if o == nil {
		return nil
	}
	if o.Properties != nil && o.Properties.Len() > 0 {
		props := make(map[string]any, o.Properties.Len())
		for pair := o.Properties.Oldest(); pair != nil; pair = pair.Next() {
			wm, err := toWireMap(pair.Value)
			if err != nil {
				return err
			}
			props[pair.Key] = wm
		}
		m["properties"] = props
	}
	if len(o.Required) > 0 {
		m["required"] = o.Required
	}
	if o.PatternProperties != nil && o.PatternProperties.Len() > 0 {
		pp := make(map[string]any, o.PatternProperties.Len())
		for pair := o.PatternProperties.Oldest(); pair != nil; pair = pair.Next() {
			wm, err := toWireMap(pair.Value)
			if err != nil {
				return err
			}
			pp[pair.Key] = wm
		}
		m["patternProperties"] = pp
	}
	if o.AdditionalProperties != nil {
		wm, err := toWireMap(o.AdditionalProperties)
		if err != nil {
			return err
		}
		m["additionalProperties"] = wm
	}
	if o.PropertyNames != nil {
		wm, err := toWireMap(o.PropertyNames)
		if err != nil {
			return err
		}
		m["propertyNames"] = wm
	}
	putIntPtr(m, "minProperties", o.MinProperties)
	putIntPtr(m, "maxProperties", o.MaxProperties)
	return nil
}

func putCombinator(m map[string]any, s *Schema) error {
	encodeList := func(list []*Schema) ([]any, error) {
		out := make([]any, len(list))
		for i, sub := range list {
			wm, err := toWireMap(sub)
			if err != nil {
				return nil, err
			}
			out[i] = wm
		}
		return out, nil
	}

	switch s.Combinator {
	case CombinatorAllOf:
		list, err := encodeList(s.CombinatorOf)
		if err != nil {
			return err
		}
		m["allOf"] = list
	case CombinatorAnyOf:
		list, err := encodeList(s.CombinatorOf)
		if err != nil {
			return err
		}
		m["anyOf"] = list
	case CombinatorOneOf:
		list, err := encodeList(s.CombinatorOf)
		if err != nil {
			return err
		}
		m["oneOf"] = list
	case CombinatorNot:
		wm, err := toWireMap(s.Not)
		if err != nil {
			return err
		}
		m["not"] = wm
	}
	return nil
}

// MarshalDefinitions serializes a document's definitions table back to a
// "definitions" JSON object. The object is built from a map, so table
// order is not kept.
func MarshalDefinitions(d *Definitions) ([]byte, error) {
	out := make(map[string]any)
	for _, k := range d.Keys() {
		s, _ := d.Lookup(k)
		wm, err := toWireMap(s)
		if err != nil {
			return nil, fmt.Errorf("schema: encoding definition %q: %w", k, err)
		}
		out[k] = wm
	}
	return json.Marshal(out)
}

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
	"bytes"
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Document is the top-level shape this package parses: a root schema plus
// a "definitions" object mapping name to schema. "$defs" is accepted as a
// synonym since it's the common Draft 2019-09+ spelling.
type Document struct {
	Root        *Schema
	Definitions *Definitions
}

// Parse decodes a JSON Schema document (root schema plus its definitions
// table) from raw JSON bytes.
func Parse(data []byte) (*Document, error) {
	var top struct {
		Definitions map[string]json.RawMessage `json:"definitions"`
		Defs        map[string]json.RawMessage `json:"$defs"`
	}
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("schema: decoding document: %w", err)
	}

	defsRaw := top.Definitions
	if defsRaw == nil {
		defsRaw = top.Defs
	}

	keys := make([]string, 0, len(defsRaw))
	for k := range defsRaw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lookup := make(map[string]*Schema, len(defsRaw))
	for _, k := range keys {
		s, err := decodeSchema(defsRaw[k])
		if err != nil {
			return nil, fmt.Errorf("schema: decoding definition %q: %w", k, err)
		}
		lookup[k] = s
	}

	root, err := decodeSchema(data)
	if err != nil {
		return nil, fmt.Errorf("schema: decoding root: %w", err)
	}

	return &Document{Root: root, Definitions: NewDefinitions(keys, lookup)}, nil
}

// wireSchema mirrors the recognized JSON Schema object keywords. Its
// fields are decoded as raw JSON and lowered into Schema by
// decodeSchema, since several keywords (type, items, enum/const,
// allOf/anyOf/oneOf/not, additionalProperties) are polymorphic in shape.
type wireSchema struct {
	Type   json.RawMessage `json:"type,omitempty"`
	Format string          `json:"format,omitempty"`

	Minimum          *float64 `json:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum,omitempty"`
	MultipleOf       *float64 `json:"multipleOf,omitempty"`

	MinLength *int    `json:"minLength,omitempty"`
	MaxLength *int    `json:"maxLength,omitempty"`
	Pattern   *string `json:"pattern,omitempty"`

	Items           json.RawMessage `json:"items,omitempty"`
	AdditionalItems json.RawMessage `json:"additionalItems,omitempty"`
	MinItems        *int            `json:"minItems,omitempty"`
	MaxItems        *int            `json:"maxItems,omitempty"`
	UniqueItems     bool            `json:"uniqueItems,omitempty"`
	Contains        json.RawMessage `json:"contains,omitempty"`

	Properties           *orderedmap.OrderedMap[string, json.RawMessage] `json:"properties,omitempty"`
	Required             []string                                        `json:"required,omitempty"`
	AdditionalProperties json.RawMessage                                 `json:"additionalProperties,omitempty"`
	PatternProperties    *orderedmap.OrderedMap[string, json.RawMessage] `json:"patternProperties,omitempty"`
	PropertyNames        json.RawMessage                                 `json:"propertyNames,omitempty"`
	MinProperties        *int                                            `json:"minProperties,omitempty"`
	MaxProperties        *int                                            `json:"maxProperties,omitempty"`

	Enum  []json.RawMessage `json:"enum,omitempty"`
	Const json.RawMessage   `json:"const,omitempty"`

	AllOf []json.RawMessage `json:"allOf,omitempty"`
	AnyOf []json.RawMessage `json:"anyOf,omitempty"`
	OneOf []json.RawMessage `json:"oneOf,omitempty"`
	Not   json.RawMessage   `json:"not,omitempty"`

	Ref string `json:"$ref,omitempty"`

	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// decodeSchema decodes a single raw JSON Schema node, which may be the
// boolean literal `true`/`false` or an object.
func decodeSchema(raw json.RawMessage) (*Schema, error) {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) == 0:
		return True(), nil
	case string(trimmed) == "true":
		return True(), nil
	case string(trimmed) == "false":
		return False(), nil
	}

	var w wireSchema
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}

	var extFields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &extFields); err != nil {
		return nil, err
	}

	s := &Schema{
		Format:      w.Format,
		Title:       w.Title,
		Description: w.Description,
		Ref:         w.Ref,
	}

	types, err := decodeTypes(w.Type)
	if err != nil {
		return nil, err
	}
	s.Types = types

	if hasNumericValidator(w) {
		s.Numeric = &NumericValidators{
			Minimum:          w.Minimum,
			Maximum:          w.Maximum,
			ExclusiveMinimum: w.ExclusiveMinimum,
			ExclusiveMaximum: w.ExclusiveMaximum,
			MultipleOf:       w.MultipleOf,
		}
	}

	if w.MinLength != nil || w.MaxLength != nil || w.Pattern != nil {
		s.String = &StringValidators{MinLength: w.MinLength, MaxLength: w.MaxLength, Pattern: w.Pattern}
	}

	if err := decodeArrayValidators(s, w); err != nil {
		return nil, err
	}

	if err := decodeObjectValidators(s, w); err != nil {
		return nil, err
	}

	if len(w.Enum) > 0 {
		vals := make([]Literal, len(w.Enum))
		for i, raw := range w.Enum {
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, err
			}
			vals[i] = v
		}
		s.Enum = vals
	} else if len(w.Const) > 0 {
		var v any
		if err := json.Unmarshal(w.Const, &v); err != nil {
			return nil, err
		}
		s.Enum = []Literal{v}
		s.HasConst = true
	}

	if err := decodeCombinator(s, w); err != nil {
		return nil, err
	}

	if err := decodeExtensions(s, extFields); err != nil {
		return nil, err
	}

	return s, nil
}

func hasNumericValidator(w wireSchema) bool {
	return w.Minimum != nil || w.Maximum != nil || w.ExclusiveMinimum != nil ||
		w.ExclusiveMaximum != nil || w.MultipleOf != nil
}

func decodeTypes(raw json.RawMessage) ([]InstanceType, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '"' {
		var single string
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, err
		}
		return []InstanceType{InstanceType(single)}, nil
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err != nil {
		return nil, err
	}
	out := make([]InstanceType, len(many))
	for i, t := range many {
		out[i] = InstanceType(t)
	}
	return out, nil
}

func decodeArrayValidators(s *Schema, w wireSchema) error {
	if len(w.Items) == 0 && len(w.AdditionalItems) == 0 && w.MinItems == nil &&
		w.MaxItems == nil && !w.UniqueItems && len(w.Contains) == 0 {
		return nil
	}

	av := &ArrayValidators{MinItems: w.MinItems, MaxItems: w.MaxItems, UniqueItems: w.UniqueItems}

	if len(w.Items) > 0 {
		trimmed := bytes.TrimSpace(w.Items)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			var elems []json.RawMessage
			if err := json.Unmarshal(w.Items, &elems); err != nil {
				return err
			}
			seq := make([]*Schema, len(elems))
			for i, e := range elems {
				sub, err := decodeSchema(e)
				if err != nil {
					return err
				}
				seq[i] = sub
			}
			av.Items = &ItemsSpec{Sequence: seq}
		} else {
			sub, err := decodeSchema(w.Items)
			if err != nil {
				return err
			}
			av.Items = &ItemsSpec{Uniform: sub}
		}
	}

	if len(w.AdditionalItems) > 0 {
		sub, err := decodeSchema(w.AdditionalItems)
		if err != nil {
			return err
		}
		av.AdditionalItems = sub
	}

	if len(w.Contains) > 0 {
		sub, err := decodeSchema(w.Contains)
		if err != nil {
			return err
		}
		av.Contains = sub
	}

	s.Array = av
	return nil
}

func decodeObjectValidators(s *Schema, w wireSchema) error {
	hasAny := (w.Properties != nil && w.Properties.Len() > 0) || len(w.Required) > 0 ||
		len(w.AdditionalProperties) > 0 || (w.PatternProperties != nil && w.PatternProperties.Len() > 0) ||
		len(w.PropertyNames) > 0 || w.MinProperties != nil || w.MaxProperties != nil
	if !hasAny {
		return nil
	}

	ov := &ObjectValidators{Required: w.Required, MinProperties: w.MinProperties, MaxProperties: w.MaxProperties}

	if w.Properties != nil {
		props := NewProperties()
		for pair := w.Properties.Oldest(); pair != nil; pair = pair.Next() {
			sub, err := decodeSchema(pair.Value)
			if err != nil {
				return fmt.Errorf("property %q: %w", pair.Key, err)
			}
			props.Set(pair.Key, sub)
		}
		ov.Properties = props
	}

	if w.PatternProperties != nil {
		pp := NewProperties()
		for pair := w.PatternProperties.Oldest(); pair != nil; pair = pair.Next() {
			sub, err := decodeSchema(pair.Value)
			if err != nil {
				return err
			}
			pp.Set(pair.Key, sub)
		}
		ov.PatternProperties = pp
	}

	if len(w.PropertyNames) > 0 {
		sub, err := decodeSchema(w.PropertyNames)
		if err != nil {
			return err
		}
		ov.PropertyNames = sub
	}

	if len(w.AdditionalProperties) > 0 {
		sub, err := decodeSchema(w.AdditionalProperties)
		if err != nil {
			return err
		}
		ov.AdditionalProperties = sub
	}

	s.Object = ov
	return nil
}

func decodeCombinator(s *Schema, w wireSchema) error {
	decodeList := func(raws []json.RawMessage) ([]*Schema, error) {
		out := make([]*Schema, len(raws))
		for i, r := range raws {
			sub, err := decodeSchema(r)
			if err != nil {
				return nil, err
			}
			out[i] = sub
		}
		return out, nil
	}

	switch {
	case len(w.AllOf) > 0:
		list, err := decodeList(w.AllOf)
		if err != nil {
			return err
		}
		s.Combinator, s.CombinatorOf = CombinatorAllOf, list
	case len(w.AnyOf) > 0:
		list, err := decodeList(w.AnyOf)
		if err != nil {
			return err
		}
		s.Combinator, s.CombinatorOf = CombinatorAnyOf, list
	case len(w.OneOf) > 0:
		list, err := decodeList(w.OneOf)
		if err != nil {
			return err
		}
		s.Combinator, s.CombinatorOf = CombinatorOneOf, list
	case len(w.Not) > 0:
		sub, err := decodeSchema(w.Not)
		if err != nil {
			return err
		}
		s.Combinator, s.Not = CombinatorNot, sub
	}
	return nil
}

const extensionPrefix = "x-"

func decodeExtensions(s *Schema, fields map[string]json.RawMessage) error {
	for k, raw := range fields {
		if !strings.HasPrefix(k, extensionPrefix) {
			continue
		}

		var asHint struct {
			Crate      string            `json:"crate"`
			Path       string            `json:"path"`
			Version    string            `json:"version"`
			Parameters []json.RawMessage `json:"parameters"`
		}
		if err := json.Unmarshal(raw, &asHint); err == nil && strings.HasPrefix(asHint.Path, "::") {
			params := make([]*Schema, len(asHint.Parameters))
			for i, p := range asHint.Parameters {
				sub, err := decodeSchema(p)
				if err != nil {
					return err
				}
				params[i] = sub
			}
			s.ForeignType = &ForeignTypeHint{
				Target:     strings.TrimPrefix(k, extensionPrefix),
				Crate:      asHint.Crate,
				Path:       asHint.Path,
				Version:    asHint.Version,
				Parameters: params,
			}
			continue
		}

		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		if s.Extensions == nil {
			s.Extensions = make(map[string]any)
		}
		s.Extensions[k] = v
	}
	return nil
}

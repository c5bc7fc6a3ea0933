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

// buildStringEnum produces an external-tagged enum of Simple variants, one
// per distinct string value. A tolerated `null` among the values wraps the
// result in Option instead of becoming a variant.
func (c *Compiler) buildStringEnum(s *schema.Schema, hint string) (typemodel.TypeEntry, error) {
	variants, hasNull, err := stringVariants(s.Enum)
	if err != nil {
		return nil, err
	}

	enum := typemodel.Enum{
		Name:     typeName(hint),
		Tag:      typemodel.TagStrategy{Kind: typemodel.External},
		Variants: variants,
	}
	if hasNull {
		id := c.reg.Intern(0, enum)
		return typemodel.Option{Elem: id}, nil
	}
	return enum, nil
}

func stringVariants(values []schema.Literal) ([]typemodel.Variant, bool, error) {
	var variants []typemodel.Variant
	seen := make(map[string]bool, len(values))
	hasNull := false
	for _, v := range values {
		if v == nil {
			hasNull = true
			continue
		}
		str, ok := v.(string)
		if !ok {
			return nil, false, fmt.Errorf("%w: non-string value in a string enum", ErrBadValue)
		}
		if seen[str] {
			continue // enum variants are unique by serialized-name
		}
		seen[str] = true
		variants = append(variants, typemodel.Variant{
			Name:           variantName(str),
			SerializedName: str,
			Details:        typemodel.VariantSimple{},
		})
	}
	return variants, hasNull, nil
}

// buildUntypedEnum handles an `enum` with no instance-type constraint,
// classified by the JSON kind of its values. Only all-strings
// and all-booleans are recognized; any other kind (numbers, arrays,
// objects, or a mix) is unsupported.
func (c *Compiler) buildUntypedEnum(s *schema.Schema, hint string) (typemodel.TypeEntry, error) {
	kind, ok := uniformLiteralKind(s.Enum)
	if !ok {
		return nil, fmt.Errorf("%w: untyped enum values are not uniformly strings or booleans", ErrUnsupported)
	}

	switch kind {
	case schema.TypeString:
		return c.buildStringEnum(s, hint)
	case schema.TypeBoolean:
		return c.buildBooleanEnum(s.Enum, hint)
	default:
		return nil, fmt.Errorf("%w: untyped enum of kind %q is not supported", ErrUnsupported, kind)
	}
}

// uniformLiteralKind classifies the enum's values by JSON kind. A null among
// the values is tolerated (the string/boolean builders turn it into an
// Option wrapper) but cannot carry the classification on its own.
func uniformLiteralKind(values []schema.Literal) (schema.InstanceType, bool) {
	seenString, seenBool := false, false
	for _, v := range values {
		switch v.(type) {
		case nil:
		case string:
			seenString = true
		case bool:
			seenBool = true
		default:
			return "", false
		}
	}
	if seenString && !seenBool {
		return schema.TypeString, true
	}
	if seenBool && !seenString {
		return schema.TypeBoolean, true
	}
	return "", false
}

func (c *Compiler) buildBooleanEnum(values []schema.Literal, hint string) (typemodel.TypeEntry, error) {
	var variants []typemodel.Variant
	seen := make(map[string]bool, 2)
	hasNull := false
	for _, v := range values {
		if v == nil {
			hasNull = true
			continue
		}
		b := v.(bool)
		name, serialized := "False", "false"
		if b {
			name, serialized = "True", "true"
		}
		if seen[serialized] {
			continue
		}
		seen[serialized] = true
		variants = append(variants, typemodel.Variant{
			Name:           name,
			SerializedName: serialized,
			Details:        typemodel.VariantSimple{},
		})
	}

	enum := typemodel.Enum{
		Name:     typeName(hint),
		Tag:      typemodel.TagStrategy{Kind: typemodel.External},
		Variants: variants,
	}
	if hasNull {
		id := c.reg.Intern(0, enum)
		return typemodel.Option{Elem: id}, nil
	}
	return enum, nil
}

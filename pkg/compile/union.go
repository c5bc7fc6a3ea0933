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

// classifyOneOf is the strict-order tag classification, shared by a plain
// oneOf and by an anyOf that's been promoted after proving mutual
// exclusivity.
func (c *Compiler) classifyOneOf(alts []*schema.Schema, hint string) (typemodel.TypeEntry, error) {
	if entry, ok, err := c.tryOptionAsEnum(alts, hint); err != nil {
		return nil, err
	} else if ok {
		return entry, nil
	}

	if entry, ok, err := c.tryExternalTag(alts, hint); err != nil {
		return nil, err
	} else if ok {
		return entry, nil
	}

	// Adjacent must be tried before internal: {tag: "X", content: T} would
	// otherwise parse as an internally-tagged struct variant with a single
	// field named "content".
	if entry, ok, err := c.tryAdjacentTag(alts, hint); err != nil {
		return nil, err
	} else if ok {
		return entry, nil
	}

	if entry, ok, err := c.tryInternalTag(alts, hint); err != nil {
		return nil, err
	} else if ok {
		return entry, nil
	}

	return c.untaggedEnum(alts, hint)
}

// tryOptionAsEnum: two subschemas, exactly one of which is null.
func (c *Compiler) tryOptionAsEnum(alts []*schema.Schema, hint string) (typemodel.TypeEntry, bool, error) {
	if len(alts) != 2 {
		return nil, false, nil
	}
	var other *schema.Schema
	nullCount := 0
	for _, alt := range alts {
		if isNullSchema(alt) {
			nullCount++
		} else {
			other = alt
		}
	}
	if nullCount != 1 {
		return nil, false, nil
	}
	id, err := c.convert(other, hint)
	if err != nil {
		return nil, false, err
	}
	if entry, ok := c.reg.Lookup(id); ok {
		if opt, isOpt := entry.(typemodel.Option); isOpt {
			return opt, true, nil
		}
	}
	return typemodel.Option{Elem: id}, true, nil
}

func isNullSchema(s *schema.Schema) bool {
	if s == nil || s.IsBool {
		return false
	}
	t, single := s.SingleType()
	return single && t == schema.TypeNull
}

// tryExternalTag: every alternative is a string singleton-enum (a Simple
// variant named by the string) or an object with exactly one required
// property, which must also be the object's only property (the
// single-key-object shape serde's external tagging expects).
func (c *Compiler) tryExternalTag(alts []*schema.Schema, hint string) (typemodel.Enum, bool, error) {
	var variants []typemodel.Variant
	for _, alt := range alts {
		if tag, ok := singletonStringEnum(alt); ok {
			variants = append(variants, typemodel.Variant{
				Name:           variantName(tag),
				SerializedName: tag,
				Details:        typemodel.VariantSimple{},
			})
			continue
		}

		key, propSchema, ok := soleRequiredProperty(alt)
		if !ok {
			return typemodel.Enum{}, false, nil
		}
		details, err := payloadDetails(c, propSchema, hint+typeName(key))
		if err != nil {
			return typemodel.Enum{}, false, err
		}
		variants = append(variants, typemodel.Variant{
			Name:           variantName(key),
			SerializedName: key,
			Details:        details,
		})
	}
	return typemodel.Enum{
		Name:     typeName(hint),
		Tag:      typemodel.TagStrategy{Kind: typemodel.External},
		Variants: variants,
	}, true, nil
}

// tryAdjacentTag: every alternative is an object sharing the same two
// designated keys; a string-singleton-enum "tag" key and an optional
// "content" key.
func (c *Compiler) tryAdjacentTag(alts []*schema.Schema, hint string) (typemodel.Enum, bool, error) {
	tagKey, contentKey, ok := detectAdjacentKeys(alts)
	if !ok {
		return typemodel.Enum{}, false, nil
	}

	var variants []typemodel.Variant
	for _, alt := range alts {
		if alt.Object == nil || alt.Object.Properties == nil {
			return typemodel.Enum{}, false, nil
		}
		if !alt.Object.IsRequired(tagKey) {
			return typemodel.Enum{}, false, nil
		}
		tagSchema, ok := alt.Object.Properties.Get(tagKey)
		if !ok {
			return typemodel.Enum{}, false, nil
		}
		tagValue, ok := singletonStringEnum(tagSchema)
		if !ok {
			return typemodel.Enum{}, false, nil
		}
		if !onlyKeysAllowed(alt.Object.Properties, tagKey, contentKey) {
			return typemodel.Enum{}, false, nil
		}

		details := typemodel.VariantDetails(typemodel.VariantSimple{})
		if contentKey != "" {
			if contentSchema, ok := alt.Object.Properties.Get(contentKey); ok {
				d, err := payloadDetails(c, contentSchema, hint+typeName(tagValue))
				if err != nil {
					return typemodel.Enum{}, false, err
				}
				details = d
			}
		}
		variants = append(variants, typemodel.Variant{
			Name:           variantName(tagValue),
			SerializedName: tagValue,
			Details:        details,
		})
	}

	return typemodel.Enum{
		Name:     typeName(hint),
		Tag:      typemodel.TagStrategy{Kind: typemodel.Adjacent, Tag: tagKey, Content: contentKey},
		Variants: variants,
	}, true, nil
}

// detectAdjacentKeys inspects the first alternative to nominate a tag key
// (a string-singleton-enum property) and an optional content key (whatever
// other property, if any, appears alongside it), then requires every
// alternative to use exactly that same pair.
func detectAdjacentKeys(alts []*schema.Schema) (tagKey, contentKey string, ok bool) {
	if len(alts) == 0 {
		return "", "", false
	}
	first := alts[0]
	if first.Object == nil || first.Object.Properties == nil {
		return "", "", false
	}
	if first.Object.Properties.Len() == 0 || first.Object.Properties.Len() > 2 {
		return "", "", false
	}

	for pair := first.Object.Properties.Oldest(); pair != nil; pair = pair.Next() {
		if _, isTag := singletonStringEnum(pair.Value); isTag {
			tagKey = pair.Key
			break
		}
	}
	if tagKey == "" {
		return "", "", false
	}
	for pair := first.Object.Properties.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key != tagKey {
			contentKey = pair.Key
			break
		}
	}
	return tagKey, contentKey, true
}

func onlyKeysAllowed(props *schema.Properties, keys ...string) bool {
	allowed := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k != "" {
			allowed[k] = true
		}
	}
	for pair := props.Oldest(); pair != nil; pair = pair.Next() {
		if !allowed[pair.Key] {
			return false
		}
	}
	return true
}

// tryInternalTag: every alternative is an object carrying a common
// required discriminator field (a string-singleton-enum) at the same key;
// its remaining fields become the variant's struct payload.
func (c *Compiler) tryInternalTag(alts []*schema.Schema, hint string) (typemodel.Enum, bool, error) {
	tagKey, ok := detectInternalKey(alts)
	if !ok {
		return typemodel.Enum{}, false, nil
	}

	var variants []typemodel.Variant
	for _, alt := range alts {
		tagSchema, hasTag := alt.Object.Properties.Get(tagKey)
		if !hasTag || !alt.Object.IsRequired(tagKey) {
			return typemodel.Enum{}, false, nil
		}
		tagValue, ok := singletonStringEnum(tagSchema)
		if !ok {
			return typemodel.Enum{}, false, nil
		}

		remaining := withoutProperty(alt.Object, tagKey)
		entry, err := c.buildStruct(remaining, hint+typeName(tagValue))
		if err != nil {
			return typemodel.Enum{}, false, err
		}
		st := entry.(typemodel.Struct)

		details := typemodel.VariantDetails(typemodel.VariantSimple{})
		if len(st.Properties) > 0 {
			details = typemodel.VariantStructPayload{Properties: st.Properties}
		}
		variants = append(variants, typemodel.Variant{
			Name:           variantName(tagValue),
			SerializedName: tagValue,
			Details:        details,
		})
	}

	return typemodel.Enum{
		Name:     typeName(hint),
		Tag:      typemodel.TagStrategy{Kind: typemodel.Internal, Tag: tagKey},
		Variants: variants,
	}, true, nil
}

// detectInternalKey finds a property name that is required, a
// string-singleton-enum, and present in every alternative; the common
// discriminator field.
func detectInternalKey(alts []*schema.Schema) (string, bool) {
	if len(alts) == 0 || alts[0].Object == nil || alts[0].Object.Properties == nil {
		return "", false
	}
	for pair := alts[0].Object.Properties.Oldest(); pair != nil; pair = pair.Next() {
		key := pair.Key
		if !alts[0].Object.IsRequired(key) {
			continue
		}
		if _, ok := singletonStringEnum(pair.Value); !ok {
			continue
		}
		if sharedByAll(alts, key) {
			return key, true
		}
	}
	return "", false
}

func sharedByAll(alts []*schema.Schema, key string) bool {
	for _, alt := range alts {
		if alt.Object == nil || alt.Object.Properties == nil || !alt.Object.IsRequired(key) {
			return false
		}
		s, ok := alt.Object.Properties.Get(key)
		if !ok {
			return false
		}
		if _, ok := singletonStringEnum(s); !ok {
			return false
		}
	}
	return true
}

func withoutProperty(obj *schema.ObjectValidators, key string) *schema.ObjectValidators {
	out := &schema.ObjectValidators{
		AdditionalProperties: obj.AdditionalProperties,
		MinProperties:        obj.MinProperties,
		MaxProperties:        obj.MaxProperties,
	}
	if obj.Properties != nil {
		props := schema.NewProperties()
		for pair := obj.Properties.Oldest(); pair != nil; pair = pair.Next() {
			if pair.Key != key {
				props.Set(pair.Key, pair.Value)
			}
		}
		out.Properties = props
	}
	for _, r := range obj.Required {
		if r != key {
			out.Required = append(out.Required, r)
		}
	}
	return out
}

// untaggedEnum is the fallback: invented variant names, since the schema
// supplies none.
func (c *Compiler) untaggedEnum(alts []*schema.Schema, hint string) (typemodel.TypeEntry, error) {
	name := typeName(hint)
	var variants []typemodel.Variant
	for i, alt := range alts {
		invented := fmt.Sprintf("Variant%d", i+1)
		details, err := payloadDetails(c, alt, name+invented)
		if err != nil {
			return nil, err
		}
		variants = append(variants, typemodel.Variant{
			Name:           invented,
			SerializedName: invented,
			Details:        details,
		})
	}
	return typemodel.Enum{
		Name:     name,
		Tag:      typemodel.TagStrategy{Kind: typemodel.Untagged},
		Variants: variants,
	}, nil
}

// singletonStringEnum reports the pinned string value of a schema that is
// exactly a single-typed string with a one-element enum (or const).
func singletonStringEnum(s *schema.Schema) (string, bool) {
	if s == nil || s.IsBool {
		return "", false
	}
	if t, single := s.SingleType(); !single || t != schema.TypeString {
		return "", false
	}
	if len(s.Enum) != 1 {
		return "", false
	}
	str, ok := s.Enum[0].(string)
	return str, ok
}

// soleRequiredProperty reports the (key, schema) of an object schema's
// single property, when that property is also its sole required name, the
// single-key-object shape external tagging needs.
func soleRequiredProperty(s *schema.Schema) (string, *schema.Schema, bool) {
	if s == nil || s.IsBool || s.Object == nil {
		return "", nil, false
	}
	if t, single := s.SingleType(); !single || t != schema.TypeObject {
		return "", nil, false
	}
	obj := s.Object
	if len(obj.Required) != 1 || obj.Properties == nil || obj.Properties.Len() != 1 {
		return "", nil, false
	}
	key := obj.Required[0]
	propSchema, ok := obj.Properties.Get(key)
	if !ok {
		return "", nil, false
	}
	return key, propSchema, true
}

// payloadDetails converts s and folds the resulting TypeEntry into a
// VariantDetails. Struct and Tuple entries map directly; a Unit or an
// empty Struct becomes Simple; anything else (a primitive,
// option, array, map, reference, or opaque type) becomes a one-element
// tuple payload, the newtype-variant shape.
func payloadDetails(c *Compiler, s *schema.Schema, hint string) (typemodel.VariantDetails, error) {
	entry, err := c.buildEntry(s, hint)
	if err != nil {
		return nil, err
	}
	switch e := entry.(type) {
	case typemodel.Unit:
		return typemodel.VariantSimple{}, nil
	case typemodel.Struct:
		if len(e.Properties) == 0 {
			return typemodel.VariantSimple{}, nil
		}
		return typemodel.VariantStructPayload{Properties: e.Properties}, nil
	case typemodel.Tuple:
		return typemodel.VariantTuplePayload{Elems: e.Elems}, nil
	default:
		id := c.reg.Intern(0, entry)
		return typemodel.VariantTuplePayload{Elems: []typemodel.TypeID{id}}, nil
	}
}

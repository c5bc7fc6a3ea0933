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

// Convert is the converter entry point for an anonymous schema: one schema
// object in, a freshly-interned TypeID out. hint is a naming suggestion for
// the type if it turns out to need a name (struct, enum); anonymous kinds
// (primitives, containers) ignore it.
func (c *Compiler) Convert(s *schema.Schema, hint string) (typemodel.TypeID, error) {
	return c.convert(s, hint)
}

// ConvertDefinition converts a named, top-level definitions-table entry.
// Unlike Convert, the produced entry is interned under the id already
// reserved for key (see ConvertDocument), so that references to key made
// before or during this call (including from key's own body, in the
// self-referential case) resolve to the same id.
func (c *Compiler) ConvertDefinition(key string, s *schema.Schema) (typemodel.TypeID, error) {
	id := c.reg.Assign(key, typeName(key))
	entry, err := c.buildEntry(s, typeName(key))
	if err != nil {
		return 0, err
	}
	return c.reg.Intern(id, entry), nil
}

// ConvertDocument runs the full document lifecycle: every definition is
// assigned an id eagerly (so forward and cyclic references resolve), each
// definition is then converted, and finally the root schema is converted.
func (c *Compiler) ConvertDocument(doc *schema.Document) (root typemodel.TypeID, defs map[string]typemodel.TypeID, err error) {
	keys := c.defs.Keys()
	for _, key := range keys {
		c.reg.Assign(key, typeName(key))
	}

	defs = make(map[string]typemodel.TypeID, len(keys))
	for _, key := range keys {
		def, _ := c.defs.Lookup(key)
		id, err := c.ConvertDefinition(key, def)
		if err != nil {
			return 0, nil, fmt.Errorf("definition %q: %w", key, err)
		}
		defs[key] = id
	}

	root, err = c.convert(doc.Root, "Root")
	if err != nil {
		return 0, nil, fmt.Errorf("root schema: %w", err)
	}
	return root, defs, nil
}

// convert dispatches s and interns the result under a fresh id.
func (c *Compiler) convert(s *schema.Schema, hint string) (typemodel.TypeID, error) {
	entry, err := c.buildEntry(s, hint)
	if err != nil {
		return 0, err
	}
	return c.reg.Intern(0, entry), nil
}

// buildEntry is the ordered shape dispatcher. Order matters: nullable-pair
// must be tried before primitive-leaf, and adjacent-before-internal inside
// the oneOf classifier (union.go).
func (c *Compiler) buildEntry(s *schema.Schema, hint string) (typemodel.TypeEntry, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil schema", ErrBadValue)
	}

	if s.IsBool {
		if s.BoolValue {
			return typemodel.AnyJSON(), nil // case 6: permissive
		}
		return nil, fmt.Errorf("%w: cannot convert the impossible schema to a type", ErrUnsatisfiable)
	}

	// Case 1: nullable pair.
	if _, simplified, ok := asNullablePair(s); ok {
		return c.buildNullablePair(simplified, hint)
	}

	// Case 2: primitive leaf.
	if t, single := s.SingleType(); single && isPrimitiveLeafShape(s, t) {
		return c.buildPrimitiveLeaf(s, t)
	}

	// Cases 3-5 require the typed shape to stand alone: an instance type
	// alongside a combinator or $ref matches none of the recognized shapes
	// and falls through to the fatal branch.
	standalone := s.Combinator == schema.CombinatorNone && s.Ref == ""

	// Case 3: string enum.
	if t, single := s.SingleType(); single && standalone && t == schema.TypeString && len(s.Enum) > 0 {
		return c.buildStringEnum(s, hint)
	}

	// Case 4: object.
	if t, single := s.SingleType(); single && standalone && t == schema.TypeObject {
		return c.buildObject(s, hint)
	}

	// Case 5: array/tuple.
	if t, single := s.SingleType(); single && standalone && t == schema.TypeArray {
		return c.buildArray(s, hint)
	}

	// Case 6: permissive (object form of the empty schema).
	if s.IsEmptySchema() {
		return typemodel.AnyJSON(), nil
	}

	// Case 7: bare reference.
	if isBareReference(s) {
		return c.buildReference(s)
	}

	// Case 8: untyped enum.
	if len(s.Types) == 0 && standalone && len(s.Enum) > 0 {
		return c.buildUntypedEnum(s, hint)
	}

	// Case 9: subschema. The combinator must be the schema's only
	// constraint (metadata aside); a combinator next to a typed body is an
	// unrecognized shape.
	if s.Combinator != schema.CombinatorNone {
		if !isBareCombinator(s) {
			return nil, fmt.Errorf("%w: %s alongside other constraints (title=%q)", ErrUnsupported, s.Combinator, s.Title)
		}
		return c.buildSubschema(s, hint)
	}

	// A foreign type hint pre-empts the "unsupported" fallback when the
	// schema is otherwise permissive except for the x-<target> extension.
	if s.ForeignType != nil {
		return c.buildForeign(s.ForeignType, hint)
	}

	return nil, fmt.Errorf("%w: schema shape not recognized (title=%q)", ErrUnsupported, s.Title)
}

// asNullablePair reports whether s's instance-type set is exactly {X, null}
// for some non-null X, returning X and a simplified copy of s with null
// stripped from both Types and Enum.
func asNullablePair(s *schema.Schema) (schema.InstanceType, *schema.Schema, bool) {
	if len(s.Types) != 2 {
		return "", nil, false
	}
	var nonNull schema.InstanceType
	hasNull := false
	for _, t := range s.Types {
		if t == schema.TypeNull {
			hasNull = true
		} else {
			nonNull = t
		}
	}
	if !hasNull || nonNull == "" {
		return "", nil, false
	}

	simplified := *s
	simplified.Types = []schema.InstanceType{nonNull}
	if len(s.Enum) > 0 {
		filtered := make([]schema.Literal, 0, len(s.Enum))
		for _, v := range s.Enum {
			if v != nil {
				filtered = append(filtered, v)
			}
		}
		simplified.Enum = filtered
	}
	return nonNull, &simplified, true
}

func (c *Compiler) buildNullablePair(simplified *schema.Schema, hint string) (typemodel.TypeEntry, error) {
	inner, err := c.buildEntry(simplified, hint)
	if err != nil {
		return nil, err
	}
	if opt, isOpt := inner.(typemodel.Option); isOpt {
		// Option never wraps Option.
		return opt, nil
	}
	innerID := c.reg.Intern(0, inner)
	return typemodel.Option{Elem: innerID}, nil
}

// isPrimitiveLeafShape reports whether s, already known to carry a single
// instance type among the five scalar kinds, has no subschema/ref/enum/const
//; i.e. is a true leaf rather than e.g. a single-typed string enum.
func isPrimitiveLeafShape(s *schema.Schema, t schema.InstanceType) bool {
	if t == schema.TypeObject || t == schema.TypeArray {
		return false
	}
	return len(s.Enum) == 0 &&
		s.Combinator == schema.CombinatorNone &&
		s.Not == nil &&
		s.Ref == ""
}

func (c *Compiler) buildPrimitiveLeaf(s *schema.Schema, t schema.InstanceType) (typemodel.TypeEntry, error) {
	switch t {
	case schema.TypeNull:
		return typemodel.Unit{}, nil
	case schema.TypeBoolean:
		return typemodel.Primitive{Kind: typemodel.Bool}, nil
	case schema.TypeString:
		return c.buildString(s)
	case schema.TypeInteger:
		return c.buildInteger(s)
	case schema.TypeNumber:
		return c.buildNumber(s)
	default:
		return nil, fmt.Errorf("%w: unrecognized primitive instance type %q", ErrUnsupported, t)
	}
}

// isBareCombinator reports whether s carries nothing but its combinator and
// metadata.
func isBareCombinator(s *schema.Schema) bool {
	return len(s.Types) == 0 &&
		s.Format == "" &&
		s.Numeric == nil &&
		s.String == nil &&
		s.Array == nil &&
		s.Object == nil &&
		len(s.Enum) == 0 &&
		s.Ref == ""
}

// isBareReference reports whether s is a `$ref` with no other constraints
// title/description/extensions are metadata and don't disqualify it.
func isBareReference(s *schema.Schema) bool {
	if s.Ref == "" {
		return false
	}
	return len(s.Types) == 0 &&
		s.Format == "" &&
		s.Numeric == nil &&
		s.String == nil &&
		s.Array == nil &&
		s.Object == nil &&
		len(s.Enum) == 0 &&
		s.Combinator == schema.CombinatorNone &&
		s.Not == nil
}

func (c *Compiler) buildReference(s *schema.Schema) (typemodel.TypeEntry, error) {
	key := schema.RefKey(s.Ref)
	if _, ok := c.defs.Lookup(key); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnresolvedReference, key)
	}
	target := c.reg.Assign(key, typeName(key))
	return typemodel.Reference{Target: target}, nil
}

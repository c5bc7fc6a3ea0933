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

// buildObject distinguishes the free-form map shape from the struct shape.
func (c *Compiler) buildObject(s *schema.Schema, hint string) (typemodel.TypeEntry, error) {
	obj := s.Object
	if obj == nil {
		obj = &schema.ObjectValidators{}
	}

	if isMapShape(obj) {
		return c.buildMap(obj, hint)
	}
	return c.buildStruct(obj, hint)
}

// isMapShape reports the Map sub-shape: no declared properties or required
// names, and additionalProperties isn't the impossible schema.
func isMapShape(obj *schema.ObjectValidators) bool {
	if obj.Properties != nil && obj.Properties.Len() > 0 {
		return false
	}
	if len(obj.Required) > 0 {
		return false
	}
	if obj.AdditionalProperties != nil && obj.AdditionalProperties.IsFalse() {
		return false
	}
	return true
}

func (c *Compiler) buildMap(obj *schema.ObjectValidators, hint string) (typemodel.TypeEntry, error) {
	valueSchema := obj.AdditionalProperties
	if valueSchema == nil {
		return typemodel.Map{Value: c.reg.Intern(0, typemodel.AnyJSON())}, nil
	}
	valueID, err := c.convert(valueSchema, hint+"Value")
	if err != nil {
		return nil, err
	}
	return typemodel.Map{Value: valueID}, nil
}

func (c *Compiler) buildStruct(obj *schema.ObjectValidators, hint string) (typemodel.TypeEntry, error) {
	name := typeName(hint)
	var properties []typemodel.Property

	if obj.Properties != nil {
		for pair := obj.Properties.Oldest(); pair != nil; pair = pair.Next() {
			key, propSchema := pair.Key, pair.Value
			required := obj.IsRequired(key)

			propHint := name + typeName(key)
			id, err := c.convert(propSchema, propHint)
			if err != nil {
				return nil, err
			}
			if !required {
				id = c.wrapOptional(id)
			}

			properties = append(properties, typemodel.Property{
				FieldName:      fieldName(key),
				SerializedName: key,
				Type:           id,
				Required:       required,
			})
		}
	}

	denyUnknown := obj.AdditionalProperties != nil && obj.AdditionalProperties.IsFalse()

	return typemodel.Struct{
		Name:              name,
		Properties:        properties,
		DenyUnknownFields: denyUnknown,
	}, nil
}

// wrapOptional interns id in an Option unless it's already one (Option
// never wraps Option).
func (c *Compiler) wrapOptional(id typemodel.TypeID) typemodel.TypeID {
	if entry, ok := c.reg.Lookup(id); ok {
		if _, isOpt := entry.(typemodel.Option); isOpt {
			return id
		}
	}
	return c.reg.Intern(0, typemodel.Option{Elem: id})
}

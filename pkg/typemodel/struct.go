// Copyright 2026 The typegen Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the specific language governing permissions and limitations under the License.

package typemodel

// Property is one field of a Struct (or of a Variant's Struct payload).
// FieldName is the recased identifier; SerializedName is always the
// literal JSON key.
type Property struct {
	FieldName      string
	SerializedName string
	Type           TypeID
	Required       bool
}

// Struct is a flattened record type: a named, ordered sequence of
// properties. Property ordering is preserved from the schema's iteration
// order.
type Struct struct {
	Name              string
	Properties        []Property
	DenyUnknownFields bool
}

func (Struct) sealed() {}

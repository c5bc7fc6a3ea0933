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

import "errors"

// ErrUnresolvedReference is returned when a $ref names no entry in the
// definitions table.
var ErrUnresolvedReference = errors.New("schema: unresolved reference")

// Resolve looks up ref (a full "#/definitions/<name>" style pointer) against
// defs, returning ErrUnresolvedReference if the terminal key isn't present.
func Resolve(defs *Definitions, ref string) (*Schema, error) {
	s, ok := defs.Lookup(RefKey(ref))
	if !ok {
		return nil, ErrUnresolvedReference
	}
	return s, nil
}

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

import "errors"

// Sentinel error kinds. Wrap with fmt.Errorf("...: %w", err) at call sites
// to attach the offending schema fragment.
var (
	// ErrBadValue: a schema literal has the wrong JSON kind for its declared
	// instance type.
	ErrBadValue = errors.New("compile: value has wrong kind for declared instance type")

	// ErrUnresolvedReference: a $ref names no entry in the definitions
	// table. Distinct from schema.ErrUnresolvedReference: errors from this
	// package wrap only this sentinel, so errors.Is against the schema-layer
	// one does not match them.
	ErrUnresolvedReference = errors.New("compile: unresolved reference")

	// ErrUnsatisfiable: a merge produced the empty schema. Used both as the
	// caller-visible result of a top-level merge request and as an internal
	// flow-control signal recovered inside anyOf.
	ErrUnsatisfiable = errors.New("compile: schema intersection is unsatisfiable")

	// ErrUnsupported: a schema construct outside the recognized vocabulary
	// (unknown string format, if/then/else, unsupported validator
	// combinations). Fatal; conversion aborts.
	ErrUnsupported = errors.New("compile: unsupported schema construct")
)

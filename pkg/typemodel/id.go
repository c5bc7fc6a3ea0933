// Copyright 2026 The typegen Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the specific language governing permissions and limitations under the License.

// Package typemodel is the target-independent type AST produced by the
// converter: primitives, strings, unit, options, tuples, arrays, maps,
// references, structs, tagged enums, and opaque foreign types.
//
// TypeEntry is deliberately a closed sum type rather than an open
// hierarchy: every concrete type below implements the unexported sealed()
// method, so a type switch over TypeEntry is exhaustive by construction.
package typemodel

// TypeID is an opaque handle issued by the type registry (see pkg/registry
// for a reference implementation). The converter and merger never
// fabricate TypeIDs; every one embedded in a TypeEntry was obtained by
// asking the registry to assign or intern a schema.
type TypeID uint32

// Invalid is the zero value, never a valid assigned ID.
const Invalid TypeID = 0

// Copyright 2026 The typegen Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the specific language governing permissions and limitations under the License.

// Package registry defines the contract the compiler core consumes to turn
// produced TypeEntry values into stable TypeIDs, plus a reference
// in-memory implementation for tests and for callers who don't need
// cross-run name stability or code emission. Name assignment proper
// belongs to whatever emission layer sits above this module.
//
// The scheme: reserve an id eagerly, register the produced value once
// known, and look up by either id or by the schema identity that produced
// it.
package registry

import (
	"fmt"
	"sync"

	"github.com/schemaforge/typegen/pkg/typemodel"
)

// Registry is the single collaborator the compiler core calls into. Assign
// reserves an id for a schema the converter is about to process (so
// recursive/self-referential schemas have something to point
// Reference/Option/Array at before the body is finished); Intern records the
// finished TypeEntry under a previously-assigned id. Both calls are
// idempotent: id assignment is deterministic and anonymous entries dedup
// structurally.
type Registry interface {
	// Assign reserves a TypeID for a schema not yet converted, keyed by an
	// identity the caller controls (typically a pointer identity or a
	// reference key). hint is a naming suggestion only. Calling Assign twice
	// with the same key returns the same id.
	Assign(key any, hint string) typemodel.TypeID

	// Intern records entry as the completed definition for id (previously
	// obtained from Assign), or, if Assign was never called for this value,
	// allocates a fresh id, deduplicating structurally-identical entries
	// that have no name of their own (e.g. two anonymous Array(int) entries
	// fold to one id).
	Intern(id typemodel.TypeID, entry typemodel.TypeEntry) typemodel.TypeID

	// Lookup returns the TypeEntry previously interned for id.
	Lookup(id typemodel.TypeID) (typemodel.TypeEntry, bool)
}

// Memory is a simple in-process Registry: monotonically increasing ids,
// structural dedup for anonymous (unnamed) entries, and name-collision
// avoidance for named ones (struct/enum).
type Memory struct {
	mu       sync.Mutex
	next     typemodel.TypeID
	byKey    map[any]typemodel.TypeID
	entries  map[typemodel.TypeID]typemodel.TypeEntry
	byStruct map[string]typemodel.TypeID // structural dedup key -> id, for anonymous entries
	usedName map[string]int
}

// NewMemory constructs an empty Memory registry.
func NewMemory() *Memory {
	return &Memory{
		next:     typemodel.Invalid + 1,
		byKey:    make(map[any]typemodel.TypeID),
		entries:  make(map[typemodel.TypeID]typemodel.TypeEntry),
		byStruct: make(map[string]typemodel.TypeID),
		usedName: make(map[string]int),
	}
}

func (m *Memory) Assign(key any, hint string) typemodel.TypeID {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.byKey[key]; ok {
		return id
	}
	id := m.allocate()
	m.byKey[key] = id
	return id
}

func (m *Memory) Intern(id typemodel.TypeID, entry typemodel.TypeEntry) typemodel.TypeID {
	m.mu.Lock()
	defer m.mu.Unlock()

	fresh := id == typemodel.Invalid
	if fresh {
		id = m.allocate()
	}

	if dedupKey, ok := structuralKey(entry); ok {
		if existing, found := m.byStruct[dedupKey]; !found {
			m.byStruct[dedupKey] = id
		} else if fresh && existing != id {
			return existing
		}
	}

	m.entries[id] = entry
	return id
}

func (m *Memory) Lookup(id typemodel.TypeID) (typemodel.TypeEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	return e, ok
}

// UniqueName returns base unchanged the first time it's requested, and a
// numbered variant (baseN) on every subsequent collision.
func (m *Memory) UniqueName(base string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	count, seen := m.usedName[base]
	if !seen {
		m.usedName[base] = 0
		return base
	}
	for {
		count++
		candidate := fmt.Sprintf("%s%d", base, count)
		if _, taken := m.usedName[candidate]; !taken {
			m.usedName[base] = count
			m.usedName[candidate] = 0
			return candidate
		}
	}
}

func (m *Memory) allocate() typemodel.TypeID {
	id := m.next
	m.next++
	return id
}

// structuralKey returns a dedup key for TypeEntry kinds with no name of
// their own (primitives, containers, references, opaque types). Named kinds
// (Struct, Enum) are never deduplicated this way; two schemas that happen
// to produce equal-shaped structs are still semantically distinct types.
func structuralKey(entry typemodel.TypeEntry) (string, bool) {
	switch e := entry.(type) {
	case typemodel.Primitive:
		return fmt.Sprintf("prim:%d", e.Kind), true
	case typemodel.StringT:
		return "string", true
	case typemodel.Unit:
		return "unit", true
	case typemodel.Option:
		return fmt.Sprintf("option:%d", e.Elem), true
	case typemodel.Array:
		return fmt.Sprintf("array:%d", e.Elem), true
	case typemodel.Map:
		return fmt.Sprintf("map:%d", e.Value), true
	case typemodel.Tuple:
		return fmt.Sprintf("tuple:%v", e.Elems), true
	case typemodel.Reference:
		return fmt.Sprintf("ref:%d", e.Target), true
	case typemodel.BuiltinOpaque:
		return fmt.Sprintf("opaque:%s:%v", e.TypeName, e.Parameters), true
	default:
		return "", false
	}
}

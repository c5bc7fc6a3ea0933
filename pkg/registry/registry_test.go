// Copyright 2026 The typegen Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the specific language governing permissions and limitations under the License.

package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schemaforge/typegen/pkg/typemodel"
)

func TestMemoryAssignIsIdempotent(t *testing.T) {
	m := NewMemory()
	key := "schema-a"
	id1 := m.Assign(key, "A")
	id2 := m.Assign(key, "A")
	require.Equal(t, id1, id2)
}

func TestMemoryInternDedupsAnonymousEntries(t *testing.T) {
	m := NewMemory()
	strID := m.Intern(0, typemodel.Primitive{Kind: typemodel.Int64})

	id1 := m.Intern(0, typemodel.Array{Elem: strID})
	id2 := m.Intern(0, typemodel.Array{Elem: strID})
	require.Equal(t, id1, id2, "two structurally identical anonymous arrays dedup to one id")

	entry, ok := m.Lookup(id1)
	require.True(t, ok)
	require.Equal(t, typemodel.Array{Elem: strID}, entry)
}

func TestMemoryInternDoesNotDedupNamedStructs(t *testing.T) {
	m := NewMemory()
	id1 := m.Intern(0, typemodel.Struct{Name: "Foo"})
	id2 := m.Intern(0, typemodel.Struct{Name: "Foo"})
	require.NotEqual(t, id1, id2, "named types are never structurally deduplicated")
}

func TestMemoryUniqueName(t *testing.T) {
	m := NewMemory()
	require.Equal(t, "Foo", m.UniqueName("Foo"))
	require.Equal(t, "Foo1", m.UniqueName("Foo"))
	require.Equal(t, "Foo2", m.UniqueName("Foo"))
	require.Equal(t, "Bar", m.UniqueName("Bar"))
}

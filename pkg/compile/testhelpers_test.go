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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schemaforge/typegen/pkg/registry"
	"github.com/schemaforge/typegen/pkg/schema"
	"github.com/schemaforge/typegen/pkg/typemodel"
)

// mustParseDoc decodes jsonText as a full schema document (root plus
// optional "definitions"), failing the test on any decode error.
func mustParseDoc(t *testing.T, jsonText string) *schema.Document {
	t.Helper()
	doc, err := schema.Parse([]byte(jsonText))
	require.NoError(t, err)
	return doc
}

// mustParseSchema decodes jsonText as a bare schema fragment with no
// definitions table.
func mustParseSchema(t *testing.T, jsonText string) *schema.Schema {
	t.Helper()
	return mustParseDoc(t, jsonText).Root
}

// newTestCompiler builds a Compiler over jsonText's document, returning both
// the compiler and the decoded document (so callers can reach the root
// schema or the definitions table).
func newTestCompiler(t *testing.T, jsonText string) (*Compiler, *schema.Document) {
	t.Helper()
	doc := mustParseDoc(t, jsonText)
	reg := registry.NewMemory()
	c := New(doc.Definitions, reg, Options{})
	return c, doc
}

// convertEntry converts s and resolves the produced id back to its
// TypeEntry in one step, the shape most tests want to assert on directly.
func convertEntry(t *testing.T, c *Compiler, s *schema.Schema, hint string) (typemodel.TypeID, typemodel.TypeEntry) {
	t.Helper()
	id, err := c.Convert(s, hint)
	require.NoError(t, err)
	entry, ok := c.reg.Lookup(id)
	require.True(t, ok, "registry has no entry for id %d", id)
	return id, entry
}

// entryAt resolves id to its TypeEntry via c's registry.
func entryAt(t *testing.T, c *Compiler, id typemodel.TypeID) typemodel.TypeEntry {
	t.Helper()
	entry, ok := c.reg.Lookup(id)
	require.True(t, ok, "registry has no entry for id %d", id)
	return entry
}

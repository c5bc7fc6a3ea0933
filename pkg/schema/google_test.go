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

import (
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGoogleSchema_RoundTrip exercises ToGoogleSchema/FromGoogleSchema
// against an independently-implemented JSON Schema decoder, so our own
// Parse/Marshal pair stays honest about the wire shape it produces.
func TestGoogleSchema_RoundTrip(t *testing.T) {
	doc, err := Parse([]byte(`{
		"type": "object",
		"properties": {
			"id": {"type": "string", "format": "uuid"},
			"count": {"type": "integer", "minimum": 0, "maximum": 255},
			"tags": {"type": "array", "items": {"type": "string"}}
		},
		"required": ["id", "count"]
	}`))
	require.NoError(t, err)

	gs, err := ToGoogleSchema(doc.Root)
	require.NoError(t, err)
	require.IsType(t, &jsonschema.Schema{}, gs)
	assert.Equal(t, []string{"object"}, []string{gs.Type})
	assert.ElementsMatch(t, []string{"id", "count"}, gs.Required)
	require.Contains(t, gs.Properties, "id")
	assert.Equal(t, "uuid", gs.Properties["id"].Format)

	back, err := FromGoogleSchema(gs)
	require.NoError(t, err)
	require.NotNil(t, back.Object)
	assert.ElementsMatch(t, doc.Root.Object.Required, back.Object.Required)

	idBack, ok := back.Object.Properties.Get("id")
	require.True(t, ok)
	assert.Equal(t, "uuid", idBack.Format)

	countBack, ok := back.Object.Properties.Get("count")
	require.True(t, ok)
	require.NotNil(t, countBack.Numeric)
	assert.Equal(t, float64(0), *countBack.Numeric.Minimum)
	assert.Equal(t, float64(255), *countBack.Numeric.Maximum)
}

// TestGoogleSchema_NilRoundTrip covers the nil-schema edge: FromGoogleSchema
// treats a nil *jsonschema.Schema as the trivial schema (true).
func TestGoogleSchema_NilRoundTrip(t *testing.T) {
	s, err := FromGoogleSchema(nil)
	require.NoError(t, err)
	assert.True(t, s.IsTrue())
}

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
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/google/jsonschema-go/jsonschema"
)

// FromGoogleSchema converts a github.com/google/jsonschema-go Schema value
// into this package's Schema, by round-tripping through JSON. This keeps
// our decoder as the single source of truth for JSON Schema semantics while
// letting callers hand us a schema that was built or validated with
// google/jsonschema-go's own tooling.
func FromGoogleSchema(gs *jsonschema.Schema) (*Schema, error) {
	if gs == nil {
		return True(), nil
	}
	raw, err := json.Marshal(gs)
	if err != nil {
		return nil, fmt.Errorf("schema: marshaling google schema: %w", err)
	}
	return decodeSchema(raw)
}

// ToGoogleSchema converts a Schema into a github.com/google/jsonschema-go
// Schema value, for interop with callers that consume that package's type
// (e.g. for MCP tool-schema advertisement). This is a conformance adapter:
// it exercises our own Marshal implementation against an independent
// decoder as a round-trip check in tests.
func ToGoogleSchema(s *Schema) (*jsonschema.Schema, error) {
	raw, err := Marshal(s)
	if err != nil {
		return nil, err
	}
	out := new(jsonschema.Schema)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("schema: unmarshaling into google schema: %w", err)
	}
	return out, nil
}

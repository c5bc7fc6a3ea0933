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
	"fmt"

	"github.com/schemaforge/typegen/pkg/schema"
	"github.com/schemaforge/typegen/pkg/typemodel"
)

// buildString dispatches on format. Pattern and length validators are
// accepted but ignored.
// TODO enforce pattern and length bounds once the type model can carry them.
func (c *Compiler) buildString(s *schema.Schema) (typemodel.TypeEntry, error) {
	switch s.Format {
	case "":
		return typemodel.StringT{}, nil
	case "uuid":
		return typemodel.BuiltinOpaque{TypeName: "uuid"}, nil
	case "date":
		return typemodel.BuiltinOpaque{TypeName: "date"}, nil
	case "date-time":
		return typemodel.BuiltinOpaque{TypeName: "date-time"}, nil
	case "uri", "uri-template", "email", "ip", "ipv4", "ipv6":
		return typemodel.StringT{}, nil
	default:
		return nil, fmt.Errorf("%w: unrecognized string format %q", ErrUnsupported, s.Format)
	}
}

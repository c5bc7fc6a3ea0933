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
	"strings"

	"github.com/schemaforge/typegen/pkg/schema"
	"github.com/schemaforge/typegen/pkg/typemodel"
)

// buildForeign produces a BuiltinOpaque for a well-formed `x-<target>`
// extension hint: "<crate>::<path>" as the type name, plus the
// converted ids of any generic parameters.
func (c *Compiler) buildForeign(hint *schema.ForeignTypeHint, namingHint string) (typemodel.TypeEntry, error) {
	if !strings.HasPrefix(hint.Path, "::") {
		return nil, fmt.Errorf("%w: foreign type path %q must begin with \"::\"", ErrUnsupported, hint.Path)
	}

	foreignName := hint.Path
	if hint.Crate != "" {
		foreignName = hint.Crate + hint.Path
	}

	params := make([]typemodel.TypeID, 0, len(hint.Parameters))
	for i, p := range hint.Parameters {
		id, err := c.convert(p, fmt.Sprintf("%sParam%d", namingHint, i))
		if err != nil {
			return nil, err
		}
		params = append(params, id)
	}

	return typemodel.BuiltinOpaque{TypeName: foreignName, Parameters: params}, nil
}

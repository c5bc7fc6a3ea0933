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
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
)

func init() {
	// Initialisms that should survive recasing intact in schema titles and
	// property names.
	for _, word := range []string{"ID", "URL", "URI", "UUID", "JSON", "HTTP", "API"} {
		strcase.ConfigureAcronym(word, word)
	}
}

// fieldName recases a JSON property key into an exported Go-style field
// identifier. Target-language casing conventions are the emitter's
// business, not this compiler's; UpperCamel is used here only as the
// canonical recased form carried inside the type model.
func fieldName(jsonKey string) string {
	if jsonKey == "" {
		return "Field"
	}
	name := strcase.ToCamel(sanitizeIdent(jsonKey))
	return ensureIdentStart(name)
}

// variantName recases a oneOf/anyOf discriminator value or invented
// untagged-variant label into an exported identifier.
func variantName(tag string) string {
	if tag == "" {
		return "Variant"
	}
	return ensureIdentStart(strcase.ToCamel(sanitizeIdent(tag)))
}

// typeName recases a schema title, definitions-table key, or synthesized
// naming hint (parent + suffix) into an exported type identifier.
func typeName(hint string) string {
	if hint == "" {
		return "Anonymous"
	}
	return ensureIdentStart(strcase.ToCamel(sanitizeIdent(hint)))
}

// sanitizeIdent replaces runs of non-identifier characters with a single
// separator so strcase has word boundaries to work with.
func sanitizeIdent(s string) string {
	var b strings.Builder
	lastWasSep := true
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastWasSep = false
			continue
		}
		if !lastWasSep {
			b.WriteByte('_')
			lastWasSep = true
		}
	}
	return strings.Trim(b.String(), "_")
}

// ensureIdentStart prefixes "N" when recasing produced a name starting with
// a digit (a valid JSON key like "200" is not a valid identifier leading
// character), and falls back to "Field" when nothing survived sanitizing.
func ensureIdentStart(s string) string {
	if s == "" {
		return "Field"
	}
	if unicode.IsDigit(rune(s[0])) {
		return "N" + s
	}
	return s
}

// itemNaming returns the naming hint for an array's element type: parent +
// "Item" when a parent hint exists.
func itemNaming(parentHint string) string {
	if parentHint == "" {
		return ""
	}
	return parentHint + "Item"
}

// Copyright 2026 The typegen Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the specific language governing permissions and limitations under the License.

// Package compile turns JSON Schema documents into typemodel entries. It
// houses three coupled subsystems: the converter (pattern-dispatch from
// schema.Schema to a typemodel.TypeEntry), the oneOf/anyOf classifier and
// mutual-exclusion analyzer (tag-scheme recognition), and the merger (a
// semantic intersection operator over two schemas).
package compile

import (
	"io"
	"log/slog"

	"github.com/schemaforge/typegen/pkg/registry"
	"github.com/schemaforge/typegen/pkg/schema"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures a Compiler. All fields are optional; a zero Options
// value is usable (it just logs nothing).
type Options struct {
	// Logger receives diagnostic events (a dropped anyOf alternative, a
	// not-subtraction fallback to identity, a chosen integer candidate).
	// A nil Logger disables logging; callers that want visibility pass
	// slog.Default() or a scoped logger.
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return discardLogger
}

// Compiler is the entry point for both conversion and merging. It owns no
// mutable state of its own beyond what's threaded through each call; the
// only mutable collaborator is the Registry.
type Compiler struct {
	defs *schema.Definitions
	reg  registry.Registry
	opts Options
}

// New constructs a Compiler over a fixed, already-populated definitions
// table and a registry to assign/intern TypeIDs into.
func New(defs *schema.Definitions, reg registry.Registry, opts Options) *Compiler {
	return &Compiler{defs: defs, reg: reg, opts: opts}
}

// refGuard is the visited-set cycle guard for reference resolution during
// merge: a set of reference-key pairs already being merged, threaded
// through recursive merge calls so that allOf of cyclic references
// terminates instead of looping forever.
type refGuard map[[2]string]bool

func newRefGuard() refGuard { return make(refGuard) }

func (g refGuard) enter(a, b string) (refGuard, bool) {
	key := pairKey(a, b)
	if g[key] {
		return g, false
	}
	next := make(refGuard, len(g)+1)
	for k := range g {
		next[k] = true
	}
	next[key] = true
	return next, true
}

func pairKey(a, b string) [2]string {
	if a <= b {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}

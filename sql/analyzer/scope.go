// Copyright 2026 Skylark Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package analyzer

import "github.com/skylarkdb/skylark/sql"

// Scope threads the chain of outer queries a subquery is nested inside,
// innermost first, so a rule resolving a correlated reference can walk
// outward past its own node without being handed the whole tree. A nil
// *Scope is the top-level (uncorrelated) scope and every method on it is
// safe to call.
type Scope struct {
	node  sql.Node
	outer *Scope
	memo  map[string]interface{}
}

// newScope returns the Scope seen by n's children: n pushed onto s. Called
// with a nil receiver at the top of a plan, so the very first scope in a
// subquery's chain has no outer scope of its own.
func (s *Scope) newScope(n sql.Node) *Scope {
	return &Scope{node: n, outer: s}
}

// WithMemo returns a copy of s (or a fresh top-level scope, if s is nil)
// with key set to value, for a rule that needs to remember something for
// the rest of this scope's descent. No built-in rule calls it.
func (s *Scope) WithMemo(key string, value interface{}) *Scope {
	ns := &Scope{memo: map[string]interface{}{}}
	if s != nil {
		ns.node = s.node
		ns.outer = s.outer
		for k, v := range s.memo {
			ns.memo[k] = v
		}
	}
	ns.memo[key] = value
	return ns
}

// InnerToOuter returns the chain of enclosing query nodes, innermost
// first. An empty slice at the top level.
func (s *Scope) InnerToOuter() []sql.Node {
	var out []sql.Node
	for c := s; c != nil; c = c.outer {
		out = append(out, c.node)
	}
	return out
}

// OuterToInner is InnerToOuter reversed, the order a qualifier lookup that
// prefers the closest enclosing definition wants to fall back through.
func (s *Scope) OuterToInner() []sql.Node {
	chain := s.InnerToOuter()
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// IsEmpty reports whether this is the top-level scope.
func (s *Scope) IsEmpty() bool { return s == nil }

// Memo lets a rule stash per-scope state (e.g. the set of CTE names already
// substituted) that must not leak into sibling subqueries. Lazily
// allocated so a nil Scope never touches memory.
func (s *Scope) Memo(key string) (interface{}, bool) {
	if s == nil || s.memo == nil {
		return nil, false
	}
	v, ok := s.memo[key]
	return v, ok
}

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

package sql

import "sync/atomic"

// ExprId is a process-unique identifier minted for every AttributeReference
// and Alias at construction time. Attribute equality across plan nodes is
// always by ExprId, never by name: two columns named "a" in a self-join are
// different attributes.
type ExprId uint64

var exprIdCounter uint64

// NewExprId mints a fresh, process-wide unique id. Safe to call
// concurrently: multiple analyses may run in different goroutines.
func NewExprId() ExprId {
	return ExprId(atomic.AddUint64(&exprIdCounter, 1))
}

// AttributeSet is a set of attributes keyed by ExprId, matching the
// "equality is by ExprId, not name" invariant of the data model.
type AttributeSet map[ExprId]struct{}

func NewAttributeSet(ids ...ExprId) AttributeSet {
	s := make(AttributeSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s AttributeSet) Add(id ExprId) {
	s[id] = struct{}{}
}

func (s AttributeSet) Contains(id ExprId) bool {
	_, ok := s[id]
	return ok
}

func (s AttributeSet) Union(o AttributeSet) AttributeSet {
	out := make(AttributeSet, len(s)+len(o))
	for id := range s {
		out[id] = struct{}{}
	}
	for id := range o {
		out[id] = struct{}{}
	}
	return out
}

// Intersects reports whether s and o share at least one ExprId.
func (s AttributeSet) Intersects(o AttributeSet) bool {
	small, big := s, o
	if len(big) < len(small) {
		small, big = big, small
	}
	for id := range small {
		if big.Contains(id) {
			return true
		}
	}
	return false
}

// ExpressionsAttributeSet collects the ExprIds of every NamedExpression-typed
// attribute in a schema-producing list of expressions.
func ExpressionsAttributeSet(exprs []Expression) AttributeSet {
	out := make(AttributeSet, len(exprs))
	for _, e := range exprs {
		if named, ok := e.(NamedExpression); ok {
			out.Add(named.ID())
		}
	}
	return out
}

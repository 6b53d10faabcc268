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

package expression

import (
	"fmt"

	"github.com/skylarkdb/skylark/sql"
)

// Literal is a constant value of a known type. Literals are always
// resolved and are never foldable-but-unknown: the parser (out of scope
// here) is responsible for typing them before the plan reaches the
// analyzer.
type Literal struct {
	Value interface{}
	Typ   sql.Type
}

func NewLiteral(value interface{}, typ sql.Type) *Literal {
	return &Literal{Value: value, Typ: typ}
}

func (l *Literal) Resolved() bool                 { return true }
func (l *Literal) Type() sql.Type                 { return l.Typ }
func (l *Literal) Nullable() bool                 { return l.Value == nil }
func (l *Literal) Children() []sql.Expression     { return nil }
func (l *Literal) String() string                 { return toStringFallback(l.Value) }
func (l *Literal) Eval(*sql.Context, sql.Row) (interface{}, error) { return l.Value, nil }

func (l *Literal) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("expression.Literal: expected 0 children, got %d", len(children))
	}
	return l, nil
}

// Deterministic reports whether a resolved expression is free of
// nondeterministic constructs. Used by PullOutNondeterministic; every
// expression type that wraps a nondeterministic builtin (Rand, UUID, a
// sequence generator) must override this via the NondeterministicExpression
// marker interface below.
func Deterministic(e sql.Expression) bool {
	if nd, ok := e.(NondeterministicExpression); ok && nd.IsNondeterministic() {
		return false
	}
	for _, c := range e.Children() {
		if !Deterministic(c) {
			return false
		}
	}
	return true
}

// NondeterministicExpression is implemented by leaf expressions (Rand,
// UUID, ...) whose value differs across evaluations of an otherwise
// identical row.
type NondeterministicExpression interface {
	sql.Expression
	IsNondeterministic() bool
}

// Foldable reports whether e can be evaluated without a row -- built
// entirely from Literals. ExtractWindowExpressions uses this to decide
// which window-function arguments are worth pulling into their own
// projection (a literal argument needs no attribute of its own) versus
// which aren't (a column reference, a nondeterministic call).
func Foldable(e sql.Expression) bool {
	switch e.(type) {
	case *Literal:
		return true
	}
	if nd, ok := e.(NondeterministicExpression); ok && nd.IsNondeterministic() {
		return false
	}
	children := e.Children()
	if len(children) == 0 {
		return false
	}
	for _, c := range children {
		if !Foldable(c) {
			return false
		}
	}
	return true
}

func toStringFallback(v interface{}) string {
	if v == nil {
		return "NULL"
	}
	switch t := v.(type) {
	case string:
		return fmt.Sprintf("%q", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

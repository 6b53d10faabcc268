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

// Package expression holds the closed set of expression node types the
// analyzer resolves: literals, attribute references, the Unresolved*
// family, aliases, window and aggregate wrappers, and a handful of
// compound expressions (struct/array access, logical connectives).
package expression

import "github.com/skylarkdb/skylark/sql"

// UnaryExpression is embedded by expressions with exactly one child.
type UnaryExpression struct {
	Child sql.Expression
}

func (e *UnaryExpression) Children() []sql.Expression { return []sql.Expression{e.Child} }

func (e *UnaryExpression) Resolved() bool { return e.Child.Resolved() }

// BinaryExpression is embedded by expressions with a left and right child.
type BinaryExpression struct {
	Left, Right sql.Expression
}

func (e *BinaryExpression) Children() []sql.Expression {
	return []sql.Expression{e.Left, e.Right}
}

func (e *BinaryExpression) Resolved() bool {
	return e.Left.Resolved() && e.Right.Resolved()
}

// NaryExpression is embedded by expressions with an arbitrary, named-only
// list of children (function calls, CreateArray/CreateStruct, ...).
type NaryExpression struct {
	ChildExprs []sql.Expression
}

func (e *NaryExpression) Children() []sql.Expression { return e.ChildExprs }

func (e *NaryExpression) Resolved() bool {
	for _, c := range e.ChildExprs {
		if !c.Resolved() {
			return false
		}
	}
	return true
}

// SemanticEquals reports whether a and b are equal modulo ExprId renaming
// and cosmetic differences (aliases' names, for instance). It is used by
// ResolveGroupingAnalytics to match aggregate-list expressions back to
// group-by expressions, and by ExtractWindowExpressions to dedup already
// extracted subexpressions.
func SemanticEquals(a, b sql.Expression) bool {
	return semanticKey(a) == semanticKey(b)
}

// semanticKey produces a string key stable across ExprId but sensitive to
// shape and literal value. Attribute nodes contribute their name+table
// instead of their ExprId.
func semanticKey(e sql.Expression) string {
	switch v := e.(type) {
	case *GetField:
		return "gf:" + v.table + "." + v.name
	case *Alias:
		return semanticKey(v.Child)
	case *Literal:
		return "lit:" + v.Type().Name() + ":" + stringifyLiteral(v.Value)
	default:
		key := e.String()
		for _, c := range e.Children() {
			key += "|" + semanticKey(c)
		}
		return key
	}
}

func stringifyLiteral(v interface{}) string {
	if v == nil {
		return "<nil>"
	}
	return toStringFallback(v)
}

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

package transform

import "github.com/skylarkdb/skylark/sql"

// Visitor is called once per node of a Walk, and once more (with a nil
// node) after each node's children have all been visited, mirroring
// ast.Visitor. Returning nil from Visit stops descent into that node's
// children.
type Visitor interface {
	Visit(n sql.Node) Visitor
}

// Walk traverses n depth-first, calling v.Visit(node) before descending
// into children and v.Visit(nil) after each child (including leaves).
func Walk(v Visitor, n sql.Node) {
	if v = v.Visit(n); v == nil {
		return
	}
	for _, c := range n.Children() {
		Walk(v, c)
	}
	v.Visit(nil)
}

// Inspect is the func-based convenience wrapper over Walk: f is called on
// every node (and once with nil after each subtree); returning false stops
// descent into that node's children.
func Inspect(n sql.Node, f func(sql.Node) bool) {
	Walk(inspector(f), n)
}

type inspector func(sql.Node) bool

func (f inspector) Visit(n sql.Node) Visitor {
	if f(n) {
		return f
	}
	return nil
}

// Collect returns every node in n's subtree (including n) for which match
// returns true.
func Collect(n sql.Node, match func(sql.Node) bool) []sql.Node {
	var out []sql.Node
	Inspect(n, func(node sql.Node) bool {
		if node == nil {
			return true
		}
		if match(node) {
			out = append(out, node)
		}
		return true
	})
	return out
}

// CollectExprs returns every expression satisfying match, anywhere in n's
// subtree, searching both each node's own expressions and any expression
// subtrees they contain.
func CollectExprs(n sql.Node, match func(sql.Expression) bool) []sql.Expression {
	var out []sql.Expression
	Inspect(n, func(node sql.Node) bool {
		en, ok := node.(ExpressionsNode)
		if !ok {
			return true
		}
		for _, e := range en.Expressions() {
			InspectExpr(e, func(expr sql.Expression) bool {
				if match(expr) {
					out = append(out, expr)
				}
				return true
			})
		}
		return true
	})
	return out
}

// InspectExpr walks an expression tree depth-first, calling f on every
// node; returning false from f stops descent into that expression's
// children.
func InspectExpr(e sql.Expression, f func(sql.Expression) bool) {
	if !f(e) {
		return
	}
	for _, c := range e.Children() {
		InspectExpr(c, f)
	}
}

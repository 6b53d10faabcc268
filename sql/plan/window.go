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

package plan

import (
	"fmt"

	"github.com/skylarkdb/skylark/sql"
	"github.com/skylarkdb/skylark/sql/expression"
)

// Window evaluates WindowExpressions -- all sharing Spec -- over Child's
// rows partitioned/ordered per Spec, appending their results to the
// PassThrough attributes (the child's output at the point
// ExtractWindowExpressions inserted this node). Invariant 6 (spec §8)
// requires every element of WindowExpressions to carry exactly Spec.
type Window struct {
	UnaryNode
	PassThrough       []sql.Expression
	WindowExpressions []sql.Expression // *expression.WindowExpression elements
	Spec              *expression.WindowSpecDefinition
}

func NewWindow(passThrough, windowExprs []sql.Expression, spec *expression.WindowSpecDefinition, child sql.Node) *Window {
	return &Window{UnaryNode: UnaryNode{Child: child}, PassThrough: passThrough, WindowExpressions: windowExprs, Spec: spec}
}

func (w *Window) Resolved() bool {
	if !w.Child.Resolved() {
		return false
	}
	for _, e := range w.WindowExpressions {
		if !e.Resolved() {
			return false
		}
	}
	return true
}

func (w *Window) Schema() sql.Schema {
	out := make(sql.Schema, 0, len(w.PassThrough)+len(w.WindowExpressions))
	for _, e := range w.PassThrough {
		out = append(out, columnFor(e))
	}
	for _, e := range w.WindowExpressions {
		out = append(out, columnFor(e))
	}
	return out
}

func (w *Window) String() string {
	return fmt.Sprintf("Window(%d exprs over %s, %s)", len(w.WindowExpressions), w.Spec, w.Child)
}

func (w *Window) Expressions() []sql.Expression {
	out := make([]sql.Expression, 0, len(w.PassThrough)+len(w.WindowExpressions))
	out = append(out, w.PassThrough...)
	out = append(out, w.WindowExpressions...)
	return out
}

func (w *Window) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	n := len(w.PassThrough)
	if len(exprs) != n+len(w.WindowExpressions) {
		return nil, fmt.Errorf("plan.Window: expected %d expressions, got %d", n+len(w.WindowExpressions), len(exprs))
	}
	return NewWindow(exprs[:n], exprs[n:], w.Spec, w.Child), nil
}

func (w *Window) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan.Window: expected 1 child, got %d", len(children))
	}
	return NewWindow(w.PassThrough, w.WindowExpressions, w.Spec, children[0]), nil
}

// Output implements OutputNode.
func (w *Window) Output() []sql.Expression {
	return append(append([]sql.Expression{}, w.PassThrough...), w.WindowExpressions...)
}

var _ OutputNode = (*Window)(nil)

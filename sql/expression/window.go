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
	"strings"

	"github.com/skylarkdb/skylark/sql"
)

// FrameBound and Frame describe a window's ROWS/RANGE bounds. The
// analyzer treats frames as opaque equality-comparable values; it never
// evaluates them.
type FrameBound struct {
	Kind   string // "unbounded_preceding", "preceding", "current_row", "following", "unbounded_following"
	Offset int
}

type Frame struct {
	Kind  string // "rows" or "range"
	Start FrameBound
	End   FrameBound
}

func (f *Frame) Equals(o *Frame) bool {
	if f == nil || o == nil {
		return f == o
	}
	return *f == *o
}

func (f *Frame) String() string {
	if f == nil {
		return ""
	}
	return fmt.Sprintf("%s BETWEEN %s AND %s", f.Kind, f.Start.Kind, f.End.Kind)
}

// WindowSpecDefinition is the resolved body of an OVER (...) clause.
type WindowSpecDefinition struct {
	PartitionBy []sql.Expression
	OrderBy     []*SortOrder
	Frame       *Frame
}

func NewWindowSpecDefinition(partitionBy []sql.Expression, orderBy []*SortOrder, frame *Frame) *WindowSpecDefinition {
	return &WindowSpecDefinition{PartitionBy: partitionBy, OrderBy: orderBy, Frame: frame}
}

func (w *WindowSpecDefinition) Resolved() bool {
	for _, p := range w.PartitionBy {
		if !p.Resolved() {
			return false
		}
	}
	for _, o := range w.OrderBy {
		if !o.Resolved() {
			return false
		}
	}
	return true
}

// Equals compares two window specs by partition spec, order spec, and
// frame -- the grouping key ExtractWindowExpressions uses to batch window
// expressions into as few Window operators as possible.
func (w *WindowSpecDefinition) Equals(o *WindowSpecDefinition) bool {
	if w == nil || o == nil {
		return w == o
	}
	if len(w.PartitionBy) != len(o.PartitionBy) || len(w.OrderBy) != len(o.OrderBy) {
		return false
	}
	for i := range w.PartitionBy {
		if !SemanticEquals(w.PartitionBy[i], o.PartitionBy[i]) {
			return false
		}
	}
	for i := range w.OrderBy {
		if !SemanticEquals(w.OrderBy[i].Child, o.OrderBy[i].Child) || w.OrderBy[i].Direction != o.OrderBy[i].Direction {
			return false
		}
	}
	return w.Frame.Equals(o.Frame)
}

func (w *WindowSpecDefinition) String() string {
	parts := make([]string, 0, 2)
	if len(w.PartitionBy) > 0 {
		ps := make([]string, len(w.PartitionBy))
		for i, p := range w.PartitionBy {
			ps[i] = p.String()
		}
		parts = append(parts, "PARTITION BY "+strings.Join(ps, ", "))
	}
	if len(w.OrderBy) > 0 {
		os := make([]string, len(w.OrderBy))
		for i, o := range w.OrderBy {
			os[i] = o.String()
		}
		parts = append(parts, "ORDER BY "+strings.Join(os, ", "))
	}
	return strings.Join(parts, " ")
}

// WindowExpression is a resolved window function call: a Window-kind
// expression (often an AggregateExpression in Window mode) evaluated over
// a WindowSpecDefinition.
type WindowExpression struct {
	UnaryExpression
	WindowDef *WindowSpecDefinition
}

func NewWindowExpression(child sql.Expression, def *WindowSpecDefinition) *WindowExpression {
	return &WindowExpression{UnaryExpression{Child: child}, def}
}

func (w *WindowExpression) Resolved() bool {
	return w.Child.Resolved() && w.WindowDef.Resolved()
}
func (w *WindowExpression) Type() sql.Type { return w.Child.Type() }
func (w *WindowExpression) Nullable() bool { return w.Child.Nullable() }
func (w *WindowExpression) String() string {
	return fmt.Sprintf("%s OVER (%s)", w.Child, w.WindowDef)
}
func (w *WindowExpression) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	return w.Child.Eval(ctx, row)
}
func (w *WindowExpression) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression.WindowExpression: expected 1 child, got %d", len(children))
	}
	return NewWindowExpression(children[0], w.WindowDef), nil
}

// IsWindowExpression reports whether e is (or, for compound expressions,
// contains) a WindowExpression. ExtractWindowExpressions uses this to
// partition an expression list into "withWin" and "regular".
func IsWindowExpression(e sql.Expression) bool {
	found := false
	var walk func(sql.Expression)
	walk = func(n sql.Expression) {
		if found || n == nil {
			return
		}
		if _, ok := n.(*WindowExpression); ok {
			found = true
			return
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(e)
	return found
}

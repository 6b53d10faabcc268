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
	"github.com/skylarkdb/skylark/sql/types"
)

type boolBinary struct {
	BinaryExpression
	op string
}

func (b *boolBinary) Type() sql.Type { return types.Boolean }
func (b *boolBinary) Nullable() bool { return b.Left.Nullable() || b.Right.Nullable() }
func (b *boolBinary) String() string { return fmt.Sprintf("(%s %s %s)", b.Left, b.op, b.Right) }
func (b *boolBinary) Eval(*sql.Context, sql.Row) (interface{}, error) {
	return nil, fmt.Errorf("expression: %s not evaluable by the analyzer", b.op)
}

func newBoolBinary(op string, l, r sql.Expression) *boolBinary {
	return &boolBinary{BinaryExpression{Left: l, Right: r}, op}
}

type And struct{ *boolBinary }

func NewAnd(l, r sql.Expression) *And { return &And{newBoolBinary("AND", l, r)} }
func (a *And) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("expression.And: expected 2 children, got %d", len(children))
	}
	return NewAnd(children[0], children[1]), nil
}

// JoinAnd folds a slice of conditions into a right-associated chain of
// And expressions, the shape multi-condition WHERE/ON clauses arrive in.
func JoinAnd(exprs ...sql.Expression) sql.Expression {
	if len(exprs) == 0 {
		return nil
	}
	if len(exprs) == 1 {
		return exprs[0]
	}
	return NewAnd(exprs[0], JoinAnd(exprs[1:]...))
}

type Or struct{ *boolBinary }

func NewOr(l, r sql.Expression) *Or { return &Or{newBoolBinary("OR", l, r)} }
func (o *Or) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("expression.Or: expected 2 children, got %d", len(children))
	}
	return NewOr(children[0], children[1]), nil
}

type Not struct{ UnaryExpression }

func NewNot(child sql.Expression) *Not { return &Not{UnaryExpression{Child: child}} }
func (n *Not) Type() sql.Type          { return types.Boolean }
func (n *Not) Nullable() bool          { return n.Child.Nullable() }
func (n *Not) String() string          { return fmt.Sprintf("NOT(%s)", n.Child) }
func (n *Not) Eval(*sql.Context, sql.Row) (interface{}, error) {
	return nil, fmt.Errorf("expression.Not: not evaluable by the analyzer")
}
func (n *Not) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression.Not: expected 1 child, got %d", len(children))
	}
	return NewNot(children[0]), nil
}

type IsNull struct{ UnaryExpression }

func NewIsNull(child sql.Expression) *IsNull { return &IsNull{UnaryExpression{Child: child}} }
func (n *IsNull) Type() sql.Type              { return types.Boolean }
func (n *IsNull) Nullable() bool              { return false }
func (n *IsNull) String() string              { return fmt.Sprintf("%s IS NULL", n.Child) }
func (n *IsNull) Eval(*sql.Context, sql.Row) (interface{}, error) {
	return nil, fmt.Errorf("expression.IsNull: not evaluable by the analyzer")
}
func (n *IsNull) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression.IsNull: expected 1 child, got %d", len(children))
	}
	return NewIsNull(children[0]), nil
}

func cmp(op string, l, r sql.Expression) *boolBinary { return newBoolBinary(op, l, r) }

type Equals struct{ *boolBinary }

func NewEquals(l, r sql.Expression) *Equals { return &Equals{cmp("=", l, r)} }
func (e *Equals) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return NewEquals(children[0], children[1]), nil
}

type GreaterThan struct{ *boolBinary }

func NewGreaterThan(l, r sql.Expression) *GreaterThan { return &GreaterThan{cmp(">", l, r)} }
func (e *GreaterThan) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return NewGreaterThan(children[0], children[1]), nil
}

type GreaterThanOrEqual struct{ *boolBinary }

func NewGreaterThanOrEqual(l, r sql.Expression) *GreaterThanOrEqual {
	return &GreaterThanOrEqual{cmp(">=", l, r)}
}
func (e *GreaterThanOrEqual) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return NewGreaterThanOrEqual(children[0], children[1]), nil
}

type LessThan struct{ *boolBinary }

func NewLessThan(l, r sql.Expression) *LessThan { return &LessThan{cmp("<", l, r)} }
func (e *LessThan) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return NewLessThan(children[0], children[1]), nil
}

type LessThanOrEqual struct{ *boolBinary }

func NewLessThanOrEqual(l, r sql.Expression) *LessThanOrEqual {
	return &LessThanOrEqual{cmp("<=", l, r)}
}
func (e *LessThanOrEqual) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return NewLessThanOrEqual(children[0], children[1]), nil
}

// Tuple groups expressions for IN-list comparisons.
type Tuple struct{ NaryExpression }

func NewTuple(vals ...sql.Expression) *Tuple { return &Tuple{NaryExpression{ChildExprs: vals}} }
func (t *Tuple) Type() sql.Type              { return nil }
func (t *Tuple) Nullable() bool              { return false }
func (t *Tuple) String() string              { return "(...)" }
func (t *Tuple) Eval(*sql.Context, sql.Row) (interface{}, error) {
	return nil, fmt.Errorf("expression.Tuple: not evaluable by the analyzer")
}
func (t *Tuple) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return NewTuple(children...), nil
}

type InTuple struct{ *boolBinary }

func NewInTuple(col, tuple sql.Expression) *InTuple { return &InTuple{cmp("IN", col, tuple)} }
func (e *InTuple) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return NewInTuple(children[0], children[1]), nil
}

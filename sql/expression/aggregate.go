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

// AggregateMode mirrors the "new-style aggregate function" dispatch the
// analyzer's function resolution performs: every resolved aggregate call
// is wrapped so later rules (GlobalAggregates, ResolveGroupingAnalytics,
// ExtractWindowExpressions) can recognize it by type rather than by name.
type AggregateMode int

const (
	Complete AggregateMode = iota
	Window
)

// AggregateFunction is implemented by concrete aggregate bodies (Sum,
// Count, Avg, Min, Max, ...) that the function registry constructs.
type AggregateFunction interface {
	sql.Expression
	FunctionName() string
}

// AggregateExpression wraps a resolved AggregateFunction with its dispatch
// mode and DISTINCT-ness, exactly the "new-style aggregate function ->
// AggregateExpression2(f, Complete, isDistinct)" step ResolveFunctions
// performs.
type AggregateExpression struct {
	Func       AggregateFunction
	Mode       AggregateMode
	IsDistinct bool
}

func NewAggregateExpression(f AggregateFunction, mode AggregateMode, isDistinct bool) *AggregateExpression {
	return &AggregateExpression{Func: f, Mode: mode, IsDistinct: isDistinct}
}

func (a *AggregateExpression) Resolved() bool             { return a.Func.Resolved() }
func (a *AggregateExpression) Type() sql.Type              { return a.Func.Type() }
func (a *AggregateExpression) Nullable() bool              { return a.Func.Nullable() }
func (a *AggregateExpression) Children() []sql.Expression { return []sql.Expression{a.Func} }
func (a *AggregateExpression) String() string {
	if a.IsDistinct {
		return fmt.Sprintf("%s(DISTINCT ...)", a.Func.FunctionName())
	}
	return a.Func.String()
}
func (a *AggregateExpression) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	return a.Func.Eval(ctx, row)
}
func (a *AggregateExpression) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression.AggregateExpression: expected 1 child, got %d", len(children))
	}
	fn, ok := children[0].(AggregateFunction)
	if !ok {
		return nil, fmt.Errorf("expression.AggregateExpression: child must be an AggregateFunction")
	}
	return &AggregateExpression{Func: fn, Mode: a.Mode, IsDistinct: a.IsDistinct}, nil
}

// IsAggregateExpression reports whether e is, or (for compound
// expressions) contains, an aggregate call -- the test GlobalAggregates,
// UnresolvedHavingClauseAttributes, and ResolveSortReferences all need.
func IsAggregateExpression(e sql.Expression) bool {
	found := false
	var walk func(sql.Expression)
	walk = func(n sql.Expression) {
		if found || n == nil {
			return
		}
		switch n.(type) {
		case *AggregateExpression, *LegacySumDistinct, *LegacyCountDistinct:
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

// LegacySumDistinct and LegacyCountDistinct are the pre-AggregateFunction
// aggregate forms the spec calls out as already carrying DISTINCT
// semantics in their own right: ResolveFunctions returns them unwrapped,
// as-is, rather than erroring or wrapping them in AggregateExpression.
type LegacySumDistinct struct {
	UnaryExpression
}

func NewLegacySumDistinct(child sql.Expression) *LegacySumDistinct {
	return &LegacySumDistinct{UnaryExpression{Child: child}}
}
func (s *LegacySumDistinct) Type() sql.Type { return s.Child.Type() }
func (s *LegacySumDistinct) Nullable() bool { return true }
func (s *LegacySumDistinct) String() string { return fmt.Sprintf("SUM(DISTINCT %s)", s.Child) }
func (s *LegacySumDistinct) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	return s.Child.Eval(ctx, row)
}
func (s *LegacySumDistinct) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression.LegacySumDistinct: expected 1 child, got %d", len(children))
	}
	return NewLegacySumDistinct(children[0]), nil
}

type LegacyCountDistinct struct {
	NaryExpression
}

func NewLegacyCountDistinct(args ...sql.Expression) *LegacyCountDistinct {
	return &LegacyCountDistinct{NaryExpression{ChildExprs: args}}
}
func (c *LegacyCountDistinct) Type() sql.Type { return nil }
func (c *LegacyCountDistinct) Nullable() bool { return false }
func (c *LegacyCountDistinct) String() string { return "COUNT(DISTINCT ...)" }
func (c *LegacyCountDistinct) Eval(*sql.Context, sql.Row) (interface{}, error) {
	return nil, fmt.Errorf("expression.LegacyCountDistinct: not evaluable by the analyzer")
}
func (c *LegacyCountDistinct) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	cp := *c
	cp.ChildExprs = children
	return &cp, nil
}

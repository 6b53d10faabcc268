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

// Package aggregation holds the built-in AggregateFunction
// implementations the function registry wraps in
// expression.AggregateExpression.
package aggregation

import (
	"fmt"

	"github.com/skylarkdb/skylark/sql"
	"github.com/skylarkdb/skylark/sql/expression"
	"github.com/skylarkdb/skylark/sql/types"
)

type unaryAggregate struct {
	expression.UnaryExpression
	name string
	typ  sql.Type
}

func (a *unaryAggregate) FunctionName() string { return a.name }
func (a *unaryAggregate) Type() sql.Type       { return a.typ }
func (a *unaryAggregate) Nullable() bool       { return true }
func (a *unaryAggregate) String() string       { return fmt.Sprintf("%s(%s)", a.name, a.Child) }
func (a *unaryAggregate) Eval(*sql.Context, sql.Row) (interface{}, error) {
	return nil, fmt.Errorf("aggregation.%s: not evaluable by the analyzer", a.name)
}

func oneArg(name string, args []sql.Expression) (sql.Expression, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%s: expected exactly 1 argument, got %d", name, len(args))
	}
	return args[0], nil
}

type Sum struct{ unaryAggregate }

func NewSum(args []sql.Expression) (expression.AggregateFunction, error) {
	child, err := oneArg("sum", args)
	if err != nil {
		return nil, err
	}
	typ := child.Type()
	if typ == nil || !types.Numeric(typ) {
		typ = types.Float64
	}
	return &Sum{unaryAggregate{expression.UnaryExpression{Child: child}, "sum", typ}}, nil
}

func (s *Sum) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("aggregation.Sum: expected 1 child, got %d", len(children))
	}
	cp := *s
	cp.Child = children[0]
	return &cp, nil
}

type Avg struct{ unaryAggregate }

func NewAvg(args []sql.Expression) (expression.AggregateFunction, error) {
	child, err := oneArg("avg", args)
	if err != nil {
		return nil, err
	}
	return &Avg{unaryAggregate{expression.UnaryExpression{Child: child}, "avg", types.Float64}}, nil
}

func (a *Avg) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("aggregation.Avg: expected 1 child, got %d", len(children))
	}
	cp := *a
	cp.Child = children[0]
	return &cp, nil
}

type Min struct{ unaryAggregate }

func NewMin(args []sql.Expression) (expression.AggregateFunction, error) {
	child, err := oneArg("min", args)
	if err != nil {
		return nil, err
	}
	return &Min{unaryAggregate{expression.UnaryExpression{Child: child}, "min", child.Type()}}, nil
}

func (m *Min) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("aggregation.Min: expected 1 child, got %d", len(children))
	}
	cp := *m
	cp.Child = children[0]
	return &cp, nil
}

type Max struct{ unaryAggregate }

func NewMax(args []sql.Expression) (expression.AggregateFunction, error) {
	child, err := oneArg("max", args)
	if err != nil {
		return nil, err
	}
	return &Max{unaryAggregate{expression.UnaryExpression{Child: child}, "max", child.Type()}}, nil
}

func (m *Max) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("aggregation.Max: expected 1 child, got %d", len(children))
	}
	cp := *m
	cp.Child = children[0]
	return &cp, nil
}

// Count supports both COUNT(x) and COUNT(*) (Child == nil, Star == true).
type Count struct {
	expression.UnaryExpression
	Star bool
}

func NewCount(args []sql.Expression) (expression.AggregateFunction, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("count: expected exactly 1 argument, got %d", len(args))
	}
	if _, ok := args[0].(*expression.Star); ok {
		return &Count{expression.UnaryExpression{Child: args[0]}, true}, nil
	}
	return &Count{expression.UnaryExpression{Child: args[0]}, false}, nil
}

func (c *Count) FunctionName() string { return "count" }
func (c *Count) Type() sql.Type       { return types.Int64 }
func (c *Count) Nullable() bool       { return false }
func (c *Count) String() string {
	if c.Star {
		return "count(*)"
	}
	return fmt.Sprintf("count(%s)", c.Child)
}
func (c *Count) Eval(*sql.Context, sql.Row) (interface{}, error) {
	return nil, fmt.Errorf("aggregation.Count: not evaluable by the analyzer")
}
func (c *Count) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("aggregation.Count: expected 1 child, got %d", len(children))
	}
	cp := *c
	cp.Child = children[0]
	return &cp, nil
}

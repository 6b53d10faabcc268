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

package function

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/skylarkdb/skylark/sql"
	"github.com/skylarkdb/skylark/sql/expression"
	"github.com/skylarkdb/skylark/sql/types"
)

// round is ROUND(x) / ROUND(x, d). Backed by shopspring/decimal rather
// than float64 arithmetic so that ROUND(2.675, 2) rounds the way a
// DECIMAL-typed column is expected to, not the way IEEE 754 does.
type round struct {
	expression.NaryExpression
}

func newRound(args []sql.Expression) (sql.Expression, error) {
	if len(args) != 1 && len(args) != 2 {
		return nil, fmt.Errorf("round: expected 1 or 2 arguments, got %d", len(args))
	}
	return &round{expression.NaryExpression{ChildExprs: args}}, nil
}

func (r *round) Type() sql.Type { return types.Decimal }
func (r *round) Nullable() bool { return true }
func (r *round) String() string {
	if len(r.ChildExprs) == 1 {
		return fmt.Sprintf("round(%s)", r.ChildExprs[0])
	}
	return fmt.Sprintf("round(%s, %s)", r.ChildExprs[0], r.ChildExprs[1])
}

func (r *round) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	v, err := r.ChildExprs[0].Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}

	places := int32(0)
	if len(r.ChildExprs) == 2 {
		p, err := r.ChildExprs[1].Eval(ctx, row)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, nil
		}
		switch pv := p.(type) {
		case int:
			places = int32(pv)
		case int32:
			places = pv
		case int64:
			places = int32(pv)
		default:
			return nil, fmt.Errorf("round: precision must be an integer")
		}
	}

	d, err := toDecimal(v)
	if err != nil {
		return nil, err
	}
	return d.Round(places), nil
}

func toDecimal(v interface{}) (decimal.Decimal, error) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, nil
	case float64:
		return decimal.NewFromFloat(t), nil
	case float32:
		return decimal.NewFromFloat32(t), nil
	case int:
		return decimal.NewFromInt(int64(t)), nil
	case int32:
		return decimal.NewFromInt32(t), nil
	case int64:
		return decimal.NewFromInt(t), nil
	case string:
		return decimal.NewFromString(t)
	default:
		return decimal.Decimal{}, fmt.Errorf("round: cannot coerce %T to a number", v)
	}
}

func (r *round) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != len(r.ChildExprs) {
		return nil, fmt.Errorf("round: expected %d children, got %d", len(r.ChildExprs), len(children))
	}
	return &round{expression.NaryExpression{ChildExprs: children}}, nil
}

func registerMathFunctions(r *Registry) {
	r.Register("round", newRound)
}

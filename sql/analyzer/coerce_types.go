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

package analyzer

import (
	"github.com/shopspring/decimal"

	"github.com/skylarkdb/skylark/sql"
	"github.com/skylarkdb/skylark/sql/expression"
	"github.com/skylarkdb/skylark/sql/transform"
	"github.com/skylarkdb/skylark/sql/types"
)

// coerceTypes is the type-coercion batch member: it widens the narrower
// side of a resolved binary comparison to the wider numeric type when the
// two sides disagree, failing hard when neither side is numeric and the
// types still don't match.
func coerceTypes(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, error) {
	result, _, err := transform.NodeExprs(n, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		l, r, ok := binaryOperands(e)
		if !ok || !l.Resolved() || !r.Resolved() {
			return e, transform.SameTree, nil
		}
		if l.Type() != nil && r.Type() != nil && l.Type().Equals(r.Type()) {
			return e, transform.SameTree, nil
		}

		newL, newR, changed, err := coerceOperands(l, r)
		if err != nil {
			return nil, transform.SameTree, err
		}
		if !changed {
			return e, transform.SameTree, nil
		}

		rebuilt, err := e.WithChildren(newL, newR)
		if err != nil {
			return nil, transform.SameTree, err
		}
		return rebuilt, transform.NewTree, nil
	})
	return result, err
}

func binaryOperands(e sql.Expression) (sql.Expression, sql.Expression, bool) {
	switch e.(type) {
	case *expression.Equals, *expression.GreaterThan, *expression.GreaterThanOrEqual,
		*expression.LessThan, *expression.LessThanOrEqual:
		children := e.Children()
		if len(children) != 2 {
			return nil, nil, false
		}
		return children[0], children[1], true
	default:
		return nil, nil, false
	}
}

// coerceOperands widens whichever side is narrower to the common type
// Promote picks, failing with ErrTypeMismatch when the types are
// non-numeric and unequal.
func coerceOperands(l, r sql.Expression) (sql.Expression, sql.Expression, bool, error) {
	lt, rt := l.Type(), r.Type()
	common, ok := types.Promote(lt, rt)
	if !ok {
		return nil, nil, false, sql.ErrTypeMismatch.New(lt, rt)
	}

	newL, changedL := coerceTo(l, common)
	newR, changedR := coerceTo(r, common)
	return newL, newR, changedL || changedR, nil
}

// coerceTo widens e to typ if it isn't already: a Literal is rebuilt with
// its Go value converted (via shopspring/decimal when typ is DECIMAL),
// while any other expression is wrapped in a Cast.
func coerceTo(e sql.Expression, typ sql.Type) (sql.Expression, bool) {
	if e.Type() != nil && e.Type().Equals(typ) {
		return e, false
	}

	if lit, ok := e.(*expression.Literal); ok && typ == types.Decimal {
		if d, err := literalToDecimal(lit.Value); err == nil {
			return expression.NewLiteral(d, types.Decimal), true
		}
	}
	return expression.NewCast(e, typ), true
}

func literalToDecimal(v interface{}) (decimal.Decimal, error) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, nil
	case int:
		return decimal.NewFromInt(int64(t)), nil
	case int32:
		return decimal.NewFromInt32(t), nil
	case int64:
		return decimal.NewFromInt(t), nil
	case float32:
		return decimal.NewFromFloat32(t), nil
	case float64:
		return decimal.NewFromFloat(t), nil
	default:
		return decimal.Decimal{}, sql.ErrTypeMismatch.New("numeric literal", t)
	}
}

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

	"github.com/skylarkdb/skylark/internal/regex"
	"github.com/skylarkdb/skylark/sql"
	"github.com/skylarkdb/skylark/sql/expression"
	"github.com/skylarkdb/skylark/sql/types"
)

// regexpLike is REGEXP_LIKE(str, pattern). Backed by internal/regex,
// which prefers oniguruma's MySQL-compatible backreference support over
// Go's RE2 engine.
type regexpLike struct {
	expression.BinaryExpression
}

func newRegexpLike(args []sql.Expression) (sql.Expression, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("regexp_like: expected 2 arguments, got %d", len(args))
	}
	return &regexpLike{expression.BinaryExpression{Left: args[0], Right: args[1]}}, nil
}

func (r *regexpLike) Type() sql.Type { return types.Boolean }
func (r *regexpLike) Nullable() bool { return r.Left.Nullable() || r.Right.Nullable() }
func (r *regexpLike) String() string { return fmt.Sprintf("regexp_like(%s, %s)", r.Left, r.Right) }

func (r *regexpLike) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	left, err := r.Left.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	right, err := r.Right.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	if left == nil || right == nil {
		return nil, nil
	}
	pattern, ok := right.(string)
	if !ok {
		return nil, fmt.Errorf("regexp_like: pattern must be a string")
	}
	str, ok := left.(string)
	if !ok {
		return nil, fmt.Errorf("regexp_like: subject must be a string")
	}

	m, disposer, err := regex.New("", pattern)
	if err != nil {
		return nil, err
	}
	if disposer != nil {
		defer disposer.Dispose()
	}
	return m.Match(str), nil
}

func (r *regexpLike) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("regexp_like: expected 2 children, got %d", len(children))
	}
	return &regexpLike{expression.BinaryExpression{Left: children[0], Right: children[1]}}, nil
}

// regexpReplace is REGEXP_REPLACE(str, pattern, replacement).
type regexpReplace struct {
	expression.NaryExpression
}

func newRegexpReplace(args []sql.Expression) (sql.Expression, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("regexp_replace: expected 3 arguments, got %d", len(args))
	}
	return &regexpReplace{expression.NaryExpression{ChildExprs: args}}, nil
}

func (r *regexpReplace) Type() sql.Type { return types.LongText }
func (r *regexpReplace) Nullable() bool { return true }
func (r *regexpReplace) String() string {
	return fmt.Sprintf("regexp_replace(%s, %s, %s)", r.ChildExprs[0], r.ChildExprs[1], r.ChildExprs[2])
}

func (r *regexpReplace) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	vals := make([]interface{}, len(r.ChildExprs))
	for i, c := range r.ChildExprs {
		v, err := c.Eval(ctx, row)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, nil
		}
		vals[i] = v
	}
	str, _ := vals[0].(string)
	pattern, _ := vals[1].(string)
	repl, _ := vals[2].(string)

	m, disposer, err := regex.New("", pattern)
	if err != nil {
		return nil, err
	}
	if disposer != nil {
		defer disposer.Dispose()
	}
	return m.ReplaceAll(str, repl)
}

func (r *regexpReplace) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 3 {
		return nil, fmt.Errorf("regexp_replace: expected 3 children, got %d", len(children))
	}
	return &regexpReplace{expression.NaryExpression{ChildExprs: children}}, nil
}

func registerRegexpFunctions(r *Registry) {
	r.Register("regexp_like", newRegexpLike)
	r.Register("regexp_replace", newRegexpReplace)
}

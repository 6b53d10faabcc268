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

// Explode is a single-element-type generator: one input array column
// becomes one output row per element. It is the canonical example the
// ResolveGenerate rule's single-vs-multi-element-type distinction is
// written against.
type Explode struct {
	UnaryExpression
	elemType sql.Type
}

func NewExplode(child sql.Expression, elemType sql.Type) *Explode {
	return &Explode{UnaryExpression{Child: child}, elemType}
}

func (e *Explode) Type() sql.Type            { return e.elemType }
func (e *Explode) Nullable() bool            { return true }
func (e *Explode) ElementTypes() []sql.Type  { return []sql.Type{e.elemType} }
func (e *Explode) String() string            { return fmt.Sprintf("explode(%s)", e.Child) }
func (e *Explode) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	return e.Child.Eval(ctx, row)
}
func (e *Explode) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression.Explode: expected 1 child, got %d", len(children))
	}
	return NewExplode(children[0], e.elemType), nil
}

// JSONTuple is a multi-element-type generator: one JSON column plus N key
// names expand into N output columns per input row.
type JSONTuple struct {
	NaryExpression
	Keys []string
}

func NewJSONTuple(col sql.Expression, keys []string) *JSONTuple {
	args := append([]sql.Expression{col})
	return &JSONTuple{NaryExpression: NaryExpression{ChildExprs: args}, Keys: keys}
}

func (j *JSONTuple) Type() sql.Type { return nil }
func (j *JSONTuple) Nullable() bool { return true }
func (j *JSONTuple) ElementTypes() []sql.Type {
	types := make([]sql.Type, len(j.Keys))
	for i := range types {
		types[i] = nil
	}
	return types
}
func (j *JSONTuple) String() string { return fmt.Sprintf("json_tuple(%s, ...)", j.ChildExprs[0]) }
func (j *JSONTuple) Eval(*sql.Context, sql.Row) (interface{}, error) {
	return nil, fmt.Errorf("expression.JSONTuple: not evaluable by the analyzer")
}
func (j *JSONTuple) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	cp := *j
	cp.ChildExprs = children
	return &cp, nil
}

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

// Alias names an expression and mints its own ExprId, the attribute by
// which the rest of the plan refers back to it.
type Alias struct {
	UnaryExpression
	name  string
	table string
	id    sql.ExprId `hash:"ignore"`
}

func NewAlias(name string, child sql.Expression) *Alias {
	return &Alias{UnaryExpression: UnaryExpression{Child: child}, name: name, id: sql.NewExprId()}
}

// NewAliasWithId reuses an existing ExprId, used when a rule rebuilds an
// Alias node but must preserve the attribute identity downstream
// references already point at.
func NewAliasWithId(id sql.ExprId, name string, child sql.Expression) *Alias {
	return &Alias{UnaryExpression: UnaryExpression{Child: child}, name: name, id: id}
}

func (a *Alias) Name() string   { return a.name }
func (a *Alias) Table() string  { return a.table }
func (a *Alias) ID() sql.ExprId { return a.id }
func (a *Alias) Type() sql.Type { return a.Child.Type() }
func (a *Alias) Nullable() bool { return a.Child.Nullable() }
func (a *Alias) String() string { return fmt.Sprintf("%s as %s", a.Child, a.name) }

func (a *Alias) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	return a.Child.Eval(ctx, row)
}

func (a *Alias) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression.Alias: expected 1 child, got %d", len(children))
	}
	return NewAliasWithId(a.id, a.name, children[0]), nil
}

// ToAttribute returns the GetField this alias is addressed by elsewhere in
// the plan: same ExprId, same type/nullability, named after the alias.
func (a *Alias) ToAttribute(index int) *GetField {
	return NewGetFieldWithId(a.id, index, a.Child.Type(), a.table, a.name, a.Child.Nullable())
}

// WithTable returns a copy of a qualified by a different table name, same
// identity -- used by Subquery.Output to requalify an aliased expression
// under the subquery's own alias.
func (a *Alias) WithTable(table string) *Alias {
	cp := *a
	cp.table = table
	return &cp
}

// MultiAlias names every output column of a multi-output Generator: one
// alias per declared element type, sharing the generator as their shared
// child expression conceptually but each minting its own ExprId.
type MultiAlias struct {
	UnaryExpression
	Names []string
	ids   []sql.ExprId `hash:"ignore"`
}

func NewMultiAlias(child sql.Expression, names []string) *MultiAlias {
	ids := make([]sql.ExprId, len(names))
	for i := range ids {
		ids[i] = sql.NewExprId()
	}
	return &MultiAlias{UnaryExpression: UnaryExpression{Child: child}, Names: names, ids: ids}
}

func (m *MultiAlias) Type() sql.Type { return m.Child.Type() }
func (m *MultiAlias) Nullable() bool { return m.Child.Nullable() }
func (m *MultiAlias) String() string {
	return fmt.Sprintf("%s as %s", m.Child, strings.Join(m.Names, ", "))
}
func (m *MultiAlias) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	return m.Child.Eval(ctx, row)
}
func (m *MultiAlias) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression.MultiAlias: expected 1 child, got %d", len(children))
	}
	cp := *m
	cp.Child = children[0]
	return &cp, nil
}

// ToAttributes returns the GetField each declared name resolves to,
// positioned starting at startIndex.
func (m *MultiAlias) ToAttributes(startIndex int, types []sql.Type) []*GetField {
	out := make([]*GetField, len(m.Names))
	for i, name := range m.Names {
		var t sql.Type
		if i < len(types) {
			t = types[i]
		}
		out[i] = NewGetFieldWithId(m.ids[i], startIndex+i, t, "", name, true)
	}
	return out
}

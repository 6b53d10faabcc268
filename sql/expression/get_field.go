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

// GetField is a resolved column reference: the AttributeReference of the
// data model. It carries the stable ExprId assigned when it was minted
// (from a catalog schema, or from an Alias), plus enough information
// (index, name, type, nullability, optional qualifier) to both evaluate
// against a row and print a qualified name.
type GetField struct {
	id       sql.ExprId `hash:"ignore"`
	index    int
	table    string
	name     string
	typ      sql.Type
	nullable bool
}

// NewGetField mints a brand-new attribute (fresh ExprId) unqualified by a
// table name.
func NewGetField(index int, typ sql.Type, name string, nullable bool) *GetField {
	return NewGetFieldWithTable(index, typ, "", name, nullable)
}

// NewGetFieldWithTable mints a brand-new attribute qualified by table.
func NewGetFieldWithTable(index int, typ sql.Type, table, name string, nullable bool) *GetField {
	return &GetField{id: sql.NewExprId(), index: index, table: table, name: name, typ: typ, nullable: nullable}
}

// NewGetFieldWithId constructs an attribute reference with a caller-chosen
// ExprId, used when freshening/remapping attributes (self-join
// deconfliction, Alias.ToAttribute) needs to preserve or reassign identity
// explicitly.
func NewGetFieldWithId(id sql.ExprId, index int, typ sql.Type, table, name string, nullable bool) *GetField {
	return &GetField{id: id, index: index, table: table, name: name, typ: typ, nullable: nullable}
}

func (f *GetField) ID() sql.ExprId   { return f.id }
func (f *GetField) Index() int       { return f.index }
func (f *GetField) Name() string     { return f.name }
func (f *GetField) Table() string    { return f.table }
func (f *GetField) Type() sql.Type   { return f.typ }
func (f *GetField) Nullable() bool   { return f.nullable }
func (f *GetField) Resolved() bool   { return true }
func (f *GetField) Children() []sql.Expression { return nil }

func (f *GetField) String() string {
	if f.table == "" {
		return f.name
	}
	return fmt.Sprintf("%s.%s", f.table, f.name)
}

func (f *GetField) Eval(_ *sql.Context, row sql.Row) (interface{}, error) {
	if f.index < 0 || f.index >= len(row) {
		return nil, fmt.Errorf("expression.GetField: index %d out of range for row of length %d", f.index, len(row))
	}
	return row[f.index], nil
}

func (f *GetField) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("expression.GetField: expected 0 children, got %d", len(children))
	}
	return f, nil
}

// WithIndex returns a copy of f repositioned to a new row index, same
// identity. Used when a Project/Aggregate rebuilds output positions.
func (f *GetField) WithIndex(index int) *GetField {
	cp := *f
	cp.index = index
	return &cp
}

// WithTable returns a copy of f under a different table qualifier, same
// identity. Used by qualification passes and self-join table aliasing.
func (f *GetField) WithTable(table string) *GetField {
	cp := *f
	cp.table = table
	return &cp
}

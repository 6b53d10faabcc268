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

// GetStructField extracts one named field from a resolved struct-typed
// child. ResolveAliases names an un-aliased GetStructField after the
// field it projects, rather than the generic "_c{i}" fallback.
type GetStructField struct {
	UnaryExpression
	FieldName string
}

func NewGetStructField(child sql.Expression, field string) *GetStructField {
	return &GetStructField{UnaryExpression{Child: child}, field}
}

func (g *GetStructField) Type() sql.Type {
	st, ok := g.Child.Type().(*types.StructType)
	if !ok {
		return nil
	}
	for _, f := range st.Fields {
		if f.Name == g.FieldName {
			return f.Type
		}
	}
	return nil
}
func (g *GetStructField) Nullable() bool { return true }
func (g *GetStructField) String() string { return fmt.Sprintf("%s.%s", g.Child, g.FieldName) }
func (g *GetStructField) Eval(*sql.Context, sql.Row) (interface{}, error) {
	return nil, fmt.Errorf("expression.GetStructField: not evaluable by the analyzer")
}
func (g *GetStructField) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression.GetStructField: expected 1 child, got %d", len(children))
	}
	return NewGetStructField(children[0], g.FieldName), nil
}

// GetArrayStructFields extracts one named field from every element of an
// array-of-structs child, producing an array of that field's type.
type GetArrayStructFields struct {
	UnaryExpression
	FieldName string
}

func NewGetArrayStructFields(child sql.Expression, field string) *GetArrayStructFields {
	return &GetArrayStructFields{UnaryExpression{Child: child}, field}
}

func (g *GetArrayStructFields) Type() sql.Type {
	at, ok := g.Child.Type().(*types.ArrayType)
	if !ok {
		return nil
	}
	st, ok := at.Elem.(*types.StructType)
	if !ok {
		return nil
	}
	for _, f := range st.Fields {
		if f.Name == g.FieldName {
			return &types.ArrayType{Elem: f.Type}
		}
	}
	return nil
}
func (g *GetArrayStructFields) Nullable() bool { return true }
func (g *GetArrayStructFields) String() string { return fmt.Sprintf("%s.%s", g.Child, g.FieldName) }
func (g *GetArrayStructFields) Eval(*sql.Context, sql.Row) (interface{}, error) {
	return nil, fmt.Errorf("expression.GetArrayStructFields: not evaluable by the analyzer")
}
func (g *GetArrayStructFields) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression.GetArrayStructFields: expected 1 child, got %d", len(children))
	}
	return NewGetArrayStructFields(children[0], g.FieldName), nil
}

// CreateArray builds an array literal from its (possibly Star-expanded)
// elements.
type CreateArray struct {
	NaryExpression
}

func NewCreateArray(elems ...sql.Expression) *CreateArray {
	return &CreateArray{NaryExpression{ChildExprs: elems}}
}

func (c *CreateArray) Type() sql.Type {
	if len(c.ChildExprs) == 0 {
		return &types.ArrayType{Elem: types.Null}
	}
	return &types.ArrayType{Elem: c.ChildExprs[0].Type()}
}
func (c *CreateArray) Nullable() bool { return false }
func (c *CreateArray) String() string { return "array(...)" }
func (c *CreateArray) Eval(*sql.Context, sql.Row) (interface{}, error) {
	return nil, fmt.Errorf("expression.CreateArray: not evaluable by the analyzer")
}
func (c *CreateArray) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return NewCreateArray(children...), nil
}

// CreateStruct builds a struct literal from named field expressions.
type CreateStruct struct {
	NaryExpression
	Names []string
}

func NewCreateStruct(names []string, fields ...sql.Expression) *CreateStruct {
	return &CreateStruct{NaryExpression{ChildExprs: fields}, names}
}

func (c *CreateStruct) Type() sql.Type {
	fields := make([]types.StructField, len(c.ChildExprs))
	for i, e := range c.ChildExprs {
		name := fmt.Sprintf("col%d", i+1)
		if i < len(c.Names) {
			name = c.Names[i]
		}
		fields[i] = types.StructField{Name: name, Type: e.Type()}
	}
	return &types.StructType{Fields: fields}
}
func (c *CreateStruct) Nullable() bool { return false }
func (c *CreateStruct) String() string { return "struct(...)" }
func (c *CreateStruct) Eval(*sql.Context, sql.Row) (interface{}, error) {
	return nil, fmt.Errorf("expression.CreateStruct: not evaluable by the analyzer")
}
func (c *CreateStruct) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	cp := *c
	cp.ChildExprs = children
	return &cp, nil
}

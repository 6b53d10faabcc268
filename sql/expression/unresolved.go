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

func unresolvedErr(kind string) error {
	return fmt.Errorf("expression.%s: node is unresolved", kind)
}

// UnresolvedColumn is the UnresolvedAttribute of the data model: a column
// reference named by its dotted parts, not yet bound to any attribute.
// Only the last two parts (table, name) matter to resolution; earlier
// parts (database/schema qualifiers) are carried for diagnostics only.
type UnresolvedColumn struct {
	parts []string
}

func NewUnresolvedColumn(name string) *UnresolvedColumn {
	return &UnresolvedColumn{parts: []string{name}}
}

func NewUnresolvedQualifiedColumn(table, name string) *UnresolvedColumn {
	return &UnresolvedColumn{parts: []string{table, name}}
}

func NewUnresolvedColumnWithParts(parts ...string) *UnresolvedColumn {
	return &UnresolvedColumn{parts: parts}
}

func (c *UnresolvedColumn) Name() string {
	return c.parts[len(c.parts)-1]
}

func (c *UnresolvedColumn) Table() string {
	if len(c.parts) < 2 {
		return ""
	}
	return c.parts[len(c.parts)-2]
}

func (c *UnresolvedColumn) Parts() []string { return c.parts }

func (c *UnresolvedColumn) String() string { return strings.Join(c.parts, ".") }
func (c *UnresolvedColumn) Resolved() bool { return false }
func (c *UnresolvedColumn) unresolved()    {}
func (c *UnresolvedColumn) Type() sql.Type { return nil }
func (c *UnresolvedColumn) Nullable() bool { return true }
func (c *UnresolvedColumn) Children() []sql.Expression { return nil }
func (c *UnresolvedColumn) Eval(*sql.Context, sql.Row) (interface{}, error) {
	return nil, unresolvedErr("UnresolvedColumn")
}
func (c *UnresolvedColumn) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("expression.UnresolvedColumn: expected 0 children, got %d", len(children))
	}
	return c, nil
}

// UnresolvedFunction is a function call the registry has not yet
// dispatched.
type UnresolvedFunction struct {
	NaryExpression
	Name       string
	IsDistinct bool
	IsWindow   bool
	Over       *WindowSpecReference
}

func NewUnresolvedFunction(name string, isDistinct bool, args ...sql.Expression) *UnresolvedFunction {
	return &UnresolvedFunction{NaryExpression: NaryExpression{ChildExprs: args}, Name: name, IsDistinct: isDistinct}
}

func (f *UnresolvedFunction) Resolved() bool { return false }
func (f *UnresolvedFunction) unresolved()    {}
func (f *UnresolvedFunction) Type() sql.Type { return nil }
func (f *UnresolvedFunction) Nullable() bool { return true }
func (f *UnresolvedFunction) String() string {
	distinct := ""
	if f.IsDistinct {
		distinct = "DISTINCT "
	}
	args := make([]string, len(f.ChildExprs))
	for i, a := range f.ChildExprs {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s%s)", f.Name, distinct, strings.Join(args, ", "))
}
func (f *UnresolvedFunction) Eval(*sql.Context, sql.Row) (interface{}, error) {
	return nil, unresolvedErr("UnresolvedFunction")
}
func (f *UnresolvedFunction) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	cp := *f
	cp.ChildExprs = children
	return &cp, nil
}

// UnresolvedAlias marks a projection-list entry that has not yet been
// given a concrete name (ResolveAliases assigns one).
type UnresolvedAlias struct {
	UnaryExpression
}

func NewUnresolvedAlias(child sql.Expression) *UnresolvedAlias {
	return &UnresolvedAlias{UnaryExpression{Child: child}}
}

func (a *UnresolvedAlias) Resolved() bool { return false }
func (a *UnresolvedAlias) unresolved()    {}
func (a *UnresolvedAlias) Type() sql.Type { return a.Child.Type() }
func (a *UnresolvedAlias) Nullable() bool { return a.Child.Nullable() }
func (a *UnresolvedAlias) String() string { return a.Child.String() }
func (a *UnresolvedAlias) Eval(*sql.Context, sql.Row) (interface{}, error) {
	return nil, unresolvedErr("UnresolvedAlias")
}
func (a *UnresolvedAlias) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression.UnresolvedAlias: expected 1 child, got %d", len(children))
	}
	return NewUnresolvedAlias(children[0]), nil
}

// UnresolvedExtractValue is struct/array field access (a.b or a[0]) whose
// child has not resolved yet.
type UnresolvedExtractValue struct {
	UnaryExpression
	Field string
}

func NewUnresolvedExtractValue(child sql.Expression, field string) *UnresolvedExtractValue {
	return &UnresolvedExtractValue{UnaryExpression{Child: child}, field}
}

func (e *UnresolvedExtractValue) Resolved() bool { return false }
func (e *UnresolvedExtractValue) unresolved()    {}
func (e *UnresolvedExtractValue) Type() sql.Type { return nil }
func (e *UnresolvedExtractValue) Nullable() bool { return true }
func (e *UnresolvedExtractValue) String() string {
	return fmt.Sprintf("%s.%s", e.Child, e.Field)
}
func (e *UnresolvedExtractValue) Eval(*sql.Context, sql.Row) (interface{}, error) {
	return nil, unresolvedErr("UnresolvedExtractValue")
}
func (e *UnresolvedExtractValue) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression.UnresolvedExtractValue: expected 1 child, got %d", len(children))
	}
	return NewUnresolvedExtractValue(children[0], e.Field), nil
}

// WindowSpecReference is a `PARTITION ... OVER name` reference to a named
// window defined by a WITH ... WINDOW clause.
type WindowSpecReference struct {
	Name string
}

func NewWindowSpecReference(name string) *WindowSpecReference {
	return &WindowSpecReference{Name: name}
}

func (r *WindowSpecReference) String() string { return r.Name }

// UnresolvedWindowExpression wraps a window function call whose OVER
// clause is still a bare name reference, pending WindowsSubstitution.
type UnresolvedWindowExpression struct {
	UnaryExpression
	WindowDef *WindowSpecReference
}

func NewUnresolvedWindowExpression(child sql.Expression, def *WindowSpecReference) *UnresolvedWindowExpression {
	return &UnresolvedWindowExpression{UnaryExpression{Child: child}, def}
}

func (w *UnresolvedWindowExpression) Resolved() bool { return false }
func (w *UnresolvedWindowExpression) unresolved()    {}
func (w *UnresolvedWindowExpression) Type() sql.Type { return w.Child.Type() }
func (w *UnresolvedWindowExpression) Nullable() bool { return true }
func (w *UnresolvedWindowExpression) String() string {
	return fmt.Sprintf("%s OVER %s", w.Child, w.WindowDef)
}
func (w *UnresolvedWindowExpression) Eval(*sql.Context, sql.Row) (interface{}, error) {
	return nil, unresolvedErr("UnresolvedWindowExpression")
}
func (w *UnresolvedWindowExpression) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression.UnresolvedWindowExpression: expected 1 child, got %d", len(children))
	}
	return NewUnresolvedWindowExpression(children[0], w.WindowDef), nil
}

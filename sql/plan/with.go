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

package plan

import (
	"fmt"

	"github.com/skylarkdb/skylark/sql"
)

// CTE is one named entry of a WITH clause.
type CTE struct {
	Name string
	Plan sql.Node
}

// With is the CTE binder CTESubstitution consumes and removes: `WITH
// c1 AS (...), c2 AS (...) <child>`. It is never itself "resolved" --
// CTESubstitution always rewrites it away in the Substitution batch,
// before the Resolution batch runs.
type With struct {
	UnaryNode
	CTEs []CTE
}

func NewWith(ctes []CTE, child sql.Node) *With {
	return &With{UnaryNode: UnaryNode{Child: child}, CTEs: ctes}
}

func (w *With) Resolved() bool       { return false }
func (w *With) unresolved()          {}
func (w *With) Schema() sql.Schema   { return w.Child.Schema() }
func (w *With) String() string       { return fmt.Sprintf("With(%d ctes, %s)", len(w.CTEs), w.Child) }

func (w *With) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan.With: expected 1 child, got %d", len(children))
	}
	return NewWith(w.CTEs, children[0]), nil
}

var _ sql.UnresolvedNode = (*With)(nil)

// WindowDef names one OVER (...) specification declared by a WINDOW
// clause, paired by name with a WindowSpecReference elsewhere in the
// query.
type WindowDef struct {
	Name string
	Spec interface{} // *expression.WindowSpecDefinition
}

// WithWindowDefinition is the binder WindowsSubstitution consumes and
// removes, analogous to With for named window specs.
type WithWindowDefinition struct {
	UnaryNode
	Defs []WindowDef
}

func NewWithWindowDefinition(defs []WindowDef, child sql.Node) *WithWindowDefinition {
	return &WithWindowDefinition{UnaryNode: UnaryNode{Child: child}, Defs: defs}
}

func (w *WithWindowDefinition) Resolved() bool     { return false }
func (w *WithWindowDefinition) unresolved()        {}
func (w *WithWindowDefinition) Schema() sql.Schema { return w.Child.Schema() }
func (w *WithWindowDefinition) String() string {
	return fmt.Sprintf("WithWindowDefinition(%d defs, %s)", len(w.Defs), w.Child)
}

func (w *WithWindowDefinition) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan.WithWindowDefinition: expected 1 child, got %d", len(children))
	}
	return NewWithWindowDefinition(w.Defs, children[0]), nil
}

var _ sql.UnresolvedNode = (*WithWindowDefinition)(nil)

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
	"strings"

	"github.com/skylarkdb/skylark/sql"
)

// Project evaluates Projections against its child's rows, one output
// column per expression. A NamedExpression contributes its own name/type;
// anything else must have been wrapped in an Alias by ResolveAliases
// before the plan can be considered resolved.
type Project struct {
	UnaryNode
	Projections []sql.Expression
}

func NewProject(projections []sql.Expression, child sql.Node) *Project {
	return &Project{UnaryNode: UnaryNode{Child: child}, Projections: projections}
}

func (p *Project) Resolved() bool {
	if !p.Child.Resolved() {
		return false
	}
	for _, e := range p.Projections {
		if !e.Resolved() {
			return false
		}
	}
	return true
}

func (p *Project) String() string {
	parts := make([]string, len(p.Projections))
	for i, e := range p.Projections {
		parts[i] = e.String()
	}
	return fmt.Sprintf("Project(%s)", strings.Join(parts, ", "))
}

func (p *Project) Schema() sql.Schema {
	out := make(sql.Schema, 0, len(p.Projections))
	for _, e := range p.Projections {
		out = append(out, columnFor(e))
	}
	return out
}

// columnFor derives a Column description from a resolved, named
// projection expression. Every expression type in this repo that can
// legally appear in a resolved Project/Aggregate output list implements
// sql.NamedExpression.
func columnFor(e sql.Expression) *sql.Column {
	if ne, ok := e.(sql.NamedExpression); ok {
		return &sql.Column{Name: ne.Name(), Source: ne.Table(), Type: ne.Type(), Nullable: ne.Nullable()}
	}
	return &sql.Column{Name: e.String(), Type: e.Type(), Nullable: e.Nullable()}
}

// Output implements OutputNode: a resolved Project's projections are
// themselves the attributes it produces (each must be a NamedExpression
// by the time ResolveAliases has run).
func (p *Project) Output() []sql.Expression { return p.Projections }

func (p *Project) Expressions() []sql.Expression { return p.Projections }

func (p *Project) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	return NewProject(exprs, p.Child), nil
}

func (p *Project) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan.Project: expected 1 child, got %d", len(children))
	}
	return NewProject(p.Projections, children[0]), nil
}

var _ OutputNode = (*Project)(nil)

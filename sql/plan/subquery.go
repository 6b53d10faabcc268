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
	"github.com/skylarkdb/skylark/sql/expression"
)

// Subquery is a scoping wrapper that renames its child's output under an
// alias (a derived table, or a substituted CTE reference). EliminateSubQueries
// strips it once analysis is done; until then it participates in name
// resolution as though it were a table named Alias.
type Subquery struct {
	UnaryNode
	Alias string
}

func NewSubquery(alias string, child sql.Node) *Subquery {
	return &Subquery{UnaryNode: UnaryNode{Child: child}, Alias: alias}
}

func (s *Subquery) Resolved() bool { return s.Child.Resolved() }
func (s *Subquery) String() string { return fmt.Sprintf("Subquery(%s, %s)", s.Alias, s.Child) }

func (s *Subquery) Schema() sql.Schema {
	src := s.Child.Schema()
	out := make(sql.Schema, len(src))
	for i, c := range src {
		cp := *c
		cp.Source = s.Alias
		out[i] = &cp
	}
	return out
}

func (s *Subquery) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan.Subquery: expected 1 child, got %d", len(children))
	}
	return NewSubquery(s.Alias, children[0]), nil
}

// Output implements OutputNode: every attribute of the child's output is
// re-qualified under Alias, so a later reference to q.a resolves by table
// name "q" while still carrying the same ExprId as the unaliased column
// inside the subquery.
func (s *Subquery) Output() []sql.Expression {
	return qualify(ChildOutput(s.Child), s.Alias)
}

// qualify returns a copy of exprs with every NamedExpression's table
// qualifier rewritten to table, preserving ExprId. Expressions this
// repo's resolved plans can produce as NamedExpression outputs are either
// *expression.GetField or *expression.Alias; anything else is passed
// through unqualified.
func qualify(exprs []sql.Expression, table string) []sql.Expression {
	out := make([]sql.Expression, len(exprs))
	for i, e := range exprs {
		switch ex := e.(type) {
		case *expression.GetField:
			out[i] = ex.WithTable(table)
		case *expression.Alias:
			out[i] = ex.WithTable(table)
		default:
			out[i] = e
		}
	}
	return out
}

var _ OutputNode = (*Subquery)(nil)

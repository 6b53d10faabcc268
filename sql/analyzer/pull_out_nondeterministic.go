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
	"fmt"

	"github.com/skylarkdb/skylark/sql"
	"github.com/skylarkdb/skylark/sql/expression"
	"github.com/skylarkdb/skylark/sql/plan"
	"github.com/skylarkdb/skylark/sql/transform"
)

// pullOutNondeterministic is PullOutNondeterministic. It targets a
// UnaryNode that is neither Project nor Filter, whose output is exactly
// its child's (a Sort's ORDER BY is the canonical case: `ORDER BY
// rand()`), and that carries at least one nondeterministic expression
// somewhere in its own expressions. Each nondeterministic leaf is
// evaluated once in a new Project inserted below the node and referenced
// by attribute from then on, so a later stage that duplicates or
// re-walks the node's expressions can't observe rand()/uuid() returning a
// different value per occurrence. A trailing Project restores the
// node's original output so its schema is unaffected.
//
// This rule's batch runs exactly one pass, so the Project it inserts is
// never at risk of being mistaken for unfinished work by a later
// iteration of this same rule.
func pullOutNondeterministic(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, error) {
	return transformNode(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		switch node.(type) {
		case *plan.Project, *plan.Filter:
			return node, transform.SameTree, nil
		}

		en, ok := node.(transform.ExpressionsNode)
		if !ok {
			return node, transform.SameTree, nil
		}
		children := node.Children()
		if len(children) != 1 {
			return node, transform.SameTree, nil
		}
		child := children[0]

		on, ok := node.(plan.OutputNode)
		if !ok || !sameOutput(on.Output(), plan.ChildOutput(child)) {
			return node, transform.SameTree, nil
		}

		exprs := en.Expressions()
		if !anyNondeterministic(exprs) {
			return node, transform.SameTree, nil
		}

		below := append([]sql.Expression{}, plan.ChildOutput(child)...)
		lifted := 0
		newExprs := make([]sql.Expression, len(exprs))
		for i, e := range exprs {
			rewritten, _, err := transform.Expr(e, func(sub sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
				nd, ok := sub.(expression.NondeterministicExpression)
				if !ok || !nd.IsNondeterministic() {
					return sub, transform.SameTree, nil
				}

				name := "_nondeterministic"
				if named, ok := sub.(sql.NamedExpression); ok {
					name = named.Name()
				}
				alias := expression.NewAlias(name, sub)
				attr := alias.ToAttribute(len(below))
				below = append(below, alias)
				lifted++
				return attr, transform.NewTree, nil
			})
			if err != nil {
				return nil, transform.SameTree, err
			}
			newExprs[i] = rewritten
		}
		if lifted == 0 {
			return node, transform.SameTree, nil
		}

		withChild, err := node.WithChildren(plan.NewProject(below, child))
		if err != nil {
			return nil, transform.SameTree, err
		}
		withExprs, ok := withChild.(transform.ExpressionsNode)
		if !ok {
			return nil, transform.SameTree, fmt.Errorf("analyzer: %T lost its expressions across WithChildren", node)
		}
		rebuilt, err := withExprs.WithExpressions(newExprs...)
		if err != nil {
			return nil, transform.SameTree, err
		}

		return plan.NewProject(on.Output(), rebuilt), transform.NewTree, nil
	})
}

func sameOutput(a, b []sql.Expression) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		na, ok1 := a[i].(sql.NamedExpression)
		nb, ok2 := b[i].(sql.NamedExpression)
		if !ok1 || !ok2 || na.ID() != nb.ID() {
			return false
		}
	}
	return true
}

func anyNondeterministic(exprs []sql.Expression) bool {
	for _, e := range exprs {
		found := false
		transform.InspectExpr(e, func(sub sql.Expression) bool {
			if nd, ok := sub.(expression.NondeterministicExpression); ok && nd.IsNondeterministic() {
				found = true
				return false
			}
			return true
		})
		if found {
			return true
		}
	}
	return false
}

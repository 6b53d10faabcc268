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

// resolveAliases is ResolveAliases: in Project, Aggregate, and
// grouping-analytics nodes whose child is resolved, every top-level
// UnresolvedAlias in the output list is given a concrete name.
func resolveAliases(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, error) {
	return transformNode(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		switch t := node.(type) {
		case *plan.Project:
			if !t.Child.Resolved() {
				return node, transform.SameTree, nil
			}
			exprs, same, err := nameOutputList(t.Projections)
			if err != nil || same == transform.SameTree {
				return node, transform.SameTree, err
			}
			return plan.NewProject(exprs, t.Child), transform.NewTree, nil
		case *plan.Aggregate:
			if !t.Child.Resolved() {
				return node, transform.SameTree, nil
			}
			exprs, same, err := nameOutputList(t.AggregateExpressions)
			if err != nil || same == transform.SameTree {
				return node, transform.SameTree, err
			}
			return plan.NewAggregate(t.GroupingExpressions, exprs, t.Child), transform.NewTree, nil
		case *plan.Cube:
			return resolveGroupingAliases(t.Aggregations, func(aggs []sql.Expression) sql.Node {
				return plan.NewCube(t.GroupByExprs, aggs, t.Child)
			}, t.Child)
		case *plan.Rollup:
			return resolveGroupingAliases(t.Aggregations, func(aggs []sql.Expression) sql.Node {
				return plan.NewRollup(t.GroupByExprs, aggs, t.Child)
			}, t.Child)
		case *plan.GroupingSets:
			return resolveGroupingAliases(t.Aggregations, func(aggs []sql.Expression) sql.Node {
				return plan.NewGroupingSets(t.Masks, t.GroupByExprs, aggs, t.Child)
			}, t.Child)
		default:
			return node, transform.SameTree, nil
		}
	})
}

func resolveGroupingAliases(aggs []sql.Expression, rebuild func([]sql.Expression) sql.Node, child sql.Node) (sql.Node, transform.TreeIdentity, error) {
	if !child.Resolved() {
		return rebuild(aggs), transform.SameTree, nil
	}
	exprs, same, err := nameOutputList(aggs)
	if err != nil || same == transform.SameTree {
		return rebuild(aggs), transform.SameTree, err
	}
	return rebuild(exprs), transform.NewTree, nil
}

// nameOutputList replaces every top-level UnresolvedAlias in list with a
// concrete name, per ResolveAliases' dispatch rules.
func nameOutputList(list []sql.Expression) ([]sql.Expression, transform.TreeIdentity, error) {
	out := make([]sql.Expression, len(list))
	same := transform.SameTree
	for i, e := range list {
		named, changed, err := nameExpression(e, i)
		if err != nil {
			return nil, transform.SameTree, err
		}
		out[i] = named
		if changed == transform.NewTree {
			same = transform.NewTree
		}
	}
	return out, same, nil
}

func nameExpression(e sql.Expression, index int) (sql.Expression, transform.TreeIdentity, error) {
	ua, ok := e.(*expression.UnresolvedAlias)
	if !ok {
		return e, transform.SameTree, nil
	}
	child := ua.Child

	if _, ok := child.(sql.NamedExpression); ok {
		return child, transform.NewTree, nil
	}
	if !child.Resolved() {
		return e, transform.SameTree, nil
	}

	switch c := child.(type) {
	case *expression.GetStructField:
		return expression.NewAlias(c.FieldName, c), transform.NewTree, nil
	case *expression.GetArrayStructFields:
		return expression.NewAlias(c.FieldName, c), transform.NewTree, nil
	case sql.Generator:
		if len(c.ElementTypes()) > 1 {
			return expression.NewMultiAlias(c, nil), transform.NewTree, nil
		}
		return expression.NewAlias(fmt.Sprintf("_c%d", index), c), transform.NewTree, nil
	default:
		return expression.NewAlias(fmt.Sprintf("_c%d", index), c), transform.NewTree, nil
	}
}

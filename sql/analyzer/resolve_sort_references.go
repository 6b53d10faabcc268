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
	"github.com/skylarkdb/skylark/sql"
	"github.com/skylarkdb/skylark/sql/expression"
	"github.com/skylarkdb/skylark/sql/plan"
	"github.com/skylarkdb/skylark/sql/transform"
)

// resolveSortReferences is ResolveSortReferences: "ORDER BY may reference
// attributes absent from SELECT". A Sort directly over a Project or an
// Aggregate that still has an unresolved order gets its ordering resolved
// against the wider relation below (the Project's child, or the
// Aggregate's grouping attributes), with any attribute the order needs but
// the outer node doesn't advertise pulled in below and projected away
// again above.
func resolveSortReferences(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, error) {
	resolve := sql.NewResolver(ctx.CaseSensitive())
	result, _, err := transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		sort, ok := node.(*plan.Sort)
		if !ok || !sortHasUnresolvedOrder(sort) {
			return node, transform.SameTree, nil
		}
		switch child := sort.Child.(type) {
		case *plan.Project:
			return resolveSortOverProject(sort, child, resolve)
		case *plan.Aggregate:
			return resolveSortOverAggregate(sort, child, resolve)
		default:
			return node, transform.SameTree, nil
		}
	})
	return result, err
}

func sortHasUnresolvedOrder(sort *plan.Sort) bool {
	for _, o := range sort.Order {
		if so, ok := o.(*expression.SortOrder); ok && !so.Resolved() {
			return true
		}
	}
	return false
}

func resolveSortOverProject(sort *plan.Sort, proj *plan.Project, resolve sql.Resolver) (sql.Node, transform.TreeIdentity, error) {
	if !proj.Child.Resolved() {
		return sort, transform.SameTree, nil
	}
	available := plan.ChildOutput(proj.Child)

	newOrder, ok, err := resolveOrderList(sort.Order, available, resolve)
	if err != nil {
		return nil, transform.SameTree, err
	}
	if !ok {
		return sort, transform.SameTree, nil
	}

	missing := missingAttributes(newOrder, plan.OutputAttributeSet(proj))
	if len(missing) == 0 {
		return plan.NewSort(newOrder, proj), transform.NewTree, nil
	}

	below := plan.NewProject(append(append([]sql.Expression{}, proj.Projections...), missing...), proj.Child)
	top := plan.NewProject(proj.Output(), plan.NewSort(newOrder, below))
	return top, transform.NewTree, nil
}

// resolveSortOverAggregate resolves an ordering against the Aggregate's
// grouping attributes (not its full output), and in addition lifts any
// AggregateExpression appearing in the ordering into the aggregate's own
// aggregation list so it gets evaluated once per group rather than
// requiring a second aggregation pass.
func resolveSortOverAggregate(sort *plan.Sort, agg *plan.Aggregate, resolve sql.Resolver) (sql.Node, transform.TreeIdentity, error) {
	if !agg.Child.Resolved() {
		return sort, transform.SameTree, nil
	}

	var groupingAttrs []sql.Expression
	for _, e := range agg.GroupingExpressions {
		if ne, ok := e.(sql.NamedExpression); ok {
			groupingAttrs = append(groupingAttrs, ne)
		}
	}

	newAggs := append([]sql.Expression{}, agg.AggregateExpressions...)
	newOrder := make([]sql.Expression, len(sort.Order))
	changed := false

	for i, o := range sort.Order {
		so, ok := o.(*expression.SortOrder)
		if !ok || so.Resolved() {
			newOrder[i] = o
			continue
		}

		if expression.IsAggregateExpression(so.Child) {
			alias := expression.NewAlias("_aggOrdering", so.Child)
			newAggs = append(newAggs, alias)
			newOrder[i] = so.WithChild(alias.ToAttribute(len(newAggs) - 1))
			changed = true
			continue
		}

		resolved, matched, err := resolveAgainst(so.Child, groupingAttrs, resolve)
		if err != nil {
			return nil, transform.SameTree, err
		}
		if !matched {
			return sort, transform.SameTree, nil
		}
		newOrder[i] = so.WithChild(resolved)
		changed = true
	}
	if !changed {
		return sort, transform.SameTree, nil
	}

	newAgg := plan.NewAggregate(agg.GroupingExpressions, newAggs, agg.Child)
	top := plan.NewProject(agg.Output(), plan.NewSort(newOrder, newAgg))
	return top, transform.NewTree, nil
}

// resolveOrderList attempts to resolve every still-unresolved SortOrder in
// order against available, in strict mode: ok is false if any term can't
// be resolved, in which case the caller leaves the Sort untouched for a
// later pass.
func resolveOrderList(order []sql.Expression, available []sql.Expression, resolve sql.Resolver) ([]sql.Expression, bool, error) {
	out := make([]sql.Expression, len(order))
	for i, o := range order {
		so, ok := o.(*expression.SortOrder)
		if !ok || so.Resolved() {
			out[i] = o
			continue
		}
		resolved, matched, err := resolveAgainst(so.Child, available, resolve)
		if err != nil {
			return nil, false, err
		}
		if !matched {
			return nil, false, nil
		}
		out[i] = so.WithChild(resolved)
	}
	return out, true, nil
}

// resolveAgainst resolves every UnresolvedColumn leaf of e against
// available, failing (matched=false) if any leaf can't be bound.
func resolveAgainst(e sql.Expression, available []sql.Expression, resolve sql.Resolver) (sql.Expression, bool, error) {
	ok := true
	var resolveErr error
	result, _, err := transform.Expr(e, func(expr sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		uc, isUnresolved := expr.(*expression.UnresolvedColumn)
		if !isUnresolved {
			return expr, transform.SameTree, nil
		}
		matches := matchColumn(uc, available, resolve)
		switch len(matches) {
		case 0:
			ok = false
			return expr, transform.SameTree, nil
		case 1:
			return matches[0], transform.NewTree, nil
		default:
			ok = false
			resolveErr = sql.ErrAmbiguousColumn.New(uc.String(), "multiple matches")
			return expr, transform.SameTree, nil
		}
	})
	if resolveErr != nil {
		return nil, false, resolveErr
	}
	if err != nil {
		return nil, false, err
	}
	if !ok || !result.Resolved() {
		return nil, false, nil
	}
	return result, true, nil
}

func matchColumn(uc *expression.UnresolvedColumn, available []sql.Expression, resolve sql.Resolver) []sql.Expression {
	var matches []sql.Expression
	for _, a := range available {
		named, ok := a.(sql.NamedExpression)
		if !ok || !resolve(named.Name(), uc.Name()) {
			continue
		}
		if uc.Table() != "" && !resolve(named.Table(), uc.Table()) {
			continue
		}
		matches = append(matches, a)
	}
	return matches
}

// missingAttributes collects, in first-seen order, every attribute the
// order list references that isn't already part of outer's output.
func missingAttributes(order []sql.Expression, outer sql.AttributeSet) []sql.Expression {
	var out []sql.Expression
	seen := sql.NewAttributeSet()
	for _, o := range order {
		so := o.(*expression.SortOrder)
		transform.InspectExpr(so.Child, func(e sql.Expression) bool {
			gf, ok := e.(*expression.GetField)
			if !ok {
				return true
			}
			if outer.Contains(gf.ID()) || seen.Contains(gf.ID()) {
				return true
			}
			seen.Add(gf.ID())
			out = append(out, gf)
			return true
		})
	}
	return out
}

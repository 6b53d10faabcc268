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
	"github.com/skylarkdb/skylark/sql/types"
)

// resolveGroupingAnalytics is ResolveGroupingAnalytics: it lowers Cube and
// Rollup into GroupingSets via their mask helpers, then lowers any
// GroupingSets into Aggregate(Expand(...)). Both steps run in the same
// bottom-up pass so a freshly-lowered Cube/Rollup is caught by the same
// fixed-point iteration that introduced it, rather than waiting a round.
func resolveGroupingAnalytics(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, error) {
	return transformNode(n, lowerGroupingAnalytics)
}

func transformNode(n sql.Node, f transform.NodeFunc) (sql.Node, error) {
	result, _, err := transform.Node(n, f)
	return result, err
}

func lowerGroupingAnalytics(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
	switch g := node.(type) {
	case *plan.Cube:
		return lowerToExpand(plan.CubeMasks(len(g.GroupByExprs)), g.GroupByExprs, g.Aggregations, g.Child)
	case *plan.Rollup:
		return lowerToExpand(plan.RollupMasks(len(g.GroupByExprs)), g.GroupByExprs, g.Aggregations, g.Child)
	case *plan.GroupingSets:
		return lowerToExpand(g.Masks, g.GroupByExprs, g.Aggregations, g.Child)
	default:
		return node, transform.SameTree, nil
	}
}

// lowerToExpand is the shared body of step §4.4: synthesize a grouping-id
// attribute, name every unnamed group-by expression, rewrite the
// aggregation list to reference the named group-by attributes instead of
// the raw expressions, and wrap the child in a Project when new aliases
// were introduced.
func lowerToExpand(masks []int64, groupBy, aggs []sql.Expression, child sql.Node) (sql.Node, transform.TreeIdentity, error) {
	groupAttrs := make([]sql.Expression, len(groupBy))
	var extraAliases []sql.Expression

	for i, e := range groupBy {
		named, ok := e.(sql.NamedExpression)
		if !ok {
			alias := expression.NewAlias(e.String(), e)
			extraAliases = append(extraAliases, alias)
			groupAttrs[i] = alias.ToAttribute(0)
			continue
		}
		groupAttrs[i] = named
	}

	rewrittenAggs := make([]sql.Expression, len(aggs))
	for i, e := range aggs {
		ne, _, err := transform.Expr(e, func(expr sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
			for gi, g := range groupBy {
				if expression.SemanticEquals(expr, g) {
					return groupAttrs[gi], transform.NewTree, nil
				}
			}
			return expr, transform.SameTree, nil
		})
		if err != nil {
			return nil, transform.SameTree, err
		}
		rewrittenAggs[i] = ne
	}

	groupingID := expression.NewGetFieldWithTable(len(groupAttrs), types.Int64, "", plan.GroupingIDName, false)

	belowExpand := child
	if len(extraAliases) > 0 {
		belowExpand = plan.NewProject(append(append([]sql.Expression{}, plan.ChildOutput(child)...), extraAliases...), child)
	}

	expand := plan.NewExpand(masks, groupAttrs, groupingID, belowExpand)
	aggregate := plan.NewAggregate(append(append([]sql.Expression{}, groupAttrs...), groupingID), rewrittenAggs, expand)
	return aggregate, transform.NewTree, nil
}

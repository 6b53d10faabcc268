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

// resolveHavingClauseAttributes is UnresolvedHavingClauseAttributes: a
// HAVING predicate that calls an aggregate function gets that call lifted
// into the Aggregate beneath it (as "havingCondition"), since the
// predicate itself runs above the Aggregate and can't evaluate one.
func resolveHavingClauseAttributes(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, error) {
	return transformNode(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		f, ok := node.(*plan.Filter)
		if !ok {
			return node, transform.SameTree, nil
		}
		agg, ok := f.Child.(*plan.Aggregate)
		if !ok || !agg.Resolved() || !expression.IsAggregateExpression(f.Condition) {
			return node, transform.SameTree, nil
		}

		havingAlias := expression.NewAlias("havingCondition", f.Condition)
		newAggs := append([]sql.Expression{havingAlias}, agg.AggregateExpressions...)
		newAgg := plan.NewAggregate(agg.GroupingExpressions, newAggs, agg.Child)

		havingAttr := havingAlias.ToAttribute(0)
		newFilter := plan.NewFilter(havingAttr, newAgg)
		return plan.NewProject(agg.Output(), newFilter), transform.NewTree, nil
	})
}

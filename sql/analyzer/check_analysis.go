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
	"strings"

	"github.com/skylarkdb/skylark/sql"
	"github.com/skylarkdb/skylark/sql/expression"
	"github.com/skylarkdb/skylark/sql/plan"
	"github.com/skylarkdb/skylark/sql/transform"
)

// CheckAnalysis runs once, after every batch, and turns "the plan is
// still unresolved" into a specific, actionable AnalysisException instead
// of the generic ErrMaxAnalysisIters a stuck fixed point would otherwise
// be the only signal of. It also validates the properties resolution
// alone can't enforce: that every Aggregate's output columns are either
// grouping keys or aggregate calls.
func CheckAnalysis(ctx *sql.Context, n sql.Node) error {
	var check func(sql.Node) error
	check = func(node sql.Node) error {
		for _, c := range node.Children() {
			if err := check(c); err != nil {
				return err
			}
		}
		return checkNodeResolved(node)
	}
	if err := check(n); err != nil {
		return err
	}
	if !n.Resolved() {
		return fmt.Errorf("analyzer: plan left unresolved with no specific cause found: %s", sql.DebugString(n))
	}

	return checkAggregateValidity(n)
}

func checkNodeResolved(n sql.Node) error {
	switch node := n.(type) {
	case *plan.UnresolvedRelation:
		name := node.Ident.Name
		if node.Ident.Database != "" {
			name = node.Ident.Database + "." + name
		}
		return sql.ErrTableNotFound.New(name)
	case *plan.Cube:
		return firstUnresolvedGroupingExpr(node.GroupByExprs, node.Aggregations)
	case *plan.Rollup:
		return firstUnresolvedGroupingExpr(node.GroupByExprs, node.Aggregations)
	case *plan.GroupingSets:
		return firstUnresolvedGroupingExpr(node.GroupByExprs, node.Aggregations)
	}

	if en, ok := n.(transform.ExpressionsNode); ok {
		for _, e := range en.Expressions() {
			if err := firstUnresolvedExpr(e); err != nil {
				return err
			}
		}
	}
	return nil
}

func firstUnresolvedGroupingExpr(groups, aggs []sql.Expression) error {
	for _, e := range groups {
		if err := firstUnresolvedExpr(e); err != nil {
			return err
		}
	}
	for _, e := range aggs {
		if err := firstUnresolvedExpr(e); err != nil {
			return err
		}
	}
	return nil
}

// firstUnresolvedExpr walks e looking for the first leaf that explains
// why it is unresolved, and maps it to the error kind that describes it.
func firstUnresolvedExpr(e sql.Expression) error {
	if e == nil || e.Resolved() {
		return nil
	}

	switch ex := e.(type) {
	case *expression.UnresolvedColumn:
		return sql.ErrColumnNotFound.New(ex.String(), "no matching input columns in scope")
	case *expression.UnresolvedFunction:
		for _, c := range ex.ChildExprs {
			if err := firstUnresolvedExpr(c); err != nil {
				return err
			}
		}
		return sql.ErrFunctionNotFound.New(ex.Name)
	case *expression.UnresolvedAlias:
		return firstUnresolvedExpr(ex.Child)
	case *expression.UnresolvedExtractValue:
		return firstUnresolvedExpr(ex.Child)
	case *expression.UnresolvedWindowExpression:
		return sql.ErrWindowSpecNotDefined.New(ex.WindowDef.Name)
	}

	for _, c := range e.Children() {
		if err := firstUnresolvedExpr(c); err != nil {
			return err
		}
	}
	return fmt.Errorf("analyzer: expression %q did not resolve", e)
}

// checkAggregateValidity enforces that every Aggregate node's output
// expressions are built only from its grouping keys and aggregate calls
// -- the classic "column must appear in the GROUP BY clause or be used in
// an aggregate function" rule -- since nothing in Resolution catches a
// non-aggregated, non-grouped reference (it resolves to a perfectly good
// attribute, it's just not a legal one to select at that scope).
func checkAggregateValidity(n sql.Node) error {
	var result error
	transform.Inspect(n, func(node sql.Node) bool {
		if result != nil {
			return false
		}
		agg, ok := node.(*plan.Aggregate)
		if !ok {
			return true
		}
		for _, e := range agg.AggregateExpressions {
			if err := checkAggregateExpr(e, agg.GroupingExpressions); err != nil {
				result = err
				return false
			}
		}
		return true
	})
	return result
}

func checkAggregateExpr(e sql.Expression, groupBy []sql.Expression) error {
	if expression.IsAggregateExpression(e) {
		return nil
	}
	for _, g := range groupBy {
		if expression.SemanticEquals(e, g) {
			return nil
		}
	}

	switch ex := e.(type) {
	case *expression.Alias:
		return checkAggregateExpr(ex.Child, groupBy)
	case *expression.GetField:
		return sql.ErrMisusedAlias.New(columnRef(ex))
	}

	for _, c := range e.Children() {
		if err := checkAggregateExpr(c, groupBy); err != nil {
			return err
		}
	}
	return nil
}

func columnRef(f *expression.GetField) string {
	if f.Table() == "" {
		return f.Name()
	}
	return strings.Join([]string{f.Table(), f.Name()}, ".")
}

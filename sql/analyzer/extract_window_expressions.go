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

// extractWindowExpressions is ExtractWindowExpressions. It rewrites three
// shapes, top-down so a HAVING clause over a windowed aggregate is matched
// whole before its Aggregate child is considered on its own: a Filter
// directly over an Aggregate whose aggregate list contains a window call,
// a bare Aggregate with a windowed aggregate list, and a Project whose
// list contains a window call. Each rewrite lowers the inline window call
// into a dedicated Window operator per distinct window spec, so no later
// stage ever sees a WindowExpression anywhere but as an attribute a Window
// node already produced.
func extractWindowExpressions(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, error) {
	result, _, err := descendWindow(n)
	return result, err
}

func descendWindow(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
	if f, ok := node.(*plan.Filter); ok {
		if agg, ok := f.Child.(*plan.Aggregate); ok && agg.Resolved() && anyWindowExpression(agg.AggregateExpressions) {
			rewritten, err := extractAggregateWindow(agg, f.Condition)
			if err != nil {
				return nil, transform.SameTree, err
			}
			final, _, err := descendChildren(rewritten)
			if err != nil {
				return nil, transform.SameTree, err
			}
			return final, transform.NewTree, nil
		}
	}

	if agg, ok := node.(*plan.Aggregate); ok {
		if agg.Resolved() && anyWindowExpression(agg.AggregateExpressions) {
			rewritten, err := extractAggregateWindow(agg, nil)
			if err != nil {
				return nil, transform.SameTree, err
			}
			final, _, err := descendChildren(rewritten)
			if err != nil {
				return nil, transform.SameTree, err
			}
			return final, transform.NewTree, nil
		}
	}

	if p, ok := node.(*plan.Project); ok {
		if exprsResolved(p.Projections) && anyWindowExpression(p.Projections) {
			rewritten, err := extractProjectWindow(p)
			if err != nil {
				return nil, transform.SameTree, err
			}
			final, _, err := descendChildren(rewritten)
			if err != nil {
				return nil, transform.SameTree, err
			}
			return final, transform.NewTree, nil
		}
	}

	return descendChildren(node)
}

// descendChildren recurses into node's children without re-testing node
// itself against the three patterns -- used both for ordinary nodes and
// for the subtree a rewrite just produced, whose original child (still
// possibly holding further, deeper window calls of its own) is reachable
// underneath the new Window/Project/Aggregate scaffolding.
func descendChildren(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
	children := node.Children()
	if len(children) == 0 {
		return node, transform.SameTree, nil
	}

	newChildren := make([]sql.Node, len(children))
	same := transform.SameTree
	for i, c := range children {
		nc, cSame, err := descendWindow(c)
		if err != nil {
			return nil, transform.SameTree, err
		}
		newChildren[i] = nc
		if cSame == transform.NewTree {
			same = transform.NewTree
		}
	}
	if same == transform.SameTree {
		return node, transform.SameTree, nil
	}
	nn, err := node.WithChildren(newChildren...)
	if err != nil {
		return nil, transform.SameTree, err
	}
	return nn, transform.NewTree, nil
}

// extractAggregateWindow handles patterns (1) and (2): an Aggregate whose
// AggregateExpressions contain a window call, optionally guarded by a
// HAVING Filter. The rebuilt tree, innermost first, is: a new Aggregate
// over the window-free expressions, the HAVING filter (if any) evaluated
// against that aggregate's output, one Window operator per distinct
// window spec, and a final Project restoring the original output
// attributes.
func extractAggregateWindow(agg *plan.Aggregate, having sql.Expression) (sql.Node, error) {
	regular, withWin, err := partitionWindow(agg.AggregateExpressions)
	if err != nil {
		return nil, err
	}

	var cur sql.Node = plan.NewAggregate(agg.GroupingExpressions, regular, agg.Child)
	if having != nil {
		cur = plan.NewFilter(having, cur)
	}

	cur, err = addWindow(withWin, cur)
	if err != nil {
		return nil, err
	}

	return plan.NewProject(originalAttributes(agg.AggregateExpressions), cur), nil
}

// extractProjectWindow handles pattern (3): a Project(regular, child)
// evaluates everything that doesn't involve a window call, one Window
// operator per distinct spec sits above it, and a final Project restores
// the original projection list's attributes.
func extractProjectWindow(p *plan.Project) (sql.Node, error) {
	regular, withWin, err := partitionWindow(p.Projections)
	if err != nil {
		return nil, err
	}

	cur, err := addWindow(withWin, plan.NewProject(regular, p.Child))
	if err != nil {
		return nil, err
	}

	return plan.NewProject(originalAttributes(p.Projections), cur), nil
}

// partitionWindow is the Extract step: exprs splits into the window-free
// regular subset and the window-bearing withWin subset, then every
// withWin expression is walked for non-attribute pieces a Window operator
// needs as its own input attributes (a window function's own arguments,
// a WindowSpecDefinition's partition/order expressions, any nested
// AggregateExpression) -- each gets a fresh "_w{n}" alias appended to
// regular, and the withWin expression is rewritten to reference it.
func partitionWindow(exprs []sql.Expression) ([]sql.Expression, []sql.Expression, error) {
	var regular, withWin []sql.Expression
	for _, e := range exprs {
		if expression.IsWindowExpression(e) {
			withWin = append(withWin, e)
		} else {
			regular = append(regular, e)
		}
	}

	x := newWindowExtractor(regular)
	newWithWin := make([]sql.Expression, len(withWin))
	for i, e := range withWin {
		rewritten, err := x.rewrite(e)
		if err != nil {
			return nil, nil, err
		}
		newWithWin[i] = rewritten
	}
	return x.regular, newWithWin, nil
}

// windowExtractor accumulates the regular-list extension a single
// partitionWindow call builds, minting "_w{n}" aliases as it walks each
// withWin expression.
type windowExtractor struct {
	regular   []sql.Expression
	available sql.AttributeSet
	counter   int
}

func newWindowExtractor(regular []sql.Expression) *windowExtractor {
	return &windowExtractor{
		regular:   append([]sql.Expression{}, regular...),
		available: sql.ExpressionsAttributeSet(regular),
	}
}

// rewrite finds the WindowExpression inside e (e is typically an Alias
// directly over one) and extracts its function arguments and its spec's
// partition/order expressions.
func (x *windowExtractor) rewrite(e sql.Expression) (sql.Expression, error) {
	result, _, err := transform.Expr(e, func(node sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		we, ok := node.(*expression.WindowExpression)
		if !ok {
			return node, transform.SameTree, nil
		}

		newPartition := make([]sql.Expression, len(we.WindowDef.PartitionBy))
		for i, p := range we.WindowDef.PartitionBy {
			newPartition[i] = x.extractArg(p)
		}
		newOrder := make([]*expression.SortOrder, len(we.WindowDef.OrderBy))
		for i, o := range we.WindowDef.OrderBy {
			newOrder[i] = o.WithChild(x.extractArg(o.Child))
		}
		newDef := expression.NewWindowSpecDefinition(newPartition, newOrder, we.WindowDef.Frame)

		args := windowFunctionArgs(we.Child)
		newArgs := make([]sql.Expression, len(args))
		for i, arg := range args {
			newArgs[i] = x.extractArg(arg)
		}
		newFn, err := withWindowFunctionArgs(we.Child, newArgs)
		if err != nil {
			return nil, transform.SameTree, err
		}

		return expression.NewWindowExpression(newFn, newDef), transform.NewTree, nil
	})
	return result, err
}

// extractArg decides what a single window-function argument, partition
// expression, or order expression needs: a foldable (constant) expression
// stays inline, an attribute already available to the current child is
// reused as-is (pulled into regular first if it wasn't already part of
// it), and anything else -- a compound expression, a nested
// AggregateExpression -- is aliased fresh and appended to regular.
func (x *windowExtractor) extractArg(e sql.Expression) sql.Expression {
	if gf, ok := e.(*expression.GetField); ok {
		if !x.available.Contains(gf.ID()) {
			x.regular = append(x.regular, gf)
			x.available.Add(gf.ID())
		}
		return gf
	}
	if expression.Foldable(e) {
		return e
	}

	name := fmt.Sprintf("_w%d", x.counter)
	x.counter++
	alias := expression.NewAlias(name, e)
	attr := alias.ToAttribute(len(x.regular))
	x.regular = append(x.regular, alias)
	x.available.Add(attr.ID())
	return attr
}

// windowFunctionArgs returns the arguments a window function call was
// invoked with: for an AggregateExpression (SUM/COUNT/... in Window
// mode) that's its wrapped AggregateFunction's own children, since the
// AggregateExpression's Children() reports the function, not the
// function's arguments.
func windowFunctionArgs(fn sql.Expression) []sql.Expression {
	if agg, ok := fn.(*expression.AggregateExpression); ok {
		return agg.Func.Children()
	}
	return fn.Children()
}

func withWindowFunctionArgs(fn sql.Expression, args []sql.Expression) (sql.Expression, error) {
	if agg, ok := fn.(*expression.AggregateExpression); ok {
		newFunc, err := agg.Func.WithChildren(args...)
		if err != nil {
			return nil, err
		}
		aggFn, ok := newFunc.(expression.AggregateFunction)
		if !ok {
			return nil, fmt.Errorf("analyzer: rebuilding %s did not produce an aggregate function", agg.Func.FunctionName())
		}
		return expression.NewAggregateExpression(aggFn, agg.Mode, agg.IsDistinct), nil
	}
	return fn.WithChildren(args...)
}

// windowAlias pairs a withWin element's own stable name/ExprId (from a
// pre-existing Alias, or freshly minted here) with the WindowExpression it
// names.
type windowAlias struct {
	id   sql.ExprId
	name string
	we   *expression.WindowExpression
}

// addWindow is the AddWindow step: every withWin element becomes a named
// WindowExpression, grouped by WindowSpecDefinition equality, and wrapped
// around child one Window operator per group so each operator's
// WindowExpressions share exactly one spec.
func addWindow(withWin []sql.Expression, child sql.Node) (sql.Node, error) {
	if len(withWin) == 0 {
		return child, nil
	}

	named := make([]windowAlias, len(withWin))
	counter := 0
	for i, e := range withWin {
		switch v := e.(type) {
		case *expression.Alias:
			we, ok := v.Child.(*expression.WindowExpression)
			if !ok {
				return nil, fmt.Errorf("analyzer: expected a window expression under alias %q", v.Name())
			}
			named[i] = windowAlias{id: v.ID(), name: v.Name(), we: we}
		case *expression.WindowExpression:
			name := fmt.Sprintf("_we%d", counter)
			counter++
			named[i] = windowAlias{id: sql.NewExprId(), name: name, we: v}
		default:
			return nil, fmt.Errorf("analyzer: expected a window expression, got %T", e)
		}
		if named[i].we.WindowDef == nil {
			return nil, sql.ErrInvalidWindowSpec.New(0)
		}
	}

	var groups [][]windowAlias
	for _, na := range named {
		placed := false
		for gi, g := range groups {
			if g[0].we.WindowDef.Equals(na.we.WindowDef) {
				groups[gi] = append(g, na)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []windowAlias{na})
		}
	}

	cur := child
	for _, g := range groups {
		exprs := make([]sql.Expression, len(g))
		for i, na := range g {
			exprs[i] = expression.NewAliasWithId(na.id, na.name, na.we)
		}
		cur = plan.NewWindow(plan.ChildOutput(cur), exprs, g[0].we.WindowDef, cur)
	}
	return cur, nil
}

// originalAttributes converts a resolved expression list (the plan's
// output before rewriting) into the attribute references the rewritten
// plan now produces the same values under, preserving each element's
// ExprId and position.
func originalAttributes(exprs []sql.Expression) []sql.Expression {
	out := make([]sql.Expression, len(exprs))
	for i, e := range exprs {
		out[i] = toAttributeAt(e, i)
	}
	return out
}

func toAttributeAt(e sql.Expression, index int) sql.Expression {
	switch ex := e.(type) {
	case *expression.GetField:
		return ex
	case *expression.Alias:
		return ex.ToAttribute(index)
	default:
		return e
	}
}

func anyWindowExpression(exprs []sql.Expression) bool {
	for _, e := range exprs {
		if expression.IsWindowExpression(e) {
			return true
		}
	}
	return false
}

func exprsResolved(exprs []sql.Expression) bool {
	for _, e := range exprs {
		if !e.Resolved() {
			return false
		}
	}
	return true
}

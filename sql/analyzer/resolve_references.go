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
	"github.com/skylarkdb/skylark/sql/types"
)

// resolveReferences is ResolveReferences, the workhorse of the Resolution
// batch: it deconflicts a self-join's attribute identities, expands every
// `*`/`t.*` wildcard against the child it projects over, then binds every
// remaining UnresolvedColumn/UnresolvedExtractValue against the
// attributes visible at its node.
func resolveReferences(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, error) {
	resolve := sql.NewResolver(ctx.CaseSensitive())

	n, _, err := deconflictJoins(n)
	if err != nil {
		return nil, err
	}

	n, _, err = expandStars(n, resolve)
	if err != nil {
		return nil, err
	}

	result, _, err := bindAttributes(n, resolve)
	return result, err
}

// --- wildcard expansion ---

func expandStars(n sql.Node, resolve sql.Resolver) (sql.Node, transform.TreeIdentity, error) {
	return transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		en, ok := node.(transform.ExpressionsNode)
		if !ok {
			return node, transform.SameTree, nil
		}
		children := node.Children()
		if len(children) != 1 {
			return node, transform.SameTree, nil
		}
		available := plan.ChildOutput(children[0])
		if available == nil {
			return node, transform.SameTree, nil
		}

		changed := false
		var out []sql.Expression
		for _, e := range en.Expressions() {
			expanded, did, err := expandStar(e, available, resolve)
			if err != nil {
				return nil, transform.SameTree, err
			}
			if did {
				changed = true
			}
			out = append(out, expanded...)
		}
		if !changed {
			return node, transform.SameTree, nil
		}
		nn, err := en.WithExpressions(out...)
		if err != nil {
			return nil, transform.SameTree, err
		}
		return nn, transform.NewTree, nil
	})
}

func expandStar(e sql.Expression, available []sql.Expression, resolve sql.Resolver) ([]sql.Expression, bool, error) {
	star, ok := e.(*expression.Star)
	if !ok {
		return []sql.Expression{e}, false, nil
	}

	var matched []sql.Expression
	for _, a := range available {
		named, ok := a.(sql.NamedExpression)
		if !ok {
			continue
		}
		if star.Table != "" && !resolve(star.Table, named.Table()) {
			continue
		}
		matched = append(matched, a)
	}
	if len(matched) == 0 {
		return nil, false, fmt.Errorf("analyzer: no columns found for %s", star)
	}
	return matched, true, nil
}

// --- attribute binding ---

func bindAttributes(n sql.Node, resolve sql.Resolver) (sql.Node, transform.TreeIdentity, error) {
	return transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		en, ok := node.(transform.ExpressionsNode)
		if !ok {
			return node, transform.SameTree, nil
		}

		var available []sql.Expression
		for _, c := range node.Children() {
			available = append(available, plan.ChildOutput(c)...)
		}
		if len(available) == 0 {
			return node, transform.SameTree, nil
		}

		exprs := en.Expressions()
		newExprs := make([]sql.Expression, len(exprs))
		changed := false
		for i, e := range exprs {
			ne, same, err := transform.Expr(e, func(expr sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
				return bindExpr(expr, available, resolve)
			})
			if err != nil {
				return nil, transform.SameTree, err
			}
			newExprs[i] = ne
			if same == transform.NewTree {
				changed = true
			}
		}
		if !changed {
			return node, transform.SameTree, nil
		}
		nn, err := en.WithExpressions(newExprs...)
		if err != nil {
			return nil, transform.SameTree, err
		}
		return nn, transform.NewTree, nil
	})
}

func bindExpr(e sql.Expression, available []sql.Expression, resolve sql.Resolver) (sql.Expression, transform.TreeIdentity, error) {
	switch ex := e.(type) {
	case *expression.UnresolvedColumn:
		return resolveColumn(ex, available, resolve)
	case *expression.UnresolvedExtractValue:
		if !ex.Child.Resolved() {
			return e, transform.SameTree, nil
		}
		return resolveExtractValue(ex)
	}
	return e, transform.SameTree, nil
}

func resolveColumn(ex *expression.UnresolvedColumn, available []sql.Expression, resolve sql.Resolver) (sql.Expression, transform.TreeIdentity, error) {
	var matches []sql.Expression
	for _, a := range available {
		named, ok := a.(sql.NamedExpression)
		if !ok || !resolve(named.Name(), ex.Name()) {
			continue
		}
		if ex.Table() != "" && !resolve(named.Table(), ex.Table()) {
			continue
		}
		matches = append(matches, a)
	}

	switch len(matches) {
	case 0:
		// Leave unresolved: a sibling rule or a later fixed-point pass may
		// still widen what's visible here (a Project gaining a passthrough
		// column, say). CheckAnalysis is the backstop if nothing ever does.
		return ex, transform.SameTree, nil
	case 1:
		return matches[0], transform.NewTree, nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			named := m.(sql.NamedExpression)
			if named.Table() != "" {
				names[i] = named.Table() + "." + named.Name()
			} else {
				names[i] = named.Name()
			}
		}
		return nil, transform.SameTree, sql.ErrAmbiguousColumn.New(ex.String(), strings.Join(names, ", "))
	}
}

func resolveExtractValue(ex *expression.UnresolvedExtractValue) (sql.Expression, transform.TreeIdentity, error) {
	switch t := ex.Child.Type().(type) {
	case *types.StructType:
		return expression.NewGetStructField(ex.Child, ex.Field), transform.NewTree, nil
	case *types.ArrayType:
		if _, ok := t.Elem.(*types.StructType); ok {
			return expression.NewGetArrayStructFields(ex.Child, ex.Field), transform.NewTree, nil
		}
	}
	return ex, transform.SameTree, nil
}

// --- self-join deconfliction ---

// deconflictJoins fixes each *plan.Join whose two sides' output
// attribute sets intersect by re-minting ExprIds on its right side,
// closest freshenable node first -- a self-join (`FROM t t1 JOIN t t2`)
// produces exactly this shape, since both references to t resolve to
// literally the same catalog lookup result. Only one conflicting node per
// join is repaired per call; the fixed point in Batch.Eval runs this rule
// again until none remain.
func deconflictJoins(n sql.Node) (sql.Node, transform.TreeIdentity, error) {
	return transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		join, ok := node.(*plan.Join)
		if !ok {
			return node, transform.SameTree, nil
		}
		if !join.Left.Resolved() || !join.Right.Resolved() {
			return node, transform.SameTree, nil
		}
		left := plan.OutputAttributeSet(join.Left)
		right := plan.OutputAttributeSet(join.Right)
		if !left.Intersects(right) {
			return node, transform.SameTree, nil
		}

		fresh, mapping, err := freshenFirstConflict(join.Right)
		if err != nil {
			return nil, transform.SameTree, err
		}
		if fresh == nil {
			return node, transform.SameTree, nil
		}

		remapped, _, err := remapAttributes(fresh, mapping)
		if err != nil {
			return nil, transform.SameTree, err
		}
		return plan.NewJoin(join.Left, remapped, join.Type, join.Condition), transform.NewTree, nil
	})
}

// freshenFirstConflict finds the topmost node in n it knows how to
// re-identify -- a RelationLeaf, or a Project/Aggregate/Generate/Window
// that names its own output -- and rebuilds only that node with fresh
// ExprIds, returning the old->new id mapping the caller must thread back
// up through every ancestor's GetField references.
func freshenFirstConflict(n sql.Node) (sql.Node, map[sql.ExprId]sql.ExprId, error) {
	if leaf, ok := n.(sql.RelationLeaf); ok {
		before := plan.ChildOutput(n)
		fresh, err := leaf.NewInstance()
		if err != nil {
			return nil, nil, err
		}
		after := plan.ChildOutput(fresh)
		return fresh, mapOutputs(before, after), nil
	}

	if en, ok := n.(transform.ExpressionsNode); ok {
		switch en.(type) {
		case *plan.Project, *plan.Aggregate, *plan.Generate, *plan.Window:
			fresh, mapping, err := freshenNamedOutputs(en)
			if err != nil {
				return nil, nil, err
			}
			if fresh != nil {
				return fresh, mapping, nil
			}
		}
	}

	children := n.Children()
	for i, c := range children {
		freshChild, mapping, err := freshenFirstConflict(c)
		if err != nil {
			return nil, nil, err
		}
		if freshChild != nil {
			newChildren := append([]sql.Node(nil), children...)
			newChildren[i] = freshChild
			nn, err := n.WithChildren(newChildren...)
			if err != nil {
				return nil, nil, err
			}
			return nn, mapping, nil
		}
	}
	return nil, nil, nil
}

func mapOutputs(before, after []sql.Expression) map[sql.ExprId]sql.ExprId {
	mapping := make(map[sql.ExprId]sql.ExprId, len(before))
	for i := range before {
		if i >= len(after) {
			break
		}
		oldNamed, ok1 := before[i].(sql.NamedExpression)
		newNamed, ok2 := after[i].(sql.NamedExpression)
		if ok1 && ok2 {
			mapping[oldNamed.ID()] = newNamed.ID()
		}
	}
	return mapping
}

func freshenNamedOutputs(n transform.ExpressionsNode) (sql.Node, map[sql.ExprId]sql.ExprId, error) {
	exprs := n.Expressions()
	mapping := make(map[sql.ExprId]sql.ExprId)
	changed := false
	newExprs := make([]sql.Expression, len(exprs))
	for i, e := range exprs {
		named, ok := e.(sql.NamedExpression)
		if !ok {
			newExprs[i] = e
			continue
		}
		newID, seen := mapping[named.ID()]
		if !seen {
			newID = sql.NewExprId()
			mapping[named.ID()] = newID
		}
		newExprs[i] = freshenNamedWithId(named, newID)
		changed = true
	}
	if !changed {
		return nil, nil, nil
	}
	nn, err := n.WithExpressions(newExprs...)
	if err != nil {
		return nil, nil, err
	}
	return nn, mapping, nil
}

func freshenNamedWithId(e sql.NamedExpression, id sql.ExprId) sql.NamedExpression {
	switch ex := e.(type) {
	case *expression.Alias:
		return expression.NewAliasWithId(id, ex.Name(), ex.Child)
	case *expression.GetField:
		return expression.NewGetFieldWithId(id, ex.Index(), ex.Type(), ex.Table(), ex.Name(), ex.Nullable())
	default:
		return e
	}
}

// remapAttributes rewrites every GetField in n's expression trees whose id
// is a key of mapping to the corresponding new id, preserving its index,
// type, table and name.
func remapAttributes(n sql.Node, mapping map[sql.ExprId]sql.ExprId) (sql.Node, transform.TreeIdentity, error) {
	if len(mapping) == 0 {
		return n, transform.SameTree, nil
	}
	return transform.NodeExprs(n, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		gf, ok := e.(*expression.GetField)
		if !ok {
			return e, transform.SameTree, nil
		}
		newID, ok := mapping[gf.ID()]
		if !ok {
			return e, transform.SameTree, nil
		}
		return expression.NewGetFieldWithId(newID, gf.Index(), gf.Type(), gf.Table(), gf.Name(), gf.Nullable()), transform.NewTree, nil
	})
}

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

// Package transform holds the generic tree-rewrite helpers every analyzer
// rule is built from: bottom-up/top-down node transforms, the same for
// expression trees threaded through a plan, and read-only walk/inspect/
// collect helpers.
package transform

import "github.com/skylarkdb/skylark/sql"

// TreeIdentity records whether a transform produced a structurally new
// tree (NewTree) or returned the input unchanged (SameTree). Rules use it
// to decide whether another fixed-point iteration could make progress.
type TreeIdentity bool

const (
	SameTree TreeIdentity = false
	NewTree  TreeIdentity = true
)

// NodeFunc is applied to one node at a time during a tree transform.
type NodeFunc func(n sql.Node) (sql.Node, TreeIdentity, error)

// ExprFunc is applied to one expression at a time during an expression
// transform.
type ExprFunc func(e sql.Expression) (sql.Expression, TreeIdentity, error)

// Node applies f bottom-up: every child of n is transformed (recursively)
// before f is applied to n itself, so f always sees already-rewritten
// children. The returned TreeIdentity is NewTree if n or any descendant
// changed.
func Node(n sql.Node, f NodeFunc) (sql.Node, TreeIdentity, error) {
	children := n.Children()
	if len(children) == 0 {
		return f(n)
	}

	newChildren := make([]sql.Node, len(children))
	same := SameTree
	for i, c := range children {
		nc, cSame, err := Node(c, f)
		if err != nil {
			return nil, SameTree, err
		}
		newChildren[i] = nc
		if cSame == NewTree {
			same = NewTree
		}
	}

	cur := n
	if same == NewTree {
		nn, err := n.WithChildren(newChildren...)
		if err != nil {
			return nil, SameTree, err
		}
		cur = nn
	}

	newNode, nodeSame, err := f(cur)
	if err != nil {
		return nil, SameTree, err
	}
	if nodeSame == NewTree {
		same = NewTree
	}
	return newNode, same, nil
}

// NodeWithCtx behaves like Node but additionally lets f reject descending
// into particular children (returning false from the "canTransform"
// predicate), for a rule that must stop at a boundary such as a
// Subquery. No built-in rule calls it.
func NodeWithCtx(n sql.Node, canTransform func(parent, child sql.Node) bool, f NodeFunc) (sql.Node, TreeIdentity, error) {
	children := n.Children()
	if len(children) == 0 {
		return f(n)
	}

	newChildren := make([]sql.Node, len(children))
	same := SameTree
	for i, c := range children {
		if canTransform != nil && !canTransform(n, c) {
			newChildren[i] = c
			continue
		}
		nc, cSame, err := NodeWithCtx(c, canTransform, f)
		if err != nil {
			return nil, SameTree, err
		}
		newChildren[i] = nc
		if cSame == NewTree {
			same = NewTree
		}
	}

	cur := n
	if same == NewTree {
		nn, err := n.WithChildren(newChildren...)
		if err != nil {
			return nil, SameTree, err
		}
		cur = nn
	}

	newNode, nodeSame, err := f(cur)
	if err != nil {
		return nil, SameTree, err
	}
	if nodeSame == NewTree {
		same = NewTree
	}
	return newNode, same, nil
}

// NodeExprsWithNode rewrites every expression directly carried by n (as
// reported by an ExpressionsNode implementation) with f, then reassembles
// n via WithExpressions. It does not recurse into child Nodes.
func NodeExprsWithNode(n sql.Node, f ExprFunc) (sql.Node, TreeIdentity, error) {
	en, ok := n.(ExpressionsNode)
	if !ok {
		return n, SameTree, nil
	}
	exprs := en.Expressions()
	if len(exprs) == 0 {
		return n, SameTree, nil
	}

	newExprs := make([]sql.Expression, len(exprs))
	same := SameTree
	for i, e := range exprs {
		ne, eSame, err := Expr(e, f)
		if err != nil {
			return nil, SameTree, err
		}
		newExprs[i] = ne
		if eSame == NewTree {
			same = NewTree
		}
	}

	if same == SameTree {
		return n, SameTree, nil
	}
	nn, err := en.WithExpressions(newExprs...)
	if err != nil {
		return nil, SameTree, err
	}
	return nn, NewTree, nil
}

// NodeExprs applies NodeExprsWithNode to n and to every node in n's
// subtree, bottom-up -- the standard way a rule rewrites every expression
// in a plan (ResolveReferences, type coercion) without hand-writing the
// recursion.
func NodeExprs(n sql.Node, f ExprFunc) (sql.Node, TreeIdentity, error) {
	return Node(n, func(node sql.Node) (sql.Node, TreeIdentity, error) {
		return NodeExprsWithNode(node, f)
	})
}

// ExpressionsNode is implemented by plan nodes that carry expressions
// directly (Project's projections, Filter's condition, Aggregate's
// grouping/aggregate expressions, Sort's order-by list, ...).
type ExpressionsNode interface {
	sql.Node
	Expressions() []sql.Expression
	WithExpressions(exprs ...sql.Expression) (sql.Node, error)
}

// Expr applies f bottom-up over an expression tree, mirroring Node.
func Expr(e sql.Expression, f ExprFunc) (sql.Expression, TreeIdentity, error) {
	children := e.Children()
	if len(children) == 0 {
		return f(e)
	}

	newChildren := make([]sql.Expression, len(children))
	same := SameTree
	for i, c := range children {
		nc, cSame, err := Expr(c, f)
		if err != nil {
			return nil, SameTree, err
		}
		newChildren[i] = nc
		if cSame == NewTree {
			same = NewTree
		}
	}

	cur := e
	if same == NewTree {
		ne, err := e.WithChildren(newChildren...)
		if err != nil {
			return nil, SameTree, err
		}
		cur = ne
	}

	newExpr, exprSame, err := f(cur)
	if err != nil {
		return nil, SameTree, err
	}
	if exprSame == NewTree {
		same = NewTree
	}
	return newExpr, same, nil
}

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

// Package sql holds the interfaces that the analyzer's plan and
// expression trees are built from, plus the external contracts
// (catalog, function registry, context) the analyzer consumes.
package sql

import "fmt"

// Row is a tuple of column values. The analyzer never evaluates rows; it
// only needs the type to describe LocalRelation literals.
type Row []interface{}

// Column describes one output position of a plan node.
type Column struct {
	Name     string
	Source   string
	Type     Type
	Nullable bool
}

// Schema is the ordered output description of a plan node.
type Schema []*Column

func (s Schema) Equals(o Schema) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i].Name != o[i].Name || s[i].Source != o[i].Source || !s[i].Type.Equals(o[i].Type) {
			return false
		}
	}
	return true
}

// Node is a logical plan node. Implementations are expected to be
// immutable: WithChildren returns a new node rather than mutating the
// receiver.
type Node interface {
	fmt.Stringer
	// Resolved reports whether every child and every expression carried by
	// this node is resolved, and any node-local semantic check passes.
	Resolved() bool
	// Schema is the ordered set of attributes this node produces. Calling
	// Schema on an unresolved node is only valid for nodes that document
	// it (most require Resolved() first).
	Schema() Schema
	Children() []Node
	WithChildren(children ...Node) (Node, error)
}

// Expression is a scalar (or generator) expression tree.
type Expression interface {
	fmt.Stringer
	Resolved() bool
	Type() Type
	Nullable() bool
	Children() []Expression
	WithChildren(children ...Expression) (Expression, error)
	Eval(ctx *Context, row Row) (interface{}, error)
}

// NamedExpression is an expression with a stable name, optional table
// qualifier, and an ExprId used for attribute identity across plan
// transforms.
type NamedExpression interface {
	Expression
	Name() string
	Table() string
	ID() ExprId
}

// Generator is a table-valued expression: it produces zero or more output
// rows (and/or columns) per input row.
type Generator interface {
	Expression
	// ElementTypes describes the columns a single expansion of this
	// generator produces.
	ElementTypes() []Type
}

// UnresolvedNode marks plan nodes (UnresolvedRelation, With, ...) whose
// presence anywhere in a tree means the tree is unresolved regardless of
// what Resolved() would otherwise compute. CheckAnalysis does not consult
// this marker; it matches the concrete node types to produce
// column/table-specific diagnostics.
type UnresolvedNode interface {
	Node
	unresolved()
}

// UnresolvedExpression is the analogous marker for expressions.
type UnresolvedExpression interface {
	Expression
	unresolved()
}

// RelationLeaf is the small capability fixed set a leaf relation node must
// provide so the self-join deconfliction logic in ResolveReferences can
// freshen ExprIds without reflection. See sql/plan/resolved_table.go and
// sql/plan/local_relation.go.
type RelationLeaf interface {
	Node
	// NewInstance returns a structurally identical copy of the relation
	// with every attribute it outputs re-minted under a fresh ExprId.
	NewInstance() (Node, error)
}

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

package plan

import (
	"fmt"

	"github.com/skylarkdb/skylark/sql"
)

// Generate is the lowered form of a table-valued function call
// (LATERAL VIEW EXPLODE(...), JSON_TUPLE(...), ...): Generator is
// evaluated once per input row and its OutputExprs are appended to
// (Join=true) or replace (Join=false) the row. Outer makes a
// zero-expansion row produce one all-NULL output row instead of none,
// mirroring LEFT OUTER semantics for the generator.
type Generate struct {
	UnaryNode
	Gen         sql.Generator
	Join        bool
	Outer       bool
	Qualifier   string
	OutputExprs []sql.Expression
}

func NewGenerate(gen sql.Generator, join, outer bool, qualifier string, output []sql.Expression, child sql.Node) *Generate {
	return &Generate{UnaryNode: UnaryNode{Child: child}, Gen: gen, Join: join, Outer: outer, Qualifier: qualifier, OutputExprs: output}
}

func (g *Generate) Resolved() bool {
	if !g.Child.Resolved() || !g.Gen.Resolved() {
		return false
	}
	for _, o := range g.OutputExprs {
		if !o.Resolved() {
			return false
		}
	}
	return true
}

func (g *Generate) Schema() sql.Schema {
	out := make(sql.Schema, 0, len(g.OutputExprs))
	if g.Join {
		out = append(out, g.ChildSchema()...)
	}
	for _, o := range g.OutputExprs {
		out = append(out, columnFor(o))
	}
	return out
}

func (g *Generate) String() string {
	return fmt.Sprintf("Generate(%s, join=%v, outer=%v, %s)", g.Gen, g.Join, g.Outer, g.Child)
}

func (g *Generate) Expressions() []sql.Expression {
	return append([]sql.Expression{g.Gen}, g.OutputExprs...)
}

func (g *Generate) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) < 1 {
		return nil, fmt.Errorf("plan.Generate: expected at least 1 expression, got %d", len(exprs))
	}
	gen, ok := exprs[0].(sql.Generator)
	if !ok {
		return nil, fmt.Errorf("plan.Generate: first expression must be a Generator")
	}
	return NewGenerate(gen, g.Join, g.Outer, g.Qualifier, exprs[1:], g.Child), nil
}

func (g *Generate) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan.Generate: expected 1 child, got %d", len(children))
	}
	return NewGenerate(g.Gen, g.Join, g.Outer, g.Qualifier, g.OutputExprs, children[0]), nil
}

// Output implements OutputNode.
func (g *Generate) Output() []sql.Expression {
	if g.Join {
		return append(append([]sql.Expression{}, ChildOutput(g.Child)...), g.OutputExprs...)
	}
	return g.OutputExprs
}

var _ OutputNode = (*Generate)(nil)

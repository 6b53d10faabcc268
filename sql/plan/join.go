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

type JoinType int

const (
	JoinTypeInner JoinType = iota
	JoinTypeLeft
	JoinTypeRight
	JoinTypeCross
)

func (t JoinType) String() string {
	switch t {
	case JoinTypeLeft:
		return "LeftOuter"
	case JoinTypeRight:
		return "RightOuter"
	case JoinTypeCross:
		return "Cross"
	default:
		return "Inner"
	}
}

// Join combines Left and Right's rows subject to Condition (nil for a
// Cross join). Its output is Left's attributes followed by Right's --
// spec invariant 5 requires the two share no ExprId, which
// ResolveReferences' self-join deconfliction is responsible for
// maintaining.
type Join struct {
	Left, Right sql.Node
	Condition   sql.Expression
	Type        JoinType
}

func NewJoin(left, right sql.Node, typ JoinType, condition sql.Expression) *Join {
	return &Join{Left: left, Right: right, Condition: condition, Type: typ}
}

func (j *Join) Children() []sql.Node { return []sql.Node{j.Left, j.Right} }

func (j *Join) Resolved() bool {
	if !j.Left.Resolved() || !j.Right.Resolved() {
		return false
	}
	return j.Condition == nil || j.Condition.Resolved()
}

func (j *Join) Schema() sql.Schema {
	return append(append(sql.Schema{}, j.Left.Schema()...), j.Right.Schema()...)
}

func (j *Join) String() string {
	return fmt.Sprintf("Join(%s, %s, %s, on=%v)", j.Type, j.Left, j.Right, j.Condition)
}

func (j *Join) Expressions() []sql.Expression {
	if j.Condition == nil {
		return nil
	}
	return []sql.Expression{j.Condition}
}

func (j *Join) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) == 0 {
		return NewJoin(j.Left, j.Right, j.Type, nil), nil
	}
	if len(exprs) != 1 {
		return nil, fmt.Errorf("plan.Join: expected 0 or 1 expressions, got %d", len(exprs))
	}
	return NewJoin(j.Left, j.Right, j.Type, exprs[0]), nil
}

func (j *Join) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("plan.Join: expected 2 children, got %d", len(children))
	}
	return NewJoin(children[0], children[1], j.Type, j.Condition), nil
}

// Output implements OutputNode: a join's output is its left side's
// attributes followed by its right side's.
func (j *Join) Output() []sql.Expression {
	return append(append([]sql.Expression{}, ChildOutput(j.Left)...), ChildOutput(j.Right)...)
}

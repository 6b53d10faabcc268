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

// Expand is the physical-ish operator ResolveGroupingAnalytics lowers
// Cube/Rollup/GroupingSets into: it emits one output row per input row
// per entry of Masks, nulling out any GroupByAttrs column not set in that
// mask's bitmask, and setting GroupingIDAttr to the mask value itself.
type Expand struct {
	UnaryNode
	Masks          []int64
	GroupByAttrs   []sql.Expression
	GroupingIDAttr sql.Expression
}

func NewExpand(masks []int64, groupByAttrs []sql.Expression, groupingIDAttr sql.Expression, child sql.Node) *Expand {
	return &Expand{UnaryNode: UnaryNode{Child: child}, Masks: masks, GroupByAttrs: groupByAttrs, GroupingIDAttr: groupingIDAttr}
}

func (e *Expand) Resolved() bool {
	if !e.Child.Resolved() || !e.GroupingIDAttr.Resolved() {
		return false
	}
	for _, a := range e.GroupByAttrs {
		if !a.Resolved() {
			return false
		}
	}
	return true
}

func (e *Expand) Schema() sql.Schema {
	out := append(sql.Schema{}, e.ChildSchema()...)
	return append(out, columnFor(e.GroupingIDAttr))
}

func (e *Expand) String() string {
	return fmt.Sprintf("Expand(masks=%v, %s)", e.Masks, e.Child)
}

func (e *Expand) Expressions() []sql.Expression {
	return append(append([]sql.Expression{}, e.GroupByAttrs...), e.GroupingIDAttr)
}

func (e *Expand) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) < 1 {
		return nil, fmt.Errorf("plan.Expand: expected at least 1 expression, got %d", len(exprs))
	}
	return NewExpand(e.Masks, exprs[:len(exprs)-1], exprs[len(exprs)-1], e.Child), nil
}

func (e *Expand) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan.Expand: expected 1 child, got %d", len(children))
	}
	return NewExpand(e.Masks, e.GroupByAttrs, e.GroupingIDAttr, children[0]), nil
}

// Output implements OutputNode.
func (e *Expand) Output() []sql.Expression {
	return append(append([]sql.Expression{}, ChildOutput(e.Child)...), e.GroupingIDAttr)
}

var _ OutputNode = (*Expand)(nil)

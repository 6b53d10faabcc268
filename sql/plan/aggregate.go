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
	"strings"

	"github.com/skylarkdb/skylark/sql"
)

// Aggregate groups Child's rows by GroupingExpressions and evaluates
// AggregateExpressions (a mix of plain grouping-key references and
// AggregateExpression-wrapped calls) per group. An empty GroupingExpressions
// list means "one group, the whole input" -- the shape GlobalAggregates
// produces.
type Aggregate struct {
	UnaryNode
	GroupingExpressions   []sql.Expression
	AggregateExpressions  []sql.Expression
}

func NewAggregate(grouping, aggregates []sql.Expression, child sql.Node) *Aggregate {
	return &Aggregate{UnaryNode: UnaryNode{Child: child}, GroupingExpressions: grouping, AggregateExpressions: aggregates}
}

func (a *Aggregate) Resolved() bool {
	if !a.Child.Resolved() {
		return false
	}
	for _, e := range a.GroupingExpressions {
		if !e.Resolved() {
			return false
		}
	}
	for _, e := range a.AggregateExpressions {
		if !e.Resolved() {
			return false
		}
	}
	return true
}

func (a *Aggregate) Schema() sql.Schema {
	out := make(sql.Schema, 0, len(a.AggregateExpressions))
	for _, e := range a.AggregateExpressions {
		out = append(out, columnFor(e))
	}
	return out
}

func (a *Aggregate) String() string {
	g := make([]string, len(a.GroupingExpressions))
	for i, e := range a.GroupingExpressions {
		g[i] = e.String()
	}
	aggs := make([]string, len(a.AggregateExpressions))
	for i, e := range a.AggregateExpressions {
		aggs[i] = e.String()
	}
	return fmt.Sprintf("Aggregate(groups=[%s], aggs=[%s], %s)", strings.Join(g, ", "), strings.Join(aggs, ", "), a.Child)
}

// Output implements OutputNode: an Aggregate's output is its aggregate
// expression list (the grouping keys it re-emits appear there too, as
// plain attribute references).
func (a *Aggregate) Output() []sql.Expression { return a.AggregateExpressions }

// Expressions returns grouping expressions followed by aggregate
// expressions; WithExpressions splits them back apart in the same order,
// so rules that rewrite "every expression on this node" (NodeExprs) see
// and rebuild both lists uniformly.
func (a *Aggregate) Expressions() []sql.Expression {
	out := make([]sql.Expression, 0, len(a.GroupingExpressions)+len(a.AggregateExpressions))
	out = append(out, a.GroupingExpressions...)
	out = append(out, a.AggregateExpressions...)
	return out
}

func (a *Aggregate) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	n := len(a.GroupingExpressions)
	if len(exprs) != n+len(a.AggregateExpressions) {
		return nil, fmt.Errorf("plan.Aggregate: expected %d expressions, got %d", n+len(a.AggregateExpressions), len(exprs))
	}
	return NewAggregate(exprs[:n], exprs[n:], a.Child), nil
}

func (a *Aggregate) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan.Aggregate: expected 1 child, got %d", len(children))
	}
	return NewAggregate(a.GroupingExpressions, a.AggregateExpressions, children[0]), nil
}

var _ OutputNode = (*Aggregate)(nil)

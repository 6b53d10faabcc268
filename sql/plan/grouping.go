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

// GroupingIDName is the synthesized column name ResolveGroupingAnalytics
// gives the bitmask attribute Expand produces, matching VirtualColumn's
// conventional naming for this exact purpose.
const GroupingIDName = "grouping_id"

// groupingAnalyticsNode is embedded by Cube, Rollup, and GroupingSets: all
// three carry the same shape (an explicit or implicit set of grouping
// subsets, a grouping expression list, aggregations, and a child) and are
// unresolved-by-construction since ResolveGroupingAnalytics always
// rewrites them into a plain Aggregate(Expand(...)) before the plan can
// be considered analyzed.
type groupingAnalyticsNode struct {
	UnaryNode
	GroupByExprs []sql.Expression
	Aggregations []sql.Expression
}

func (n *groupingAnalyticsNode) Resolved() bool { return false }
func (n *groupingAnalyticsNode) unresolved()     {}
func (n *groupingAnalyticsNode) Schema() sql.Schema {
	out := make(sql.Schema, len(n.Aggregations))
	for i, e := range n.Aggregations {
		out[i] = columnFor(e)
	}
	return out
}

func (n *groupingAnalyticsNode) exprString() string {
	parts := make([]string, len(n.GroupByExprs))
	for i, e := range n.GroupByExprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

// Cube is GROUP BY ... WITH CUBE / GROUP BY CUBE(...): every subset of
// GroupByExprs is aggregated over.
type Cube struct{ groupingAnalyticsNode }

func NewCube(groupBy, aggregations []sql.Expression, child sql.Node) *Cube {
	return &Cube{groupingAnalyticsNode{UnaryNode{Child: child}, groupBy, aggregations}}
}

func (c *Cube) String() string { return fmt.Sprintf("Cube(%s, %s)", c.exprString(), c.Child) }

func (c *Cube) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan.Cube: expected 1 child, got %d", len(children))
	}
	return NewCube(c.GroupByExprs, c.Aggregations, children[0]), nil
}

// Rollup is GROUP BY ... WITH ROLLUP / GROUP BY ROLLUP(...): the prefix
// subsets {}, {a1}, {a1,a2}, ... of GroupByExprs are aggregated over, in
// order from least to most specific.
type Rollup struct{ groupingAnalyticsNode }

func NewRollup(groupBy, aggregations []sql.Expression, child sql.Node) *Rollup {
	return &Rollup{groupingAnalyticsNode{UnaryNode{Child: child}, groupBy, aggregations}}
}

func (r *Rollup) String() string { return fmt.Sprintf("Rollup(%s, %s)", r.exprString(), r.Child) }

func (r *Rollup) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan.Rollup: expected 1 child, got %d", len(children))
	}
	return NewRollup(r.GroupByExprs, r.Aggregations, children[0]), nil
}

// GroupingSets is GROUP BY GROUPING SETS (...): an explicit list of
// grouping subsets, given as bitmasks over GroupByExprs (bit i set means
// GroupByExprs[i] participates in that subset).
type GroupingSets struct {
	groupingAnalyticsNode
	Masks []int64
}

func NewGroupingSets(masks []int64, groupBy, aggregations []sql.Expression, child sql.Node) *GroupingSets {
	return &GroupingSets{groupingAnalyticsNode{UnaryNode{Child: child}, groupBy, aggregations}, masks}
}

func (g *GroupingSets) String() string {
	return fmt.Sprintf("GroupingSets(masks=%v, %s, %s)", g.Masks, g.exprString(), g.Child)
}

func (g *GroupingSets) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan.GroupingSets: expected 1 child, got %d", len(children))
	}
	return NewGroupingSets(g.Masks, g.GroupByExprs, g.Aggregations, children[0]), nil
}

// RollupMasks computes the bitmasks ResolveGroupingAnalytics lowers a
// Rollup(a1..an) into: {(1<<0)-1, (1<<1)-1, ..., (1<<n)-1}, i.e. the
// prefix subsets from empty to full.
func RollupMasks(n int) []int64 {
	masks := make([]int64, 0, n+1)
	for i := 0; i <= n; i++ {
		masks = append(masks, (int64(1)<<uint(i))-1)
	}
	return masks
}

// CubeMasks computes the bitmasks ResolveGroupingAnalytics lowers a
// Cube(a1..an) into: every subset {0, 1, ..., 2^n - 1}.
func CubeMasks(n int) []int64 {
	total := int64(1) << uint(n)
	masks := make([]int64, total)
	for i := range masks {
		masks[i] = int64(i)
	}
	return masks
}

var (
	_ sql.UnresolvedNode = (*Cube)(nil)
	_ sql.UnresolvedNode = (*Rollup)(nil)
	_ sql.UnresolvedNode = (*GroupingSets)(nil)
)

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
	"github.com/skylarkdb/skylark/sql"
	"github.com/skylarkdb/skylark/sql/expression"
	"github.com/skylarkdb/skylark/sql/plan"
	"github.com/skylarkdb/skylark/sql/transform"
)

// globalAggregates is GlobalAggregates: a Project whose list contains an
// aggregate call, with no GROUP BY anywhere in sight, is really a
// zero-grouping Aggregate -- "SELECT SUM(x) FROM t" aggregates the whole
// table into one row.
func globalAggregates(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, error) {
	return transformNode(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		p, ok := node.(*plan.Project)
		if !ok || !projectionsHaveAggregate(p.Projections) {
			return node, transform.SameTree, nil
		}
		return plan.NewAggregate(nil, p.Projections, p.Child), transform.NewTree, nil
	})
}

func projectionsHaveAggregate(list []sql.Expression) bool {
	for _, e := range list {
		if expression.IsAggregateExpression(e) {
			return true
		}
	}
	return false
}

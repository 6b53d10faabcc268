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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skylarkdb/skylark/sql"
	"github.com/skylarkdb/skylark/sql/expression"
	"github.com/skylarkdb/skylark/sql/expression/function/aggregation"
	"github.com/skylarkdb/skylark/sql/plan"
)

func sumOf(child sql.Expression) *expression.AggregateExpression {
	fn, err := aggregation.NewSum([]sql.Expression{child})
	if err != nil {
		panic(err)
	}
	return expression.NewAggregateExpression(fn, expression.Complete, false)
}

func TestGlobalAggregates(t *testing.T) {
	r := table("r", "a", "b")

	testCases := []analyzerFnTestCase{
		{
			name: "project with an aggregate call becomes a zero-grouping Aggregate",
			node: plan.NewProject(
				[]sql.Expression{sumOf(col(0, "r", "a"))},
				r,
			),
			expected: plan.NewAggregate(
				nil,
				[]sql.Expression{sumOf(col(0, "r", "a"))},
				r,
			),
		},
		{
			name: "project without an aggregate call is left alone",
			node: plan.NewProject(
				[]sql.Expression{col(0, "r", "a")},
				r,
			),
		},
	}

	runTestCases(t, nil, testCases, nil, Rule{Id: globalAggregatesId, Apply: globalAggregates})

	t.Run("existing Aggregate is not re-wrapped", func(t *testing.T) {
		agg := plan.NewAggregate(
			[]sql.Expression{col(0, "r", "a")},
			[]sql.Expression{col(0, "r", "a"), sumOf(col(1, "r", "b"))},
			r,
		)
		result, err := globalAggregates(sql.NewEmptyContext(), nil, agg, nil)
		require.NoError(t, err)
		assertNodesEqualWithDiff(t, agg, result)
	})
}

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

	"github.com/skylarkdb/skylark/sql"
	"github.com/skylarkdb/skylark/sql/expression"
	"github.com/skylarkdb/skylark/sql/plan"
	"github.com/skylarkdb/skylark/sql/types"
)

func TestResolveGroupingAnalytics(t *testing.T) {
	r := table("r", "a", "b")
	groupingID := expression.NewGetFieldWithTable(1, types.Int64, "", plan.GroupingIDName, false)

	testCases := []analyzerFnTestCase{
		{
			name: "rollup over one named attribute lowers to Aggregate(Expand(...))",
			node: plan.NewRollup(
				[]sql.Expression{col(0, "r", "a")},
				[]sql.Expression{col(0, "r", "a"), sumOf(col(1, "r", "b"))},
				r,
			),
			expected: plan.NewAggregate(
				[]sql.Expression{col(0, "r", "a"), groupingID},
				[]sql.Expression{col(0, "r", "a"), sumOf(col(1, "r", "b"))},
				plan.NewExpand(
					plan.RollupMasks(1),
					[]sql.Expression{col(0, "r", "a")},
					groupingID,
					r,
				),
			),
		},
		{
			name: "cube over one named attribute lowers with cube masks",
			node: plan.NewCube(
				[]sql.Expression{col(0, "r", "a")},
				[]sql.Expression{col(0, "r", "a")},
				r,
			),
			expected: plan.NewAggregate(
				[]sql.Expression{col(0, "r", "a"), groupingID},
				[]sql.Expression{col(0, "r", "a")},
				plan.NewExpand(
					plan.CubeMasks(1),
					[]sql.Expression{col(0, "r", "a")},
					groupingID,
					r,
				),
			),
		},
		{
			name: "explicit grouping sets keep their own masks",
			node: plan.NewGroupingSets(
				[]int64{0, 1},
				[]sql.Expression{col(0, "r", "a")},
				[]sql.Expression{col(0, "r", "a")},
				r,
			),
			expected: plan.NewAggregate(
				[]sql.Expression{col(0, "r", "a"), groupingID},
				[]sql.Expression{col(0, "r", "a")},
				plan.NewExpand(
					[]int64{0, 1},
					[]sql.Expression{col(0, "r", "a")},
					groupingID,
					r,
				),
			),
		},
		{
			name: "plain plan without grouping analytics is left alone",
			node: plan.NewProject([]sql.Expression{col(0, "r", "a")}, r),
		},
	}

	runTestCases(t, nil, testCases, nil, Rule{Id: resolveGroupingAnalyticsId, Apply: resolveGroupingAnalytics})
}

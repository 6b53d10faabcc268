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
)

func TestResolveHavingClauseAttributes(t *testing.T) {
	r := table("r", "a", "b")
	having := expression.NewGreaterThan(sumOf(col(1, "r", "b")), lit(10))

	testCases := []analyzerFnTestCase{
		{
			name: "having clause calling an aggregate is lifted into the Aggregate beneath it",
			node: plan.NewFilter(
				having,
				plan.NewAggregate(
					[]sql.Expression{col(0, "r", "a")},
					[]sql.Expression{col(0, "r", "a")},
					r,
				),
			),
			expected: plan.NewProject(
				[]sql.Expression{col(0, "r", "a")},
				plan.NewFilter(
					expression.NewAlias("havingCondition", having).ToAttribute(0),
					plan.NewAggregate(
						[]sql.Expression{col(0, "r", "a")},
						[]sql.Expression{expression.NewAlias("havingCondition", having), col(0, "r", "a")},
						r,
					),
				),
			),
		},
		{
			name: "having clause with no aggregate call is left alone",
			node: plan.NewFilter(
				expression.NewGreaterThan(col(0, "r", "a"), lit(10)),
				plan.NewAggregate(
					[]sql.Expression{col(0, "r", "a")},
					[]sql.Expression{col(0, "r", "a")},
					r,
				),
			),
		},
		{
			name: "filter not over an Aggregate is left alone",
			node: plan.NewFilter(expression.NewGreaterThan(col(0, "r", "a"), lit(10)), r),
		},
	}

	runTestCases(t, nil, testCases, nil, Rule{Id: unresolvedHavingClauseAttributesId, Apply: resolveHavingClauseAttributes})
}

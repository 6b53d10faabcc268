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

func TestCTESubstitution(t *testing.T) {
	r := table("r", "a", "b")
	cte := plan.NewProject([]sql.Expression{expression.NewStar()}, r)

	testCases := []analyzerFnTestCase{
		{
			name: "unqualified reference substituted",
			node: plan.NewWith(
				[]plan.CTE{{Name: "q", Plan: cte}},
				plan.NewProject(
					[]sql.Expression{expression.NewStar()},
					plan.NewUnresolvedRelation(sql.TableIdentifier{Name: "q"}),
				),
			),
			expected: plan.NewProject(
				[]sql.Expression{expression.NewStar()},
				plan.NewSubquery("q", cte),
			),
		},
		{
			name: "aliased reference keeps the query's own alias",
			node: plan.NewWith(
				[]plan.CTE{{Name: "q", Plan: cte}},
				plan.NewProject(
					[]sql.Expression{expression.NewStar()},
					plan.NewUnresolvedRelationWithAlias(sql.TableIdentifier{Name: "q"}, "x"),
				),
			),
			expected: plan.NewProject(
				[]sql.Expression{expression.NewStar()},
				plan.NewSubquery("x", cte),
			),
		},
		{
			name: "only the final identifier segment matches -- a database qualifier is ignored",
			node: plan.NewWith(
				[]plan.CTE{{Name: "q", Plan: cte}},
				plan.NewProject(
					[]sql.Expression{expression.NewStar()},
					plan.NewUnresolvedRelation(sql.TableIdentifier{Database: "db", Name: "q"}),
				),
			),
			expected: plan.NewProject(
				[]sql.Expression{expression.NewStar()},
				plan.NewSubquery("q", cte),
			),
		},
	}

	runTestCases(t, nil, testCases, nil, Rule{Id: cteSubstitutionId, Apply: substituteCTE})
}

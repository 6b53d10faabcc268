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
	"github.com/skylarkdb/skylark/sql/plan"
	"github.com/skylarkdb/skylark/sql/types"
)

func TestResolveGenerate(t *testing.T) {
	r := table("r", "a", "b")

	testCases := []analyzerFnTestCase{
		{
			name: "single aliased generator in a Project rewrites into Project(Generate(...))",
			node: plan.NewProject(
				[]sql.Expression{expression.NewAlias("x", expression.NewExplode(col(0, "r", "a"), types.Int64))},
				r,
			),
			expected: plan.NewProject(
				[]sql.Expression{expression.NewGetFieldWithTable(0, types.Int64, "", "x", true)},
				plan.NewGenerate(
					expression.NewExplode(col(0, "r", "a"), types.Int64),
					false,
					false,
					"",
					[]sql.Expression{expression.NewGetFieldWithTable(0, types.Int64, "", "x", true)},
					r,
				),
			),
		},
		{
			name: "generator alongside other projections keeps the other columns and joins",
			node: plan.NewProject(
				[]sql.Expression{col(1, "r", "b"), expression.NewAlias("x", expression.NewExplode(col(0, "r", "a"), types.Int64))},
				r,
			),
			expected: plan.NewProject(
				[]sql.Expression{col(1, "r", "b"), expression.NewGetFieldWithTable(0, types.Int64, "", "x", true)},
				plan.NewGenerate(
					expression.NewExplode(col(0, "r", "a"), types.Int64),
					true,
					false,
					"",
					[]sql.Expression{expression.NewGetFieldWithTable(0, types.Int64, "", "x", true)},
					r,
				),
			),
		},
		{
			name: "project without a generator is left alone",
			node: plan.NewProject([]sql.Expression{col(0, "r", "a")}, r),
		},
	}

	runTestCases(t, nil, testCases, nil, Rule{Id: resolveGenerateId, Apply: resolveGenerate})

	t.Run("two generators in one projection list is fatal", func(t *testing.T) {
		node := plan.NewProject(
			[]sql.Expression{
				expression.NewAlias("x", expression.NewExplode(col(0, "r", "a"), types.Int64)),
				expression.NewAlias("y", expression.NewExplode(col(1, "r", "b"), types.Int64)),
			},
			r,
		)
		_, err := resolveGenerate(sql.NewEmptyContext(), nil, node, nil)
		require.Error(t, err)
		require.True(t, sql.ErrMultipleGenerators.Is(err))
	})

	t.Run("mismatched alias count on a JSON_TUPLE generate is fatal", func(t *testing.T) {
		gen := plan.NewGenerate(
			expression.NewJSONTuple(strCol(0, "r", "a"), []string{"x", "y"}),
			false, false, "",
			[]sql.Expression{col(0, "r", "only_one"), expression.NewUnresolvedColumn("still_pending")},
			r,
		)
		_, err := resolveGenerateOutputs(gen)
		require.Error(t, err)
		require.True(t, sql.ErrGeneratorAliasCountMismatch.Is(err))
	})
}

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

func TestResolveAliases(t *testing.T) {
	r := table("r", "a", "b")

	testCases := []analyzerFnTestCase{
		{
			name: "named expression is unwrapped without renaming",
			node: plan.NewProject(
				[]sql.Expression{expression.NewUnresolvedAlias(expression.NewAlias("a", col(0, "r", "a")))},
				r,
			),
			expected: plan.NewProject(
				[]sql.Expression{expression.NewAlias("a", col(0, "r", "a"))},
				r,
			),
		},
		{
			name: "struct field access is named after the field",
			node: plan.NewProject(
				[]sql.Expression{expression.NewUnresolvedAlias(expression.NewGetStructField(col(0, "r", "a"), "x"))},
				r,
			),
			expected: plan.NewProject(
				[]sql.Expression{expression.NewAlias("x", expression.NewGetStructField(col(0, "r", "a"), "x"))},
				r,
			),
		},
		{
			name: "single-element-type generator falls back to positional name",
			node: plan.NewProject(
				[]sql.Expression{expression.NewUnresolvedAlias(expression.NewExplode(col(0, "r", "a"), types.Int64))},
				r,
			),
			expected: plan.NewProject(
				[]sql.Expression{expression.NewAlias("_c0", expression.NewExplode(col(0, "r", "a"), types.Int64))},
				r,
			),
		},
		{
			name: "multi-element-type generator becomes a MultiAlias",
			node: plan.NewProject(
				[]sql.Expression{expression.NewUnresolvedAlias(expression.NewJSONTuple(strCol(0, "r", "a"), []string{"x", "y"}))},
				r,
			),
			expected: plan.NewProject(
				[]sql.Expression{expression.NewMultiAlias(expression.NewJSONTuple(strCol(0, "r", "a"), []string{"x", "y"}), nil)},
				r,
			),
		},
		{
			name: "plain expression gets a positional fallback name",
			node: plan.NewProject(
				[]sql.Expression{expression.NewUnresolvedAlias(expression.NewLiteral(int64(1), types.Int64))},
				r,
			),
			expected: plan.NewProject(
				[]sql.Expression{expression.NewAlias("_c0", expression.NewLiteral(int64(1), types.Int64))},
				r,
			),
		},
		{
			name: "unresolved child is left alone",
			node: plan.NewProject(
				[]sql.Expression{expression.NewUnresolvedAlias(expression.NewUnresolvedColumn("a"))},
				plan.NewUnresolvedRelation(sql.TableIdentifier{Name: "missing"}),
			),
		},
	}

	runTestCases(t, nil, testCases, nil, Rule{Id: resolveAliasesId, Apply: resolveAliases})
}

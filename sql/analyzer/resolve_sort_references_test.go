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
)

// Attribute identity, not just name, drives resolveSortReferences'
// missing-column decision, so these tests route every reference to a and
// b through r's own Output() rather than through the col() test helper,
// which would mint unrelated attribute ids.
func TestResolveSortReferences(t *testing.T) {
	r := table("r", "a", "b")
	out := r.Output()
	colA, colB := out[0], out[1]

	t.Run("order by a column absent from the projection pulls it in and drops it again", func(t *testing.T) {
		node := plan.NewSort(
			[]sql.Expression{expression.NewSortOrder(expression.NewUnresolvedColumn("b"), expression.Ascending)},
			plan.NewProject([]sql.Expression{colA}, r),
		)

		result, err := resolveSortReferences(sql.NewEmptyContext(), nil, node, nil)
		require.NoError(t, err)

		expected := plan.NewProject(
			[]sql.Expression{colA},
			plan.NewSort(
				[]sql.Expression{expression.NewSortOrder(colB, expression.Ascending)},
				plan.NewProject([]sql.Expression{colA, colB}, r),
			),
		)
		assertNodesEqualWithDiff(t, expected, result)
	})

	t.Run("order by a column already projected is left as a plain Sort", func(t *testing.T) {
		node := plan.NewSort(
			[]sql.Expression{expression.NewSortOrder(expression.NewUnresolvedColumn("a"), expression.Ascending)},
			plan.NewProject([]sql.Expression{colA}, r),
		)
		result, err := resolveSortReferences(sql.NewEmptyContext(), nil, node, nil)
		require.NoError(t, err)

		expected := plan.NewSort(
			[]sql.Expression{expression.NewSortOrder(colA, expression.Ascending)},
			plan.NewProject([]sql.Expression{colA}, r),
		)
		assertNodesEqualWithDiff(t, expected, result)
	})

	t.Run("already resolved sort is untouched", func(t *testing.T) {
		node := plan.NewSort(
			[]sql.Expression{expression.NewSortOrder(colA, expression.Ascending)},
			plan.NewProject([]sql.Expression{colA}, r),
		)
		result, err := resolveSortReferences(sql.NewEmptyContext(), nil, node, nil)
		require.NoError(t, err)
		assertNodesEqualWithDiff(t, node, result)
	})
}

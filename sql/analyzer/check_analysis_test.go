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

func TestCheckAnalysis(t *testing.T) {
	r := table("r", "a", "b")

	t.Run("fully resolved plan passes", func(t *testing.T) {
		node := plan.NewProject([]sql.Expression{col(0, "r", "a")}, r)
		require.NoError(t, CheckAnalysis(sql.NewEmptyContext(), node))
	})

	t.Run("missing table is reported by name", func(t *testing.T) {
		node := plan.NewProject(
			[]sql.Expression{expression.NewUnresolvedColumn("a")},
			plan.NewUnresolvedRelation(sql.TableIdentifier{Name: "ghost"}),
		)
		err := CheckAnalysis(sql.NewEmptyContext(), node)
		require.Error(t, err)
		require.True(t, sql.ErrTableNotFound.Is(err))
	})

	t.Run("unresolved column over a resolved relation is reported", func(t *testing.T) {
		node := plan.NewProject([]sql.Expression{expression.NewUnresolvedColumn("z")}, r)
		err := CheckAnalysis(sql.NewEmptyContext(), node)
		require.Error(t, err)
		require.True(t, sql.ErrColumnNotFound.Is(err))
	})

	t.Run("unresolved function call is reported", func(t *testing.T) {
		node := plan.NewProject(
			[]sql.Expression{expression.NewUnresolvedFunction("not_a_real_function", false, col(0, "r", "a"))},
			r,
		)
		err := CheckAnalysis(sql.NewEmptyContext(), node)
		require.Error(t, err)
		require.True(t, sql.ErrFunctionNotFound.Is(err))
	})

	t.Run("a non-grouped, non-aggregated column in an Aggregate's output is misused", func(t *testing.T) {
		node := plan.NewAggregate(
			[]sql.Expression{col(0, "r", "a")},
			[]sql.Expression{col(0, "r", "a"), col(1, "r", "b")},
			r,
		)
		err := CheckAnalysis(sql.NewEmptyContext(), node)
		require.Error(t, err)
		require.True(t, sql.ErrMisusedAlias.Is(err))
	})

	t.Run("an aggregated column alongside its grouping key is fine", func(t *testing.T) {
		node := plan.NewAggregate(
			[]sql.Expression{col(0, "r", "a")},
			[]sql.Expression{col(0, "r", "a"), sumOf(col(1, "r", "b"))},
			r,
		)
		require.NoError(t, CheckAnalysis(sql.NewEmptyContext(), node))
	})
}

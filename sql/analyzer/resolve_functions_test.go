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
	"github.com/skylarkdb/skylark/sql/expression/function"
	"github.com/skylarkdb/skylark/sql/plan"
)

func TestResolveFunctions(t *testing.T) {
	r := table("r", "a", "b")
	a := &Analyzer{Functions: function.NewRegistry()}

	t.Run("plain aggregate call wraps into a Complete AggregateExpression", func(t *testing.T) {
		node := plan.NewProject(
			[]sql.Expression{expression.NewUnresolvedFunction("sum", false, col(0, "r", "a"))},
			r,
		)
		result, err := resolveFunctions(sql.NewEmptyContext(), a, node, nil)
		require.NoError(t, err)

		p := result.(*plan.Project)
		agg, ok := p.Projections[0].(*expression.AggregateExpression)
		require.True(t, ok, "expected an AggregateExpression, got %T", p.Projections[0])
		require.Equal(t, expression.Complete, agg.Mode)
		require.False(t, agg.IsDistinct)
	})

	t.Run("SUM(DISTINCT x) becomes the legacy SumDistinct form", func(t *testing.T) {
		node := plan.NewProject(
			[]sql.Expression{expression.NewUnresolvedFunction("sum", true, col(0, "r", "a"))},
			r,
		)
		result, err := resolveFunctions(sql.NewEmptyContext(), a, node, nil)
		require.NoError(t, err)

		p := result.(*plan.Project)
		_, ok := p.Projections[0].(*expression.LegacySumDistinct)
		require.True(t, ok, "expected a LegacySumDistinct, got %T", p.Projections[0])
	})

	t.Run("MAX(DISTINCT x) drops DISTINCT silently", func(t *testing.T) {
		node := plan.NewProject(
			[]sql.Expression{expression.NewUnresolvedFunction("max", true, col(0, "r", "a"))},
			r,
		)
		result, err := resolveFunctions(sql.NewEmptyContext(), a, node, nil)
		require.NoError(t, err)

		p := result.(*plan.Project)
		agg, ok := p.Projections[0].(*expression.AggregateExpression)
		require.True(t, ok, "expected an AggregateExpression, got %T", p.Projections[0])
		require.False(t, agg.IsDistinct)
	})

	t.Run("AVG(DISTINCT x) has no legacy form and no silent drop, so it is fatal", func(t *testing.T) {
		node := plan.NewProject(
			[]sql.Expression{expression.NewUnresolvedFunction("avg", true, col(0, "r", "a"))},
			r,
		)
		_, err := resolveFunctions(sql.NewEmptyContext(), a, node, nil)
		require.Error(t, err)
		require.True(t, sql.ErrDistinctNotSupported.Is(err))
	})

	t.Run("call with an unresolved child is left alone for a later pass", func(t *testing.T) {
		node := plan.NewProject(
			[]sql.Expression{expression.NewUnresolvedFunction("sum", false, expression.NewUnresolvedColumn("a"))},
			r,
		)
		result, err := resolveFunctions(sql.NewEmptyContext(), a, node, nil)
		require.NoError(t, err)
		assertNodesEqualWithDiff(t, node, result)
	})

	t.Run("unknown function is left unresolved for CheckAnalysis to report", func(t *testing.T) {
		node := plan.NewProject(
			[]sql.Expression{expression.NewUnresolvedFunction("not_a_real_function", false, col(0, "r", "a"))},
			r,
		)
		result, err := resolveFunctions(sql.NewEmptyContext(), a, node, nil)
		require.NoError(t, err)
		assertNodesEqualWithDiff(t, node, result)
	})
}

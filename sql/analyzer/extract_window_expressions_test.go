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

func windowSum(child sql.Expression) *expression.AggregateExpression {
	fn, err := aggregation.NewSum([]sql.Expression{child})
	if err != nil {
		panic(err)
	}
	return expression.NewAggregateExpression(fn, expression.Window, false)
}

// These tests check the shape ExtractWindowExpressions produces
// structurally rather than via a full DebugString diff: the rewrite mints
// fresh "_w{n}" aliases and attribute ids internally, so pinning an exact
// expected tree would be testing incidental naming, not the invariant
// (one Window operator per distinct spec, windowless projections passed
// through, original output attributes restored on top).
func TestExtractWindowExpressions(t *testing.T) {
	r := table("r", "a", "b")
	out := r.Output()
	colA, colB := out[0], out[1]
	spec := expression.NewWindowSpecDefinition([]sql.Expression{colA}, nil, nil)

	t.Run("project with a windowed aggregate produces Project(Window(Project(...)))", func(t *testing.T) {
		node := plan.NewProject(
			[]sql.Expression{colA, expression.NewAlias("w", expression.NewWindowExpression(windowSum(colB), spec))},
			r,
		)

		result, err := extractWindowExpressions(sql.NewEmptyContext(), nil, node, nil)
		require.NoError(t, err)

		top, ok := result.(*plan.Project)
		require.True(t, ok, "expected a restoring Project on top, got %T", result)
		require.Len(t, top.Projections, 2)

		win, ok := top.Child.(*plan.Window)
		require.True(t, ok, "expected a Window operator beneath the restoring Project, got %T", top.Child)
		require.Len(t, win.WindowExpressions, 1)
		require.True(t, win.Spec.Equals(spec))

		below, ok := win.Child.(*plan.Project)
		require.True(t, ok, "expected the window-free Project beneath the Window, got %T", win.Child)
		require.GreaterOrEqual(t, len(below.Projections), 1)
	})

	t.Run("project with no window expression is left alone", func(t *testing.T) {
		node := plan.NewProject([]sql.Expression{colA, colB}, r)
		result, err := extractWindowExpressions(sql.NewEmptyContext(), nil, node, nil)
		require.NoError(t, err)
		assertNodesEqualWithDiff(t, node, result)
	})

	t.Run("two distinct specs in one projection produce two Window operators", func(t *testing.T) {
		spec2 := expression.NewWindowSpecDefinition([]sql.Expression{colB}, nil, nil)
		node := plan.NewProject(
			[]sql.Expression{
				expression.NewAlias("w1", expression.NewWindowExpression(windowSum(colB), spec)),
				expression.NewAlias("w2", expression.NewWindowExpression(windowSum(colA), spec2)),
			},
			r,
		)

		result, err := extractWindowExpressions(sql.NewEmptyContext(), nil, node, nil)
		require.NoError(t, err)

		top, ok := result.(*plan.Project)
		require.True(t, ok)

		outerWin, ok := top.Child.(*plan.Window)
		require.True(t, ok, "expected an outer Window, got %T", top.Child)
		innerWin, ok := outerWin.Child.(*plan.Window)
		require.True(t, ok, "expected a second, nested Window for the second spec, got %T", outerWin.Child)
		require.False(t, outerWin.Spec.Equals(innerWin.Spec))
	})
}

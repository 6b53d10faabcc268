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

// fakeRand stands in for the unexported rand()/uuid() builtins: a
// nondeterministic, no-argument scalar, just enough to exercise
// PullOutNondeterministic without reaching into the function package's
// unexported types.
type fakeRand struct{}

func (fakeRand) Resolved() bool                                        { return true }
func (fakeRand) Type() sql.Type                                        { return types.Float64 }
func (fakeRand) Nullable() bool                                        { return false }
func (fakeRand) Children() []sql.Expression                            { return nil }
func (fakeRand) String() string                                        { return "rand()" }
func (fakeRand) Eval(*sql.Context, sql.Row) (interface{}, error)       { return nil, nil }
func (fakeRand) WithChildren(c ...sql.Expression) (sql.Expression, error) {
	if len(c) != 0 {
		return nil, nil
	}
	return fakeRand{}, nil
}
func (fakeRand) IsNondeterministic() bool { return true }

var _ expression.NondeterministicExpression = fakeRand{}

func TestPullOutNondeterministic(t *testing.T) {
	r := table("r", "a", "b")

	t.Run("ORDER BY rand() lifts the call into a Project below the Sort", func(t *testing.T) {
		node := plan.NewSort(
			[]sql.Expression{expression.NewSortOrder(fakeRand{}, expression.Ascending)},
			r,
		)
		result, err := pullOutNondeterministic(sql.NewEmptyContext(), nil, node, nil)
		require.NoError(t, err)

		top, ok := result.(*plan.Project)
		require.True(t, ok, "expected a restoring Project on top, got %T", result)

		sort, ok := top.Child.(*plan.Sort)
		require.True(t, ok, "expected the Sort beneath the restoring Project, got %T", top.Child)

		below, ok := sort.Child.(*plan.Project)
		require.True(t, ok, "expected a Project lifting rand() beneath the Sort, got %T", sort.Child)
		require.Len(t, below.Projections, 3, "expected the two base columns plus the lifted rand() alias")

		orderChild := sort.Order[0].(*expression.SortOrder).Child
		_, stillInline := orderChild.(fakeRand)
		require.False(t, stillInline, "expected the Sort's order to reference an attribute, not the inline call")
	})

	t.Run("deterministic ordering is untouched", func(t *testing.T) {
		node := plan.NewSort(
			[]sql.Expression{expression.NewSortOrder(col(0, "r", "a"), expression.Ascending)},
			r,
		)
		result, err := pullOutNondeterministic(sql.NewEmptyContext(), nil, node, nil)
		require.NoError(t, err)
		assertNodesEqualWithDiff(t, node, result)
	})

	t.Run("Project is never targeted even with a nondeterministic projection", func(t *testing.T) {
		node := plan.NewProject([]sql.Expression{expression.NewAlias("x", fakeRand{})}, r)
		result, err := pullOutNondeterministic(sql.NewEmptyContext(), nil, node, nil)
		require.NoError(t, err)
		assertNodesEqualWithDiff(t, node, result)
	})
}

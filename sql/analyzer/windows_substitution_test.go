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

func TestWindowsSubstitution(t *testing.T) {
	r := table("r", "a", "b")
	spec := expression.NewWindowSpecDefinition([]sql.Expression{col(0, "r", "a")}, nil, nil)

	testCases := []analyzerFnTestCase{
		{
			name: "named reference bound to its definition",
			node: plan.NewWithWindowDefinition(
				[]plan.WindowDef{{Name: "w", Spec: spec}},
				plan.NewProject(
					[]sql.Expression{expression.NewUnresolvedWindowExpression(col(0, "r", "a"), expression.NewWindowSpecReference("w"))},
					r,
				),
			),
			expected: plan.NewProject(
				[]sql.Expression{expression.NewWindowExpression(col(0, "r", "a"), spec)},
				r,
			),
		},
	}
	runTestCases(t, nil, testCases, nil, Rule{Id: windowsSubstitutionId, Apply: substituteWindows})

	t.Run("missing definition is fatal", func(t *testing.T) {
		node := plan.NewWithWindowDefinition(
			nil,
			plan.NewProject(
				[]sql.Expression{expression.NewUnresolvedWindowExpression(col(0, "r", "a"), expression.NewWindowSpecReference("missing"))},
				r,
			),
		)
		_, err := substituteWindows(sql.NewEmptyContext(), nil, node, nil)
		require.Error(t, err)
		require.True(t, sql.ErrWindowSpecNotDefined.Is(err))
	})
}

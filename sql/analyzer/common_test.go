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
	"fmt"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/require"
	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/skylarkdb/skylark/sql"
	"github.com/skylarkdb/skylark/sql/expression"
	"github.com/skylarkdb/skylark/sql/plan"
	"github.com/skylarkdb/skylark/sql/types"
)

func col(index int, table, name string) *expression.GetField {
	return expression.NewGetFieldWithTable(index, types.Int64, table, name, false)
}

func strCol(index int, table, name string) *expression.GetField {
	return expression.NewGetFieldWithTable(index, types.Text, table, name, true)
}

func lit(n int64) *expression.Literal {
	return expression.NewLiteral(n, types.Int64)
}

func eq(left, right sql.Expression) sql.Expression {
	return expression.NewEquals(left, right)
}

func schema(names ...string) sql.Schema {
	sch := make(sql.Schema, len(names))
	for i, n := range names {
		sch[i] = &sql.Column{Name: n, Type: types.Int64, Nullable: false}
	}
	return sch
}

func table(name string, cols ...string) *plan.ResolvedTable {
	return plan.NewResolvedTable(newMemTable(name, schema(cols...)))
}

// memTable is the minimal sql.Table a ResolvedTable needs; it carries no
// rows because the analyzer never reads through one.
type memTable struct {
	name string
	sch  sql.Schema
}

func newMemTable(name string, sch sql.Schema) *memTable {
	qualified := make(sql.Schema, len(sch))
	for i, c := range sch {
		cp := *c
		cp.Source = name
		qualified[i] = &cp
	}
	return &memTable{name: name, sch: qualified}
}

func (t *memTable) Name() string       { return t.name }
func (t *memTable) Schema() sql.Schema { return t.sch }

var _ sql.Table = (*memTable)(nil)

// analyzerFnTestCase is the fixture shape every rule test in this package
// runs through: apply one rule directly (not the whole pipeline) to node
// and compare against expected.
type analyzerFnTestCase struct {
	name     string
	node     sql.Node
	scope    *Scope
	expected sql.Node
	err      *errors.Kind
}

func runTestCases(t *testing.T, ctx *sql.Context, testCases []analyzerFnTestCase, a *Analyzer, f Rule) {
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			context := ctx
			if context == nil {
				context = sql.NewEmptyContext()
			}
			result, err := f.Apply(context, a, tt.node, tt.scope)
			if tt.err != nil {
				require.Error(t, err)
				require.True(t, tt.err.Is(err), fmt.Sprintf("expected error of kind %v but got %v", tt.err, err))
				return
			}
			require.NoError(t, err)

			expected := tt.expected
			if expected == nil {
				expected = tt.node
			}
			assertNodesEqualWithDiff(t, expected, result)
		})
	}
}

// assertNodesEqualWithDiff compares two plans by their DebugString
// rendering, printing a unified diff on mismatch the way the teacher's
// own analyzer test suite does (the DebugString tree is deliberately
// ExprId-free, so this compares shape and names, not attribute identity).
func assertNodesEqualWithDiff(t *testing.T, expected, actual sql.Node) {
	t.Helper()
	e, a := sql.DebugString(expected), sql.DebugString(actual)
	if e == a {
		return
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(e),
		B:        difflib.SplitLines(a),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  2,
	})
	t.Fatalf("plans do not match; diff:\n%s", diff)
}

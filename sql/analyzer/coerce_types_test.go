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

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/skylarkdb/skylark/sql"
	"github.com/skylarkdb/skylark/sql/expression"
	"github.com/skylarkdb/skylark/sql/plan"
	"github.com/skylarkdb/skylark/sql/types"
)

func TestCoerceTypes(t *testing.T) {
	r := table("r", "a", "b")
	intCol := expression.NewGetFieldWithTable(0, types.Int32, "r", "a", false)
	bigCol := expression.NewGetFieldWithTable(1, types.Int64, "r", "b", false)

	testCases := []analyzerFnTestCase{
		{
			name: "narrower side of a comparison is cast up to the wider numeric type",
			node: plan.NewFilter(eq(intCol, bigCol), r),
			expected: plan.NewFilter(
				eq(expression.NewCast(intCol, types.Int64), bigCol),
				r,
			),
		},
		{
			name: "matching types are left untouched",
			node: plan.NewFilter(eq(bigCol, expression.NewGetFieldWithTable(1, types.Int64, "r", "b2", false)), r),
		},
		{
			name: "decimal literal is coerced by value, not wrapped in a Cast",
			node: plan.NewFilter(eq(expression.NewLiteral(int64(5), types.Int64), expression.NewLiteral(decimal.NewFromInt(1), types.Decimal)), r),
			expected: plan.NewFilter(
				eq(expression.NewLiteral(decimal.NewFromInt(5), types.Decimal), expression.NewLiteral(decimal.NewFromInt(1), types.Decimal)),
				r,
			),
		},
	}

	runTestCases(t, nil, testCases, nil, Rule{Id: coerceTypesId, Apply: coerceTypes})

	t.Run("non-numeric type mismatch is fatal", func(t *testing.T) {
		node := plan.NewFilter(eq(strCol(0, "r", "a"), expression.NewLiteral(true, types.Boolean)), r)
		_, err := coerceTypes(sql.NewEmptyContext(), nil, node, nil)
		require.Error(t, err)
		require.True(t, sql.ErrTypeMismatch.Is(err))
	})
}

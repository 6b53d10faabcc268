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

package plan

import (
	"github.com/skylarkdb/skylark/sql"
	"github.com/skylarkdb/skylark/sql/expression"
)

func exprFromColumn(id sql.ExprId, index int, table string, c *sql.Column) sql.Expression {
	return expression.NewGetFieldWithId(id, index, c.Type, table, c.Name, c.Nullable)
}

// schemaAttributes builds the GetField list for a node's output schema,
// minting fresh ExprIds. Used by leaves that don't otherwise hold onto
// stable ids (LocalRelation).
func schemaAttributes(table string, sch sql.Schema) []sql.Expression {
	out := make([]sql.Expression, len(sch))
	for i, c := range sch {
		out[i] = expression.NewGetFieldWithTable(i, c.Type, table, c.Name, c.Nullable)
	}
	return out
}

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

// Command skylark-analyze is a smoke-test harness for the analyzer, not a
// query engine. Parsing a query string into a plan is out of scope for
// this repository, so this command builds one fixture logical plan by
// hand, resolves it against a small in-memory catalog, and prints the
// plan before and after analysis.
//
// > skylark-analyze
package main

import (
	"context"
	"fmt"

	"github.com/skylarkdb/skylark/memory"
	"github.com/skylarkdb/skylark/sql"
	"github.com/skylarkdb/skylark/sql/analyzer"
	"github.com/skylarkdb/skylark/sql/expression"
	"github.com/skylarkdb/skylark/sql/expression/function"
	"github.com/skylarkdb/skylark/sql/plan"
	"github.com/skylarkdb/skylark/sql/types"
)

var (
	dbName    = "mydb"
	tableName = "orders"
)

func main() {
	ctx := sql.NewContext(context.Background(), sql.WithCurrentDatabase(dbName))

	cat := memory.NewCatalog(createTestDatabase())
	a := analyzer.NewDefault(sql.NewCachingCatalog(cat, 64), function.NewRegistry())

	fixture := exampleQuery()
	fmt.Println("-- before --")
	fmt.Print(sql.DebugString(fixture))

	resolved, err := a.Analyze(ctx, fixture)
	if err != nil {
		panic(err)
	}

	fmt.Println("-- after --")
	fmt.Print(sql.DebugString(resolved))
}

func createTestDatabase() *memory.Database {
	db := memory.NewDatabase(dbName)
	db.AddTable(memory.NewTable(tableName, sql.Schema{
		{Name: "id", Type: types.Int64, Nullable: false},
		{Name: "customer", Type: types.Text, Nullable: false},
		{Name: "amount", Type: types.Decimal, Nullable: false},
	}))
	return db
}

// exampleQuery builds the unresolved plan for:
//
//	SELECT customer, COUNT(*) AS num_orders
//	FROM orders
//	WHERE amount > 100
//	GROUP BY customer
//	ORDER BY num_orders DESC
func exampleQuery() sql.Node {
	relation := plan.NewUnresolvedRelation(sql.TableIdentifier{Name: tableName})

	filter := plan.NewFilter(
		expression.NewGreaterThan(
			expression.NewUnresolvedColumn("amount"),
			expression.NewLiteral(int64(100), types.Int64),
		),
		relation,
	)

	aggregate := plan.NewAggregate(
		[]sql.Expression{expression.NewUnresolvedColumn("customer")},
		[]sql.Expression{
			expression.NewUnresolvedColumn("customer"),
			expression.NewAlias("num_orders", expression.NewUnresolvedFunction("count", false, expression.NewStar())),
		},
		filter,
	)

	return plan.NewSort(
		[]sql.Expression{
			expression.NewSortOrder(expression.NewUnresolvedColumn("num_orders"), expression.Descending),
		},
		aggregate,
	)
}

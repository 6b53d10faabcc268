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

package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skylarkdb/skylark/memory"
	"github.com/skylarkdb/skylark/sql"
	"github.com/skylarkdb/skylark/sql/types"
)

func peopleSchema() sql.Schema {
	return sql.Schema{
		{Name: "id", Type: types.Int64, Nullable: false},
		{Name: "name", Type: types.Text, Nullable: true},
	}
}

func TestDatabase_GetTableInsensitive(t *testing.T) {
	db := memory.NewDatabase("mydb")
	db.AddTable(memory.NewTable("people", peopleSchema()))

	ctx := sql.NewEmptyContext()

	tbl, ok, err := db.GetTableInsensitive(ctx, "PEOPLE")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "people", tbl.Name())
	require.Len(t, tbl.Schema(), 2)

	_, ok, err = db.GetTableInsensitive(ctx, "orders")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestTable_SchemaIsQualified(t *testing.T) {
	tbl := memory.NewTable("people", peopleSchema())
	for _, c := range tbl.Schema() {
		require.Equal(t, "people", c.Source)
	}
}

func TestCatalog_LookupRelation(t *testing.T) {
	db := memory.NewDatabase("mydb")
	db.AddTable(memory.NewTable("people", peopleSchema()))
	cat := memory.NewCatalog(db)

	ctx := sql.NewContext(context.Background(), sql.WithCurrentDatabase("mydb"))

	n, err := cat.LookupRelation(ctx, sql.TableIdentifier{Name: "people"})
	require.NoError(t, err)
	require.True(t, n.Resolved())
	require.Len(t, n.Schema(), 2)

	_, err = cat.LookupRelation(ctx, sql.TableIdentifier{Name: "missing"})
	require.Error(t, err)
}

func TestCatalog_DatabaseNotFound(t *testing.T) {
	cat := memory.NewCatalog()
	_, err := cat.Database("nope")
	require.Error(t, err)
}

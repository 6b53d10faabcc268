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
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skylarkdb/skylark/memory"
	"github.com/skylarkdb/skylark/sql"
	"github.com/skylarkdb/skylark/sql/plan"
)

func newTestCatalog() *memory.Catalog {
	db := memory.NewDatabase("mydb")
	db.AddTable(memory.NewTable("r", schema("a", "b")))
	return memory.NewCatalog(db)
}

func TestResolveRelations(t *testing.T) {
	catalog := newTestCatalog()
	a := &Analyzer{Catalog: catalog}
	ctx := sql.NewContext(context.Background(), sql.WithCurrentDatabase("mydb"))

	t.Run("resolves against the catalog", func(t *testing.T) {
		node := plan.NewUnresolvedRelation(sql.TableIdentifier{Name: "r"})
		result, err := resolveRelations(ctx, a, node, nil)
		require.NoError(t, err)
		rt, ok := result.(*plan.ResolvedTable)
		require.True(t, ok)
		require.Equal(t, "r", rt.Table().Name())
	})

	t.Run("alias renames the resolved table", func(t *testing.T) {
		node := plan.NewUnresolvedRelationWithAlias(sql.TableIdentifier{Name: "r"}, "x")
		result, err := resolveRelations(ctx, a, node, nil)
		require.NoError(t, err)
		out := plan.ChildOutput(result)
		require.Len(t, out, 2)
		named := out[0].(sql.NamedExpression)
		require.Equal(t, "x", named.Table())
	})

	t.Run("missing table is fatal", func(t *testing.T) {
		node := plan.NewUnresolvedRelation(sql.TableIdentifier{Name: "nope"})
		_, err := resolveRelations(ctx, a, node, nil)
		require.Error(t, err)
		require.True(t, sql.ErrTableNotFound.Is(err))
	})

	t.Run("insert target sheds its Subquery wrapper", func(t *testing.T) {
		target := plan.NewUnresolvedRelationWithAlias(sql.TableIdentifier{Name: "r"}, "x")
		ins := plan.NewInsertIntoTable(target, table("src", "a", "b"), nil)
		result, err := resolveRelations(ctx, a, ins, nil)
		require.NoError(t, err)
		rins := result.(*plan.InsertIntoTable)
		_, isSubquery := rins.Destination.(*plan.Subquery)
		require.False(t, isSubquery)
	})
}

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
	"fmt"

	"github.com/skylarkdb/skylark/sql"
)

// ResolvedTable is a relation that has been bound to a catalog Table.
// ExprIds for its output attributes are minted once at construction and
// held for the lifetime of the node; NewInstance re-mints them, giving
// ResolvedTable its RelationLeaf capability for self-join deconfliction.
type ResolvedTable struct {
	table   sql.Table
	alias   string
	attrIds []sql.ExprId
}

func NewResolvedTable(table sql.Table) *ResolvedTable {
	return newResolvedTable(table, "", freshIds(len(table.Schema())))
}

func newResolvedTable(table sql.Table, alias string, ids []sql.ExprId) *ResolvedTable {
	return &ResolvedTable{table: table, alias: alias, attrIds: ids}
}

func freshIds(n int) []sql.ExprId {
	ids := make([]sql.ExprId, n)
	for i := range ids {
		ids[i] = sql.NewExprId()
	}
	return ids
}

func (t *ResolvedTable) Table() sql.Table { return t.table }

func (t *ResolvedTable) Resolved() bool        { return true }
func (t *ResolvedTable) Children() []sql.Node  { return nil }
func (t *ResolvedTable) String() string {
	if t.alias != "" {
		return fmt.Sprintf("Table(%s as %s)", t.table.Name(), t.alias)
	}
	return fmt.Sprintf("Table(%s)", t.table.Name())
}

func (t *ResolvedTable) name() string {
	if t.alias != "" {
		return t.alias
	}
	return t.table.Name()
}

func (t *ResolvedTable) Schema() sql.Schema {
	src := t.table.Schema()
	out := make(sql.Schema, len(src))
	for i, c := range src {
		cp := *c
		cp.Source = t.name()
		out[i] = &cp
	}
	return out
}

// Output implements OutputNode: the GetField expressions this table
// produces, built from the schema and the node's held ExprIds -- this is
// how a referring rule resolves `UnresolvedAttribute` against the table
// without the table minting a fresh identity on every lookup.
func (t *ResolvedTable) Output() []sql.Expression {
	sch := t.table.Schema()
	out := make([]sql.Expression, len(sch))
	for i, c := range sch {
		out[i] = exprFromColumn(t.attrIds[i], i, t.name(), c)
	}
	return out
}

func (t *ResolvedTable) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("plan.ResolvedTable: expected 0 children, got %d", len(children))
	}
	return t, nil
}

// WithAlias returns a copy of t under a table alias, same ExprIds.
func (t *ResolvedTable) WithAlias(alias string) *ResolvedTable {
	return newResolvedTable(t.table, alias, t.attrIds)
}

// NewInstance implements sql.RelationLeaf: a structurally identical copy
// with every output attribute re-minted under a fresh ExprId, used to
// deconflict a self-join.
func (t *ResolvedTable) NewInstance() (sql.Node, error) {
	return newResolvedTable(t.table, t.alias, freshIds(len(t.attrIds))), nil
}

var (
	_ sql.RelationLeaf = (*ResolvedTable)(nil)
	_ OutputNode       = (*ResolvedTable)(nil)
)

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

// LocalRelation is an already-resolved, in-memory row set (VALUES lists,
// CTE materialization of a constant, the target of a correlated subquery
// unnest). It is always resolved and carries its own schema, with no
// catalog involvement.
type LocalRelation struct {
	name    string
	sch     sql.Schema
	rows    []sql.Row
	attrIds []sql.ExprId
}

func NewLocalRelation(name string, sch sql.Schema, rows []sql.Row) *LocalRelation {
	return &LocalRelation{name: name, sch: sch, rows: rows, attrIds: freshIds(len(sch))}
}

func (l *LocalRelation) Rows() []sql.Row { return l.rows }

func (l *LocalRelation) Resolved() bool       { return true }
func (l *LocalRelation) Children() []sql.Node { return nil }
func (l *LocalRelation) Schema() sql.Schema   { return l.sch }
func (l *LocalRelation) String() string       { return fmt.Sprintf("LocalRelation(%s)", l.name) }

// Output implements OutputNode.
func (l *LocalRelation) Output() []sql.Expression {
	out := make([]sql.Expression, len(l.sch))
	for i, c := range l.sch {
		out[i] = exprFromColumn(l.attrIds[i], i, l.name, c)
	}
	return out
}

func (l *LocalRelation) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("plan.LocalRelation: expected 0 children, got %d", len(children))
	}
	return l, nil
}

// NewInstance implements sql.RelationLeaf: the self-join deconfliction
// widening the spec's Open Question suggests, extended to LocalRelation
// as well as the catalog-backed leaf.
func (l *LocalRelation) NewInstance() (sql.Node, error) {
	return &LocalRelation{name: l.name, sch: l.sch, rows: l.rows, attrIds: freshIds(len(l.sch))}, nil
}

var (
	_ sql.RelationLeaf = (*LocalRelation)(nil)
	_ OutputNode       = (*LocalRelation)(nil)
)

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

// InsertIntoTable writes Source's rows into Destination. ResolveRelations
// treats an unresolved Destination specially: resolve it first, then
// strip any top-level Subquery wrapper the resolution produced, since an
// insert target is never addressed through an alias.
type InsertIntoTable struct {
	Destination sql.Node
	Source      sql.Node
	Columns     []string
}

func NewInsertIntoTable(destination, source sql.Node, columns []string) *InsertIntoTable {
	return &InsertIntoTable{Destination: destination, Source: source, Columns: columns}
}

func (i *InsertIntoTable) Children() []sql.Node { return []sql.Node{i.Destination, i.Source} }
func (i *InsertIntoTable) Resolved() bool       { return i.Destination.Resolved() && i.Source.Resolved() }
func (i *InsertIntoTable) Schema() sql.Schema   { return i.Destination.Schema() }
func (i *InsertIntoTable) String() string {
	return fmt.Sprintf("InsertIntoTable(%s, %s)", i.Destination, i.Source)
}

func (i *InsertIntoTable) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("plan.InsertIntoTable: expected 2 children, got %d", len(children))
	}
	return NewInsertIntoTable(children[0], children[1], i.Columns), nil
}

// WithDestination returns a copy of i with a new Destination, used by
// ResolveRelations to splice in the resolved (and Subquery-unwrapped)
// target without touching Source.
func (i *InsertIntoTable) WithDestination(dest sql.Node) *InsertIntoTable {
	return NewInsertIntoTable(dest, i.Source, i.Columns)
}

// StripTopSubquery unwraps n if it is a *Subquery, returning its child;
// otherwise n is returned unchanged. ResolveRelations uses this on an
// InsertIntoTable's freshly resolved Destination, since a table being
// inserted into is never addressed by its resolution alias.
func StripTopSubquery(n sql.Node) sql.Node {
	if sq, ok := n.(*Subquery); ok {
		return sq.Child
	}
	return n
}

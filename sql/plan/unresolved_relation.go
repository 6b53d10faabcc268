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

// UnresolvedRelation is a table reference as written in the query, before
// ResolveRelations (or CTESubstitution) binds it to a schema or a CTE
// plan. Alias is the `AS x` the parser attached, if any.
type UnresolvedRelation struct {
	Ident sql.TableIdentifier
	Alias string
}

func NewUnresolvedRelation(ident sql.TableIdentifier) *UnresolvedRelation {
	return &UnresolvedRelation{Ident: ident}
}

func NewUnresolvedRelationWithAlias(ident sql.TableIdentifier, alias string) *UnresolvedRelation {
	return &UnresolvedRelation{Ident: ident, Alias: alias}
}

func (r *UnresolvedRelation) Resolved() bool       { return false }
func (r *UnresolvedRelation) unresolved()          {}
func (r *UnresolvedRelation) Children() []sql.Node { return nil }
func (r *UnresolvedRelation) Schema() sql.Schema   { return nil }
func (r *UnresolvedRelation) String() string {
	if r.Alias == "" {
		return fmt.Sprintf("UnresolvedRelation(%s)", qualifiedName(r.Ident))
	}
	return fmt.Sprintf("UnresolvedRelation(%s as %s)", qualifiedName(r.Ident), r.Alias)
}

func qualifiedName(ident sql.TableIdentifier) string {
	if ident.Database == "" {
		return ident.Name
	}
	return ident.Database + "." + ident.Name
}

func (r *UnresolvedRelation) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("plan.UnresolvedRelation: expected 0 children, got %d", len(children))
	}
	return r, nil
}

var _ sql.UnresolvedNode = (*UnresolvedRelation)(nil)

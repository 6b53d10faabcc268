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
	"github.com/skylarkdb/skylark/sql"
	"github.com/skylarkdb/skylark/sql/plan"
	"github.com/skylarkdb/skylark/sql/transform"
)

// resolveRelations is ResolveRelations: it binds every *plan.UnresolvedRelation
// to a catalog table (defaulting an unqualified name to the session's
// current database), applying the parser-attached alias either by
// renaming the ResolvedTable directly or, for a relation the catalog
// returns as something richer than a single table (a view's subplan, say),
// by wrapping it in a Subquery so the alias still governs name resolution.
func resolveRelations(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, error) {
	result, _, err := transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		rel, ok := node.(*plan.UnresolvedRelation)
		if !ok {
			return node, transform.SameTree, nil
		}

		ident := rel.Ident
		if ident.Database == "" {
			ident.Database = ctx.Session.CurrentDatabase
		}

		resolved, err := a.Catalog.LookupRelation(ctx, ident)
		if err != nil {
			return nil, transform.SameTree, err
		}

		if rel.Alias != "" {
			if t, ok := resolved.(*plan.ResolvedTable); ok {
				resolved = t.WithAlias(rel.Alias)
			} else {
				resolved = plan.NewSubquery(rel.Alias, resolved)
			}
		}
		return resolved, transform.NewTree, nil
	})
	if err != nil {
		return nil, err
	}

	// An insert target is never addressed through its resolution alias;
	// strip any Subquery wrapper the generic resolution above produced.
	if ins, ok := result.(*plan.InsertIntoTable); ok {
		stripped := plan.StripTopSubquery(ins.Destination)
		if stripped != ins.Destination {
			result = ins.WithDestination(stripped)
		}
	}
	return result, nil
}

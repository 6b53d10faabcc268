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
	"strings"

	"github.com/skylarkdb/skylark/sql"
	"github.com/skylarkdb/skylark/sql/plan"
	"github.com/skylarkdb/skylark/sql/transform"
)

// substituteCTE is CTESubstitution: it removes every *plan.With, replacing
// references to its CTEs with the CTE's own plan wrapped in a Subquery
// carrying the reference's name (or alias). A CTE may reference an
// earlier sibling CTE, so substitution runs over each CTE body with the
// set of names bound so far, then over the With's child with the
// complete set.
func substituteCTE(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, error) {
	result, _, err := transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		with, ok := node.(*plan.With)
		if !ok {
			return node, transform.SameTree, nil
		}

		ctes := make(map[string]sql.Node, len(with.CTEs))
		for _, cte := range with.CTEs {
			body, _, err := substituteCTERefs(cte.Plan, ctes)
			if err != nil {
				return nil, transform.SameTree, err
			}
			ctes[strings.ToLower(cte.Name)] = body
		}

		child, _, err := substituteCTERefs(with.Child, ctes)
		if err != nil {
			return nil, transform.SameTree, err
		}
		return child, transform.NewTree, nil
	})
	return result, err
}

func substituteCTERefs(n sql.Node, ctes map[string]sql.Node) (sql.Node, transform.TreeIdentity, error) {
	return transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		rel, ok := node.(*plan.UnresolvedRelation)
		if !ok {
			return node, transform.SameTree, nil
		}

		body, ok := ctes[strings.ToLower(rel.Ident.Name)]
		if !ok {
			return node, transform.SameTree, nil
		}

		alias := rel.Alias
		if alias == "" {
			alias = rel.Ident.Name
		}
		return plan.NewSubquery(alias, body), transform.NewTree, nil
	})
}

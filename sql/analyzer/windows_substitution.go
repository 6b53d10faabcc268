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
	"fmt"

	"github.com/skylarkdb/skylark/sql"
	"github.com/skylarkdb/skylark/sql/expression"
	"github.com/skylarkdb/skylark/sql/plan"
	"github.com/skylarkdb/skylark/sql/transform"
)

// substituteWindows is WindowsSubstitution: it removes every
// *plan.WithWindowDefinition, binding every *expression.UnresolvedWindowExpression
// beneath it whose name matches a definition into a concrete
// *expression.WindowExpression, in the same Substitution batch
// CTESubstitution runs in and for the same reason -- the binding has to
// happen before name/attribute resolution can see the window's
// PARTITION BY/ORDER BY expressions.
func substituteWindows(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, error) {
	result, _, err := transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		wd, ok := node.(*plan.WithWindowDefinition)
		if !ok {
			return node, transform.SameTree, nil
		}

		defs := make(map[string]*expression.WindowSpecDefinition, len(wd.Defs))
		for _, d := range wd.Defs {
			spec, ok := d.Spec.(*expression.WindowSpecDefinition)
			if !ok {
				return nil, transform.SameTree, fmt.Errorf("analyzer: window definition %q is not a window spec", d.Name)
			}
			defs[d.Name] = spec
		}

		child, _, err := transform.NodeExprs(wd.Child, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
			uw, ok := e.(*expression.UnresolvedWindowExpression)
			if !ok {
				return e, transform.SameTree, nil
			}
			spec, ok := defs[uw.WindowDef.Name]
			if !ok {
				return nil, transform.SameTree, sql.ErrWindowSpecNotDefined.New(uw.WindowDef.Name)
			}
			return expression.NewWindowExpression(uw.Child, spec), transform.NewTree, nil
		})
		if err != nil {
			return nil, transform.SameTree, err
		}
		return child, transform.NewTree, nil
	})
	return result, err
}

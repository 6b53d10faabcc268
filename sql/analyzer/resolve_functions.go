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
	"github.com/skylarkdb/skylark/sql/expression"
	"github.com/skylarkdb/skylark/sql/expression/function"
	"github.com/skylarkdb/skylark/sql/transform"
)

// resolveFunctions is ResolveFunctions: dispatch every UnresolvedFunction
// with resolved children through the function registry, then decide, from
// the returned kind and isDistinct, whether to wrap it as a Complete-mode
// AggregateExpression, swap in a legacy distinct form, drop DISTINCT
// silently, or fail outright.
func resolveFunctions(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, error) {
	result, _, err := transform.NodeExprs(n, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		uf, ok := e.(*expression.UnresolvedFunction)
		if !ok {
			return e, transform.SameTree, nil
		}
		if !childrenResolved(uf.Children()) {
			return e, transform.SameTree, nil
		}
		return resolveFunction(a, uf)
	})
	return result, err
}

func childrenResolved(children []sql.Expression) bool {
	for _, c := range children {
		if !c.Resolved() {
			return false
		}
	}
	return true
}

func resolveFunction(a *Analyzer, uf *expression.UnresolvedFunction) (sql.Expression, transform.TreeIdentity, error) {
	resolved, found, err := a.Functions.LookupFunction(uf.Name, uf.Children())
	if err != nil {
		return nil, transform.SameTree, err
	}
	if !found {
		// Left unresolved; CheckAnalysis reports the final diagnostic.
		return uf, transform.SameTree, nil
	}

	fn, ok := resolved.(expression.AggregateFunction)
	if !ok {
		return resolved, transform.NewTree, nil
	}

	if !uf.IsDistinct {
		return expression.NewAggregateExpression(fn, expression.Complete, false), transform.NewTree, nil
	}

	if legacy, ok, err := function.LegacyDistinctForm(uf.Name, uf.Children()); err != nil {
		return nil, transform.SameTree, err
	} else if ok {
		return legacy, transform.NewTree, nil
	}

	if function.DropsDistinctSilently(uf.Name) {
		return expression.NewAggregateExpression(fn, expression.Complete, false), transform.NewTree, nil
	}

	return nil, transform.SameTree, sql.ErrDistinctNotSupported.New(uf.Name)
}

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

// Package function is the builtin FunctionRegistry ResolveFunctions
// dispatches into. It is populated with a handful of concrete scalar and
// aggregate functions so the registry is exercised rather than stubbed;
// an embedder is free to register more via Registry.Register.
package function

import (
	"strings"

	"github.com/skylarkdb/skylark/sql"
	"github.com/skylarkdb/skylark/sql/expression"
	"github.com/skylarkdb/skylark/sql/expression/function/aggregation"
)

// Builder constructs an Expression (scalar) or AggregateFunction from
// already-resolved argument expressions.
type Builder func(args []sql.Expression) (sql.Expression, error)

// Registry is the default, in-memory FunctionRegistry implementation.
type Registry struct {
	scalars    map[string]Builder
	aggregates map[string]func(args []sql.Expression) (expression.AggregateFunction, error)
}

func NewRegistry() *Registry {
	r := &Registry{
		scalars:    map[string]Builder{},
		aggregates: map[string]func(args []sql.Expression) (expression.AggregateFunction, error){},
	}
	r.registerDefaults()
	return r
}

func (r *Registry) Register(name string, b Builder) {
	r.scalars[strings.ToLower(name)] = b
}

func (r *Registry) RegisterAggregate(name string, b func(args []sql.Expression) (expression.AggregateFunction, error)) {
	r.aggregates[strings.ToLower(name)] = b
}

// LookupFunction implements sql.FunctionRegistry. It is the one place
// aggregate-vs-scalar dispatch happens: an aggregate builder's result
// implements expression.AggregateFunction, and ResolveFunctions is the one
// that decides, from isDistinct and the concrete name, whether to wrap it
// in expression.AggregateExpression, swap in a legacy distinct form, drop
// DISTINCT silently, or fail -- see LegacyDistinctForm and
// DropsDistinctSilently below.
func (r *Registry) LookupFunction(name string, children []sql.Expression) (sql.Expression, bool, error) {
	key := strings.ToLower(name)

	if agg, ok := r.aggregates[key]; ok {
		fn, err := agg(children)
		if err != nil {
			return nil, true, err
		}
		return fn, true, nil
	}

	if b, ok := r.scalars[key]; ok {
		e, err := b(children)
		if err != nil {
			return nil, true, err
		}
		return e, true, nil
	}

	return nil, false, nil
}

// legacyDistinctAggregates holds the handful of pre-AggregateFunction
// aggregates the spec calls out: SUM(DISTINCT x) and COUNT(DISTINCT x, ...)
// are returned as-is by ResolveFunctions rather than wrapped, because
// their DISTINCT-ness is baked into the node rather than expressed via
// AggregateExpression.
var legacyDistinctAggregates = map[string]func([]sql.Expression) (sql.Expression, error){
	"sum": func(args []sql.Expression) (sql.Expression, error) {
		return expression.NewLegacySumDistinct(args[0]), nil
	},
	"count": func(args []sql.Expression) (sql.Expression, error) {
		return expression.NewLegacyCountDistinct(args...), nil
	},
}

// silentlyDropsDistinct holds the aggregate names for which DISTINCT is
// mathematically inert (MAX/MIN of a multiset equals MAX/MIN of its
// distinct values), so ResolveFunctions drops the keyword rather than
// failing or special-casing the node.
var silentlyDropsDistinct = map[string]bool{"max": true, "min": true}

// LegacyDistinctForm builds the legacy SumDistinct/CountDistinct form for
// name if one exists, reporting ok=false otherwise.
func LegacyDistinctForm(name string, args []sql.Expression) (sql.Expression, bool, error) {
	build, ok := legacyDistinctAggregates[strings.ToLower(name)]
	if !ok {
		return nil, false, nil
	}
	e, err := build(args)
	return e, true, err
}

// DropsDistinctSilently reports whether DISTINCT on name is a no-op.
func DropsDistinctSilently(name string) bool {
	return silentlyDropsDistinct[strings.ToLower(name)]
}

func (r *Registry) registerDefaults() {
	registerRegexpFunctions(r)
	registerDateFunctions(r)
	registerJSONFunctions(r)
	registerMathFunctions(r)
	registerNondeterministicFunctions(r)

	r.RegisterAggregate("sum", aggregation.NewSum)
	r.RegisterAggregate("count", aggregation.NewCount)
	r.RegisterAggregate("avg", aggregation.NewAvg)
	r.RegisterAggregate("min", aggregation.NewMin)
	r.RegisterAggregate("max", aggregation.NewMax)
}

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

// Package analyzer drives the fixed-point rule executor described in
// spec §2: a Substitution batch, a Resolution batch, a Nondeterministic
// batch, then CheckAnalysis and EliminateSubQueries.
package analyzer

import (
	opentracing "github.com/opentracing/opentracing-go"

	"github.com/skylarkdb/skylark/sql"
	"github.com/skylarkdb/skylark/sql/transform"
)

// Analyzer is the public entry point: Analyze(plan) -> plan. It is built
// once per embedding process (or per tenant, since MaxIterations is a
// field rather than a global) and reused across concurrent Analyze calls;
// nothing on it is mutated during analysis.
type Analyzer struct {
	Catalog   sql.Catalog
	Functions sql.FunctionRegistry

	// MaxIterations bounds every FixedPoint batch; 0 means the default of
	// 100 (spec §5).
	MaxIterations int
	// Debug gates a Trace-level "entering batch" log line per batch; no
	// per-rule timing or plan diffs are logged.
	Debug bool

	// ExtendedResolutionRules is the injection point spec §6 calls out:
	// rules appended after the built-in Resolution batch rules, run at
	// the same fixed point.
	ExtendedResolutionRules []Rule
	// PostAnalyzeRules run once, after Resolution and Nondeterministic
	// but before CheckAnalysis -- the Builder-pattern
	// AddPostAnalyzeRule extension point.
	PostAnalyzeRules []Rule

	excluded RuleSelector
}

// NewDefault builds an Analyzer wired with every built-in rule against
// the given catalog and function registry.
func NewDefault(catalog sql.Catalog, functions sql.FunctionRegistry) *Analyzer {
	return &Analyzer{Catalog: catalog, Functions: functions, MaxIterations: 100}
}

func (a *Analyzer) maxIterations() int {
	if a.MaxIterations <= 0 {
		return 100
	}
	return a.MaxIterations
}

func (a *Analyzer) selector() RuleSelector {
	if a.excluded != nil {
		return a.excluded
	}
	return AllRules
}

// AddPreValidationRule appends r to the Resolution batch, after every
// built-in resolution rule, run at the same fixed point as the rest of
// the batch. Returns a for chaining (the teacher's own Builder style).
func (a *Analyzer) AddPreValidationRule(r Rule) *Analyzer {
	a.ExtendedResolutionRules = append(a.ExtendedResolutionRules, r)
	return a
}

// AddPostAnalyzeRule appends r to a once-only batch run after Resolution
// and Nondeterministic but before CheckAnalysis.
func (a *Analyzer) AddPostAnalyzeRule(r Rule) *Analyzer {
	a.PostAnalyzeRules = append(a.PostAnalyzeRules, r)
	return a
}

// RemoveDefaultRule excludes id from every batch it would otherwise run
// in, for an embedder that needs to override one built-in step.
func (a *Analyzer) RemoveDefaultRule(id RuleId) *Analyzer {
	if excl, ok := a.excluded.(excludingRules); ok {
		excl[id] = true
		return a
	}
	a.excluded = NewExcludingSelector(id)
	return a
}

// defaultBatches builds the three batches spec §2 describes, plus the
// optional post-analyze batch, fresh on every Analyze call so
// ExtendedResolutionRules/PostAnalyzeRules additions since the last call
// take effect.
func (a *Analyzer) defaultBatches() []*Batch {
	resolutionRules := []Rule{
		{Id: resolveRelationsId, Apply: resolveRelations},
		{Id: resolveReferencesId, Apply: resolveReferences},
		{Id: resolveGroupingAnalyticsId, Apply: resolveGroupingAnalytics},
		{Id: resolveSortReferencesId, Apply: resolveSortReferences},
		{Id: resolveGenerateId, Apply: resolveGenerate},
		{Id: resolveFunctionsId, Apply: resolveFunctions},
		{Id: resolveAliasesId, Apply: resolveAliases},
		{Id: extractWindowExpressionsId, Apply: extractWindowExpressions},
		{Id: globalAggregatesId, Apply: globalAggregates},
		{Id: unresolvedHavingClauseAttributesId, Apply: resolveHavingClauseAttributes},
		{Id: coerceTypesId, Apply: coerceTypes},
	}
	resolutionRules = append(resolutionRules, a.ExtendedResolutionRules...)

	batches := []*Batch{
		{
			Name: "substitution",
			Rules: []Rule{
				{Id: trackProcessId, Apply: trackProcess},
				{Id: cteSubstitutionId, Apply: substituteCTE},
				{Id: windowsSubstitutionId, Apply: substituteWindows},
			},
		},
		{Name: "resolution", Rules: resolutionRules},
		{
			Name:       "nondeterministic",
			Iterations: 1,
			Rules: []Rule{
				{Id: pullOutNondeterministicId, Apply: pullOutNondeterministic},
			},
		},
	}

	if len(a.PostAnalyzeRules) > 0 {
		batches = append(batches, &Batch{Name: "post-analyze", Iterations: 1, Rules: a.PostAnalyzeRules})
	}

	return batches
}

// Analyze is the public API the whole package exists to expose: it runs
// the batch pipeline, then CheckAnalysis, then EliminateSubQueries,
// against n with no enclosing scope (the top level of a query).
func (a *Analyzer) Analyze(ctx *sql.Context, n sql.Node) (sql.Node, error) {
	return a.analyzeWithScope(ctx, n, nil)
}

// analyzeWithScope is what a subquery resolution rule calls recursively,
// threading the enclosing Scope chain (spec §4.3's correlated references)
// through instead of starting a fresh top level.
func (a *Analyzer) analyzeWithScope(ctx *sql.Context, n sql.Node, scope *Scope) (sql.Node, error) {
	span, spanCtx := opentracing.StartSpanFromContext(ctx.Context, "analyzer.analyze")
	span.SetTag("query_id", ctx.QueryID.String())
	defer span.Finish()
	traced := ctx.WithTraceContext(spanCtx)

	sel := a.selector()
	cur := n
	for _, b := range a.defaultBatches() {
		batchSpan, _ := opentracing.StartSpanFromContext(spanCtx, "analyzer.batch")
		batchSpan.SetTag("batch", b.Name)
		if a.Debug {
			traced.Log.WithField("batch", b.Name).Trace("entering batch")
		}
		next, err := b.Eval(traced, a, cur, scope, sel)
		batchSpan.Finish()
		if err != nil {
			return nil, err
		}
		cur = next
	}

	if err := CheckAnalysis(traced, cur); err != nil {
		return nil, err
	}

	final, _, err := transform.Node(cur, eliminateSubqueriesFunc)
	if err != nil {
		return nil, err
	}
	return final, nil
}

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

import "github.com/skylarkdb/skylark/sql"

// RuleId names one of the rules wired into the default batches, stable
// across releases so a caller can Remove/reorder a specific rule without
// depending on its position in the slice.
type RuleId int

const (
	cteSubstitutionId RuleId = iota
	windowsSubstitutionId
	resolveRelationsId
	resolveReferencesId
	resolveGroupingAnalyticsId
	resolveSortReferencesId
	resolveGenerateId
	resolveFunctionsId
	resolveAliasesId
	extractWindowExpressionsId
	globalAggregatesId
	unresolvedHavingClauseAttributesId
	coerceTypesId
	pullOutNondeterministicId
	trackProcessId
	validateResolvedId
	validateAggregationsId
	validateGroupingAnalyticsId
	eliminateSubqueriesId
)

func (id RuleId) String() string {
	if n, ok := ruleIdNames[id]; ok {
		return n
	}
	return "unknown"
}

var ruleIdNames = map[RuleId]string{
	cteSubstitutionId:                  "cte_substitution",
	windowsSubstitutionId:               "windows_substitution",
	resolveRelationsId:                  "resolve_relations",
	resolveReferencesId:                 "resolve_references",
	resolveGroupingAnalyticsId:          "resolve_grouping_analytics",
	resolveSortReferencesId:             "resolve_sort_references",
	resolveGenerateId:                   "resolve_generate",
	resolveFunctionsId:                  "resolve_functions",
	resolveAliasesId:                    "resolve_aliases",
	extractWindowExpressionsId:          "extract_window_expressions",
	globalAggregatesId:                  "global_aggregates",
	unresolvedHavingClauseAttributesId:  "unresolved_having_clause_attributes",
	coerceTypesId:                       "coerce_types",
	pullOutNondeterministicId:           "pull_out_nondeterministic",
	trackProcessId:                      "track_process",
	validateResolvedId:                  "validate_resolved",
	validateAggregationsId:              "validate_aggregations",
	validateGroupingAnalyticsId:         "validate_grouping_analytics",
	eliminateSubqueriesId:               "eliminate_subqueries",
}

// RuleFunc is the body of a Rule: given the plan produced so far (n) and
// the scope it lives in, return a (possibly) rewritten plan. Returning n
// itself unchanged is always safe; a rule need not track TreeIdentity
// itself; Batch detects whether anything changed by comparing the
// returned plan's sql.DebugString rendering against the one it went in
// with.
type RuleFunc func(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, error)

// Rule is one named, independently toggleable step of the analyzer.
type Rule struct {
	Id    RuleId
	Apply RuleFunc
}

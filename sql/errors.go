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

package sql

import (
	errors "gopkg.in/src-d/go-errors.v1"
)

// AnalysisException is the hard-failure error kind every fatal analyzer
// rule returns. It carries a user-actionable message and is distinguished
// from a generic error by callers via errors.Kind.Is, matching the
// teacher's own sql.Err* / *errors.Kind convention.
var (
	ErrTableNotFound = errors.NewKind("table not found: %s")

	ErrWindowSpecNotDefined = errors.NewKind("window specification %s is not defined")

	ErrMisusedAlias = errors.NewKind("column %q could not be found in any table in scope")

	ErrDistinctNotSupported = errors.NewKind("%s does not support DISTINCT keyword")

	ErrGeneratorAliasCountMismatch = errors.NewKind(
		"given %d aliases but generator produces %d columns")

	ErrMultipleGenerators = errors.NewKind(
		"only one generator allowed per SELECT clause, found: %s")

	ErrAmbiguousColumn = errors.NewKind("ambiguous column name %q, could be %s")

	ErrColumnNotFound = errors.NewKind(
		"cannot resolve %q given input columns %s")

	ErrTypeMismatch = errors.NewKind("type mismatch: cannot coerce %s and %s")

	ErrMaxAnalysisIters = errors.NewKind(
		"max iterations (%d) reached for batch %s, last changed by rule %s")

	ErrInvalidWindowSpec = errors.NewKind(
		"a single window expression group must share exactly one window specification, found %d")

	ErrFunctionNotFound = errors.NewKind("function %s not found")
)

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
	"golang.org/x/text/cases"
	"golang.org/x/text/width"
)

// Resolver is the name-equality function every identifier comparison in the
// analyzer routes through. It is selected once, from
// Session.CaseSensitiveAnalysis, and threaded down rather than re-read on
// every comparison so a rule's behavior is stable within one pass.
type Resolver func(a, b string) bool

var foldCaser = cases.Fold()

// NewResolver returns the case-sensitive or case-insensitive comparison
// function selected by caseSensitive. The insensitive path first folds
// full-width identifier variants to their narrow form (width.Fold) before
// case-folding (cases.Fold), so a backtick-quoted full-width identifier
// compares equal to its ASCII spelling the way MySQL's collation does.
func NewResolver(caseSensitive bool) Resolver {
	if caseSensitive {
		return func(a, b string) bool { return a == b }
	}
	return func(a, b string) bool {
		return normalizeIdentifier(a) == normalizeIdentifier(b)
	}
}

func normalizeIdentifier(s string) string {
	return foldCaser.String(width.Fold.String(s))
}

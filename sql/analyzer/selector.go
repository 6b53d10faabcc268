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

// RuleSelector decides whether a given RuleId runs during one Analyze
// call. The default selector runs everything; RemoveDefaultRule/
// AddPreValidationRule-style embedding (spec §2 injection point) builds a
// narrower one from it.
type RuleSelector interface {
	IsSelected(id RuleId) bool
}

type allRules struct{}

func (allRules) IsSelected(RuleId) bool { return true }

// AllRules selects every rule in every batch, the default for a plain
// Analyzer.Analyze call.
var AllRules RuleSelector = allRules{}

// excludingRules is a RuleSelector that runs everything except a fixed
// set of excluded ids, the shape RemoveDefaultRule needs.
type excludingRules map[RuleId]bool

func (e excludingRules) IsSelected(id RuleId) bool { return !e[id] }

// NewExcludingSelector returns a selector that runs every rule except
// those named.
func NewExcludingSelector(excluded ...RuleId) RuleSelector {
	s := make(excludingRules, len(excluded))
	for _, id := range excluded {
		s[id] = true
	}
	return s
}

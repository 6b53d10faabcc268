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

// Batch is a named group of rules run to a fixed point: every rule in
// Rules is applied once, in order, and the whole group repeats until a
// full pass leaves the plan unchanged or Iterations is reached. A batch
// with Iterations > 0 returns its plan after that many passes; one with
// no Iterations of its own that is still changing at the analyzer's
// MaxIterations fails with ErrMaxAnalysisIters, naming the last rule
// that changed the plan.
type Batch struct {
	Name       string
	Iterations int
	Rules      []Rule
}

func (b *Batch) Eval(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope, sel RuleSelector) (sql.Node, error) {
	prev := sql.DebugString(n)
	cur := n
	lastRule := RuleId(-1)

	limit := b.Iterations
	if limit <= 0 {
		limit = a.maxIterations()
	}

	for i := 0; i < limit; i++ {
		after := prev
		for _, r := range b.Rules {
			if !sel.IsSelected(r.Id) {
				continue
			}
			next, err := r.Apply(ctx, a, cur, scope)
			if err != nil {
				return nil, err
			}
			if s := sql.DebugString(next); s != after {
				after = s
				lastRule = r.Id
			}
			cur = next
		}

		if after == prev {
			return cur, nil
		}
		prev = after
	}

	if b.Iterations > 0 {
		return cur, nil
	}
	return nil, sql.ErrMaxAnalysisIters.New(limit, b.Name, lastRule)
}

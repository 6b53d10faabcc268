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

package plan

import (
	"fmt"

	"github.com/skylarkdb/skylark/sql"
)

// ScriptTransformation is `SELECT TRANSFORM(...) USING 'script'`: Input is
// piped to an external script and Output columns are parsed back out of
// its stdout. The analyzer treats it like Project for wildcard expansion
// purposes (spec §4.3) and otherwise leaves Script untouched -- invoking
// it is execution, out of scope here.
type ScriptTransformation struct {
	UnaryNode
	Input       []sql.Expression
	OutputExprs []sql.Expression
	Script      string
}

func NewScriptTransformation(input, output []sql.Expression, script string, child sql.Node) *ScriptTransformation {
	return &ScriptTransformation{UnaryNode: UnaryNode{Child: child}, Input: input, OutputExprs: output, Script: script}
}

func (s *ScriptTransformation) Resolved() bool {
	if !s.Child.Resolved() {
		return false
	}
	for _, e := range s.Input {
		if !e.Resolved() {
			return false
		}
	}
	for _, e := range s.OutputExprs {
		if !e.Resolved() {
			return false
		}
	}
	return true
}

func (s *ScriptTransformation) Schema() sql.Schema {
	out := make(sql.Schema, len(s.OutputExprs))
	for i, e := range s.OutputExprs {
		out[i] = columnFor(e)
	}
	return out
}

func (s *ScriptTransformation) String() string {
	return fmt.Sprintf("ScriptTransformation(%q, %s)", s.Script, s.Child)
}

// Expressions returns Input followed by OutputExprs, mirroring Aggregate's
// two-list convention so NodeExprs rewrites both uniformly.
func (s *ScriptTransformation) Expressions() []sql.Expression {
	return append(append([]sql.Expression{}, s.Input...), s.OutputExprs...)
}

func (s *ScriptTransformation) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	n := len(s.Input)
	if len(exprs) != n+len(s.OutputExprs) {
		return nil, fmt.Errorf("plan.ScriptTransformation: expected %d expressions, got %d", n+len(s.OutputExprs), len(exprs))
	}
	return NewScriptTransformation(exprs[:n], exprs[n:], s.Script, s.Child), nil
}

func (s *ScriptTransformation) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan.ScriptTransformation: expected 1 child, got %d", len(children))
	}
	return NewScriptTransformation(s.Input, s.OutputExprs, s.Script, children[0]), nil
}

// Output implements OutputNode.
func (s *ScriptTransformation) Output() []sql.Expression { return s.OutputExprs }

var _ OutputNode = (*ScriptTransformation)(nil)

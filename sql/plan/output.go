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

import "github.com/skylarkdb/skylark/sql"

// OutputNode is implemented by every resolved plan node: Output is the
// ordered sequence of NamedExpression (GetField or Alias) the node
// produces, carrying real ExprIds -- the concept spec §3 calls a plan's
// "output", distinct from the column-name-only Schema(). Self-join
// deconfliction and wildcard expansion both need this, not Schema.
type OutputNode interface {
	sql.Node
	Output() []sql.Expression
}

// ChildOutput returns n's Output if it implements OutputNode, or nil
// otherwise (an unresolved or not-yet-substituted node).
func ChildOutput(n sql.Node) []sql.Expression {
	if on, ok := n.(OutputNode); ok {
		return on.Output()
	}
	return nil
}

// OutputAttributeSet builds the AttributeSet of n's Output.
func OutputAttributeSet(n sql.Node) sql.AttributeSet {
	set := sql.NewAttributeSet()
	for _, e := range ChildOutput(n) {
		if ne, ok := e.(sql.NamedExpression); ok {
			set.Add(ne.ID())
		}
	}
	return set
}

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
	"fmt"
	"strings"
)

// DebugString renders n as an indented tree, one line per node, with its
// own children nested under it. Two plans that print identically here are
// considered equal by the fixed-point check the analyzer runs between
// rule passes, and by the difflib-based test assertions that compare an
// expected plan against an actual one.
func DebugString(n Node) string {
	var sb strings.Builder
	writeNode(&sb, n, 0)
	return sb.String()
}

func writeNode(sb *strings.Builder, n Node, depth int) {
	if n == nil {
		sb.WriteString(strings.Repeat(" ", depth*2))
		sb.WriteString("<nil>\n")
		return
	}
	sb.WriteString(strings.Repeat(" ", depth*2))
	sb.WriteString(n.String())
	sb.WriteByte('\n')
	for _, c := range n.Children() {
		writeNode(sb, c, depth+1)
	}
}

// DebugStringExpr renders e the same way DebugString renders a Node, for
// the rarer assertion that compares expression trees directly.
func DebugStringExpr(e Expression) string {
	var sb strings.Builder
	writeExpr(&sb, e, 0)
	return sb.String()
}

func writeExpr(sb *strings.Builder, e Expression, depth int) {
	if e == nil {
		sb.WriteString(strings.Repeat(" ", depth*2))
		sb.WriteString("<nil>\n")
		return
	}
	sb.WriteString(strings.Repeat(" ", depth*2))
	sb.WriteString(fmt.Sprintf("%s (%s)", e.String(), e.Type()))
	sb.WriteByte('\n')
	for _, c := range e.Children() {
		writeExpr(sb, c, depth+1)
	}
}

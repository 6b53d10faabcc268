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

// Package plan holds the closed set of logical plan node types the
// analyzer resolves and lowers: relations (resolved and unresolved),
// Project/Filter/Sort, the Aggregate/Expand/grouping-analytics family,
// Generate, Window, and the CTE/subquery scoping wrappers.
package plan

import "github.com/skylarkdb/skylark/sql"

// UnaryNode is embedded by every node with exactly one child, giving it
// Children/WithChildren for free; callers still implement Schema,
// Resolved, and String themselves since those are node-specific.
type UnaryNode struct {
	Child sql.Node
}

func (n *UnaryNode) Children() []sql.Node { return []sql.Node{n.Child} }

// ChildSchema passes through the child's schema unchanged -- the common
// case for nodes that reshape rows but not columns (Sort, Filter,
// PullOutNondeterministic's target nodes).
func (n *UnaryNode) ChildSchema() sql.Schema { return n.Child.Schema() }

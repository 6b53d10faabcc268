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

import (
	"github.com/skylarkdb/skylark/sql"
	"github.com/skylarkdb/skylark/sql/plan"
	"github.com/skylarkdb/skylark/sql/transform"
)

// eliminateSubqueriesFunc strips every *plan.Subquery wrapper left over
// from CTESubstitution and derived-table resolution once analysis is
// done. The wrapper's only job was to rename Source during resolution
// (plan.Subquery.Schema); attribute identity (ExprId) was never touched,
// so removing it changes nothing a later planning stage could observe
// except the now-unnecessary indirection node.
func eliminateSubqueriesFunc(n sql.Node) (sql.Node, transform.TreeIdentity, error) {
	sq, ok := n.(*plan.Subquery)
	if !ok {
		return n, transform.SameTree, nil
	}
	return sq.Child, transform.NewTree, nil
}

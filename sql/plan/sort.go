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
	"strings"

	"github.com/skylarkdb/skylark/sql"
)

// Sort orders Child's rows by Order. It never changes the schema;
// ResolveSortReferences is the rule that may wrap it with extra
// projections when the ordering needs attributes outside the advertised
// schema.
type Sort struct {
	UnaryNode
	Order []sql.Expression // *expression.SortOrder elements
}

func NewSort(order []sql.Expression, child sql.Node) *Sort {
	return &Sort{UnaryNode: UnaryNode{Child: child}, Order: order}
}

func (s *Sort) Resolved() bool {
	if !s.Child.Resolved() {
		return false
	}
	for _, o := range s.Order {
		if !o.Resolved() {
			return false
		}
	}
	return true
}

func (s *Sort) Schema() sql.Schema { return s.ChildSchema() }

func (s *Sort) String() string {
	parts := make([]string, len(s.Order))
	for i, o := range s.Order {
		parts[i] = o.String()
	}
	return fmt.Sprintf("Sort(%s, %s)", strings.Join(parts, ", "), s.Child)
}

func (s *Sort) Expressions() []sql.Expression { return s.Order }

func (s *Sort) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	return NewSort(exprs, s.Child), nil
}

func (s *Sort) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan.Sort: expected 1 child, got %d", len(children))
	}
	return NewSort(s.Order, children[0]), nil
}

// Output implements OutputNode by delegation: a Sort never changes its
// child's attributes.
func (s *Sort) Output() []sql.Expression { return ChildOutput(s.Child) }

var _ OutputNode = (*Sort)(nil)

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

// Filter keeps rows of Child for which Condition evaluates true. It never
// changes the schema.
type Filter struct {
	UnaryNode
	Condition sql.Expression
}

func NewFilter(condition sql.Expression, child sql.Node) *Filter {
	return &Filter{UnaryNode: UnaryNode{Child: child}, Condition: condition}
}

func (f *Filter) Resolved() bool    { return f.Child.Resolved() && f.Condition.Resolved() }
func (f *Filter) Schema() sql.Schema { return f.ChildSchema() }
func (f *Filter) String() string    { return fmt.Sprintf("Filter(%s, %s)", f.Condition, f.Child) }

func (f *Filter) Expressions() []sql.Expression { return []sql.Expression{f.Condition} }

func (f *Filter) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != 1 {
		return nil, fmt.Errorf("plan.Filter: expected 1 expression, got %d", len(exprs))
	}
	return NewFilter(exprs[0], f.Child), nil
}

func (f *Filter) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan.Filter: expected 1 child, got %d", len(children))
	}
	return NewFilter(f.Condition, children[0]), nil
}

// Output implements OutputNode by delegation: a Filter never changes its
// child's attributes.
func (f *Filter) Output() []sql.Expression { return ChildOutput(f.Child) }

var _ OutputNode = (*Filter)(nil)

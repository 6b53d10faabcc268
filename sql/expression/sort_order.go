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

package expression

import (
	"fmt"

	"github.com/skylarkdb/skylark/sql"
)

type SortDirection bool

const (
	Ascending  SortDirection = true
	Descending SortDirection = false
)

// SortOrder is one ORDER BY term. Child may be unresolved until
// ResolveReferences' lenient pass or ResolveSortReferences finishes it.
type SortOrder struct {
	Child     sql.Expression
	Direction SortDirection
	NullsLast bool
}

func NewSortOrder(child sql.Expression, dir SortDirection) *SortOrder {
	return &SortOrder{Child: child, Direction: dir}
}

func (s *SortOrder) Resolved() bool { return s.Child.Resolved() }
func (s *SortOrder) String() string {
	dir := "ASC"
	if s.Direction == Descending {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s", s.Child, dir)
}

func (s *SortOrder) Type() sql.Type { return s.Child.Type() }
func (s *SortOrder) Nullable() bool { return s.Child.Nullable() }

func (s *SortOrder) Children() []sql.Expression { return []sql.Expression{s.Child} }

func (s *SortOrder) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	return s.Child.Eval(ctx, row)
}

func (s *SortOrder) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression.SortOrder: expected 1 child, got %d", len(children))
	}
	return s.WithChild(children[0]), nil
}

// WithChild returns a copy of s over a different (presumably now resolved)
// child expression.
func (s *SortOrder) WithChild(child sql.Expression) *SortOrder {
	cp := *s
	cp.Child = child
	return &cp
}

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

// Star is a wildcard projection (`*` or `t.*`), expanded by
// ResolveReferences into the child's output attributes, optionally
// filtered by qualifier.
type Star struct {
	Table string
}

func NewStar() *Star                { return &Star{} }
func NewQualifiedStar(table string) *Star { return &Star{Table: table} }

func (s *Star) Resolved() bool { return false }
func (s *Star) unresolved()    {}
func (s *Star) Type() sql.Type { return nil }
func (s *Star) Nullable() bool { return true }
func (s *Star) Children() []sql.Expression { return nil }
func (s *Star) String() string {
	if s.Table == "" {
		return "*"
	}
	return fmt.Sprintf("%s.*", s.Table)
}
func (s *Star) Eval(*sql.Context, sql.Row) (interface{}, error) {
	return nil, unresolvedErr("Star")
}
func (s *Star) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("expression.Star: expected 0 children, got %d", len(children))
	}
	return s, nil
}

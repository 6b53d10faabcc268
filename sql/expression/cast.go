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

// Cast wraps an expression whose static type the coercion rules widened
// to participate with a sibling expression of a different numeric type.
// It carries no evaluation logic of its own here: the analyzer only
// needs Cast to be typed correctly, not executed.
type Cast struct {
	UnaryExpression
	Typ sql.Type
}

func NewCast(child sql.Expression, typ sql.Type) *Cast {
	return &Cast{UnaryExpression{Child: child}, typ}
}

func (c *Cast) Type() sql.Type { return c.Typ }
func (c *Cast) Nullable() bool { return c.Child.Nullable() }
func (c *Cast) String() string { return fmt.Sprintf("CAST(%s AS %s)", c.Child, c.Typ) }
func (c *Cast) Eval(*sql.Context, sql.Row) (interface{}, error) {
	return nil, fmt.Errorf("expression.Cast: not evaluable by the analyzer")
}
func (c *Cast) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression.Cast: expected 1 child, got %d", len(children))
	}
	return NewCast(children[0], c.Typ), nil
}

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

package function

import (
	"fmt"
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/skylarkdb/skylark/sql"
	"github.com/skylarkdb/skylark/sql/expression"
	"github.com/skylarkdb/skylark/sql/types"
)

// dateFormat is DATE_FORMAT(date, format), with format given in strftime's
// C-library-derived directive set (%Y-%m-%d, not Go's reference-time
// layout), matching the SQL dialect's own DATE_FORMAT.
type dateFormat struct {
	expression.BinaryExpression
}

func newDateFormat(args []sql.Expression) (sql.Expression, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("date_format: expected 2 arguments, got %d", len(args))
	}
	return &dateFormat{expression.BinaryExpression{Left: args[0], Right: args[1]}}, nil
}

func (d *dateFormat) Type() sql.Type { return types.Text }
func (d *dateFormat) Nullable() bool { return true }
func (d *dateFormat) String() string {
	return fmt.Sprintf("date_format(%s, %s)", d.Left, d.Right)
}

func (d *dateFormat) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	left, err := d.Left.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	right, err := d.Right.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	if left == nil || right == nil {
		return nil, nil
	}
	t, ok := left.(time.Time)
	if !ok {
		return nil, fmt.Errorf("date_format: first argument must be a timestamp")
	}
	layout, ok := right.(string)
	if !ok {
		return nil, fmt.Errorf("date_format: format must be a string")
	}
	f, err := strftime.New(layout)
	if err != nil {
		return nil, err
	}
	return f.FormatString(t), nil
}

func (d *dateFormat) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("date_format: expected 2 children, got %d", len(children))
	}
	return &dateFormat{expression.BinaryExpression{Left: children[0], Right: children[1]}}, nil
}

func registerDateFunctions(r *Registry) {
	r.Register("date_format", newDateFormat)
}

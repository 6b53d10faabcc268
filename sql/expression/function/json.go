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
	"encoding/json"
	"fmt"

	jsonpath "github.com/oliveagle/jsonpath"

	"github.com/skylarkdb/skylark/sql"
	"github.com/skylarkdb/skylark/sql/expression"
	"github.com/skylarkdb/skylark/sql/types"
)

// jsonExtract is JSON_EXTRACT(doc, path), with path given as a JSONPath
// expression ("$.a.b[0]") rather than the dialect's own "lax/strict" JSON
// path grammar; dolthub's jsonpath fork is what actually builds here, the
// upstream oliveagle/jsonpath module is unmaintained.
type jsonExtract struct {
	expression.BinaryExpression
}

func newJSONExtract(args []sql.Expression) (sql.Expression, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("json_extract: expected 2 arguments, got %d", len(args))
	}
	return &jsonExtract{expression.BinaryExpression{Left: args[0], Right: args[1]}}, nil
}

func (j *jsonExtract) Type() sql.Type { return types.JSON }
func (j *jsonExtract) Nullable() bool { return true }
func (j *jsonExtract) String() string {
	return fmt.Sprintf("json_extract(%s, %s)", j.Left, j.Right)
}

func (j *jsonExtract) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	left, err := j.Left.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	right, err := j.Right.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	if left == nil || right == nil {
		return nil, nil
	}
	path, ok := right.(string)
	if !ok {
		return nil, fmt.Errorf("json_extract: path must be a string")
	}

	var doc interface{}
	switch v := left.(type) {
	case string:
		if err := json.Unmarshal([]byte(v), &doc); err != nil {
			return nil, err
		}
	default:
		doc = v
	}

	return jsonpath.JsonPathLookup(doc, path)
}

func (j *jsonExtract) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("json_extract: expected 2 children, got %d", len(children))
	}
	return &jsonExtract{expression.BinaryExpression{Left: children[0], Right: children[1]}}, nil
}

func registerJSONFunctions(r *Registry) {
	r.Register("json_extract", newJSONExtract)
}

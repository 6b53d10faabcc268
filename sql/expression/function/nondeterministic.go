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
	"math/rand"

	"github.com/google/uuid"

	"github.com/skylarkdb/skylark/sql"
	"github.com/skylarkdb/skylark/sql/expression"
	"github.com/skylarkdb/skylark/sql/types"
)

// rand_ is RAND() / RAND(seed). It is the canonical example
// PullOutNondeterministic exists for: naively evaluated per-row inside a
// filter or projection it would produce a different value each time it's
// referenced, so the rule hoists one evaluation into a Project below the
// node that references it.
type rand_ struct {
	expression.NaryExpression
}

func newRand(args []sql.Expression) (sql.Expression, error) {
	if len(args) > 1 {
		return nil, fmt.Errorf("rand: expected 0 or 1 arguments, got %d", len(args))
	}
	return &rand_{expression.NaryExpression{ChildExprs: args}}, nil
}

func (r *rand_) Type() sql.Type               { return types.Float64 }
func (r *rand_) Nullable() bool               { return false }
func (r *rand_) IsNondeterministic() bool     { return true }
func (r *rand_) String() string {
	if len(r.ChildExprs) == 0 {
		return "rand()"
	}
	return fmt.Sprintf("rand(%s)", r.ChildExprs[0])
}

func (r *rand_) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	if len(r.ChildExprs) == 0 {
		return rand.Float64(), nil
	}
	seedVal, err := r.ChildExprs[0].Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	if seedVal == nil {
		return rand.Float64(), nil
	}
	var seed int64
	switch v := seedVal.(type) {
	case int:
		seed = int64(v)
	case int64:
		seed = v
	default:
		return nil, fmt.Errorf("rand: seed must be an integer")
	}
	return rand.New(rand.NewSource(seed)).Float64(), nil
}

func (r *rand_) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != len(r.ChildExprs) {
		return nil, fmt.Errorf("rand: expected %d children, got %d", len(r.ChildExprs), len(children))
	}
	return &rand_{expression.NaryExpression{ChildExprs: children}}, nil
}

// uuid_ is UUID(), a zero-argument nondeterministic scalar producing a
// random RFC 4122 identifier.
type uuid_ struct{}

func newUUID(args []sql.Expression) (sql.Expression, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("uuid: expected 0 arguments, got %d", len(args))
	}
	return &uuid_{}, nil
}

func (u *uuid_) Resolved() bool                             { return true }
func (u *uuid_) Type() sql.Type                              { return types.Text }
func (u *uuid_) Nullable() bool                               { return false }
func (u *uuid_) Children() []sql.Expression                   { return nil }
func (u *uuid_) String() string                                { return "uuid()" }
func (u *uuid_) IsNondeterministic() bool                      { return true }
func (u *uuid_) Eval(*sql.Context, sql.Row) (interface{}, error) {
	return uuid.New().String(), nil
}
func (u *uuid_) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("uuid: expected 0 children, got %d", len(children))
	}
	return u, nil
}

func registerNondeterministicFunctions(r *Registry) {
	r.Register("rand", newRand)
	r.Register("uuid", newUUID)
}

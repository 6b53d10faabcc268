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

package sql

import (
	"github.com/cespare/xxhash"
	"github.com/mitchellh/hashstructure"
)

// StructuralHash is a cheap, order-sensitive hash of a node or expression's
// String() form. The rule executor does not use it: Batch.Eval's
// fixed-point check compares sql.DebugString renderings directly.
func StructuralHash(s string) uint64 {
	return xxhash.Sum64String(s)
}

// SemanticHash hashes a value ignoring any ExprId-typed field, so that two
// expressions which are semanticEquals (equal modulo attribute renaming)
// hash identically. Expression implementations that carry an ExprId tag it
// with `hash:"ignore"`.
func SemanticHash(v interface{}) (uint64, error) {
	return hashstructure.Hash(v, &hashstructure.HashOptions{})
}

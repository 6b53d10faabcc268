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

// Package types holds the primitive SQL types the analyzer needs for
// wildcard expansion, literal typing, and coercion. This is intentionally
// small: type inference for user-defined types is a Non-goal of the
// analyzer this repository builds.
package types

import "github.com/skylarkdb/skylark/sql"

type primitiveType struct {
	name string
	rank int // coercion precedence: higher wins when two numeric types meet
}

func (t *primitiveType) Name() string { return t.name }
func (t *primitiveType) String() string { return t.name }
func (t *primitiveType) Equals(o sql.Type) bool {
	op, ok := o.(*primitiveType)
	return ok && op.name == t.name
}
func (t *primitiveType) Rank() int { return t.rank }

var (
	Null      sql.Type = &primitiveType{name: "null", rank: 0}
	Boolean   sql.Type = &primitiveType{name: "boolean", rank: 1}
	Int8      sql.Type = &primitiveType{name: "tinyint", rank: 2}
	Int16     sql.Type = &primitiveType{name: "smallint", rank: 3}
	Int32     sql.Type = &primitiveType{name: "int", rank: 4}
	Int64     sql.Type = &primitiveType{name: "bigint", rank: 5}
	Float32   sql.Type = &primitiveType{name: "float", rank: 6}
	Float64   sql.Type = &primitiveType{name: "double", rank: 7}
	Decimal   sql.Type = &primitiveType{name: "decimal", rank: 8}
	Text      sql.Type = &primitiveType{name: "varchar", rank: 9}
	LongText  sql.Type = &primitiveType{name: "longtext", rank: 10}
	Timestamp sql.Type = &primitiveType{name: "timestamp", rank: 11}
	JSON      sql.Type = &primitiveType{name: "json", rank: 12}
)

// Numeric reports whether t participates in numeric coercion.
func Numeric(t sql.Type) bool {
	switch t {
	case Int8, Int16, Int32, Int64, Float32, Float64, Decimal:
		return true
	}
	return false
}

// Promote returns the wider of two numeric types for implicit coercion
// (e.g. the comparand types of a BETWEEN, or the accumulator type of SUM).
// Non-numeric inputs are returned unchanged alongside a false ok.
func Promote(a, b sql.Type) (sql.Type, bool) {
	if !Numeric(a) || !Numeric(b) {
		return a, false
	}
	pa, pb := a.(*primitiveType), b.(*primitiveType)
	if pa.rank >= pb.rank {
		return a, true
	}
	return b, true
}

// Array and Struct are compound types for CreateArray/CreateStruct and
// GetArrayStructFields/GetStructField. They are kept minimal: the analyzer
// only needs enough type information to type the expression, not to
// execute it.
type ArrayType struct {
	Elem sql.Type
}

func (t *ArrayType) Name() string   { return "array" }
func (t *ArrayType) String() string { return "array<" + t.Elem.Name() + ">" }
func (t *ArrayType) Equals(o sql.Type) bool {
	op, ok := o.(*ArrayType)
	return ok && t.Elem.Equals(op.Elem)
}

type StructField struct {
	Name string
	Type sql.Type
}

type StructType struct {
	Fields []StructField
}

func (t *StructType) Name() string   { return "struct" }
func (t *StructType) String() string { return "struct" }
func (t *StructType) Equals(o sql.Type) bool {
	op, ok := o.(*StructType)
	if !ok || len(op.Fields) != len(t.Fields) {
		return false
	}
	for i := range t.Fields {
		if t.Fields[i].Name != op.Fields[i].Name || !t.Fields[i].Type.Equals(op.Fields[i].Type) {
			return false
		}
	}
	return true
}

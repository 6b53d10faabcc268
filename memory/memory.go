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

// Package memory is a toy, in-process implementation of sql.Catalog,
// sql.Database and sql.Table. It exists so the analyzer can be exercised
// end to end -- by its own tests and by cmd/skylark-analyze -- without a
// real storage engine behind it. Database and Catalog guard their maps
// with a sync.RWMutex; there is no persistence and no invalidation story
// beyond "build a new Catalog".
package memory

import (
	"strings"
	"sync"

	"github.com/skylarkdb/skylark/sql"
	"github.com/skylarkdb/skylark/sql/plan"
)

// Table is a named schema with no rows. The analyzer never reads table
// data, so Table carries only what ResolveRelations and CheckAnalysis
// need to type and validate a query against it.
type Table struct {
	name string
	sch  sql.Schema
}

// NewTable returns a Table named name with the given schema. Each
// column's Source is forced to name, mirroring how a catalog table's
// columns are always qualified by their own table.
func NewTable(name string, sch sql.Schema) *Table {
	qualified := make(sql.Schema, len(sch))
	for i, c := range sch {
		cp := *c
		cp.Source = name
		qualified[i] = &cp
	}
	return &Table{name: name, sch: qualified}
}

func (t *Table) Name() string     { return t.name }
func (t *Table) Schema() sql.Schema { return t.sch }

// Database is an in-memory, case-insensitive-lookup collection of Tables.
// Concurrent reads are safe; Database is built once up front by a test
// or the CLI and is never mutated by the analyzer itself, but the lock
// guards against a caller adding tables on one goroutine while another
// analysis is in flight.
type Database struct {
	name string

	mu     sync.RWMutex
	tables map[string]sql.Table
}

func NewDatabase(name string) *Database {
	return &Database{name: name, tables: map[string]sql.Table{}}
}

func (d *Database) Name() string { return d.name }

// AddTable registers t under its own name, overwriting any table already
// registered under that name (case-insensitively).
func (d *Database) AddTable(t sql.Table) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tables[strings.ToLower(t.Name())] = t
}

func (d *Database) GetTableInsensitive(ctx *sql.Context, name string) (sql.Table, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	t, ok := d.tables[strings.ToLower(name)]
	return t, ok, nil
}

// Catalog is a fixed set of Databases, keyed case-insensitively. It
// satisfies sql.Catalog directly; wrap it in sql.NewCachingCatalog when a
// caller wants the singleflight/LRU behavior the spec describes for a
// production embedding.
type Catalog struct {
	mu  sync.RWMutex
	dbs map[string]sql.Database
}

func NewCatalog(dbs ...sql.Database) *Catalog {
	c := &Catalog{dbs: map[string]sql.Database{}}
	for _, db := range dbs {
		c.AddDatabase(db)
	}
	return c
}

func (c *Catalog) AddDatabase(db sql.Database) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dbs[strings.ToLower(db.Name())] = db
}

func (c *Catalog) Database(name string) (sql.Database, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	db, ok := c.dbs[strings.ToLower(name)]
	if !ok {
		return nil, sql.ErrTableNotFound.New(name)
	}
	return db, nil
}

// LookupRelation resolves tbl against the database named by tbl.Database,
// or, if that is empty, against ctx.Session.CurrentDatabase.
func (c *Catalog) LookupRelation(ctx *sql.Context, tbl sql.TableIdentifier) (sql.Node, error) {
	dbName := tbl.Database
	if dbName == "" {
		dbName = ctx.Session.CurrentDatabase
	}
	db, err := c.Database(dbName)
	if err != nil {
		return nil, err
	}
	t, ok, err := db.GetTableInsensitive(ctx, tbl.Name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, sql.ErrTableNotFound.New(tbl.Name)
	}
	return plan.NewResolvedTable(t), nil
}

var (
	_ sql.Table    = (*Table)(nil)
	_ sql.Database = (*Database)(nil)
	_ sql.Catalog  = (*Catalog)(nil)
)

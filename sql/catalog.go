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
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/singleflight"
)

// TableIdentifier names a relation the parser produced but the analyzer
// has not yet bound to a schema. Database is optional (defaults to the
// session's current database); only Name participates in CTE shadowing.
type TableIdentifier struct {
	Database string
	Name     string
}

// Table is a resolved relation: a name and a schema. Execution-level
// concerns (row iteration, indexes, statistics) live outside the
// analyzer's contract on purpose -- ResolveRelations only needs the shape.
type Table interface {
	Name() string
	Schema() Schema
}

// Database is a named collection of tables.
type Database interface {
	Name() string
	GetTableInsensitive(ctx *Context, name string) (Table, bool, error)
}

// Catalog is the read-only external collaborator ResolveRelations
// consults. Implementations must be safe to query concurrently from
// independent analyzer invocations (see spec §5); CachingCatalog below is
// the concrete realization of that requirement.
type Catalog interface {
	Database(name string) (Database, error)
	LookupRelation(ctx *Context, tbl TableIdentifier) (Node, error)
}

// FunctionRegistry is the read-only external collaborator ResolveFunctions
// consults. LookupFunction never sees isDistinct: DISTINCT dispatch
// (wrap as AggregateExpression, use a legacy SumDistinct/CountDistinct
// form, silently drop, or fail) is entirely the analyzer's concern, since
// it depends on *which* aggregate was returned, not on how to build it.
type FunctionRegistry interface {
	// LookupFunction resolves name against the registry, building the
	// call's Expression from the already-resolved children. ok is false
	// when the registry has no such function; the caller (ResolveFunctions)
	// leaves the call unresolved in that case rather than failing
	// immediately, since CheckAnalysis produces the final diagnostic.
	LookupFunction(name string, children []Expression) (Expression, bool, error)
}

// CachingCatalog wraps a Catalog with a singleflight group (collapsing
// concurrent identical lookups within one analysis, and across concurrent
// analyses that race on the same table) and a small LRU of resolved
// relation plans keyed by table identifier. It is a cache, not a source of
// truth: callers that need a fresh view after DDL should construct a new
// CachingCatalog or bypass it.
type CachingCatalog struct {
	Catalog
	group *singleflight.Group
	cache *lru.Cache
}

func NewCachingCatalog(underlying Catalog, size int) *CachingCatalog {
	cache, _ := lru.New(size)
	return &CachingCatalog{
		Catalog: underlying,
		group:   new(singleflight.Group),
		cache:   cache,
	}
}

func (c *CachingCatalog) LookupRelation(ctx *Context, tbl TableIdentifier) (Node, error) {
	key := tbl.Database + "." + tbl.Name
	if !ctx.CaseSensitive() {
		key = normalizeIdentifier(key)
	}

	if v, ok := c.cache.Get(key); ok {
		return v.(Node), nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		n, err := c.Catalog.LookupRelation(ctx, tbl)
		if err != nil {
			return nil, err
		}
		c.cache.Add(key, n)
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Node), nil
}

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
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Session carries the per-connection configuration the analyzer consults.
// Only CaseSensitiveAnalysis and CurrentDatabase are read by the analyzer
// proper; the rest exists because a Context needs somewhere to live, in the
// teacher's own style of bundling session state behind *sql.Context.
type Session struct {
	CaseSensitiveAnalysis bool
	CurrentDatabase       string
}

// Context bundles a standard library context with the session state and
// logging/tracing handles the analyzer's ambient stack needs. It is passed
// to every rule, exactly as the teacher threads *sql.Context through every
// analyzer rule and expression Eval call.
type Context struct {
	context.Context
	Session *Session
	// QueryID correlates every log line and trace span emitted during one
	// Analyze call.
	QueryID uuid.UUID
	Log     *logrus.Entry
}

// NewContext wraps a context.Context with a fresh session and a
// query-scoped logger, minting a QueryID so concurrent analyses started
// from the same process have separable logs.
func NewContext(ctx context.Context, opts ...ContextOption) *Context {
	c := &Context{
		Context: ctx,
		Session: &Session{},
		QueryID: uuid.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Log == nil {
		c.Log = logrus.WithField("query_id", c.QueryID.String())
	}
	return c
}

// NewEmptyContext is a convenience constructor used pervasively in tests.
func NewEmptyContext() *Context {
	return NewContext(context.Background())
}

type ContextOption func(*Context)

func WithCaseSensitivity(sensitive bool) ContextOption {
	return func(c *Context) { c.Session.CaseSensitiveAnalysis = sensitive }
}

func WithCurrentDatabase(db string) ContextOption {
	return func(c *Context) { c.Session.CurrentDatabase = db }
}

func WithLogger(log *logrus.Entry) ContextOption {
	return func(c *Context) { c.Log = log }
}

func (c *Context) CaseSensitive() bool { return c.Session.CaseSensitiveAnalysis }

// WithTraceContext returns a shallow copy of c with its embedded
// context.Context swapped for one carrying an active trace span, so
// downstream opentracing.StartSpanFromContext calls nest under it.
// Session, QueryID and Log are preserved.
func (c *Context) WithTraceContext(ctx context.Context) *Context {
	cp := *c
	cp.Context = ctx
	return &cp
}

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

// Package regex abstracts over regex engines so REGEXP_LIKE /
// REGEXP_REPLACE can use oniguruma's MySQL-compatible backreference
// support where available and fall back to the standard library's RE2
// engine otherwise.
package regex

import (
	"sync"

	errors "gopkg.in/src-d/go-errors.v1"
)

var (
	ErrRegexNameEmpty = errors.NewKind("attempted to register a regex engine with an empty name")
	ErrRegexNotFound  = errors.NewKind("regex engine %q is not registered")
)

// Matcher is a compiled regular expression.
type Matcher interface {
	Match(s string) bool
	ReplaceAll(s, repl string) (string, error)
}

// Disposer releases native resources held by a Matcher (oniguruma
// compiles into C-allocated memory). It is nil for engines with nothing
// to free.
type Disposer interface {
	Dispose()
}

// Factory compiles pattern into a Matcher for one engine.
type Factory func(pattern string) (Matcher, Disposer, error)

var (
	mu      sync.RWMutex
	engines = map[string]Factory{}
	order   []string
	dflt    string
)

// Register adds an engine under name. The first engine registered becomes
// the default; oniguruma.go and go_regex.go each call this from an init().
func Register(name string, f Factory) error {
	if name == "" {
		return ErrRegexNameEmpty.New()
	}
	mu.Lock()
	defer mu.Unlock()
	if _, ok := engines[name]; !ok {
		order = append(order, name)
	}
	engines[name] = f
	// oniguruma is always preferred when present, regardless of init order
	// (Go runs a package's init funcs in file-name order, which is not
	// something callers should have to know about).
	if dflt == "" || name == "oniguruma" {
		dflt = name
	}
	return nil
}

// Engines lists every registered engine name, in registration order.
func Engines() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// Default returns the engine name used when New is not given one
// explicitly: "oniguruma" when its init() ran (the binding built
// successfully), "go" otherwise.
func Default() string {
	mu.RLock()
	defer mu.RUnlock()
	return dflt
}

// SetDefault overrides which engine New uses when name is "".
func SetDefault(name string) { mu.Lock(); dflt = name; mu.Unlock() }

// New compiles pattern with the named engine ("" selects Default()).
func New(name, pattern string) (Matcher, Disposer, error) {
	if name == "" {
		name = Default()
	}
	mu.RLock()
	f, ok := engines[name]
	mu.RUnlock()
	if !ok {
		return nil, nil, ErrRegexNotFound.New(name)
	}
	return f(pattern)
}

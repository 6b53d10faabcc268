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

package regex

import "regexp"

// Registered alongside oniguruma.go's engine; Register prefers
// "oniguruma" as the default whenever both are present, so this only
// matters to callers that explicitly ask New("go", ...) for RE2's
// linear-time (no backreference) matching.
func init() {
	_ = Register("go", newGoMatcher)
}

type goMatcher struct {
	re *regexp.Regexp
}

func newGoMatcher(pattern string) (Matcher, Disposer, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, nil, err
	}
	return &goMatcher{re: re}, nil, nil
}

func (m *goMatcher) Match(s string) bool { return m.re.MatchString(s) }

func (m *goMatcher) ReplaceAll(s, repl string) (string, error) {
	return m.re.ReplaceAllString(s, repl), nil
}

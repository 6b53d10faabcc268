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

import (
	rubex "github.com/src-d/go-oniguruma"
)

func init() {
	_ = Register("oniguruma", newOnigurumaMatcher)
}

type onigurumaMatcher struct {
	re *rubex.Regexp
}

func newOnigurumaMatcher(pattern string) (Matcher, Disposer, error) {
	re, err := rubex.Compile(pattern)
	if err != nil {
		return nil, nil, err
	}
	m := &onigurumaMatcher{re: re}
	return m, m, nil
}

func (m *onigurumaMatcher) Match(s string) bool { return m.re.MatchString(s) }

func (m *onigurumaMatcher) ReplaceAll(s, repl string) (string, error) {
	return m.re.ReplaceAllString(s, repl), nil
}

func (m *onigurumaMatcher) Dispose() { m.re.Free() }

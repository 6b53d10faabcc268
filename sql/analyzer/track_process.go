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

package analyzer

import "github.com/skylarkdb/skylark/sql"

// trackProcess is a no-op rewrite that exists purely to give the
// Substitution batch a logging checkpoint: one Trace line per pass, tagged
// with the query id already carried by ctx.Log, before any rewriting
// starts.
func trackProcess(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, error) {
	if a.Debug {
		ctx.Log.WithField("resolved", n.Resolved()).Trace("analyzing plan")
	}
	return n, nil
}

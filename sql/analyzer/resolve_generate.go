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

import (
	"fmt"

	"github.com/skylarkdb/skylark/sql"
	"github.com/skylarkdb/skylark/sql/expression"
	"github.com/skylarkdb/skylark/sql/plan"
	"github.com/skylarkdb/skylark/sql/transform"
)

// resolveGenerate is ResolveGenerate: table-valued function (generator)
// resolution. It handles two shapes: a Generate node whose generator is
// resolved but whose declared output columns aren't yet, and a Project
// whose projection list contains exactly one aliased generator, which
// gets rewritten into Project(newList, Generate(...)).
func resolveGenerate(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, error) {
	return transformNode(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		switch g := node.(type) {
		case *plan.Generate:
			return resolveGenerateOutputs(g)
		case *plan.Project:
			return resolveProjectGenerator(g)
		default:
			return node, transform.SameTree, nil
		}
	})
}

func resolveGenerateOutputs(g *plan.Generate) (sql.Node, transform.TreeIdentity, error) {
	if !g.Gen.Resolved() || generateOutputsResolved(g) {
		return g, transform.SameTree, nil
	}

	var names []string
	for _, o := range g.OutputExprs {
		if named, ok := o.(sql.NamedExpression); ok {
			names = append(names, named.Name())
		}
	}

	output, err := makeGeneratorOutput(g.Gen, names, g.Qualifier)
	if err != nil {
		return nil, transform.SameTree, err
	}
	return plan.NewGenerate(g.Gen, g.Join, g.Outer, g.Qualifier, output, g.Child), transform.NewTree, nil
}

func generateOutputsResolved(g *plan.Generate) bool {
	for _, o := range g.OutputExprs {
		if !o.Resolved() {
			return false
		}
	}
	return len(g.OutputExprs) > 0
}

// makeGeneratorOutput synthesizes the named attributes a generator
// produces: paired against the caller's names if the counts match,
// defaulted to the Hive convention _c0, _c1, ... if no names were given,
// and a fatal mismatch otherwise.
func makeGeneratorOutput(gen sql.Generator, names []string, qualifier string) ([]sql.Expression, error) {
	elemTypes := gen.ElementTypes()
	switch {
	case len(names) == 0:
		names = make([]string, len(elemTypes))
		for i := range names {
			names[i] = fmt.Sprintf("_c%d", i)
		}
	case len(names) != len(elemTypes):
		return nil, sql.ErrGeneratorAliasCountMismatch.New(len(names), len(elemTypes))
	}

	out := make([]sql.Expression, len(names))
	for i, name := range names {
		out[i] = expression.NewGetFieldWithTable(i, elemTypes[i], qualifier, name, true)
	}
	return out, nil
}

// resolveProjectGenerator finds the (at most one) aliased generator in a
// Project's list and rewrites it into Project(newList, Generate(...)).
func resolveProjectGenerator(p *plan.Project) (sql.Node, transform.TreeIdentity, error) {
	genIdx := -1
	var gen sql.Generator
	var names []string

	for i, e := range p.Projections {
		g, aliasNames, ok := aliasedGenerator(e)
		if !ok {
			continue
		}
		if genIdx != -1 {
			return nil, transform.SameTree, sql.ErrMultipleGenerators.New(p.String())
		}
		genIdx, gen, names = i, g, aliasNames
	}
	if genIdx == -1 || !gen.Resolved() {
		return p, transform.SameTree, nil
	}

	output, err := makeGeneratorOutput(gen, names, "")
	if err != nil {
		return nil, transform.SameTree, err
	}

	otherExprs := 0
	newList := make([]sql.Expression, 0, len(p.Projections)-1+len(output))
	for i, e := range p.Projections {
		if i == genIdx {
			newList = append(newList, output...)
			continue
		}
		otherExprs++
		newList = append(newList, e)
	}

	generate := plan.NewGenerate(gen, otherExprs > 0, false, "", output, p.Child)
	return plan.NewProject(newList, generate), transform.NewTree, nil
}

// aliasedGenerator matches the AliasedGenerator view: Alias(Generator,
// name) or MultiAlias(Generator, names).
func aliasedGenerator(e sql.Expression) (sql.Generator, []string, bool) {
	switch a := e.(type) {
	case *expression.Alias:
		if gen, ok := a.Child.(sql.Generator); ok {
			return gen, []string{a.Name()}, true
		}
	case *expression.MultiAlias:
		if gen, ok := a.Child.(sql.Generator); ok {
			return gen, a.Names, true
		}
	}
	return nil, nil, false
}

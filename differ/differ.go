//  Copyright (c) 2023 Uber Technologies, Inc.
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

// Package differ orchestrates the pipeline: it reads two files, picks a
// language front end, builds semantic trees, runs the selected matcher
// and renders the side-by-side diff. Matching itself cannot fail; the
// failure surface is parsing and I/O.
package differ

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"

	"syndiff/distill"
	"syndiff/lang"
	"syndiff/printer"
	"syndiff/stree"
	"syndiff/ted"
	"syndiff/tree"
)

// Outcome (exit) codes.
const (
	// Same means no structural differences were found.
	Same = 0
	// Different means differences were found and printed.
	Different = 1
	// Failure means the comparison could not be carried out.
	Failure = 2
)

// Options selects the pipeline variant.
type Options struct {
	// Color enables ANSI decoration of the output.
	Color bool
	// FineOnly skips S-tree layering and matches the grammar-shaped
	// tree directly.
	FineOnly bool
	// UseTED matches with the edit-distance matcher instead of the
	// distiller.
	UseTED bool
	// Lang forces a language by name instead of deriving it from file
	// names.
	Lang string
}

// Result describes a finished comparison.
type Result struct {
	// Equal is true when the trees matched without differences.
	Equal bool
	// Cost is the edit distance; meaningful only with UseTED.
	Cost int
}

// BuildTreeFromFile reads and parses a file into a semantic tree using
// the language derived from its name (or forced by the options).
func BuildTreeFromFile(path string, opts Options) (*tree.Tree, lang.Language, error) {
	l, err := pickLanguage(path, opts)
	if err != nil {
		return nil, nil, err
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read file %q: %v", path, err)
	}

	b, err := l.Parse(contents, path)
	if err != nil {
		return nil, nil, err
	}

	var t *tree.Tree
	if opts.FineOnly {
		t, err = stree.BuildFine(b, l)
	} else {
		t, err = stree.Build(b, l)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("cannot build tree for %q: %v", path, err)
	}
	return t, l, nil
}

// DiffFiles compares two files and writes the rendered diff to out.
func DiffFiles(pathA, pathB string, out io.Writer, opts Options) (Result, error) {
	t1, l, errA := BuildTreeFromFile(pathA, opts)
	t2, _, errB := BuildTreeFromFile(pathB, opts)
	if err := multierr.Combine(errA, errB); err != nil {
		return Result{}, err
	}

	res := matchTrees(l, t1, t2, opts)

	p := printer.New(t1.Root(), t2.Root(), out, opts.Color)
	p.Print()
	return res, nil
}

// matchTrees runs the selected matcher over the two trees and reports
// whether they came out equal.
func matchTrees(l lang.Language, t1, t2 *tree.Tree, opts Options) Result {
	r1, r2 := t1.Root(), t2.Root()
	if r1 == nil || r2 == nil {
		res := Result{Equal: r1 == nil && r2 == nil}
		// against an empty tree the whole other tree is the edit script
		if opts.UseTED && r1 != nil {
			res.Cost = len(tree.PostOrder(r1))
		}
		if opts.UseTED && r2 != nil {
			res.Cost = len(tree.PostOrder(r2))
		}
		return res
	}

	if opts.UseTED {
		cost := ted.Distance(r1, r2)
		return Result{Equal: cost == 0, Cost: cost}
	}

	distill.Trees(l, t1, t2)
	return Result{Equal: allUnchanged(r1) && allUnchanged(r2)}
}

// allUnchanged reports whether every non-satellite node of the subtree
// came out of matching unchanged.
func allUnchanged(n *tree.Node) bool {
	if n.Satellite {
		return true
	}
	if n.State != tree.Unchanged {
		return false
	}
	for _, child := range n.Children {
		if !allUnchanged(child) {
			return false
		}
	}
	return true
}

// pickLanguage resolves the language for a file.
func pickLanguage(path string, opts Options) (lang.Language, error) {
	if opts.Lang != "" {
		return lang.ByName(opts.Lang)
	}
	return lang.ForFile(path)
}

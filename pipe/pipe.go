// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package pipe runs a full curation pass:
// it ranks the taxonomic groups of a survey by abundance,
// keeps the most abundant groups,
// prunes the frequency table,
// the sequences,
// and the tree
// down to the member features of those groups,
// and builds the color annotation of the pruned tree.
package pipe

import (
	"errors"
	"fmt"
	"sync"

	"github.com/js-arias/amptax/abundance"
	"github.com/js-arias/amptax/colorstrip"
	"github.com/js-arias/amptax/freqtab"
	"github.com/js-arias/amptax/palette"
	"github.com/js-arias/amptax/phytree"
	"github.com/js-arias/amptax/seqs"
	"github.com/js-arias/amptax/taxonomy"
)

var (
	// ErrInvalidConfig is the error produced
	// by an invalid run configuration,
	// detected before any data transformation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmptyResult is the error produced
	// when a filter removes all features,
	// so the caller can relax the filter parameters.
	ErrEmptyResult = errors.New("empty result")

	// ErrInconsistentInput is the error produced
	// when the input datasets disagree with each other,
	// for example a retained feature
	// that is not a terminal of the tree.
	ErrInconsistentInput = errors.New("inconsistent input")
)

// Param is a collection of parameters
// for a curation run.
type Param struct {
	// Label for the annotation dataset
	Label string

	// Rank prefix of the grouping rank
	// (for example taxonomy.Genus)
	Rank string

	// Top is the number of groups to keep
	Top int

	// Palette is the ordered color list
	// cycled over the kept groups
	Palette palette.Palette
}

// A Result holds the outputs of a curation run.
type Result struct {
	// Kept groups in rank order
	Groups []abundance.Group

	// IDs of the retained features
	Members []string

	// Pruned frequency table
	Table *freqtab.Table

	// Pruned sequences
	// (nil if no sequence collection was given)
	Seqs *seqs.Collection

	// Pruned tree
	Tree *phytree.Tree

	// Color annotation of the pruned tree
	Strip *colorstrip.Dataset
}

// Run executes a curation run over a survey:
// a frequency table,
// its taxonomic assignments,
// an optional sequence collection,
// and a rooted tree
// whose terminals are feature IDs.
// The inputs are not modified;
// all outputs are newly built values.
func Run(t *freqtab.Table, tx *taxonomy.Taxonomy, sc *seqs.Collection, tr *phytree.Tree, p Param) (*Result, error) {
	if p.Top < 1 {
		return nil, fmt.Errorf("%w: top %d groups", ErrInvalidConfig, p.Top)
	}
	if len(p.Palette) == 0 {
		return nil, fmt.Errorf("%w: empty palette", ErrInvalidConfig)
	}
	if p.Rank == "" {
		return nil, fmt.Errorf("%w: empty rank prefix", ErrInvalidConfig)
	}

	groups := abundance.Groups(t, tx, p.Rank)
	ranked := abundance.Rank(t, groups)
	if p.Top > len(ranked) {
		return nil, fmt.Errorf("%w: top %d groups, only %d groups at rank %q", ErrInvalidConfig, p.Top, len(ranked), p.Rank)
	}
	kept := ranked[:p.Top]

	members := abundance.Members(groups, kept)
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: no features at rank %q for the top %d groups", ErrEmptyResult, p.Rank, p.Top)
	}

	// The table-sequence filter and the tree pruning
	// are independent of each other:
	// run them as a fork-join.
	var ft *freqtab.Table
	var fs *seqs.Collection
	var pt *phytree.Tree
	var tabErr, treeErr error

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		ft = t.Filter(members)
		if ft.Len() == 0 {
			tabErr = fmt.Errorf("%w: no table rows at rank %q for the top %d groups", ErrEmptyResult, p.Rank, p.Top)
			return
		}
		if sc != nil {
			fs = sc.Filter(members)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		pt, err = tr.Prune(members)
		if err != nil {
			if errors.Is(err, phytree.ErrNotInTree) {
				treeErr = fmt.Errorf("%w: %v", ErrInconsistentInput, err)
				return
			}
			treeErr = err
		}
	}()
	wg.Wait()
	if tabErr != nil {
		return nil, tabErr
	}
	if treeErr != nil {
		return nil, treeErr
	}

	names := make([]string, len(kept))
	for i, g := range kept {
		names[i] = g.Name
	}
	colors := p.Palette.Assign(names)

	strip, err := colorstrip.New(p.Label, pt.Terms(), groups, colors, names)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInconsistentInput, err)
	}

	return &Result{
		Groups:  kept,
		Members: members,
		Table:   ft,
		Seqs:    fs,
		Tree:    pt,
		Strip:   strip,
	}, nil
}

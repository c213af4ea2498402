// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"fmt"
	"os"

	"github.com/js-arias/amptax/freqtab"
	"github.com/js-arias/amptax/phytree"
	"github.com/js-arias/amptax/seqs"
	"github.com/js-arias/amptax/taxonomy"
)

// Counts reads the feature frequency table
// defined in a project.
func (p *Project) Counts() (*freqtab.Table, error) {
	name := p.Path(Counts)
	if name == "" {
		return nil, fmt.Errorf("frequency table not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := freqtab.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return t, nil
}

// Taxonomy reads the taxonomic assignments
// defined in a project.
func (p *Project) Taxonomy() (*taxonomy.Taxonomy, error) {
	name := p.Path(Taxonomy)
	if name == "" {
		return nil, fmt.Errorf("taxonomy not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tx, err := taxonomy.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return tx, nil
}

// Sequences reads the representative sequences
// defined in a project.
func (p *Project) Sequences() (*seqs.Collection, error) {
	name := p.Path(Sequences)
	if name == "" {
		return nil, fmt.Errorf("sequences not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc, err := seqs.Read(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return sc, nil
}

// Tree reads the phylogenetic tree
// defined in a project.
func (p *Project) Tree() (*phytree.Tree, error) {
	name := p.Path(Tree)
	if name == "" {
		return nil, fmt.Errorf("tree not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := phytree.Newick(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return t, nil
}

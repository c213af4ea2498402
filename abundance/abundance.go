// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package abundance ranks the taxonomic groups
// of an amplicon survey
// by their total frequency.
package abundance

import (
	"slices"
	"strings"

	"github.com/js-arias/amptax/freqtab"
	"github.com/js-arias/amptax/taxonomy"
)

// A Group is a taxonomic group
// at the ranked rank,
// with its total frequency
// summed over all member features
// and all samples.
type Group struct {
	Name string
	Freq float64
}

// Groups returns the group of each feature of a table
// at the rank indicated by a prefix.
// Features without a name at the rank
// are mapped to taxonomy.Unassigned.
func Groups(t *freqtab.Table, tx *taxonomy.Taxonomy, prefix string) map[string]string {
	gs := make(map[string]string, t.Len())
	for _, f := range t.Features() {
		gs[f] = tx.Group(f, prefix)
	}
	return gs
}

// Rank returns the groups of a table
// sorted by decreasing total frequency.
// Groups with equal frequency
// are sorted alphabetically,
// so the ranking is reproducible.
func Rank(t *freqtab.Table, groups map[string]string) []Group {
	freq := make(map[string]float64)
	for _, f := range t.Features() {
		freq[groups[f]] += t.Total(f)
	}

	gs := make([]Group, 0, len(freq))
	for n, fq := range freq {
		gs = append(gs, Group{Name: n, Freq: fq})
	}
	slices.SortFunc(gs, func(a, b Group) int {
		if a.Freq != b.Freq {
			if a.Freq > b.Freq {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	return gs
}

// Members returns the IDs of the features
// that belong to any of the kept groups,
// sorted alphabetically.
func Members(groups map[string]string, keep []Group) []string {
	ks := make(map[string]bool, len(keep))
	for _, g := range keep {
		ks[g.Name] = true
	}

	var ids []string
	for f, g := range groups {
		if ks[g] {
			ids = append(ids, f)
		}
	}
	slices.Sort(ids)
	return ids
}

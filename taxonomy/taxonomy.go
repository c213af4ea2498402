// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package taxonomy provides the taxonomic assignments
// of the features in an amplicon survey.
//
// An assignment is a hierarchical lineage string
// made of semicolon separated rank tokens,
// each token with a one letter rank prefix,
// for example:
//
//	d__Bacteria; p__Firmicutes; g__Bacillus; s__subtilis
package taxonomy

import (
	"fmt"
	"slices"
	"strings"
)

// Conventional rank prefixes
// used in amplicon taxonomic assignments.
const (
	Domain  = "d__"
	Phylum  = "p__"
	Class   = "c__"
	Order   = "o__"
	Family  = "f__"
	Genus   = "g__"
	Species = "s__"
)

// Unassigned is the group reported
// for features without a resolvable name
// at the requested rank.
const Unassigned = "Unassigned"

// Ranks returns the conventional rank prefixes
// in hierarchical order,
// from domain to species.
func Ranks() []string {
	return []string{Domain, Phylum, Class, Order, Family, Genus, Species}
}

// RankPrefix returns the rank prefix
// of a rank level,
// from 1 (domain)
// to 7 (species).
func RankPrefix(level int) (string, error) {
	rs := Ranks()
	if level < 1 || level > len(rs) {
		return "", fmt.Errorf("rank level %d out of range [1,%d]", level, len(rs))
	}
	return rs[level-1], nil
}

// AtRank returns the name assigned at a given rank
// on a lineage string,
// with the rank prefix stripped.
// The rank is indicated by its prefix
// (for example "g__" for a genus).
// If the lineage does not contain a token
// with the indicated prefix,
// or the name is empty,
// it returns Unassigned.
//
// If a lineage contains multiple tokens with the same prefix
// (malformed data),
// the first token wins.
func AtRank(taxon, prefix string) string {
	if taxon == "" || prefix == "" {
		return Unassigned
	}
	for _, tok := range strings.Split(taxon, ";") {
		tok = strings.TrimSpace(tok)
		if !strings.HasPrefix(tok, prefix) {
			continue
		}
		name := strings.TrimSpace(tok[len(prefix):])
		if name == "" {
			return Unassigned
		}
		return name
	}
	return Unassigned
}

// A Taxonomy is a collection of taxonomic assignments
// indexed by feature ID.
type Taxonomy struct {
	feat map[string]assign
}

type assign struct {
	taxon string
	conf  float64
}

// New creates a new empty taxonomy.
func New() *Taxonomy {
	return &Taxonomy{
		feat: make(map[string]assign),
	}
}

// Add adds the assignment of a feature
// with a confidence value.
// Empty feature IDs are ignored.
func (tx *Taxonomy) Add(id, taxon string, conf float64) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	tx.feat[id] = assign{
		taxon: strings.TrimSpace(taxon),
		conf:  conf,
	}
}

// Taxon returns the lineage string assigned to a feature.
// It returns an empty string
// if the feature has no assignment.
func (tx *Taxonomy) Taxon(id string) string {
	return tx.feat[id].taxon
}

// Confidence returns the confidence value
// of the assignment of a feature.
func (tx *Taxonomy) Confidence(id string) float64 {
	return tx.feat[id].conf
}

// Group returns the group of a feature
// at the rank indicated by a prefix.
// Features without an assignment,
// or without a name at the rank,
// are reported as Unassigned.
func (tx *Taxonomy) Group(id, prefix string) string {
	a, ok := tx.feat[id]
	if !ok {
		return Unassigned
	}
	return AtRank(a.taxon, prefix)
}

// Features returns the feature IDs with an assignment,
// sorted alphabetically.
func (tx *Taxonomy) Features() []string {
	ids := make([]string, 0, len(tx.feat))
	for id := range tx.feat {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of assigned features.
func (tx *Taxonomy) Len() int {
	return len(tx.feat)
}

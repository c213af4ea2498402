// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package freqtab provides a feature frequency table,
// the count of each feature
// on each sample of an amplicon survey.
package freqtab

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// A Table is a feature by sample count matrix.
// Rows are features and columns are samples,
// both kept in their insertion order.
type Table struct {
	samples []string
	cols    map[string]int
	feats   []string
	rows    map[string]int
	counts  [][]float64
}

// New creates a new empty table
// for the given samples.
func New(samples []string) *Table {
	cols := make(map[string]int, len(samples))
	for i, s := range samples {
		cols[s] = i
	}
	return &Table{
		samples: samples,
		cols:    cols,
		rows:    make(map[string]int),
	}
}

// Add adds a feature row to the table.
// The counts must be given in the sample order of the table.
func (t *Table) Add(feature string, counts []float64) error {
	if _, dup := t.rows[feature]; dup {
		return fmt.Errorf("feature %q already in table", feature)
	}
	if len(counts) != len(t.samples) {
		return fmt.Errorf("feature %q: got %d counts, want %d", feature, len(counts), len(t.samples))
	}
	for i, v := range counts {
		if v < 0 {
			return fmt.Errorf("feature %q: sample %q: negative count", feature, t.samples[i])
		}
	}

	t.rows[feature] = len(t.feats)
	t.feats = append(t.feats, feature)
	t.counts = append(t.counts, append([]float64(nil), counts...))
	return nil
}

// Count returns the count of a feature on a sample.
func (t *Table) Count(feature, sample string) float64 {
	r, ok := t.rows[feature]
	if !ok {
		return 0
	}
	c, ok := t.cols[sample]
	if !ok {
		return 0
	}
	return t.counts[r][c]
}

// Total returns the summed counts of a feature
// across all samples.
func (t *Table) Total(feature string) float64 {
	r, ok := t.rows[feature]
	if !ok {
		return 0
	}
	return floats.Sum(t.counts[r])
}

// HasFeature returns true if a feature is in the table.
func (t *Table) HasFeature(feature string) bool {
	_, ok := t.rows[feature]
	return ok
}

// Features returns the features of the table
// in row order.
func (t *Table) Features() []string {
	return append([]string(nil), t.feats...)
}

// Samples returns the samples of the table
// in column order.
func (t *Table) Samples() []string {
	return append([]string(nil), t.samples...)
}

// Len returns the number of features in the table.
func (t *Table) Len() int {
	return len(t.feats)
}

// Filter returns a new table
// with only the indicated features,
// keeping the row and column order
// and the count values of the receiver.
func (t *Table) Filter(keep []string) *Table {
	ks := make(map[string]bool, len(keep))
	for _, f := range keep {
		ks[f] = true
	}

	nt := New(t.Samples())
	for i, f := range t.feats {
		if !ks[f] {
			continue
		}
		nt.rows[f] = len(nt.feats)
		nt.feats = append(nt.feats, f)
		nt.counts = append(nt.counts, append([]float64(nil), t.counts[i]...))
	}
	return nt
}

// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package colorstrip builds the color annotation
// of the terminals of a pruned tree,
// in the color strip dataset format
// used by external tree viewers.
package colorstrip

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"slices"
	"strings"

	"github.com/js-arias/amptax/palette"
)

// DefaultColor is the outline color
// reported on the dataset header.
var DefaultColor = color.RGBA{128, 128, 128, 255}

// A Record is the annotation of a single terminal.
type Record struct {
	Term  string
	Color color.RGBA
	Group string
}

// A Dataset is a color strip annotation:
// a color and a group for each terminal of a tree,
// with a legend of the groups
// in rank order.
type Dataset struct {
	label  string
	groups []string
	colors map[string]color.RGBA
	recs   []Record
}

// New creates a color strip dataset
// for a set of tree terminals.
// The group of each terminal is taken from groups,
// the color of each group from colors,
// and the ranked group names
// (most abundant first)
// from order.
// Records are sorted by group rank
// and then by terminal name.
//
// It is an error if the group of a terminal
// has no assigned color.
func New(label string, terms []string, groups map[string]string, colors map[string]color.RGBA, order []string) (*Dataset, error) {
	rank := make(map[string]int, len(order))
	for i, g := range order {
		rank[g] = i
	}

	recs := make([]Record, 0, len(terms))
	for _, tm := range terms {
		g := groups[tm]
		c, ok := colors[g]
		if !ok {
			return nil, fmt.Errorf("terminal %q: group %q without a color", tm, g)
		}
		if _, ok := rank[g]; !ok {
			return nil, fmt.Errorf("terminal %q: group %q not in rank order", tm, g)
		}
		recs = append(recs, Record{
			Term:  tm,
			Color: c,
			Group: g,
		})
	}
	slices.SortFunc(recs, func(a, b Record) int {
		if ra, rb := rank[a.Group], rank[b.Group]; ra != rb {
			return ra - rb
		}
		return strings.Compare(a.Term, b.Term)
	})

	return &Dataset{
		label:  label,
		groups: append([]string(nil), order...),
		colors: colors,
		recs:   recs,
	}, nil
}

// Records returns the annotation records
// in dataset order.
func (d *Dataset) Records() []Record {
	return append([]Record(nil), d.recs...)
}

// Groups returns the group names of the legend
// in rank order.
func (d *Dataset) Groups() []string {
	return append([]string(nil), d.groups...)
}

// Strip writes the dataset
// as a tab separated color strip annotation file:
// a header block with the dataset label,
// the outline color,
// and the legend
// (colors and labels in rank order),
// and then a data line per terminal
// with the terminal name,
// its color,
// and its group.
func (d *Dataset) Strip(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "DATASET_COLORSTRIP\n")
	fmt.Fprintf(bw, "SEPARATOR TAB\n")
	fmt.Fprintf(bw, "DATASET_LABEL\t%s\n", d.label)
	fmt.Fprintf(bw, "COLOR\t%s\n", palette.Hex(DefaultColor))

	fmt.Fprintf(bw, "LEGEND_TITLE\t%s\n", d.label)
	shapes := make([]string, len(d.groups))
	colors := make([]string, len(d.groups))
	for i, g := range d.groups {
		shapes[i] = "1"
		colors[i] = palette.Hex(d.colors[g])
	}
	fmt.Fprintf(bw, "LEGEND_SHAPES\t%s\n", strings.Join(shapes, "\t"))
	fmt.Fprintf(bw, "LEGEND_COLORS\t%s\n", strings.Join(colors, "\t"))
	fmt.Fprintf(bw, "LEGEND_LABELS\t%s\n", strings.Join(d.groups, "\t"))

	fmt.Fprintf(bw, "DATA\n")
	for _, r := range d.recs {
		fmt.Fprintf(bw, "%s\t%s\t%s\n", r.Term, palette.Hex(r.Color), r.Group)
	}
	return bw.Flush()
}

// Legend writes the legend of the dataset,
// a tab separated line
// with the group name and its color,
// one group per line,
// in rank order.
func (d *Dataset) Legend(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, g := range d.groups {
		fmt.Fprintf(bw, "%s\t%s\n", g, palette.Hex(d.colors[g]))
	}
	return bw.Flush()
}

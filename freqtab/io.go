// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package freqtab

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadTSV reads a table from a TSV file.
//
// The first column of the file contains the feature IDs,
// and must be headed "feature id"
// (or "featureid", "feature", or "otu id").
// The remaining columns are samples,
// headed by the sample ID.
// Comment lines
// (such as the "# Constructed from biom file" line
// added by table exporters)
// are skipped,
// and a leading '#' on the header is ignored.
// Here is an example file:
//
//	#OTU ID	NYBG-soil-01	NYBG-soil-02	NYBG-soil-03
//	e2148e992c2a7cabc27b9b3f2f0b22ba	153	90	11
//	f19b2a9e1033166e3f45f34335e4e9a7	40	0	73
func ReadTSV(r io.Reader) (*Table, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.FieldsPerRecord = -1
	tab.LazyQuotes = true

	var head []string
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			return nil, errors.New("while reading header: unexpected EOF")
		}
		if err != nil {
			return nil, fmt.Errorf("while reading header: %v", err)
		}
		if len(row) == 1 && strings.HasPrefix(row[0], "#") {
			// comment line
			continue
		}
		head = row
		break
	}
	if len(head) < 2 {
		return nil, errors.New("while reading header: expecting feature and sample columns")
	}

	id := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(head[0], "#")))
	switch id {
	case "feature id", "featureid", "feature", "otu id":
	default:
		return nil, fmt.Errorf("while reading header: unknown feature column %q", head[0])
	}

	samples := make([]string, 0, len(head)-1)
	for _, s := range head[1:] {
		samples = append(samples, strings.TrimSpace(s))
	}
	t := New(samples)

	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
		if len(row) != len(head) {
			return nil, fmt.Errorf("on row %d: got %d fields, want %d", ln, len(row), len(head))
		}

		counts := make([]float64, len(samples))
		for i, v := range row[1:] {
			c, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("on row %d: sample %q: %v", ln, samples[i], err)
			}
			counts[i] = c
		}
		if err := t.Add(row[0], counts); err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
	}
	return t, nil
}

// TSV writes a table to a TSV file.
func (t *Table) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	header := append([]string{"feature id"}, t.samples...)
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for i, f := range t.feats {
		row := make([]string, 0, len(t.samples)+1)
		row = append(row, f)
		for _, c := range t.counts[i] {
			row = append(row, strconv.FormatFloat(c, 'g', -1, 64))
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}

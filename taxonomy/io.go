// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxonomy

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadTSV reads a taxonomy from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - feature id (or featureid, or feature),
//     the ID of the feature
//   - taxon, the assigned lineage string
//
// Optionally it can contain a confidence field
// with the confidence of the assignment.
// Any other field will be ignored.
// Here is an example file:
//
//	Feature ID	Taxon	Confidence
//	e2148e992c2a7cabc27b9b3f2f0b22ba	d__Bacteria; p__Firmicutes; g__Bacillus	0.998
//	f19b2a9e1033166e3f45f34335e4e9a7	d__Bacteria; p__Proteobacteria	0.912
func ReadTSV(r io.Reader) (*Taxonomy, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'
	tab.LazyQuotes = true

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(h))
		fields[h] = i
	}
	idField := ""
	for _, f := range []string{"feature id", "featureid", "feature"} {
		if _, ok := fields[f]; ok {
			idField = f
			break
		}
	}
	if idField == "" {
		return nil, fmt.Errorf("expecting field %q", "feature id")
	}
	if _, ok := fields["taxon"]; !ok {
		return nil, fmt.Errorf("expecting field %q", "taxon")
	}

	tx := New()
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		id := row[fields[idField]]

		f := "taxon"
		taxon := row[fields[f]]

		var conf float64
		f = "confidence"
		if c, ok := fields[f]; ok && row[c] != "" {
			conf, err = strconv.ParseFloat(row[c], 64)
			if err != nil {
				return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
			}
		}

		tx.Add(id, taxon, conf)
	}
	return tx, nil
}

// TSV writes a taxonomy to a TSV file.
func (tx *Taxonomy) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	header := []string{"feature id", "taxon", "confidence"}
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for _, id := range tx.Features() {
		a := tx.feat[id]
		row := []string{
			id,
			a.taxon,
			strconv.FormatFloat(a.conf, 'f', 6, 64),
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

// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package pipe_test

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/amptax/abundance"
	"github.com/js-arias/amptax/colorstrip"
	"github.com/js-arias/amptax/freqtab"
	"github.com/js-arias/amptax/palette"
	"github.com/js-arias/amptax/phytree"
	"github.com/js-arias/amptax/pipe"
	"github.com/js-arias/amptax/seqs"
	"github.com/js-arias/amptax/taxonomy"
)

var testPalette = palette.Palette{
	{68, 119, 170, 255},
	{102, 204, 238, 255},
	{34, 136, 51, 255},
}

func makeSurvey(t testing.TB) (*freqtab.Table, *taxonomy.Taxonomy, *seqs.Collection, *phytree.Tree) {
	t.Helper()

	tab := freqtab.New([]string{"S1", "S2"})
	rows := map[string][]float64{
		"F1": {6, 4},
		"F2": {3, 2},
		"F3": {1, 0},
	}
	for _, f := range []string{"F1", "F2", "F3"} {
		if err := tab.Add(f, rows[f]); err != nil {
			t.Fatalf("unable to add feature %q: %v", f, err)
		}
	}

	tx := taxonomy.New()
	tx.Add("F1", "d__Bacteria; p__Firmicutes; g__Alpha", 0.99)
	tx.Add("F2", "d__Bacteria; p__Firmicutes; g__Beta", 0.95)
	tx.Add("F3", "d__Bacteria; p__Firmicutes", 0.90)

	sc := seqs.New()
	for _, f := range []string{"F1", "F2", "F3"} {
		if err := sc.Add(f, "", "ACGT"); err != nil {
			t.Fatalf("unable to add sequence %q: %v", f, err)
		}
	}

	tr, err := phytree.Newick(strings.NewReader("((F1:1,F2:1):1,F3:2);"))
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}

	return tab, tx, sc, tr
}

func TestRun(t *testing.T) {
	tab, tx, sc, tr := makeSurvey(t)

	res, err := pipe.Run(tab, tx, sc, tr, pipe.Param{
		Label:   "test",
		Rank:    taxonomy.Genus,
		Top:     2,
		Palette: testPalette,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	groups := []abundance.Group{
		{Name: "Alpha", Freq: 10},
		{Name: "Beta", Freq: 5},
	}
	if !reflect.DeepEqual(res.Groups, groups) {
		t.Errorf("groups: got %v, want %v", res.Groups, groups)
	}
	members := []string{"F1", "F2"}
	if !reflect.DeepEqual(res.Members, members) {
		t.Errorf("members: got %v, want %v", res.Members, members)
	}

	if got := res.Table.Features(); !reflect.DeepEqual(got, members) {
		t.Errorf("table features: got %v, want %v", got, members)
	}
	if got := res.Seqs.IDs(); !reflect.DeepEqual(got, members) {
		t.Errorf("sequence IDs: got %v, want %v", got, members)
	}
	if got := res.Tree.Terms(); !reflect.DeepEqual(got, members) {
		t.Errorf("tree terminals: got %v, want %v", got, members)
	}

	var buf bytes.Buffer
	if err := res.Tree.Newick(&buf); err != nil {
		t.Fatalf("unable to write tree: %v", err)
	}
	if got := buf.String(); got != "(F1:1,F2:1):1;\n" {
		t.Errorf("tree: got %q, want %q", got, "(F1:1,F2:1):1;\n")
	}

	recs := []colorstrip.Record{
		{Term: "F1", Color: testPalette[0], Group: "Alpha"},
		{Term: "F2", Color: testPalette[1], Group: "Beta"},
	}
	if got := res.Strip.Records(); !reflect.DeepEqual(got, recs) {
		t.Errorf("records: got %v, want %v", got, recs)
	}
}

// With the same number of groups as the total,
// the run is an identity transform
// over the table features.
func TestRunAllGroups(t *testing.T) {
	tab, tx, sc, tr := makeSurvey(t)

	res, err := pipe.Run(tab, tx, sc, tr, pipe.Param{
		Label:   "test",
		Rank:    taxonomy.Genus,
		Top:     3,
		Palette: testPalette,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := res.Table.Features(); !reflect.DeepEqual(got, tab.Features()) {
		t.Errorf("table features: got %v, want %v", got, tab.Features())
	}
	if got := res.Tree.Terms(); !reflect.DeepEqual(got, tr.Terms()) {
		t.Errorf("tree terminals: got %v, want %v", got, tr.Terms())
	}
	groups := []abundance.Group{
		{Name: "Alpha", Freq: 10},
		{Name: "Beta", Freq: 5},
		{Name: taxonomy.Unassigned, Freq: 1},
	}
	if !reflect.DeepEqual(res.Groups, groups) {
		t.Errorf("groups: got %v, want %v", res.Groups, groups)
	}
}

// With a single retained feature,
// the tree is a single node,
// and the annotation has a single record.
func TestRunSingle(t *testing.T) {
	tab, tx, sc, tr := makeSurvey(t)

	res, err := pipe.Run(tab, tx, sc, tr, pipe.Param{
		Label:   "test",
		Rank:    taxonomy.Genus,
		Top:     1,
		Palette: testPalette,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(res.Members, []string{"F1"}) {
		t.Errorf("members: got %v, want %v", res.Members, []string{"F1"})
	}
	if res.Tree.Len() != 1 {
		t.Errorf("tree nodes: got %d, want %d", res.Tree.Len(), 1)
	}
	recs := res.Strip.Records()
	if len(recs) != 1 {
		t.Fatalf("records: got %d, want %d", len(recs), 1)
	}
	if want := (colorstrip.Record{Term: "F1", Color: testPalette[0], Group: "Alpha"}); recs[0] != want {
		t.Errorf("record: got %v, want %v", recs[0], want)
	}
	if got := res.Strip.Groups(); !reflect.DeepEqual(got, []string{"Alpha"}) {
		t.Errorf("legend groups: got %v, want %v", got, []string{"Alpha"})
	}
}

func TestRunErrors(t *testing.T) {
	tab, tx, sc, tr := makeSurvey(t)

	// invalid configurations
	// are detected before any data transformation
	params := map[string]pipe.Param{
		"zero top":      {Rank: taxonomy.Genus, Top: 0, Palette: testPalette},
		"too many":      {Rank: taxonomy.Genus, Top: 10, Palette: testPalette},
		"empty palette": {Rank: taxonomy.Genus, Top: 2},
		"empty rank":    {Top: 2, Palette: testPalette},
	}
	for name, p := range params {
		_, err := pipe.Run(tab, tx, sc, tr, p)
		if !errors.Is(err, pipe.ErrInvalidConfig) {
			t.Errorf("%s: got error %v, want %v", name, err, pipe.ErrInvalidConfig)
		}
	}

	// a retained feature absent from the tree
	st, err := phytree.Newick(strings.NewReader("(F1:1,F3:2);"))
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	_, err = pipe.Run(tab, tx, sc, st, pipe.Param{
		Label:   "test",
		Rank:    taxonomy.Genus,
		Top:     2,
		Palette: testPalette,
	})
	if !errors.Is(err, pipe.ErrInconsistentInput) {
		t.Errorf("got error %v, want %v", err, pipe.ErrInconsistentInput)
	}
	if err == nil || !strings.Contains(err.Error(), "F2") {
		t.Errorf("error %q: missing terminal %q", err, "F2")
	}
}

// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package freqtab_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/amptax/freqtab"
)

var tabBlob = `# Constructed from biom file
#OTU ID	soil-01	soil-02	soil-03
feat1	10	0	5
feat2	0	3	2
feat3	1	0	0
feat4	0	0	0
`

func TestReadTSV(t *testing.T) {
	tab, err := freqtab.ReadTSV(strings.NewReader(tabBlob))
	if err != nil {
		t.Fatalf("unable to read table: %v", err)
	}
	testTable(t, tab)

	var buf bytes.Buffer
	if err := tab.TSV(&buf); err != nil {
		t.Fatalf("unable to write table: %v", err)
	}
	nt, err := freqtab.ReadTSV(&buf)
	if err != nil {
		t.Fatalf("unable to read written table: %v", err)
	}
	testTable(t, nt)
}

func testTable(t testing.TB, tab *freqtab.Table) {
	t.Helper()

	samples := []string{"soil-01", "soil-02", "soil-03"}
	if got := tab.Samples(); !reflect.DeepEqual(got, samples) {
		t.Errorf("samples: got %v, want %v", got, samples)
	}
	feats := []string{"feat1", "feat2", "feat3", "feat4"}
	if got := tab.Features(); !reflect.DeepEqual(got, feats) {
		t.Errorf("features: got %v, want %v", got, feats)
	}
	if tab.Len() != len(feats) {
		t.Errorf("features: got %d, want %d", tab.Len(), len(feats))
	}

	if c := tab.Count("feat1", "soil-03"); c != 5 {
		t.Errorf("count: got %.6f, want %.6f", c, 5.0)
	}
	if c := tab.Count("no-feat", "soil-01"); c != 0 {
		t.Errorf("count: got %.6f, want %.6f", c, 0.0)
	}

	totals := map[string]float64{
		"feat1": 15,
		"feat2": 5,
		"feat3": 1,
		"feat4": 0,
	}
	for f, want := range totals {
		if got := tab.Total(f); got != want {
			t.Errorf("feature %q: got total %.6f, want %.6f", f, got, want)
		}
	}
}

func TestFilter(t *testing.T) {
	tab, err := freqtab.ReadTSV(strings.NewReader(tabBlob))
	if err != nil {
		t.Fatalf("unable to read table: %v", err)
	}

	ft := tab.Filter([]string{"feat3", "feat1", "no-feat"})
	feats := []string{"feat1", "feat3"}
	if got := ft.Features(); !reflect.DeepEqual(got, feats) {
		t.Errorf("features: got %v, want %v", got, feats)
	}
	if got := ft.Samples(); !reflect.DeepEqual(got, tab.Samples()) {
		t.Errorf("samples: got %v, want %v", got, tab.Samples())
	}
	if c := ft.Count("feat1", "soil-01"); c != 10 {
		t.Errorf("count: got %.6f, want %.6f", c, 10.0)
	}
	if ft.HasFeature("feat2") {
		t.Errorf("feature %q should be removed", "feat2")
	}

	// the source table is not modified
	if tab.Len() != 4 {
		t.Errorf("source features: got %d, want %d", tab.Len(), 4)
	}

	if e := tab.Filter(nil); e.Len() != 0 {
		t.Errorf("empty filter: got %d features, want 0", e.Len())
	}
}

func TestAddErrors(t *testing.T) {
	tab := freqtab.New([]string{"s1", "s2"})
	if err := tab.Add("feat1", []float64{1, 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tab.Add("feat1", []float64{1, 2}); err == nil {
		t.Errorf("expecting error on duplicated feature")
	}
	if err := tab.Add("feat2", []float64{1}); err == nil {
		t.Errorf("expecting error on count-sample mismatch")
	}
	if err := tab.Add("feat3", []float64{1, -2}); err == nil {
		t.Errorf("expecting error on negative count")
	}
}

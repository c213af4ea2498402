// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package abundance_test

import (
	"reflect"
	"testing"

	"github.com/js-arias/amptax/abundance"
	"github.com/js-arias/amptax/freqtab"
	"github.com/js-arias/amptax/taxonomy"
)

func makeData(t testing.TB) (*freqtab.Table, *taxonomy.Taxonomy) {
	t.Helper()

	tab := freqtab.New([]string{"S1"})
	rows := map[string]float64{
		"F1": 10,
		"F2": 5,
		"F3": 1,
	}
	for _, f := range []string{"F1", "F2", "F3"} {
		if err := tab.Add(f, []float64{rows[f]}); err != nil {
			t.Fatalf("unable to add feature %q: %v", f, err)
		}
	}

	tx := taxonomy.New()
	tx.Add("F1", "d__Bacteria; p__Firmicutes; g__Alpha; s__one", 0.99)
	tx.Add("F2", "d__Bacteria; p__Firmicutes; g__Beta", 0.95)
	tx.Add("F3", "d__Bacteria; p__Firmicutes", 0.90)

	return tab, tx
}

func TestRank(t *testing.T) {
	tab, tx := makeData(t)

	groups := abundance.Groups(tab, tx, taxonomy.Genus)
	wantGroups := map[string]string{
		"F1": "Alpha",
		"F2": "Beta",
		"F3": taxonomy.Unassigned,
	}
	if !reflect.DeepEqual(groups, wantGroups) {
		t.Errorf("groups: got %v, want %v", groups, wantGroups)
	}

	ranked := abundance.Rank(tab, groups)
	want := []abundance.Group{
		{Name: "Alpha", Freq: 10},
		{Name: "Beta", Freq: 5},
		{Name: taxonomy.Unassigned, Freq: 1},
	}
	if !reflect.DeepEqual(ranked, want) {
		t.Errorf("ranking: got %v, want %v", ranked, want)
	}

	// re-runs give an identical ranking
	again := abundance.Rank(tab, abundance.Groups(tab, tx, taxonomy.Genus))
	if !reflect.DeepEqual(again, ranked) {
		t.Errorf("ranking is not reproducible: got %v, want %v", again, ranked)
	}
}

func TestRankTies(t *testing.T) {
	tab := freqtab.New([]string{"S1"})
	rows := []struct {
		feat  string
		count float64
		taxon string
	}{
		{"F1", 5, "g__Zeta"},
		{"F2", 5, "g__Alpha"},
		{"F3", 5, "g__Mu"},
	}
	tx := taxonomy.New()
	for _, r := range rows {
		if err := tab.Add(r.feat, []float64{r.count}); err != nil {
			t.Fatalf("unable to add feature %q: %v", r.feat, err)
		}
		tx.Add(r.feat, r.taxon, 1)
	}

	ranked := abundance.Rank(tab, abundance.Groups(tab, tx, taxonomy.Genus))
	want := []abundance.Group{
		{Name: "Alpha", Freq: 5},
		{Name: "Mu", Freq: 5},
		{Name: "Zeta", Freq: 5},
	}
	if !reflect.DeepEqual(ranked, want) {
		t.Errorf("ranking: got %v, want %v", ranked, want)
	}
}

func TestMembers(t *testing.T) {
	tab, tx := makeData(t)
	groups := abundance.Groups(tab, tx, taxonomy.Genus)
	ranked := abundance.Rank(tab, groups)

	got := abundance.Members(groups, ranked[:2])
	want := []string{"F1", "F2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("members: got %v, want %v", got, want)
	}

	// with all the groups, all the features are kept
	got = abundance.Members(groups, ranked)
	want = []string{"F1", "F2", "F3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("members: got %v, want %v", got, want)
	}
}

// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package rank implements a command to print
// the abundance ranking of the taxonomic groups
// of an amptax project.
package rank

import (
	"fmt"

	"github.com/js-arias/amptax/abundance"
	"github.com/js-arias/amptax/project"
	"github.com/js-arias/amptax/taxonomy"
	"github.com/js-arias/command"
	"gonum.org/v1/gonum/stat"
)

var Command = &command.Command{
	Usage: "rank [--rank <prefix>] [--level <number>] [--top <number>] <project-file>",
	Short: "print the abundance ranking of taxonomic groups",
	Long: `
Command rank reads the frequency table and the taxonomy of an amptax project,
groups the features at a taxonomic rank, and prints the groups sorted by
their total frequency, the most abundant first. Groups with the same
frequency are sorted alphabetically, so the ranking is always reproducible.

The argument of the command is the name of the project file.

By default, groups are made at the genus rank ("g__" prefix). Use the flag
--rank to set a different rank prefix, or the flag --level to set the rank
by its level, from 1 (domain) to 7 (species). Features without a name at
the rank are grouped as "Unassigned".

By default all groups will be printed. If the flag --top is set, only the
indicated number of most abundant groups will be printed.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var levelFlag int
var rankFlag string
var topFlag int

func setFlags(c *command.Command) {
	c.Flags().IntVar(&levelFlag, "level", 0, "")
	c.Flags().StringVar(&rankFlag, "rank", taxonomy.Genus, "")
	c.Flags().IntVar(&topFlag, "top", 0, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if levelFlag > 0 {
		r, err := taxonomy.RankPrefix(levelFlag)
		if err != nil {
			return c.UsageError(err.Error())
		}
		rankFlag = r
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	t, err := p.Counts()
	if err != nil {
		return err
	}
	tx, err := p.Taxonomy()
	if err != nil {
		return err
	}

	groups := abundance.Groups(t, tx, rankFlag)
	ranked := abundance.Rank(t, groups)

	freqs := make([]float64, len(ranked))
	for i, g := range ranked {
		freqs[i] = g.Freq
	}

	top := len(ranked)
	if topFlag > 0 && topFlag < top {
		top = topFlag
	}
	fmt.Fprintf(c.Stdout(), "rank\tgroup\tfrequency\n")
	for i, g := range ranked[:top] {
		fmt.Fprintf(c.Stdout(), "%d\t%s\t%.6f\n", i, g.Name, g.Freq)
	}

	mean := stat.Mean(freqs, nil)
	sd := stat.StdDev(freqs, nil)
	fmt.Fprintf(c.Stdout(), "# groups: %d, mean frequency: %.6f, stdev: %.6f\n", len(ranked), mean, sd)
	return nil
}

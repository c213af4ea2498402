// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package prune implements a command to prune the datasets
// of an amptax project
// down to the most abundant taxonomic groups,
// and to build the color annotation of the pruned tree.
package prune

import (
	"fmt"
	"os"

	"github.com/js-arias/amptax/palette"
	"github.com/js-arias/amptax/pipe"
	"github.com/js-arias/amptax/project"
	"github.com/js-arias/amptax/seqs"
	"github.com/js-arias/amptax/taxonomy"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: `prune --top <number> [--rank <prefix>] [--level <number>]
	[--palette <palette-file>] [--label <label>]
	[-o|--output <prefix>] <project-file>`,
	Short: "prune a project to the most abundant groups",
	Long: `
Command prune reads the datasets of an amptax project, keeps the features
that belong to the most abundant taxonomic groups, and writes the pruned
frequency table, the pruned sequences, the pruned tree, and the color
annotation of the pruned tree terminals, for an external tree viewer.

The argument of the command is the name of the project file. The project must
define a frequency table, a taxonomy, and a tree; sequences are optional.

The flag --top is required and indicates the number of groups to be kept.

By default, groups are made at the genus rank ("g__" prefix). Use the flag
--rank to set a different rank prefix, or the flag --level to set the rank
by its level, from 1 (domain) to 7 (species). Features without a name at
the rank are grouped as "Unassigned".

By default, group colors are cycled from a palette of 12 colors made from
the iridescent color scheme; use the flag --palette to read a palette file,
a TSV file with a "color" field of comma separated RGB values, one color per
row, in palette order.

By default, output files are prefixed with "prune"; use the flag --output,
or -o, to set a different prefix. The files written are:

	<prefix>-table.tab	the pruned frequency table
	<prefix>-seqs.fasta	the pruned sequences (if defined)
	<prefix>.tree		the pruned tree, in newick format
	<prefix>-strip.txt	the color strip annotation of the tree
	<prefix>-legend.tab	the group-color legend, in rank order

Use the flag --label to set the label of the annotation dataset; the default
is the output prefix.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var labelFlag string
var levelFlag int
var outFlag string
var palFlag string
var rankFlag string
var topFlag int

func setFlags(c *command.Command) {
	c.Flags().StringVar(&labelFlag, "label", "", "")
	c.Flags().IntVar(&levelFlag, "level", 0, "")
	c.Flags().StringVar(&outFlag, "output", "prune", "")
	c.Flags().StringVar(&outFlag, "o", "prune", "")
	c.Flags().StringVar(&palFlag, "palette", "", "")
	c.Flags().StringVar(&rankFlag, "rank", taxonomy.Genus, "")
	c.Flags().IntVar(&topFlag, "top", 0, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if topFlag < 1 {
		return c.UsageError("flag --top must be set to a positive value")
	}
	if levelFlag > 0 {
		r, err := taxonomy.RankPrefix(levelFlag)
		if err != nil {
			return c.UsageError(err.Error())
		}
		rankFlag = r
	}

	pal := palette.Default()
	if palFlag != "" {
		var err error
		pal, err = readPalette(palFlag)
		if err != nil {
			return err
		}
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
	tr, err := p.Tree()
	if err != nil {
		return err
	}

	var sc *seqs.Collection
	if p.Path(project.Sequences) != "" {
		sc, err = p.Sequences()
		if err != nil {
			return err
		}
	}

	label := labelFlag
	if label == "" {
		label = outFlag
	}
	res, err := pipe.Run(t, tx, sc, tr, pipe.Param{
		Label:   label,
		Rank:    rankFlag,
		Top:     topFlag,
		Palette: pal,
	})
	if err != nil {
		return err
	}

	if err := writeTable(res); err != nil {
		return err
	}
	if res.Seqs != nil {
		if err := writeSeqs(res); err != nil {
			return err
		}
	}
	if err := writeTree(res); err != nil {
		return err
	}
	if err := writeStrip(res); err != nil {
		return err
	}
	if err := writeLegend(res); err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout(), "kept groups: %d, retained features: %d, tree terminals: %d\n",
		len(res.Groups), len(res.Members), len(res.Tree.Terms()))
	return nil
}

func readPalette(name string) (palette.Palette, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pal, err := palette.Read(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return pal, nil
}

func writeTable(res *pipe.Result) (err error) {
	name := outFlag + "-table.tab"
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := res.Table.TSV(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}

func writeSeqs(res *pipe.Result) (err error) {
	name := outFlag + "-seqs.fasta"
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := res.Seqs.Write(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}

func writeTree(res *pipe.Result) (err error) {
	name := outFlag + ".tree"
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := res.Tree.Newick(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}

func writeStrip(res *pipe.Result) (err error) {
	name := outFlag + "-strip.txt"
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := res.Strip.Strip(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}

func writeLegend(res *pipe.Result) (err error) {
	name := outFlag + "-legend.tab"
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := res.Strip.Legend(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}

// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add dataset files
// to an amptax project.
package add

import (
	"errors"
	"fmt"
	"os"

	"github.com/js-arias/amptax/freqtab"
	"github.com/js-arias/amptax/phytree"
	"github.com/js-arias/amptax/project"
	"github.com/js-arias/amptax/seqs"
	"github.com/js-arias/amptax/taxonomy"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: "add --type <dataset> <project-file> <dataset-file>",
	Short: "add a dataset file to an amptax project",
	Long: `
Command add registers a dataset file into an amptax project. Before adding
the file, the command reads it, so only well formed files will be added.

The flag --type is required and indicates the kind of the dataset file. Valid
values are:

	counts     a feature frequency table (feature by sample counts, TSV)
	taxonomy   the taxonomic assignments of the features (TSV)
	sequences  the representative sequences of the features (FASTA)
	tree       a rooted phylogenetic tree with branch lengths (newick)

The first argument of the command is the name of the project file. If no
project file exists, a new project will be created.

The second argument is the name of the dataset file. If a dataset of the same
type was defined previously in the project, it will be replaced (the file
itself is never modified or removed).
	`,
	SetFlags: setFlags,
	Run:      run,
}

var typeFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&typeFlag, "type", "", "")
}

func run(c *command.Command, args []string) error {
	if typeFlag == "" {
		return c.UsageError("flag --type undefined")
	}
	if len(args) < 2 {
		return c.UsageError("expecting project and dataset files")
	}

	p, err := openProject(args[0])
	if err != nil {
		return err
	}

	name := args[1]
	set := project.Dataset(typeFlag)
	switch set {
	case project.Counts:
		err = checkCounts(name)
	case project.Taxonomy:
		err = checkTaxonomy(name)
	case project.Sequences:
		err = checkSequences(name)
	case project.Tree:
		err = checkTree(name)
	default:
		return c.UsageError(fmt.Sprintf("unknown dataset type %q", typeFlag))
	}
	if err != nil {
		return err
	}

	p.Add(set, name)
	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

func openProject(name string) (*project.Project, error) {
	p, err := project.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p := project.New()
		p.SetName(name)
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open project %q: %v", name, err)
	}
	return p, nil
}

func checkCounts(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := freqtab.ReadTSV(f); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}

func checkTaxonomy(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := taxonomy.ReadTSV(f); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}

func checkSequences(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := seqs.Read(f); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}

func checkTree(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := phytree.Newick(f); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}

// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package prj implements a command to print
// the basic information of a project.
package prj

import (
	"fmt"
	"io"

	"github.com/js-arias/amptax/project"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: "prj <project-file>",
	Short: "print information about a project",
	Long: `
Command prj reads an amptax project and prints the information of the
different project elements into the standard output.

The argument of the command is the name of the project file.
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	if p.Path(project.Counts) != "" {
		if err := printCounts(c.Stdout(), p); err != nil {
			return err
		}
	}
	if p.Path(project.Taxonomy) != "" {
		if err := printTaxonomy(c.Stdout(), p); err != nil {
			return err
		}
	}
	if p.Path(project.Sequences) != "" {
		if err := printSequences(c.Stdout(), p); err != nil {
			return err
		}
	}
	if p.Path(project.Tree) != "" {
		if err := printTree(c.Stdout(), p); err != nil {
			return err
		}
	}

	return nil
}

func printCounts(w io.Writer, p *project.Project) error {
	t, err := p.Counts()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Frequency table:\n")
	fmt.Fprintf(w, "\tfile: %s\n", p.Path(project.Counts))
	fmt.Fprintf(w, "\tfeatures: %d\n", t.Len())
	fmt.Fprintf(w, "\tsamples: %d\n", len(t.Samples()))
	fmt.Fprintf(w, "\n")
	return nil
}

func printTaxonomy(w io.Writer, p *project.Project) error {
	tx, err := p.Taxonomy()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Taxonomy:\n")
	fmt.Fprintf(w, "\tfile: %s\n", p.Path(project.Taxonomy))
	fmt.Fprintf(w, "\tassigned features: %d\n", tx.Len())
	fmt.Fprintf(w, "\n")
	return nil
}

func printSequences(w io.Writer, p *project.Project) error {
	sc, err := p.Sequences()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Sequences:\n")
	fmt.Fprintf(w, "\tfile: %s\n", p.Path(project.Sequences))
	fmt.Fprintf(w, "\tsequences: %d\n", sc.Len())
	fmt.Fprintf(w, "\n")
	return nil
}

func printTree(w io.Writer, p *project.Project) error {
	t, err := p.Tree()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Tree:\n")
	fmt.Fprintf(w, "\tfile: %s\n", p.Path(project.Tree))
	fmt.Fprintf(w, "\tterminals: %d\n", len(t.Terms()))
	fmt.Fprintf(w, "\tnodes: %d\n", t.Len())
	fmt.Fprintf(w, "\n")
	return nil
}

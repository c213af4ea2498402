// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package terms implements a command to print
// the list of the terminals of the tree of an amptax project.
package terms

import (
	"fmt"

	"github.com/js-arias/amptax/project"
	"github.com/js-arias/command"
	"golang.org/x/exp/slices"
)

var Command = &command.Command{
	Usage: "terms [--rank <prefix>] <project-file>",
	Short: "print a list of tree terminals",
	Long: `
Command terms reads the tree from an amptax project and prints the name of
the terminals in the standard output.

The argument of the command is the name of the project file.

If the flag --rank is set to a rank prefix (for example "g__" for genus),
the group of each terminal at that rank will be printed next to the terminal
name. Terminals without a group at the rank are reported as "Unassigned".
	`,
	SetFlags: setFlags,
	Run:      run,
}

var rankFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&rankFlag, "rank", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	t, err := p.Tree()
	if err != nil {
		return err
	}

	terms := t.Terms()
	slices.Sort(terms)

	if rankFlag == "" {
		for _, term := range terms {
			fmt.Fprintf(c.Stdout(), "%s\n", term)
		}
		return nil
	}

	tx, err := p.Taxonomy()
	if err != nil {
		return err
	}
	for _, term := range terms {
		fmt.Fprintf(c.Stdout(), "%s\t%s\n", term, tx.Group(term, rankFlag))
	}
	return nil
}

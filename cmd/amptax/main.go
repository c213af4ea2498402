// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Amptax is a tool to curate the taxonomic composition
// of an amplicon survey.
package main

import (
	"github.com/js-arias/amptax/cmd/amptax/add"
	"github.com/js-arias/amptax/cmd/amptax/prj"
	"github.com/js-arias/amptax/cmd/amptax/prune"
	"github.com/js-arias/amptax/cmd/amptax/rank"
	"github.com/js-arias/amptax/cmd/amptax/terms"
	"github.com/js-arias/command"
)

var app = &command.Command{
	Usage: "amptax <command> [<argument>...]",
	Short: "a tool to curate the taxonomic composition of an amplicon survey",
}

func init() {
	app.Add(add.Command)
	app.Add(prj.Command)
	app.Add(prune.Command)
	app.Add(rank.Command)
	app.Add(terms.Command)
}

func main() {
	app.Main()
}

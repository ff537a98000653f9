// Package main provides the entry point for the dossier CLI tool.
package main

import (
	"github.com/dossierlab/dossier/cmd/dossier/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}

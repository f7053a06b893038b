// Package main is the entry point for the btpipe CLI.
//
// btpipe automates fine-tuning Amazon Nova on support-ticket data: it
// generates a synthetic dataset, provisions the S3 bucket and IAM role the
// training job needs, converts the tickets to the Nova conversation format,
// submits the model-customization job, and watches it to completion. All
// provisioned identifiers are kept in a local state file so an interrupted
// run picks up where it left off.
//
// Commands: generate, train, status, test, cleanup.
//
// For detailed usage information, run:
//
//	btpipe --help
package main

import (
	"fmt"
	"os"

	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/cmd/btpipe/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/swiftdeps/modscan"
	"github.com/swiftdeps/modscan/cmd/internal/cliutil"
	"github.com/swiftdeps/modscan/internal/batch"
)

const batchScanUsage = `modscan batch-scan - Run a YAML batch of full scans

Usage:
  modscan batch-scan [options] INPUT.yaml

Options:
  --search-path DIR  Directories to index for module search (comma-separated; if repeated, only the last value is used)
  --context HASH      Cache context digest shared by every entry's primary sub-instance
  -h, --help          Show help

An entry's failure is written to its own output slot and does not stop the
other entries in the batch; the process exit code still reflects it.
`

func (c *cli) cmdBatchScan(args []string) int {
	fs := flag.NewFlagSet("batch-scan", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, batchScanUsage) }

	searchPath := fs.String("search-path", "", "directories to index for module search")
	contextHash := fs.String("context", "", "cache context digest")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help || c.helpFlag {
		fmt.Fprint(os.Stdout, batchScanUsage)
		return exitOK
	}

	inputPath := fs.Arg(0)
	if inputPath == "" {
		cliutil.PrintError("no batch-input file given")
		fmt.Fprint(os.Stderr, batchScanUsage)
		return exitError
	}

	entries, in, err := loadBatchInput(inputPath)
	if err != nil {
		cliutil.PrintError("%v", err)
		return exitError
	}
	defer in.Close()

	dispatcher := newDispatcher(splitCommaList(*searchPath), *contextHash, c.setupLogger())

	return runBatch(entries, dispatcher, func(sub *batch.SubInstance, entry batch.Entry) error {
		g, err := modscan.ScanSubInstance(sub.Context, sub.Cache, sub.Loader, entry.ModuleName, entry.IsSwift)
		if err != nil {
			if writeErr := writeEntryError(entry.Output, err); writeErr != nil {
				cliutil.PrintError("%s: %v", entry.Output, writeErr)
			}
			return err
		}
		return writeEntryGraph(entry.Output, g)
	})
}

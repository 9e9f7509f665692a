package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/swiftdeps/modscan"
	"github.com/swiftdeps/modscan/cmd/internal/cliutil"
	"github.com/swiftdeps/modscan/internal/batch"
)

const batchPrescanUsage = `modscan batch-prescan - Run a YAML batch of prescans

Usage:
  modscan batch-prescan [options] INPUT.yaml

Options:
  --search-path DIR  Directories to index for module search (comma-separated; if repeated, only the last value is used)
  --context HASH      Cache context digest shared by every entry's primary sub-instance
  -h, --help          Show help
`

func (c *cli) cmdBatchPrescan(args []string) int {
	fs := flag.NewFlagSet("batch-prescan", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, batchPrescanUsage) }

	searchPath := fs.String("search-path", "", "directories to index for module search")
	contextHash := fs.String("context", "", "cache context digest")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help || c.helpFlag {
		fmt.Fprint(os.Stdout, batchPrescanUsage)
		return exitOK
	}

	inputPath := fs.Arg(0)
	if inputPath == "" {
		cliutil.PrintError("no batch-input file given")
		fmt.Fprint(os.Stderr, batchPrescanUsage)
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
		imports, err := modscan.PrescanSubInstance(sub.Cache, sub.Loader, entry.ModuleName, entry.IsSwift)
		if err != nil {
			if writeErr := writeEntryError(entry.Output, err); writeErr != nil {
				cliutil.PrintError("%s: %v", entry.Output, writeErr)
			}
			return err
		}
		return writeEntryPrescan(entry.Output, imports)
	})
}

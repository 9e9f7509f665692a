package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/swiftdeps/modscan"
	"github.com/swiftdeps/modscan/cmd/internal/cliutil"
	"github.com/swiftdeps/modscan/internal/fshost"
	"github.com/swiftdeps/modscan/internal/importscan"
)

const scanUsage = `modscan scan - Resolve a root's full module dependency graph

Usage:
  modscan scan [options] SOURCE_FILE...

Options:
  --root NAME       Root module name (required)
  --search-path DIR Directories to index for module search (comma-separated; if repeated, only the last value is used)
  --stdlib NAME     Implicit standard-library module name
  --output FILE     Write JSON to FILE instead of stdout
  --context HASH    Scope the in-process cache to this configuration digest
  -h, --help        Show help

Examples:
  modscan scan --root App --search-path ./Modules App.swift
  modscan -v scan --root App --search-path ./Modules App.swift
`

func (c *cli) cmdScan(args []string) int {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, scanUsage) }

	root := fs.String("root", "", "root module name")
	searchPath := fs.String("search-path", "", "directories to index for module search")
	stdlib := fs.String("stdlib", "", "implicit standard-library module name")
	output := fs.String("output", "", "output file (defaults to stdout)")
	contextHash := fs.String("context", "", "cache context digest")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help || c.helpFlag {
		fmt.Fprint(os.Stdout, scanUsage)
		return exitOK
	}

	sources := fs.Args()
	if *root == "" {
		cliutil.PrintError("no --root given")
		fmt.Fprint(os.Stderr, scanUsage)
		return exitError
	}
	if len(sources) == 0 {
		cliutil.PrintError("no source files given")
		fmt.Fprint(os.Stderr, scanUsage)
		return exitError
	}

	host, err := newFSHost(splitCommaList(*searchPath))
	if err != nil {
		cliutil.PrintError("%v", err)
		return exitError
	}

	opts := []modscan.ScanOption{
		modscan.WithHost(host),
		modscan.WithSourceImportScanner(importscan.Scanner{}),
		modscan.WithRoot(*root, sources...),
		modscan.WithContextHash(*contextHash),
	}
	if *stdlib != "" {
		opts = append(opts, modscan.WithStdlib(*stdlib))
	}
	if logger := c.setupLogger(); logger != nil {
		opts = append(opts, modscan.WithLogger(logger))
	}

	g, err := modscan.Scan(opts...)
	if err != nil {
		return reportScanError(err)
	}

	out, closeOut, err := cliutil.GetOutput(*output)
	if err != nil {
		cliutil.PrintError("%v", err)
		return exitError
	}
	defer closeOut()

	if err := g.WriteJSON(out); err != nil {
		cliutil.PrintError("%v", err)
		return exitError
	}
	return exitOK
}

// newFSHost builds the default filesystem-backed Host over the given
// search-path directories, falling back to the working directory when none
// are given.
func newFSHost(searchPaths []string) (modscan.Host, error) {
	if len(searchPaths) == 0 {
		searchPaths = []string{"."}
	}
	return fshost.NewMulti(searchPaths)
}

// reportScanError maps a Scan/Prescan error to the process exit code it
// corresponds to (spec.md §6 "Exit codes": a detected cycle gets its own
// code distinct from other failures).
func reportScanError(err error) int {
	cliutil.PrintError("%v", err)
	if modscan.IsCycleDetected(err) {
		return exitCycle
	}
	return exitError
}

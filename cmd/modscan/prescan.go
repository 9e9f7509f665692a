package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/swiftdeps/modscan"
	"github.com/swiftdeps/modscan/cmd/internal/cliutil"
	"github.com/swiftdeps/modscan/internal/importscan"
)

const prescanUsage = `modscan prescan - Emit a root's direct module imports

Usage:
  modscan prescan [options] SOURCE_FILE...

Options:
  --root NAME    Root module name (required)
  --stdlib NAME  Implicit standard-library module name
  --output FILE  Write JSON to FILE instead of stdout
  -h, --help     Show help
`

func (c *cli) cmdPrescan(args []string) int {
	fs := flag.NewFlagSet("prescan", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, prescanUsage) }

	root := fs.String("root", "", "root module name")
	stdlib := fs.String("stdlib", "", "implicit standard-library module name")
	output := fs.String("output", "", "output file (defaults to stdout)")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help || c.helpFlag {
		fmt.Fprint(os.Stdout, prescanUsage)
		return exitOK
	}

	sources := fs.Args()
	if *root == "" {
		cliutil.PrintError("no --root given")
		fmt.Fprint(os.Stderr, prescanUsage)
		return exitError
	}
	if len(sources) == 0 {
		cliutil.PrintError("no source files given")
		fmt.Fprint(os.Stderr, prescanUsage)
		return exitError
	}

	opts := []modscan.ScanOption{
		modscan.WithSourceImportScanner(importscan.Scanner{}),
		modscan.WithRoot(*root, sources...),
	}
	if *stdlib != "" {
		opts = append(opts, modscan.WithStdlib(*stdlib))
	}

	imports, err := modscan.Prescan(opts...)
	if err != nil {
		cliutil.PrintError("%v", err)
		return exitError
	}

	out, closeOut, err := cliutil.GetOutput(*output)
	if err != nil {
		cliutil.PrintError("%v", err)
		return exitError
	}
	defer closeOut()

	if err := modscan.WritePrescan(out, imports); err != nil {
		cliutil.PrintError("%v", err)
		return exitError
	}
	return exitOK
}

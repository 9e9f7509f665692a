// Command modscan discovers the transitive closure of Swift and Clang
// modules a root compilation depends on and emits a JSON dependency graph.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/swiftdeps/modscan"
)

// Exit codes (spec.md §6 "Exit codes").
const (
	exitOK    = 0 // success
	exitError = 1 // argument, I/O, or batch-entry failure
	exitCycle = 2 // a dependency cycle was detected
)

const usage = `modscan - Swift/Clang module dependency scanner

Usage:
  modscan <command> [options] [arguments]

Commands:
  scan           Full scan: resolve and emit the dependency graph
  prescan        Emit only the root's direct imports
  batch-scan     Run a YAML batch of full scans
  batch-prescan  Run a YAML batch of prescans
  version        Show version

Common options:
  -v, --verbose  Enable debug logging
  -vv            Enable trace logging (implies -v)
  -h, --help     Show help
`

type cli struct {
	verbose  int
	helpFlag bool
}

func main() {
	os.Exit(run())
}

func run() int {
	var c cli
	args := os.Args[1:]
	var cmdArgs []string
	var cmd string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			c.helpFlag = true
		case arg == "-v" || arg == "--verbose":
			if c.verbose < 1 {
				c.verbose = 1
			}
		case arg == "-vv":
			c.verbose = 2
		case len(arg) > 0 && arg[0] == '-':
			cmdArgs = append(cmdArgs, arg)
		default:
			if cmd == "" {
				cmd = arg
			} else {
				cmdArgs = append(cmdArgs, arg)
			}
		}
	}

	if c.helpFlag && cmd == "" {
		fmt.Fprint(os.Stdout, usage)
		return exitOK
	}
	if cmd == "" {
		fmt.Fprint(os.Stderr, usage)
		return exitError
	}

	switch cmd {
	case "scan":
		return c.cmdScan(cmdArgs)
	case "prescan":
		return c.cmdPrescan(cmdArgs)
	case "batch-scan":
		return c.cmdBatchScan(cmdArgs)
	case "batch-prescan":
		return c.cmdBatchPrescan(cmdArgs)
	case "version":
		printVersion()
		return exitOK
	case "help":
		fmt.Fprint(os.Stdout, usage)
		return exitOK
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		return exitError
	}
}

func (c *cli) setupLogger() *slog.Logger {
	if c.verbose == 0 {
		return nil
	}
	level := slog.LevelDebug
	if c.verbose >= 2 {
		level = modscan.LevelTrace
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// splitCommaList splits "-path a,b,c"-style flags into their components,
// dropping empty segments.
func splitCommaList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

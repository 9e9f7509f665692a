// Package modscan discovers the transitive closure of Swift and Clang
// modules a root Swift compilation depends on, detects cycles, and emits a
// JSON dependency graph.
//
// Call [Scan] with a [Host] and one or more options to run a full scan, or
// [Prescan] to list only the root's direct imports without resolving them.
package modscan

import "errors"

// ErrInputMissing is returned when a batch-input document cannot be opened.
// A root source file that cannot be read surfaces as the import scanner's
// own error, not wrapped in this one.
var ErrInputMissing = errors.New("modscan: input missing")

// ErrInputCorrupted is returned when an input exists but cannot be parsed
// (malformed batch YAML, an entry missing a required key).
var ErrInputCorrupted = errors.New("modscan: input corrupted")

// ErrArgumentsInvalid is returned when a scan's configuration is
// self-contradictory (e.g. no root name, no host, or source files given
// without an import scanner). A root with no source files is valid.
var ErrArgumentsInvalid = errors.New("modscan: invalid arguments")

// ErrOutputOpenFailed is returned when the destination for a graph or
// prescan document cannot be opened for writing.
var ErrOutputOpenFailed = errors.New("modscan: output open failed")

// ErrModuleNotFound is returned when a batch entry's named root module
// cannot be located by the configured Host.
var ErrModuleNotFound = errors.New("modscan: module not found")

// ErrCycleDetected is returned by Scan when the resolved dependency graph
// contains a cycle; the error's message is the formatted chain produced by
// the cycle diagnoser (e.g. "X.swiftmodule -> Y.swiftmodule -> X.swiftmodule").
var ErrCycleDetected = errors.New("modscan: dependency cycle detected")

// IsCycleDetected reports whether err (or one it wraps) is ErrCycleDetected,
// the distinction a caller needs to choose between a generic failure exit
// code and the cycle-specific one (spec.md §6 "Exit codes").
func IsCycleDetected(err error) bool {
	return errors.Is(err, ErrCycleDetected)
}

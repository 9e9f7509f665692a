// Package importscan is a minimal SourceImportScanner: it extracts the
// module names named by "import X" lines from a source file. No library in
// the retrieved pack parses Swift-like import statements, and the scanner is
// explicitly an external-parser concern delegated by spec.md §1's
// Non-goals, so a small regexp-based reader is the whole of this package
// (justified in DESIGN.md as the one stdlib-only parsing component).
package importscan

import (
	"bufio"
	"os"
	"regexp"
)

var importLine = regexp.MustCompile(`^\s*(?:@testable\s+)?import\s+(?:\w+\s+)?([A-Za-z_][A-Za-z0-9_]*)`)

// Scanner implements resolver.SourceImportScanner by reading each source
// file line by line and matching "import Name" statements, ignoring
// submodule components after the first dot (import Foo.Bar counts as Foo).
type Scanner struct{}

// ScanImports reads path and returns the module names its import statements
// reference, in file order.
func (Scanner) ScanImports(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var imports []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if m := importLine.FindStringSubmatch(scanner.Text()); m != nil {
			imports = append(imports, m[1])
		}
	}
	return imports, scanner.Err()
}

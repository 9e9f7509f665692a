// Package batch implements the Batch Dispatcher (spec.md §4.9): parsing a
// YAML batch-input document, selecting (or creating) a compiler sub-
// instance per entry, and memoizing sub-instances by the literal argument
// string the entries share.
package batch

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrInputCorrupted indicates malformed YAML or a missing required key
// (spec.md §7 "InputCorrupted").
var ErrInputCorrupted = errors.New("batch: malformed input")

// rawEntry mirrors the recognized YAML keys of spec.md §6. Unrecognized
// keys are ignored for forward-compatibility, which yaml.v3's default
// (non-strict) decoding already gives us.
type rawEntry struct {
	SwiftModuleName string `yaml:"swiftModuleName"`
	ClangModuleName string `yaml:"clangModuleName"`
	Arguments       string `yaml:"arguments"`
	Output          string `yaml:"output"`
}

// Entry is one validated batch-input row.
type Entry struct {
	ModuleName string
	IsSwift    bool
	Arguments  string
	Output     string
}

// ParseInput reads and validates a batch-input YAML document. An entry
// missing both module-name keys, or missing output, is a hard error
// (spec.md §6 "An entry missing module name or output is a hard error").
func ParseInput(r io.Reader) ([]Entry, error) {
	var raw []rawEntry
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputCorrupted, err)
	}

	entries := make([]Entry, 0, len(raw))
	for i, re := range raw {
		var name string
		var isSwift bool
		switch {
		case re.SwiftModuleName != "":
			name, isSwift = re.SwiftModuleName, true
		case re.ClangModuleName != "":
			name, isSwift = re.ClangModuleName, false
		default:
			return nil, fmt.Errorf("%w: entry %d has neither swiftModuleName nor clangModuleName", ErrInputCorrupted, i)
		}
		if re.Output == "" {
			return nil, fmt.Errorf("%w: entry %d missing output", ErrInputCorrupted, i)
		}
		entries = append(entries, Entry{
			ModuleName: name,
			IsSwift:    isSwift,
			Arguments:  re.Arguments,
			Output:     re.Output,
		})
	}
	return entries, nil
}

package batch

import (
	"errors"
	"strings"
	"testing"
)

func TestParseInputSwiftAndClangEntries(t *testing.T) {
	doc := `
- swiftModuleName: App
  output: app.json
- clangModuleName: Foundation
  arguments: "-Xcc -I/usr/include"
  output: foundation.json
- swiftModuleName: Other
  output: other.json
  unknownField: ignored
`
	entries, err := ParseInput(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseInput() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %v, want 3", entries)
	}
	if entries[0].ModuleName != "App" || !entries[0].IsSwift {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].ModuleName != "Foundation" || entries[1].IsSwift {
		t.Errorf("entries[1] = %+v", entries[1])
	}
	if entries[1].Arguments != "-Xcc -I/usr/include" {
		t.Errorf("entries[1].Arguments = %q", entries[1].Arguments)
	}
	if entries[2].ModuleName != "Other" {
		t.Errorf("unrecognized keys should be ignored, not rejected: %+v", entries[2])
	}
}

func TestParseInputMissingModuleNameIsHardError(t *testing.T) {
	doc := `
- output: app.json
`
	_, err := ParseInput(strings.NewReader(doc))
	if !errors.Is(err, ErrInputCorrupted) {
		t.Errorf("error = %v, want ErrInputCorrupted", err)
	}
}

func TestParseInputMissingOutputIsHardError(t *testing.T) {
	doc := `
- swiftModuleName: App
`
	_, err := ParseInput(strings.NewReader(doc))
	if !errors.Is(err, ErrInputCorrupted) {
		t.Errorf("error = %v, want ErrInputCorrupted", err)
	}
}

func TestParseInputMalformedYAML(t *testing.T) {
	_, err := ParseInput(strings.NewReader("not: [valid: yaml"))
	if !errors.Is(err, ErrInputCorrupted) {
		t.Errorf("error = %v, want ErrInputCorrupted", err)
	}
}

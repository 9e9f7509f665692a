package resolver

import (
	"testing"

	"github.com/swiftdeps/modscan/internal/testutil"
	"github.com/swiftdeps/modscan/internal/types"
)

func TestBuildMainModuleOrderingAndDedup(t *testing.T) {
	scanner := &testutil.FixtureScanner{Files: map[string][]string{
		"a.swift": {"Foo", "Bar"},
		"b.swift": {"Bar", "Baz"}, // Bar is a duplicate across files
	}}
	cfg := RootConfig{
		Name:                  "App",
		SourceFiles:           []string{"a.swift", "b.swift"},
		StdlibName:            "Swift",
		ImplicitImports:       []string{"SwiftOnoneSupport"},
		LoadedImplicitImports: []string{"_Concurrency"},
	}

	root, err := BuildMainModule(cfg, scanner)
	testutil.RequireNoError(t, err)

	want := []string{"Foo", "Bar", "Baz", "Swift", "SwiftOnoneSupport", "_Concurrency"}
	if len(root.ModuleImports) != len(want) {
		t.Fatalf("ModuleImports = %v, want %v", root.ModuleImports, want)
	}
	for i, w := range want {
		if root.ModuleImports[i] != w {
			t.Errorf("ModuleImports[%d] = %q, want %q", i, root.ModuleImports[i], w)
		}
	}
	if root.Kind != types.SwiftSource {
		t.Errorf("Kind = %v, want SwiftSource", root.Kind)
	}
}

func TestBuildMainModuleSelfImport(t *testing.T) {
	scanner := &testutil.FixtureScanner{}
	cfg := RootConfig{
		Name:                      "App",
		SelfImportUnderlyingClang: true,
	}
	root, err := BuildMainModule(cfg, scanner)
	testutil.RequireNoError(t, err)

	if len(root.ModuleImports) != 1 || root.ModuleImports[0] != "App" {
		t.Errorf("ModuleImports = %v, want [App]", root.ModuleImports)
	}
}

func TestBuildMainModuleNoStdlib(t *testing.T) {
	scanner := &testutil.FixtureScanner{}
	cfg := RootConfig{Name: "App"}
	root, err := BuildMainModule(cfg, scanner)
	testutil.RequireNoError(t, err)
	if len(root.ModuleImports) != 0 {
		t.Errorf("ModuleImports = %v, want empty (scenario 1)", root.ModuleImports)
	}
}

func TestBuildMainModuleExtraPCMArgs(t *testing.T) {
	scanner := &testutil.FixtureScanner{}
	target := "x86_64-apple-macosx10.15"
	cfg := RootConfig{
		Name:                "App",
		APINotesVersionPin:  "-swift-version=5",
		ClangTargetOverride: nil,
		TargetTriple:        target,
	}
	root, err := BuildMainModule(cfg, scanner)
	testutil.RequireNoError(t, err)

	got := root.SwiftSourceDetails.ExtraPCMArgs
	want := []string{"-Xcc", "-target", "-Xcc", target, "-Xcc", "-swift-version=5"}
	if len(got) != len(want) {
		t.Fatalf("ExtraPCMArgs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ExtraPCMArgs[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildMainModuleExtraPCMArgsOverriddenTarget(t *testing.T) {
	scanner := &testutil.FixtureScanner{}
	override := "arm64-apple-ios13.0"
	cfg := RootConfig{
		Name:                "App",
		ClangTargetOverride: &override,
		TargetTriple:        "x86_64-apple-macosx10.15",
	}
	root, err := BuildMainModule(cfg, scanner)
	testutil.RequireNoError(t, err)

	for _, arg := range root.SwiftSourceDetails.ExtraPCMArgs {
		if arg == "-target" {
			t.Errorf("ExtraPCMArgs = %v, must not append -target pin when the configuration already overrides it", root.SwiftSourceDetails.ExtraPCMArgs)
		}
	}
}

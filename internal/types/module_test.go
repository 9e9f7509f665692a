package types

import "testing"

func TestKindFileExtension(t *testing.T) {
	cases := []struct {
		kind Kind
		want string
	}{
		{SwiftInterface, ".swiftmodule"},
		{SwiftSource, ".swiftmodule"},
		{SwiftBinary, ".swiftmodule"},
		{SwiftPlaceholder, ".swiftmodule"},
		{Clang, ".pcm"},
	}
	for _, c := range cases {
		if got := c.kind.FileExtension(); got != c.want {
			t.Errorf("%s.FileExtension() = %q, want %q", c.kind, got, c.want)
		}
	}
}

func TestKindClassification(t *testing.T) {
	if !SwiftInterface.IsSwiftTextual() || !SwiftSource.IsSwiftTextual() {
		t.Error("SwiftInterface and SwiftSource must be textual")
	}
	if SwiftBinary.IsSwiftTextual() || Clang.IsSwiftTextual() {
		t.Error("SwiftBinary and Clang must not be textual")
	}
	if !SwiftInterface.IsSwift() || Clang.IsSwift() {
		t.Error("IsSwift must distinguish Clang from every Swift kind")
	}
}

func TestModuleIDEquality(t *testing.T) {
	a := ModuleID{Name: "Foundation", Kind: SwiftInterface}
	b := ModuleID{Name: "Foundation", Kind: Clang}
	if a == b {
		t.Error("modules with the same name but different kinds must not be equal (I1)")
	}
	if a != (ModuleID{Name: "Foundation", Kind: SwiftInterface}) {
		t.Error("modules with identical name and kind must be equal")
	}
}

func TestModulePathFallback(t *testing.T) {
	m := &ModuleInfo{Name: "App", Kind: SwiftSource, SwiftSourceDetails: &SwiftSourceDetails{}}
	if got, want := m.ModulePath(), "App.swiftmodule"; got != want {
		t.Errorf("ModulePath() = %q, want %q", got, want)
	}

	m2 := &ModuleInfo{
		Name: "Foo", Kind: SwiftInterface,
		SwiftInterfaceDetails: &SwiftInterfaceDetails{ModuleOutputPath: "/out/Foo.swiftmodule"},
	}
	if got, want := m2.ModulePath(), "/out/Foo.swiftmodule"; got != want {
		t.Errorf("ModulePath() = %q, want %q", got, want)
	}
}

func TestModuleSourceFiles(t *testing.T) {
	m := &ModuleInfo{
		Name: "App", Kind: SwiftSource,
		SwiftSourceDetails: &SwiftSourceDetails{SourceFiles: []string{"a.swift", "b.swift"}},
	}
	if got := m.SourceFiles(); len(got) != 2 {
		t.Errorf("SourceFiles() = %v, want 2 entries", got)
	}

	bin := &ModuleInfo{Name: "Bin", Kind: SwiftBinary, SwiftBinaryDetails: &SwiftBinaryDetails{}}
	if got := bin.SourceFiles(); got != nil {
		t.Errorf("SwiftBinary.SourceFiles() = %v, want nil", got)
	}
}

func TestIDSetOrderingAndDedup(t *testing.T) {
	s := NewIDSet()
	ids := []ModuleID{
		{Name: "A", Kind: SwiftInterface},
		{Name: "B", Kind: Clang},
		{Name: "A", Kind: SwiftInterface}, // duplicate
		{Name: "C", Kind: SwiftBinary},
	}
	for _, id := range ids {
		s.Add(id)
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	want := []ModuleID{
		{Name: "A", Kind: SwiftInterface},
		{Name: "B", Kind: Clang},
		{Name: "C", Kind: SwiftBinary},
	}
	got := s.Items()
	for i, id := range want {
		if got[i] != id {
			t.Errorf("Items()[%d] = %v, want %v", i, got[i], id)
		}
	}
}

package cache

import (
	"errors"
	"testing"

	"github.com/swiftdeps/modscan/internal/types"
)

func TestRecordAndFind(t *testing.T) {
	c := New("ctx-hash")
	info := &types.ModuleInfo{Name: "App", Kind: types.SwiftSource, SwiftSourceDetails: &types.SwiftSourceDetails{}}
	c.Record(info)

	got, ok := c.Find(types.ModuleID{Name: "App", Kind: types.SwiftSource})
	if !ok {
		t.Fatal("Find() did not locate recorded entry")
	}
	if got != info {
		t.Error("Find() returned a different pointer than recorded")
	}

	if _, ok := c.Find(types.ModuleID{Name: "App", Kind: types.Clang}); ok {
		t.Error("Find() must not fuzzy-match across kinds (I1)")
	}
}

func TestRecordPanicsOnDuplicateKey(t *testing.T) {
	c := New("ctx-hash")
	info := &types.ModuleInfo{Name: "App", Kind: types.SwiftSource, SwiftSourceDetails: &types.SwiftSourceDetails{}}
	c.Record(info)

	defer func() {
		if recover() == nil {
			t.Error("Record() did not panic on duplicate key")
		}
	}()
	c.Record(info)
}

func TestUpdateMissingKeyReturnsError(t *testing.T) {
	c := New("ctx-hash")
	err := c.Update(types.ModuleID{Name: "Missing", Kind: types.Clang}, &types.ModuleInfo{})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestResolveDependencyImports(t *testing.T) {
	c := New("ctx-hash")
	info := &types.ModuleInfo{Name: "App", Kind: types.SwiftSource, SwiftSourceDetails: &types.SwiftSourceDetails{}}
	c.Record(info)

	deps := []types.ModuleID{{Name: "Swift", Kind: types.SwiftInterface}}
	if err := c.ResolveDependencyImports(info.ID(), deps); err != nil {
		t.Fatalf("ResolveDependencyImports() error = %v", err)
	}
	if !info.Resolved {
		t.Error("ResolveDependencyImports() did not set Resolved = true")
	}
	if len(info.ResolvedDependencies) != 1 || info.ResolvedDependencies[0] != deps[0] {
		t.Errorf("ResolvedDependencies = %v, want %v", info.ResolvedDependencies, deps)
	}
}

func TestResolveDependencyImportsMissingKey(t *testing.T) {
	c := New("ctx-hash")
	err := c.ResolveDependencyImports(types.ModuleID{Name: "Missing", Kind: types.Clang}, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestLenAndAll(t *testing.T) {
	c := New("ctx-hash")
	c.Record(&types.ModuleInfo{Name: "A", Kind: types.SwiftSource, SwiftSourceDetails: &types.SwiftSourceDetails{}})
	c.Record(&types.ModuleInfo{Name: "B", Kind: types.Clang, ClangDetails: &types.ClangDetails{}})
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if len(c.All()) != 2 {
		t.Errorf("All() has %d entries, want 2", len(c.All()))
	}
}

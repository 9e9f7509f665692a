// Package testutil provides an in-memory loader.Host fixture and related
// test collaborators, shared across package test suites the way
// golangsnmp/gomib's internal/testutil/fixture.go shares fixture loading.
package testutil

import (
	"testing"

	"github.com/swiftdeps/modscan/internal/types"
)

// FixtureHost is an in-memory loader.Host: Swift modules are looked up one
// at a time (mirroring the real Swift interface/binary search locating
// exactly the named module), Clang modules are recorded with their full
// transitive closure already attached to the first lookup that reaches
// them (mirroring clang-scan-deps returning a whole subgraph in one shot,
// spec.md §4.2).
type FixtureHost struct {
	swift map[string]*types.ModuleInfo
	clang map[string][]string // name -> direct clang imports
}

// NewFixtureHost creates an empty fixture.
func NewFixtureHost() *FixtureHost {
	return &FixtureHost{
		swift: make(map[string]*types.ModuleInfo),
		clang: make(map[string][]string),
	}
}

// AddSwiftInterface registers a SwiftInterface module with the given direct
// imports.
func (h *FixtureHost) AddSwiftInterface(name string, imports ...string) *FixtureHost {
	h.swift[name] = &types.ModuleInfo{
		Name:          name,
		Kind:          types.SwiftInterface,
		ModuleImports: imports,
		SwiftInterfaceDetails: &types.SwiftInterfaceDetails{
			InterfacePath: name + ".swiftinterface",
		},
	}
	return h
}

// AddSwiftBinary registers a pre-compiled SwiftBinary module.
func (h *FixtureHost) AddSwiftBinary(name string, imports ...string) *FixtureHost {
	h.swift[name] = &types.ModuleInfo{
		Name:          name,
		Kind:          types.SwiftBinary,
		ModuleImports: imports,
		SwiftBinaryDetails: &types.SwiftBinaryDetails{
			CompiledModulePath: name + ".swiftmodule",
		},
	}
	return h
}

// AddClang registers a Clang module's direct imports; the fixture computes
// the transitive closure across all AddClang calls when a lookup occurs.
func (h *FixtureHost) AddClang(name string, imports ...string) *FixtureHost {
	h.clang[name] = imports
	return h
}

// ResolveClang implements loader.Host: it returns the named module plus
// every module transitively reachable from it, each already resolved with
// its own direct dependencies, mirroring the real importer's one-shot
// closure discovery.
func (h *FixtureHost) ResolveClang(name string) (*types.ModuleInfo, []*types.ModuleInfo, bool, error) {
	if _, ok := h.clang[name]; !ok {
		return nil, nil, false, nil
	}

	visited := make(map[string]*types.ModuleInfo)
	var order []string
	var walk func(string)
	walk = func(n string) {
		if _, ok := visited[n]; ok {
			return
		}
		imports, ok := h.clang[n]
		if !ok {
			return
		}
		deps := make([]types.ModuleID, 0, len(imports))
		for _, imp := range imports {
			deps = append(deps, types.ModuleID{Name: imp, Kind: types.Clang})
		}
		info := &types.ModuleInfo{
			Name:                 n,
			Kind:                 types.Clang,
			ModuleImports:        imports,
			ResolvedDependencies: deps,
			Resolved:             true,
			ClangDetails: &types.ClangDetails{
				ModulePath:    n + ".pcm",
				ModuleMapPath: n + ".modulemap",
			},
		}
		visited[n] = info
		order = append(order, n)
		for _, imp := range imports {
			walk(imp)
		}
	}
	walk(name)

	found := visited[name]
	transitive := make([]*types.ModuleInfo, 0, len(order)-1)
	for _, n := range order {
		if n != name {
			transitive = append(transitive, visited[n])
		}
	}
	return found, transitive, true, nil
}

// ResolveSwift implements loader.Host.
func (h *FixtureHost) ResolveSwift(name string) (*types.ModuleInfo, bool, error) {
	info, ok := h.swift[name]
	return info, ok, nil
}

// FixtureBridgingHeaderParser is a resolver.BridgingHeaderParser backed by a
// static table from header path to referenced Clang module names.
type FixtureBridgingHeaderParser struct {
	Headers map[string][]string
}

// Parse implements resolver.BridgingHeaderParser.
func (p *FixtureBridgingHeaderParser) Parse(path string) (bool, []string, []string, error) {
	mods, ok := p.Headers[path]
	if !ok {
		return false, nil, nil, nil
	}
	return true, mods, []string{path}, nil
}

// FixtureOverlays is a resolver.OverlayDeclarations backed by a static
// table from declaring module name to its overlay rows.
type FixtureOverlays struct {
	Rows map[string][]types.OverlayDeclaration
}

// Declarations implements resolver.OverlayDeclarations.
func (o *FixtureOverlays) Declarations(moduleName string) []types.OverlayDeclaration {
	return o.Rows[moduleName]
}

// FixtureScanner is a resolver.SourceImportScanner backed by a static table
// from source path to the import names it contains.
type FixtureScanner struct {
	Files map[string][]string
}

// ScanImports implements resolver.SourceImportScanner.
func (s *FixtureScanner) ScanImports(path string) ([]string, error) {
	return s.Files[path], nil
}

// RequireNoError fails the test immediately if err is non-nil.
func RequireNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

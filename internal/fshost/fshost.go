// Package fshost is the default filesystem-backed loader.Host: it indexes a
// directory tree once (grounded on the teacher's source.go DirTree walk) and
// answers Swift/Clang module-search queries from sidecar ".imports" files
// rather than parsing real interface/modulemap syntax, since the host's
// internals are an external collaborator out of scope of this scanner
// (spec.md §1).
package fshost

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/swiftdeps/modscan/internal/types"
)

const (
	extSwiftInterface = ".swiftinterface"
	extSwiftModule    = ".swiftmodule"
	extModulemap      = ".modulemap"
	extImports        = ".imports"
)

// Host indexes a directory tree for Swift interface/binary files and Clang
// modulemaps by module name, the first component before its extension.
type Host struct {
	root string

	swiftInterfaces map[string]string // name -> .swiftinterface path
	swiftModules    map[string]string // name -> .swiftmodule path (no interface)
	clangModulemaps map[string]string // name -> .modulemap path
}

// New walks root once, indexing every recognized file by module name (first
// match wins for duplicate names, as the teacher's treeSource does).
func New(root string) (*Host, error) {
	h := &Host{
		root:            root,
		swiftInterfaces: make(map[string]string),
		swiftModules:    make(map[string]string),
		clangModulemaps: make(map[string]string),
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		name := strings.TrimSuffix(filepath.Base(path), ext)
		switch ext {
		case extSwiftInterface:
			if _, exists := h.swiftInterfaces[name]; !exists {
				h.swiftInterfaces[name] = path
			}
		case extSwiftModule:
			if _, exists := h.swiftModules[name]; !exists {
				h.swiftModules[name] = path
			}
		case extModulemap:
			if _, exists := h.clangModulemaps[name]; !exists {
				h.clangModulemaps[name] = path
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

// NewMulti indexes every root in order and merges their indices, first
// match wins for duplicate names across roots, mirroring the teacher's
// Multi source combinator.
func NewMulti(roots []string) (*Host, error) {
	merged := &Host{
		swiftInterfaces: make(map[string]string),
		swiftModules:    make(map[string]string),
		clangModulemaps: make(map[string]string),
	}
	for _, root := range roots {
		h, err := New(root)
		if err != nil {
			return nil, err
		}
		for name, path := range h.swiftInterfaces {
			if _, exists := merged.swiftInterfaces[name]; !exists {
				merged.swiftInterfaces[name] = path
			}
		}
		for name, path := range h.swiftModules {
			if _, exists := merged.swiftModules[name]; !exists {
				merged.swiftModules[name] = path
			}
		}
		for name, path := range h.clangModulemaps {
			if _, exists := merged.clangModulemaps[name]; !exists {
				merged.clangModulemaps[name] = path
			}
		}
	}
	return merged, nil
}

// readImports reads the newline-delimited sidecar "<module>.imports" file
// next to modulePath, if one exists. Blank lines and lines starting with #
// are ignored. A missing sidecar means "no imports", not an error.
func readImports(modulePath string) ([]string, error) {
	ext := filepath.Ext(modulePath)
	sidecar := strings.TrimSuffix(modulePath, ext) + extImports
	f, err := os.Open(sidecar)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var imports []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		imports = append(imports, line)
	}
	return imports, scanner.Err()
}

// ResolveSwift implements loader.Host: an interface file takes priority over
// a bare compiled module of the same name.
func (h *Host) ResolveSwift(name string) (*types.ModuleInfo, bool, error) {
	if path, ok := h.swiftInterfaces[name]; ok {
		imports, err := readImports(path)
		if err != nil {
			return nil, false, err
		}
		return &types.ModuleInfo{
			Name:          name,
			Kind:          types.SwiftInterface,
			ModuleImports: imports,
			SwiftInterfaceDetails: &types.SwiftInterfaceDetails{
				InterfacePath: path,
			},
		}, true, nil
	}
	if path, ok := h.swiftModules[name]; ok {
		return &types.ModuleInfo{
			Name: name,
			Kind: types.SwiftBinary,
			SwiftBinaryDetails: &types.SwiftBinaryDetails{
				CompiledModulePath: path,
			},
		}, true, nil
	}
	return nil, false, nil
}

// ResolveClang implements loader.Host: it returns the named modulemap plus
// every modulemap transitively reachable from it via ".imports" sidecars,
// mirroring a real Clang module-map scanner's one-shot closure discovery.
func (h *Host) ResolveClang(name string) (*types.ModuleInfo, []*types.ModuleInfo, bool, error) {
	if _, ok := h.clangModulemaps[name]; !ok {
		return nil, nil, false, nil
	}

	visited := make(map[string]*types.ModuleInfo)
	var order []string
	var walkErr error

	var walk func(n string)
	walk = func(n string) {
		if walkErr != nil {
			return
		}
		if _, seen := visited[n]; seen {
			return
		}
		p, exists := h.clangModulemaps[n]
		if !exists {
			return
		}
		imports, err := readImports(p)
		if err != nil {
			walkErr = err
			return
		}
		deps := make([]types.ModuleID, 0, len(imports))
		for _, imp := range imports {
			deps = append(deps, types.ModuleID{Name: imp, Kind: types.Clang})
		}
		visited[n] = &types.ModuleInfo{
			Name:                 n,
			Kind:                 types.Clang,
			ModuleImports:        imports,
			ResolvedDependencies: deps,
			Resolved:             true,
			ClangDetails: &types.ClangDetails{
				ModulePath:    p,
				ModuleMapPath: p,
			},
		}
		order = append(order, n)
		for _, imp := range imports {
			walk(imp)
		}
	}
	walk(name)
	if walkErr != nil {
		return nil, nil, false, walkErr
	}

	found := visited[name]
	transitive := make([]*types.ModuleInfo, 0, len(order)-1)
	for _, n := range order {
		if n != name {
			transitive = append(transitive, visited[n])
		}
	}
	return found, transitive, true, nil
}

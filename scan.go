package modscan

import (
	"fmt"
	"io"

	"github.com/swiftdeps/modscan/internal/cache"
	"github.com/swiftdeps/modscan/internal/graph"
	"github.com/swiftdeps/modscan/internal/loader"
	"github.com/swiftdeps/modscan/internal/resolver"
	"github.com/swiftdeps/modscan/internal/serialize"
	"github.com/swiftdeps/modscan/internal/types"
)

// Graph is the result of a successful full scan: the resolved module set in
// BFS discovery order (root first, P4), plus any non-fatal diagnostics
// recorded along the way (spec.md §9: diagnostics never turn a structurally
// successful scan into an error).
type Graph struct {
	MainModuleName string
	Modules        []*types.ModuleInfo
	Diagnostics    []types.Diagnostic
}

// WriteJSON writes the graph in the full-scan output format of spec.md §6.
func (g *Graph) WriteJSON(w io.Writer) error {
	return serialize.WriteGraph(w, g.MainModuleName, g.Modules)
}

// noopScanner satisfies SourceImportScanner when a configuration has no
// source files to scan; ScanImports is never actually called in that case.
type noopScanner struct{}

func (noopScanner) ScanImports(string) ([]string, error) { return nil, nil }

func scannerOrNoop(s SourceImportScanner) SourceImportScanner {
	if s == nil {
		return noopScanner{}
	}
	return s
}

func validateCommon(cfg *scanConfig) error {
	if len(cfg.sourceFiles) > 0 && cfg.scanner == nil {
		return fmt.Errorf("%w: source files given but no import scanner configured", ErrArgumentsInvalid)
	}
	return nil
}

// Scan runs a full scan (spec.md §6 "full scan"): it seeds the cache with
// the root module built from the given source files, drives the Closure
// Worklist with the Direct-Dependency Resolver, repeats the Cross-Import
// Overlay Resolver to a fixpoint, and checks the result for cycles before
// returning it.
func Scan(opts ...ScanOption) (*Graph, error) {
	cfg := newScanConfig(opts)
	if cfg.rootName == "" {
		return nil, fmt.Errorf("%w: no root name", ErrArgumentsInvalid)
	}
	if cfg.host == nil {
		return nil, fmt.Errorf("%w: no host", ErrArgumentsInvalid)
	}
	if err := validateCommon(cfg); err != nil {
		return nil, err
	}

	c := cache.New(cfg.contextHash)
	facade := loader.NewFacade(cfg.host, c)
	ctx := resolver.NewContext(c, facade, cfg.bridging, cfg.overlays, cfg.logger)

	root, err := resolver.BuildMainModule(cfg.rootConfig(), scannerOrNoop(cfg.scanner))
	if err != nil {
		return nil, err
	}
	c.Record(root)

	return resolveGraph(ctx, c, root.ID(), cfg.rootName)
}

// Prescan runs a prescan (spec.md §6 "prescan"): it emits only the root's
// direct moduleImports, without resolving any of them to a concrete module.
func Prescan(opts ...ScanOption) ([]string, error) {
	cfg := newScanConfig(opts)
	if cfg.rootName == "" {
		return nil, fmt.Errorf("%w: no root name", ErrArgumentsInvalid)
	}
	if err := validateCommon(cfg); err != nil {
		return nil, err
	}

	root, err := resolver.BuildMainModule(cfg.rootConfig(), scannerOrNoop(cfg.scanner))
	if err != nil {
		return nil, err
	}
	return root.ModuleImports, nil
}

// WritePrescan writes a prescan result in the format of spec.md §6.
func WritePrescan(w io.Writer, imports []string) error {
	return serialize.WritePrescan(w, imports)
}

// ScanNamed runs a full scan whose root is resolved by name through the
// configured Host rather than built from source files — the shape a batch
// entry's root takes (spec.md §6, §4.9), since a batch entry carries only a
// module name and isSwift flag, not a source file list.
func ScanNamed(name string, isSwift bool, opts ...ScanOption) (*Graph, error) {
	cfg := newScanConfig(opts)
	if cfg.host == nil {
		return nil, fmt.Errorf("%w: no host", ErrArgumentsInvalid)
	}

	c := cache.New(cfg.contextHash)
	facade := loader.NewFacade(cfg.host, c)
	ctx := resolver.NewContext(c, facade, cfg.bridging, cfg.overlays, cfg.logger)

	rootID, err := resolveNamedRoot(facade, name, isSwift)
	if err != nil {
		return nil, err
	}

	return resolveGraph(ctx, c, rootID, name)
}

// ScanSubInstance runs a full scan against an already-constructed
// resolution context, such as a batch.Dispatcher sub-instance's Context,
// Cache, and Loader, resolving name through facade the same way ScanNamed
// resolves its root. The batch dispatcher shares one sub-instance across
// every entry with the same arguments string (spec.md §4.9), so callers
// that drive a batch use this instead of ScanNamed, which always builds a
// fresh cache and context.
func ScanSubInstance(ctx *resolver.Context, c *cache.Cache, facade *loader.Facade, name string, isSwift bool) (*Graph, error) {
	rootID, err := resolveNamedRoot(facade, name, isSwift)
	if err != nil {
		return nil, err
	}
	return resolveGraph(ctx, c, rootID, name)
}

// PrescanSubInstance resolves name through facade and returns its direct
// moduleImports, without running the worklist. The batch counterpart to
// ScanSubInstance for "batch prescan" entries.
func PrescanSubInstance(c *cache.Cache, facade *loader.Facade, name string, isSwift bool) ([]string, error) {
	rootID, err := resolveNamedRoot(facade, name, isSwift)
	if err != nil {
		return nil, err
	}
	entry, ok := c.Find(rootID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, name)
	}
	return entry.ModuleImports, nil
}

func resolveNamedRoot(facade *loader.Facade, name string, isSwift bool) (types.ModuleID, error) {
	if isSwift {
		_, kind, ok, err := facade.ResolveSwift(name)
		if err != nil {
			return types.ModuleID{}, err
		}
		if !ok {
			return types.ModuleID{}, fmt.Errorf("%w: %s", ErrModuleNotFound, name)
		}
		return types.ModuleID{Name: name, Kind: kind}, nil
	}

	info, ok, err := facade.ResolveClang(name)
	if err != nil {
		return types.ModuleID{}, err
	}
	if !ok {
		return types.ModuleID{}, fmt.Errorf("%w: %s", ErrModuleNotFound, name)
	}
	return info.ID(), nil
}

// resolveGraph drives the shared worklist/overlay/cycle/assemble pipeline
// once the root is already recorded in c under rootID.
func resolveGraph(ctx *resolver.Context, c *cache.Cache, rootID types.ModuleID, mainModuleName string) (*Graph, error) {
	order, err := graph.RunWorklist(rootID, func(id types.ModuleID) ([]types.ModuleID, error) {
		return resolver.ResolveDirect(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	all := types.NewIDSet(order...)
	for {
		added, err := resolver.ResolveCrossImportOverlays(ctx, rootID, all.Items(), nil)
		if err != nil {
			return nil, err
		}
		if len(added) == 0 {
			break
		}
		for _, id := range added {
			all.Add(id)
		}
	}

	depsOf := func(id types.ModuleID) []types.ModuleID {
		entry, ok := c.Find(id)
		if !ok {
			return nil
		}
		return entry.ResolvedDependencies
	}
	if chain, cyclic := graph.DiagnoseCycle(rootID, depsOf); cyclic {
		return nil, fmt.Errorf("%w: %s", ErrCycleDetected, chain)
	}

	modules := make([]*types.ModuleInfo, 0, all.Len())
	for _, id := range all.Items() {
		entry, ok := c.Find(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, id)
		}
		modules = append(modules, entry)
	}

	return &Graph{
		MainModuleName: mainModuleName,
		Modules:        modules,
		Diagnostics:    ctx.Diagnostics(),
	}, nil
}

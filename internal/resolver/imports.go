package resolver

import (
	"fmt"
	"log/slog"

	"github.com/swiftdeps/modscan/internal/types"
)

// ResolveDirect implements the Direct-Dependency Resolver (spec.md §4.4):
// given a ModuleId already present in ctx.Cache, it computes and records
// the entry's direct dependencies and returns the resolved set.
func ResolveDirect(ctx *Context, id types.ModuleID) ([]types.ModuleID, error) {
	entry, ok := ctx.Cache.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchModule, id)
	}

	// R-resolved: short-circuit unless this is the root, which is always
	// re-resolved so the overlay pass may add edges (spec.md §9 "Root
	// re-resolution").
	if entry.Resolved && id.Kind != types.SwiftSource {
		return entry.ResolvedDependencies, nil
	}

	isL1Textual := id.Kind.IsSwiftTextual()
	isL1 := isL1Textual || id.Kind == types.SwiftBinary

	accumulator := types.NewIDSet()

	for _, d := range entry.ModuleImports {
		foundID, found, err := resolveImportName(ctx, id, isL1, d)
		if err != nil {
			return nil, err
		}
		if !found {
			ctx.EmitDiagnostic(types.SeverityWarning, types.DiagImportUnresolved, id.Name,
				fmt.Sprintf("could not resolve import %q", d))
			continue
		}
		accumulator.Add(foundID)
	}

	var bridgingClangModules []string
	if isL1Textual {
		if path := entry.BridgingHeaderPath(); path != "" {
			bridgingClangModules = expandBridgingHeader(ctx, entry, path)
		}
	}

	if isL1Textual {
		if err := discoverOverlays(ctx, id, accumulator, bridgingClangModules); err != nil {
			return nil, err
		}
	}

	deps := accumulator.Items()
	if err := ctx.Cache.ResolveDependencyImports(id, deps); err != nil {
		return nil, err
	}
	if ctx.TraceEnabled() {
		ctx.Trace("resolved direct dependencies",
			slog.String("module", id.Name), slog.Int("count", len(deps)))
	}
	return deps, nil
}

// resolveImportName applies R-self, R-onlyL2, and R-preferL1 to a single
// import name d of a module identified by (name, isL1).
func resolveImportName(ctx *Context, self types.ModuleID, isL1 bool, d string) (types.ModuleID, bool, error) {
	switch {
	case d == self.Name:
		// R-self: the import of a module's own name is always a self-named
		// Clang lookup (I5), never an L1 one, even for an L1 module.
		return resolveClangOnly(ctx, d)
	case !isL1:
		// R-onlyL2: a module that is neither Swift-textual nor Swift-binary
		// (a Clang or placeholder module) only resolves Clang deps.
		return resolveClangOnly(ctx, d)
	default:
		// R-preferL1: prefer Swift, fall back to Clang.
		return resolvePreferSwift(ctx, d)
	}
}

func resolveClangOnly(ctx *Context, name string) (types.ModuleID, bool, error) {
	info, ok, err := ctx.Loader.ResolveClang(name)
	if err != nil {
		return types.ModuleID{}, false, err
	}
	if !ok {
		return types.ModuleID{}, false, nil
	}
	return info.ID(), true, nil
}

func resolvePreferSwift(ctx *Context, name string) (types.ModuleID, bool, error) {
	_, kind, ok, err := ctx.Loader.ResolveSwift(name)
	if err != nil {
		return types.ModuleID{}, false, err
	}
	if ok {
		return types.ModuleID{Name: name, Kind: kind}, true, nil
	}
	return resolveClangOnly(ctx, name)
}

// expandBridgingHeader instructs the bridging-header collaborator to parse
// path, attaching referenced Clang module names to entry's record. A
// best-effort failure (ok=false, err=nil) and a genuine read error are both
// non-fatal to the scan (spec.md §9's open question): both are logged as
// diagnostics and treated as "record nothing".
func expandBridgingHeader(ctx *Context, entry *types.ModuleInfo, path string) []string {
	if ctx.BridgingHeaderParser == nil {
		return nil
	}
	ok, clangModules, sourceFiles, err := ctx.BridgingHeaderParser.Parse(path)
	if err != nil {
		ctx.EmitDiagnostic(types.SeverityWarning, types.DiagBridgingHeaderFailed, entry.Name,
			fmt.Sprintf("bridging header %q: %v", path, err))
		return nil
	}
	if !ok {
		return nil
	}
	entry.SetBridgingHeaderModuleDeps(clangModules)
	switch entry.Kind {
	case types.SwiftInterface:
		entry.SwiftInterfaceDetails.BridgingHeaderSourceFiles = sourceFiles
	case types.SwiftSource:
		entry.SwiftSourceDetails.BridgingHeaderSourceFiles = sourceFiles
	}
	return clangModules
}

// discoverOverlays implements spec.md §4.4's "Overlay discovery": seed
// allL2 from the bridging header's referenced modules (each first looked up
// through the loader, which records its Clang closure in the cache) and
// from every Clang id already in the accumulator, DFS over the Clang
// transitive closure recorded in the cache, and for every reachable Clang
// name other than the module's own, attempt a Swift resolution — an overlay
// module shadowing a Clang module of the same name.
func discoverOverlays(ctx *Context, id types.ModuleID, accumulator *types.IDSet, bridgingClangModules []string) error {
	allL2 := types.NewIDSet()
	for _, name := range bridgingClangModules {
		if _, _, err := ctx.Loader.ResolveClang(name); err != nil {
			return err
		}
		walkClangClosure(ctx, name, allL2)
	}
	for _, item := range accumulator.Items() {
		if item.Kind == types.Clang {
			walkClangClosure(ctx, item.Name, allL2)
		}
	}

	for _, clangID := range allL2.Items() {
		if clangID.Name == id.Name {
			continue
		}
		_, kind, ok, err := ctx.Loader.ResolveSwift(clangID.Name)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		accumulator.Add(types.ModuleID{Name: clangID.Name, Kind: kind})
	}

	return nil
}

// walkClangClosure DFS-walks the Clang transitive closure already recorded
// in the cache starting from name, adding every reachable Clang ModuleId
// into into. It does not perform new lookups: Clang entries are recorded
// with their full resolved closure by the loader facade in one shot
// (spec.md §4.2), so everything reachable from a name the loader has
// already resolved is present.
func walkClangClosure(ctx *Context, name string, into *types.IDSet) {
	id := types.ModuleID{Name: name, Kind: types.Clang}
	if !into.Add(id) {
		return
	}
	entry, ok := ctx.Cache.Find(id)
	if !ok {
		return
	}
	for _, dep := range entry.ResolvedDependencies {
		if dep.Kind == types.Clang {
			walkClangClosure(ctx, dep.Name, into)
		}
	}
}

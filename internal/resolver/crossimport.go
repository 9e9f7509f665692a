package resolver

import (
	"github.com/swiftdeps/modscan/internal/graph"
	"github.com/swiftdeps/modscan/internal/types"
)

// DummyMainModuleForResolvingCrossImportOverlays names the sentinel root
// used to reuse the Closure Worklist for the overlay pass (spec.md §4.6,
// §9 "Overlay pass with sentinel"). It is never written to the output
// graph.
const DummyMainModuleForResolvingCrossImportOverlays = "DummyMainModuleForResolvingCrossImportOverlays"

// ResolveCrossImportOverlays implements the Cross-Import Overlay Resolver
// (spec.md §4.6). It scans every module in currentSet (excluding rootID)
// for overlay declarations activated by a module already present, runs the
// Closure Worklist from a synthesized sentinel seeded with the collected
// overlay names, and appends every newly-discovered ModuleId to the root's
// resolvedDependencies. onOverlayAdded, if non-nil, is called once per
// newly added module in discovery order.
func ResolveCrossImportOverlays(
	ctx *Context,
	rootID types.ModuleID,
	currentSet []types.ModuleID,
	onOverlayAdded func(types.ModuleID),
) ([]types.ModuleID, error) {
	presentNames := make(map[string]struct{}, len(currentSet))
	for _, id := range currentSet {
		presentNames[id.Name] = struct{}{}
	}

	var collectedNames []string
	seenNames := make(map[string]struct{})
	if ctx.Overlays != nil {
		for _, id := range currentSet {
			if id == rootID {
				continue
			}
			for _, decl := range ctx.Overlays.Declarations(id.Name) {
				if _, ok := presentNames[decl.Secondary]; !ok {
					continue
				}
				for _, overlayName := range decl.Overlays {
					if _, ok := presentNames[overlayName]; ok {
						continue
					}
					if _, ok := seenNames[overlayName]; ok {
						continue
					}
					seenNames[overlayName] = struct{}{}
					collectedNames = append(collectedNames, overlayName)
				}
			}
		}
	}

	if len(collectedNames) == 0 {
		return nil, nil
	}

	sentinelID := types.ModuleID{Name: DummyMainModuleForResolvingCrossImportOverlays, Kind: types.SwiftSource}
	sentinel := &types.ModuleInfo{
		Name:               DummyMainModuleForResolvingCrossImportOverlays,
		Kind:               types.SwiftSource,
		ModuleImports:      collectedNames,
		SwiftSourceDetails: &types.SwiftSourceDetails{},
	}
	if _, exists := ctx.Cache.Find(sentinelID); exists {
		if err := ctx.Cache.Update(sentinelID, sentinel); err != nil {
			return nil, err
		}
	} else {
		ctx.Cache.Record(sentinel)
	}

	discovered, err := graph.RunWorklist(sentinelID, func(id types.ModuleID) ([]types.ModuleID, error) {
		return ResolveDirect(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	rootEntry, ok := ctx.Cache.Find(rootID)
	if !ok {
		return nil, ErrNoSuchModule
	}

	rootDeps := types.NewIDSet(rootEntry.ResolvedDependencies...)
	var added []types.ModuleID
	for _, id := range discovered {
		if id == sentinelID {
			continue
		}
		if rootDeps.Add(id) {
			added = append(added, id)
			if onOverlayAdded != nil {
				onOverlayAdded(id)
			}
		}
	}

	if err := ctx.Cache.ResolveDependencyImports(rootID, rootDeps.Items()); err != nil {
		return nil, err
	}
	return added, nil
}

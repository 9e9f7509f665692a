package resolver

import (
	"testing"

	"github.com/swiftdeps/modscan/internal/graph"
	"github.com/swiftdeps/modscan/internal/testutil"
	"github.com/swiftdeps/modscan/internal/types"
)

func TestResolveCrossImportOverlaysActivatesOnPair(t *testing.T) {
	// scenario 4: A and B both import only the standard library; A's
	// overlay table declares B -> [_AB]. Root imports both A and B.
	host := testutil.NewFixtureHost().
		AddSwiftInterface("A", "Swift").
		AddSwiftInterface("B", "Swift").
		AddSwiftInterface("_AB", "Swift").
		AddClang("Swift")
	overlays := &testutil.FixtureOverlays{Rows: map[string][]OverlayDeclaration{
		"A": {{Secondary: "B", Overlays: []string{"_AB"}}},
	}}
	ctx, c := newTestContext(host, nil, overlays)

	rootID := types.ModuleID{Name: "App", Kind: types.SwiftSource}
	root := &types.ModuleInfo{Name: "App", Kind: types.SwiftSource, SwiftSourceDetails: &types.SwiftSourceDetails{}}
	c.Record(root)

	aID := types.ModuleID{Name: "A", Kind: types.SwiftInterface}
	bID := types.ModuleID{Name: "B", Kind: types.SwiftInterface}
	c.Record(&types.ModuleInfo{Name: "A", Kind: types.SwiftInterface, ModuleImports: []string{"Swift"}, SwiftInterfaceDetails: &types.SwiftInterfaceDetails{}})
	c.Record(&types.ModuleInfo{Name: "B", Kind: types.SwiftInterface, ModuleImports: []string{"Swift"}, SwiftInterfaceDetails: &types.SwiftInterfaceDetails{}})

	resolve := func(id types.ModuleID) ([]types.ModuleID, error) { return ResolveDirect(ctx, id) }
	allModules, err := graph.RunWorklist(rootID, resolve)
	testutil.RequireNoError(t, err)
	c.ResolveDependencyImports(rootID, []types.ModuleID{aID, bID})

	var addedOrder []types.ModuleID
	added, err := ResolveCrossImportOverlays(ctx, rootID, append([]types.ModuleID{aID, bID}, allModules...), func(id types.ModuleID) {
		addedOrder = append(addedOrder, id)
	})
	testutil.RequireNoError(t, err)

	var sawOverlay bool
	for _, id := range added {
		if id.Name == "_AB" {
			sawOverlay = true
		}
	}
	if !sawOverlay {
		t.Fatalf("added = %v, want _AB to be discovered", added)
	}
	if len(addedOrder) == 0 || addedOrder[0].Name != "_AB" {
		t.Errorf("onOverlayAdded callback not invoked with _AB first: %v", addedOrder)
	}

	rootEntry, _ := c.Find(rootID)
	var rootHasOverlay bool
	for _, dep := range rootEntry.ResolvedDependencies {
		if dep.Name == "_AB" {
			rootHasOverlay = true
		}
	}
	if !rootHasOverlay {
		t.Errorf("root.ResolvedDependencies = %v, want _AB appended", rootEntry.ResolvedDependencies)
	}
}

func TestResolveCrossImportOverlaysNoActivationWhenSecondaryAbsent(t *testing.T) {
	host := testutil.NewFixtureHost().AddSwiftInterface("A")
	overlays := &testutil.FixtureOverlays{Rows: map[string][]OverlayDeclaration{
		"A": {{Secondary: "Absent", Overlays: []string{"_AX"}}},
	}}
	ctx, c := newTestContext(host, nil, overlays)

	rootID := types.ModuleID{Name: "App", Kind: types.SwiftSource}
	c.Record(&types.ModuleInfo{Name: "App", Kind: types.SwiftSource, SwiftSourceDetails: &types.SwiftSourceDetails{}})
	aID := types.ModuleID{Name: "A", Kind: types.SwiftInterface}
	c.Record(&types.ModuleInfo{Name: "A", Kind: types.SwiftInterface, SwiftInterfaceDetails: &types.SwiftInterfaceDetails{}})
	c.ResolveDependencyImports(rootID, []types.ModuleID{aID})

	added, err := ResolveCrossImportOverlays(ctx, rootID, []types.ModuleID{rootID, aID}, nil)
	testutil.RequireNoError(t, err)
	if len(added) != 0 {
		t.Errorf("added = %v, want none: secondary module never present", added)
	}
}

func TestResolveCrossImportOverlaysSentinelNeverInOutput(t *testing.T) {
	host := testutil.NewFixtureHost().
		AddSwiftInterface("A").
		AddSwiftInterface("B").
		AddSwiftInterface("_AB")
	overlays := &testutil.FixtureOverlays{Rows: map[string][]OverlayDeclaration{
		"A": {{Secondary: "B", Overlays: []string{"_AB"}}},
	}}
	ctx, c := newTestContext(host, nil, overlays)

	rootID := types.ModuleID{Name: "App", Kind: types.SwiftSource}
	c.Record(&types.ModuleInfo{Name: "App", Kind: types.SwiftSource, SwiftSourceDetails: &types.SwiftSourceDetails{}})
	aID := types.ModuleID{Name: "A", Kind: types.SwiftInterface}
	bID := types.ModuleID{Name: "B", Kind: types.SwiftInterface}
	c.Record(&types.ModuleInfo{Name: "A", Kind: types.SwiftInterface, SwiftInterfaceDetails: &types.SwiftInterfaceDetails{}})
	c.Record(&types.ModuleInfo{Name: "B", Kind: types.SwiftInterface, SwiftInterfaceDetails: &types.SwiftInterfaceDetails{}})
	c.ResolveDependencyImports(rootID, []types.ModuleID{aID, bID})

	added, err := ResolveCrossImportOverlays(ctx, rootID, []types.ModuleID{rootID, aID, bID}, nil)
	testutil.RequireNoError(t, err)
	for _, id := range added {
		if id.Name == DummyMainModuleForResolvingCrossImportOverlays {
			t.Error("sentinel module leaked into the added set")
		}
	}
	if _, ok := c.Find(rootID); !ok {
		t.Fatal("root entry vanished")
	}
}

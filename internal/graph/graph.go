// Package graph provides the two pure-CPU traversal algorithms that explore
// a resolved module dependency set: the closure worklist (BFS) and the
// cycle diagnoser (iterative DFS). Neither package holds the modules
// themselves — that's the cache's job — so both take a small callback
// instead of importing internal/cache, avoiding an import cycle back into
// the resolver.
package graph

import "github.com/swiftdeps/modscan/internal/types"

// Resolver resolves a single module's direct dependencies, recording them
// in the cache as a side effect, and returns the resolved set. Implemented
// by internal/resolver.ResolveDirect.
type Resolver func(id types.ModuleID) ([]types.ModuleID, error)

// RunWorklist performs the index-based breadth-first expansion of spec.md
// §4.5: resolve root, append every newly-seen dependency to the end of an
// insertion-ordered set, and keep going until the moving index catches up
// with the set's length. The returned order is BFS discovery order with
// root first (P4).
func RunWorklist(root types.ModuleID, resolve Resolver) ([]types.ModuleID, error) {
	return RunWorklistSeeded(types.NewIDSet(root), resolve)
}

// RunWorklistSeeded runs the same loop from an arbitrary, possibly
// multi-member seed set. The cross-import overlay resolver reuses this
// entry point from its sentinel root instead of duplicating the loop
// (spec.md §9 "Overlay pass with sentinel").
func RunWorklistSeeded(all *types.IDSet, resolve Resolver) ([]types.ModuleID, error) {
	for i := 0; i < all.Len(); i++ {
		deps, err := resolve(all.At(i))
		if err != nil {
			return nil, err
		}
		for _, dep := range deps {
			all.Add(dep)
		}
	}
	return all.Items(), nil
}

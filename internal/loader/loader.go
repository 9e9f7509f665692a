// Package loader provides the Module Loader Facade (spec.md §4.2): the
// idempotent wrapper around the host's two module-search queries that
// populates the cache as a side effect of each successful lookup.
package loader

import (
	"github.com/swiftdeps/modscan/internal/cache"
	"github.com/swiftdeps/modscan/internal/types"
)

// Host is the pluggable external collaborator that performs the actual
// module search (spec.md §1 "external collaborators"; §4.2). A real driver
// backs this with its Clang and Swift module loaders; tests back it with an
// in-memory fixture.
//
// ResolveClang performs a full Clang module search. On success it returns
// the found module and every Clang module transitively reachable from it
// that the underlying search discovered in the same pass (spec.md: "they
// may appear in one shot") — each with Resolved already true and
// ResolvedDependencies already populated, since the host's own search
// already computed their closure.
//
// ResolveSwift searches Swift module-interface and binary-artifact
// locations, returning exactly the one located module (never its closure).
type Host interface {
	ResolveClang(name string) (found *types.ModuleInfo, transitive []*types.ModuleInfo, ok bool, err error)
	ResolveSwift(name string) (found *types.ModuleInfo, ok bool, err error)
}

// Facade wraps a Host with a *cache.Cache so repeated lookups of the same
// name are idempotent: once a name has been resolved the filesystem is
// never consulted again for it (spec.md §4.2).
type Facade struct {
	host  Host
	cache *cache.Cache
}

// NewFacade constructs a Facade over host, recording discoveries into c.
func NewFacade(host Host, c *cache.Cache) *Facade {
	return &Facade{host: host, cache: c}
}

// ResolveClang resolves name as a Clang module, consulting the cache first.
func (f *Facade) ResolveClang(name string) (*types.ModuleInfo, bool, error) {
	id := types.ModuleID{Name: name, Kind: types.Clang}
	if info, ok := f.cache.Find(id); ok {
		return info, true, nil
	}

	found, transitive, ok, err := f.host.ResolveClang(name)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	if _, exists := f.cache.Find(found.ID()); !exists {
		f.cache.Record(found)
	}
	for _, t := range transitive {
		if _, exists := f.cache.Find(t.ID()); !exists {
			f.cache.Record(t)
		}
	}
	return found, true, nil
}

// ResolveSwift resolves name as whichever Swift kind the host locates
// (interface or binary), consulting the cache first across all Swift kinds
// that could plausibly hold a pre-existing entry.
func (f *Facade) ResolveSwift(name string) (*types.ModuleInfo, types.Kind, bool, error) {
	for _, k := range []types.Kind{types.SwiftInterface, types.SwiftBinary, types.SwiftPlaceholder} {
		id := types.ModuleID{Name: name, Kind: k}
		if info, ok := f.cache.Find(id); ok {
			return info, k, true, nil
		}
	}

	found, ok, err := f.host.ResolveSwift(name)
	if err != nil {
		return nil, 0, false, err
	}
	if !ok {
		return nil, 0, false, nil
	}
	if _, exists := f.cache.Find(found.ID()); !exists {
		f.cache.Record(found)
	}
	return found, found.Kind, true, nil
}

// Package cache implements the Module Dependency Cache (spec.md §4.1): the
// keyed store of per-module dependency records that lives for the duration
// of one scan (or, in batch mode, one sub-instance).
package cache

import (
	"errors"
	"fmt"

	"github.com/swiftdeps/modscan/internal/types"
)

// ErrNotFound is returned by Update and ResolveDependencyImports when the
// key has no entry. Unlike Record's invariant-violation panic, this path is
// reachable from host-driven control flow (a batch entry's root module
// failing to resolve), so it is a recoverable error, not a bug.
var ErrNotFound = errors.New("cache: module not found")

// Cache is the scan-scoped store of ModuleInfo, keyed by ModuleID (I1).
type Cache struct {
	contextHash string
	entries     map[types.ModuleID]*types.ModuleInfo
}

// New creates an empty cache carrying the given context hash: a digest of
// the invocation's effective configuration, used by the persistence layer
// to key persisted entries (spec.md §4.1, §6).
func New(contextHash string) *Cache {
	return &Cache{
		contextHash: contextHash,
		entries:     make(map[types.ModuleID]*types.ModuleInfo),
	}
}

// ContextHash returns the scan's configuration digest.
func (c *Cache) ContextHash() string {
	return c.contextHash
}

// Find performs an exact (name, kind) lookup; never a fuzzy match across kinds.
func (c *Cache) Find(id types.ModuleID) (*types.ModuleInfo, bool) {
	info, ok := c.entries[id]
	return info, ok
}

// Record inserts a brand-new entry. It panics if an entry with the same key
// already exists: per (I1) that can only happen from a caller bug (the same
// module discovered and recorded twice without going through Update), not a
// recoverable runtime condition.
func (c *Cache) Record(info *types.ModuleInfo) {
	id := info.ID()
	if _, exists := c.entries[id]; exists {
		panic(fmt.Sprintf("cache: Record called on existing key %s", id))
	}
	c.entries[id] = info
}

// Update replaces an existing entry, used after resolution mutates it.
func (c *Cache) Update(id types.ModuleID, info *types.ModuleInfo) error {
	if _, exists := c.entries[id]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	c.entries[id] = info
	return nil
}

// ResolveDependencyImports sets resolvedDependencies and marks the entry
// resolved, atomically with respect to any concurrent observer (the scanner
// is single-threaded per spec.md §5, so this is a plain assignment).
func (c *Cache) ResolveDependencyImports(id types.ModuleID, deps []types.ModuleID) error {
	entry, exists := c.entries[id]
	if !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	entry.ResolvedDependencies = deps
	entry.Resolved = true
	return nil
}

// All returns every recorded entry. Iteration order over the result is the
// Go map's unspecified order; callers needing deterministic output order
// use the worklist's BFS result instead (spec.md §4.5, §5).
func (c *Cache) All() map[types.ModuleID]*types.ModuleInfo {
	return c.entries
}

// Len returns the number of recorded entries.
func (c *Cache) Len() int {
	return len(c.entries)
}

package cache

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/swiftdeps/modscan/internal/types"
)

// Persister saves and restores a Cache across process invocations. The
// on-disk format is opaque per spec.md §6 ("the persistence format of the
// cache (only its observable semantics)"); this default implementation
// exists so a complete scan can round-trip without specifying one.
type Persister interface {
	Save(c *Cache, path string) error
	Load(path string, contextHash string) (*Cache, error)
}

// GobPersister is the default Persister, backed by encoding/gob. It is a
// reasonable stdlib choice for this one component: the wire format is
// explicitly unspecified by spec.md (only "preserve every ModuleInfo field
// verbatim" and "key entries by (name, kind, contextHash)" are required),
// so there is no ecosystem format to match the way the Graph Serializer
// must match JSON's exact byte contract. See DESIGN.md.
type GobPersister struct{}

type persistedEntry struct {
	ID   types.ModuleID
	Info types.ModuleInfo
}

type persistedCache struct {
	ContextHash string
	Entries     []persistedEntry
}

// Save writes every entry in c to path, keyed by (name, kind, contextHash).
func (GobPersister) Save(c *Cache, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cache: open %s for write: %w", path, err)
	}
	defer f.Close()

	var p persistedCache
	p.ContextHash = c.ContextHash()
	for id, info := range c.All() {
		p.Entries = append(p.Entries, persistedEntry{ID: id, Info: *info})
	}

	if err := gob.NewEncoder(f).Encode(p); err != nil {
		return fmt.Errorf("cache: encode %s: %w", path, err)
	}
	return nil
}

// Load restores a Cache from path. Entries persisted under a different
// contextHash are invisible to the current scan (spec.md §4.1): Load
// returns an empty cache carrying the requested contextHash rather than the
// persisted one when they differ.
func (GobPersister) Load(path string, contextHash string) (*Cache, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s for read: %w", path, err)
	}
	defer f.Close()

	var p persistedCache
	if err := gob.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("cache: decode %s: %w", path, err)
	}

	c := New(contextHash)
	if p.ContextHash != contextHash {
		return c, nil
	}
	for _, e := range p.Entries {
		info := e.Info
		c.Record(&info)
	}
	return c, nil
}

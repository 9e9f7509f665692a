// Package resolver implements the three components of spec.md §4 that turn
// a root configuration and a cache of discovered modules into a fully
// resolved dependency graph: the Main-Module Identifier (§4.3), the
// Direct-Dependency Resolver (§4.4), and the Cross-Import Overlay Resolver
// (§4.6). The Closure Worklist that drives both (§4.5) lives in
// internal/graph and is reused rather than duplicated.
package resolver

import (
	"errors"
	"log/slog"

	"github.com/swiftdeps/modscan/internal/cache"
	"github.com/swiftdeps/modscan/internal/loader"
	"github.com/swiftdeps/modscan/internal/types"
)

// ErrNoSuchModule is returned when ResolveDirect is asked to resolve a
// ModuleId the cache has no entry for — a caller bug, since every id passed
// to the worklist was itself returned by a prior resolution.
var ErrNoSuchModule = errors.New("resolver: no cache entry for module")

// BridgingHeaderParser is the external collaborator that parses a bridging
// header into the Clang modules and source files it references (spec.md
// §4.4 "Bridging header expansion"). Parse returns ok=false (not an error)
// for the documented best-effort failure path: a bridging header the L2
// importer chose not to, or could not usefully, parse — spec.md §9's open
// question is explicit that this must not be treated as a hard failure.
type BridgingHeaderParser interface {
	Parse(path string) (ok bool, clangModules []string, sourceFiles []string, err error)
}

// OverlayDeclaration is one row of a module's cross-import overlay table
// (spec.md §4.6): importing `Secondary` alongside the declaring module
// activates every name in Overlays.
type OverlayDeclaration = types.OverlayDeclaration

// OverlayDeclarations looks up the cross-import overlay table a module
// declares. Declarations must return rows in a stable order: the resolver's
// output ordering (P4) depends on it.
type OverlayDeclarations interface {
	Declarations(moduleName string) []OverlayDeclaration
}

// Context threads the cache, loader facade, and optional collaborators
// through every resolution phase of one scan.
type Context struct {
	Cache                *cache.Cache
	Loader               *loader.Facade
	BridgingHeaderParser BridgingHeaderParser
	Overlays             OverlayDeclarations

	types.Logger

	diagnostics []types.Diagnostic
}

// NewContext constructs a resolution context. bridgingHeaders and overlays
// may be nil when the configuration needs neither (tests frequently don't).
func NewContext(c *cache.Cache, l *loader.Facade, bridgingHeaders BridgingHeaderParser, overlays OverlayDeclarations, logger *slog.Logger) *Context {
	return &Context{
		Cache:                c,
		Loader:               l,
		BridgingHeaderParser: bridgingHeaders,
		Overlays:             overlays,
		Logger:               types.Logger{L: logger},
	}
}

// EmitDiagnostic records a non-fatal scan diagnostic (spec.md §7: dropped
// unresolved non-root imports, best-effort bridging-header failures).
func (c *Context) EmitDiagnostic(severity types.Severity, code, module, message string) {
	c.diagnostics = append(c.diagnostics, types.Diagnostic{
		Severity: severity,
		Code:     code,
		Module:   module,
		Message:  message,
	})
	if c.TraceEnabled() {
		c.Trace("diagnostic recorded", slog.String("code", code), slog.String("module", module))
	}
}

// Diagnostics returns every diagnostic recorded during resolution so far.
func (c *Context) Diagnostics() []types.Diagnostic {
	return c.diagnostics
}

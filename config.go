package modscan

import (
	"log/slog"

	"github.com/swiftdeps/modscan/internal/loader"
	"github.com/swiftdeps/modscan/internal/resolver"
	"github.com/swiftdeps/modscan/internal/types"
)

// LevelTrace is a log level more verbose than slog.LevelDebug, used by the
// resolver to report individual resolution steps.
const LevelTrace = types.LevelTrace

// Host is the pluggable module-search collaborator a Scan or Prescan runs
// against. See internal/loader.Host for the contract each method must
// satisfy.
type Host = loader.Host

// BridgingHeaderParser parses a root or interface module's bridging header.
// See internal/resolver.BridgingHeaderParser.
type BridgingHeaderParser = resolver.BridgingHeaderParser

// OverlayDeclarations looks up a module's cross-import overlay table. See
// internal/resolver.OverlayDeclarations.
type OverlayDeclarations = resolver.OverlayDeclarations

// SourceImportScanner extracts a source file's imports. See
// internal/resolver.SourceImportScanner.
type SourceImportScanner = resolver.SourceImportScanner

// ScanOption configures Scan and Prescan.
type ScanOption func(*scanConfig)

type scanConfig struct {
	logger  *slog.Logger
	host    Host
	scanner SourceImportScanner

	bridging resolver.BridgingHeaderParser
	overlays resolver.OverlayDeclarations

	rootName    string
	sourceFiles []string

	stdlibName            string
	implicitImports       []string
	loadedImplicitImports []string
	selfImport            bool

	bridgingHeaderPath  string
	apiNotesVersionPin  string
	clangTargetOverride *string
	targetTriple        string

	contextHash string
}

// WithLogger sets the logger for debug/trace output. If not set, no logging
// occurs (zero overhead), exactly as the teacher's WithLogger.
func WithLogger(logger *slog.Logger) ScanOption {
	return func(c *scanConfig) { c.logger = logger }
}

// WithHost sets the module-search collaborator a scan resolves imports
// against. Required for Scan; Prescan never consults it.
func WithHost(host Host) ScanOption {
	return func(c *scanConfig) { c.host = host }
}

// WithSourceImportScanner sets the collaborator that extracts a source
// file's imports. Required whenever SourceFiles is non-empty.
func WithSourceImportScanner(scanner SourceImportScanner) ScanOption {
	return func(c *scanConfig) { c.scanner = scanner }
}

// WithBridgingHeaderParser sets the optional bridging-header collaborator.
func WithBridgingHeaderParser(p BridgingHeaderParser) ScanOption {
	return func(c *scanConfig) { c.bridging = p }
}

// WithOverlayDeclarations sets the optional cross-import overlay table
// collaborator.
func WithOverlayDeclarations(o OverlayDeclarations) ScanOption {
	return func(c *scanConfig) { c.overlays = o }
}

// WithRoot names the root module and its source files.
func WithRoot(name string, sourceFiles ...string) ScanOption {
	return func(c *scanConfig) {
		c.rootName = name
		c.sourceFiles = append(c.sourceFiles, sourceFiles...)
	}
}

// WithStdlib requests an implicit import of the named standard library
// module.
func WithStdlib(name string) ScanOption {
	return func(c *scanConfig) { c.stdlibName = name }
}

// WithImplicitImports appends additional implicit imports, in order, that
// have not already been loaded.
func WithImplicitImports(names ...string) ScanOption {
	return func(c *scanConfig) { c.implicitImports = append(c.implicitImports, names...) }
}

// WithLoadedImplicitImports appends implicit imports already loaded
// elsewhere, contributed to the root's moduleImports by name only.
func WithLoadedImplicitImports(names ...string) ScanOption {
	return func(c *scanConfig) {
		c.loadedImplicitImports = append(c.loadedImplicitImports, names...)
	}
}

// WithSelfImportUnderlyingClang requests that the root import the Clang
// module of its own name (I5).
func WithSelfImportUnderlyingClang() ScanOption {
	return func(c *scanConfig) { c.selfImport = true }
}

// WithBridgingHeader sets the root's bridging header path.
func WithBridgingHeader(path string) ScanOption {
	return func(c *scanConfig) { c.bridgingHeaderPath = path }
}

// WithAPINotesVersionPin renders "-Xcc <pin>" into the root's extraPCMArgs.
func WithAPINotesVersionPin(pin string) ScanOption {
	return func(c *scanConfig) { c.apiNotesVersionPin = pin }
}

// WithClangTarget pins the Clang target triple explicitly, overriding the
// implicit "-Xcc -target -Xcc <triple>" the Main-Module Identifier would
// otherwise append.
func WithClangTarget(triple string) ScanOption {
	return func(c *scanConfig) {
		c.clangTargetOverride = &triple
		c.targetTriple = triple
	}
}

// WithImplicitTargetTriple sets the triple used for the implicit
// "-Xcc -target -Xcc <triple>" pin, when no explicit override is given.
func WithImplicitTargetTriple(triple string) ScanOption {
	return func(c *scanConfig) { c.targetTriple = triple }
}

// WithContextHash sets the scan's configuration digest, used to scope cache
// persistence (spec.md §4.1, §6). Defaults to "" (one global context) when
// unset.
func WithContextHash(hash string) ScanOption {
	return func(c *scanConfig) { c.contextHash = hash }
}

func newScanConfig(opts []ScanOption) *scanConfig {
	cfg := &scanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *scanConfig) rootConfig() resolver.RootConfig {
	return resolver.RootConfig{
		Name:                      c.rootName,
		SourceFiles:               c.sourceFiles,
		StdlibName:                c.stdlibName,
		ImplicitImports:           c.implicitImports,
		LoadedImplicitImports:     c.loadedImplicitImports,
		SelfImportUnderlyingClang: c.selfImport,
		BridgingHeaderPath:        c.bridgingHeaderPath,
		APINotesVersionPin:        c.apiNotesVersionPin,
		ClangTargetOverride:       c.clangTargetOverride,
		TargetTriple:              c.targetTriple,
	}
}

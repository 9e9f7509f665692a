package resolver

import "github.com/swiftdeps/modscan/internal/types"

// SourceImportScanner is the external parser collaborator: extracting a
// source file's imports is delegated entirely to it (spec.md §1 Non-goals
// "parsing source files beyond extracting their imports").
type SourceImportScanner interface {
	ScanImports(sourcePath string) ([]string, error)
}

// RootConfig is the invocation configuration the Main-Module Identifier
// builds the root entry from (spec.md §4.3).
type RootConfig struct {
	Name        string
	SourceFiles []string

	// StdlibName is the standard library module's name, or "" when the
	// configuration requests no implicit standard library import.
	StdlibName string

	// ImplicitImports lists additional implicit imports from configuration
	// that have not already been loaded, in order.
	ImplicitImports []string

	// LoadedImplicitImports lists implicit imports that are already loaded,
	// contributed to moduleImports by name only.
	LoadedImplicitImports []string

	// SelfImportUnderlyingClang requests that the root import the
	// underlying Clang module of its own name (I5: this always resolves to
	// the Clang entry via R-self, never to a Swift one).
	SelfImportUnderlyingClang bool

	BridgingHeaderPath string

	// APINotesVersionPin is rendered into extraPCMArgs as "-Xcc <pin>".
	APINotesVersionPin string

	// ClangTargetOverride, when non-nil, means the configuration already
	// pins the Clang target explicitly, so the Main-Module Identifier must
	// not also append its own "-Xcc -target -Xcc <TargetTriple>" pin.
	ClangTargetOverride *string
	TargetTriple        string
}

// BuildMainModule produces the L1Source (root) entry per spec.md §4.3:
// moduleImports is the ordered deduplication of (a) each source file's
// scanned imports, (b) the stdlib name, (c) unloaded implicit imports in
// order, (d) already-loaded implicit imports by name, (e) the root's own
// name iff self-importing its underlying Clang module.
func BuildMainModule(cfg RootConfig, scanner SourceImportScanner) (*types.ModuleInfo, error) {
	ordered := make([]string, 0, len(cfg.SourceFiles)+len(cfg.ImplicitImports)+len(cfg.LoadedImplicitImports)+2)
	seen := make(map[string]struct{}, cap(ordered))
	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		ordered = append(ordered, name)
	}

	for _, src := range cfg.SourceFiles {
		names, err := scanner.ScanImports(src)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			add(name)
		}
	}

	add(cfg.StdlibName)
	for _, name := range cfg.ImplicitImports {
		add(name)
	}
	for _, name := range cfg.LoadedImplicitImports {
		add(name)
	}
	if cfg.SelfImportUnderlyingClang {
		add(cfg.Name)
	}

	var extraPCMArgs []string
	if cfg.APINotesVersionPin != "" {
		extraPCMArgs = append(extraPCMArgs, "-Xcc", cfg.APINotesVersionPin)
	}
	if cfg.ClangTargetOverride == nil && cfg.TargetTriple != "" {
		extraPCMArgs = append([]string{"-Xcc", "-target", "-Xcc", cfg.TargetTriple}, extraPCMArgs...)
	}

	return &types.ModuleInfo{
		Name:          cfg.Name,
		Kind:          types.SwiftSource,
		ModuleImports: ordered,
		SwiftSourceDetails: &types.SwiftSourceDetails{
			SourceFiles:        cfg.SourceFiles,
			BridgingHeaderPath: cfg.BridgingHeaderPath,
			ExtraPCMArgs:       extraPCMArgs,
		},
	}, nil
}

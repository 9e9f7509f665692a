package types

import "fmt"

// Kind discriminates the five module variants a scan can produce.
type Kind int

const (
	SwiftInterface Kind = iota
	SwiftSource
	SwiftBinary
	SwiftPlaceholder
	Clang
)

// String returns a short tag for logging; it is not the wire-format kind tag
// used by the serializer (see internal/serialize).
func (k Kind) String() string {
	switch k {
	case SwiftInterface:
		return "swift-interface"
	case SwiftSource:
		return "swift-source"
	case SwiftBinary:
		return "swift-binary"
	case SwiftPlaceholder:
		return "swift-placeholder"
	case Clang:
		return "clang"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// FileExtension returns the on-disk module extension used for fallback
// module paths and cycle-chain formatting.
func (k Kind) FileExtension() string {
	if k == Clang {
		return ".pcm"
	}
	return ".swiftmodule"
}

// IsSwiftTextual reports whether the kind is resolved from source text
// (interface file or the root's own sources), as opposed to a pre-built
// artifact.
func (k Kind) IsSwiftTextual() bool {
	return k == SwiftInterface || k == SwiftSource
}

// IsSwift reports whether the kind belongs to the primary language, textual
// or not.
func (k Kind) IsSwift() bool {
	return k != Clang
}

// ModuleID identifies a module by name and kind. Two modules with the same
// name but different kinds are distinct entries (I1).
type ModuleID struct {
	Name string
	Kind Kind
}

func (id ModuleID) String() string {
	return id.Name + id.Kind.FileExtension()
}

// SwiftInterfaceDetails carries the fields specific to an L1Interface module:
// a non-root Swift module described by a textual interface file.
type SwiftInterfaceDetails struct {
	InterfacePath             string
	ModuleOutputPath          string
	ContextHash               string
	CommandLine               []string
	CompiledModuleCandidates  []string
	IsFramework               bool
	BridgingHeaderPath        string
	BridgingHeaderSourceFiles []string
	BridgingHeaderModuleDeps  []string
	ExtraPCMArgs              []string
}

// SwiftSourceDetails carries the fields specific to an L1Source entry: the
// root module, or the sentinel root the cross-import overlay pass records
// in the cache.
type SwiftSourceDetails struct {
	SourceFiles               []string
	BridgingHeaderPath        string
	BridgingHeaderSourceFiles []string
	BridgingHeaderModuleDeps  []string
	ExtraPCMArgs              []string
}

// SwiftBinaryDetails carries the fields specific to a pre-compiled Swift
// module artifact.
type SwiftBinaryDetails struct {
	CompiledModulePath   string
	ModuleDocPath        string
	ModuleSourceInfoPath string
	IsFramework          bool
}

// SwiftPlaceholderDetails carries the fields specific to an externally built
// Swift artifact whose metadata the host injects rather than discovers.
type SwiftPlaceholderDetails struct {
	CompiledModulePath   string
	ModuleDocPath        string
	ModuleSourceInfoPath string
}

// ClangDetails carries the fields specific to an L2 (Clang) module.
type ClangDetails struct {
	ModulePath      string
	ModuleMapPath   string
	ContextHash     string
	CommandLine     []string
	CapturedPCMArgs [][]string
	SourceFiles     []string
}

// ModuleInfo is a tagged variant over the five module kinds. Kind selects
// exactly one of the per-variant payload pointers; the AsXxx accessors
// return a payload together with whether Kind matches it.
type ModuleInfo struct {
	Name string
	Kind Kind

	ModuleImports        []string
	ResolvedDependencies []ModuleID
	Resolved             bool

	SwiftInterfaceDetails   *SwiftInterfaceDetails
	SwiftSourceDetails      *SwiftSourceDetails
	SwiftBinaryDetails      *SwiftBinaryDetails
	SwiftPlaceholderDetails *SwiftPlaceholderDetails
	ClangDetails            *ClangDetails
}

// ID returns the ModuleId key for this entry.
func (m *ModuleInfo) ID() ModuleID {
	return ModuleID{Name: m.Name, Kind: m.Kind}
}

// AsSwiftInterface returns the SwiftInterface payload, if this entry is one.
func (m *ModuleInfo) AsSwiftInterface() (*SwiftInterfaceDetails, bool) {
	return m.SwiftInterfaceDetails, m.Kind == SwiftInterface
}

// AsSwiftSource returns the SwiftSource payload, if this entry is one.
func (m *ModuleInfo) AsSwiftSource() (*SwiftSourceDetails, bool) {
	return m.SwiftSourceDetails, m.Kind == SwiftSource
}

// AsSwiftBinary returns the SwiftBinary payload, if this entry is one.
func (m *ModuleInfo) AsSwiftBinary() (*SwiftBinaryDetails, bool) {
	return m.SwiftBinaryDetails, m.Kind == SwiftBinary
}

// AsSwiftPlaceholder returns the SwiftPlaceholder payload, if this entry is one.
func (m *ModuleInfo) AsSwiftPlaceholder() (*SwiftPlaceholderDetails, bool) {
	return m.SwiftPlaceholderDetails, m.Kind == SwiftPlaceholder
}

// AsClang returns the Clang payload, if this entry is one.
func (m *ModuleInfo) AsClang() (*ClangDetails, bool) {
	return m.ClangDetails, m.Kind == Clang
}

// BridgingHeaderPath returns the bridging-header path common to the two
// textual kinds that may carry one (SwiftInterface, SwiftSource), or "" for
// every other kind or when none is configured.
func (m *ModuleInfo) BridgingHeaderPath() string {
	switch m.Kind {
	case SwiftInterface:
		return m.SwiftInterfaceDetails.BridgingHeaderPath
	case SwiftSource:
		return m.SwiftSourceDetails.BridgingHeaderPath
	default:
		return ""
	}
}

// SetBridgingHeaderModuleDeps records the Clang modules a bridging header
// references, on whichever textual kind carries one.
func (m *ModuleInfo) SetBridgingHeaderModuleDeps(names []string) {
	switch m.Kind {
	case SwiftInterface:
		m.SwiftInterfaceDetails.BridgingHeaderModuleDeps = names
	case SwiftSource:
		m.SwiftSourceDetails.BridgingHeaderModuleDeps = names
	}
}

// ModulePath returns the module's on-disk path for serialization, falling
// back to "<name><ext>" when no loader-supplied path is recorded (spec.md
// §4.8's modulePath selection rule).
func (m *ModuleInfo) ModulePath() string {
	switch m.Kind {
	case SwiftBinary:
		return m.SwiftBinaryDetails.CompiledModulePath
	case SwiftPlaceholder:
		return m.SwiftPlaceholderDetails.CompiledModulePath
	case SwiftInterface:
		if m.SwiftInterfaceDetails.ModuleOutputPath != "" {
			return m.SwiftInterfaceDetails.ModuleOutputPath
		}
	case Clang:
		if m.ClangDetails.ModulePath != "" {
			return m.ClangDetails.ModulePath
		}
	}
	return m.Name + m.Kind.FileExtension()
}

// SourceFiles returns the module's source file list, applicable only to
// SwiftSource (the root) and Clang entries (spec.md §4.8 "Source files are
// included only for L1Source and L2").
func (m *ModuleInfo) SourceFiles() []string {
	switch m.Kind {
	case SwiftSource:
		return m.SwiftSourceDetails.SourceFiles
	case Clang:
		return m.ClangDetails.SourceFiles
	default:
		return nil
	}
}

// IDSet is an insertion-ordered, dedup-on-insert set of ModuleId, mirroring
// LLVM's SetVector. Used for the worklist's discovered-module set and the
// resolver's per-call dependency accumulator, both of which have ordering
// guarantees that a plain map cannot express (spec.md §4.4 "Ordering &
// tie-breaks", §4.5, §5).
type IDSet struct {
	order []ModuleID
	seen  map[ModuleID]struct{}
}

// NewIDSet creates an empty ordered set, optionally seeded with ids.
func NewIDSet(ids ...ModuleID) *IDSet {
	s := &IDSet{seen: make(map[ModuleID]struct{}, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add appends id if not already present, returning true iff it was newly
// inserted.
func (s *IDSet) Add(id ModuleID) bool {
	if _, ok := s.seen[id]; ok {
		return false
	}
	s.seen[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

// Contains reports whether id is already in the set.
func (s *IDSet) Contains(id ModuleID) bool {
	_, ok := s.seen[id]
	return ok
}

// Items returns the set's members in insertion order. The caller must not
// mutate the returned slice.
func (s *IDSet) Items() []ModuleID {
	return s.order
}

// At returns the i'th inserted member.
func (s *IDSet) At(i int) ModuleID {
	return s.order[i]
}

// Len returns the number of members.
func (s *IDSet) Len() int {
	return len(s.order)
}

// OverlayDeclaration is one row of a module's cross-import overlay table
// (spec.md §4.6): importing Secondary alongside the declaring module
// activates every name in Overlays.
type OverlayDeclaration struct {
	Secondary string
	Overlays  []string
}

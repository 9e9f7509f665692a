package serialize

import (
	"io"

	"github.com/swiftdeps/modscan/internal/types"
)

// kindTag returns the wire-format tag used both for the encoded module id
// and inside directDependencies entries (spec.md §4.8).
func kindTag(k types.Kind) string {
	switch k {
	case types.SwiftInterface, types.SwiftSource:
		return "swiftTextual"
	case types.SwiftBinary:
		return "swiftBinary"
	case types.SwiftPlaceholder:
		return "swiftPlaceholder"
	case types.Clang:
		return "clang"
	default:
		return "unknown"
	}
}

// detailsTag returns the key selecting the per-kind details schema. It
// differs from kindTag for two groups of kinds: the textual kinds are tagged
// "swiftTextual" as an id but "swift" inside details, and a SwiftBinary
// module is tagged "swiftBinary" as an id but "swiftPrebuiltExternal" inside
// details (spec.md §4.8).
func detailsTag(k types.Kind) string {
	switch k {
	case types.SwiftInterface, types.SwiftSource:
		return "swift"
	case types.SwiftBinary:
		return "swiftPrebuiltExternal"
	case types.SwiftPlaceholder:
		return "swiftPlaceholder"
	case types.Clang:
		return "clang"
	default:
		return "unknown"
	}
}

// encodedID writes the single-field `{"<kindTag>": "<name>"}` object that
// identifies a module, as either the module entry's first element or a
// directDependencies member.
func (w *writer) encodedID(id types.ModuleID, comma bool) {
	w.indent()
	w.openObject()
	w.stringField(kindTag(id.Kind), id.Name, false)
	w.closeObject(comma)
}

func (w *writer) directDependenciesField(ids []types.ModuleID, comma bool) {
	w.key("directDependencies")
	if len(ids) == 0 {
		w.raw("[]")
		w.endLine(comma)
		return
	}
	w.openArray()
	for i, id := range ids {
		w.encodedID(id, i < len(ids)-1)
	}
	w.closeArray(comma)
}

// WriteGraph writes the full-scan output document of spec.md §6: a
// mainModuleName field and an ordered modules array, each entry a two-
// element [encodedId, body] pair. modules must already be in the order the
// output requires (BFS discovery order, root first — P4); this function
// does not reorder them.
func WriteGraph(out io.Writer, mainModuleName string, modules []*types.ModuleInfo) error {
	w := newWriter()
	w.openObject()
	w.stringField("mainModuleName", mainModuleName, true)
	w.key("modules")
	if len(modules) == 0 {
		w.raw("[]\n")
	} else {
		w.openArray()
		for i, m := range modules {
			w.writeModuleEntry(m, i < len(modules)-1)
		}
		w.closeArray(false)
	}
	w.closeObject(false)
	_, err := io.WriteString(out, w.String())
	return err
}

// writeModuleEntry writes one [encodedId, body] pair.
func (w *writer) writeModuleEntry(m *types.ModuleInfo, comma bool) {
	w.indent()
	w.openArray()
	w.encodedID(m.ID(), true)

	w.indent()
	w.openObject()
	w.stringField("modulePath", m.ModulePath(), true)
	if sources := m.SourceFiles(); m.Kind == types.SwiftSource || m.Kind == types.Clang {
		w.stringArrayField("sourceFiles", sources, true)
	}
	w.directDependenciesField(m.ResolvedDependencies, true)
	w.key("details")
	w.openObject()
	w.key(detailsTag(m.Kind))
	w.writeDetails(m)
	w.closeObject(false)
	w.closeObject(false)

	w.closeArray(comma)
}

// WritePrescan writes the `{"imports": [...]}` document of spec.md §6.
func WritePrescan(out io.Writer, imports []string) error {
	w := newWriter()
	w.openObject()
	w.stringArrayField("imports", imports, false)
	w.closeObject(false)
	_, err := io.WriteString(out, w.String())
	return err
}

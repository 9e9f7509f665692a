package serialize

import "github.com/swiftdeps/modscan/internal/types"

// fieldFn writes one field of a details object, given whether a trailing
// comma is needed.
type fieldFn func(w *writer, comma bool)

// writeFields writes `{ field1, field2, ... }`, closing with comma.
func (w *writer) writeFields(fields []fieldFn, comma bool) {
	w.openObject()
	for i, f := range fields {
		f(w, i < len(fields)-1)
	}
	w.closeObject(comma)
}

// writeDetails writes the per-kind details object body (spec.md §6); the
// caller has already written the outer `"details": { "<tag>": ` prefix and
// closes the two enclosing objects itself.
func (w *writer) writeDetails(m *types.ModuleInfo) {
	switch m.Kind {
	case types.SwiftInterface, types.SwiftSource:
		w.writeFields(swiftDetailFields(m), false)
	case types.SwiftBinary:
		w.writeFields(swiftBinaryDetailFields(m.SwiftBinaryDetails), false)
	case types.SwiftPlaceholder:
		w.writeFields(swiftPlaceholderDetailFields(m.SwiftPlaceholderDetails), false)
	case types.Clang:
		w.writeFields(clangDetailFields(m.ClangDetails), false)
	}
}

func stringFieldFn(key, value string) fieldFn {
	return func(w *writer, comma bool) { w.stringField(key, value, comma) }
}

func boolFieldFn(key string, value bool) fieldFn {
	return func(w *writer, comma bool) { w.boolField(key, value, comma) }
}

func stringArrayFieldFn(key string, values []string) fieldFn {
	return func(w *writer, comma bool) { w.stringArrayField(key, values, comma) }
}

// swiftDetailFields builds the "swift" details schema shared by
// SwiftInterface and SwiftSource (the root). isFramework is always present;
// the interface-path, hash, command-line, and candidates block is emitted
// only when the interface path is non-empty — the root never has one.
func swiftDetailFields(m *types.ModuleInfo) []fieldFn {
	var (
		interfacePath string
		contextHash   string
		commandLine   []string
		candidates    []string
		isFramework   bool
		extraPCMArgs  []string
		bridgingPath  string
		bridgingFiles []string
		bridgingDeps  []string
	)

	switch m.Kind {
	case types.SwiftInterface:
		d := m.SwiftInterfaceDetails
		interfacePath = d.InterfacePath
		contextHash = d.ContextHash
		commandLine = d.CommandLine
		candidates = d.CompiledModuleCandidates
		isFramework = d.IsFramework
		extraPCMArgs = d.ExtraPCMArgs
		bridgingPath = d.BridgingHeaderPath
		bridgingFiles = d.BridgingHeaderSourceFiles
		bridgingDeps = d.BridgingHeaderModuleDeps
	case types.SwiftSource:
		d := m.SwiftSourceDetails
		isFramework = false
		extraPCMArgs = d.ExtraPCMArgs
		bridgingPath = d.BridgingHeaderPath
		bridgingFiles = d.BridgingHeaderSourceFiles
		bridgingDeps = d.BridgingHeaderModuleDeps
	}

	var fields []fieldFn
	fields = append(fields, boolFieldFn("isFramework", isFramework))
	if interfacePath != "" {
		fields = append(fields,
			stringFieldFn("moduleInterfacePath", interfacePath),
			stringFieldFn("contextHash", contextHash),
			stringArrayFieldFn("commandLine", commandLine),
			stringArrayFieldFn("compiledModuleCandidates", candidates),
		)
	}
	if len(extraPCMArgs) > 0 {
		fields = append(fields, stringArrayFieldFn("extraPcmArgs", extraPCMArgs))
	}
	if bridgingPath != "" {
		fields = append(fields, func(w *writer, comma bool) {
			w.key("bridgingHeader")
			w.writeFields([]fieldFn{
				stringFieldFn("path", bridgingPath),
				stringArrayFieldFn("sourceFiles", bridgingFiles),
				stringArrayFieldFn("moduleDependencies", bridgingDeps),
			}, comma)
		})
	}
	return fields
}

func swiftBinaryDetailFields(d *types.SwiftBinaryDetails) []fieldFn {
	fields := []fieldFn{stringFieldFn("compiledModulePath", d.CompiledModulePath)}
	if d.ModuleDocPath != "" {
		fields = append(fields, stringFieldFn("moduleDocPath", d.ModuleDocPath))
	}
	if d.ModuleSourceInfoPath != "" {
		fields = append(fields, stringFieldFn("moduleSourceInfoPath", d.ModuleSourceInfoPath))
	}
	fields = append(fields, boolFieldFn("isFramework", d.IsFramework))
	return fields
}

func swiftPlaceholderDetailFields(d *types.SwiftPlaceholderDetails) []fieldFn {
	var fields []fieldFn
	if d.ModuleDocPath != "" {
		fields = append(fields, stringFieldFn("moduleDocPath", d.ModuleDocPath))
	}
	if d.ModuleSourceInfoPath != "" {
		fields = append(fields, stringFieldFn("moduleSourceInfoPath", d.ModuleSourceInfoPath))
	}
	return fields
}

func clangDetailFields(d *types.ClangDetails) []fieldFn {
	return []fieldFn{
		stringFieldFn("moduleMapPath", d.ModuleMapPath),
		stringFieldFn("contextHash", d.ContextHash),
		stringArrayFieldFn("commandLine", d.CommandLine),
		func(w *writer, comma bool) { w.nestedStringArrayField("capturedPCMArgs", d.CapturedPCMArgs, comma) },
	}
}

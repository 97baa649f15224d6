package model

// ToolOrigin says how a Tool's path is anchored.
type ToolOrigin string

const (
	// OriginCrosstool resolves the path relative to the crosstool package.
	// This is the default when a configuration leaves the origin unset.
	OriginCrosstool ToolOrigin = "crosstool"

	// OriginAbsolute treats the path as absolute on the host filesystem.
	OriginAbsolute ToolOrigin = "absolute"

	// OriginWorkspace resolves the path relative to the execution root.
	OriginWorkspace ToolOrigin = "workspace"
)

func validToolOrigin(o ToolOrigin) bool {
	switch o {
	case OriginCrosstool, OriginAbsolute, OriginWorkspace:
		return true
	}
	return false
}

// CompilationMode selects a per-mode compiler flag overlay. The zero value
// means no overlay applies.
type CompilationMode string

const (
	ModeFastbuild CompilationMode = "fastbuild"
	ModeDbg       CompilationMode = "dbg"
	ModeOpt       CompilationMode = "opt"
)

func validCompilationMode(m CompilationMode) bool {
	switch m {
	case ModeFastbuild, ModeDbg, ModeOpt:
		return true
	}
	return false
}

// LinkingMode selects a per-mode linker flag overlay. The zero value means
// no overlay applies.
type LinkingMode string

const (
	LinkFullyStatic           LinkingMode = "fully_static"
	LinkMostlyStatic          LinkingMode = "mostly_static"
	LinkDynamic               LinkingMode = "dynamic"
	LinkMostlyStaticLibraries LinkingMode = "mostly_static_libraries"
)

func validLinkingMode(m LinkingMode) bool {
	switch m {
	case LinkFullyStatic, LinkMostlyStatic, LinkDynamic, LinkMostlyStaticLibraries:
		return true
	}
	return false
}

// artifactCategories is the fixed set of artifact category names a pattern
// may target. The set is shared with the build-system caller; a category
// outside it is a load-time error.
var artifactCategories = map[string]struct{}{
	"static_library":              {},
	"alwayslink_static_library":   {},
	"dynamic_library":             {},
	"interface_library":           {},
	"executable":                  {},
	"object_file":                 {},
	"pic_object_file":             {},
	"pic_file":                    {},
	"included_file_list":          {},
	"serialized_diagnostics_file": {},
	"clif_output_file":            {},
	"generated_assembly":          {},
	"processed_header":            {},
	"generated_header":            {},
	"constant_dynamic_library":    {},
	"debug_symbols":               {},
}

// KnownArtifactCategory reports whether the given category name is one the
// resolver's callers understand.
func KnownArtifactCategory(category string) bool {
	_, ok := artifactCategories[category]
	return ok
}

package resolve

// Canonical action names, as referenced by flag sets and action configs.
// Configurations are free to define their own action names; these constants
// only matter for the legacy flag lists, which target the classic compile
// and link actions.
const (
	ActionCCompile           = "c-compile"
	ActionCppCompile         = "c++-compile"
	ActionCppHeaderParsing   = "c++-header-parsing"
	ActionCppModuleCompile   = "c++-module-compile"
	ActionCppModuleCodegen   = "c++-module-codegen"
	ActionAssemble           = "assemble"
	ActionPreprocessAssemble = "preprocess-assemble"
	ActionLinkstampCompile   = "linkstamp-compile"

	ActionLinkExecutable           = "c++-link-executable"
	ActionLinkDynamicLibrary       = "c++-link-dynamic-library"
	ActionLinkNodepsDynamicLibrary = "c++-link-nodeps-dynamic-library"
	ActionLinkStaticLibrary        = "c++-link-static-library"
)

// compileActions receive the legacy compiler_flags and, last of all,
// unfiltered_cxx_flags.
var compileActions = map[string]struct{}{
	ActionCCompile:           {},
	ActionCppCompile:         {},
	ActionCppHeaderParsing:   {},
	ActionCppModuleCompile:   {},
	ActionCppModuleCodegen:   {},
	ActionAssemble:           {},
	ActionPreprocessAssemble: {},
	ActionLinkstampCompile:   {},
}

// cxxActions additionally receive the legacy cxx_flags.
var cxxActions = map[string]struct{}{
	ActionCppCompile:       {},
	ActionCppHeaderParsing: {},
	ActionCppModuleCompile: {},
	ActionCppModuleCodegen: {},
	ActionLinkstampCompile: {},
}

// linkActions receive the legacy linker_flags. Static library archiving is
// deliberately absent; the archiver takes no linker flags.
var linkActions = map[string]struct{}{
	ActionLinkExecutable:           {},
	ActionLinkDynamicLibrary:       {},
	ActionLinkNodepsDynamicLibrary: {},
}

func isCompileAction(action string) bool {
	_, ok := compileActions[action]
	return ok
}

func isCXXAction(action string) bool {
	_, ok := cxxActions[action]
	return ok
}

func isLinkAction(action string) bool {
	_, ok := linkActions[action]
	return ok
}

package model

// Toolchain is the complete configuration for one target/host/cpu
// combination. All fields are fixed at load time; a validated Toolchain is
// safe for concurrent read-only use.
type Toolchain struct {
	// Identifier is the path-safe name of this toolchain, used to name its
	// output directories.
	Identifier string

	HostSystem     string
	TargetSystem   string
	TargetCPU      string
	Compiler       string
	ABIVersion     string
	ABILibcVersion string

	// BuiltinSysroot is the sysroot baked into the toolchain, if any.
	BuiltinSysroot string

	Features      []*Feature
	ActionConfigs []*ActionConfig

	ArtifactNamePatterns []*ArtifactNamePattern
	ToolPaths            []*ToolPath
	MakeVariables        []*MakeVariable

	// Legacy flag lists, appended after feature-derived flags.
	CompilerFlags      []string
	CXXFlags           []string
	LinkerFlags        []string
	UnfilteredCXXFlags []string

	CompilationModeFlags []*CompilationModeFlags
	LinkingModeFlags     []*LinkingModeFlags
}

// Feature is a named unit of conditional configuration.
type Feature struct {
	Name string

	// Enabled marks the feature as always-on. An always-on feature cannot be
	// disabled by a request.
	Enabled bool

	FlagSets []*FlagSet
	EnvSets  []*EnvSet

	// Requires is a disjunction: the feature can activate only if at least
	// one of these sets is fully active. An unmet Requires silently keeps
	// the feature inactive.
	Requires []*FeatureSet

	// Implies names features or action configs activated together with this
	// one.
	Implies []string

	// Provides names capabilities this feature supplies. Two active
	// selectables providing the same capability is a resolution conflict.
	Provides []string
}

// ActionConfig binds a build action to the tools that implement it, with the
// same activation mechanics as a Feature.
type ActionConfig struct {
	// ConfigName is the name usable in Requires/Implies references.
	ConfigName string

	// ActionName is the build action this config governs.
	ActionName string

	Enabled bool

	// Tools are candidates in priority order; the first whose WithFeatures
	// matches the active set is selected.
	Tools []*Tool

	FlagSets []*FlagSet
	EnvSets  []*EnvSet

	Requires []*FeatureSet
	Implies  []string
	Provides []string
}

// FeatureSet is a conjunction of feature names: satisfied when every named
// selectable is active.
type FeatureSet struct {
	Features []string
}

// WithFeatureSet is a conjunction of positive and negated feature names:
// satisfied when every name in Features is active and none in NotFeatures is.
type WithFeatureSet struct {
	Features    []string
	NotFeatures []string
}

// FlagSet applies an ordered list of flag groups to a fixed set of actions,
// optionally gated by a disjunction of WithFeatureSet.
type FlagSet struct {
	// Actions the set applies to. Empty only on ActionConfig sets, which
	// bind to their own action.
	Actions []string

	// WithFeatures is a disjunction; any one matching set admits this
	// FlagSet. Empty means unconditional.
	WithFeatures []*WithFeatureSet

	FlagGroups []*FlagGroup
}

// FlagGroup is a node in the flag tree: either a leaf holding literal flag
// templates or an interior node holding nested groups, never both.
type FlagGroup struct {
	// Flags are literal templates, possibly containing %{var} placeholders.
	// Mutually exclusive with FlagGroups.
	Flags []string

	FlagGroups []*FlagGroup

	// IterateOver names a sequence variable; the group expands once per
	// element with that element bound under the same name.
	IterateOver string

	ExpandIfAllAvailable  []string
	ExpandIfNoneAvailable []string
	ExpandIfTrue          string
	ExpandIfFalse         string
	ExpandIfEqual         *VariableWithValue
}

// EnvSet applies environment entries to a fixed set of actions, gated like a
// FlagSet.
type EnvSet struct {
	Actions      []string
	WithFeatures []*WithFeatureSet
	EnvEntries   []*EnvEntry
}

// EnvEntry sets one environment variable. The key is literal; the value is
// expanded like a flag template.
type EnvEntry struct {
	Key                  string
	Value                string
	ExpandIfAllAvailable []string
}

// VariableWithValue pairs a variable name with a literal value for the
// expand_if_equal guard.
type VariableWithValue struct {
	Variable string
	Value    string
}

// Tool is one candidate implementation of an action.
type Tool struct {
	// Path to the tool, interpreted relative to Origin.
	Path string

	// Origin anchors Path. Empty is equivalent to OriginCrosstool; front
	// ends normalize it during translation.
	Origin ToolOrigin

	// WithFeatures gates applicability; empty means always applicable.
	WithFeatures []*WithFeatureSet

	// ExecutionRequirements are opaque strings passed through to the caller.
	ExecutionRequirements []string
}

// ArtifactNamePattern maps an artifact category to the prefix and extension
// used to name generated files of that category.
type ArtifactNamePattern struct {
	Category  string
	Prefix    string
	Extension string
}

// ToolPath is a legacy name-to-path tool mapping, for actions not governed
// by an ActionConfig.
type ToolPath struct {
	Name string
	Path string
}

// MakeVariable is a toolchain-supplied make variable.
type MakeVariable struct {
	Name  string
	Value string
}

// CompilationModeFlags overlays extra flags when building in one
// compilation mode.
type CompilationModeFlags struct {
	Mode          CompilationMode
	CompilerFlags []string
	CXXFlags      []string
	LinkerFlags   []string
}

// LinkingModeFlags overlays extra linker flags for one linking mode.
type LinkingModeFlags struct {
	Mode        LinkingMode
	LinkerFlags []string
}

// Package schema defines the HCL block structures for crosstool description
// files. These structs are the raw decode targets; the hcladapter package
// translates them into the format-agnostic model.
//
// Flag and env value placeholders are written "%%{var}" in description
// files: "%{" opens a template directive inside an HCL quoted string, and
// the doubled percent is HCL's escape for it. Decoding yields the single
// "%{var}" form the expander consumes, so nothing downstream un-escapes.
package schema

// Root is the top-level structure of a crosstool description file.
type Root struct {
	Toolchain *Toolchain `hcl:"toolchain,block"`
}

// Toolchain represents a `toolchain` block: one target/host/cpu
// configuration.
type Toolchain struct {
	Identifier string `hcl:"identifier,label"`

	HostSystem     string `hcl:"host_system,optional"`
	TargetSystem   string `hcl:"target_system,optional"`
	TargetCPU      string `hcl:"target_cpu,optional"`
	Compiler       string `hcl:"compiler,optional"`
	ABIVersion     string `hcl:"abi_version,optional"`
	ABILibcVersion string `hcl:"abi_libc_version,optional"`

	BuiltinSysroot string `hcl:"builtin_sysroot,optional"`

	CompilerFlags      []string `hcl:"compiler_flags,optional"`
	CXXFlags           []string `hcl:"cxx_flags,optional"`
	LinkerFlags        []string `hcl:"linker_flags,optional"`
	UnfilteredCXXFlags []string `hcl:"unfiltered_cxx_flags,optional"`

	Features             []*Feature              `hcl:"feature,block"`
	ActionConfigs        []*ActionConfig         `hcl:"action_config,block"`
	ArtifactNamePatterns []*ArtifactNamePattern  `hcl:"artifact_name_pattern,block"`
	ToolPaths            []*ToolPath             `hcl:"tool_path,block"`
	MakeVariables        []*MakeVariable         `hcl:"make_variable,block"`
	CompilationModeFlags []*CompilationModeFlags `hcl:"compilation_mode_flags,block"`
	LinkingModeFlags     []*LinkingModeFlags     `hcl:"linking_mode_flags,block"`
}

// Feature represents a `feature` block.
type Feature struct {
	Name string `hcl:"name,label"`

	Enabled  bool        `hcl:"enabled,optional"`
	Implies  []string    `hcl:"implies,optional"`
	Provides []string    `hcl:"provides,optional"`
	Requires []*Requires `hcl:"requires,block"`
	FlagSets []*FlagSet  `hcl:"flag_set,block"`
	EnvSets  []*EnvSet   `hcl:"env_set,block"`
}

// Requires represents one `requires` block: a conjunction of features.
// Repeated blocks form a disjunction.
type Requires struct {
	Features []string `hcl:"features"`
}

// WithFeature represents one `with_feature` block: a conjunction of active
// and inactive features. Repeated blocks form a disjunction.
type WithFeature struct {
	Features    []string `hcl:"features,optional"`
	NotFeatures []string `hcl:"not_features,optional"`
}

// FlagSet represents a `flag_set` block.
type FlagSet struct {
	Actions      []string       `hcl:"actions,optional"`
	WithFeatures []*WithFeature `hcl:"with_feature,block"`
	FlagGroups   []*FlagGroup   `hcl:"flag_group,block"`
}

// FlagGroup represents a `flag_group` block. Groups nest recursively; a
// group carries either flags or nested groups, enforced by model validation.
// Placeholders inside flags are spelled "%%{var}", see the package comment.
type FlagGroup struct {
	Flags      []string     `hcl:"flags,optional"`
	FlagGroups []*FlagGroup `hcl:"flag_group,block"`

	IterateOver string `hcl:"iterate_over,optional"`

	ExpandIfAllAvailable  []string       `hcl:"expand_if_all_available,optional"`
	ExpandIfNoneAvailable []string       `hcl:"expand_if_none_available,optional"`
	ExpandIfTrue          string         `hcl:"expand_if_true,optional"`
	ExpandIfFalse         string         `hcl:"expand_if_false,optional"`
	ExpandIfEqual         *ExpandIfEqual `hcl:"expand_if_equal,block"`
}

// ExpandIfEqual represents an `expand_if_equal` block.
type ExpandIfEqual struct {
	Variable string `hcl:"variable"`
	Value    string `hcl:"value"`
}

// EnvSet represents an `env_set` block.
type EnvSet struct {
	Actions      []string       `hcl:"actions,optional"`
	WithFeatures []*WithFeature `hcl:"with_feature,block"`
	EnvEntries   []*EnvEntry    `hcl:"env_entry,block"`
}

// EnvEntry represents an `env_entry` block.
type EnvEntry struct {
	Key                  string   `hcl:"key"`
	Value                string   `hcl:"value"`
	ExpandIfAllAvailable []string `hcl:"expand_if_all_available,optional"`
}

// ActionConfig represents an `action_config` block.
type ActionConfig struct {
	ConfigName string `hcl:"config_name,label"`

	ActionName string      `hcl:"action_name"`
	Enabled    bool        `hcl:"enabled,optional"`
	Implies    []string    `hcl:"implies,optional"`
	Provides   []string    `hcl:"provides,optional"`
	Requires   []*Requires `hcl:"requires,block"`
	Tools      []*Tool     `hcl:"tool,block"`
	FlagSets   []*FlagSet  `hcl:"flag_set,block"`
	EnvSets    []*EnvSet   `hcl:"env_set,block"`
}

// Tool represents a `tool` block inside an action_config.
type Tool struct {
	Path                  string         `hcl:"path"`
	Origin                string         `hcl:"origin,optional"`
	WithFeatures          []*WithFeature `hcl:"with_feature,block"`
	ExecutionRequirements []string       `hcl:"execution_requirements,optional"`
}

// ArtifactNamePattern represents an `artifact_name_pattern` block.
type ArtifactNamePattern struct {
	Category  string `hcl:"category,label"`
	Prefix    string `hcl:"prefix,optional"`
	Extension string `hcl:"extension,optional"`
}

// ToolPath represents a legacy `tool_path` block.
type ToolPath struct {
	Name string `hcl:"name,label"`
	Path string `hcl:"path"`
}

// MakeVariable represents a `make_variable` block.
type MakeVariable struct {
	Name  string `hcl:"name,label"`
	Value string `hcl:"value"`
}

// CompilationModeFlags represents a `compilation_mode_flags` block, labeled
// by mode.
type CompilationModeFlags struct {
	Mode          string   `hcl:"mode,label"`
	CompilerFlags []string `hcl:"compiler_flags,optional"`
	CXXFlags      []string `hcl:"cxx_flags,optional"`
	LinkerFlags   []string `hcl:"linker_flags,optional"`
}

// LinkingModeFlags represents a `linking_mode_flags` block, labeled by mode.
type LinkingModeFlags struct {
	Mode        string   `hcl:"mode,label"`
	LinkerFlags []string `hcl:"linker_flags,optional"`
}

package model

import (
	"fmt"
	"regexp"
	"strings"
)

// identifierRe matches the path-safe names allowed for toolchain
// identifiers: no separators, no leading dash.
var identifierRe = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.\-]*$`)

// Validate checks every structural rule a toolchain configuration must obey
// and returns a *ConfigError describing the first violation found. A nil
// return means the toolchain is safe to hand to the resolver; front ends
// call this once after translation. Validate never mutates the toolchain.
//
// An unset tool origin is accepted as equivalent to OriginCrosstool; front
// ends fill in the default during translation.
func Validate(t *Toolchain) error {
	if t.Identifier == "" {
		return configErrorf("", "toolchain_identifier must not be empty")
	}
	if !identifierRe.MatchString(t.Identifier) {
		return configErrorf("", "toolchain_identifier %q is not path-safe", t.Identifier)
	}

	names, err := collectSelectableNames(t)
	if err != nil {
		return err
	}

	for _, f := range t.Features {
		if err := validateActivation(f.Name, f.Requires, f.Implies, names); err != nil {
			return err
		}
		for _, fs := range f.FlagSets {
			if len(fs.Actions) == 0 {
				return configErrorf(f.Name, "feature flag_set must name at least one action")
			}
			if err := validateFlagSet(f.Name, fs, names); err != nil {
				return err
			}
		}
		for _, es := range f.EnvSets {
			if len(es.Actions) == 0 {
				return configErrorf(f.Name, "feature env_set must name at least one action")
			}
			if err := validateEnvSet(f.Name, es, names); err != nil {
				return err
			}
		}
	}

	for _, a := range t.ActionConfigs {
		if a.ActionName == "" {
			return configErrorf(a.ConfigName, "action_config must name an action")
		}
		if err := validateActivation(a.ConfigName, a.Requires, a.Implies, names); err != nil {
			return err
		}
		for _, fs := range a.FlagSets {
			if len(fs.Actions) != 0 {
				return configErrorf(a.ConfigName, "action_config flag_set must not name actions; it applies to action %q", a.ActionName)
			}
			if err := validateFlagSet(a.ConfigName, fs, names); err != nil {
				return err
			}
		}
		for _, es := range a.EnvSets {
			if len(es.Actions) != 0 {
				return configErrorf(a.ConfigName, "action_config env_set must not name actions; it applies to action %q", a.ActionName)
			}
			if err := validateEnvSet(a.ConfigName, es, names); err != nil {
				return err
			}
		}
		for _, tool := range a.Tools {
			if tool.Path == "" {
				return configErrorf(a.ConfigName, "tool path must not be empty")
			}
			if tool.Origin != "" && !validToolOrigin(tool.Origin) {
				return configErrorf(a.ConfigName, "unknown tool origin %q", tool.Origin)
			}
			if err := validateWithFeatures(a.ConfigName, tool.WithFeatures, names); err != nil {
				return err
			}
		}
	}

	seenCategories := make(map[string]struct{})
	for _, p := range t.ArtifactNamePatterns {
		if !KnownArtifactCategory(p.Category) {
			return configErrorf("", "unknown artifact category %q", p.Category)
		}
		if _, dup := seenCategories[p.Category]; dup {
			return configErrorf("", "duplicate artifact_name_pattern for category %q", p.Category)
		}
		seenCategories[p.Category] = struct{}{}
	}

	for _, cm := range t.CompilationModeFlags {
		if !validCompilationMode(cm.Mode) {
			return configErrorf("", "unknown compilation mode %q", cm.Mode)
		}
	}
	for _, lm := range t.LinkingModeFlags {
		if !validLinkingMode(lm.Mode) {
			return configErrorf("", "unknown linking mode %q", lm.Mode)
		}
	}

	return nil
}

// collectSelectableNames builds the reference namespace: every feature name
// and action config name, each declared exactly once.
func collectSelectableNames(t *Toolchain) (map[string]struct{}, error) {
	names := make(map[string]struct{})
	actions := make(map[string]string)
	for _, s := range t.Selectables() {
		name := s.SelectableName()
		if name == "" {
			return nil, configErrorf("", "selectable with empty name")
		}
		if _, dup := names[name]; dup {
			return nil, configErrorf(name, "declared more than once")
		}
		names[name] = struct{}{}
	}
	for _, a := range t.ActionConfigs {
		if prev, dup := actions[a.ActionName]; dup {
			return nil, configErrorf(a.ConfigName, "action %q already governed by action_config %q", a.ActionName, prev)
		}
		actions[a.ActionName] = a.ConfigName
	}
	return names, nil
}

func validateActivation(entity string, requires []*FeatureSet, implies []string, names map[string]struct{}) error {
	for _, fs := range requires {
		for _, ref := range fs.Features {
			if _, ok := names[ref]; !ok {
				return configErrorf(entity, "requires references undeclared feature %q", ref)
			}
		}
	}
	for _, ref := range implies {
		if _, ok := names[ref]; !ok {
			return configErrorf(entity, "implies references undeclared feature %q", ref)
		}
	}
	return nil
}

func validateWithFeatures(entity string, sets []*WithFeatureSet, names map[string]struct{}) error {
	for _, wfs := range sets {
		for _, ref := range wfs.Features {
			if _, ok := names[ref]; !ok {
				return configErrorf(entity, "with_feature references undeclared feature %q", ref)
			}
		}
		for _, ref := range wfs.NotFeatures {
			if _, ok := names[ref]; !ok {
				return configErrorf(entity, "with_feature references undeclared feature %q", ref)
			}
		}
	}
	return nil
}

func validateFlagSet(entity string, fs *FlagSet, names map[string]struct{}) error {
	if err := validateWithFeatures(entity, fs.WithFeatures, names); err != nil {
		return err
	}
	for _, fg := range fs.FlagGroups {
		if err := validateFlagGroup(entity, fg); err != nil {
			return err
		}
	}
	return nil
}

func validateEnvSet(entity string, es *EnvSet, names map[string]struct{}) error {
	if err := validateWithFeatures(entity, es.WithFeatures, names); err != nil {
		return err
	}
	for _, ee := range es.EnvEntries {
		if ee.Key == "" {
			return configErrorf(entity, "env_entry key must not be empty")
		}
		if err := CheckTemplate(ee.Value); err != nil {
			return configErrorf(entity, "env_entry %q: %v", ee.Key, err)
		}
	}
	return nil
}

// validateFlagGroup enforces the tree shape: a group holds literal flags or
// nested groups, exactly one of the two. A group with both has no defined
// expansion order; a group with neither is meaningless.
func validateFlagGroup(entity string, fg *FlagGroup) error {
	if len(fg.Flags) > 0 && len(fg.FlagGroups) > 0 {
		return configErrorf(entity, "flag_group has both flags and nested flag_groups")
	}
	if len(fg.Flags) == 0 && len(fg.FlagGroups) == 0 {
		return configErrorf(entity, "flag_group has neither flags nor nested flag_groups")
	}
	for _, flag := range fg.Flags {
		if err := CheckTemplate(flag); err != nil {
			return configErrorf(entity, "flag %q: %v", flag, err)
		}
	}
	for _, nested := range fg.FlagGroups {
		if err := validateFlagGroup(entity, nested); err != nil {
			return err
		}
	}
	return nil
}

// CheckTemplate verifies that every %{...} placeholder in a flag or env
// value template is terminated and names a variable. Expansion itself
// happens in the resolve package; validating here keeps malformed templates
// a load-time error.
func CheckTemplate(template string) error {
	for i := 0; i < len(template); {
		open := strings.Index(template[i:], "%{")
		if open < 0 {
			return nil
		}
		open += i
		end := strings.Index(template[open:], "}")
		if end < 0 {
			return fmt.Errorf("unterminated %%{ placeholder")
		}
		name := template[open+2 : open+end]
		if name == "" {
			return fmt.Errorf("empty %%{} placeholder")
		}
		i = open + end + 1
	}
	return nil
}

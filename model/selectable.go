package model

// Selectable is the activation-relevant view shared by Feature and
// ActionConfig. Declaration order is features in order, then action configs
// in order; that order fixes output ordering everywhere downstream.
type Selectable interface {
	// SelectableName is the name usable in Requires/Implies/WithFeatures
	// references.
	SelectableName() string

	// EnabledByDefault reports whether the selectable starts active without
	// being requested. Such a selectable cannot be disabled by a request.
	EnabledByDefault() bool

	RequiresAnyOf() []*FeatureSet
	ImpliesNames() []string
	ProvidesNames() []string

	// SetsForAction returns the flag sets and env sets that apply to the
	// given action, before with_feature filtering.
	SetsForAction(action string) ([]*FlagSet, []*EnvSet)
}

func (f *Feature) SelectableName() string       { return f.Name }
func (f *Feature) EnabledByDefault() bool       { return f.Enabled }
func (f *Feature) RequiresAnyOf() []*FeatureSet { return f.Requires }
func (f *Feature) ImpliesNames() []string       { return f.Implies }
func (f *Feature) ProvidesNames() []string      { return f.Provides }

// SetsForAction returns the feature's sets whose action lists contain the
// given action.
func (f *Feature) SetsForAction(action string) ([]*FlagSet, []*EnvSet) {
	var flagSets []*FlagSet
	for _, fs := range f.FlagSets {
		if containsString(fs.Actions, action) {
			flagSets = append(flagSets, fs)
		}
	}
	var envSets []*EnvSet
	for _, es := range f.EnvSets {
		if containsString(es.Actions, action) {
			envSets = append(envSets, es)
		}
	}
	return flagSets, envSets
}

func (a *ActionConfig) SelectableName() string       { return a.ConfigName }
func (a *ActionConfig) EnabledByDefault() bool       { return a.Enabled }
func (a *ActionConfig) RequiresAnyOf() []*FeatureSet { return a.Requires }
func (a *ActionConfig) ImpliesNames() []string       { return a.Implies }
func (a *ActionConfig) ProvidesNames() []string      { return a.Provides }

// SetsForAction returns all of the config's sets when the action is its own,
// and nothing otherwise. ActionConfig sets never carry their own action
// lists; Validate enforces that.
func (a *ActionConfig) SetsForAction(action string) ([]*FlagSet, []*EnvSet) {
	if action != a.ActionName {
		return nil, nil
	}
	return a.FlagSets, a.EnvSets
}

// Selectables returns every Feature and ActionConfig in declaration order.
func (t *Toolchain) Selectables() []Selectable {
	out := make([]Selectable, 0, len(t.Features)+len(t.ActionConfigs))
	for _, f := range t.Features {
		out = append(out, f)
	}
	for _, a := range t.ActionConfigs {
		out = append(out, a)
	}
	return out
}

// ActionConfigFor returns the ActionConfig governing the given action name,
// or nil when none does.
func (t *Toolchain) ActionConfigFor(action string) *ActionConfig {
	for _, a := range t.ActionConfigs {
		if a.ActionName == action {
			return a
		}
	}
	return nil
}

// ToolPathFor returns the legacy tool path registered under the given name,
// or "" when none is.
func (t *Toolchain) ToolPathFor(name string) string {
	for _, tp := range t.ToolPaths {
		if tp.Name == name {
			return tp.Path
		}
	}
	return ""
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

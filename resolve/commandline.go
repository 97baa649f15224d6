package resolve

import (
	"context"

	"github.com/vk/crosstoolgo/internal/ctxlog"
	"github.com/vk/crosstoolgo/model"
	"github.com/vk/crosstoolgo/vars"
)

// CommandLine resolves the ordered argument list and the tool for one
// action. Feature-derived flags come first, gathered across the active
// selectables in declaration order and filtered by each flag set's
// with_feature condition; the legacy flag lists and mode overlays follow as
// trailing overrides. The output order is part of the contract — link lines
// are sensitive to it.
func (r *Resolver) CommandLine(ctx context.Context, q Query, es *EnabledSet, env *vars.Env) (*CommandLine, error) {
	logger := ctxlog.FromContext(ctx)
	if q.Action == "" {
		return nil, resolutionErrorf("", "", "no action named in query")
	}

	var args []string
	for i, sel := range r.selectables {
		if !es.bits.Test(uint(i)) {
			continue
		}
		flagSets, _ := sel.SetsForAction(q.Action)
		for _, fs := range flagSets {
			if !es.matchesAny(fs.WithFeatures) {
				continue
			}
			for _, fg := range fs.FlagGroups {
				if err := expandFlagGroup(fg, env, &args); err != nil {
					return nil, &ResolutionError{Action: q.Action, Entity: sel.SelectableName(), Err: err}
				}
			}
		}
	}

	args = append(args, r.legacyFlags(q)...)

	tool, err := r.selectTool(q.Action, es)
	if err != nil {
		return nil, err
	}

	logger.Debug("Command line resolved.", "action", q.Action, "flags", len(args), "tool", tool != nil)
	return &CommandLine{Args: args, Tool: tool}, nil
}

// legacyFlags assembles the pre-feature flag lists for the queried action:
// compiler flags (plus cxx flags for C++ actions), the compilation-mode
// overlay, linker flags with the linking-mode overlay, and the unfiltered
// flags last.
func (r *Resolver) legacyFlags(q Query) []string {
	var flags []string
	if isCompileAction(q.Action) {
		flags = append(flags, r.tc.CompilerFlags...)
		if isCXXAction(q.Action) {
			flags = append(flags, r.tc.CXXFlags...)
		}
		if q.CompilationMode != "" {
			for _, cm := range r.tc.CompilationModeFlags {
				if cm.Mode != q.CompilationMode {
					continue
				}
				flags = append(flags, cm.CompilerFlags...)
				if isCXXAction(q.Action) {
					flags = append(flags, cm.CXXFlags...)
				}
			}
		}
	}
	if isLinkAction(q.Action) {
		flags = append(flags, r.tc.LinkerFlags...)
		if q.CompilationMode != "" {
			for _, cm := range r.tc.CompilationModeFlags {
				if cm.Mode == q.CompilationMode {
					flags = append(flags, cm.LinkerFlags...)
				}
			}
		}
		if q.LinkingMode != "" {
			for _, lm := range r.tc.LinkingModeFlags {
				if lm.Mode == q.LinkingMode {
					flags = append(flags, lm.LinkerFlags...)
				}
			}
		}
	}
	if isCompileAction(q.Action) {
		flags = append(flags, r.tc.UnfilteredCXXFlags...)
	}
	return flags
}

// selectTool picks the tool for an action governed by an action config: the
// first declared tool whose with_feature condition matches the active set.
// An action with no governing config has no tool to select. A governing
// config that is not active, or one whose tools all fail their conditions,
// fails the request — there is no implicit fallback.
func (r *Resolver) selectTool(action string, es *EnabledSet) (*model.Tool, error) {
	ac := r.tc.ActionConfigFor(action)
	if ac == nil {
		return nil, nil
	}
	if !es.Contains(ac.ConfigName) {
		return nil, resolutionErrorf(action, ac.ConfigName, "action_config is not enabled")
	}
	for _, tool := range ac.Tools {
		if es.matchesAny(tool.WithFeatures) {
			return tool, nil
		}
	}
	return nil, resolutionErrorf(action, ac.ConfigName, "no tool matches the enabled feature set")
}

// Environment resolves the ordered environment entries for one action,
// gathered and filtered exactly like flag sets.
func (r *Resolver) Environment(ctx context.Context, q Query, es *EnabledSet, env *vars.Env) ([]EnvVar, error) {
	logger := ctxlog.FromContext(ctx)
	if q.Action == "" {
		return nil, resolutionErrorf("", "", "no action named in query")
	}

	var out []EnvVar
	for i, sel := range r.selectables {
		if !es.bits.Test(uint(i)) {
			continue
		}
		_, envSets := sel.SetsForAction(q.Action)
		for _, set := range envSets {
			if !es.matchesAny(set.WithFeatures) {
				continue
			}
			for _, entry := range set.EnvEntries {
				value, included, err := expandEnvEntry(entry, env)
				if err != nil {
					return nil, &ResolutionError{Action: q.Action, Entity: sel.SelectableName(), Err: err}
				}
				if included {
					out = append(out, EnvVar{Key: entry.Key, Value: value})
				}
			}
		}
	}

	logger.Debug("Environment resolved.", "action", q.Action, "entries", len(out))
	return out, nil
}

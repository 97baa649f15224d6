// This file translates the HCL schema structs into the format-agnostic
// configuration model defined in the model package.

package hcladapter

import (
	"context"

	"github.com/vk/crosstoolgo/internal/ctxlog"
	"github.com/vk/crosstoolgo/model"
	"github.com/vk/crosstoolgo/schema"
)

// translateToolchain converts the decoded toolchain block into the agnostic
// model. Structural checks happen afterwards, in model.Validate.
func (l *Loader) translateToolchain(ctx context.Context, s *schema.Toolchain) *model.Toolchain {
	logger := ctxlog.FromContext(ctx).With("toolchain", s.Identifier)
	ctx = ctxlog.WithLogger(ctx, logger)

	tc := &model.Toolchain{
		Identifier:         s.Identifier,
		HostSystem:         s.HostSystem,
		TargetSystem:       s.TargetSystem,
		TargetCPU:          s.TargetCPU,
		Compiler:           s.Compiler,
		ABIVersion:         s.ABIVersion,
		ABILibcVersion:     s.ABILibcVersion,
		BuiltinSysroot:     s.BuiltinSysroot,
		CompilerFlags:      s.CompilerFlags,
		CXXFlags:           s.CXXFlags,
		LinkerFlags:        s.LinkerFlags,
		UnfilteredCXXFlags: s.UnfilteredCXXFlags,
	}

	for _, f := range s.Features {
		tc.Features = append(tc.Features, translateFeature(ctx, f))
	}
	for _, a := range s.ActionConfigs {
		tc.ActionConfigs = append(tc.ActionConfigs, translateActionConfig(ctx, a))
	}
	for _, p := range s.ArtifactNamePatterns {
		tc.ArtifactNamePatterns = append(tc.ArtifactNamePatterns, &model.ArtifactNamePattern{
			Category:  p.Category,
			Prefix:    p.Prefix,
			Extension: p.Extension,
		})
	}
	for _, tp := range s.ToolPaths {
		tc.ToolPaths = append(tc.ToolPaths, &model.ToolPath{Name: tp.Name, Path: tp.Path})
	}
	for _, mv := range s.MakeVariables {
		tc.MakeVariables = append(tc.MakeVariables, &model.MakeVariable{Name: mv.Name, Value: mv.Value})
	}
	for _, cm := range s.CompilationModeFlags {
		tc.CompilationModeFlags = append(tc.CompilationModeFlags, &model.CompilationModeFlags{
			Mode:          model.CompilationMode(cm.Mode),
			CompilerFlags: cm.CompilerFlags,
			CXXFlags:      cm.CXXFlags,
			LinkerFlags:   cm.LinkerFlags,
		})
	}
	for _, lm := range s.LinkingModeFlags {
		tc.LinkingModeFlags = append(tc.LinkingModeFlags, &model.LinkingModeFlags{
			Mode:        model.LinkingMode(lm.Mode),
			LinkerFlags: lm.LinkerFlags,
		})
	}
	return tc
}

func translateFeature(ctx context.Context, s *schema.Feature) *model.Feature {
	ctxlog.FromContext(ctx).Debug("Translating feature.", "feature", s.Name)
	return &model.Feature{
		Name:     s.Name,
		Enabled:  s.Enabled,
		Implies:  s.Implies,
		Provides: s.Provides,
		Requires: translateRequires(s.Requires),
		FlagSets: translateFlagSets(s.FlagSets),
		EnvSets:  translateEnvSets(s.EnvSets),
	}
}

func translateActionConfig(ctx context.Context, s *schema.ActionConfig) *model.ActionConfig {
	ctxlog.FromContext(ctx).Debug("Translating action config.", "action_config", s.ConfigName, "action", s.ActionName)
	a := &model.ActionConfig{
		ConfigName: s.ConfigName,
		ActionName: s.ActionName,
		Enabled:    s.Enabled,
		Implies:    s.Implies,
		Provides:   s.Provides,
		Requires:   translateRequires(s.Requires),
		FlagSets:   translateFlagSets(s.FlagSets),
		EnvSets:    translateEnvSets(s.EnvSets),
	}
	for _, t := range s.Tools {
		origin := model.ToolOrigin(t.Origin)
		if origin == "" {
			origin = model.OriginCrosstool
		}
		a.Tools = append(a.Tools, &model.Tool{
			Path:                  t.Path,
			Origin:                origin,
			WithFeatures:          translateWithFeatures(t.WithFeatures),
			ExecutionRequirements: t.ExecutionRequirements,
		})
	}
	return a
}

func translateRequires(blocks []*schema.Requires) []*model.FeatureSet {
	var out []*model.FeatureSet
	for _, b := range blocks {
		out = append(out, &model.FeatureSet{Features: b.Features})
	}
	return out
}

func translateWithFeatures(blocks []*schema.WithFeature) []*model.WithFeatureSet {
	var out []*model.WithFeatureSet
	for _, b := range blocks {
		out = append(out, &model.WithFeatureSet{
			Features:    b.Features,
			NotFeatures: b.NotFeatures,
		})
	}
	return out
}

func translateFlagSets(blocks []*schema.FlagSet) []*model.FlagSet {
	var out []*model.FlagSet
	for _, b := range blocks {
		out = append(out, &model.FlagSet{
			Actions:      b.Actions,
			WithFeatures: translateWithFeatures(b.WithFeatures),
			FlagGroups:   translateFlagGroups(b.FlagGroups),
		})
	}
	return out
}

func translateFlagGroups(blocks []*schema.FlagGroup) []*model.FlagGroup {
	var out []*model.FlagGroup
	for _, b := range blocks {
		fg := &model.FlagGroup{
			Flags:                 b.Flags,
			FlagGroups:            translateFlagGroups(b.FlagGroups),
			IterateOver:           b.IterateOver,
			ExpandIfAllAvailable:  b.ExpandIfAllAvailable,
			ExpandIfNoneAvailable: b.ExpandIfNoneAvailable,
			ExpandIfTrue:          b.ExpandIfTrue,
			ExpandIfFalse:         b.ExpandIfFalse,
		}
		if b.ExpandIfEqual != nil {
			fg.ExpandIfEqual = &model.VariableWithValue{
				Variable: b.ExpandIfEqual.Variable,
				Value:    b.ExpandIfEqual.Value,
			}
		}
		out = append(out, fg)
	}
	return out
}

func translateEnvSets(blocks []*schema.EnvSet) []*model.EnvSet {
	var out []*model.EnvSet
	for _, b := range blocks {
		es := &model.EnvSet{
			Actions:      b.Actions,
			WithFeatures: translateWithFeatures(b.WithFeatures),
		}
		for _, e := range b.EnvEntries {
			es.EnvEntries = append(es.EnvEntries, &model.EnvEntry{
				Key:                  e.Key,
				Value:                e.Value,
				ExpandIfAllAvailable: e.ExpandIfAllAvailable,
			})
		}
		out = append(out, es)
	}
	return out
}

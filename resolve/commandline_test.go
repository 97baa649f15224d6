package resolve

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/crosstoolgo/model"
	"github.com/vk/crosstoolgo/vars"
	"github.com/zclconf/go-cty/cty"
)

// compileToolchain is a small but realistic configuration exercising
// features, an action config, and the legacy flag lists.
func compileToolchain() *model.Toolchain {
	return &model.Toolchain{
		Identifier: "test-gcc",
		Features: []*model.Feature{
			{
				Name:    "warnings",
				Enabled: true,
				FlagSets: []*model.FlagSet{{
					Actions:    []string{ActionCCompile, ActionCppCompile},
					FlagGroups: []*model.FlagGroup{{Flags: []string{"-Wall", "-Werror"}}},
				}},
			},
			{
				Name: "sysroot",
				FlagSets: []*model.FlagSet{{
					Actions: []string{ActionCCompile, ActionCppCompile},
					FlagGroups: []*model.FlagGroup{{
						ExpandIfAllAvailable: []string{"sysroot"},
						Flags:                []string{"--sysroot=%{sysroot}"},
					}},
				}},
			},
			{
				Name: "opt_only",
				FlagSets: []*model.FlagSet{{
					Actions:      []string{ActionCCompile},
					WithFeatures: []*model.WithFeatureSet{{Features: []string{"opt"}}},
					FlagGroups:   []*model.FlagGroup{{Flags: []string{"-O2"}}},
				}},
			},
			{Name: "opt"},
			{Name: "use_clang"},
		},
		ActionConfigs: []*model.ActionConfig{
			{
				ConfigName: "c_compile",
				ActionName: ActionCCompile,
				Enabled:    true,
				Tools: []*model.Tool{
					{Path: "bin/clang", WithFeatures: []*model.WithFeatureSet{{Features: []string{"use_clang"}}}},
					{Path: "bin/gcc"},
				},
				FlagSets: []*model.FlagSet{{
					FlagGroups: []*model.FlagGroup{{Flags: []string{"-c"}}},
				}},
			},
		},
		CompilerFlags:      []string{"-pipe"},
		CXXFlags:           []string{"-std=c++17"},
		UnfilteredCXXFlags: []string{"-fno-canonical-system-headers"},
		CompilationModeFlags: []*model.CompilationModeFlags{
			{Mode: model.ModeOpt, CompilerFlags: []string{"-O3", "-DNDEBUG"}},
			{Mode: model.ModeDbg, CompilerFlags: []string{"-g"}},
		},
	}
}

func resolveAll(t *testing.T, tc *model.Toolchain, requested []string) (*Resolver, *EnabledSet) {
	t.Helper()
	r := newResolver(t, tc)
	es, err := r.ResolveFeatures(context.Background(), requested, nil)
	require.NoError(t, err)
	return r, es
}

func TestCommandLineFeatureThenActionConfigOrder(t *testing.T) {
	r, es := resolveAll(t, compileToolchain(), nil)
	env := vars.New(nil)

	cl, err := r.CommandLine(context.Background(), Query{Action: ActionCCompile}, es, env)
	require.NoError(t, err)

	// Active feature flags in declaration order, then the action config's
	// own flags, then the legacy lists.
	assert.Equal(t, []string{
		"-Wall", "-Werror", // feature: warnings
		"-c",                             // action config
		"-pipe",                          // legacy compiler_flags
		"-fno-canonical-system-headers", // legacy unfiltered
	}, cl.Args)
}

func TestCommandLineWithFeatureFiltering(t *testing.T) {
	t.Run("inactive gate drops the flag set", func(t *testing.T) {
		r, es := resolveAll(t, compileToolchain(), []string{"opt_only"})
		cl, err := r.CommandLine(context.Background(), Query{Action: ActionCCompile}, es, vars.New(nil))
		require.NoError(t, err)
		assert.NotContains(t, cl.Args, "-O2")
	})

	t.Run("active gate admits the flag set", func(t *testing.T) {
		r, es := resolveAll(t, compileToolchain(), []string{"opt_only", "opt"})
		cl, err := r.CommandLine(context.Background(), Query{Action: ActionCCompile}, es, vars.New(nil))
		require.NoError(t, err)
		assert.Contains(t, cl.Args, "-O2")
	})
}

func TestCommandLineGuardShortCircuit(t *testing.T) {
	r, es := resolveAll(t, compileToolchain(), []string{"sysroot"})

	t.Run("without binding", func(t *testing.T) {
		cl, err := r.CommandLine(context.Background(), Query{Action: ActionCCompile}, es, vars.New(nil))
		require.NoError(t, err)
		for _, arg := range cl.Args {
			assert.NotContains(t, arg, "--sysroot")
		}
	})

	t.Run("with binding", func(t *testing.T) {
		env := vars.New(map[string]cty.Value{"sysroot": cty.StringVal("/sdk")})
		cl, err := r.CommandLine(context.Background(), Query{Action: ActionCCompile}, es, env)
		require.NoError(t, err)
		assert.Contains(t, cl.Args, "--sysroot=/sdk")
	})
}

func TestCommandLineLegacyOrdering(t *testing.T) {
	r, es := resolveAll(t, compileToolchain(), nil)

	t.Run("c compile with opt mode", func(t *testing.T) {
		cl, err := r.CommandLine(context.Background(), Query{
			Action:          ActionCCompile,
			CompilationMode: model.ModeOpt,
		}, es, vars.New(nil))
		require.NoError(t, err)
		assert.Equal(t, []string{
			"-Wall", "-Werror", "-c",
			"-pipe",          // legacy compiler_flags
			"-O3", "-DNDEBUG", // opt mode overlay
			"-fno-canonical-system-headers", // unfiltered, always last
		}, cl.Args)
	})

	t.Run("c++ compile adds cxx flags after compiler flags", func(t *testing.T) {
		cl, err := r.CommandLine(context.Background(), Query{
			Action:          ActionCppCompile,
			CompilationMode: model.ModeDbg,
		}, es, vars.New(nil))
		require.NoError(t, err)
		assert.Equal(t, []string{
			"-Wall", "-Werror",
			"-pipe", "-std=c++17",
			"-g",
			"-fno-canonical-system-headers",
		}, cl.Args)
	})

	t.Run("no mode means no overlay", func(t *testing.T) {
		cl, err := r.CommandLine(context.Background(), Query{Action: ActionCCompile}, es, vars.New(nil))
		require.NoError(t, err)
		assert.NotContains(t, cl.Args, "-O3")
		assert.NotContains(t, cl.Args, "-g")
	})
}

func TestCommandLineLinkerFlags(t *testing.T) {
	tc := &model.Toolchain{
		Identifier:  "test-ld",
		LinkerFlags: []string{"-Wl,-z,relro"},
		LinkingModeFlags: []*model.LinkingModeFlags{
			{Mode: model.LinkFullyStatic, LinkerFlags: []string{"-static"}},
			{Mode: model.LinkDynamic, LinkerFlags: []string{"-shared-libgcc"}},
		},
	}
	r, es := resolveAll(t, tc, nil)

	t.Run("link action with matching mode", func(t *testing.T) {
		cl, err := r.CommandLine(context.Background(), Query{
			Action:      ActionLinkExecutable,
			LinkingMode: model.LinkFullyStatic,
		}, es, vars.New(nil))
		require.NoError(t, err)
		assert.Equal(t, []string{"-Wl,-z,relro", "-static"}, cl.Args)
	})

	t.Run("compile action gets no linker flags", func(t *testing.T) {
		cl, err := r.CommandLine(context.Background(), Query{Action: ActionCCompile}, es, vars.New(nil))
		require.NoError(t, err)
		assert.Empty(t, cl.Args)
	})
}

func TestToolSelection(t *testing.T) {
	newChain := func() *model.Toolchain {
		return &model.Toolchain{
			Identifier: "test",
			Features:   []*model.Feature{{Name: "use_clang"}},
			ActionConfigs: []*model.ActionConfig{{
				ConfigName: "compile",
				ActionName: ActionCCompile,
				Enabled:    true,
				Tools: []*model.Tool{
					{Path: "bin/clang", WithFeatures: []*model.WithFeatureSet{{Features: []string{"use_clang"}}}},
					{Path: "bin/gcc"},
				},
			}},
		}
	}

	t.Run("falls through to the unconditioned tool", func(t *testing.T) {
		r, es := resolveAll(t, newChain(), nil)
		cl, err := r.CommandLine(context.Background(), Query{Action: ActionCCompile}, es, vars.New(nil))
		require.NoError(t, err)
		require.NotNil(t, cl.Tool)
		assert.Equal(t, "bin/gcc", cl.Tool.Path)
	})

	t.Run("first matching tool wins", func(t *testing.T) {
		r, es := resolveAll(t, newChain(), []string{"use_clang"})
		cl, err := r.CommandLine(context.Background(), Query{Action: ActionCCompile}, es, vars.New(nil))
		require.NoError(t, err)
		require.NotNil(t, cl.Tool)
		assert.Equal(t, "bin/clang", cl.Tool.Path)
	})

	t.Run("no matching tool fails", func(t *testing.T) {
		tc := newChain()
		tc.ActionConfigs[0].Tools = tc.ActionConfigs[0].Tools[:1] // only the conditioned tool
		r, es := resolveAll(t, tc, nil)
		_, err := r.CommandLine(context.Background(), Query{Action: ActionCCompile}, es, vars.New(nil))
		var resErr *ResolutionError
		require.ErrorAs(t, err, &resErr)
		assert.Equal(t, ActionCCompile, resErr.Action)
		assert.ErrorContains(t, err, "no tool matches")
	})

	t.Run("inactive action config fails", func(t *testing.T) {
		tc := newChain()
		tc.ActionConfigs[0].Enabled = false
		r, es := resolveAll(t, tc, nil)
		_, err := r.CommandLine(context.Background(), Query{Action: ActionCCompile}, es, vars.New(nil))
		assert.ErrorContains(t, err, "not enabled")
	})

	t.Run("ungoverned action has no tool", func(t *testing.T) {
		r, es := resolveAll(t, newChain(), nil)
		cl, err := r.CommandLine(context.Background(), Query{Action: ActionCppCompile}, es, vars.New(nil))
		require.NoError(t, err)
		assert.Nil(t, cl.Tool)
	})
}

func TestCommandLineDeterminism(t *testing.T) {
	tc := compileToolchain()
	r, es := resolveAll(t, tc, []string{"sysroot", "opt", "opt_only"})
	env := vars.New(map[string]cty.Value{"sysroot": cty.StringVal("/sdk")})
	q := Query{Action: ActionCCompile, CompilationMode: model.ModeOpt}

	first, err := r.CommandLine(context.Background(), q, es, env)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		next, err := r.CommandLine(context.Background(), q, es, env)
		require.NoError(t, err)
		if diff := cmp.Diff(first.Args, next.Args); diff != "" {
			t.Fatalf("command line not deterministic (-first +next):\n%s", diff)
		}
	}
}

func TestCommandLineRejectsEmptyAction(t *testing.T) {
	r, es := resolveAll(t, compileToolchain(), nil)
	_, err := r.CommandLine(context.Background(), Query{}, es, vars.New(nil))
	assert.ErrorContains(t, err, "no action")
	_, err = r.Environment(context.Background(), Query{}, es, vars.New(nil))
	assert.ErrorContains(t, err, "no action")
}

func TestCommandLineExpansionErrorNamesEntity(t *testing.T) {
	tc := &model.Toolchain{
		Identifier: "test",
		Features: []*model.Feature{{
			Name:    "broken",
			Enabled: true,
			FlagSets: []*model.FlagSet{{
				Actions:    []string{ActionCCompile},
				FlagGroups: []*model.FlagGroup{{Flags: []string{"%{missing}"}}},
			}},
		}},
	}
	r, es := resolveAll(t, tc, nil)
	_, err := r.CommandLine(context.Background(), Query{Action: ActionCCompile}, es, vars.New(nil))
	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "broken", resErr.Entity)
	var notFound *vars.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestEnvironment(t *testing.T) {
	tc := &model.Toolchain{
		Identifier: "test",
		Features: []*model.Feature{
			{
				Name:    "env_base",
				Enabled: true,
				EnvSets: []*model.EnvSet{{
					Actions: []string{ActionCCompile},
					EnvEntries: []*model.EnvEntry{
						{Key: "PATH", Value: "%{bindir}:/usr/bin", ExpandIfAllAvailable: []string{"bindir"}},
						{Key: "LANG", Value: "C"},
					},
				}},
			},
			{
				Name: "gated_env",
				EnvSets: []*model.EnvSet{{
					Actions:      []string{ActionCCompile},
					WithFeatures: []*model.WithFeatureSet{{Features: []string{"never_on"}}},
					EnvEntries:   []*model.EnvEntry{{Key: "SECRET", Value: "x"}},
				}},
			},
			{Name: "never_on"},
		},
	}
	r, es := resolveAll(t, tc, []string{"gated_env"})

	t.Run("entries in declaration order, guards applied", func(t *testing.T) {
		env := vars.New(map[string]cty.Value{"bindir": cty.StringVal("/opt/bin")})
		got, err := r.Environment(context.Background(), Query{Action: ActionCCompile}, es, env)
		require.NoError(t, err)
		assert.Equal(t, []EnvVar{
			{Key: "PATH", Value: "/opt/bin:/usr/bin"},
			{Key: "LANG", Value: "C"},
		}, got)
	})

	t.Run("guarded entry drops out silently", func(t *testing.T) {
		got, err := r.Environment(context.Background(), Query{Action: ActionCCompile}, es, vars.New(nil))
		require.NoError(t, err)
		assert.Equal(t, []EnvVar{{Key: "LANG", Value: "C"}}, got)
	})

	t.Run("other action gets nothing", func(t *testing.T) {
		got, err := r.Environment(context.Background(), Query{Action: ActionCppCompile}, es, vars.New(nil))
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

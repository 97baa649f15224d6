package resolve

import (
	"fmt"

	"github.com/vk/crosstoolgo/model"
)

// Resolver answers feature and command-line queries for one toolchain. It is
// immutable after New and safe for concurrent use.
type Resolver struct {
	tc          *model.Toolchain
	selectables []model.Selectable

	// index maps selectable name to its declaration position, the bit
	// position used by EnabledSet.
	index map[string]int
}

// New validates the toolchain and builds a resolver for it. A toolchain that
// fails validation is rejected with a *model.ConfigError.
func New(tc *model.Toolchain) (*Resolver, error) {
	if err := model.Validate(tc); err != nil {
		return nil, fmt.Errorf("toolchain %q: %w", tc.Identifier, err)
	}
	selectables := tc.Selectables()
	index := make(map[string]int, len(selectables))
	for i, s := range selectables {
		index[s.SelectableName()] = i
	}
	return &Resolver{tc: tc, selectables: selectables, index: index}, nil
}

// Toolchain returns the configuration this resolver answers for.
func (r *Resolver) Toolchain() *model.Toolchain { return r.tc }

// Query identifies one resolution request: the action to build a command
// line for, plus the optional legacy mode overlays. Zero mode values mean no
// overlay.
type Query struct {
	Action          string
	CompilationMode model.CompilationMode
	LinkingMode     model.LinkingMode
}

// CommandLine is the result of resolving one action: the ordered argument
// list and, when an action config governs the action, the selected tool.
type CommandLine struct {
	Args []string

	// Tool is nil for actions not governed by an action config; callers
	// fall back to the toolchain's legacy tool paths.
	Tool *model.Tool
}

// EnvVar is one resolved environment entry.
type EnvVar struct {
	Key   string
	Value string
}

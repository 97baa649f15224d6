// Package hcladapter loads crosstool description files written in HCL and
// translates them into the format-agnostic model. It is one front end among
// possible others; the resolve package only ever sees a model.Toolchain.
package hcladapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/crosstoolgo/internal/ctxlog"
	"github.com/vk/crosstoolgo/model"
	"github.com/vk/crosstoolgo/schema"
)

// Loader parses and translates HCL toolchain descriptions.
type Loader struct{}

// NewLoader creates a new HCL toolchain loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the HCL file at path and returns the validated toolchain.
func (l *Loader) Load(ctx context.Context, path string) (*model.Toolchain, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	return l.decode(ctx, path, file)
}

// LoadBytes parses in-memory HCL source. The filename is used only for
// diagnostics.
func (l *Loader) LoadBytes(ctx context.Context, filename string, src []byte) (*model.Toolchain, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL source %s: %w", filename, diags)
	}
	return l.decode(ctx, filename, file)
}

func (l *Loader) decode(ctx context.Context, name string, file *hcl.File) (*model.Toolchain, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL toolchain loader started.", "file", name)

	var root schema.Root
	diags := gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", name, diags)
	}
	if root.Toolchain == nil {
		return nil, fmt.Errorf("%s: no toolchain block found", name)
	}

	tc := l.translateToolchain(ctx, root.Toolchain)
	if err := model.Validate(tc); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	logger.Debug("HCL toolchain loaded.",
		"toolchain", tc.Identifier,
		"features", len(tc.Features),
		"action_configs", len(tc.ActionConfigs))
	return tc, nil
}

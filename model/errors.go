package model

import "fmt"

// ConfigError reports a malformed toolchain configuration. It is detected
// once, at load time; a Toolchain that passes Validate never produces one
// again.
type ConfigError struct {
	// Entity names the feature, action config, or other configuration
	// element the problem was found in. Empty for toolchain-level problems.
	Entity string

	// Reason describes what is wrong.
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("invalid toolchain configuration: %s", e.Reason)
	}
	return fmt.Sprintf("invalid toolchain configuration: %s: %s", e.Entity, e.Reason)
}

func configErrorf(entity, format string, args ...any) *ConfigError {
	return &ConfigError{Entity: entity, Reason: fmt.Sprintf(format, args...)}
}

// Package model defines the format-agnostic, immutable representation of a
// crosstool toolchain description: features, action configs, flag and
// environment sets, tools, and the legacy flag lists.
//
// A Toolchain is built once, validated once with Validate, and thereafter
// shared read-only across any number of concurrent resolution calls. The
// resolver packages never write back into it.
//
// Why a separate model package?
//
// The model is the single source of truth for the resolve package. Front
// ends (the hcladapter HCL loader, or an external protobuf parser) translate
// their wire formats into this one structure, so the resolution engine never
// needs to know where a configuration came from. Structural rules that hold
// regardless of wire format — flag groups hold flags or subgroups but never
// both, every referenced feature name must be declared — are enforced here,
// at load time, as ConfigError.
package model

// Package vars implements the variable environment flag and env templates
// are expanded against. Values are cty values: scalars are strings,
// sequences are cty lists or tuples, structures are cty objects, which lets
// the build-system caller hand over arbitrarily nested data (link argument
// lists, library groups) without a bespoke value type.
//
// An Env is immutable; iteration scopes are pushed with WithBinding, which
// shadows the outer binding for the lifetime of the derived Env only.
package vars

// Package resolve is the query surface of the toolchain resolution engine.
// Given a validated model.Toolchain, a Resolver answers three questions for
// the build system:
//
//   - ResolveFeatures: which features and action configs are active for a
//     set of requested and disabled feature names (the activation closure
//     under requires/implies, plus the provides conflict check).
//
//   - CommandLine: the exact ordered flags and the selected tool for one
//     action, expanded against a vars.Env.
//
//   - Environment: the ordered environment entries for one action.
//
// Every call is a pure function of its inputs: the Resolver and the
// Toolchain behind it are read-only after New, results are fresh values, and
// concurrent calls need no synchronization. Errors during a call are
// all-or-nothing; no partial command line is ever returned.
package resolve

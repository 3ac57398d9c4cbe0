package checkdp

// Package checkdp checks Data Package descriptors against the Frictionless
// Data Package standard plus user-configured rules.
//
// - Check runs the full pipeline and returns deduplicated Issues in
//   deterministic (path, message) order; Validate raises the same Issues as
//   an error instead.
// - A stable issue model via Issue/Issues (JSONPath-style location, kind,
//   message, params), with grouping that collapses the keyword validator's
//   disjunctive-branch noise into one semantic issue per offending value.
// - Config carries exclusions (path patterns with union semantics),
//   user-defined required checks and named custom checks; configuration
//   mistakes fail fast as *ConfigError before any check runs.
// - Explain augments any produced Issue with a longer-form explanation and a
//   pointer into the standard, without re-running validation.
//
// Design policy:
// - Keep the whole public API in the root package; the embedded standard
//   profiles live under schemas/.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  d, err := checkdp.ParseDescriptor(data)
//  issues, err := checkdp.Check(d, checkdp.Config{Strict: true})
//  for _, is := range issues {
//      fmt.Println(is.Path, is.Message)
//  }

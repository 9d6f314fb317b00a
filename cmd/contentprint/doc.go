// Package main hosts the contentprint CLI entrypoint and command graph.
//
// The Cobra command tree exposes the fingerprinting engine: MIME sniffing,
// digests, full fingerprints across many files, similarity comparison, and
// configuration scaffolding. Configuration and logging are resolved once per
// invocation in commandContext so subcommands only translate flags into calls
// on the internal packages and render the results.
package main

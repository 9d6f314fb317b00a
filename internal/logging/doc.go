// Package logging assembles structured slog loggers for contentprint.
//
// It owns the console and JSON handlers, level and output plumbing, and the
// context helpers that tag log lines with a per-invocation correlation ID and
// the source path being fingerprinted. Library packages take an optional
// *slog.Logger and fall back to NewNop, so they stay silent unless the CLI
// wires a real logger in.
package logging

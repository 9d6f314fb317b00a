// Package config loads, normalizes, and validates contentprint configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours CONTENTPRINT_* environment
// overrides. Validation reports problems by TOML key so a
// broken file can be fixed without reading source.
package config

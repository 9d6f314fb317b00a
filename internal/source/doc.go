// Package source turns command-line arguments into seekable inputs.
//
// Regular files are opened directly with a sequential read-ahead hint, since
// fingerprinting reads each file front to back several times. Standard input
// ("-") cannot seek, so it is buffered in memory up to a caller-supplied limit.
package source

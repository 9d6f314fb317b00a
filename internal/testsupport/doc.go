// Package testsupport builds in-memory fixtures for contentprint tests:
// synthetic images with known difference hashes, ZIP and OLE containers,
// reference prose, and temp-directory configs.
package testsupport

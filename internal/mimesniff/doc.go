// Package mimesniff infers a media type from the leading bytes of a source.
//
// Detection matches a bounded header against a static registry of magic-byte
// signatures. When several signatures match, the longest pattern wins and
// ties fall back to registry order, so specific entries (an EPUB's stored
// mimetype member, an HEIC brand) override the generic prefix they share with
// other formats (a ZIP local header, an ISO-BMFF ftyp box).
//
// With container inspection enabled, generic ZIP and OLE compound-document
// matches are refined into specific office types: ZIP archives by their
// top-level entry names (read from the central directory, nothing is
// decompressed) and OLE files by the names of the streams stored directly under the root
// storage.
//
// Sniffing is best-effort. Short headers, sources that cannot seek, and any
// I/O failure degrade to application/octet-stream (or to the generic
// container type during refinement) instead of returning an error. The
// caller's read position is always restored.
package mimesniff

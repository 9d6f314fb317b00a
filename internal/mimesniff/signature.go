package mimesniff

import (
	"bytes"
	"encoding/binary"
)

// MIME types referenced by the sniffer itself.
const (
	Fallback = "application/octet-stream"
	MIMEZip  = "application/zip"
	MIMEOLE  = "application/x-ole-storage"
)

// Signature is a magic byte pattern expected at a fixed offset.
type Signature struct {
	Pattern  []byte
	MIMEType string
	Offset   int

	// check validates structure beyond the magic bytes for short patterns.
	check func(header []byte) bool
}

// Matches reports whether header holds Pattern at Offset.
func (s Signature) Matches(header []byte) bool {
	end := s.Offset + len(s.Pattern)
	if s.Offset < 0 || len(header) < end {
		return false
	}
	if !bytes.Equal(header[s.Offset:end], s.Pattern) {
		return false
	}
	return s.check == nil || s.check(header)
}

func (s Signature) span() int {
	return s.Offset + len(s.Pattern)
}

func sig(mimeType string, pattern string) Signature {
	return Signature{Pattern: []byte(pattern), MIMEType: mimeType}
}

func sigAt(mimeType string, offset int, pattern string) Signature {
	return Signature{Pattern: []byte(pattern), MIMEType: mimeType, Offset: offset}
}

func sigChecked(mimeType, pattern string, check func([]byte) bool) Signature {
	return Signature{Pattern: []byte(pattern), MIMEType: mimeType, check: check}
}

// bmpInfoHeaderSizes are the DIB header sizes written by known BMP encoders.
var bmpInfoHeaderSizes = map[uint32]bool{12: true, 16: true, 40: true, 52: true, 56: true, 64: true, 108: true, 124: true}

// isBMP requires a known DIB header size after the 14-byte file header.
func isBMP(header []byte) bool {
	if len(header) < 18 {
		return false
	}
	return bmpInfoHeaderSizes[binary.LittleEndian.Uint32(header[14:])]
}

const maxPEHeaderOffset = 1 << 20

// isPE requires a plausible e_lfanew and, when it falls inside header, the
// PE\0\0 signature it points at.
func isPE(header []byte) bool {
	if len(header) < 0x40 {
		return false
	}
	lfanew := int(binary.LittleEndian.Uint32(header[0x3C:]))
	if lfanew < 0x40 || lfanew > maxPEHeaderOffset {
		return false
	}
	if lfanew+4 <= len(header) {
		return bytes.Equal(header[lfanew:lfanew+4], []byte("PE\x00\x00"))
	}
	return true
}

// registry is read-only after package init.
var registry = []Signature{
	// images
	sig("image/jpeg", "\xFF\xD8\xFF"),
	sig("image/png", "\x89PNG\r\n\x1A\n"),
	sig("image/gif", "GIF87a"),
	sig("image/gif", "GIF89a"),
	sigAt("image/webp", 8, "WEBP"),
	sigChecked("image/bmp", "BM", isBMP),
	sig("image/tiff", "II*\x00"),
	sig("image/tiff", "MM\x00*"),
	sig("image/x-icon", "\x00\x00\x01\x00"),
	sig("image/vnd.adobe.photoshop", "8BPS"),
	sigAt("image/heic", 4, "ftypheic"),
	sigAt("image/heic", 4, "ftypheix"),
	sigAt("image/avif", 4, "ftypavif"),

	// documents
	sig("application/pdf", "%PDF"),
	sig("application/rtf", "{\\rtf"),
	sig("application/postscript", "%!PS"),
	sig("application/xml", "<?xml"),
	sigAt("application/epub+zip", 30, "mimetypeapplication/epub+zip"),
	sigAt("application/vnd.oasis.opendocument.text", 30, "mimetypeapplication/vnd.oasis.opendocument.text"),
	sigAt("application/vnd.oasis.opendocument.spreadsheet", 30, "mimetypeapplication/vnd.oasis.opendocument.spreadsheet"),
	sigAt("application/vnd.oasis.opendocument.presentation", 30, "mimetypeapplication/vnd.oasis.opendocument.presentation"),
	sig(MIMEOLE, "\xD0\xCF\x11\xE0\xA1\xB1\x1A\xE1"),

	// archives
	sig(MIMEZip, "PK\x03\x04"),
	sig(MIMEZip, "PK\x05\x06"),
	sig(MIMEZip, "PK\x07\x08"),
	sig("application/gzip", "\x1F\x8B"),
	sig("application/x-bzip2", "BZh"),
	sig("application/x-7z-compressed", "7z\xBC\xAF\x27\x1C"),
	sig("application/vnd.rar", "Rar!\x1A\x07\x00"),
	sig("application/vnd.rar", "Rar!\x1A\x07\x01\x00"),
	sig("application/x-xz", "\xFD7zXZ\x00"),
	sig("application/zstd", "\x28\xB5\x2F\xFD"),
	sigAt("application/x-tar", 257, "ustar"),

	// audio and video
	sig("audio/mpeg", "ID3"),
	sig("audio/ogg", "OggS"),
	sig("audio/flac", "fLaC"),
	sigAt("audio/wav", 8, "WAVE"),
	sigAt("video/x-msvideo", 8, "AVI "),
	sigAt("video/quicktime", 4, "ftypqt  "),
	sigAt("video/mp4", 4, "ftyp"),
	sig("video/x-matroska", "\x1A\x45\xDF\xA3"),

	// executables and databases
	sig("application/x-executable", "\x7FELF"),
	sigChecked("application/vnd.microsoft.portable-executable", "MZ", isPE),
	sig("application/wasm", "\x00asm"),
	sig("application/java-vm", "\xCA\xFE\xBA\xBE"),
	sig("application/vnd.sqlite3", "SQLite format 3\x00"),

	// byte order marks
	sig("text/plain", "\xEF\xBB\xBF"),
	sig("text/plain", "\xFF\xFE"),
	sig("text/plain", "\xFE\xFF"),
}

var maxHeaderLen = computeMaxHeaderLen(registry)

func computeMaxHeaderLen(sigs []Signature) int {
	longest := 0
	for _, s := range sigs {
		if n := s.span(); n > longest {
			longest = n
		}
	}
	return longest
}

// Signatures returns a copy of the registry in match order.
func Signatures() []Signature {
	out := make([]Signature, len(registry))
	for i, s := range registry {
		out[i] = Signature{Pattern: bytes.Clone(s.Pattern), MIMEType: s.MIMEType, Offset: s.Offset, check: s.check}
	}
	return out
}

// HeaderLen is the number of leading bytes Detect reads.
func HeaderLen() int {
	return maxHeaderLen
}

// Match returns the longest registry signature that matches header. Equal
// pattern lengths resolve to the earlier registry entry.
func Match(header []byte) (Signature, bool) {
	return matchIn(registry, header)
}

func matchIn(sigs []Signature, header []byte) (Signature, bool) {
	best := -1
	for i, s := range sigs {
		if !s.Matches(header) {
			continue
		}
		if best < 0 || len(s.Pattern) > len(sigs[best].Pattern) {
			best = i
		}
	}
	if best < 0 {
		return Signature{}, false
	}
	return sigs[best], true
}

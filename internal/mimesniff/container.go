package mimesniff

import (
	"errors"
	"io"
	"strings"

	"github.com/klauspost/compress/zip"

	"contentprint/internal/logging"
)

type containerRule struct {
	marker   string
	mimeType string
}

// zipRules map top-level OOXML part directories to document types.
var zipRules = []containerRule{
	{"word/", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	{"xl/", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	{"ppt/", "application/vnd.openxmlformats-officedocument.presentationml.presentation"},
	{"visio/", "application/vnd.ms-visio.drawing.main+xml"},
	{"onenote/", "application/onenote"},
}

type oleRule struct {
	name     string
	prefix   bool
	mimeType string
}

// oleRules rank stream names found directly under the root storage. Mail
// properties come first because a message keeps attachments in sub-storages.
var oleRules = []oleRule{
	{"__substg1.0_", true, "application/vnd.ms-outlook"},
	{"PowerPoint Document", false, "application/vnd.ms-powerpoint"},
	{"Workbook", false, "application/vnd.ms-excel"},
	{"WordDocument", false, "application/msword"},
	{"Book", false, "application/vnd.ms-excel"},
}

func oleTypeFromNames(names []string) string {
	for _, rule := range oleRules {
		for _, name := range names {
			if name == rule.name || (rule.prefix && strings.HasPrefix(name, rule.name)) {
				return rule.mimeType
			}
		}
	}
	return MIMEOLE
}

// refineZip lists archive entries and maps known part prefixes to office
// types. The second result is false when the read position could not be
// restored.
func (s *Sniffer) refineZip(rs io.ReadSeeker, origin int64) (string, bool) {
	mimeType := s.zipEntryType(rs)
	if _, err := rs.Seek(origin, io.SeekStart); err != nil {
		s.logger.Debug("restore read position after zip inspection failed", logging.Error(err))
		return Fallback, false
	}
	return mimeType, true
}

func (s *Sniffer) zipEntryType(rs io.ReadSeeker) string {
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		s.logger.Debug("zip size unavailable", logging.Error(err))
		return MIMEZip
	}

	ra, ok := rs.(io.ReaderAt)
	if !ok {
		ra = &seekReaderAt{rs: rs}
	}
	zr, err := zip.NewReader(ra, size)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		s.logger.Debug("zip central directory unreadable", logging.Error(err))
		return MIMEZip
	}
	if zr == nil {
		return MIMEZip
	}

	for _, file := range zr.File {
		for _, rule := range zipRules {
			if strings.HasPrefix(file.Name, rule.marker) {
				return rule.mimeType
			}
		}
	}
	return MIMEZip
}

// refineOLE reads the compound file directory and classifies the streams
// stored directly under the root entry.
func (s *Sniffer) refineOLE(rs io.ReadSeeker, origin int64) (string, bool) {
	ra, ok := rs.(io.ReaderAt)
	if !ok {
		ra = &seekReaderAt{rs: rs}
	}
	names, readErr := readOLERootNames(ra, s.oleScanLimit)
	if _, err := rs.Seek(origin, io.SeekStart); err != nil {
		s.logger.Debug("restore read position after ole inspection failed", logging.Error(err))
		return Fallback, false
	}
	if readErr != nil {
		s.logger.Debug("ole directory unreadable", logging.Error(readErr))
		return MIMEOLE, true
	}
	return oleTypeFromNames(names), true
}

// seekReaderAt adapts a ReadSeeker for zip.NewReader. It moves the shared
// position, so it must not be used concurrently.
type seekReaderAt struct {
	rs io.ReadSeeker
}

func (r *seekReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if _, err := r.rs.Seek(off, io.SeekStart); err != nil {
		return 0, err
	}
	n, err := io.ReadFull(r.rs, p)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}
	return n, err
}

package mimesniff

import (
	"errors"
	"io"
	"log/slog"

	"contentprint/internal/logging"
)

const defaultOLEScanLimit = 64 * 1024

// Options configures a Sniffer.
type Options struct {
	// InspectContainers refines generic ZIP and OLE matches into office types.
	InspectContainers bool
	// OLEScanLimit bounds the bytes read while walking an OLE directory (default: 64 KiB).
	OLEScanLimit int
	Logger       *slog.Logger
}

// Sniffer detects MIME types. It holds no per-call state and is safe for
// concurrent use on independent sources.
type Sniffer struct {
	inspectContainers bool
	oleScanLimit      int
	logger            *slog.Logger
}

// New creates a Sniffer with the given options.
func New(opts Options) *Sniffer {
	if opts.OLEScanLimit <= 0 {
		opts.OLEScanLimit = defaultOLEScanLimit
	}
	return &Sniffer{
		inspectContainers: opts.InspectContainers,
		oleScanLimit:      opts.OLEScanLimit,
		logger:            logging.NewComponentLogger(opts.Logger, "mimesniff"),
	}
}

// Detect sniffs src with a default Sniffer.
func Detect(src io.Reader, inspectContainers bool) string {
	return New(Options{InspectContainers: inspectContainers}).Detect(src)
}

// InspectsContainers reports whether ZIP/OLE refinement is enabled.
func (s *Sniffer) InspectsContainers() bool {
	return s.inspectContainers
}

// Detect returns the MIME type of src. src must also implement io.Seeker;
// anything else yields Fallback. The read position is restored before
// returning.
func (s *Sniffer) Detect(src io.Reader) string {
	if src == nil {
		return Fallback
	}
	rs, ok := src.(io.ReadSeeker)
	if !ok {
		s.logger.Debug("source is not seekable; using fallback type")
		return Fallback
	}

	origin, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		s.logger.Debug("read position unavailable; using fallback type", logging.Error(err))
		return Fallback
	}

	header, readErr := readPrefix(rs, maxHeaderLen)
	if _, err := rs.Seek(origin, io.SeekStart); err != nil {
		s.logger.Debug("restore read position failed; using fallback type", logging.Error(err))
		return Fallback
	}
	if readErr != nil {
		s.logger.Debug("header read failed; using fallback type", logging.Error(readErr))
		return Fallback
	}
	if len(header) < 2 {
		return Fallback
	}

	match, ok := Match(header)
	if !ok {
		return Fallback
	}
	if !s.inspectContainers {
		return match.MIMEType
	}

	var (
		refined  string
		restored bool
	)
	switch match.MIMEType {
	case MIMEZip:
		refined, restored = s.refineZip(rs, origin)
	case MIMEOLE:
		refined, restored = s.refineOLE(rs, origin)
	default:
		return match.MIMEType
	}
	if !restored {
		return Fallback
	}
	if refined != match.MIMEType {
		s.logger.Debug("container refined",
			logging.String("generic_type", match.MIMEType),
			logging.String(logging.FieldMIMEType, refined),
		)
	}
	return refined
}

// readPrefix reads up to limit bytes from the start of rs. A source shorter
// than limit is not an error.
func readPrefix(rs io.ReadSeeker, limit int) ([]byte, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	buf := make([]byte, limit)
	n, err := io.ReadFull(rs, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		err = nil
	}
	return buf[:n], err
}

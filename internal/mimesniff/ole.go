package mimesniff

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

const (
	oleHeaderSize  = 512
	oleEntrySize   = 128
	oleHeaderDIFAT = 109

	oleMaxRegSect  uint32 = 0xFFFFFFFA
	oleEndOfChain  uint32 = 0xFFFFFFFE
	oleNoStream    uint32 = 0xFFFFFFFF
	oleTypeStorage byte   = 1
	oleTypeStream  byte   = 2
	oleTypeRoot    byte   = 5
)

var (
	errOLEHeader = errors.New("ole: invalid header")
	errOLEBudget = errors.New("ole: scan limit reached")
	errOLEChain  = errors.New("ole: sector chain leaves the allocation table")
)

type oleEntry struct {
	name  string
	kind  byte
	left  uint32
	right uint32
	child uint32
}

// oleReader fetches sectors of a compound file, charging every read against
// a byte budget.
type oleReader struct {
	ra         io.ReaderAt
	sectorSize int64
	difat      []uint32
	fat        map[uint32][]byte
	budget     int
}

// readOLERootNames returns the names of the entries stored directly under the
// root storage. At most budget bytes are read from ra.
func readOLERootNames(ra io.ReaderAt, budget int) ([]string, error) {
	r := &oleReader{ra: ra, budget: budget, fat: make(map[uint32][]byte)}
	header, err := r.read(0, oleHeaderSize)
	if err != nil {
		return nil, err
	}
	dirStart, err := r.parseHeader(header)
	if err != nil {
		return nil, err
	}
	entries, err := r.directory(dirStart)
	if len(entries) == 0 {
		if err == nil {
			err = errors.New("ole: empty directory")
		}
		return nil, err
	}
	if entries[0].kind != oleTypeRoot {
		return nil, errors.New("ole: first directory entry is not the root")
	}
	return rootChildren(entries), nil
}

func (r *oleReader) parseHeader(header []byte) (uint32, error) {
	if string(header[:8]) != "\xD0\xCF\x11\xE0\xA1\xB1\x1A\xE1" {
		return 0, errOLEHeader
	}
	switch shift := binary.LittleEndian.Uint16(header[30:]); shift {
	case 9, 12:
		r.sectorSize = 1 << shift
	default:
		return 0, fmt.Errorf("%w: sector shift %d", errOLEHeader, shift)
	}
	r.difat = make([]uint32, oleHeaderDIFAT)
	for i := range r.difat {
		r.difat[i] = binary.LittleEndian.Uint32(header[76+4*i:])
	}
	return binary.LittleEndian.Uint32(header[48:]), nil
}

func (r *oleReader) read(off int64, n int) ([]byte, error) {
	if n > r.budget {
		return nil, errOLEBudget
	}
	r.budget -= n
	buf := make([]byte, n)
	if _, err := r.ra.ReadAt(buf, off); err != nil {
		return nil, fmt.Errorf("ole: read at %d: %w", off, err)
	}
	return buf, nil
}

func (r *oleReader) sector(sid uint32) ([]byte, error) {
	if sid >= oleMaxRegSect {
		return nil, errOLEChain
	}
	return r.read((int64(sid)+1)*r.sectorSize, int(r.sectorSize))
}

// next follows the allocation table. Only the FAT sectors listed in the
// header are consulted.
func (r *oleReader) next(sid uint32) (uint32, error) {
	perSector := uint32(r.sectorSize / 4)
	idx := sid / perSector
	if int(idx) >= len(r.difat) {
		return 0, errOLEChain
	}
	table, ok := r.fat[idx]
	if !ok {
		var err error
		if table, err = r.sector(r.difat[idx]); err != nil {
			return 0, err
		}
		r.fat[idx] = table
	}
	return binary.LittleEndian.Uint32(table[(sid%perSector)*4:]), nil
}

// directory reads directory entries along the chain starting at sid. Entries
// read before a failure are returned with the error.
func (r *oleReader) directory(sid uint32) ([]oleEntry, error) {
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	seen := make(map[uint32]bool)
	var entries []oleEntry
	for sid != oleEndOfChain {
		if seen[sid] {
			return entries, errors.New("ole: directory chain loops")
		}
		seen[sid] = true

		data, err := r.sector(sid)
		if err != nil {
			return entries, err
		}
		for off := 0; off+oleEntrySize <= len(data); off += oleEntrySize {
			entries = append(entries, parseOLEEntry(data[off:off+oleEntrySize], decoder))
		}
		if sid, err = r.next(sid); err != nil {
			return entries, err
		}
	}
	return entries, nil
}

// parseOLEEntry decodes one directory entry. Entries with an implausible
// name field come back with kind 0 and are ignored.
func parseOLEEntry(raw []byte, decoder *encoding.Decoder) oleEntry {
	entry := oleEntry{
		kind:  raw[66],
		left:  binary.LittleEndian.Uint32(raw[68:]),
		right: binary.LittleEndian.Uint32(raw[72:]),
		child: binary.LittleEndian.Uint32(raw[76:]),
	}
	if entry.kind != oleTypeStorage && entry.kind != oleTypeStream && entry.kind != oleTypeRoot {
		return oleEntry{}
	}
	size := int(binary.LittleEndian.Uint16(raw[64:]))
	if size < 2 || size > 64 || size%2 != 0 || raw[size-2] != 0 || raw[size-1] != 0 {
		return oleEntry{}
	}
	name, err := decoder.Bytes(raw[:size-2])
	if err != nil {
		return oleEntry{}
	}
	entry.name = string(name)
	return entry
}

// rootChildren walks the sibling tree below the root entry.
func rootChildren(entries []oleEntry) []string {
	var names []string
	visited := make(map[uint32]bool)
	stack := []uint32{entries[0].child}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == oleNoStream || int64(id) >= int64(len(entries)) || visited[id] {
			continue
		}
		visited[id] = true
		entry := entries[id]
		if entry.kind == 0 {
			continue
		}
		names = append(names, entry.name)
		stack = append(stack, entry.right, entry.left)
	}
	return names
}

package testsupport

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/klauspost/compress/zip"
)

// ZipArchive builds a deflated ZIP holding one small entry per name.
func ZipArchive(t testing.TB, names ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte("<xml/>")); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

// PackagedZip builds an EPUB/ODF style archive: a stored "mimetype" entry
// first, followed by the given names.
func PackagedZip(t testing.TB, mimeType string, names ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		t.Fatalf("zip create mimetype: %v", err)
	}
	if _, err := w.Write([]byte(mimeType)); err != nil {
		t.Fatalf("zip write mimetype: %v", err)
	}
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte("<xml/>")); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

const (
	oleSectorSize = 512
	oleEntrySize  = 128
	oleNoStream   = 0xFFFFFFFF
	oleEndOfChain = 0xFFFFFFFE
	oleFATSector  = 0xFFFFFFFD
)

var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

type oleNode struct {
	name     string
	storage  bool
	children []int
}

// OLECompound builds a compound file with 512-byte sectors: header, directory
// sectors, then one FAT sector chaining them. Each name becomes a stream under
// the root entry; "Storage/Stream" nests a stream one storage deep. Streams
// hold no data.
func OLECompound(t testing.TB, names ...string) []byte {
	t.Helper()

	nodes := []oleNode{{name: "Root Entry", storage: true}}
	storages := map[string]int{}
	add := func(parent int, name string, storage bool) int {
		nodes = append(nodes, oleNode{name: name, storage: storage})
		id := len(nodes) - 1
		nodes[parent].children = append(nodes[parent].children, id)
		return id
	}
	for _, name := range names {
		storageName, stream, nested := strings.Cut(name, "/")
		if !nested {
			add(0, name, false)
			continue
		}
		parent, ok := storages[storageName]
		if !ok {
			parent = add(0, storageName, true)
			storages[storageName] = parent
		}
		add(parent, stream, false)
	}

	perSector := oleSectorSize / oleEntrySize
	dirSectors := (len(nodes) + perSector - 1) / perSector
	fatSID := uint32(dirSectors)
	out := make([]byte, oleSectorSize*(dirSectors+2))

	header := out[:oleSectorSize]
	copy(header, oleMagic)
	binary.LittleEndian.PutUint16(header[24:], 0x3E)
	binary.LittleEndian.PutUint16(header[26:], 3)
	binary.LittleEndian.PutUint16(header[28:], 0xFFFE)
	binary.LittleEndian.PutUint16(header[30:], 9)
	binary.LittleEndian.PutUint16(header[32:], 6)
	binary.LittleEndian.PutUint32(header[44:], 1)
	binary.LittleEndian.PutUint32(header[48:], 0)
	binary.LittleEndian.PutUint32(header[56:], 4096)
	binary.LittleEndian.PutUint32(header[60:], oleEndOfChain)
	binary.LittleEndian.PutUint32(header[68:], oleEndOfChain)
	for i := range 109 {
		binary.LittleEndian.PutUint32(header[76+4*i:], oleNoStream)
	}
	binary.LittleEndian.PutUint32(header[76:], fatSID)

	dir := out[oleSectorSize : oleSectorSize*(dirSectors+1)]
	for off := 0; off < len(dir); off += oleEntrySize {
		binary.LittleEndian.PutUint32(dir[off+68:], oleNoStream)
		binary.LittleEndian.PutUint32(dir[off+72:], oleNoStream)
		binary.LittleEndian.PutUint32(dir[off+76:], oleNoStream)
	}
	for id, node := range nodes {
		entry := dir[id*oleEntrySize : (id+1)*oleEntrySize]
		units := utf16.Encode([]rune(node.name))
		if len(units) > 31 {
			t.Fatalf("ole entry name too long: %q", node.name)
		}
		for j, u := range units {
			binary.LittleEndian.PutUint16(entry[j*2:], u)
		}
		binary.LittleEndian.PutUint16(entry[64:], uint16((len(units)+1)*2))
		switch {
		case id == 0:
			entry[66] = 5
		case node.storage:
			entry[66] = 1
		default:
			entry[66] = 2
		}
		// Siblings form a right-leaning chain; readers only need reachability.
		for k, child := range node.children {
			if k == 0 {
				binary.LittleEndian.PutUint32(entry[76:], uint32(child))
			}
			if k+1 < len(node.children) {
				sibling := dir[child*oleEntrySize : (child+1)*oleEntrySize]
				binary.LittleEndian.PutUint32(sibling[72:], uint32(node.children[k+1]))
			}
		}
	}

	fat := out[oleSectorSize*(dirSectors+1):]
	for i := range oleSectorSize / 4 {
		binary.LittleEndian.PutUint32(fat[4*i:], oleNoStream)
	}
	for sid := range dirSectors {
		next := uint32(sid + 1)
		if sid == dirSectors-1 {
			next = oleEndOfChain
		}
		binary.LittleEndian.PutUint32(fat[4*sid:], next)
	}
	binary.LittleEndian.PutUint32(fat[4*fatSID:], oleFATSector)
	return out
}

// Package sfnt reads just enough of a TrueType/OpenType container to
// recover its internal identity records: the table directory, the name
// table, and the presence of a variation axis table.
//
// Reference: OpenType specification, "Organization of an OpenType Font".
package sfnt

import (
	"encoding/binary"
	"fmt"
	"os"
)

// Table tags consulted during identification.
const (
	tagName = "name"
	tagFvar = "fvar"
	tagCFF  = "CFF "
	tagCFF2 = "CFF2"
)

// sfnt version values from the container header.
const (
	versionTrueType = 0x00010000
	versionOTTO     = 0x4F54544F // "OTTO"
)

// Font is one opened container with its table directory resolved.
type Font struct {
	data   []byte
	tables map[string]tableRecord
}

type tableRecord struct {
	offset uint32
	length uint32
}

// headerLen is sfntVersion + numTables + searchRange + entrySelector + rangeShift.
const headerLen = 12

// tableRecordLen is tag + checksum + offset + length.
const tableRecordLen = 16

// Open reads the container at path and parses its table directory.
func Open(path string) (*Font, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the run's own walk
	if err != nil {
		return nil, err
	}
	return New(data)
}

// New parses a container from memory.
func New(data []byte) (*Font, error) {
	if len(data) < headerLen {
		return nil, fmt.Errorf("sfnt: container truncated (%d bytes)", len(data))
	}
	version := binary.BigEndian.Uint32(data)
	if version != versionTrueType && version != versionOTTO {
		return nil, fmt.Errorf("sfnt: unrecognized version 0x%08X", version)
	}
	numTables := int(binary.BigEndian.Uint16(data[4:]))
	dirEnd := headerLen + numTables*tableRecordLen
	if dirEnd > len(data) {
		return nil, fmt.Errorf("sfnt: table directory truncated (%d tables)", numTables)
	}

	f := &Font{data: data, tables: make(map[string]tableRecord, numTables)}
	for i := 0; i < numTables; i++ {
		rec := data[headerLen+i*tableRecordLen:]
		tag := string(rec[:4])
		offset := binary.BigEndian.Uint32(rec[8:])
		length := binary.BigEndian.Uint32(rec[12:])
		if uint64(offset)+uint64(length) > uint64(len(data)) {
			return nil, fmt.Errorf("sfnt: table %q extends past end of file", tag)
		}
		// First directory entry wins for duplicate tags.
		if _, ok := f.tables[tag]; !ok {
			f.tables[tag] = tableRecord{offset: offset, length: length}
		}
	}
	return f, nil
}

// HasTable reports whether the container carries the named table.
func (f *Font) HasTable(tag string) bool {
	_, ok := f.tables[tag]
	return ok
}

// IsVariable reports whether the container exposes a variation axis table.
func (f *Font) IsVariable() bool {
	return f.HasTable(tagFvar)
}

// OutlineFormat returns "otf" when the container carries CFF outlines and
// "ttf" otherwise.
func (f *Font) OutlineFormat() string {
	if f.HasTable(tagCFF) || f.HasTable(tagCFF2) {
		return "otf"
	}
	return "ttf"
}

func (f *Font) table(tag string) ([]byte, bool) {
	rec, ok := f.tables[tag]
	if !ok {
		return nil, false
	}
	return f.data[rec.offset : rec.offset+rec.length], true
}

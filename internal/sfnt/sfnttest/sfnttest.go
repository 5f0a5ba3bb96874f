// Package sfnttest synthesizes minimal font containers for tests: a table
// directory, a name table, and optional fvar/CFF tables.
package sfnttest

import (
	"encoding/binary"
	"unicode/utf16"
)

// Record is one name-table record to embed.
type Record struct {
	NameID uint16
	Value  string
	// UTF16 selects a Windows/Unicode record (UTF-16BE payload); otherwise
	// a Macintosh/Roman record with a UTF-8 payload is written.
	UTF16 bool
	// Raw overrides Value with arbitrary payload bytes when non-nil.
	Raw []byte
}

// Options controls the synthesized container.
type Options struct {
	// CFF marks the container as OTTO/CFF-outlined.
	CFF bool
	// Variable adds an fvar table.
	Variable bool
	// Records populate the name table in order.
	Records []Record
	// PadTo grows the file to at least this many bytes (default 1200, so
	// classification's minimum-size check passes).
	PadTo int
}

const (
	headerLen      = 12
	tableRecordLen = 16
)

// Build assembles the container.
func Build(opts Options) []byte {
	nameTable := buildNameTable(opts.Records)

	tags := []string{"name"}
	if opts.Variable {
		tags = append(tags, "fvar")
	}
	if opts.CFF {
		tags = append(tags, "CFF ")
	}

	dirEnd := headerLen + len(tags)*tableRecordLen
	// Table payloads follow the directory; fvar and CFF content is never
	// read, only their presence.
	payloads := map[string][]byte{
		"name": nameTable,
		"fvar": make([]byte, 8),
		"CFF ": make([]byte, 8),
	}

	size := dirEnd
	offsets := map[string]int{}
	for _, tag := range tags {
		offsets[tag] = size
		size += len(payloads[tag])
	}
	if opts.PadTo == 0 {
		opts.PadTo = 1200
	}
	if size < opts.PadTo {
		size = opts.PadTo
	}

	out := make([]byte, size)
	version := uint32(0x00010000)
	if opts.CFF {
		version = 0x4F54544F // "OTTO"
	}
	binary.BigEndian.PutUint32(out, version)
	binary.BigEndian.PutUint16(out[4:], uint16(len(tags)))

	for i, tag := range tags {
		rec := out[headerLen+i*tableRecordLen:]
		copy(rec[:4], tag)
		binary.BigEndian.PutUint32(rec[8:], uint32(offsets[tag]))
		binary.BigEndian.PutUint32(rec[12:], uint32(len(payloads[tag])))
		copy(out[offsets[tag]:], payloads[tag])
	}
	return out
}

func buildNameTable(records []Record) []byte {
	var strData []byte
	type placed struct {
		rec    Record
		offset int
		length int
	}
	placedRecs := make([]placed, 0, len(records))
	for _, r := range records {
		payload := r.Raw
		if payload == nil {
			if r.UTF16 {
				payload = encodeUTF16BE(r.Value)
			} else {
				payload = []byte(r.Value)
			}
		}
		placedRecs = append(placedRecs, placed{rec: r, offset: len(strData), length: len(payload)})
		strData = append(strData, payload...)
	}

	stringOffset := 6 + 12*len(records)
	table := make([]byte, stringOffset+len(strData))
	binary.BigEndian.PutUint16(table[2:], uint16(len(records)))
	binary.BigEndian.PutUint16(table[4:], uint16(stringOffset))

	for i, p := range placedRecs {
		rec := table[6+i*12:]
		if p.rec.UTF16 || p.rec.Raw != nil {
			binary.BigEndian.PutUint16(rec[0:], 3) // platform: Windows
			binary.BigEndian.PutUint16(rec[2:], 1) // encoding: Unicode BMP
		} else {
			binary.BigEndian.PutUint16(rec[0:], 1) // platform: Macintosh
		}
		binary.BigEndian.PutUint16(rec[6:], p.rec.NameID)
		binary.BigEndian.PutUint16(rec[8:], uint16(p.length))
		binary.BigEndian.PutUint16(rec[10:], uint16(p.offset))
	}
	copy(table[stringOffset:], strData)
	return table
}

func encodeUTF16BE(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, 2*len(units))
	for i, u := range units {
		binary.BigEndian.PutUint16(out[2*i:], u)
	}
	return out
}

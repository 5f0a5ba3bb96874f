package sfnt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// Name record IDs consulted during identification.
// Reference: OpenType specification, 'name' table.
const (
	NameFontFamily           = 1
	NameFontSubfamily        = 2
	NameFullName             = 4
	NameTypographicFamily    = 16
	NameTypographicSubfamily = 17
)

// Names holds the first-seen cleaned value per name ID. Later duplicate
// records for the same ID are ignored regardless of platform or encoding
// (first-seen wins).
type Names map[uint16]string

// Get returns the cleaned value for id, or "" when absent.
func (n Names) Get(id uint16) string {
	return n[id]
}

// Names parses the container's name table. A missing table yields an empty
// map, not an error; a structurally broken table is an error.
func (f *Font) Names() (Names, error) {
	data, ok := f.table(tagName)
	if !ok {
		return Names{}, nil
	}
	if len(data) < 6 {
		return nil, fmt.Errorf("sfnt: name table truncated (%d bytes)", len(data))
	}

	count := int(binary.BigEndian.Uint16(data[2:]))
	stringOffset := int(binary.BigEndian.Uint16(data[4:]))
	if 6+count*12 > len(data) {
		return nil, fmt.Errorf("sfnt: name table record array truncated (%d records)", count)
	}

	names := Names{}
	for i := 0; i < count; i++ {
		rec := data[6+i*12:]
		nameID := binary.BigEndian.Uint16(rec[6:])
		length := int(binary.BigEndian.Uint16(rec[8:]))
		offset := int(binary.BigEndian.Uint16(rec[10:]))

		if _, seen := names[nameID]; seen {
			continue
		}
		start := stringOffset + offset
		end := start + length
		if end > len(data) {
			continue
		}
		if v := CleanName(data[start:end]); v != "" {
			names[nameID] = v
		}
	}
	return names, nil
}

// CleanName turns raw name-record bytes into a safe printable identity
// string: UTF-16BE when the raw bytes contain an embedded NUL, UTF-8
// otherwise, then C0 control characters (0x00-0x0F) stripped and any
// residual non-ASCII bytes dropped.
func CleanName(raw []byte) string {
	var s string
	if bytes.ContainsRune(raw, 0) {
		dec := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
		if decoded, err := dec.Bytes(raw); err == nil {
			s = string(decoded)
		} else {
			s = string(raw)
		}
	} else {
		s = string(raw)
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r <= 0x0F {
			continue
		}
		if r > 0x7F {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// Package sniff classifies files as font containers by extension and
// byte-signature sniffing.
package sniff

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format is the recognized font container format of a file.
type Format int

const (
	// NotAFont marks a file that fails both the extension and signature
	// checks, or is too small to be a genuine font.
	NotAFont Format = iota
	// TrueType is the glyf-outline container (signature 00 01 00 00).
	TrueType
	// OpenType is the CFF-outline container (signature "OTTO").
	OpenType
)

// String returns the conventional extension-style name for the format.
func (f Format) String() string {
	switch f {
	case TrueType:
		return "ttf"
	case OpenType:
		return "otf"
	default:
		return "unknown"
	}
}

// Ext returns the dotted file extension for the format, or "" for NotAFont.
func (f Format) Ext() string {
	switch f {
	case TrueType:
		return ".ttf"
	case OpenType:
		return ".otf"
	default:
		return ""
	}
}

// MinFontSize is the default minimum file size in bytes; anything smaller
// is treated as too small to be a genuine font.
const MinFontSize = 1024

var (
	ttfMagic = []byte{0x00, 0x01, 0x00, 0x00}
	otfMagic = []byte("OTTO")
)

// SniffHeader classifies the first bytes of a container.
func SniffHeader(header []byte) Format {
	switch {
	case bytes.HasPrefix(header, ttfMagic):
		return TrueType
	case bytes.HasPrefix(header, otfMagic):
		return OpenType
	default:
		return NotAFont
	}
}

// Classify determines whether the file at path is a font and which container
// format it uses. A .ttf/.otf extension is trusted without opening the file;
// otherwise the first four bytes are sniffed. Files smaller than minSize
// (MinFontSize when minSize <= 0) are never fonts.
func Classify(path string, minSize int64) Format {
	if minSize <= 0 {
		minSize = MinFontSize
	}
	st, err := os.Stat(path)
	if err != nil || st.Size() < minSize {
		return NotAFont
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf":
		return TrueType
	case ".otf":
		return OpenType
	}

	f, err := os.Open(path) // #nosec G304 -- path comes from the run's own walk
	if err != nil {
		return NotAFont
	}
	defer func() { _ = f.Close() }()

	header := make([]byte, 4)
	if _, err := io.ReadFull(f, header); err != nil {
		return NotAFont
	}
	return SniffHeader(header)
}

// ExtensionFor picks the extension to append to a renamed file whose
// original extension is unknown. When the signature is unrecognized and
// defaultOTF is set, ".otf" is returned as a deliberate lossy default, not a
// detection claim.
func ExtensionFor(path string, minSize int64, defaultOTF bool) string {
	fallback := ""
	if defaultOTF {
		fallback = ".otf"
	}
	switch Classify(path, minSize) {
	case TrueType:
		return ".ttf"
	case OpenType:
		return ".otf"
	default:
		return fallback
	}
}

// Package resolve correlates classified files with manifest entries or,
// failing that, with their own embedded name records, producing one
// FontIdentity per file.
package resolve

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fulmenhq/fontvault/internal/manifest"
	"github.com/fulmenhq/fontvault/internal/naming"
	"github.com/fulmenhq/fontvault/internal/sfnt"
	"github.com/fulmenhq/fontvault/internal/sniff"
	"github.com/fulmenhq/fontvault/pkg/logger"
)

// UnknownName is substituted when no display name is derivable, so that
// downstream naming never produces a blank segment.
const UnknownName = "Unknown"

// VariableStyle is the style label forced on containers exposing a
// variation axis table.
const VariableStyle = "VARIABLE"

// ErrNotAFont marks a file that fails both the manifest match and the
// container format checks. Such files are counted and excluded, never fatal.
var ErrNotAFont = errors.New("not a font file")

// FontIdentity is the resolved description of one file. Identities are
// immutable once built; SourceRelativePath is unique within a batch.
type FontIdentity struct {
	SourceRelativePath string
	ContainerFormat    string // "ttf" or "otf"
	FullName           string
	Weight             string
	Style              string
	IsVariable         bool
	FamilyName         string
	ManifestID         string // empty when resolved via binary introspection
}

// Resolver resolves identities against a manifest mapping with binary
// introspection as the fallback path.
type Resolver struct {
	Manifest    manifest.Map
	Normalizer  *naming.Normalizer
	MinFontSize int64
}

// New returns a Resolver over m with the built-in family token set.
func New(m manifest.Map) *Resolver {
	return &Resolver{Manifest: m, Normalizer: naming.NewNormalizer(nil)}
}

// Resolve builds the identity for the file at path. relPath is the
// slash-separated path relative to the working root; manifestID carries the
// identifier recorded when the file was staged under a manifest match, and
// may be empty, in which case the file's stem is tried as a manifest key.
//
// Priority: manifest match (authoritative, no binary parsing), then
// container introspection. ErrNotAFont is returned for files matching
// neither; any other error is an introspection failure that excludes the
// file from the batch.
func (r *Resolver) Resolve(path, relPath, manifestID string) (*FontIdentity, error) {
	id := manifestID
	if id == "" {
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if _, ok := r.Manifest[stem]; ok {
			id = stem
		}
	}
	if id != "" {
		if entry, ok := r.Manifest[id]; ok {
			return r.fromManifest(path, relPath, id, entry), nil
		}
	}

	if sniff.Classify(path, r.MinFontSize) == sniff.NotAFont {
		return nil, ErrNotAFont
	}
	return r.fromContainer(path, relPath)
}

// fromManifest takes every field verbatim from the manifest entry; manifest
// data is authoritative and cheaper than binary parsing. Only the container
// format is sniffed, with the lossy .otf default for unknown signatures.
func (r *Resolver) fromManifest(path, relPath, id string, entry manifest.Entry) *FontIdentity {
	style := entry.VariationName
	if entry.IsVariable {
		style = VariableStyle
	}
	format := strings.TrimPrefix(sniff.ExtensionFor(path, r.MinFontSize, true), ".")

	logger.Debug("Resolved via manifest",
		logger.String("file", relPath),
		logger.String("id", id))

	return &FontIdentity{
		SourceRelativePath: relPath,
		ContainerFormat:    format,
		FullName:           orUnknown(entry.FullName),
		Weight:             entry.VariationName,
		Style:              style,
		IsVariable:         entry.IsVariable,
		FamilyName:         orUnknown(entry.FamilyName),
		ManifestID:         id,
	}
}

func (r *Resolver) fromContainer(path, relPath string) (*FontIdentity, error) {
	font, err := sfnt.Open(path)
	if err != nil {
		return nil, fmt.Errorf("introspect %s: %w", relPath, err)
	}
	names, err := font.Names()
	if err != nil {
		return nil, fmt.Errorf("introspect %s: %w", relPath, err)
	}

	isVariable := font.IsVariable()
	style := names.Get(sfnt.NameTypographicSubfamily)
	if isVariable {
		style = VariableStyle
	}

	logger.Debug("Resolved via introspection",
		logger.String("file", relPath),
		logger.Bool("variable", isVariable))

	return &FontIdentity{
		SourceRelativePath: relPath,
		ContainerFormat:    font.OutlineFormat(),
		FullName:           orUnknown(names.Get(sfnt.NameFontFamily)),
		Weight:             names.Get(sfnt.NameFontSubfamily),
		Style:              style,
		IsVariable:         isVariable,
		FamilyName:         r.baseFamily(names),
		ManifestID:         "",
	}, nil
}

// baseFamily prefers the typographic family record over the basic family
// record, then strips style/weight tokens.
func (r *Resolver) baseFamily(names sfnt.Names) string {
	src := names.Get(sfnt.NameTypographicFamily)
	if src == "" {
		src = names.Get(sfnt.NameFontFamily)
	}
	if src == "" {
		return UnknownName
	}
	return r.Normalizer.Family(src)
}

func orUnknown(s string) string {
	if s == "" {
		return UnknownName
	}
	return s
}

package sfnt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulmenhq/fontvault/internal/sfnt/sfnttest"
)

func TestNewRejectsGarbage(t *testing.T) {
	_, err := New([]byte("not a font"))
	assert.Error(t, err)

	_, err = New([]byte{0x00, 0x01})
	assert.Error(t, err)
}

func TestNewRejectsTruncatedDirectory(t *testing.T) {
	// Claims 10 tables but carries none.
	data := make([]byte, 12)
	data[1] = 0x01 // version 0x00010000
	data[5] = 10
	_, err := New(data)
	assert.Error(t, err)
}

func TestOutlineFormat(t *testing.T) {
	ttf, err := New(sfnttest.Build(sfnttest.Options{}))
	require.NoError(t, err)
	assert.Equal(t, "ttf", ttf.OutlineFormat())

	otf, err := New(sfnttest.Build(sfnttest.Options{CFF: true}))
	require.NoError(t, err)
	assert.Equal(t, "otf", otf.OutlineFormat())
}

func TestIsVariable(t *testing.T) {
	static, err := New(sfnttest.Build(sfnttest.Options{}))
	require.NoError(t, err)
	assert.False(t, static.IsVariable())

	variable, err := New(sfnttest.Build(sfnttest.Options{Variable: true}))
	require.NoError(t, err)
	assert.True(t, variable.IsVariable())
}

func TestNamesFirstSeenWins(t *testing.T) {
	font, err := New(sfnttest.Build(sfnttest.Options{
		Records: []sfnttest.Record{
			{NameID: NameFontFamily, Value: "First Family", UTF16: true},
			{NameID: NameFontFamily, Value: "Second Family"},
			{NameID: NameFontSubfamily, Value: "Bold"},
		},
	}))
	require.NoError(t, err)

	names, err := font.Names()
	require.NoError(t, err)
	assert.Equal(t, "First Family", names.Get(NameFontFamily))
	assert.Equal(t, "Bold", names.Get(NameFontSubfamily))
	assert.Equal(t, "", names.Get(NameTypographicFamily))
}

func TestNamesMissingTable(t *testing.T) {
	// A container without a name table yields an empty map, not an error.
	data := sfnttest.Build(sfnttest.Options{})
	font, err := New(data)
	require.NoError(t, err)
	delete(font.tables, "name")

	names, err := font.Names()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.ttf")
	require.NoError(t, os.WriteFile(path, sfnttest.Build(sfnttest.Options{
		Records: []sfnttest.Record{{NameID: NameFontFamily, Value: "Sample", UTF16: true}},
	}), 0o644))

	font, err := Open(path)
	require.NoError(t, err)
	names, err := font.Names()
	require.NoError(t, err)
	assert.Equal(t, "Sample", names.Get(NameFontFamily))
}

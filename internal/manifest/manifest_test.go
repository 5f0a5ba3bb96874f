package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `<?xml version="1.0" encoding="UTF-8"?>
<typekit>
  <fonts>
    <font id="f1" familyName="Acme Sans" fullName="Acme Sans Bold" variationName="Bold"/>
    <font id="f2" familyName="Acme Serif" fullName="Acme Serif" isVariable="TRUE"/>
    <font id="" familyName="Broken" fullName="Broken Entry"/>
    <font id="f3" fullName="No Family"/>
    <font id="f4" familyName="No Full"/>
  </fonts>
</typekit>`

func TestParse(t *testing.T) {
	m, err := Parse(sampleManifest)
	require.NoError(t, err)

	// Entries missing id, familyName or fullName are dropped.
	require.Len(t, m, 2)

	f1 := m["f1"]
	assert.Equal(t, "Acme Sans", f1.FamilyName)
	assert.Equal(t, "Acme Sans Bold", f1.FullName)
	assert.Equal(t, "Bold", f1.VariationName)
	assert.False(t, f1.IsVariable)

	// variationName defaults to Regular; isVariable is case-insensitive.
	f2 := m["f2"]
	assert.Equal(t, DefaultVariation, f2.VariationName)
	assert.True(t, f2.IsVariable)
}

func TestParseFailureYieldsEmptyMap(t *testing.T) {
	m, err := Parse("<typekit><font id='x'")
	assert.Error(t, err)
	assert.Empty(t, m)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "entitlements.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleManifest), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, m, 2)
}

func TestLoadMissingFile(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "nope.xml"))
	assert.Error(t, err)
	assert.Empty(t, m)
}

package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"spaces to underscores", "Acme Sans Bold", "Acme_Sans_Bold"},
		{"invalid characters", `Ac<me>:S"a/n\s|?*`, "Ac_me_S_a_n_s"},
		{"consecutive underscores collapse", "A__B___C", "A_B_C"},
		{"leading trailing trimmed", " ._Name_. ", "Name"},
		{"empty input", "", "unnamed"},
		{"all invalid", `***`, "unnamed"},
		{"dots inside kept", "Acme.Sans", "Acme.Sans"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestFamily(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"pro and bold stripped", "Widget Pro Bold", "Widget"},
		{"single token name", "Regular", UnknownFamily},
		{"case-insensitive", "acme BOLD italic", "acme"},
		{"word boundary only", "Boldoni Probe", "Boldoni Probe"},
		{"whitespace collapsed", "Acme  Bold  Sans", "Acme Sans"},
		{"untouched", "Acme Grotesque", "Acme Grotesque"},
		{"abbreviations", "Acme SmBd Cond", "Acme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Family(tt.input))
		})
	}
}

func TestFamilyIsIdempotent(t *testing.T) {
	inputs := []string{"Widget Pro Bold", "Acme Sans", "Regular", "  spaced   out  "}
	for _, in := range inputs {
		once := Family(in)
		assert.Equal(t, once, Family(once), "normalizing %q twice", in)
	}
}

func TestNormalizerExtraTokens(t *testing.T) {
	n := NewNormalizer([]string{"Grotesque", " ", ""})
	assert.Equal(t, "Acme", n.Family("Acme Grotesque Bold"))
	// Built-in tokens still apply.
	assert.Equal(t, "Acme", n.Family("Acme Bold"))
}

func TestUniqueSuffixing(t *testing.T) {
	dir := t.TempDir()

	// N proposals of the same base name yield N distinct names.
	got := make(map[string]bool)
	for i := 0; i < 5; i++ {
		name := Unique(dir, "Widget_Bold", ".ttf")
		assert.False(t, got[name], "duplicate name %s", name)
		got[name] = true
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	assert.True(t, got["Widget_Bold.ttf"])
	for i := 1; i < 5; i++ {
		assert.True(t, got[fmt.Sprintf("Widget_Bold_%d.ttf", i)])
	}
}

func TestUniqueExtensionNormalization(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, "base.otf", Unique(dir, "base", "otf"))
	assert.Equal(t, "base", Unique(dir, "base", ""))
}

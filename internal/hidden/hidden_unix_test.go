//go:build !windows

package hidden

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDotfileProber(t *testing.T) {
	dir := t.TempDir()
	hiddenPath := filepath.Join(dir, ".secret")
	require.NoError(t, os.WriteFile(hiddenPath, []byte("x"), 0o644))
	plainPath := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(plainPath, []byte("x"), 0o644))

	p := ForPlatform()
	assert.True(t, p.IsHidden(hiddenPath))
	assert.False(t, p.IsHidden(plainPath))

	revealed, err := p.Reveal(hiddenPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "secret"), revealed)
	_, err = os.Stat(revealed)
	assert.NoError(t, err)

	// Already-visible entries pass through untouched.
	same, err := p.Reveal(plainPath)
	require.NoError(t, err)
	assert.Equal(t, plainPath, same)
}

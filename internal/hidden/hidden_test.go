package hidden

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRevealName(t *testing.T) {
	assert.Equal(t, "cache", RevealName(".cache"))
	assert.Equal(t, "plain", RevealName("plain"))
	// A bare dot is left alone.
	assert.Equal(t, ".", RevealName("."))
	assert.Equal(t, "a", RevealName(".a"))
}

func TestForPlatform(t *testing.T) {
	assert.NotNil(t, ForPlatform())
}

package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(cfg Config) (*Logger, *bytes.Buffer) {
	l := New(cfg)
	var buf bytes.Buffer
	l.SetOutput(&buf)
	return l, &buf
}

func TestLevelFiltering(t *testing.T) {
	l, buf := capture(Config{Level: WarnLevel})

	l.Log(InfoLevel, "hidden")
	l.Log(WarnLevel, "shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestPrettyOutput(t *testing.T) {
	l, buf := capture(Config{Level: InfoLevel, Component: "fontvault"})

	l.Log(ErrorLevel, "boom", String("file", "a.ttf"), Int("count", 2))

	out := buf.String()
	assert.Contains(t, out, "[ERROR]")
	assert.Contains(t, out, "fontvault:")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "file=a.ttf")
	assert.Contains(t, out, "count=2")
}

func TestJSONOutput(t *testing.T) {
	l, buf := capture(Config{Level: InfoLevel, JSON: true, Component: "fontvault"})

	l.Log(InfoLevel, "structured", Bool("variable", true))

	var entry Entry
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "structured", entry.Message)
	assert.Equal(t, true, entry.Fields["variable"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("debug"))
	assert.Equal(t, WarnLevel, ParseLevel("WARN"))
	assert.Equal(t, InfoLevel, ParseLevel("bogus"))
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", DebugLevel.String())
	assert.Equal(t, "ERROR", ErrorLevel.String())
	assert.Equal(t, "UNKNOWN", Level(99).String())
}

package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel(" DEBUG "))
	assert.Equal(t, Warn, ParseLevel("warning"))
	assert.Equal(t, Info, ParseLevel(""))
	assert.Equal(t, Info, ParseLevel("loud"))
}

func TestTextOutput_LevelFilterAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatText, Output: &buf})

	l.Debug("hidden", nil)
	l.With(map[string]any{"op": "assign_box"}).Info("box assigned", map[string]any{"box_id": "b1"})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "box_id=b1")
	assert.Contains(t, out, "op=assign_box")
	assert.Contains(t, out, "msg=box assigned")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewFromConfig("debug", "json", &buf)

	l.Debug("treatment administered", map[string]any{"treatment_id": "t1"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "t1", entry["treatment_id"])
	assert.Equal(t, "animal-facility", entry["app"])
}

func TestNop(t *testing.T) {
	l := Nop().With(map[string]any{"k": "v"})
	l.Error("ignored", nil)
}

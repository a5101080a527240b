package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info")

	l.Info("file deleted", "path", "/tmp/old.txt", "count", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "file deleted", entry["message"])
	assert.Equal(t, "/tmp/old.txt", entry["path"])
	assert.EqualValues(t, 3, entry["count"])
	assert.Contains(t, entry, "time")
}

func TestZeroLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "warn")

	l.Debug("hidden")
	l.Info("hidden")
	assert.Zero(t, buf.Len())

	l.Error("visible", "error", errors.New("boom"))
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "boom", entry["error"])
}

func TestZeroLoggerOddArgs(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "debug")

	l.Debug("odd", "dangling")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "dangling", entry["!BADKEY"])
}

func TestCronLogger(t *testing.T) {
	var buf bytes.Buffer
	cl := CronLogger(NewWithWriter(&buf, "debug"))

	cl.Error(errors.New("tick failed"), "job", "id", 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "cron: job", entry["message"])
	assert.Equal(t, "tick failed", entry["error"])
}

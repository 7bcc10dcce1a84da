package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "", slog.LevelInfo).Info("hello", "node", "switch1")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "switch1", rec["node"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "TEXT", slog.LevelWarn)
	l.Info("quiet")
	l.Warn("loud", "property", "state")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "msg=loud property=state")
}

package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	require.Equal(t, zapcore.WarnLevel, lvl)

	lvl, err = ParseLevel("DEBUG")
	require.NoError(t, err)
	require.Equal(t, zapcore.DebugLevel, lvl)

	_, err = ParseLevel("chatty")
	require.Error(t, err)
}

func TestFileOutputWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "taskdeck.log")
	l, err := New(Config{Level: "debug", Format: FormatJSON, Output: path})
	require.NoError(t, err)

	l.Debug("project saved", zap.String("project", "Website"))
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	require.Contains(t, line, `"message":"project saved"`)
	require.Contains(t, line, `"project":"Website"`)
}

func TestGlobalDefaultsToNop(t *testing.T) {
	require.NotNil(t, L())

	l, err := New(Config{Output: "discard"})
	require.NoError(t, err)
	SetGlobal(l)
	t.Cleanup(func() { SetGlobal(zap.NewNop()) })
	require.Same(t, l, L())
}

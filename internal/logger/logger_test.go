package logger

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourcePrefixesLines(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, Init())
	defer Close()

	For("socket").Infof("dialed %s", "ws://x")
	For("lobby").Errorf("stream dropped")

	data, err := os.ReadFile(GetLogPath())
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "[INFO] socket: dialed ws://x")
	assert.Contains(t, out, "[ERROR] lobby: stream dropped")
}

// config_test.go
package wlang

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "w.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func Test_LoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "max_iterations: 50\nmax_call_depth: 8\nscratch_dir: /tmp/w\n"))
	require.NoError(t, err)
	require.Equal(t, 50, cfg.MaxIterations)
	require.Equal(t, 8, cfg.MaxCallDepth)
	require.Equal(t, "/tmp/w", cfg.ScratchDir)
}

func Test_LoadConfig_MissingFieldsDefault(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "scratch_dir: /tmp/w\n"))
	require.NoError(t, err)
	require.Equal(t, DefaultMaxIterations, cfg.MaxIterations)
	require.Equal(t, DefaultMaxCallDepth, cfg.MaxCallDepth)
}

func Test_LoadConfig_UnknownKeyRejected(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "max_iters: 50\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "config: parse")
}

func Test_LoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	require.True(t, os.IsNotExist(err))
}

func Test_DefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, DefaultMaxIterations, cfg.MaxIterations)
	require.Equal(t, DefaultMaxCallDepth, cfg.MaxCallDepth)
	require.Empty(t, cfg.ScratchDir)
}

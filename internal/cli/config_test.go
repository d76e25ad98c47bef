package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexander-cohen/SG-Design-Classification/internal/config"
)

func TestConfigCommand_YAML(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SGDESIGN_MAX_POINTS", "12")

	out, err := execute(t, nil, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "max_points: 12\n")
	assert.Contains(t, out, "compression: none\n")
}

func TestConfigCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ci.yaml")
	require.NoError(t, os.WriteFile(path, []byte("min_points: 5\nmax_points: 6\n"), 0o644))

	out, err := execute(t, nil, "--format", "json", "--config", path, "config")
	require.NoError(t, err)

	var cfg config.Config
	decodeData(t, out, &cfg)
	assert.Equal(t, 5, cfg.MinPoints)
	assert.Equal(t, 6, cfg.MaxPoints)
}

func TestConfigCommand_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("compression: rar\n"), 0o644))

	_, err := execute(t, nil, "--config", path, "config")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

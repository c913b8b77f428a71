package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CRITPATH_DB", "")
	t.Setenv("CRITPATH_HOURS", "")
	t.Setenv("NO_COLOR", "")
	return home
}

func TestLoad_Defaults(t *testing.T) {
	home := setHome(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".critpath", "critpath.db"), cfg.DBPath)
	assert.Equal(t, 8.0, cfg.WorkingHoursPerDay)
	assert.True(t, cfg.Color)
}

func TestLoad_ConfigFile(t *testing.T) {
	home := setHome(t)
	dir := filepath.Join(home, ".critpath")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
db_path = "/tmp/custom.db"
working_hours_per_day = 6.5
color = false
`), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
	assert.Equal(t, 6.5, cfg.WorkingHoursPerDay)
	assert.False(t, cfg.Color)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := setHome(t)
	dir := filepath.Join(home, ".critpath")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
db_path = "/tmp/from-file.db"
working_hours_per_day = 6
`), 0o644))

	t.Setenv("CRITPATH_DB", "/tmp/from-env.db")
	t.Setenv("CRITPATH_HOURS", "4")
	t.Setenv("NO_COLOR", "1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/from-env.db", cfg.DBPath)
	assert.Equal(t, 4.0, cfg.WorkingHoursPerDay)
	assert.False(t, cfg.Color)
}

func TestLoad_IgnoresInvalidHoursEnv(t *testing.T) {
	setHome(t)
	t.Setenv("CRITPATH_HOURS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8.0, cfg.WorkingHoursPerDay)
}

func TestLoad_RejectsNonPositiveHours(t *testing.T) {
	home := setHome(t)
	dir := filepath.Join(home, ".critpath")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`working_hours_per_day = -2`), 0o644))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_BadTomlSurfacesError(t *testing.T) {
	home := setHome(t)
	dir := filepath.Join(home, ".critpath")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`db_path = [broken`), 0o644))

	_, err := Load()
	assert.Error(t, err)
}

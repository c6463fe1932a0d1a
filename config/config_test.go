package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "union", cfg.Generate.EnumStyle)
	assert.Equal(t, "unknown", cfg.Generate.Fallback)
	assert.True(t, cfg.Generate.Export)
	assert.Equal(t, int64(3<<20), cfg.Parser.MaxSpecBytes)
}

func TestLoadCaches(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	first, err := Load()
	require.NoError(t, err)
	second, err := Load()
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asyncgen.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[generate]
enum_style = "enum"
export = false

[parser]
max_spec_bytes = 1024
`), 0o644))

	cfg, err := LoadFromFile(path)

	require.NoError(t, err)
	assert.Equal(t, "enum", cfg.Generate.EnumStyle)
	assert.False(t, cfg.Generate.Export)
	assert.Equal(t, int64(1024), cfg.Parser.MaxSpecBytes)
	// Unset keys keep their defaults.
	assert.Equal(t, "unknown", cfg.Generate.Fallback)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))

	assert.Error(t, err)
}

func TestEnvironmentOverride(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	t.Setenv("ASYNCGEN_GENERATE_FALLBACK", "any")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "any", cfg.Generate.Fallback)
}

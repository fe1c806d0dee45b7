package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 64, cfg.Server.MaxChains)
	assert.Equal(t, 60, cfg.Server.MaxWordLen)
	assert.True(t, cfg.Server.EnableFilter)
	assert.Equal(t, " => ", cfg.CLI.DefaultSeparator)
	assert.Equal(t, 16, cfg.CLI.DefaultLimit)
}

func TestInitConfigCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordchain.toml")

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)
}

func TestSaveAndLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordchain.toml")

	cfg := DefaultConfig()
	cfg.Server.MaxChains = 8
	cfg.CLI.DefaultSeparator = " -> "
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8, loaded.Server.MaxChains)
	assert.Equal(t, " -> ", loaded.CLI.DefaultSeparator)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	// max_chains has the wrong type, so the struct decode fails; the
	// salvage pass still picks up the valid keys around it.
	content := `
[server]
max_chains = "plenty"
max_word_len = 42

[cli]
default_limit = 4
`
	path := filepath.Join(t.TempDir(), "wordchain.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Server.MaxWordLen)
	assert.Equal(t, 4, cfg.CLI.DefaultLimit)
	assert.Equal(t, 64, cfg.Server.MaxChains, "bad key falls back to default")
}

func TestLoadConfigGarbageFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordchain.toml")
	require.NoError(t, os.WriteFile(path, []byte("not toml at [[["), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordchain.toml")
	cfg := DefaultConfig()

	maxChains := 10
	enableFilter := false
	require.NoError(t, cfg.Update(path, &maxChains, nil, &enableFilter))

	assert.Equal(t, 10, cfg.Server.MaxChains)
	assert.False(t, cfg.Server.EnableFilter)
	assert.Equal(t, 60, cfg.Server.MaxWordLen, "nil leaves the value alone")

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 10, loaded.Server.MaxChains)
}

package configpaths_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/pinput/internal/configpaths"
)

func TestExt(t *testing.T) {
	tests := map[string]string{
		"json": "json",
		"yaml": "yaml",
		"yml":  "yaml",
		"toml": "toml",
		"":     "json",
	}
	for in, want := range tests {
		assert.Equal(t, want, configpaths.Ext(in), in)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG layout only")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	p, err := configpaths.DefaultConfigPath("yml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "pinput", "config.yaml"), p)

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/someone")
	dir, err := configpaths.DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/someone", ".config", "pinput"), dir)
}

func TestConfigCandidatePaths(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths("custom.toml")
	require.NotEmpty(t, tomlPaths)
	assert.Equal(t, "custom.toml", tomlPaths[0])
	assert.Equal(t, filepath.Join(wd, "pinput.json"), jsonPaths[0])
	assert.Equal(t, filepath.Join(wd, "pinput.yaml"), yamlPaths[0])
	assert.Equal(t, filepath.Join(wd, "pinput.yml"), yamlPaths[1])
	assert.Contains(t, jsonPaths, filepath.Join(wd, "hotkeys.json"))

	jsonPaths, _, _ = configpaths.ConfigCandidatePaths("settings.conf")
	assert.Equal(t, "settings.conf", jsonPaths[0])
}

func TestEnsureDir(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a", "b", "config.json")
	require.NoError(t, configpaths.EnsureDir(p))
	info, err := os.Stat(filepath.Dir(p))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

package lib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigDefaults(t *testing.T) {
	config, err := GetConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3030", config.APP_URL)
	assert.Equal(t, "3030", config.PORT)
	assert.Equal(t, "skip2", config.ENGINE)
	assert.Equal(t, "qr.png", config.OUT)
	assert.Equal(t, "M", config.ERROR)
	assert.Equal(t, 10, config.BOX_SIZE)
	assert.Equal(t, 4, config.BORDER)
	assert.Equal(t, "black", config.FILL)
	assert.Equal(t, "white", config.BACK)
	assert.False(t, config.IsProduction())
}

func TestGetConfigFromEnv(t *testing.T) {
	t.Setenv("CUERRE_MODE", "production")
	t.Setenv("CUERRE_APP_URL", "https://qr.example.com/")
	t.Setenv("CUERRE_ERROR", "h")
	t.Setenv("CUERRE_BOX_SIZE", "6")

	config, err := GetConfig()
	require.NoError(t, err)

	assert.True(t, config.IsProduction())
	assert.Equal(t, "https://qr.example.com", config.APP_URL)
	assert.Equal(t, "H", config.ERROR)
	assert.Equal(t, 6, config.BOX_SIZE)
}

func TestLoadConfigFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "cuerre.yaml")
	require.NoError(t, os.WriteFile(file, []byte("engine: rsc\nborder: 2\nfill: \"#112233\"\n"), 0644))

	t.Setenv("CUERRE_BORDER", "1")

	config, err := LoadConfig(NewViper(), file)
	require.NoError(t, err)

	assert.Equal(t, "rsc", config.ENGINE)
	assert.Equal(t, "#112233", config.FILL)
	// environment wins over the file
	assert.Equal(t, 1, config.BORDER)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(NewViper(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

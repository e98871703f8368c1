package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("DB_DRIVER: sqlite\nDB_NAME: wejv.db\nEXPOSE_ERROR_DETAILS: true\nRATE_LIMIT_PER_SECOND: 5\n"), 0o600))

	LoadConfigFrom(path)
	t.Cleanup(func() { config = defaultConfig() })

	assert.Equal(t, "sqlite", GetConfig("DB_DRIVER"))
	assert.Equal(t, "wejv.db", GetConfig("DB_NAME"))
	assert.Equal(t, "8080", GetConfig("APP_PORT"))
	assert.True(t, GetConfigBool("EXPOSE_ERROR_DETAILS"))
	assert.Equal(t, 5, GetConfigInt("RATE_LIMIT_PER_SECOND", 20))
}

func TestEnvironmentOverridesYAML(t *testing.T) {
	LoadConfigFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("DB_NAME", "from-env")

	assert.Equal(t, "from-env", GetConfig("DB_NAME"))
	assert.Equal(t, "postgres", GetConfig("DB_DRIVER"))
	assert.Equal(t, 20, GetConfigInt("RATE_LIMIT_PER_SECOND", 1))
	assert.Equal(t, 7, GetConfigInt("UNKNOWN_KEY", 7))
	assert.Empty(t, GetConfig("UNKNOWN_KEY"))
}

func TestNoCommaValidator(t *testing.T) {
	type named struct {
		Name string `validate:"nocomma"`
	}

	assert.NoError(t, Validator().Struct(named{Name: "Hoofdgerecht"}))
	assert.Error(t, Validator().Struct(named{Name: "Soep,Stoof"}))
}

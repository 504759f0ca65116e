package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetForTest clears k for the test and restores it afterwards.
func unsetForTest(t *testing.T, k string) {
	t.Helper()
	t.Setenv(k, "")
	require.NoError(t, os.Unsetenv(k))
}

func writeDotEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDotEnv_LoadsValuesAndIgnoresNoise(t *testing.T) {
	unsetForTest(t, "FARM_A")
	unsetForTest(t, "FARM_B")
	unsetForTest(t, "FARM_C")

	path := writeDotEnv(t, `
# comment

FARM_A=one
export FARM_B=two
FARM_C="three"
`)

	require.NoError(t, loadDotEnv(path))

	assert.Equal(t, "one", os.Getenv("FARM_A"))
	assert.Equal(t, "two", os.Getenv("FARM_B"))
	assert.Equal(t, "three", os.Getenv("FARM_C"))
}

func TestLoadDotEnv_DoesNotOverwriteExistingEnv(t *testing.T) {
	t.Setenv("FARM_KEEP", "already")

	require.NoError(t, loadDotEnv(writeDotEnv(t, "FARM_KEEP=fromfile\n")))

	assert.Equal(t, "already", os.Getenv("FARM_KEEP"))
}

func TestLoadDotEnv_StripsSingleQuotes(t *testing.T) {
	unsetForTest(t, "FARM_Q")

	require.NoError(t, loadDotEnv(writeDotEnv(t, "FARM_Q='hello world'\n")))

	assert.Equal(t, "hello world", os.Getenv("FARM_Q"))
}

func TestLoadDotEnv_MissingFileIsNotAnError(t *testing.T) {
	assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}

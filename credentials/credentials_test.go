package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFromProfileFile(t *testing.T) {
	dir := t.TempDir()
	content := EnvEmail + "=file@example.com\n" + EnvAPIToken + "=file-token\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "default"), []byte(content), 0o600))

	creds, err := Get("default", dir)
	require.NoError(t, err)
	assert.Equal(t, "file@example.com", creds.Email)
	assert.Equal(t, "file-token", creds.APIToken)
}

func TestGetFallsBackToEnvironment(t *testing.T) {
	t.Setenv(EnvEmail, "env@example.com")
	t.Setenv(EnvAPIToken, "env-token")

	creds, err := Get("no-such-profile", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "env@example.com", creds.Email)
	assert.Equal(t, "env-token", creds.APIToken)
}

func TestGetProfileFileWinsOverEnvironment(t *testing.T) {
	t.Setenv(EnvEmail, "env@example.com")
	t.Setenv(EnvAPIToken, "env-token")

	dir := t.TempDir()
	content := EnvEmail + "=file@example.com\n" + EnvAPIToken + "=file-token\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prod"), []byte(content), 0o600))

	creds, err := Get("prod", dir)
	require.NoError(t, err)
	assert.Equal(t, "file@example.com", creds.Email)
}

func TestGetReportsAllMissingVariables(t *testing.T) {
	t.Setenv(EnvEmail, "")
	t.Setenv(EnvAPIToken, "")

	_, err := Get("default", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvEmail)
	assert.Contains(t, err.Error(), EnvAPIToken)
	assert.Contains(t, err.Error(), "default")
}

func TestGetPartialProfileFile(t *testing.T) {
	dir := t.TempDir()
	content := EnvEmail + "=file@example.com\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "partial"), []byte(content), 0o600))

	_, err := Get("partial", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvAPIToken)
	assert.NotContains(t, err.Error(), EnvEmail+",")
}

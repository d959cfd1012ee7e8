package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("AUTH_JWT_SECRET", testSecret)
	t.Setenv("AUTH_GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("AUTH_GOOGLE_CLIENT_SECRET", "client-secret")
}

func TestLoad_EnvOnlyDefaults(t *testing.T) {
	setBaseEnv(t)
	// CONFIG_PATH points at a missing file; Load must fail because the path
	// was explicit. Unset it to exercise the env-only branch.
	t.Setenv("CONFIG_PATH", "")
	os.Unsetenv("CONFIG_PATH")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 6, cfg.Curriculum.ModuleCount)
	assert.Equal(t, 3, cfg.Curriculum.CheckpointsPerModule)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "modulearn", cfg.Auth.JWTIssuer)
	assert.Empty(t, cfg.Database.DSN)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	setBaseEnv(t)

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	setBaseEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9090
curriculum:
  module_count: 10
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Curriculum.ModuleCount)
	// Untouched sections keep defaults.
	assert.Equal(t, 3, cfg.Curriculum.CheckpointsPerModule)
}

func TestValidate_ShortSecret(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Auth.JWTSecret = "short"
	require.Error(t, cfg.Validate())
}

func TestValidate_MissingGoogle(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Auth.GoogleClientSecret = ""
	require.Error(t, cfg.Validate())
}

func TestValidate_Curriculum(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Curriculum.ModuleCount = 0
	require.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Curriculum.CheckpointsPerModule = -1
	require.Error(t, cfg.Validate())
}

func TestIsProviderAllowed(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	assert.True(t, cfg.Auth.IsProviderAllowed("google"))
	assert.False(t, cfg.Auth.IsProviderAllowed("apple"))

	cfg.Auth.GoogleClientID = ""
	assert.False(t, cfg.Auth.IsProviderAllowed("google"))
}

func validConfig() *Config {
	return &Config{
		Auth: AuthConfig{
			JWTSecret:          testSecret,
			GoogleClientID:     "client-id",
			GoogleClientSecret: "client-secret",
		},
		Curriculum: CurriculumConfig{
			ModuleCount:          6,
			CheckpointsPerModule: 3,
		},
	}
}

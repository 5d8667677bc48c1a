package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vehicledb/internal/config"
)

func writeEnv(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadServer(t *testing.T) {
	t.Run("from env file", func(t *testing.T) {
		t.Setenv("ENV_FILE", writeEnv(t, "JWT_SECRET=s3cret\nDB_DRIVER=mysql\nCORS_ORIGINS=http://a, http://b\nSESSION_TTL=2h\n"))
		// godotenv never overrides variables that are already set
		t.Setenv("JWT_SECRET", "")
		t.Setenv("DB_DRIVER", "")
		t.Setenv("CORS_ORIGINS", "")
		t.Setenv("SESSION_TTL", "")
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("DB_DRIVER")
		os.Unsetenv("CORS_ORIGINS")
		os.Unsetenv("SESSION_TTL")

		cfg, err := config.LoadServer()

		require.NoError(t, err)
		assert.Equal(t, "s3cret", cfg.JWTSecret)
		assert.Equal(t, "mysql", cfg.DBDriver)
		assert.Equal(t, []string{"http://a", "http://b"}, cfg.CORSOrigins)
		assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("ENV_FILE", writeEnv(t, ""))
		t.Setenv("JWT_SECRET", "")

		_, err := config.LoadServer()

		assert.EqualError(t, err, "JWT_SECRET is not set in environment")
	})

	t.Run("bad driver", func(t *testing.T) {
		t.Setenv("ENV_FILE", writeEnv(t, ""))
		t.Setenv("JWT_SECRET", "x")
		t.Setenv("DB_DRIVER", "postgres")

		_, err := config.LoadServer()

		assert.Error(t, err)
	})

	t.Run("missing explicit env file", func(t *testing.T) {
		t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))

		_, err := config.LoadServer()

		assert.Error(t, err)
	})
}

func TestLoadClient(t *testing.T) {
	t.Setenv("ENV_FILE", writeEnv(t, ""))
	t.Setenv("VEHICLEDB_URL", "https://api.example.com/")

	cfg, err := config.LoadClient()

	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.ServerURL)
}

func TestLoadClientCookieFile(t *testing.T) {
	t.Run("default under user config dir", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("ENV_FILE", writeEnv(t, ""))
		t.Setenv("HOME", home)
		t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
		t.Setenv("VEHICLEDB_COOKIES", "")
		os.Unsetenv("VEHICLEDB_COOKIES")

		cfg, err := config.LoadClient()

		require.NoError(t, err)
		dir, err := os.UserConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "vehicledb", "cookies.json"), cfg.CookieFile)
	})

	t.Run("override", func(t *testing.T) {
		t.Setenv("ENV_FILE", writeEnv(t, "VEHICLEDB_COOKIES=/tmp/jar.json\n"))
		t.Setenv("VEHICLEDB_COOKIES", "")
		os.Unsetenv("VEHICLEDB_COOKIES")

		cfg, err := config.LoadClient()

		require.NoError(t, err)
		assert.Equal(t, "/tmp/jar.json", cfg.CookieFile)
	})
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aanand-mishra/campus-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		path := writeConfig(t, `
env: "dev"
storage_path: "campus.db"
http_server:
  address: "localhost:8082"
`)
		cfg, err := config.Load(path)
		require.NoError(t, err)

		assert.Equal(t, "dev", cfg.Env)
		assert.Equal(t, "campus.db", cfg.StoragePath)
		assert.Equal(t, "localhost:8082", cfg.HTTPServer.Addr)
		assert.Equal(t, 10*time.Second, cfg.HTTPServer.ReadTimeout)
		assert.Equal(t, 5*time.Second, cfg.HTTPServer.ShutdownTimeout)
		assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	})

	t.Run("reads explicit values", func(t *testing.T) {
		path := writeConfig(t, `
env: "prod"
storage_path: "/var/lib/campus.db"
http_server:
  address: "0.0.0.0:9000"
  write_timeout: 30s
cors:
  allowed_origins: ["https://campus.example"]
`)
		cfg, err := config.Load(path)
		require.NoError(t, err)

		assert.Equal(t, 30*time.Second, cfg.HTTPServer.WriteTimeout)
		assert.Equal(t, []string{"https://campus.example"}, cfg.CORS.AllowedOrigins)
	})

	t.Run("missing required key", func(t *testing.T) {
		path := writeConfig(t, `
env: "dev"
http_server:
  address: "localhost:8082"
`)
		_, err := config.Load(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := config.Load("")
		assert.Error(t, err)
	})
}

package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("env file with defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		content := "DB_NAME=reviews\nDB_USER=postgres\nJWT_SECRET=s3cret\nCORS_ALLOWED_ORIGINS=http://localhost:3000, https://example.com\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		config, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "8080", config.App.Port)
		assert.Equal(t, "reviews", config.Database.Name)
		assert.Equal(t, "5432", config.Database.Port)
		assert.Equal(t, "s3cret", config.JWT.Secret)
		assert.Equal(t, 120*time.Minute, config.JWT.TokenTTL())
		assert.Equal(t, 10*time.Second, config.HTTP.ShutdownTimeout)
		assert.Equal(t, []string{"http://localhost:3000", "https://example.com"}, config.HTTP.AllowedOrigins)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=file\nPORT=9000\n"), 0o600))
		t.Setenv("PORT", "9100")

		config, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "9100", config.App.Port)
	})

	t.Run("missing file is fine", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "from-env")

		config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
		require.NoError(t, err)
		assert.Equal(t, "from-env", config.JWT.Secret)
	})

	t.Run("secret required", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := LoadConfig("")
		assert.Error(t, err)
	})

	t.Run("expiry must be positive", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "x")
		t.Setenv("JWT_EXPIRY_MINUTES", "0")

		_, err := LoadConfig("")
		assert.Error(t, err)
	})
}

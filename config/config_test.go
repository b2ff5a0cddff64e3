package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("requires JWT_SECRET", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("SPOONACULAR_API_KEY", "key")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("requires SPOONACULAR_API_KEY", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("SPOONACULAR_API_KEY", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SPOONACULAR_API_KEY")
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("SPOONACULAR_API_KEY", "key")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 15, cfg.JWT.AccessTokenExpiry)
		assert.Equal(t, 7, cfg.JWT.RefreshTokenExpiry)
		assert.Equal(t, 10*time.Minute, cfg.Spoonacular.CacheTTL)
		assert.Equal(t, 5, cfg.RateLimit.LoginMaxAttempts)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("SPOONACULAR_API_KEY", "key")
		t.Setenv("PORT", "8080")
		t.Setenv("HOST", "127.0.0.1")
		t.Setenv("SPOONACULAR_BASE_URL", "http://upstream.test/")
		t.Setenv("CORS_ORIGIN", "http://a.test, ,http://b.test")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
		assert.Equal(t, "http://upstream.test", cfg.Spoonacular.BaseURL)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.Origins)
	})

	t.Run("invalid port", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("SPOONACULAR_API_KEY", "key")
		t.Setenv("PORT", "not-a-port")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid PORT")
	})
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "GROQ_API_KEY", "ANTHROPIC_API_KEY", "DATABASE_DSN", "STORE_BACKEND", "LOG_LEVEL"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func Test_parseEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("process environment", func(t *testing.T) {
		clearEnv(t)
		os.Args = []string{"testbin", "-env", filepath.Join(t.TempDir(), "missing.env")}
		t.Setenv("PORT", "8080")
		t.Setenv("GROQ_API_KEY", "gsk-test")
		t.Setenv("STORE_BACKEND", "memory")

		c := &Config{}
		c.LoadDefaults()
		require.NotPanics(t, func() { parseEnv(c) })

		assert.Equal(t, ":8080", c.EndpointAddrHTTP)
		assert.Equal(t, "gsk-test", c.GroqAPIKey)
		assert.Equal(t, StoreMemory, c.StoreBackend)
	})

	t.Run("dotenv file does not override", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte("GROQ_API_KEY=from-file\nANTHROPIC_API_KEY=sk-ant\n"), 0o600))
		os.Args = []string{"testbin", "-env", path}
		t.Setenv("GROQ_API_KEY", "from-env")

		c := &Config{}
		c.LoadDefaults()
		require.NotPanics(t, func() { parseEnv(c) })

		assert.Equal(t, "from-env", c.GroqAPIKey)
		assert.Equal(t, "sk-ant", c.AnthropicAPIKey)
		// godotenv sets it process-wide.
		require.NoError(t, os.Unsetenv("ANTHROPIC_API_KEY"))
	})

	t.Run("missing dotenv file is fine", func(t *testing.T) {
		clearEnv(t)
		os.Args = []string{"testbin", "-env", filepath.Join(t.TempDir(), "nope.env")}

		c := &Config{}
		c.LoadDefaults()
		require.NotPanics(t, func() { parseEnv(c) })
		assert.Equal(t, ":5000", c.EndpointAddrHTTP)
	})
}

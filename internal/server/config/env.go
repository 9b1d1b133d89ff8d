package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/studymate/internal/flagx"
	"github.com/joho/godotenv"
)

// parseEnv loads the dotenv file named by -env (default ".env") without
// overriding variables already set, then copies the recognised variables:
//
//	PORT               HTTP port, bound on all interfaces
//	GROQ_API_KEY       Groq API key
//	ANTHROPIC_API_KEY  Anthropic API key
//	DATABASE_DSN       PostgreSQL DSN
//	STORE_BACKEND      account table backend
//	LOG_LEVEL          debug, info, warn or error
//
// A missing dotenv file is not an error; an unreadable one panics like a
// broken JSON config does.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(flagx.EnvFileFlags()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		cfg.EndpointAddrHTTP = ":" + v
	}
	if v, ok := os.LookupEnv("GROQ_API_KEY"); ok {
		cfg.GroqAPIKey = v
	}
	if v, ok := os.LookupEnv("ANTHROPIC_API_KEY"); ok {
		cfg.AnthropicAPIKey = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok && v != "" {
		cfg.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("STORE_BACKEND"); ok && v != "" {
		cfg.StoreBackend = v
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = v
	}
}

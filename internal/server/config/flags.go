package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/studymate/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string              HTTP bind address (e.g. ":5000")
//	-store string          account table backend: file, sqlite, postgres, s3, memory
//	-users-file string     flat-file table location
//	-sqlite string         SQLite database path
//	-d string              PostgreSQL DSN
//	-credentials string    credential scheme: plain or argon2id
//	-generator string      LLM backend: groq or anthropic
//	-model string          model name for the selected generator
//	-static string         directory with index.html and assets
//	-log-level string      debug, info, warn or error
//	-shutdown-timeout int  graceful shutdown limit, seconds
//	-s3-bucket, -s3-region, -s3-endpoint, -s3-key, -s3-user, -s3-password
//
// os.Args is filtered with flagx.FilterArgs first, so -c/-env and unknown
// flags do not trip the parser.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-store", "-users-file", "-sqlite", "-d", "-credentials",
		"-generator", "-model", "-static", "-log-level", "-shutdown-timeout",
		"-s3-bucket", "-s3-region", "-s3-endpoint", "-s3-key", "-s3-user", "-s3-password",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.StoreBackend, "store", config.StoreBackend, "account table backend")
	fs.StringVar(&config.UsersFile, "users-file", config.UsersFile, "flat-file table location")
	fs.StringVar(&config.SQLitePath, "sqlite", config.SQLitePath, "SQLite database path")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.CredentialScheme, "credentials", config.CredentialScheme, "credential scheme")
	fs.StringVar(&config.GeneratorBackend, "generator", config.GeneratorBackend, "generation backend")
	fs.StringVar(&config.StaticDir, "static", config.StaticDir, "static files directory")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")

	model := fs.String("model", "", "model for the selected generator")
	shutdownTimeout := fs.Int("shutdown-timeout", int(config.ShutdownTimeout.Seconds()), "graceful shutdown timeout (in seconds)")

	fs.StringVar(&config.S3Bucket, "s3-bucket", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "s3-region", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "s3-endpoint", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3ObjectKey, "s3-key", config.S3ObjectKey, "S3 object key of the table")
	fs.StringVar(&config.S3RootUser, "s3-user", config.S3RootUser, "S3 access key")
	fs.StringVar(&config.S3RootPassword, "s3-password", config.S3RootPassword, "S3 secret key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second

	if *model != "" {
		switch config.GeneratorBackend {
		case GeneratorAnthropic:
			config.AnthropicModel = *model
		default:
			config.GroqModel = *model
		}
	}
}

package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/studymate/internal/flagx"
	"github.com/dmitrijs2005/studymate/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON config file. It is only used
// for unmarshalling; set values are copied onto the runtime Config and
// absent ones leave it untouched.
type JsonConfig struct {
	EndpointAddrHTTP string          `json:"endpoint_addr_http"`
	LogLevel         string          `json:"log_level"`
	StaticDir        string          `json:"static_dir"`
	ShutdownTimeout  *timex.Duration `json:"shutdown_timeout"`
	StoreBackend     string          `json:"store_backend"`
	UsersFile        string          `json:"users_file"`
	SQLitePath       string          `json:"sqlite_path"`
	DatabaseDSN      string          `json:"database_dsn"`
	CredentialScheme string          `json:"credential_scheme"`
	S3RootUser       string          `json:"s3_root_user"`
	S3RootPassword   string          `json:"s3_root_password"`
	S3Bucket         string          `json:"s3_bucket"`
	S3Region         string          `json:"s3_region"`
	S3BaseEndpoint   string          `json:"s3_base_endpoint"`
	S3ObjectKey      string          `json:"s3_object_key"`
	GeneratorBackend string          `json:"generator_backend"`
	GroqAPIKey       string          `json:"groq_api_key"`
	GroqBaseURL      string          `json:"groq_base_url"`
	GroqModel        string          `json:"groq_model"`
	AnthropicAPIKey  string          `json:"anthropic_api_key"`
	AnthropicModel   string          `json:"anthropic_model"`
}

// parseJson loads the file named by -c/-config into config. Without the flag
// nothing happens. An unreadable file or invalid JSON panics, as a broken
// config should stop startup.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.StaticDir, c.StaticDir)
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	setString(&config.StoreBackend, c.StoreBackend)
	setString(&config.UsersFile, c.UsersFile)
	setString(&config.SQLitePath, c.SQLitePath)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.CredentialScheme, c.CredentialScheme)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3ObjectKey, c.S3ObjectKey)
	setString(&config.GeneratorBackend, c.GeneratorBackend)
	setString(&config.GroqAPIKey, c.GroqAPIKey)
	setString(&config.GroqBaseURL, c.GroqBaseURL)
	setString(&config.GroqModel, c.GroqModel)
	setString(&config.AnthropicAPIKey, c.AnthropicAPIKey)
	setString(&config.AnthropicModel, c.AnthropicModel)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

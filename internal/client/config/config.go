package config

import "time"

// Config holds runtime settings for the CLI.
//
// Fields:
//   - ServerURL: scheme://host:port of the HTTP API.
//   - RequestTimeout: upper bound for one API call; generation can be slow.
//   - Style: glamour style used to render markdown results.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	Style          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.RequestTimeout = 90 * time.Second
	c.Style = "auto"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

package config

import "time"

// Config holds runtime settings for the kbcli client.
//
// Fields:
//   - ServerBaseURL: base URL of the knowledge-base backend.
//   - RequestTimeout: per-request HTTP timeout.
//   - StoreDSN: path/DSN of the local SQLite state database.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	StoreDSN       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:5000"
	c.RequestTimeout = 15 * time.Second
	c.StoreDSN = "kbcli.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file was given) and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

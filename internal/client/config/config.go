package config

import "time"

// Config holds runtime settings for the Don't Panic CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend HTTP API.
//   - CacheDSN: SQLite DSN of the local cache database.
//   - DateRefreshInterval: how often the relative-date labels are recomputed.
//   - ProfileCountdown: how long the incomplete-profile prompt waits before
//     redirecting.
type Config struct {
	ServerBaseURL       string
	CacheDSN            string
	DateRefreshInterval time.Duration
	ProfileCountdown    time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8080"
	c.CacheDSN = "dontpanic.db"
	c.DateRefreshInterval = 60 * time.Second
	c.ProfileCountdown = 5 * time.Second
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

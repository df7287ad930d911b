package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dontpanic-sante/dpcli/internal/flagx"
	"github.com/dontpanic-sante/dpcli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "60s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	ServerBaseURL       string         `json:"server_base_url"`
	CacheDSN            string         `json:"cache_dsn"`
	DateRefreshInterval timex.Duration `json:"date_refresh_interval"`
	ProfileCountdown    timex.Duration `json:"profile_countdown"`
}

// parseJson overlays Config with values loaded from a JSON file selected via
// the -c or -config flags. When no file is given it returns without touching
// the config; a file that cannot be read or parsed panics.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.ServerBaseURL = jc.ServerBaseURL
	cfg.CacheDSN = jc.CacheDSN
	cfg.DateRefreshInterval = time.Duration(jc.DateRefreshInterval.Duration)
	cfg.ProfileCountdown = time.Duration(jc.ProfileCountdown.Duration)
}

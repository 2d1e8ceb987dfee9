package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/kbcli/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Timeouts
// are given in whole seconds to keep the file format simple.
type JsonConfig struct {
	ServerBaseURL      string `json:"server_base_url"`
	RequestTimeoutSecs int    `json:"request_timeout_secs"`
	StoreDSN           string `json:"store_dsn"`
}

// parseJson overlays Config with values from the JSON file named by the
// -c/-config flags. When no file is given the function is a no-op. Only
// fields present in the file override the current values.
//
// Read or unmarshal errors panic; config problems should stop the program
// before anything else runs.
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

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.RequestTimeoutSecs > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeoutSecs) * time.Second
	}
	if jc.StoreDSN != "" {
		cfg.StoreDSN = jc.StoreDSN
	}
}

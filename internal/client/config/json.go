package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/learnlink/learnlink/internal/flagx"
	"github.com/learnlink/learnlink/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals use
// timex.Duration, so they may be strings like "3s" or integer nanoseconds.
type JsonConfig struct {
	ServerURL           string         `json:"server_url"`
	SiteURL             string         `json:"site_url"`
	DatabasePath        string         `json:"database_path"`
	PrefsPath           string         `json:"prefs_path"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	GenerationTimeout   timex.Duration `json:"generation_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	SearchDebounce      timex.Duration `json:"search_debounce"`
	RequestsPerSecond   *float64       `json:"requests_per_second"`
	LogLevel            string         `json:"log_level"`
	Ephemeral           *bool          `json:"ephemeral"`
}

// parseJson overlays Config with the values present in the JSON file named
// by -c or -config. Without that flag nothing changes.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.ServerURL, jc.ServerURL)
	setString(&cfg.SiteURL, jc.SiteURL)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.PrefsPath, jc.PrefsPath)
	setString(&cfg.LogLevel, jc.LogLevel)

	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.GenerationTimeout.Duration > 0 {
		cfg.GenerationTimeout = jc.GenerationTimeout.Duration
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.SearchDebounce.Duration > 0 {
		cfg.SearchDebounce = jc.SearchDebounce.Duration
	}
	if jc.RequestsPerSecond != nil {
		cfg.RequestsPerSecond = *jc.RequestsPerSecond
	}
	if jc.Ephemeral != nil {
		cfg.Ephemeral = *jc.Ephemeral
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

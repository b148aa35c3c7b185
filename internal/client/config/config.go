package config

import (
	"time"
)

// Config holds runtime settings for the LearnLink CLI.
//
// Durations are time.Duration values; the JSON file and flags use their own
// units (see doc.go).
type Config struct {
	ServerURL    string
	// SiteURL is the public web address used in profile share links.
	SiteURL      string
	DatabasePath string
	PrefsPath    string

	RequestTimeout    time.Duration
	GenerationTimeout time.Duration
	// OnlineCheckInterval is how often the backend is pinged for the
	// online/offline indicator.
	OnlineCheckInterval time.Duration
	SearchDebounce      time.Duration

	// RequestsPerSecond paces backend calls; <= 0 disables pacing.
	RequestsPerSecond float64
	LogLevel          string
	// Ephemeral keeps the session token in memory only.
	Ephemeral bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8000"
	c.SiteURL = "http://localhost:3000"
	c.DatabasePath = "learnlink.db"
	c.PrefsPath = "~/.config/learnlink/prefs.toml"
	c.RequestTimeout = 30 * time.Second
	c.GenerationTimeout = 100 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.SearchDebounce = 500 * time.Millisecond
	c.RequestsPerSecond = 5
	c.LogLevel = "info"
	c.Ephemeral = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if -c/-config is given) and command-line flags. Later sources take
// precedence over earlier ones. args are the program arguments without the
// program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Package config loads runtime configuration for the LearnLink CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string    backend base URL (http://localhost:8000)
//	-d string    local database file (learnlink.db)
//	-p string    preferences file (~/.config/learnlink/prefs.toml)
//	-t int       request timeout, seconds (30)
//	-g int       AI generation timeout, seconds (100)
//	-i int       online status check interval, seconds (3)
//	-r float     requests per second (5)
//	-l string    log level (info)
//	-ephemeral   keep the session token in memory only
//
// # JSON schema
//
// Only the keys present in the file are applied. Intervals use
// timex.Duration, so values can be strings like "3s" or integer nanoseconds:
//
//	{
//	  "server_url": "https://api.learnlink.app",
//	  "site_url": "https://learnlink.app",
//	  "database_path": "/var/lib/learnlink/client.db",
//	  "request_timeout": "30s",
//	  "generation_timeout": "100s",
//	  "online_check_interval": "3s",
//	  "search_debounce": "500ms",
//	  "requests_per_second": 5,
//	  "log_level": "debug"
//	}
//
// The package does not read environment variables.
package config

package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/learnlink/learnlink/internal/flagx"
)

var knownFlags = []string{"-a", "-d", "-p", "-t", "-g", "-i", "-r", "-l", "-ephemeral"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string    backend base URL
//	-d string    path of the local SQLite file
//	-p string    path of the preferences file
//	-t int       request timeout (seconds)
//	-g int       timeout of AI generation calls (seconds)
//	-i int       online check interval (seconds)
//	-r float     requests per second towards the backend
//	-l string    log level
//	-ephemeral   keep the session token in memory only
//
// args are filtered with flagx.FilterArgs first, so flags owned by other
// loaders (like -c) do not interfere.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("learnlink", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "backend base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database file")
	fs.StringVar(&cfg.PrefsPath, "p", cfg.PrefsPath, "path to the preferences file")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	generationTimeout := fs.Int("g", int(cfg.GenerationTimeout.Seconds()), "AI generation timeout (in seconds)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.Float64Var(&cfg.RequestsPerSecond, "r", cfg.RequestsPerSecond, "requests per second")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.Ephemeral, "ephemeral", cfg.Ephemeral, "do not persist the session token")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	// only flags given on the command line replace the seconds durations,
	// so sub-second values from the JSON file survive
	durations := map[string]struct {
		v   int
		dst *time.Duration
	}{
		"t": {*requestTimeout, &cfg.RequestTimeout},
		"g": {*generationTimeout, &cfg.GenerationTimeout},
		"i": {*onlineCheckInterval, &cfg.OnlineCheckInterval},
	}
	var err error
	fs.Visit(func(f *flag.Flag) {
		d, ok := durations[f.Name]
		if !ok || err != nil {
			return
		}
		if d.v <= 0 {
			err = fmt.Errorf("parse flags: -%s must be positive, got %d", f.Name, d.v)
			return
		}
		*d.dst = time.Duration(d.v) * time.Second
	})
	return err
}

package config

import (
	"flag"
	"os"
	"time"

	"github.com/dontpanic-sante/dpcli/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend API (default from Config)
//	-d string   SQLite DSN of the local cache (default from Config)
//	-r int      date refresh interval in seconds (default from Config)
//	-p int      profile prompt countdown in seconds (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-r", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the backend API")
	fs.StringVar(&cfg.CacheDSN, "d", cfg.CacheDSN, "SQLite DSN of the local cache")
	refresh := fs.Int("r", int(cfg.DateRefreshInterval.Seconds()), "date refresh interval (in seconds)")
	countdown := fs.Int("p", int(cfg.ProfileCountdown.Seconds()), "profile prompt countdown (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.DateRefreshInterval = time.Duration(*refresh) * time.Second
	cfg.ProfileCountdown = time.Duration(*countdown) * time.Second
}

package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/kbcli/internal/flagx"
)

// parseFlags overlays Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the backend (default from Config)
//	-t int      request timeout in seconds (default from Config)
//	-d string   local state database path (default from Config)
//
// os.Args is filtered through flagx.FilterArgs so flags owned by other
// components do not break parsing here.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the knowledge-base server")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StoreDSN, "d", cfg.StoreDSN, "path to the local state database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}

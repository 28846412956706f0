package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/userdir/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// Flags that belong to other components (such as -c) are filtered out first.
// An unparsable value panics, like the JSON loader.
func parseFlags(cfg *Config) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DirectoryURL, "u", cfg.DirectoryURL, "base URL of the people directory")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "fetch timeout (in seconds, 0 disables)")
	fs.StringVar(&cfg.ListenAddr, "l", cfg.ListenAddr, "listen address of the web front end")
	renderWait := fs.Int("w", int(cfg.RenderWait.Seconds()), "render wait (in seconds)")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")

	if err := flagx.ParseFiltered(fs, os.Args[1:]); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.RenderWait = time.Duration(*renderWait) * time.Second
}

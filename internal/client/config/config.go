package config

import "time"

// Config holds runtime settings shared by the REPL and the web front end.
//
// Fields:
//   - DirectoryURL: base URL of the remote people directory.
//   - RequestTimeout: per-fetch deadline; zero disables it.
//   - ListenAddr: address the web front end binds to.
//   - RenderWait: how long a front end waits for an outstanding page
//     before rendering whatever state the controller is in.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	DirectoryURL   string
	RequestTimeout time.Duration
	ListenAddr     string
	RenderWait     time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DirectoryURL = "https://dummyjson.com/users"
	c.RequestTimeout = 15 * time.Second
	c.ListenAddr = "127.0.0.1:8080"
	c.RenderWait = 5 * time.Second
	c.LogLevel = "info"
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

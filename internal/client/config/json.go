package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/userdir/internal/flagx"
	"github.com/dmitrijs2005/userdir/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Pointer fields
// tell "absent" apart from "zero" so a partial file only overrides what it
// names.
type JsonConfig struct {
	DirectoryURL   *string         `json:"directory_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	ListenAddr     *string         `json:"listen_addr"`
	RenderWait     *timex.Duration `json:"render_wait"`
	LogLevel       *string         `json:"log_level"`
}

// parseJson overlays cfg with the file named by -c/-config, if any.
// Read and decode errors panic; the caller decides whether to recover.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	if jc.DirectoryURL != nil {
		cfg.DirectoryURL = *jc.DirectoryURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.ListenAddr != nil {
		cfg.ListenAddr = *jc.ListenAddr
	}
	if jc.RenderWait != nil {
		cfg.RenderWait = jc.RenderWait.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}

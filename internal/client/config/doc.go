// Package config loads runtime configuration for the userdir front ends.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-u string   base URL of the remote people directory
//	-t int      fetch timeout in seconds (0 disables the timeout)
//	-l string   listen address of the web front end
//	-w int      seconds to wait for an outstanding page before rendering
//	-v string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations are timex.Duration values, so either "15s" or integer nanoseconds:
//
//	{
//	  "directory_url": "https://dummyjson.com/users",
//	  "request_timeout": "15s",
//	  "listen_addr": "127.0.0.1:8080",
//	  "render_wait": "5s",
//	  "log_level": "info"
//	}
//
// Fields missing from the JSON file keep their previous value.
package config

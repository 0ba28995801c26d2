// Package config loads runtime configuration for the daheeh CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are read as YAML, everything else as JSON.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   path of the local SQLite database (":memory:" keeps nothing)
//	-k string   password hasher for new accounts: argon2id, bcrypt or sha256
//	-t int      toast lifetime in milliseconds
//	-n int      number of toasts shown at once
//	-l string   log level: debug, info, warn or error
//	-f string   log format: text, json or zap
//
// # File schema
//
// Durations use timex.Duration, so they may be strings like "3s" or
// integer nanoseconds. Keys left out keep their previous value:
//
//	{
//	  "database_path": "daheeh.db",
//	  "hasher": "argon2id",
//	  "toast_ttl": "3s",
//	  "visible_toasts": 3,
//	  "log_level": "info",
//	  "log_format": "text"
//	}
package config

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/farag11/daheeh/internal/flagx"
	"github.com/farag11/daheeh/internal/timex"
)

// fileConfig is a DTO used exclusively for decoding config files. Pointer
// fields distinguish "absent" from zero.
type fileConfig struct {
	DatabasePath  *string         `json:"database_path" yaml:"database_path"`
	Hasher        *string         `json:"hasher" yaml:"hasher"`
	ToastTTL      *timex.Duration `json:"toast_ttl" yaml:"toast_ttl"`
	VisibleToasts *int            `json:"visible_toasts" yaml:"visible_toasts"`
	LogLevel      *string         `json:"log_level" yaml:"log_level"`
	LogFormat     *string         `json:"log_format" yaml:"log_format"`
}

// parseFile overlays cfg with the file named by -c/-config, if any.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc fileConfig) apply(cfg *Config) {
	if fc.DatabasePath != nil {
		cfg.DatabasePath = *fc.DatabasePath
	}
	if fc.Hasher != nil {
		cfg.Hasher = *fc.Hasher
	}
	if fc.ToastTTL != nil {
		cfg.ToastTTL = fc.ToastTTL.Duration
	}
	if fc.VisibleToasts != nil {
		cfg.VisibleToasts = *fc.VisibleToasts
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.LogFormat != nil {
		cfg.LogFormat = *fc.LogFormat
	}
}

package config

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/farag11/daheeh/internal/cryptox"
	"github.com/farag11/daheeh/internal/logging"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds runtime settings for the daheeh CLI.
type Config struct {
	DatabasePath  string
	Hasher        string
	ToastTTL      time.Duration
	VisibleToasts int
	LogLevel      string
	LogFormat     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "daheeh.db"
	c.Hasher = cryptox.NameArgon2id
	c.ToastTTL = 3 * time.Second
	c.VisibleToasts = 3
	c.LogLevel = "info"
	c.LogFormat = logging.FormatText
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("%w: empty database path", ErrInvalidConfig)
	}
	if _, err := cryptox.Lookup(c.Hasher); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.ToastTTL <= 0 {
		return fmt.Errorf("%w: toast ttl must be positive, got %s", ErrInvalidConfig, c.ToastTTL)
	}
	if c.VisibleToasts <= 0 {
		return fmt.Errorf("%w: visible toasts must be positive, got %d", ErrInvalidConfig, c.VisibleToasts)
	}
	if _, err := logging.New(c.LogFormat, c.LogLevel, io.Discard); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// LoadConfig builds a Config from defaults, the optional config file and
// flags found in args (usually os.Args[1:]). Later sources take precedence.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

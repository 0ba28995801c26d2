package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/farag11/daheeh/internal/flagx"
)

var knownFlags = []string{"-d", "-k", "-t", "-n", "-l", "-f"}

// parseFlags populates Config fields from command-line flags. Only the
// flags listed in knownFlags are considered; everything else in args is
// left for other components.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("daheeh", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local database")
	fs.StringVar(&cfg.Hasher, "k", cfg.Hasher, "password hasher for new accounts")
	ttl := fs.Int64("t", cfg.ToastTTL.Milliseconds(), "toast lifetime (in milliseconds)")
	fs.IntVar(&cfg.VisibleToasts, "n", cfg.VisibleToasts, "number of toasts shown at once")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg.ToastTTL = time.Duration(*ttl) * time.Millisecond
	return nil
}

// Package config resolves runtime settings from the environment and the
// command line. Flags override environment variables.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Usage is printed when the command line cannot be parsed.
const Usage = "Usage: darkharvest [--version] [--plain] [--trace] [--seed <n>] [--width <n>] [--script <file>] [--adventure <name|path>]"

// Config holds every runtime setting.
type Config struct {
	// Adventure is a built-in adventure (menu number, slug or title) or a
	// path to Lua or YAML content. Empty means ask the player.
	Adventure string `env:"DARKHARVEST_ADVENTURE"`
	// Seed seeds the dice. 0 seeds from the clock.
	Seed     int64  `env:"DARKHARVEST_SEED" envDefault:"0"`
	Plain    bool   `env:"DARKHARVEST_PLAIN"`
	Width    int    `env:"DARKHARVEST_WIDTH" envDefault:"80"`
	LogLevel string `env:"DARKHARVEST_LOG_LEVEL" envDefault:"warn"`
	LogFile  string `env:"DARKHARVEST_LOG_FILE"`

	// Flag-only settings.
	Script  string
	Version bool
}

// Load parses the environment, then applies command-line args on top.
func Load(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.ApplyArgs(args); err != nil {
		return Config{}, err
	}
	if cfg.Width < 0 {
		return Config{}, fmt.Errorf("width must not be negative, got %d", cfg.Width)
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyArgs applies command-line flags. Both "--flag value" and
// "--flag=value" forms are accepted; a bare argument names the adventure.
func (c *Config) ApplyArgs(args []string) error {
	for i := 0; i < len(args); i++ {
		name, value, hasValue := strings.Cut(args[i], "=")

		// next returns the flag's value, from "=" or the following arg.
		next := func() (string, error) {
			if hasValue {
				return value, nil
			}
			if i+1 >= len(args) {
				return "", fmt.Errorf("%s requires a value", name)
			}
			i++
			return args[i], nil
		}

		switch name {
		case "--version":
			c.Version = true
		case "--plain":
			c.Plain = true
		case "--trace":
			c.LogLevel = "debug"
		case "--script":
			v, err := next()
			if err != nil {
				return err
			}
			c.Script = v
		case "--adventure":
			v, err := next()
			if err != nil {
				return err
			}
			c.Adventure = v
		case "--seed":
			v, err := next()
			if err != nil {
				return err
			}
			seed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return fmt.Errorf("--seed: %w", err)
			}
			c.Seed = seed
		case "--width":
			v, err := next()
			if err != nil {
				return err
			}
			width, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("--width: %w", err)
			}
			c.Width = width
		default:
			if strings.HasPrefix(args[i], "-") {
				return fmt.Errorf("unknown flag %s", args[i])
			}
			c.Adventure = args[i]
		}
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Logger builds the text logger described by the config. Logs go to
// LogFile when set, otherwise to fallback. The returned close function
// releases the log file.
func (c Config) Logger(fallback io.Writer) (*slog.Logger, func() error, error) {
	level, err := c.Level()
	if err != nil {
		return nil, nil, err
	}

	w, closeFn := fallback, func() error { return nil }
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w, closeFn = f, f.Close
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}

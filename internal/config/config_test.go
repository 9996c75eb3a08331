package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	testutil.AssertEqual(t, "adventure", cfg.Adventure, "")
	testutil.AssertEqual(t, "seed", cfg.Seed, int64(0))
	testutil.AssertEqual(t, "plain", cfg.Plain, false)
	testutil.AssertEqual(t, "width", cfg.Width, 80)
	testutil.AssertEqual(t, "log level", cfg.LogLevel, "warn")
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("DARKHARVEST_ADVENTURE", "clearing")
	t.Setenv("DARKHARVEST_SEED", "42")
	t.Setenv("DARKHARVEST_PLAIN", "true")
	t.Setenv("DARKHARVEST_WIDTH", "60")
	t.Setenv("DARKHARVEST_LOG_LEVEL", "info")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	testutil.AssertEqual(t, "adventure", cfg.Adventure, "clearing")
	testutil.AssertEqual(t, "seed", cfg.Seed, int64(42))
	testutil.AssertEqual(t, "plain", cfg.Plain, true)
	testutil.AssertEqual(t, "width", cfg.Width, 60)
	testutil.AssertEqual(t, "log level", cfg.LogLevel, "info")
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("DARKHARVEST_SEED", "42")
	t.Setenv("DARKHARVEST_ADVENTURE", "clearing")

	cfg, err := Load([]string{"--seed=7", "--adventure", "dark-harvest", "--plain", "--trace", "--script", "run.txt", "--width", "0"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	testutil.AssertEqual(t, "seed", cfg.Seed, int64(7))
	testutil.AssertEqual(t, "adventure", cfg.Adventure, "dark-harvest")
	testutil.AssertEqual(t, "plain", cfg.Plain, true)
	testutil.AssertEqual(t, "log level", cfg.LogLevel, "debug")
	testutil.AssertEqual(t, "script", cfg.Script, "run.txt")
	testutil.AssertEqual(t, "width", cfg.Width, 0)
}

func TestApplyArgs_Positional(t *testing.T) {
	var cfg Config
	if err := cfg.ApplyArgs([]string{"--version", "games/mine"}); err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, "version", cfg.Version, true)
	testutil.AssertEqual(t, "adventure", cfg.Adventure, "games/mine")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
		want string
	}{
		{"bad env seed", map[string]string{"DARKHARVEST_SEED": "many"}, nil, "parse env:"},
		{"missing value", nil, []string{"--script"}, "--script requires a value"},
		{"bad seed flag", nil, []string{"--seed", "x"}, "--seed"},
		{"bad width flag", nil, []string{"--width=wide"}, "--width"},
		{"negative width", nil, []string{"--width", "-3"}, "must not be negative"},
		{"unknown flag", nil, []string{"--fast"}, "unknown flag --fast"},
		{"bad log level", map[string]string{"DARKHARVEST_LOG_LEVEL": "loud"}, nil, "log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(tt.args)
			testutil.AssertErrorContains(t, err, tt.want)
		})
	}
}

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	log, closeFn, err := Config{LogLevel: "warn"}.Logger(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer closeFn()

	log.Info("hidden")
	log.Warn("shown")
	testutil.AssertEqual(t, "info suppressed", strings.Contains(buf.String(), "hidden"), false)
	testutil.AssertEqual(t, "warn written", strings.Contains(buf.String(), "shown"), true)
}

func TestLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dh.log")
	log, closeFn, err := Config{LogLevel: "debug", LogFile: path}.Logger(os.Stderr)
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("into the file", slog.Int("turn", 3))
	if err := closeFn(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, "logged", strings.Contains(string(data), "into the file"), true)
}

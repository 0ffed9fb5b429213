package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	logInternal "github.com/AlexStarov/labelprinter-GoLang-lib/log"
)

// Environment switches understood by FromEnv.
const (
	EnvDevModeNoMargins = "LABELLE_DEV_MODE_NO_MARGINS"
	EnvVerbose          = "LABELLE_VERBOSE"
)

// Config is the explicit configuration value handed to renderers and
// printers. Nothing in the library reads process state on its own.
type Config struct {
	TapeSizeMM  int     `toml:"tape_size_mm"`
	Justify     string  `toml:"justify"`
	MarginPx    int     `toml:"margin_px"`
	MinLengthMM float64 `toml:"min_length_mm"`

	// MaxLengthMM caps the label length when positive. FixedLengthMM sets
	// both limits and excludes the other two.
	MaxLengthMM   float64 `toml:"max_length_mm"`
	FixedLengthMM float64 `toml:"fixed_length_mm"`

	FontPath      string  `toml:"font_path"`
	FontSizeRatio float64 `toml:"font_size_ratio"`
	FramePx       int     `toml:"frame_px"`

	// Synwait is the number of lines sent between two status polls on the
	// legacy protocol. Zero disables pacing.
	Synwait int `toml:"synwait"`

	Retry RetryConfig `toml:"retry"`
	Log   LogConfig   `toml:"log"`

	// DevModeNoMargins drops every user visible margin. It only comes from
	// the environment.
	DevModeNoMargins bool `toml:"-"`
}

type RetryConfig struct {
	Attempts int    `toml:"attempts"`
	Delay    string `toml:"delay"`
}

type LogConfig struct {
	Verbose bool   `toml:"verbose"`
	Dir     string `toml:"dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TapeSizeMM:    12,
		Justify:       "center",
		MarginPx:      56,
		FontSizeRatio: 0.9,
		Synwait:       64,
		Retry: RetryConfig{
			Attempts: 10,
			Delay:    "500ms",
		},
	}
}

// Load reads a TOML file over the defaults. An empty path or a missing file
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logInternal.L().Debug("config file not found")
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown keys %v", path, undecoded)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv applies a dotenv file (if present) and the LABELLE_* switches.
// It is meant to be called once at startup by the program entry point.
func FromEnv(cfg Config, dotenvFiles ...string) Config {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			logInternal.S().Warnf("dotenv %s: %v", f, err)
		}
	}
	if isEnvVarTrue(EnvDevModeNoMargins) {
		cfg.DevModeNoMargins = true
	}
	if isEnvVarTrue(EnvVerbose) {
		cfg.Log.Verbose = true
	}
	return cfg
}

func isEnvVarTrue(name string) bool {
	val, ok := os.LookupEnv(name)
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true":
		return true
	}
	return false
}

// Validate checks value ranges.
func Validate(cfg Config) error {
	if cfg.TapeSizeMM <= 0 {
		return fmt.Errorf("tape_size_mm must be positive, got %d", cfg.TapeSizeMM)
	}
	switch cfg.Justify {
	case "left", "center", "right":
	default:
		return fmt.Errorf("justify must be left, center or right, got %q", cfg.Justify)
	}
	if cfg.MarginPx < 0 {
		return fmt.Errorf("margin_px must not be negative, got %d", cfg.MarginPx)
	}
	if cfg.MinLengthMM < 0 {
		return fmt.Errorf("min_length_mm must not be negative, got %v", cfg.MinLengthMM)
	}
	if cfg.MaxLengthMM < 0 || cfg.FixedLengthMM < 0 {
		return fmt.Errorf("max_length_mm and fixed_length_mm must not be negative, got %v and %v", cfg.MaxLengthMM, cfg.FixedLengthMM)
	}
	if cfg.FixedLengthMM > 0 && (cfg.MinLengthMM != 0 || cfg.MaxLengthMM != 0) {
		return errors.New("fixed_length_mm cannot be combined with min_length_mm or max_length_mm")
	}
	if cfg.MaxLengthMM > 0 && cfg.MaxLengthMM < cfg.MinLengthMM {
		return fmt.Errorf("max_length_mm %v is less than min_length_mm %v", cfg.MaxLengthMM, cfg.MinLengthMM)
	}
	if cfg.FontSizeRatio <= 0 || cfg.FontSizeRatio > 1 {
		return fmt.Errorf("font_size_ratio must be in (0, 1], got %v", cfg.FontSizeRatio)
	}
	if cfg.Synwait < 0 {
		return fmt.Errorf("synwait must not be negative, got %d", cfg.Synwait)
	}
	if cfg.Retry.Attempts < 1 {
		return fmt.Errorf("retry.attempts must be at least 1, got %d", cfg.Retry.Attempts)
	}
	if _, err := cfg.RetryDelay(); err != nil {
		return err
	}
	return nil
}

// RetryDelay parses Retry.Delay.
func (c Config) RetryDelay() (time.Duration, error) {
	if strings.TrimSpace(c.Retry.Delay) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(c.Retry.Delay))
	if err != nil {
		return 0, fmt.Errorf("parse retry.delay: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("retry.delay must not be negative, got %v", d)
	}
	return d, nil
}

// LengthLimitsMM returns the minimum and maximum label length. A zero
// maximum means unlimited.
func (c Config) LengthLimitsMM() (minMM, maxMM float64) {
	if c.FixedLengthMM > 0 {
		return c.FixedLengthMM, c.FixedLengthMM
	}
	return c.MinLengthMM, c.MaxLengthMM
}

// LogOptions converts the log section for log.Init.
func (c Config) LogOptions() logInternal.Options {
	return logInternal.Options{Verbose: c.Log.Verbose, Dir: c.Log.Dir}
}

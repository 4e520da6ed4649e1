// Package config loads vmafplot defaults from an optional TOML file.
//
// Every value can also be given on the command line; flags the user sets explicitly win over
// the file. A missing file at the default location is not an error.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Plot holds plotting defaults.
type Plot struct {
	Line      bool    `toml:"line"`
	Overlay   bool    `toml:"overlay"`
	Verbosity int     `toml:"verbosity"`
	Autoscale bool    `toml:"autoscale"`
	FrameRate float64 `toml:"frame_rate"`
	StrictIDs bool    `toml:"strict_identifiers"`
}

// Output holds image size settings for saved and displayed figures.
type Output struct {
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	DPI    float64 `toml:"dpi"`
}

// Logging holds log settings.
type Logging struct {
	Level string `toml:"level"`
}

// Config is the full configuration file.
type Config struct {
	Plot    Plot    `toml:"plot"`
	Output  Output  `toml:"output"`
	Logging Logging `toml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Output:  Output{Width: 1600, Height: 900, DPI: 100},
		Logging: Logging{Level: "info"},
	}
}

// DefaultConfigPath returns ~/.config/vmafplot/config.toml.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/vmafplot/config.toml")
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}

// Load reads the configuration at path, or at the default location when path is empty.
// It returns the config, the path that was used and whether a file was actually read.
// An explicit path that does not exist is an error; a missing default file is not.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()
	explicit := strings.TrimSpace(path) != ""
	resolved := strings.TrimSpace(path)
	if !explicit {
		p, err := DefaultConfigPath()
		if err != nil {
			return nil, "", false, err
		}
		resolved = p
	} else {
		p, err := ExpandPath(resolved)
		if err != nil {
			return nil, "", false, err
		}
		resolved = p
	}

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		cfg.normalize()
		return &cfg, resolved, false, nil
	case err != nil:
		return nil, "", false, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := toml.NewDecoder(file).DisallowUnknownFields().Decode(&cfg); err != nil {
		return nil, "", false, fmt.Errorf("parse config %s: %w", resolved, err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, true, nil
}

func (c *Config) normalize() {
	def := Default()
	if c.Output.Width <= 0 {
		c.Output.Width = def.Output.Width
	}
	if c.Output.Height <= 0 {
		c.Output.Height = def.Output.Height
	}
	if c.Output.DPI <= 0 {
		c.Output.DPI = def.Output.DPI
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Plot.Verbosity < 0 || c.Plot.Verbosity > 2 {
		return fmt.Errorf("plot.verbosity: must be 0, 1 or 2 (got %d)", c.Plot.Verbosity)
	}
	if c.Plot.FrameRate < 0 {
		return fmt.Errorf("plot.frame_rate: must not be negative (got %g)", c.Plot.FrameRate)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

// SampleConfig is written by `vmafplot config init`.
const SampleConfig = `# vmafplot defaults. Command-line flags override these values.

[plot]
line = false                 # line plots instead of scatter plots
overlay = false              # put every input on one figure family
verbosity = 0                # 1: mean & std.dev., 2: plus min & max
autoscale = false            # autoscale the y axis instead of 0..100
frame_rate = 0               # >0 shows time in seconds on the x axis
strict_identifiers = false   # abandon a file on the first unrecognized identifier

[output]
width = 1600
height = 900
dpi = 100

[logging]
level = "info"               # debug, info, warn, error
`

// CreateSample writes SampleConfig to path.
func CreateSample(path string) error {
	return os.WriteFile(path, []byte(SampleConfig), 0o644)
}

// Package config holds the settings of the learngl window.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvFile names the environment variable consulted for a config file when
// -config is not given.
const EnvFile = "LEARNGL_CONFIG"

type GLVersion struct {
	Major int  `yaml:"major"`
	Minor int  `yaml:"minor"`
	Core  bool `yaml:"core"`
}

type Config struct {
	Title string `yaml:"title"`
	// Zero width or height sizes the window to three quarters of the screen.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	GL GLVersion `yaml:"gl"`

	FrameRate  int        `yaml:"frame_rate"`
	ClearColor [4]float32 `yaml:"clear_color,flow"`

	// Debug enables per-frame timing logs.
	Debug bool `yaml:"debug"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Title:      "Learn GL",
		GL:         GLVersion{Major: 3, Minor: 3, Core: true},
		FrameRate:  60,
		ClearColor: [4]float32{0.17, 0.17, 0.17, 1.0},
	}
}

var (
	ErrFrameRate   = errors.New("frame rate must be positive")
	ErrWindowSize  = errors.New("window size must not be negative")
	ErrCoreProfile = errors.New("core profile requires OpenGL 3.2 or newer")
	ErrUsage       = errors.New("invalid command line")
)

func (c Config) Validate() error {
	if c.FrameRate <= 0 {
		return fmt.Errorf("%w: %d", ErrFrameRate, c.FrameRate)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: %dx%d", ErrWindowSize, c.Width, c.Height)
	}
	if c.GL.Core && (c.GL.Major < 3 || (c.GL.Major == 3 && c.GL.Minor < 2)) {
		return fmt.Errorf("%w: requested %d.%d", ErrCoreProfile, c.GL.Major, c.GL.Minor)
	}
	return nil
}

// LoadFile overlays the YAML file at path onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Parse builds a Config from defaults, an optional YAML file and flags, in
// increasing precedence. With no arguments and no LEARNGL_CONFIG the defaults
// are returned unchanged.
func Parse(name string, args []string) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	file := fs.String("config", os.Getenv(EnvFile), "path to a YAML config file")
	title := fs.String("title", "", "window title")
	width := fs.Int("width", -1, "window width in pixels (0 for 3/4 of the screen)")
	height := fs.Int("height", -1, "window height in pixels (0 for 3/4 of the screen)")
	rate := fs.Int("fps", 0, "target frame rate")
	debug := fs.Bool("debug", false, "log per-frame timings")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}

	if *file != "" {
		if err := cfg.LoadFile(*file); err != nil {
			return Config{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			cfg.Title = *title
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "fps":
			cfg.FrameRate = *rate
		case "debug":
			cfg.Debug = *debug
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Package config loads the settings shared by the command line tools
// from a YAML file, and lets command line flags override them.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/thelolagemann/gomeds/internal/types"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the name of the configuration file looked up when no
// path is given.
const DefaultFilename = "gomeds.yaml"

// Config holds every tunable of a run.
type Config struct {
	Version int `yaml:"version"`

	Pipeline PipelineConfig `yaml:"pipeline"`
	Display  DisplayConfig  `yaml:"display"`
	Output   OutputConfig   `yaml:"output"`
	Log      LogConfig      `yaml:"log"`
}

// PipelineConfig configures the display pipeline.
type PipelineConfig struct {
	// GeometryBudget is the number of cycles the geometry engine may
	// spend per scanline.
	GeometryBudget int  `yaml:"geometryBudget"`
	FrameSkip      int  `yaml:"frameSkip,omitempty"`
	FrameLimiter   bool `yaml:"frameLimiter"`
}

// DisplayConfig selects the display driver.
type DisplayConfig struct {
	Driver string `yaml:"driver"`
	Scale  int    `yaml:"scale"`
}

// OutputConfig configures headless runs.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
	Frames int    `yaml:"frames"`
	// Every dumps one frame in every n; 0 dumps the last frame only.
	Every int    `yaml:"every,omitempty"`
	Plot  string `yaml:"plot,omitempty"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	c := Config{Pipeline: PipelineConfig{FrameLimiter: true}}
	c.normalize()
	return c
}

func (c *Config) normalize() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Pipeline.GeometryBudget <= 0 {
		c.Pipeline.GeometryBudget = types.CyclesPerScanline
	}
	if c.Pipeline.FrameSkip < 0 {
		c.Pipeline.FrameSkip = 0
	}
	if c.Display.Driver == "" {
		c.Display.Driver = "auto"
	}
	if c.Display.Scale <= 0 {
		c.Display.Scale = 2
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "."
	}
	c.Output.Format = strings.ToLower(c.Output.Format)
	if c.Output.Format == "" {
		c.Output.Format = "png"
	}
	if c.Output.Frames <= 0 {
		c.Output.Frames = 1
	}
	if c.Output.Every < 0 {
		c.Output.Every = 0
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate reports settings that cannot be normalised.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "png", "bmp":
	default:
		return fmt.Errorf("output format %q: must be png or bmp", c.Output.Format)
	}
	return nil
}

// Load reads the configuration at path. A missing file at the default
// path yields the defaults.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFilename
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Save writes c to path as YAML.
func Save(path string, c Config) error {
	c.normalize()
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(&c); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// RegisterFlags binds the fields of c to flags on fs. Flags default to
// the values already in c, so parsing only overrides what is given.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Pipeline.GeometryBudget, "gx-budget", c.Pipeline.GeometryBudget, "geometry engine cycles per scanline")
	fs.IntVar(&c.Pipeline.FrameSkip, "frameskip", c.Pipeline.FrameSkip, "draw one in every n+1 frames")
	fs.BoolVar(&c.Pipeline.FrameLimiter, "limit", c.Pipeline.FrameLimiter, "limit the frame rate to the hardware refresh rate")
	fs.StringVar(&c.Display.Driver, "driver", c.Display.Driver, "the display driver to use")
	fs.StringVar(&c.Output.Dir, "out", c.Output.Dir, "directory frame dumps are written to")
	fs.StringVar(&c.Output.Format, "format", c.Output.Format, "frame dump format, png or bmp")
	fs.IntVar(&c.Output.Frames, "frames", c.Output.Frames, "number of frames to run headless")
	fs.IntVar(&c.Output.Every, "every", c.Output.Every, "dump one frame in every n")
	fs.StringVar(&c.Output.Plot, "plot", c.Output.Plot, "write a frame time plot to this file")
	fs.StringVar(&c.Log.Level, "log", c.Log.Level, "log level")
}

// Finish normalises c after flags were parsed.
func (c *Config) Finish() error {
	c.normalize()
	return c.Validate()
}

// FromArgs loads the file named by -config in args, then parses args
// again so that flags override the file. extra registers the flags that
// are not part of the configuration; it is called for both passes.
func FromArgs(name string, args []string, extra func(fs *flag.FlagSet, c *Config)) (Config, []string, error) {
	probe := flag.NewFlagSet(name, flag.ContinueOnError)
	probe.SetOutput(io.Discard)
	path := probe.String("config", "", "")
	scratch := Default()
	scratch.RegisterFlags(probe)
	if extra != nil {
		extra(probe, &scratch)
	}
	// errors are reported by the second pass
	_ = probe.Parse(args)

	c, err := Load(*path)
	if err != nil {
		return Config{}, nil, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.String("config", *path, "YAML configuration file (default "+DefaultFilename+")")
	c.RegisterFlags(fs)
	if extra != nil {
		extra(fs, &c)
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, nil, err
	}
	return c, fs.Args(), c.Finish()
}

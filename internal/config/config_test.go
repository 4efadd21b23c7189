package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/thelolagemann/gomeds/internal/types"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.Pipeline.GeometryBudget != types.CyclesPerScanline {
		t.Errorf("unexpected budget %d", c.Pipeline.GeometryBudget)
	}
	if !c.Pipeline.FrameLimiter || c.Display.Driver != "auto" || c.Output.Format != "png" || c.Output.Frames != 1 {
		t.Errorf("unexpected defaults %+v", c)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gomeds.yaml")
	data := "pipeline:\n  frameSkip: 2\n  frameLimiter: false\noutput:\n  format: BMP\n  frames: 30\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Pipeline.FrameSkip != 2 || c.Pipeline.FrameLimiter {
		t.Errorf("pipeline settings not loaded: %+v", c.Pipeline)
	}
	if c.Output.Format != "bmp" || c.Output.Frames != 30 {
		t.Errorf("output settings not loaded: %+v", c.Output)
	}
	// unset fields keep their defaults
	if c.Pipeline.GeometryBudget != types.CyclesPerScanline || c.Display.Scale != 2 {
		t.Errorf("defaults lost: %+v", c)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing explicit file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	_ = os.WriteFile(bad, []byte("output:\n  format: gif\n"), 0o644)
	if _, err := Load(bad); err == nil {
		t.Error("expected an error for an unsupported format")
	}

	garbage := filepath.Join(dir, "garbage.yaml")
	_ = os.WriteFile(garbage, []byte("pipeline: [1, 2"), 0o644)
	if _, err := Load(garbage); err == nil {
		t.Error("expected a parse error")
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "gomeds.yaml")
	c := Default()
	c.Display.Driver = "ebiten"
	c.Output.Plot = "frames.png"
	if err := Save(path, c); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != c {
		t.Errorf("expected %+v, got %+v", c, got)
	}
}

func TestRegisterFlags(t *testing.T) {
	c := Default()
	c.Output.Frames = 10
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(fs)
	if err := fs.Parse([]string{"-frameskip", "3", "-format", "BMP"}); err != nil {
		t.Fatal(err)
	}
	if err := c.Finish(); err != nil {
		t.Fatal(err)
	}
	if c.Pipeline.FrameSkip != 3 || c.Output.Format != "bmp" {
		t.Errorf("flags not applied: %+v", c)
	}
	if c.Output.Frames != 10 {
		t.Errorf("file value overridden without a flag: %d", c.Output.Frames)
	}
}

func TestFromArgs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("pipeline:\n  frameSkip: 2\noutput:\n  frames: 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var scene string
	extra := func(fs *flag.FlagSet, c *Config) {
		fs.StringVar(&scene, "scene", "", "scene")
	}
	c, rest, err := FromArgs("test", []string{"-frames", "5", "-config", path, "-scene", "a.lua", "tail"}, extra)
	if err != nil {
		t.Fatal(err)
	}
	if c.Pipeline.FrameSkip != 2 || c.Output.Frames != 5 {
		t.Errorf("expected file frameskip and flag frames, got %+v", c)
	}
	if scene != "a.lua" || len(rest) != 1 || rest[0] != "tail" {
		t.Errorf("extra flags not parsed: %q %v", scene, rest)
	}

	if _, _, err := FromArgs("test", []string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}, nil); err == nil {
		t.Error("expected an error for a missing explicit config")
	}
	if _, _, err := FromArgs("test", []string{"-format", "gif"}, nil); err == nil {
		t.Error("expected a validation error")
	}
}

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const scene = `
write32(reg.DISPCNT, 0x10000 + 0x100 + 8)

function frame(n)
  gx("POLYGON_ATTR", 0xC0 + 31 * 0x10000)
  color(0, 31, 0)
  gx("BEGIN_VTXS", 0)
  vtx(-0.5, -0.5)
  vtx(0.5, -0.5)
  vtx(0, 0.5)
  gx("SWAP_BUFFERS", 0)
end
`

func TestRun_Headless(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.lua")
	if err := os.WriteFile(path, []byte(scene), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out")
	args := []string{
		"-scene", path, "-frames", "3", "-every", "2", "-out", out,
		"-format", "bmp", "-plot", filepath.Join(dir, "plot.png"),
		"-save-config", filepath.Join(dir, "saved.yaml"),
	}

	var stdout, stderr bytes.Buffer
	if err := run(args, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v\n%s", err, stderr.String())
	}
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 hash lines, got %q", stdout.String())
	}
	for _, f := range []string{"out/frame_00001.bmp", "plot.png", "saved.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			t.Errorf("expected %s: %v", f, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "frame_00002.bmp")); !errors.Is(err, os.ErrNotExist) {
		t.Error("frame 2 should not have been dumped")
	}

	// the same scene renders the same frames
	var again bytes.Buffer
	if err := run([]string{"-scene", path, "-frames", "3", "-out", out}, &again, &stderr); err != nil {
		t.Fatal(err)
	}
	if again.String() != stdout.String() {
		t.Errorf("hashes differ between runs:\n%s\n%s", stdout.String(), again.String())
	}
}

func TestRun_Errors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(nil, &stdout, &stderr); err == nil {
		t.Error("expected an error without a scene")
	}
	if err := run([]string{"-scene", filepath.Join(t.TempDir(), "missing.lua")}, &stdout, &stderr); err == nil {
		t.Error("expected an error for a missing scene")
	}
}

package perf

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gonum.org/v1/plot/vg"
)

func TestRecorder_Ring(t *testing.T) {
	r := NewRecorder(3)
	for i := 0; i < 5; i++ {
		r.Add(Sample{Frame: uint64(i), Duration: time.Duration(i+1) * time.Millisecond})
	}
	if r.Len() != 3 {
		t.Fatalf("expected 3 samples, got %d", r.Len())
	}
	s := r.Samples()
	if s[0].Frame != 2 || s[2].Frame != 4 {
		t.Errorf("expected frames 2-4 oldest first, got %v", s)
	}
	if avg := r.Average(); avg != 4*time.Millisecond {
		t.Errorf("expected an average of 4ms, got %v", avg)
	}
	if ft := r.FrameTimes(); len(ft) != 3 || ft[0] != 3*time.Millisecond {
		t.Errorf("unexpected frame times %v", ft)
	}
}

func TestRecorder_Empty(t *testing.T) {
	r := NewRecorder(0)
	if r.Average() != 0 || r.Len() != 0 {
		t.Error("expected an empty recorder")
	}
}

func TestRecorder_Save(t *testing.T) {
	r := NewRecorder(10)
	for i := 0; i < 10; i++ {
		r.Add(Sample{Frame: uint64(i), Duration: 16 * time.Millisecond, Polygons: i * 10})
	}
	path := filepath.Join(t.TempDir(), "frames.png")
	if err := r.Save(path, 4*vg.Inch, 3*vg.Inch); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("expected a plot file, got %v", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
	if err := r.Draw(img); err != nil {
		t.Fatal(err)
	}
}

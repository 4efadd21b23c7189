// Package perf records per-frame statistics of the display pipeline and
// plots them.
package perf

import (
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// DefaultCapacity is the number of samples kept by NewRecorder(0).
const DefaultCapacity = 600

// Sample describes one frame.
type Sample struct {
	Frame    uint64
	Duration time.Duration
	Polygons int
	Vertices int
}

// Recorder keeps the most recent samples in a ring.
type Recorder struct {
	mu      sync.Mutex
	samples []Sample
	next    int
	full    bool
}

// NewRecorder returns a Recorder that keeps capacity samples.
func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Recorder{samples: make([]Sample, capacity)}
}

// Add records s, dropping the oldest sample when full.
func (r *Recorder) Add(s Sample) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples[r.next] = s
	r.next++
	if r.next == len(r.samples) {
		r.next = 0
		r.full = true
	}
}

// Len returns the number of samples held.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.full {
		return len(r.samples)
	}
	return r.next
}

// Samples returns the held samples, oldest first.
func (r *Recorder) Samples() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.full {
		return append([]Sample(nil), r.samples[:r.next]...)
	}
	out := make([]Sample, 0, len(r.samples))
	out = append(out, r.samples[r.next:]...)
	return append(out, r.samples[:r.next]...)
}

// FrameTimes returns the durations of the held samples, oldest first.
func (r *Recorder) FrameTimes() []time.Duration {
	samples := r.Samples()
	out := make([]time.Duration, len(samples))
	for i, s := range samples {
		out[i] = s.Duration
	}
	return out
}

// Average returns the mean frame duration, or 0 without samples.
func (r *Recorder) Average() time.Duration {
	samples := r.Samples()
	if len(samples) == 0 {
		return 0
	}
	var total time.Duration
	for _, s := range samples {
		total += s.Duration
	}
	return total / time.Duration(len(samples))
}

// Plot builds a plot of frame time in milliseconds and polygon count
// against the frame number.
func (r *Recorder) Plot() (*plot.Plot, error) {
	samples := r.Samples()
	times := make(plotter.XYs, len(samples))
	polygons := make(plotter.XYs, len(samples))
	for i, s := range samples {
		times[i].X = float64(s.Frame)
		times[i].Y = float64(s.Duration) / float64(time.Millisecond)
		polygons[i].X = float64(s.Frame)
		polygons[i].Y = float64(s.Polygons)
	}

	p := plot.New()
	p.Title.Text = "Frame Time"
	p.X.Label.Text = "frame"
	p.Y.Label.Text = "ms / polygons"

	timeLine, err := plotter.NewLine(times)
	if err != nil {
		return nil, fmt.Errorf("frame time line: %w", err)
	}
	polygonLine, err := plotter.NewLine(polygons)
	if err != nil {
		return nil, fmt.Errorf("polygon line: %w", err)
	}
	polygonLine.Color = color.RGBA{R: 200, A: 255}
	polygonLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(timeLine, polygonLine, plotter.NewGrid())
	p.Legend.Add("frame time (ms)", timeLine)
	p.Legend.Add("polygons", polygonLine)
	return p, nil
}

// Save writes the plot to path; the format follows its extension.
func (r *Recorder) Save(path string, width, height vg.Length) error {
	p, err := r.Plot()
	if err != nil {
		return err
	}
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}

// Draw renders the plot into img.
func (r *Recorder) Draw(img *image.RGBA) error {
	p, err := r.Plot()
	if err != nil {
		return err
	}
	c := vgimg.NewWith(vgimg.UseImage(img))
	p.Draw(draw.New(c))
	return nil
}

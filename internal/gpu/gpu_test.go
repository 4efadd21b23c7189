package gpu

import (
	"math"
	"testing"
	"time"

	"github.com/thelolagemann/gomeds/internal/gx/fifo"
	"github.com/thelolagemann/gomeds/internal/interrupts"
	"github.com/thelolagemann/gomeds/internal/memory"
	"github.com/thelolagemann/gomeds/internal/ppu/palette"
	"github.com/thelolagemann/gomeds/internal/types"
)

const (
	displayGraphics = 1 << 16
	enable3D        = 1<<3 | 1<<8
	renderBoth      = 3 << 6

	argbRed   = 0xFFF80000
	argbBlack = 0xFF000000
)

func newTestPipeline(t *testing.T, opts ...Opt) (*Pipeline, *memory.Flat) {
	t.Helper()
	vram := memory.NewFlat()
	return New(vram, opts...), vram
}

// command writes op to the packed port followed by its parameters.
func command(t *testing.T, p *Pipeline, op fifo.Opcode, params ...uint32) {
	t.Helper()
	if err := p.WriteFIFO(uint32(op)); err != nil {
		t.Fatalf("%v: %v", op, err)
	}
	for _, v := range params {
		if err := p.WriteFIFO(v); err != nil {
			t.Fatalf("%v: %v", op, err)
		}
	}
}

func fx(v float64) uint32 {
	return uint32(uint16(int16(v * 4096)))
}

// triangle submits a red triangle around the origin and swaps.
func triangle(t *testing.T, p *Pipeline) {
	command(t, p, fifo.PolygonAttr, renderBoth|31<<16)
	command(t, p, fifo.Color, 0x001F)
	command(t, p, fifo.BeginVtxs, 0)
	command(t, p, fifo.Vtx16, fx(-0.5)|fx(-0.5)<<16, 0)
	command(t, p, fifo.Vtx16, fx(0.5)|fx(-0.5)<<16, 0)
	command(t, p, fifo.Vtx16, fx(0.5)<<16, 0)
	command(t, p, fifo.SwapBuffers, 0)
}

func pixel(p *Pipeline, e types.Engine, x, y int) uint32 {
	out := make([]uint32, types.ScreenWidth*types.ScreenHeight)
	p.Framebuffer(e, out)
	return out[y*types.ScreenWidth+x]
}

func TestFrameDuration(t *testing.T) {
	got := float64(frameDuration) / float64(time.Second)
	if want := 1 / FrameRate; math.Abs(got-want) > 1e-9 {
		t.Errorf("frame duration %v does not match %v Hz", frameDuration, FrameRate)
	}
}

func TestPipeline_Triangle(t *testing.T) {
	p, _ := newTestPipeline(t)
	p.Write32(types.DISPCNT, displayGraphics|enable3D)
	p.Write16(types.CLEARDEPTH, 0x7FFF)
	triangle(t, p)

	p.RunFrame()

	if got := pixel(p, types.EngineA, 128, 96); got != argbRed {
		t.Errorf("centre: expected the triangle, got %#08x", got)
	}
	for _, xy := range [][2]int{{0, 0}, {250, 180}, {128, 150}} {
		if got := pixel(p, types.EngineA, xy[0], xy[1]); got != argbBlack {
			t.Errorf("%v: expected the backdrop, got %#08x", xy, got)
		}
	}
	// engine B is in display mode 0
	if got := pixel(p, types.EngineB, 128, 96); got != palette.Blank {
		t.Errorf("expected a blank sub screen, got %#08x", got)
	}

	s := p.Stats()
	if !s.Swapped || s.Polygons != 1 || s.Vertices != 3 || !s.Drawn {
		t.Errorf("unexpected stats %+v", s)
	}
}

func TestPipeline_PerspectiveTriangle(t *testing.T) {
	p, _ := newTestPipeline(t)
	p.Write32(types.DISPCNT, displayGraphics|enable3D)
	p.Write16(types.CLEARDEPTH, 0x7FFF)

	// frustum with near 1, far 100 and a horizontal and vertical scale of 10
	const near, far = 1.0, 100.0
	fixed := func(v float64) uint32 { return uint32(int32(v * 4096)) }
	command(t, p, fifo.MtxMode, 0)
	command(t, p, fifo.MtxLoad4x4,
		fixed(10), 0, 0, 0,
		0, fixed(10), 0, 0,
		0, 0, fixed(-(far+near)/(far-near)), fixed(-1),
		0, 0, fixed(-2*far*near/(far-near)), 0,
	)
	command(t, p, fifo.MtxMode, 1)
	command(t, p, fifo.MtxIdentity)
	command(t, p, fifo.MtxTrans, 0, 0, fixed(-10))
	triangle(t, p)

	p.RunFrame()

	if got := pixel(p, types.EngineA, 128, 96); got != argbRed {
		t.Errorf("centre: expected the triangle, got %#08x", got)
	}
	for _, xy := range [][2]int{{0, 0}, {250, 180}, {128, 150}} {
		if got := pixel(p, types.EngineA, xy[0], xy[1]); got != argbBlack {
			t.Errorf("%v: expected the backdrop, got %#08x", xy, got)
		}
	}
	if s := p.Stats(); s.Polygons != 1 {
		t.Errorf("expected one polygon, got %+v", s)
	}
}

func TestPipeline_NoSwap(t *testing.T) {
	p, _ := newTestPipeline(t)
	p.Write32(types.DISPCNT, displayGraphics|enable3D)
	p.Write16(types.CLEARDEPTH, 0x7FFF)
	command(t, p, fifo.PolygonAttr, renderBoth|31<<16)
	command(t, p, fifo.BeginVtxs, 0)
	command(t, p, fifo.Vtx16, fx(-0.5)|fx(-0.5)<<16, 0)
	command(t, p, fifo.Vtx16, fx(0.5)|fx(-0.5)<<16, 0)
	command(t, p, fifo.Vtx16, fx(0.5)<<16, 0)

	p.RunFrame()
	if got := pixel(p, types.EngineA, 128, 96); got != argbBlack {
		t.Errorf("geometry without a swap must not be visible, got %#08x", got)
	}
	if p.Stats().Swapped {
		t.Error("no swap was requested")
	}
}

func TestPipeline_SwapStallsQueue(t *testing.T) {
	p, _ := newTestPipeline(t)
	command(t, p, fifo.SwapBuffers, 0)
	command(t, p, fifo.MtxPush)
	p.RunGeometry(1 << 20)
	if !p.Geometry().SwapPending() {
		t.Fatal("expected a pending swap")
	}
	if p.Geometry().Queue().Empty() {
		t.Fatal("commands after the swap ran before the end of the frame")
	}
	p.RunFrame()
	if p.Geometry().SwapPending() {
		t.Error("the swap should have been honoured")
	}
	if !p.Geometry().Queue().Empty() {
		t.Error("the queue did not resume after the swap")
	}
}

func TestPipeline_Interrupts(t *testing.T) {
	irq := interrupts.NewService()
	p, _ := newTestPipeline(t, WithIRQ(irq.Request))
	p.Write16(types.DISPSTAT, 1<<3|1<<4|1<<5|100<<8)

	p.RunFrame()

	want := map[interrupts.Flag]int{
		interrupts.VBlankFlag:   1,
		interrupts.HBlankFlag:   types.TotalScanlines,
		interrupts.VCounterFlag: 1,
	}
	for f, n := range want {
		if irq.Counts[f] != n {
			t.Errorf("%v: expected %d requests, got %d", f, n, irq.Counts[f])
		}
	}
}

func TestPipeline_VCount(t *testing.T) {
	p, _ := newTestPipeline(t)
	p.Write16(types.DISPSTAT, 5<<8)

	p.Tick(types.CyclesPerScanline*5 + 10)
	if v := p.Read16(types.VCOUNT); v != 5 {
		t.Errorf("expected line 5, got %d", v)
	}
	status := p.Read16(types.DISPSTAT)
	if status&2 != 0 {
		t.Error("HBlank flag set at the start of a line")
	}
	if status&4 == 0 {
		t.Error("V-Counter flag not set on the matching line")
	}

	p.Tick(types.HBlankStart)
	if p.Read16(types.DISPSTAT)&2 == 0 {
		t.Error("HBlank flag not set")
	}

	p.Tick(types.CyclesPerScanline * (types.ScreenHeight - 5))
	if v, s := p.Read16(types.VCOUNT), p.Read16(types.DISPSTAT); v != types.ScreenHeight || s&1 == 0 {
		t.Errorf("expected VBlank on line 192, got line %d status %#04x", v, s)
	}
	p.Tick(types.CyclesPerScanline * (types.TotalScanlines - types.ScreenHeight - 1))
	if v, s := p.Read16(types.VCOUNT), p.Read16(types.DISPSTAT); v != types.TotalScanlines-1 || s&1 != 0 {
		t.Errorf("expected VBlank to end on the last line, got line %d status %#04x", v, s)
	}
}

func TestPipeline_FrameSkip(t *testing.T) {
	p, vram := newTestPipeline(t, WithFrameSkip(1))
	p.Write32(types.DISPCNT+types.EngineBOffset, displayGraphics)
	vram.SetPalette(types.EngineB, 0, uint16(palette.RGB(31, 0, 0)))

	p.RunFrame()
	if got := pixel(p, types.EngineB, 0, 0); got != argbRed {
		t.Fatalf("expected the first frame to be drawn, got %#08x", got)
	}

	vram.SetPalette(types.EngineB, 0, 0)
	p.RunFrame()
	if got := pixel(p, types.EngineB, 0, 0); got != argbRed {
		t.Errorf("skipped frame replaced the front buffer, got %#08x", got)
	}
	if p.Stats().Drawn {
		t.Error("second frame should have been skipped")
	}

	p.RunFrame()
	if got := pixel(p, types.EngineB, 0, 0); got != argbBlack {
		t.Errorf("expected the third frame to be drawn, got %#08x", got)
	}
}

func TestPipeline_FrameSkipKeepsSwap(t *testing.T) {
	p, _ := newTestPipeline(t, WithFrameSkip(1))
	p.Write32(types.DISPCNT, displayGraphics|enable3D)
	p.Write16(types.CLEARDEPTH, 0x7FFF)
	p.RunFrame()

	// swapped during frame 1, which is skipped
	triangle(t, p)
	p.RunFrame()
	if s := p.Stats(); s.Drawn || !s.Swapped {
		t.Fatalf("expected a skipped frame with a swap, got %+v", s)
	}

	p.RunFrame()
	if s := p.Stats(); !s.Drawn || s.Swapped {
		t.Fatalf("expected a drawn frame without a swap, got %+v", s)
	}
	if got := pixel(p, types.EngineA, 128, 96); got != argbRed {
		t.Errorf("geometry swapped on a skipped frame is missing, got %#08x", got)
	}
}

func TestPipeline_GXFIFOInterrupt(t *testing.T) {
	irq := interrupts.NewService()
	var dma int
	p, _ := newTestPipeline(t, WithIRQ(irq.Request), WithFIFODMA(func() { dma++ }))
	p.Write32(types.GXSTAT, uint32(2)<<30) // IRQ when empty

	command(t, p, fifo.MtxPush)
	p.RunFrame()

	if irq.Counts[interrupts.GXFIFOFlag] == 0 {
		t.Error("expected a geometry FIFO interrupt once the queue drained")
	}
	if dma == 0 {
		t.Error("expected a geometry FIFO DMA request")
	}
}

func TestPipeline_FrameHash(t *testing.T) {
	a, _ := newTestPipeline(t)
	b, vb := newTestPipeline(t)
	for _, p := range []*Pipeline{a, b} {
		p.Write32(types.DISPCNT, displayGraphics)
		p.RunFrame()
	}
	if a.FrameHash(types.EngineA) != b.FrameHash(types.EngineA) {
		t.Error("identical frames hashed differently")
	}

	vb.SetPalette(types.EngineA, 0, 0x7FFF)
	b.RunFrame()
	if a.FrameHash(types.EngineA) == b.FrameHash(types.EngineA) {
		t.Error("different frames hashed the same")
	}
}

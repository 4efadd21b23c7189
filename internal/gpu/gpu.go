// Package gpu ties the display pipeline together: the geometry engine,
// the rasterizer and both 2D engines share one register bus and are
// driven scanline by scanline from a cycle scheduler.
//
// Every scanline starts by draining the geometry command queue against
// its cycle budget. The first scanline of a frame then honours a pending
// buffer swap and rasterizes the new render buffer, before HBlank of
// each visible line composes both screens. Entering VBlank publishes the
// composed frames.
package gpu

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/gomeds/internal/gx"
	"github.com/thelolagemann/gomeds/internal/gx/render"
	"github.com/thelolagemann/gomeds/internal/interrupts"
	"github.com/thelolagemann/gomeds/internal/io"
	"github.com/thelolagemann/gomeds/internal/memory"
	"github.com/thelolagemann/gomeds/internal/ppu"
	"github.com/thelolagemann/gomeds/internal/ppu/lcd"
	"github.com/thelolagemann/gomeds/internal/scheduler"
	"github.com/thelolagemann/gomeds/internal/types"
	"github.com/thelolagemann/gomeds/pkg/log"
)

const (
	// FrameCycles is the number of bus cycles in a frame.
	FrameCycles = types.CyclesPerScanline * types.TotalScanlines
	// FrameRate is the refresh rate of both screens.
	FrameRate = 59.8261

	frameDuration = time.Second * 10000 / 598261
)

// Pipeline is the display pipeline of both screens. All methods are safe
// for concurrent use; they are serialised by a single mutex.
type Pipeline struct {
	mu sync.Mutex

	bus      *io.Bus
	s        *scheduler.Scheduler
	gx       *gx.Engine
	renderer *render.Renderer
	engines  [2]*ppu.PPU
	status   lcd.Status

	vcount  int
	frame   uint64
	drawing bool

	// configuration
	gxBudget  int
	frameSkip int
	limiter   bool
	lastFrame time.Time

	// collaborators
	irq        func(interrupts.Flag)
	fifoDMA    func()
	displayDMA func()

	// statistics of the last frame
	stats Stats

	log log.Logger
}

// Stats describes the last completed frame.
type Stats struct {
	Frame     uint64
	Polygons  int
	Vertices  int
	Swapped   bool
	Drawn     bool
	Duration  time.Duration
	startedAt time.Time
}

// New returns a Pipeline reading pixel and texture data from vram.
func New(vram memory.VRAM, opts ...Opt) *Pipeline {
	p := &Pipeline{
		s:        scheduler.NewScheduler(),
		gxBudget: types.CyclesPerScanline,
		vcount:   -1,
		log:      log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.bus = io.NewBus(p.log)
	p.gx = gx.New(gx.WithLogger(p.log))
	p.renderer = render.New(vram)
	p.engines[types.EngineA] = ppu.New(types.EngineA, vram,
		ppu.WithLogger(p.log),
		ppu.WithLayer(p.renderer.Frame()),
		ppu.WithFIFORequest(func() {
			if p.displayDMA != nil {
				p.displayDMA()
			}
		}),
	)
	p.engines[types.EngineB] = ppu.New(types.EngineB, vram, ppu.WithLogger(p.log))

	p.gx.Attach(p.bus)
	for _, e := range p.engines {
		e.Attach(p.bus)
	}
	p.bus.ReserveAddress(types.DISPSTAT, p.status.Read, p.status.Write)
	p.bus.ReserveAddress(types.VCOUNT, func() uint16 { return uint16(max(p.vcount, 0)) }, nil)
	p.gx.Queue().OnStatus(p.fifoStatus)

	p.s.RegisterEvent(scheduler.LineStart, p.lineStart)
	p.s.RegisterEvent(scheduler.HBlank, p.hblank)
	p.s.ScheduleEvent(scheduler.LineStart, 0)
	p.s.ScheduleEvent(scheduler.HBlank, types.HBlankStart)
	return p
}

func (p *Pipeline) request(f interrupts.Flag) {
	if p.irq != nil {
		p.irq(f)
	}
}

// fifoStatus raises the geometry FIFO interrupt and DMA on queue
// transitions.
func (p *Pipeline) fifoStatus(lessThanHalf, empty bool) {
	if lessThanHalf && p.fifoDMA != nil {
		p.fifoDMA()
	}
	switch p.gx.Status.IRQMode {
	case gx.IRQLessThanHalf:
		if lessThanHalf {
			p.request(interrupts.GXFIFOFlag)
		}
	case gx.IRQEmpty:
		if empty {
			p.request(interrupts.GXFIFOFlag)
		}
	}
}

// lineStart advances VCOUNT and drains the geometry engine. The first
// line of a frame honours a pending swap; line 192 enters VBlank.
func (p *Pipeline) lineStart() {
	p.s.ScheduleEvent(scheduler.LineStart, types.CyclesPerScanline)
	p.vcount++
	if p.vcount == types.TotalScanlines {
		p.vcount = 0
	}
	p.status.HBlank = false

	p.gx.Run(p.gxBudget)

	switch p.vcount {
	case 0:
		p.startFrame()
	case types.ScreenHeight:
		p.vblank()
	case types.TotalScanlines - 1:
		p.status.VBlank = false
	}
	for _, e := range p.engines {
		e.SetVCount(p.vcount)
	}
	if p.status.Compare(uint16(p.vcount)) && p.status.CoincidenceIRQ {
		p.request(interrupts.VCounterFlag)
	}
}

// startFrame swaps the geometry buffers if a swap is pending. Drawn
// frames rasterize the render buffer, swapped or not, so a swap taken on
// a skipped frame shows on the next drawn one.
func (p *Pipeline) startFrame() {
	p.stats.startedAt = time.Now()
	p.drawing = p.frame%uint64(p.frameSkip+1) == 0
	p.stats.Swapped = p.gx.EndOfFrame()
	buf := p.gx.RenderBuffer()
	if p.stats.Swapped {
		p.stats.Polygons, p.stats.Vertices = len(buf.Polygons), len(buf.Vertices)
	}
	if p.drawing {
		p.renderer.Render(buf, &p.gx.Render)
	}
}

// hblank composes the current line of both screens.
func (p *Pipeline) hblank() {
	p.s.ScheduleEvent(scheduler.HBlank, types.CyclesPerScanline)
	p.status.HBlank = true
	if p.vcount >= 0 && p.vcount < types.ScreenHeight && p.drawing {
		for _, e := range p.engines {
			e.DrawScanline(p.vcount)
		}
	}
	if p.status.HBlankIRQ {
		p.request(interrupts.HBlankFlag)
	}
}

// vblank publishes the frame.
func (p *Pipeline) vblank() {
	p.status.VBlank = true
	for _, e := range p.engines {
		if p.drawing {
			e.VBlank()
		} else {
			e.Skip()
		}
	}
	p.stats.Frame = p.frame
	p.stats.Drawn = p.drawing
	p.stats.Duration = time.Since(p.stats.startedAt)
	p.frame++
	if p.status.VBlankIRQ {
		p.request(interrupts.VBlankFlag)
	}
}

// Tick advances the pipeline by cycles bus cycles.
func (p *Pipeline) Tick(cycles uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.s.Tick(cycles)
}

// RunFrame advances the pipeline by one frame. With the frame limiter
// enabled it blocks until the frame is due.
func (p *Pipeline) RunFrame() {
	p.Tick(FrameCycles)
	if !p.limiter {
		return
	}
	if !p.lastFrame.IsZero() {
		if d := frameDuration - time.Since(p.lastFrame); d > 0 {
			time.Sleep(d)
		}
	}
	p.lastFrame = time.Now()
}

// RunGeometry grants the geometry engine budget cycles outside of the
// scanline schedule.
func (p *Pipeline) RunGeometry(budget int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gx.Run(budget)
}

// Write16 writes a 16-bit register.
func (p *Pipeline) Write16(address types.Address, value uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bus.Write16(address, value)
}

// Write32 writes a 32-bit register or command port.
func (p *Pipeline) Write32(address types.Address, value uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bus.Write32(address, value)
}

// Read16 reads a 16-bit register.
func (p *Pipeline) Read16(address types.Address) uint16 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bus.Read16(address)
}

// Read32 reads a 32-bit register.
func (p *Pipeline) Read32(address types.Address) uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bus.Read32(address)
}

// WriteFIFO writes a word to the packed geometry command port. A full
// queue stalls the writer while queued commands execute; it only fails
// with fifo.ErrQueueFull while a buffer swap waits for the next frame.
func (p *Pipeline) WriteFIFO(word uint32) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gx.Submit(word)
}

// WriteFIFODirect writes a parameter word to a direct command port.
func (p *Pipeline) WriteFIFODirect(address types.Address, word uint32) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gx.SubmitDirect(address, word)
}

// WriteMemoryFIFO queues two pixels into the main memory display FIFO.
func (p *Pipeline) WriteMemoryFIFO(word uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.engines[types.EngineA].WriteMemoryFIFO(word)
}

// Framebuffer copies the last completed frame of engine e into out as
// 256×192 ARGB pixels.
func (p *Pipeline) Framebuffer(e types.Engine, out []uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.engines[e].Framebuffer(out)
}

// FrameHash returns the xxhash of the last completed frame of engine e.
func (p *Pipeline) FrameHash(e types.Engine) uint64 {
	out := make([]uint32, types.ScreenWidth*types.ScreenHeight)
	p.Framebuffer(e, out)
	return HashFrame(out)
}

// HashFrame returns the xxhash of an ARGB frame.
func HashFrame(frame []uint32) uint64 {
	h := xxhash.New()
	var b [4]byte
	for _, px := range frame {
		binary.LittleEndian.PutUint32(b[:], px)
		h.Write(b[:])
	}
	return h.Sum64()
}

// VCount returns the current scanline.
func (p *Pipeline) VCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.vcount
}

// Stats returns statistics of the last completed frame.
func (p *Pipeline) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// Engine returns 2D engine e, for inspection.
func (p *Pipeline) Engine(e types.Engine) *ppu.PPU {
	return p.engines[e]
}

// Geometry returns the geometry engine, for inspection.
func (p *Pipeline) Geometry() *gx.Engine {
	return p.gx
}

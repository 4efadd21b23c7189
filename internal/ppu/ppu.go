// Package ppu implements the 2D engines of the display pipeline. Each
// engine composes one screen a scanline at a time from up to four
// backgrounds and 128 sprites, masked by windows and mixed by the colour
// special effects. Engine A can also show the 3D layer on BG0, stream a
// bitmap from VRAM or main memory, and capture its output back to VRAM.
//
// References:
//   - [GBATEK](https://problemkaputt.de/gbatek.htm#dsvideo)
package ppu

import (
	"github.com/thelolagemann/gomeds/internal/memory"
	"github.com/thelolagemann/gomeds/internal/ppu/background"
	"github.com/thelolagemann/gomeds/internal/ppu/blend"
	"github.com/thelolagemann/gomeds/internal/ppu/lcd"
	"github.com/thelolagemann/gomeds/internal/ppu/palette"
	"github.com/thelolagemann/gomeds/internal/ppu/window"
	"github.com/thelolagemann/gomeds/internal/types"
	"github.com/thelolagemann/gomeds/pkg/log"
)

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = types.ScreenWidth
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = types.ScreenHeight

	pixels = ScreenWidth * ScreenHeight
)

// Layer is the source of the 3D image shown on BG0 of engine A.
type Layer interface {
	// Pixel returns the BGR555 colour and 5-bit alpha at x, y. An alpha
	// of 0 is a transparent pixel.
	Pixel(x, y int) (uint16, uint8)
}

// PPU is one 2D engine.
type PPU struct {
	engine types.Engine
	vram   memory.VRAM
	layer  Layer

	// Registers
	Controller    *lcd.Controller
	Capture       lcd.Capture
	Backgrounds   [4]background.Background
	Windows       [2]window.Rect
	WindowControl window.Control
	Blend         blend.Control
	Brightness    palette.Brightness
	Mosaic        uint16 // stored only, mosaic is not applied

	fifo *displayFIFO

	// Frame buffers, selected by front
	buffers [2][pixels]uint32
	front   int

	vcount    int
	capturing bool

	// Scanline scratch
	bg        [4][ScreenWidth]layerPixel
	obj       [ScreenWidth]objPixel
	objWindow [ScreenWidth]bool
	mask      [ScreenWidth]uint8
	composed  [ScreenWidth]palette.Colour
	fifoLine  [ScreenWidth]palette.Colour

	log log.Logger
}

// Opt configures a PPU.
type Opt func(p *PPU)

// WithLogger sets the logger of the engine.
func WithLogger(l log.Logger) Opt {
	return func(p *PPU) {
		p.log = l
	}
}

// WithLayer sets the 3D layer shown on BG0. It is only used by engine A.
func WithLayer(l Layer) Opt {
	return func(p *PPU) {
		p.layer = l
	}
}

// WithFIFORequest sets the function called when the main memory display
// FIFO runs low and needs to be refilled, typically by a DMA channel.
func WithFIFORequest(fn func()) Opt {
	return func(p *PPU) {
		p.fifo.request = fn
	}
}

// New returns the 2D engine e reading pixel data from vram.
func New(e types.Engine, vram memory.VRAM, opts ...Opt) *PPU {
	p := &PPU{
		engine:     e,
		vram:       vram,
		Controller: lcd.NewController(e),
		fifo:       newDisplayFIFO(),
		log:        log.NewNullLogger(),
	}
	for i := 2; i < 4; i++ {
		p.Backgrounds[i].Affine = background.NewAffine()
	}
	for _, opt := range opts {
		opt(p)
	}
	for i := range p.buffers {
		for j := range p.buffers[i] {
			p.buffers[i][j] = palette.Blank
		}
	}
	return p
}

// Engine returns which engine p is.
func (p *PPU) Engine() types.Engine {
	return p.engine
}

// Framebuffer copies the last completed frame into out, which must hold
// at least 256×192 pixels.
func (p *PPU) Framebuffer(out []uint32) {
	copy(out, p.buffers[p.front][:])
}

// VBlank completes the frame: the back buffer becomes the front buffer,
// a finished capture is acknowledged and the affine reference points are
// reloaded for the next frame.
func (p *PPU) VBlank() {
	p.front ^= 1
	p.vcount = ScreenHeight
	if p.capturing {
		p.capturing = false
		p.Capture.Enabled = false
	}
	for i := 2; i < 4; i++ {
		p.Backgrounds[i].Affine.Latch()
	}
}

// Skip completes a frame that was not drawn. The front buffer keeps the
// last drawn frame and the affine reference points are reloaded.
func (p *PPU) Skip() {
	p.vcount = ScreenHeight
	p.capturing = false
	for i := 2; i < 4; i++ {
		p.Backgrounds[i].Affine.Latch()
	}
}

// SetVCount tells the engine which line the display is on. Affine
// reference points written outside the visible lines take effect
// immediately.
func (p *PPU) SetVCount(line int) {
	p.vcount = line
}

func (p *PPU) inVisible() bool {
	return p.vcount < ScreenHeight
}

func (p *PPU) back() *[pixels]uint32 {
	return &p.buffers[p.front^1]
}

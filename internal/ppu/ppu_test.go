package ppu

import (
	"testing"

	"github.com/thelolagemann/gomeds/internal/io"
	"github.com/thelolagemann/gomeds/internal/memory"
	"github.com/thelolagemann/gomeds/internal/ppu/palette"
	"github.com/thelolagemann/gomeds/internal/types"
)

const (
	red   = 0x001F
	green = 0x03E0
	blue  = 0x7C00

	argbRed   = 0xFFF80000
	argbGreen = 0xFF00F800
	argbBlue  = 0xFF0000F8
	argbGrey  = 0xFF404040 // backdrop
)

const displayGraphics = 1 << 16

func newTestPPU(t *testing.T, e types.Engine, opts ...Opt) (*PPU, *memory.Flat, *io.Bus) {
	t.Helper()
	vram := memory.NewFlat()
	p := New(e, vram, opts...)
	b := io.NewBus(nil)
	p.Attach(b)
	vram.SetPalette(e, 0, uint16(palette.RGB(8, 8, 8)))
	return p, vram, b
}

func reg(p *PPU, a types.Address) types.Address {
	if p.engine == types.EngineB {
		return a + types.EngineBOffset
	}
	return a
}

// solidTile fills 4bpp tile n of char block 0 with colour index idx.
func solidTile(vram *memory.Flat, e types.Engine, n int, idx uint8) {
	for i := 0; i < 32; i++ {
		vram.WriteBG8(e, uint32(n*32+i), idx|idx<<4)
	}
}

// fillMap fills the 32×32 screen block at base with entry.
func fillMap(vram *memory.Flat, e types.Engine, base uint32, entry uint16) {
	for i := uint32(0); i < 1024; i++ {
		vram.WriteBG16(e, base+i*2, entry)
	}
}

// twoLayers sets up BG0 (red, tile 1, screen block 1) and BG1 (green,
// tile 2, screen block 2) with the given priorities.
func twoLayers(t *testing.T, p *PPU, vram *memory.Flat, b *io.Bus, prio0, prio1 uint16) {
	t.Helper()
	e := p.engine
	solidTile(vram, e, 1, 1)
	solidTile(vram, e, 2, 2)
	vram.SetPalette(e, 1, red)
	vram.SetPalette(e, 2, green)
	fillMap(vram, e, 0x800, 1)
	fillMap(vram, e, 0x1000, 2)
	b.Write16(reg(p, types.BG0CNT), prio0|1<<8)
	b.Write16(reg(p, types.BG1CNT), prio1|2<<8)
}

// frame draws every visible line, flips and returns the front buffer.
func frame(p *PPU) []uint32 {
	for y := 0; y < ScreenHeight; y++ {
		p.DrawScanline(y)
	}
	p.VBlank()
	out := make([]uint32, pixels)
	p.Framebuffer(out)
	return out
}

func at(f []uint32, x, y int) uint32 {
	return f[y*ScreenWidth+x]
}

func TestPPU_EqualPriorityLowerIndexWins(t *testing.T) {
	for _, e := range []types.Engine{types.EngineA, types.EngineB} {
		p, vram, b := newTestPPU(t, e)
		twoLayers(t, p, vram, b, 1, 1)
		b.Write32(reg(p, types.DISPCNT), displayGraphics|1<<8|1<<9)

		f := frame(p)
		if got := at(f, 100, 100); got != argbRed {
			t.Errorf("engine %s: expected BG0 to win, got %#08x", e, got)
		}

		// a higher priority BG1 wins regardless of index
		b.Write16(reg(p, types.BG1CNT), 0|2<<8)
		f = frame(p)
		if got := at(f, 100, 100); got != argbGreen {
			t.Errorf("engine %s: expected BG1 to win, got %#08x", e, got)
		}
	}
}

func TestPPU_BlankMode(t *testing.T) {
	p, vram, b := newTestPPU(t, types.EngineA)
	twoLayers(t, p, vram, b, 0, 0)
	b.Write32(types.DISPCNT, 1<<8|1<<9|1<<12)

	p.DrawScanline(10)
	p.VBlank()
	out := make([]uint32, pixels)
	p.Framebuffer(out)
	for x := 0; x < ScreenWidth; x++ {
		if got := at(out, x, 10); got != palette.Blank {
			t.Fatalf("x=%d: expected blank colour, got %#08x", x, got)
		}
	}
}

func TestPPU_FrontBufferStable(t *testing.T) {
	p, vram, b := newTestPPU(t, types.EngineA)
	twoLayers(t, p, vram, b, 0, 1)
	b.Write32(types.DISPCNT, displayGraphics|1<<8)

	out := make([]uint32, pixels)
	p.DrawScanline(0)
	p.Framebuffer(out)
	if got := at(out, 0, 0); got != palette.Blank {
		t.Errorf("expected the front buffer untouched before VBlank, got %#08x", got)
	}
	p.VBlank()
	p.Framebuffer(out)
	if got := at(out, 0, 0); got != argbRed {
		t.Errorf("expected the drawn line after VBlank, got %#08x", got)
	}
}

func TestPPU_ForcedBlank(t *testing.T) {
	p, _, b := newTestPPU(t, types.EngineB)
	b.Write32(reg(p, types.DISPCNT), displayGraphics|1<<7)
	if got := at(frame(p), 5, 5); got != palette.White {
		t.Errorf("expected white, got %#08x", got)
	}
}

func TestPPU_Backdrop(t *testing.T) {
	p, _, b := newTestPPU(t, types.EngineA)
	b.Write32(types.DISPCNT, displayGraphics)
	if got := at(frame(p), 42, 42); got != argbGrey {
		t.Errorf("expected backdrop, got %#08x", got)
	}
}

func TestPPU_Scroll(t *testing.T) {
	p, vram, b := newTestPPU(t, types.EngineA)
	e := p.engine
	solidTile(vram, e, 1, 1)
	vram.SetPalette(e, 1, red)
	// only the first map entry is opaque
	vram.WriteBG16(e, 0x800, 1)
	b.Write16(types.BG0CNT, 1<<8)
	b.Write32(types.DISPCNT, displayGraphics|1<<8)

	f := frame(p)
	if at(f, 0, 0) != argbRed || at(f, 8, 0) != argbGrey || at(f, 0, 8) != argbGrey {
		t.Fatalf("unexpected unscrolled image")
	}

	// scroll by 4 pixels, offsets wrap at 9 bits
	b.Write16(types.BG0HOFS, 0x204)
	b.Write16(types.BG0VOFS, 4)
	f = frame(p)
	if at(f, 3, 3) != argbRed || at(f, 4, 0) != argbGrey || at(f, 0, 4) != argbGrey {
		t.Errorf("unexpected scrolled image: %#08x %#08x %#08x", at(f, 3, 3), at(f, 4, 0), at(f, 0, 4))
	}
	if p.Backgrounds[0].HOffset != 4 {
		t.Errorf("expected HOFS to wrap to 4, got %d", p.Backgrounds[0].HOffset)
	}
}

// sprite writes an 8×8 4bpp sprite at x, y using OBJ tile 1.
func sprite(vram *memory.Flat, e types.Engine, i int, x, y int, attr0, attr2 uint16) {
	for j := 0; j < 32; j++ {
		vram.WriteOBJ8(e, uint32(32+j), 0x33)
	}
	vram.SetPalette(e, 256+3, blue)
	vram.WriteOAM(e, uint32(i*8), attr0|uint16(y&0xFF))
	vram.WriteOAM(e, uint32(i*8+2), uint16(x&0x1FF))
	vram.WriteOAM(e, uint32(i*8+4), attr2|1)
}

// hideSprites moves every OAM entry off screen.
func hideSprites(vram *memory.Flat, e types.Engine) {
	for i := 0; i < objects; i++ {
		vram.WriteOAM(e, uint32(i*8), 1<<9) // disabled
	}
}

func TestPPU_Sprites(t *testing.T) {
	p, vram, b := newTestPPU(t, types.EngineA)
	twoLayers(t, p, vram, b, 0, 1)
	hideSprites(vram, p.engine)
	sprite(vram, p.engine, 0, 8, 0, 0, 0)
	b.Write32(types.DISPCNT, displayGraphics|1<<8|1<<12)

	f := frame(p)
	if got := at(f, 8, 0); got != argbBlue {
		t.Errorf("expected OBJ to win an equal priority, got %#08x", got)
	}
	if got := at(f, 7, 0); got != argbRed {
		t.Errorf("expected BG0 left of the sprite, got %#08x", got)
	}
	if got := at(f, 8, 8); got != argbRed {
		t.Errorf("expected BG0 below the sprite, got %#08x", got)
	}

	// priority 1 sprite goes behind BG0
	sprite(vram, p.engine, 0, 8, 0, 0, 1<<10)
	if got := at(frame(p), 8, 0); got != argbRed {
		t.Errorf("expected BG0 in front of a lower priority OBJ, got %#08x", got)
	}
}

func TestPPU_SpriteFlipAndWrap(t *testing.T) {
	p, vram, b := newTestPPU(t, types.EngineA)
	hideSprites(vram, p.engine)
	// left half of OBJ tile 1 opaque
	for row := 0; row < 8; row++ {
		vram.WriteOBJ8(p.engine, uint32(32+row*4), 0x33)
		vram.WriteOBJ8(p.engine, uint32(32+row*4+1), 0x33)
	}
	vram.SetPalette(p.engine, 256+3, blue)
	vram.WriteOAM(p.engine, 0, 252)         // y wraps to -4
	vram.WriteOAM(p.engine, 2, 1<<12|0x1FE) // x = -2, flipped
	vram.WriteOAM(p.engine, 4, 1)
	b.Write32(types.DISPCNT, displayGraphics|1<<12)

	f := frame(p)
	// flipped: the opaque half spans x = 2..5
	if at(f, 1, 0) != argbGrey || at(f, 2, 0) != argbBlue || at(f, 5, 3) != argbBlue || at(f, 6, 0) != argbGrey {
		t.Errorf("unexpected flipped sprite: %#08x %#08x %#08x %#08x", at(f, 1, 0), at(f, 2, 0), at(f, 5, 3), at(f, 6, 0))
	}
	if at(f, 2, 4) != argbGrey {
		t.Errorf("expected the sprite to end at line 4")
	}
}

func TestPPU_Window(t *testing.T) {
	p, vram, b := newTestPPU(t, types.EngineA)
	twoLayers(t, p, vram, b, 0, 1)
	b.Write16(types.WIN0H, 16<<8|32)
	b.Write16(types.WIN0V, 0<<8|192)
	b.Write16(types.WININ, 0x01)  // BG0 inside window 0
	b.Write16(types.WINOUT, 0x02) // BG1 outside
	b.Write32(types.DISPCNT, displayGraphics|1<<8|1<<9|1<<13)

	f := frame(p)
	if got := at(f, 20, 50); got != argbRed {
		t.Errorf("expected BG0 inside the window, got %#08x", got)
	}
	if got := at(f, 40, 50); got != argbGreen {
		t.Errorf("expected BG1 outside the window, got %#08x", got)
	}
	if got := at(f, 32, 50); got != argbGreen {
		t.Errorf("expected X2 to be exclusive, got %#08x", got)
	}
}

func TestPPU_OBJWindow(t *testing.T) {
	p, vram, b := newTestPPU(t, types.EngineA)
	twoLayers(t, p, vram, b, 0, 1)
	hideSprites(vram, p.engine)
	sprite(vram, p.engine, 0, 0, 0, 2<<10, 0) // window mode
	b.Write16(types.WINOUT, 0x02|0x01<<8)     // outside BG1, OBJ window BG0
	b.Write32(types.DISPCNT, displayGraphics|1<<8|1<<9|1<<12|1<<15)

	f := frame(p)
	if got := at(f, 3, 3); got != argbRed {
		t.Errorf("expected BG0 inside the OBJ window, got %#08x", got)
	}
	if got := at(f, 9, 3); got != argbGreen {
		t.Errorf("expected BG1 outside the OBJ window, got %#08x", got)
	}
}

func TestPPU_Blend(t *testing.T) {
	tests := []struct {
		name   string
		bldcnt uint16
		alpha  uint16
		y      uint16
		want   uint32
	}{
		{"alpha", 0x0201 | 1<<6, 0x0808, 0, 0xFF787800},
		{"alpha clamped", 0x0201 | 1<<6, 0x1F00, 0, argbGreen},
		{"no second target", 0x0001 | 1<<6, 0x0808, 0, argbRed},
		{"brighten", 0x0001 | 2<<6, 0, 16, 0xFFF8F8F8},
		{"darken", 0x0001 | 3<<6, 0, 8, 0xFF800000},
		{"not first target", 0x0002 | 3<<6, 0, 16, argbRed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, vram, b := newTestPPU(t, types.EngineA)
			twoLayers(t, p, vram, b, 0, 1)
			b.Write16(types.BLDCNT, tt.bldcnt)
			b.Write16(types.BLDALPHA, tt.alpha)
			b.Write16(types.BLDY, tt.y)
			b.Write32(types.DISPCNT, displayGraphics|1<<8|1<<9)
			if got := at(frame(p), 10, 10); got != tt.want {
				t.Errorf("expected %#08x, got %#08x", tt.want, got)
			}
		})
	}
}

func TestPPU_BlendWindowEffects(t *testing.T) {
	p, vram, b := newTestPPU(t, types.EngineA)
	twoLayers(t, p, vram, b, 0, 1)
	b.Write16(types.BLDCNT, 0x0001|3<<6)
	b.Write16(types.BLDY, 16)
	b.Write16(types.WIN0H, 0<<8|128)
	b.Write16(types.WIN0V, 0<<8|192)
	b.Write16(types.WININ, 0x3F)  // effects inside
	b.Write16(types.WINOUT, 0x1F) // no effects outside
	b.Write32(types.DISPCNT, displayGraphics|1<<8|1<<9|1<<13)

	f := frame(p)
	if got := at(f, 10, 10); got != 0xFF000000 {
		t.Errorf("expected darkened pixel inside the window, got %#08x", got)
	}
	if got := at(f, 200, 10); got != argbRed {
		t.Errorf("expected plain pixel outside the window, got %#08x", got)
	}
}

func TestPPU_SemiTransparentOBJ(t *testing.T) {
	p, vram, b := newTestPPU(t, types.EngineA)
	twoLayers(t, p, vram, b, 0, 1)
	hideSprites(vram, p.engine)
	sprite(vram, p.engine, 0, 0, 0, 1<<10, 0)
	// no effect selected, BG0 as 2nd target
	b.Write16(types.BLDCNT, 0x0100)
	b.Write16(types.BLDALPHA, 0x0808)
	b.Write32(types.DISPCNT, displayGraphics|1<<8|1<<12)

	if got := at(frame(p), 0, 0); got != 0xFF780078 {
		t.Errorf("expected red/blue mix, got %#08x", got)
	}
}

func TestPPU_MasterBrightness(t *testing.T) {
	p, vram, b := newTestPPU(t, types.EngineB)
	twoLayers(t, p, vram, b, 0, 1)
	b.Write32(reg(p, types.DISPCNT), displayGraphics|1<<8)
	b.Write16(reg(p, types.MASTERBRIGHT), 2<<14|31)

	if got := b.Read16(reg(p, types.MASTERBRIGHT)); got != 2<<14|16 {
		t.Errorf("expected the factor clamped to 16, got %#x", got)
	}
	if got := at(frame(p), 0, 0); got != 0xFF000000 {
		t.Errorf("expected black, got %#08x", got)
	}
	b.Write16(reg(p, types.MASTERBRIGHT), 1<<14|16)
	if got := at(frame(p), 0, 0); got != 0xFFF8F8F8 {
		t.Errorf("expected white, got %#08x", got)
	}
}

type testLayer struct{}

func (testLayer) Pixel(x, y int) (uint16, uint8) {
	if x < 128 {
		return blue, 31
	}
	if x < 192 {
		return red, 15
	}
	return 0, 0
}

func TestPPU_Layer3D(t *testing.T) {
	p, vram, b := newTestPPU(t, types.EngineA, WithLayer(testLayer{}))
	twoLayers(t, p, vram, b, 0, 1)
	b.Write16(types.BLDCNT, 0x0200) // BG1 as 2nd target
	b.Write32(types.DISPCNT, displayGraphics|1<<3|1<<8|1<<9)

	f := frame(p)
	if got := at(f, 10, 10); got != argbBlue {
		t.Errorf("expected the 3D layer, got %#08x", got)
	}
	// alpha 15 blends (15+1)/32 red with 16/32 green
	if got := at(f, 150, 10); got != 0xFF787800 {
		t.Errorf("expected a blended 3D pixel, got %#08x", got)
	}
	if got := at(f, 220, 10); got != argbGreen {
		t.Errorf("expected BG1 behind a transparent 3D pixel, got %#08x", got)
	}

	// engine B ignores the 3D bit
	pb, vb, bb := newTestPPU(t, types.EngineB, WithLayer(testLayer{}))
	twoLayers(t, pb, vb, bb, 0, 1)
	bb.Write32(reg(pb, types.DISPCNT), displayGraphics|1<<3|1<<8)
	if got := at(frame(pb), 10, 10); got != argbRed {
		t.Errorf("expected engine B to draw BG0 as text, got %#08x", got)
	}
}

func TestPPU_AffineBackground(t *testing.T) {
	p, vram, b := newTestPPU(t, types.EngineA)
	e := p.engine
	// 8-bit map at screen block 1, tile 1 of 64 bytes with index 5
	for i := uint32(0); i < 256; i++ {
		vram.WriteBG8(e, 0x800+i, 1)
	}
	for i := uint32(0); i < 64; i++ {
		vram.WriteBG8(e, 64+i, 5)
	}
	vram.SetPalette(e, 5, green)
	b.Write16(types.BG2CNT, 1<<8) // 128×128, no wrap
	b.Write32(types.DISPCNT, displayGraphics|2|1<<10)

	f := frame(p)
	if got := at(f, 10, 10); got != argbGreen {
		t.Errorf("expected the affine layer, got %#08x", got)
	}
	if got := at(f, 200, 10); got != argbGrey {
		t.Errorf("expected transparency beyond the layer, got %#08x", got)
	}
	if got := at(f, 10, 150); got != argbGrey {
		t.Errorf("expected transparency below the layer, got %#08x", got)
	}

	// wraparound
	b.Write16(types.BG2CNT, 1<<8|1<<13)
	if got := at(frame(p), 200, 150); got != argbGreen {
		t.Errorf("expected the layer to wrap, got %#08x", got)
	}
}

func TestPPU_DirectBitmap(t *testing.T) {
	p, vram, b := newTestPPU(t, types.EngineA)
	vram.WriteBG16(p.engine, (5*256+3)*2, 0x8000|red)
	vram.WriteBG16(p.engine, (5*256+4)*2, red) // no opacity flag
	b.Write16(types.BG3CNT, 1<<14|1<<7|1<<2)
	b.Write32(types.DISPCNT, displayGraphics|5|1<<11)

	f := frame(p)
	if got := at(f, 3, 5); got != argbRed {
		t.Errorf("expected the bitmap pixel, got %#08x", got)
	}
	if got := at(f, 4, 5); got != argbGrey {
		t.Errorf("expected a transparent pixel, got %#08x", got)
	}
}

func TestPPU_AffineLatch(t *testing.T) {
	p, _, b := newTestPPU(t, types.EngineA)
	a := &p.Backgrounds[2].Affine

	p.SetVCount(100)
	b.Write32(types.BG2X, 0x100)
	if x, _ := a.Origin(); x != 0 {
		t.Errorf("expected a write during the visible period to be deferred, got %d", x)
	}
	p.VBlank()
	if x, _ := a.Origin(); x != 0x100 {
		t.Errorf("expected the reference point latched at VBlank, got %d", x)
	}

	// during VBlank the write takes effect immediately
	p.SetVCount(200)
	b.Write32(types.BG2X, 0x0FFFFF00)
	if x, _ := a.Origin(); x != -0x100 {
		t.Errorf("expected a sign extended immediate latch, got %d", x)
	}

	// each line advances by PB/PD
	b.Write16(types.BG2PA+2, 0x40)
	b.Write16(types.BG2PD, 0x80)
	p.VBlank()
	p.DrawScanline(0)
	p.DrawScanline(1)
	x, y := a.Origin()
	if x != -0x100+0x80 || y != 0x100 {
		t.Errorf("unexpected reference point after two lines: %d, %d", x, y)
	}
}

func TestPPU_VRAMDisplay(t *testing.T) {
	p, vram, b := newTestPPU(t, types.EngineA)
	vram.WriteBank(1, (3*256+5)*2, green)
	b.Write32(types.DISPCNT, 2<<16|1<<18)

	if got := at(frame(p), 5, 3); got != argbGreen {
		t.Errorf("expected the bank pixel, got %#08x", got)
	}
}

func TestPPU_MainMemoryDisplay(t *testing.T) {
	var p *PPU
	requests := 0
	p, _, b := newTestPPU(t, types.EngineA, WithFIFORequest(func() {
		requests++
		for i := 0; i < 8; i++ {
			p.WriteMemoryFIFO(uint32(red)<<16 | red)
		}
	}))
	b.Write32(types.DISPCNT, 3<<16)

	f := frame(p)
	if got := at(f, 255, 191); got != argbRed {
		t.Errorf("expected streamed pixels, got %#08x", got)
	}
	if requests == 0 {
		t.Errorf("expected refill requests")
	}
}

func TestPPU_Capture(t *testing.T) {
	p, vram, b := newTestPPU(t, types.EngineA)
	twoLayers(t, p, vram, b, 0, 1)
	b.Write32(types.DISPCNT, displayGraphics|1<<8)
	// capture source A, 256×192, into bank B
	b.Write32(types.DISPCAPCNT, 1<<31|3<<20|1<<16)

	frame(p)
	if got := vram.Bank(1, (191*256+255)*2); got != 0x8000|red {
		t.Errorf("expected the captured pixel, got %#04x", got)
	}
	if p.Capture.Enabled {
		t.Errorf("expected capture enable to clear when done")
	}
	if got := b.Read32(types.DISPCAPCNT); got&(1<<31) != 0 {
		t.Errorf("expected DISPCAPCNT bit 31 clear, got %#08x", got)
	}
}

func TestPPU_CaptureBlend(t *testing.T) {
	p, vram, b := newTestPPU(t, types.EngineA)
	twoLayers(t, p, vram, b, 0, 1)
	for x := uint32(0); x < 128; x++ {
		vram.WriteBank(2, x*2, 0x8000|green)
	}
	// read bank C through DISPCNT, blend 8/8, 128×128 into bank D at 0x8000
	b.Write32(types.DISPCNT, displayGraphics|1<<8|2<<18)
	b.Write32(types.DISPCAPCNT, 1<<31|2<<29|1<<18|3<<16|8<<8|8)

	frame(p)
	if got := vram.Bank(3, 0x8000); got != 0x8000|uint16(palette.RGB(15, 15, 0)) {
		t.Errorf("expected a blended capture, got %#04x", got)
	}
	// line 0 only holds opaque source B pixels
	if got := vram.Bank(3, 0x8000+128*2); got != 0x8000|uint16(palette.RGB(15, 0, 0)) {
		t.Errorf("expected source A only below line 0, got %#04x", got)
	}
}

func TestPPU_RegisterRoundTrip(t *testing.T) {
	tests := []struct {
		addr  types.Address
		value uint16
		want  uint16
	}{
		{types.BG0CNT, 0xFFFF, 0xFFFF},
		{types.BG3CNT, 0x1234, 0x1234},
		{types.WININ, 0xFFFF, 0x3F3F},
		{types.WINOUT, 0x2A15, 0x2A15},
		{types.BLDCNT, 0xFFFF, 0x3FFF},
		{types.BLDALPHA, 0x1F1F, 0x1010},
		{types.BLDALPHA, 0x0C03, 0x0C03},
	}
	for _, e := range []types.Engine{types.EngineA, types.EngineB} {
		p, _, b := newTestPPU(t, e)
		for _, tt := range tests {
			b.Write16(reg(p, tt.addr), tt.value)
			if got := b.Read16(reg(p, tt.addr)); got != tt.want {
				t.Errorf("engine %s %08X: expected %#04x, got %#04x", e, tt.addr, tt.want, got)
			}
		}
	}

	_, _, ba := newTestPPU(t, types.EngineA)
	ba.Write32(types.DISPCNT, 0xFFFFFFFF)
	if got := ba.Read32(types.DISPCNT); got != 0xFFFFFFFF {
		t.Errorf("engine A DISPCNT: expected 0xFFFFFFFF, got %#08x", got)
	}
	pb, _, bb := newTestPPU(t, types.EngineB)
	bb.Write32(reg(pb, types.DISPCNT), 0xFFFFFFFF)
	if got := bb.Read32(reg(pb, types.DISPCNT)); got != 0xC0B1FFF7 {
		t.Errorf("engine B DISPCNT: expected 0xC0B1FFF7, got %#08x", got)
	}
}

package ppu

import (
	"github.com/thelolagemann/gomeds/internal/ppu/blend"
	"github.com/thelolagemann/gomeds/internal/ppu/lcd"
	"github.com/thelolagemann/gomeds/internal/ppu/palette"
	"github.com/thelolagemann/gomeds/internal/ppu/window"
	"github.com/thelolagemann/gomeds/internal/types"
)

// DrawScanline composes line into the back buffer. It is the only writer
// of the back buffer; the front buffer changes only on VBlank.
func (p *PPU) DrawScanline(line int) {
	p.vcount = line
	if line < 0 || line >= ScreenHeight {
		return
	}
	if line == 0 && p.engine == types.EngineA && p.Capture.Enabled {
		p.capturing = true
	}
	mode := p.Controller.DisplayMode
	if mode == lcd.DisplayGraphics || p.capturing {
		p.compose(line)
	}
	streamed := mode == lcd.DisplayMainMemory || (p.capturing && p.Capture.SourceFIFO)
	if streamed {
		for x := range p.fifoLine {
			p.fifoLine[x] = p.fifo.pop()
		}
	}

	row := p.back()[line*ScreenWidth : (line+1)*ScreenWidth]
	switch {
	case p.Controller.ForcedBlank:
		fill(row, palette.White)
	case mode == lcd.DisplayOff:
		fill(row, palette.Blank)
	case mode == lcd.DisplayGraphics:
		for x := range row {
			row[x] = p.Brightness.Apply(p.composed[x]).ARGB()
		}
	case mode == lcd.DisplayVRAM:
		bank := int(p.Controller.VRAMBlock)
		for x := range row {
			c := palette.Colour(p.vram.Bank(bank, uint32(line*ScreenWidth+x)*2))
			row[x] = p.Brightness.Apply(c).ARGB()
		}
	case mode == lcd.DisplayMainMemory:
		for x := range row {
			row[x] = p.Brightness.Apply(p.fifoLine[x]).ARGB()
		}
	}

	if p.capturing {
		p.capture(line)
	}
	for i := 2; i < 4; i++ {
		p.Backgrounds[i].Affine.Advance()
	}
}

func fill(row []uint32, c uint32) {
	for x := range row {
		row[x] = c
	}
}

// compose renders every layer of line and resolves each column into
// p.composed. For each column the two frontmost visible pixels are
// found by walking priority levels from highest to lowest: at a level,
// OBJ comes first, then BG0 to BG3. The backdrop sits behind everything.
func (p *PPU) compose(line int) {
	p.prescanSprites(line)
	for i := range p.bg {
		p.renderBackground(i, line)
	}
	c := p.Controller
	window.Compute(p.mask[:], line, window.Enables{
		Win0:   c.WindowEnabled[0],
		Win1:   c.WindowEnabled[1],
		OBJWin: c.OBJWindowEnabled,
	}, &p.Windows, &p.WindowControl, p.objWindow[:])

	backdrop := blend.Pixel{
		Colour: palette.Colour(p.vram.Palette(p.engine, 0) & 0x7FFF),
		Layer:  blend.LayerBackdrop,
	}
	is3D := c.Is3D()
	for x := range p.composed {
		mask := p.mask[x]
		top, second := backdrop, backdrop
		found := 0
		push := func(px blend.Pixel) {
			if found == 0 {
				top = px
			} else {
				second = px
			}
			found++
		}
		for prio := uint8(0); prio < 4 && found < 2; prio++ {
			if o := &p.obj[x]; o.opaque && o.priority == prio && mask&window.MaskOBJ != 0 {
				push(objBlendPixel(o))
			}
			for i := 0; i < 4 && found < 2; i++ {
				px := &p.bg[i][x]
				if !px.opaque || p.Backgrounds[i].Priority != prio || mask&(1<<i) == 0 {
					continue
				}
				bp := blend.Pixel{Colour: px.colour, Layer: i}
				if i == 0 && is3D {
					bp.Kind, bp.Alpha = blend.Layer3D, px.alpha
				}
				push(bp)
			}
		}
		p.composed[x] = p.Blend.Apply(top, second, mask&window.MaskEffects != 0)
	}
}

func objBlendPixel(o *objPixel) blend.Pixel {
	bp := blend.Pixel{Colour: o.colour, Layer: blend.LayerOBJ}
	switch o.mode {
	case objSemiTransparent:
		bp.Kind = blend.SemiTransparent
	case objBitmap:
		bp.Kind, bp.Alpha = blend.Bitmap, o.alpha
	}
	return bp
}

// capture writes line of the selected capture source to VRAM. Captured
// pixels carry the opacity flag in bit 15.
func (p *PPU) capture(line int) {
	cp := &p.Capture
	w, h := cp.Dimensions()
	if line >= h {
		return
	}
	readBank := int(p.Controller.VRAMBlock)
	for x := 0; x < w; x++ {
		var a, b palette.Colour
		if cp.Source != lcd.CaptureB {
			if cp.Source3D {
				if p.layer != nil {
					if c, alpha := p.layer.Pixel(x, line); alpha > 0 {
						a = palette.Colour(c&0x7FFF) | 0x8000
					}
				}
			} else {
				a = p.composed[x] | 0x8000
			}
		}
		if cp.Source != lcd.CaptureA {
			if cp.SourceFIFO {
				b = p.fifoLine[x]
			} else {
				b = palette.Colour(p.vram.Bank(readBank, cp.ReadAddress(x, line)))
			}
		}

		var out palette.Colour
		switch cp.Source {
		case lcd.CaptureA:
			out = a
		case lcd.CaptureB:
			out = b
		default:
			out = captureBlend(a, b, cp.EVA, cp.EVB)
		}
		p.vram.WriteBank(int(cp.WriteBlock), cp.WriteAddress(x, line), uint16(out))
	}
}

// captureBlend mixes two captured pixels, each weighted by its own
// opacity flag.
func captureBlend(a, b palette.Colour, eva, evb uint8) palette.Colour {
	if !a.Opaque() {
		eva = 0
	}
	if !b.Opaque() {
		evb = 0
	}
	out := palette.Mix(a, b, eva, evb, 4)
	if eva > 0 || evb > 0 {
		out |= 0x8000
	}
	return out
}

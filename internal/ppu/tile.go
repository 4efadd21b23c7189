package ppu

import (
	"github.com/thelolagemann/gomeds/internal/ppu/background"
	"github.com/thelolagemann/gomeds/internal/ppu/palette"
	"github.com/thelolagemann/gomeds/internal/types"
)

// layerPixel is one pixel of a rendered background line.
type layerPixel struct {
	colour palette.Colour
	alpha  uint8 // 3D layer only
	opaque bool
}

// bgKind is how a background is interpreted in the current BG mode.
type bgKind uint8

const (
	bgNone bgKind = iota
	bgText
	bgAffine
	bgExtended
	bgLarge
)

var bgModes = [8][4]bgKind{
	{bgText, bgText, bgText, bgText},
	{bgText, bgText, bgText, bgAffine},
	{bgText, bgText, bgAffine, bgAffine},
	{bgText, bgText, bgText, bgExtended},
	{bgText, bgText, bgAffine, bgExtended},
	{bgText, bgText, bgExtended, bgExtended},
	{bgText, bgNone, bgLarge, bgNone},
	{bgNone, bgNone, bgNone, bgNone},
}

func (p *PPU) bgKind(i int) bgKind {
	k := bgModes[p.Controller.BGMode&7][i]
	if k == bgLarge && p.engine != types.EngineA {
		return bgNone
	}
	return k
}

func (p *PPU) bg16(addr uint32) uint16 {
	return uint16(p.vram.BG(p.engine, addr)) | uint16(p.vram.BG(p.engine, addr+1))<<8
}

// bases returns the character and screen base of bg, including the
// coarse engine A offsets from DISPCNT.
func (p *PPU) bases(bg *background.Background) (uint32, uint32) {
	char := uint32(bg.CharBase) * 0x4000
	screen := uint32(bg.ScreenBase) * 0x800
	if p.engine == types.EngineA {
		char += uint32(p.Controller.CharBase) * 0x10000
		screen += uint32(p.Controller.ScreenBase) * 0x10000
	}
	return char, screen
}

// renderBackground renders line of background i into p.bg[i].
func (p *PPU) renderBackground(i, line int) {
	out := &p.bg[i]
	for x := range out {
		out[x] = layerPixel{}
	}
	if !p.Controller.BGEnabled[i] {
		return
	}
	if i == 0 && p.Controller.Is3D() {
		p.render3D(line)
		return
	}
	switch p.bgKind(i) {
	case bgText:
		p.renderText(i, line)
	case bgAffine:
		p.renderAffine(i, false)
	case bgExtended:
		p.renderAffine(i, true)
	case bgLarge:
		p.renderLarge(i)
	}
}

// render3D copies a line of the 3D layer, scrolled by BG0HOFS.
func (p *PPU) render3D(line int) {
	if p.layer == nil {
		return
	}
	hofs := int(p.Backgrounds[0].HOffset)
	for x := range p.bg[0] {
		sx := (x + hofs) & 0x1FF
		if sx >= ScreenWidth {
			continue
		}
		c, a := p.layer.Pixel(sx, line)
		if a == 0 {
			continue
		}
		p.bg[0][x] = layerPixel{colour: palette.Colour(c & 0x7FFF), alpha: a, opaque: true}
	}
}

// tilePixel resolves pixel px, py of a tile map entry. The entry holds
// the tile number (bit 0-9), flips (bit 10-11) and palette (bit 12-15).
func (p *PPU) tilePixel(i int, bg *background.Background, char uint32, entry uint16, px, py int, colours256 bool) layerPixel {
	tile := uint32(entry & 0x3FF)
	if entry&(1<<10) != 0 {
		px = 7 - px
	}
	if entry&(1<<11) != 0 {
		py = 7 - py
	}
	pal := int(entry >> 12)
	if colours256 {
		idx := int(p.vram.BG(p.engine, char+tile*64+uint32(py*8+px)))
		if idx == 0 {
			return layerPixel{}
		}
		if p.Controller.BGExtPalettes {
			c := p.vram.BGExtPalette(p.engine, bg.ExtPaletteSlot(i), pal*256+idx)
			return layerPixel{colour: palette.Colour(c & 0x7FFF), opaque: true}
		}
		return layerPixel{colour: palette.Colour(p.vram.Palette(p.engine, idx) & 0x7FFF), opaque: true}
	}
	b := p.vram.BG(p.engine, char+tile*32+uint32(py*4+px/2))
	idx := int(b >> (uint(px&1) * 4) & 0xF)
	if idx == 0 {
		return layerPixel{}
	}
	return layerPixel{colour: palette.Colour(p.vram.Palette(p.engine, pal*16+idx) & 0x7FFF), opaque: true}
}

// renderText renders a scrolled tile layer made of 32×32 entry screen
// blocks.
func (p *PPU) renderText(i, line int) {
	bg := &p.Backgrounds[i]
	char, screen := p.bases(bg)
	w, h := bg.TextSize()
	y := (line + int(bg.VOffset)) & (h - 1)
	for x := range p.bg[i] {
		sx := (x + int(bg.HOffset)) & (w - 1)
		block := uint32(sx/256 + (y/256)*(w/256))
		addr := screen + block*0x800 + uint32((y%256)/8*32+(sx%256)/8)*2
		p.bg[i][x] = p.tilePixel(i, bg, char, p.bg16(addr), sx%8, y%8, bg.Colours256)
	}
}

// affineSample walks the internal reference point across the line and
// calls sample for every texel inside a w×h area, wrapping or clipping
// at the edges.
func (p *PPU) affineSample(i, w, h int, wrap bool, sample func(tx, ty int) layerPixel) {
	a := &p.Backgrounds[i].Affine
	ox, oy := a.Origin()
	dx, dy := a.Step()
	for x := range p.bg[i] {
		tx := int((ox + dx*int32(x)) >> 8)
		ty := int((oy + dy*int32(x)) >> 8)
		if wrap {
			tx &= w - 1
			ty &= h - 1
		} else if tx < 0 || tx >= w || ty < 0 || ty >= h {
			continue
		}
		p.bg[i][x] = sample(tx, ty)
	}
}

// renderAffine renders a rotation/scaling layer. Extended layers use
// 16-bit map entries, a 256 colour bitmap or a direct colour bitmap
// depending on BGxCNT bits 7 and 2.
func (p *PPU) renderAffine(i int, extended bool) {
	bg := &p.Backgrounds[i]
	char, screen := p.bases(bg)
	wrap := bg.Wrap()

	if extended && bg.Colours256 {
		w, h := bg.BitmapSize()
		base := uint32(bg.ScreenBase) * 0x4000
		direct := bg.CharBase&1 != 0
		p.affineSample(i, w, h, wrap, func(tx, ty int) layerPixel {
			if direct {
				c := palette.Colour(p.bg16(base + uint32(ty*w+tx)*2))
				return layerPixel{colour: c & 0x7FFF, opaque: c.Opaque()}
			}
			return p.bitmapIndex(base + uint32(ty*w+tx))
		})
		return
	}

	size := bg.AffineSize()
	tiles := size / 8
	p.affineSample(i, size, size, wrap, func(tx, ty int) layerPixel {
		if extended {
			entry := p.bg16(screen + uint32((ty/8)*tiles+tx/8)*2)
			return p.tilePixel(i, bg, char, entry, tx%8, ty%8, true)
		}
		tile := uint32(p.vram.BG(p.engine, screen+uint32((ty/8)*tiles+tx/8)))
		return p.bitmapIndex(char + tile*64 + uint32((ty%8)*8+tx%8))
	})
}

// renderLarge renders the 512×1024 or 1024×512 256 colour bitmap of BG
// mode 6.
func (p *PPU) renderLarge(i int) {
	bg := &p.Backgrounds[i]
	w, h := bg.LargeSize()
	p.affineSample(i, w, h, bg.Wrap(), func(tx, ty int) layerPixel {
		return p.bitmapIndex(uint32(ty*w + tx))
	})
}

// bitmapIndex looks up a 256 colour pixel in the standard BG palette.
func (p *PPU) bitmapIndex(addr uint32) layerPixel {
	idx := int(p.vram.BG(p.engine, addr))
	if idx == 0 {
		return layerPixel{}
	}
	return layerPixel{colour: palette.Colour(p.vram.Palette(p.engine, idx) & 0x7FFF), opaque: true}
}

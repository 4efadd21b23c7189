package ppu

import (
	"github.com/thelolagemann/gomeds/internal/ppu/palette"
)

// objPixel is one pixel of the sprite scanline.
type objPixel struct {
	colour   palette.Colour
	priority uint8
	mode     objMode
	alpha    uint8
	opaque   bool
}

// prescanSprites resolves every sprite covering line into p.obj and the
// OBJ window coverage into p.objWindow. Lower OAM indices win among
// sprites; a later sprite only replaces a pixel with a higher priority.
func (p *PPU) prescanSprites(line int) {
	for x := range p.obj {
		p.obj[x] = objPixel{priority: 4}
		p.objWindow[x] = false
	}
	if !p.Controller.OBJEnabled && !p.Controller.OBJWindowEnabled {
		return
	}
	for i := 0; i < objects; i++ {
		s := readSprite(p.vram, p.engine, i)
		if s.Disabled {
			continue
		}
		bw, bh := s.bounds()
		y := s.Y
		if y+bh > 256 {
			y -= 256
		}
		dy := line - y
		if dy < 0 || dy >= bh {
			continue
		}
		if s.Affine {
			p.affineSprite(&s, dy, bw, bh)
		} else {
			p.normalSprite(&s, dy)
		}
	}
}

func (p *PPU) normalSprite(s *Sprite, dy int) {
	ty := dy
	if s.FlipY {
		ty = s.Height - 1 - dy
	}
	for dx := 0; dx < s.Width; dx++ {
		x := s.X + dx
		if x < 0 || x >= ScreenWidth {
			continue
		}
		tx := dx
		if s.FlipX {
			tx = s.Width - 1 - dx
		}
		p.plotSprite(s, x, tx, ty)
	}
}

func (p *PPU) affineSprite(s *Sprite, dy, bw, bh int) {
	m := readAffine(p.vram, p.engine, s.Group)
	cx, cy := int32(bw/2), int32(bh/2)
	ry := int32(dy) - cy
	for dx := 0; dx < bw; dx++ {
		x := s.X + dx
		if x < 0 || x >= ScreenWidth {
			continue
		}
		rx := int32(dx) - cx
		tx := int((m[0]*rx+m[1]*ry)>>8) + s.Width/2
		ty := int((m[2]*rx+m[3]*ry)>>8) + s.Height/2
		if tx < 0 || tx >= s.Width || ty < 0 || ty >= s.Height {
			continue
		}
		p.plotSprite(s, x, tx, ty)
	}
}

// plotSprite samples texel tx, ty of s and writes it to column x.
func (p *PPU) plotSprite(s *Sprite, x, tx, ty int) {
	colour, alpha, ok := p.spriteTexel(s, tx, ty)
	if !ok {
		return
	}
	if s.Mode == objWindow {
		p.objWindow[x] = true
		return
	}
	if !p.Controller.OBJEnabled {
		return
	}
	cur := &p.obj[x]
	if cur.opaque && cur.priority <= s.Priority {
		return
	}
	*cur = objPixel{
		colour:   colour,
		priority: s.Priority,
		mode:     s.Mode,
		alpha:    alpha,
		opaque:   true,
	}
}

// spriteTexel returns the colour of texel tx, ty of s, and false when the
// texel is transparent.
func (p *PPU) spriteTexel(s *Sprite, tx, ty int) (palette.Colour, uint8, bool) {
	c := p.Controller
	if s.Mode == objBitmap {
		var addr uint32
		switch {
		case c.BitmapOBJ1D:
			addr = uint32(s.Tile)*(128<<c.BitmapOBJBoundary) + uint32(ty*s.Width+tx)*2
		case c.BitmapOBJWide:
			addr = uint32(s.Tile&0x1F)*0x10 + uint32(s.Tile&^0x1F)*0x80 + uint32(ty*256+tx)*2
		default:
			addr = uint32(s.Tile&0x0F)*0x10 + uint32(s.Tile&^0x0F)*0x80 + uint32(ty*128+tx)*2
		}
		v := palette.Colour(uint16(p.vram.OBJ(p.engine, addr)) | uint16(p.vram.OBJ(p.engine, addr+1))<<8)
		if !v.Opaque() || s.Palette == 0 {
			return 0, 0, false
		}
		return v & 0x7FFF, s.Palette, true
	}

	col, row := tx/8, ty/8
	px, py := tx%8, ty%8
	var addr uint32
	if s.Colours256 {
		if c.TileOBJ1D {
			addr = uint32(s.Tile)*(32<<c.TileOBJBoundary) + uint32(row*(s.Width/8)+col)*64
		} else {
			addr = uint32(s.Tile&^1)*32 + uint32(row*32+col*2)*32
		}
		idx := p.vram.OBJ(p.engine, addr+uint32(py*8+px))
		if idx == 0 {
			return 0, 0, false
		}
		if c.OBJExtPalettes {
			return palette.Colour(p.vram.OBJExtPalette(p.engine, int(s.Palette)*256+int(idx))), 0, true
		}
		return palette.Colour(p.vram.Palette(p.engine, 256+int(idx))), 0, true
	}
	if c.TileOBJ1D {
		addr = uint32(s.Tile)*(32<<c.TileOBJBoundary) + uint32(row*(s.Width/8)+col)*32
	} else {
		addr = uint32(s.Tile)*32 + uint32(row*32+col)*32
	}
	b := p.vram.OBJ(p.engine, addr+uint32(py*4+px/2))
	idx := b >> (uint(px&1) * 4) & 0xF
	if idx == 0 {
		return 0, 0, false
	}
	return palette.Colour(p.vram.Palette(p.engine, 256+int(s.Palette)*16+int(idx))), 0, true
}

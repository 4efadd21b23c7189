package render

import "github.com/thelolagemann/gomeds/internal/gx"

var white = colour{63, 63, 63, 31}

// wrap maps a texel coordinate into [0, size) following the repeat and
// flip settings; size is a power of two.
func wrap(v int32, size int32, repeat, flip bool) int32 {
	if !repeat {
		if v < 0 {
			return 0
		}
		if v >= size {
			return size - 1
		}
		return v
	}
	if flip && v&size != 0 {
		return size - 1 - v&(size-1)
	}
	return v & (size - 1)
}

// texel samples the polygon's texture at s, t (12.4 texels). ok is false
// when the polygon is untextured or uses a format that is not decoded.
func (r *Renderer) texel(p *gx.Polygon, s, t int32) (c colour, ok bool) {
	tex := p.Tex
	format := tex.Format()
	if !r.state.Control.Textures || format == gx.TexNone || format == gx.TexCompressed {
		return colour{}, false
	}
	w, h := int32(tex.Width()), int32(tex.Height())
	x := wrap(s>>4, w, tex.RepeatS(), tex.FlipS())
	y := wrap(t>>4, h, tex.RepeatT(), tex.FlipT())
	n := uint32(y*w + x)
	base := tex.Offset()
	palette := p.PaletteBase << 4

	switch format {
	case gx.TexA3I5:
		b := r.vram.Texture(base + n)
		a := int32(b >> 5)
		return r.paletteColour(palette, uint32(b&0x1F), a*4+a/2), true
	case gx.Tex4Colour:
		b := r.vram.Texture(base + n/4)
		i := uint32(b>>(2*(n&3))) & 3
		return r.indexed(p, p.PaletteBase<<3, i), true
	case gx.Tex16Colour:
		b := r.vram.Texture(base + n/2)
		i := uint32(b>>(4*(n&1))) & 0xF
		return r.indexed(p, palette, i), true
	case gx.Tex256Colour:
		return r.indexed(p, palette, uint32(r.vram.Texture(base+n))), true
	case gx.TexA5I3:
		b := r.vram.Texture(base + n)
		return r.paletteColour(palette, uint32(b&7), int32(b>>3)), true
	case gx.TexDirect:
		v := r.texture16(base + n*2)
		var a int32
		if v&0x8000 != 0 {
			a = 31
		}
		return fromBGR555(v, a), true
	}
	return colour{}, false
}

func (r *Renderer) paletteColour(base, index uint32, alpha int32) colour {
	return fromBGR555(r.vram.TexturePalette(base+index*2), alpha)
}

func (r *Renderer) indexed(p *gx.Polygon, base, index uint32) colour {
	if index == 0 && p.Tex.Transparent0() {
		return colour{}
	}
	return r.paletteColour(base, index, 31)
}

func (r *Renderer) toon(level int32) colour {
	return fromBGR555(r.state.ToonTable[level>>1&0x1F], 31)
}

func modulate(t, v colour) colour {
	return colour{
		r: ((t.r+1)*(v.r+1) - 1) >> 6,
		g: ((t.g+1)*(v.g+1) - 1) >> 6,
		b: ((t.b+1)*(v.b+1) - 1) >> 6,
		a: ((t.a+1)*(v.a+1) - 1) >> 5,
	}
}

// shade combines the interpolated vertex colour with the texel according
// to the polygon mode.
func (r *Renderer) shade(p *gx.Polygon, vc [3]int32, s, t int32) colour {
	alpha := int32(p.Attr.Alpha())
	if alpha == 0 {
		alpha = 31
	}
	v := colour{vc[0], vc[1], vc[2], alpha}
	tc, textured := r.texel(p, s, t)
	if !textured {
		tc = white
	}

	switch p.Attr.Mode() {
	case gx.Decal:
		if !textured {
			return v
		}
		switch tc.a {
		case 0:
			return v
		case 31:
			tc.a = v.a
			return tc
		}
		return colour{
			r: (tc.r*tc.a + v.r*(31-tc.a)) >> 5,
			g: (tc.g*tc.a + v.g*(31-tc.a)) >> 5,
			b: (tc.b*tc.a + v.b*(31-tc.a)) >> 5,
			a: v.a,
		}
	case gx.Toon:
		toon := r.toon(v.r)
		if !r.state.Control.Highlight {
			toon.a = v.a
			return modulate(tc, toon)
		}
		c := modulate(tc, colour{v.r, v.r, v.r, v.a})
		c.r = min(c.r+toon.r, 63)
		c.g = min(c.g+toon.g, 63)
		c.b = min(c.b+toon.b, 63)
		return c
	}
	return modulate(tc, v)
}

package render

import (
	"github.com/thelolagemann/gomeds/internal/gx"
	"github.com/thelolagemann/gomeds/internal/types"
)

// fraction is the fixed point precision of interpolation factors.
const fraction = 16

// point is a polygon edge or span end point with its attributes.
type point struct {
	x      int64 // 16.16
	depth  int64
	w      int64
	colour [3]int64
	tex    [2]int64
}

// perspective corrects the screen space factor num/den for the depth of
// the two end points; the result has fraction bits of precision.
func perspective(num, den, w0, w1 int64) int64 {
	for w0 >= 1<<16 || w1 >= 1<<16 {
		w0, w1 = w0>>1, w1>>1
	}
	d := (den-num)*w1 + num*w0
	if d == 0 {
		return num << fraction / den
	}
	return num * w0 << fraction / d
}

func lerp(a, b, f int64) int64 {
	return a + (b-a)*f>>fraction
}

// edge interpolates the edge a-b at screen row y (sampled at its centre).
func (r *Renderer) edge(a, b *gx.Vertex, y int32) point {
	num := int64(2*y + 1 - 2*a.Y)
	den := int64(2 * (b.Y - a.Y))
	wa, wb := int64(a.W), int64(b.W)
	pf := perspective(num, den, wa, wb)
	p := point{
		x:     int64(a.X)<<16 + (int64(b.X-a.X)<<16)*num/den,
		depth: int64(a.Depth) + (int64(b.Depth)-int64(a.Depth))*num/den,
		w:     lerp(wa, wb, pf),
	}
	for i := 0; i < 3; i++ {
		p.colour[i] = lerp(int64(a.Colour[i]), int64(b.Colour[i]), pf)
	}
	for i := 0; i < 2; i++ {
		p.tex[i] = lerp(int64(a.TexCoord[i]), int64(b.TexCoord[i]), pf)
	}
	return p
}

func fromVertex(v *gx.Vertex) point {
	p := point{x: int64(v.X) << 16, depth: int64(v.Depth), w: int64(v.W)}
	for i := 0; i < 3; i++ {
		p.colour[i] = int64(v.Colour[i])
	}
	for i := 0; i < 2; i++ {
		p.tex[i] = int64(v.TexCoord[i])
	}
	return p
}

// polygon scan converts a convex polygon one row at a time.
func (r *Renderer) polygon(p *gx.Polygon) {
	vs := r.buf.PolygonVertices(p)
	top, bottom := p.Top, p.Bottom
	flat := top == bottom
	if flat {
		bottom++
	}
	for y := top; y < bottom && y < types.ScreenHeight; y++ {
		var left, right point
		found := false
		for i := range vs {
			a, b := &vs[i], &vs[(i+1)%len(vs)]
			var pt point
			switch {
			case flat:
				pt = fromVertex(a)
			case a.Y == b.Y:
				continue
			default:
				lo, hi := a.Y, b.Y
				if lo > hi {
					lo, hi = hi, lo
				}
				if y < lo || y >= hi {
					continue
				}
				pt = r.edge(a, b, y)
			}
			if !found || pt.x < left.x {
				left = pt
			}
			if !found || pt.x > right.x {
				right = pt
			}
			found = true
		}
		if found {
			r.span(p, int(y), &left, &right, y == top || y == bottom-1)
		}
	}
}

// span fills the pixels of row y whose centres lie between l and r.
func (r *Renderer) span(p *gx.Polygon, y int, l, rt *point, edgeRow bool) {
	xs := int((l.x - 0x8000 + 0xFFFF) >> 16)
	xe := int((rt.x - 0x8000 + 0xFFFF) >> 16)
	if xe <= xs {
		// keep slivers visible
		xe = xs + 1
	}
	if xs < 0 {
		xs = 0
	}
	if xe > types.ScreenWidth {
		xe = types.ScreenWidth
	}
	width := rt.x - l.x
	wireframe := p.Attr.Alpha() == 0

	for x := xs; x < xe; x++ {
		if wireframe && !edgeRow && x != xs && x != xe-1 {
			continue
		}
		num := int64(x)<<16 + 0x8000 - l.x
		var f, pf int64
		if width > 0 {
			f = num << fraction / width
			pf = perspective(num, width, l.w, rt.w)
		}
		var depth int64
		if r.buf.WBuffer {
			depth = lerp(l.w, rt.w, pf)
		} else {
			depth = lerp(l.depth, rt.depth, f)
		}
		if depth < 0 {
			depth = 0
		} else if depth > 0xFFFFFF {
			depth = 0xFFFFFF
		}
		var vc [3]int32
		for i := range vc {
			vc[i] = int32(lerp(l.colour[i], rt.colour[i], pf))
		}
		s := int32(lerp(l.tex[0], rt.tex[0], pf))
		t := int32(lerp(l.tex[1], rt.tex[1], pf))
		r.plot(p, y*types.ScreenWidth+x, uint32(depth), vc, s, t)
	}
}

// plot runs the per pixel tests and writes a fragment.
func (r *Renderer) plot(p *gx.Polygon, i int, depth uint32, vc [3]int32, s, t int32) {
	f := &r.frame
	stored := f.depth[i]
	if p.Attr.DepthEqual() {
		diff := int64(depth) - int64(stored)
		if diff < -depthEqualMargin || diff > depthEqualMargin {
			return
		}
	} else if depth >= stored {
		return
	}

	c := r.shade(p, vc, s, t)
	if c.a == 0 {
		return
	}
	if r.state.Control.AlphaTest && c.a <= int32(r.state.AlphaTestRef) {
		return
	}

	id := p.Attr.ID()
	if c.a == 31 {
		f.colour[i] = c
		f.depth[i] = depth
		f.id[i] = id
		f.flags[i] = flagPolygon
		if p.Attr.Fog() {
			f.flags[i] |= flagFog
		}
		return
	}

	// translucent pixels never cover translucent pixels of the same id
	if f.flags[i]&flagTranslucent != 0 && f.id[i] == id {
		return
	}
	dst := f.colour[i]
	if r.state.Control.AlphaBlend && dst.a > 0 {
		a := c.a
		c.r = (c.r*(a+1) + dst.r*(31-a)) >> 5
		c.g = (c.g*(a+1) + dst.g*(31-a)) >> 5
		c.b = (c.b*(a+1) + dst.b*(31-a)) >> 5
		if dst.a > c.a {
			c.a = dst.a
		}
	}
	f.colour[i] = c
	if p.Attr.TranslucentDepth() {
		f.depth[i] = depth
	}
	f.id[i] = id
	fog := f.flags[i]&flagFog != 0 && p.Attr.Fog()
	f.flags[i] = flagTranslucent | flagPolygon
	if fog {
		f.flags[i] |= flagFog
	}
}

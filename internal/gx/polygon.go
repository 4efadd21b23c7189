package gx

import (
	"github.com/thelolagemann/gomeds/internal/types"
	"github.com/thelolagemann/gomeds/pkg/utils"
)

// winding returns the orientation of the first non-degenerate corner of
// the polygon in projected space; positive is counter-clockwise with Y
// pointing up.
func winding(vs []Vertex) int64 {
	for i := 2; i < len(vs); i++ {
		a, b, c := reduce(vs[0].Clip, vs[i-1].Clip, vs[i].Clip)
		det := int64(a[0])*(int64(b[1])*int64(c[3])-int64(c[1])*int64(b[3])) -
			int64(b[0])*(int64(a[1])*int64(c[3])-int64(c[1])*int64(a[3])) +
			int64(c[0])*(int64(a[1])*int64(b[3])-int64(b[1])*int64(a[3]))
		if det != 0 {
			return det
		}
	}
	return 0
}

// reduce scales three clip positions down together so that the triple
// products of winding fit in 64 bits.
func reduce(a, b, c [4]int32) ([4]int32, [4]int32, [4]int32) {
	var max int32
	for _, v := range [][4]int32{a, b, c} {
		for _, x := range v {
			if x < 0 {
				x = -x
			}
			max = utils.Max(max, x)
		}
	}
	for ; max >= 1<<20; max >>= 1 {
		for i := range a {
			a[i] >>= 1
			b[i] >>= 1
			c[i] >>= 1
		}
	}
	return a, b, c
}

// emit culls, clips and stores a completed primitive.
func (e *Engine) emit(vs ...Vertex) {
	front := winding(vs) >= 0
	if front && !e.attr.Front() || !front && !e.attr.Back() {
		return
	}

	copy(e.clipIn[:], vs)
	out := clipPolygon(e.clipIn[:len(vs)], e.attr.FarPlane(), &e.clipOut, &e.clipIn)
	if len(out) < 3 {
		return
	}

	buf := e.Geometry()
	if !buf.fits(len(out)) {
		if !e.overflowed {
			e.log.Warnf("gx: polygon RAM overflow (%d polygons, %d vertices)", len(buf.Polygons), len(buf.Vertices))
		}
		e.overflowed = true
		e.Render.Control.RAMOverflow = true
		return
	}

	poly := Polygon{
		First:       len(buf.Vertices),
		Count:       len(out),
		Attr:        e.attr,
		Tex:         e.texParam,
		PaletteBase: e.paletteBase,
		Top:         types.ScreenHeight,
		Bottom:      0,
		FrontFacing: front,
	}
	for _, v := range out {
		e.project(&v)
		poly.Top = utils.Min(poly.Top, v.Y)
		poly.Bottom = utils.Max(poly.Bottom, v.Y)
		buf.Vertices = append(buf.Vertices, v)
	}
	alpha := e.attr.Alpha()
	format := e.texParam.Format()
	poly.Translucent = alpha > 0 && alpha < 31 || format == TexA3I5 || format == TexA5I3
	buf.Polygons = append(buf.Polygons, poly)
}

// project applies the viewport transform and computes both depth values.
func (e *Engine) project(v *Vertex) {
	x, y, z, w := int64(v.Clip[0]), int64(v.Clip[1]), int64(v.Clip[2]), int64(v.Clip[3])
	if w <= 0 {
		w = 1
	}
	vp := &e.viewport
	width := int64(vp.X2-vp.X1) + 1
	height := int64(vp.Y2-vp.Y1) + 1

	sx := (x+w)*width/(2*w) + int64(vp.X1)
	sy := (y+w)*height/(2*w) + int64(vp.Y1)
	v.X = int32(utils.Clamp(0, sx, types.ScreenWidth))
	v.Y = int32(utils.Clamp(0, types.ScreenHeight-sy, types.ScreenHeight))

	depth := ((z<<14)/w + 0x3FFF) << 9
	v.Depth = uint32(utils.Clamp(0, depth, 0xFFFFFF))
	v.W = int32(utils.Clamp(0, w, 0xFFFFFF))
}

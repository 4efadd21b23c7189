// Package render rasterizes the polygons of a geometry buffer into the
// 3D layer.
package render

import (
	"sort"

	"github.com/thelolagemann/gomeds/internal/gx"
	"github.com/thelolagemann/gomeds/internal/memory"
	"github.com/thelolagemann/gomeds/internal/types"
)

const (
	// rear plane bitmap slots of texture memory
	clearColourSlot = 0x40000
	clearDepthSlot  = 0x60000
	// depth difference accepted by the equal depth test
	depthEqualMargin = 0x200
)

// Renderer owns the 3D layer and draws a render buffer into it once per
// frame.
type Renderer struct {
	vram  memory.VRAM
	frame Frame
	order []int

	// per frame
	buf   *gx.Buffer
	state *gx.RenderState
}

// New returns a Renderer reading textures from vram.
func New(vram memory.VRAM) *Renderer {
	return &Renderer{
		vram:  vram,
		order: make([]int, 0, gx.MaxPolygons),
	}
}

// Frame returns the last rendered 3D layer.
func (r *Renderer) Frame() *Frame {
	return &r.frame
}

// Render draws buf into the 3D layer. Opaque polygons are drawn first in
// submission order, then translucent ones, sorted by their vertical
// extent unless the buffer was swapped with manual sorting.
func (r *Renderer) Render(buf *gx.Buffer, state *gx.RenderState) {
	r.buf, r.state = buf, state
	r.clear()

	r.order = r.order[:0]
	for i := range buf.Polygons {
		if !buf.Polygons[i].Translucent {
			r.order = append(r.order, i)
		}
	}
	opaque := len(r.order)
	for i := range buf.Polygons {
		if buf.Polygons[i].Translucent {
			r.order = append(r.order, i)
		}
	}
	if !buf.ManualSort {
		translucent := r.order[opaque:]
		sort.SliceStable(translucent, func(i, j int) bool {
			a, b := &buf.Polygons[translucent[i]], &buf.Polygons[translucent[j]]
			if a.Bottom != b.Bottom {
				return a.Bottom < b.Bottom
			}
			return a.Top < b.Top
		})
	}

	for _, i := range r.order {
		p := &buf.Polygons[i]
		// shadow volumes are not emulated
		if p.Attr.Mode() == gx.Shadow {
			continue
		}
		r.polygon(p)
	}

	if state.Control.EdgeMarking {
		r.edgeMarking()
	}
	if state.Control.Fog {
		r.fog()
	}
}

// clear fills the layer with the rear plane.
func (r *Renderer) clear() {
	s := r.state
	f := &r.frame
	if !s.Control.RearPlaneBitmap {
		c := fromBGR555(s.ClearColour, int32(s.ClearAlpha))
		depth := s.ClearDepth24()
		var flags uint8
		if s.ClearFog {
			flags = flagFog
		}
		for i := 0; i < pixels; i++ {
			f.colour[i] = c
			f.depth[i] = depth
			f.id[i] = s.ClearID
			f.flags[i] = flags
		}
		return
	}
	for y := 0; y < types.ScreenHeight; y++ {
		ty := uint32(uint8(y) + s.ClearOffsetY)
		for x := 0; x < types.ScreenWidth; x++ {
			tx := uint32(uint8(x) + s.ClearOffsetX)
			off := (ty*256 + tx) * 2
			c := r.texture16(clearColourSlot + off)
			d := r.texture16(clearDepthSlot + off)
			i := y*types.ScreenWidth + x
			var a int32
			if c&0x8000 != 0 {
				a = 31
			}
			f.colour[i] = fromBGR555(c, a)
			f.depth[i] = gx.ExpandDepth(d)
			f.id[i] = s.ClearID
			f.flags[i] = 0
			if d&0x8000 != 0 {
				f.flags[i] = flagFog
			}
		}
	}
}

func (r *Renderer) texture16(off uint32) uint16 {
	return uint16(r.vram.Texture(off)) | uint16(r.vram.Texture(off+1))<<8
}

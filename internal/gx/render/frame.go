package render

import "github.com/thelolagemann/gomeds/internal/types"

const pixels = types.ScreenWidth * types.ScreenHeight

// per pixel flags
const (
	flagTranslucent uint8 = 1 << iota
	flagFog
	flagPolygon // written by a polygon rather than the rear plane
)

// colour is a 6-bit per channel colour with a 5-bit alpha.
type colour struct {
	r, g, b, a int32
}

func fromBGR555(c uint16, a int32) colour {
	expand := func(v int32) int32 {
		if v == 0 {
			return 0
		}
		return v*2 + 1
	}
	return colour{
		r: expand(int32(c & 0x1F)),
		g: expand(int32(c >> 5 & 0x1F)),
		b: expand(int32(c >> 10 & 0x1F)),
		a: a,
	}
}

func (c colour) bgr555() uint16 {
	return uint16(c.r>>1) | uint16(c.g>>1)<<5 | uint16(c.b>>1)<<10
}

// Frame is the rendered 3D layer read by the BG0 compositor.
type Frame struct {
	colour [pixels]colour
	depth  [pixels]uint32
	id     [pixels]uint8
	flags  [pixels]uint8
}

// Pixel returns the BGR555 colour and 5-bit alpha at x, y. An alpha of 0
// is a transparent pixel.
func (f *Frame) Pixel(x, y int) (uint16, uint8) {
	c := f.colour[y*types.ScreenWidth+x]
	return c.bgr555(), uint8(c.a)
}

// Depth returns the 24-bit depth at x, y.
func (f *Frame) Depth(x, y int) uint32 {
	return f.depth[y*types.ScreenWidth+x]
}

// ID returns the polygon id at x, y.
func (f *Frame) ID(x, y int) uint8 {
	return f.id[y*types.ScreenWidth+x]
}

package render

import "github.com/thelolagemann/gomeds/internal/types"

// edgeMarking recolours opaque polygon pixels that border a pixel of a
// different polygon id lying behind them.
func (r *Renderer) edgeMarking() {
	f := &r.frame
	clearID := r.state.ClearID
	clearDepth := r.state.ClearDepth24()
	neighbour := func(x, y int) (uint8, uint32) {
		if x < 0 || y < 0 || x >= types.ScreenWidth || y >= types.ScreenHeight {
			return clearID, clearDepth
		}
		i := y*types.ScreenWidth + x
		return f.id[i], f.depth[i]
	}

	var marked [pixels]bool
	for y := 0; y < types.ScreenHeight; y++ {
		for x := 0; x < types.ScreenWidth; x++ {
			i := y*types.ScreenWidth + x
			if f.flags[i]&(flagPolygon|flagTranslucent) != flagPolygon {
				continue
			}
			for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
				id, depth := neighbour(x+d[0], y+d[1])
				if id != f.id[i] && f.depth[i] < depth {
					marked[i] = true
					break
				}
			}
		}
	}
	for i := range marked {
		if marked[i] {
			c := fromBGR555(r.state.EdgeColours[f.id[i]>>3], f.colour[i].a)
			f.colour[i] = c
		}
	}
}

// fogDensity looks up the fog table for a depth, interpolating between
// entries; the result is in 0-128.
func (r *Renderer) fogDensity(depth uint32) int32 {
	s := r.state
	z := int32(depth >> 9)
	offset := int32(s.FogOffset)
	step := int32(0x400 >> s.Control.FogShift)
	if step == 0 {
		step = 1
	}
	density := func(i int32) int32 {
		d := int32(s.FogTable[i])
		if d == 127 {
			d = 128
		}
		return d
	}
	if z < offset+step {
		return density(0)
	}
	i := (z - offset) / step
	if i >= 32 {
		return density(31)
	}
	lo, hi := density(i-1), density(i)
	frac := (z - offset) % step
	return lo + (hi-lo)*frac/step
}

// fog blends fog enabled pixels towards the fog colour.
func (r *Renderer) fog() {
	f := &r.frame
	s := r.state
	fc := fromBGR555(s.FogColour, int32(s.FogAlpha))
	for i := 0; i < pixels; i++ {
		if f.flags[i]&flagFog == 0 {
			continue
		}
		d := r.fogDensity(f.depth[i])
		c := &f.colour[i]
		if !s.Control.FogAlphaOnly {
			c.r = (fc.r*d + c.r*(128-d)) >> 7
			c.g = (fc.g*d + c.g*(128-d)) >> 7
			c.b = (fc.b*d + c.b*(128-d)) >> 7
		}
		c.a = (fc.a*d + c.a*(128-d)) >> 7
	}
}

// Package window provides the window registers of a 2D engine and the
// per scanline window mask derived from them.
package window

// Mask bits select which layers are drawn at a pixel.
const (
	MaskBG0 uint8 = 1 << iota
	MaskBG1
	MaskBG2
	MaskBG3
	MaskOBJ
	MaskEffects

	// MaskAll enables every layer and colour special effects.
	MaskAll uint8 = 0x3F
)

// Rect is the rectangle of window 0 or 1. Its values are stored in
// WINxH and WINxV as follows:
//
//	WINxH Bit 0-7 X2 (rightmost coordinate + 1), Bit 8-15 X1 (leftmost)
//	WINxV Bit 0-7 Y2 (bottom coordinate + 1),    Bit 8-15 Y1 (top)
//
// When the first coordinate is greater than the second, the window wraps
// around the screen edge.
type Rect struct {
	X1, X2, Y1, Y2 uint8
}

// WriteH writes WINxH.
func (r *Rect) WriteH(value uint16) {
	r.X1, r.X2 = uint8(value>>8), uint8(value)
}

// WriteV writes WINxV.
func (r *Rect) WriteV(value uint16) {
	r.Y1, r.Y2 = uint8(value>>8), uint8(value)
}

func inside(v, lo, hi int) bool {
	if lo <= hi {
		return v >= lo && v < hi
	}
	return v >= lo || v < hi
}

// ContainsLine reports whether line lies within the vertical range.
func (r *Rect) ContainsLine(line int) bool {
	return inside(line, int(r.Y1), int(r.Y2))
}

// ContainsX reports whether x lies within the horizontal range.
func (r *Rect) ContainsX(x int) bool {
	return inside(x, int(r.X1), int(r.X2))
}

// Control holds the layer enables of every window region. WININ
// (0x04000048) and WINOUT (0x0400004A) are stored as follows:
//
//	WININ  Bit 0-5 Window 0 (BG0-3, OBJ, Effects), Bit 8-13 Window 1
//	WINOUT Bit 0-5 Outside of windows,             Bit 8-13 OBJ window
type Control struct {
	Win0, Win1, Outside, OBJWin uint8
}

// WriteIn writes WININ.
func (c *Control) WriteIn(value uint16) {
	c.Win0 = uint8(value) & MaskAll
	c.Win1 = uint8(value>>8) & MaskAll
}

// ReadIn packs WININ.
func (c *Control) ReadIn() uint16 {
	return uint16(c.Win0) | uint16(c.Win1)<<8
}

// WriteOut writes WINOUT.
func (c *Control) WriteOut(value uint16) {
	c.Outside = uint8(value) & MaskAll
	c.OBJWin = uint8(value>>8) & MaskAll
}

// ReadOut packs WINOUT.
func (c *Control) ReadOut() uint16 {
	return uint16(c.Outside) | uint16(c.OBJWin)<<8
}

// Enables selects which windows take part in the mask.
type Enables struct {
	Win0, Win1, OBJWin bool
}

// Any reports whether any window is enabled.
func (e Enables) Any() bool {
	return e.Win0 || e.Win1 || e.OBJWin
}

// Compute fills mask with the layer enables of every pixel of line.
// objWindow marks the pixels covered by OBJ window sprites. Window 0 has
// the highest priority, followed by window 1, the OBJ window and finally
// the outside region. With no window enabled every layer is shown.
func Compute(mask []uint8, line int, en Enables, rects *[2]Rect, c *Control, objWindow []bool) {
	if !en.Any() {
		for x := range mask {
			mask[x] = MaskAll
		}
		return
	}
	in0 := en.Win0 && rects[0].ContainsLine(line)
	in1 := en.Win1 && rects[1].ContainsLine(line)
	for x := range mask {
		switch {
		case in0 && rects[0].ContainsX(x):
			mask[x] = c.Win0
		case in1 && rects[1].ContainsX(x):
			mask[x] = c.Win1
		case en.OBJWin && objWindow[x]:
			mask[x] = c.OBJWin
		default:
			mask[x] = c.Outside
		}
	}
}

// Package palette provides the colour representation of the 2D engines
// and the master brightness stage applied to their output.
package palette

// Colour is a 15-bit BGR555 colour. Bit 15 is used by bitmap sources
// as an opacity flag and is ignored when converting.
type Colour uint16

// Blank is the colour of a screen whose display is turned off.
const Blank uint32 = 0xFFF3F3F3

// White is the colour of a force-blanked screen.
const White uint32 = 0xFFFFFFFF

// RGB builds a colour from three 5-bit channels.
func RGB(r, g, b uint8) Colour {
	return Colour(r&0x1F) | Colour(g&0x1F)<<5 | Colour(b&0x1F)<<10
}

// R returns the 5-bit red channel.
func (c Colour) R() uint8 { return uint8(c & 0x1F) }

// G returns the 5-bit green channel.
func (c Colour) G() uint8 { return uint8(c >> 5 & 0x1F) }

// B returns the 5-bit blue channel.
func (c Colour) B() uint8 { return uint8(c >> 10 & 0x1F) }

// ARGB converts the colour to an opaque 0xAARRGGBB value.
func (c Colour) ARGB() uint32 {
	return 0xFF000000 |
		uint32(c.R())<<19 |
		uint32(c.G())<<11 |
		uint32(c.B())<<3
}

// Opaque reports whether the bitmap opacity flag is set.
func (c Colour) Opaque() bool {
	return c&0x8000 != 0
}

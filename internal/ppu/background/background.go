// Package background provides the register views of the four background
// layers of a 2D engine: BGxCNT, the scroll offsets and the affine
// parameters of BG2 and BG3.
package background

import (
	"github.com/thelolagemann/gomeds/pkg/bits"
)

// Control is the control register of a background. Its value is stored
// in BGxCNT (0x04000008 + 2x) as follows:
//
//	Bit 0-1   BG Priority (0=Highest)
//	Bit 2-5   Character Base Block (in units of 16KB)
//	Bit 6     Mosaic
//	Bit 7     Colours/Palettes (0=16/16, 1=256/1)
//	Bit 8-12  Screen Base Block (in units of 2KB)
//	Bit 13    BG0/BG1: Ext Palette Slot (0=Slot0/1, 1=Slot2/3)
//	          BG2/BG3: Display Area Overflow (0=Transparent, 1=Wraparound)
//	Bit 14-15 Screen Size
type Control struct {
	// Priority is the BG priority, 0 being the highest.
	Priority uint8
	// CharBase is the character base block.
	CharBase uint8
	// Mosaic is the mosaic flag.
	Mosaic bool
	// Colours256 selects 256 colour tiles. For extended backgrounds it
	// selects a bitmap instead of a 16-bit affine map.
	Colours256 bool
	// ScreenBase is the screen base block.
	ScreenBase uint8
	// Bit13 selects the alternate extended palette slot on BG0/BG1 and
	// enables wraparound on BG2/BG3.
	Bit13 bool
	// Size is the screen size setting.
	Size uint8
}

// Write writes the value to the control register.
func (c *Control) Write(value uint16) {
	c.Priority = uint8(bits.Field(value, 0, 2))
	c.CharBase = uint8(bits.Field(value, 2, 4))
	c.Mosaic = bits.Test(value, 6)
	c.Colours256 = bits.Test(value, 7)
	c.ScreenBase = uint8(bits.Field(value, 8, 5))
	c.Bit13 = bits.Test(value, 13)
	c.Size = uint8(bits.Field(value, 14, 2))
}

// Read packs the control register.
func (c *Control) Read() uint16 {
	return uint16(c.Priority&3) |
		uint16(c.CharBase&0xF)<<2 |
		bits.From[uint16](c.Mosaic, 6) |
		bits.From[uint16](c.Colours256, 7) |
		uint16(c.ScreenBase&0x1F)<<8 |
		bits.From[uint16](c.Bit13, 13) |
		uint16(c.Size&3)<<14
}

// Background holds the state of one background layer.
type Background struct {
	Control
	// HOffset and VOffset are the 9-bit scroll offsets of text layers.
	HOffset, VOffset uint16
	// Affine holds the rotation/scaling state of BG2 and BG3.
	Affine Affine
}

// WriteHOffset writes BGxHOFS; the offset wraps at 9 bits.
func (b *Background) WriteHOffset(value uint16) {
	b.HOffset = value & 0x1FF
}

// WriteVOffset writes BGxVOFS; the offset wraps at 9 bits.
func (b *Background) WriteVOffset(value uint16) {
	b.VOffset = value & 0x1FF
}

// TextSize returns the width and height of a text layer in pixels.
func (c *Control) TextSize() (int, int) {
	return 256 << (c.Size & 1), 256 << (c.Size >> 1)
}

// AffineSize returns the side of a square affine tile layer in pixels.
func (c *Control) AffineSize() int {
	return 128 << c.Size
}

// bitmapSizes are the dimensions of extended bitmap layers.
var bitmapSizes = [4][2]int{{128, 128}, {256, 256}, {512, 256}, {512, 512}}

// BitmapSize returns the width and height of an extended bitmap layer.
func (c *Control) BitmapSize() (int, int) {
	s := bitmapSizes[c.Size]
	return s[0], s[1]
}

// LargeSize returns the dimensions of the mode 6 large bitmap.
func (c *Control) LargeSize() (int, int) {
	if c.Size&1 == 0 {
		return 512, 1024
	}
	return 1024, 512
}

// Wrap reports whether an affine layer wraps around at its edges.
func (c *Control) Wrap() bool {
	return c.Bit13
}

// ExtPaletteSlot returns the extended palette slot used by layer index.
func (c *Control) ExtPaletteSlot(index int) int {
	if index < 2 && c.Bit13 {
		return index + 2
	}
	return index
}

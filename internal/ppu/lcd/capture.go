package lcd

import (
	"github.com/thelolagemann/gomeds/pkg/bits"
	"github.com/thelolagemann/gomeds/pkg/utils"
)

// CaptureSource selects what a display capture writes to VRAM.
type CaptureSource uint8

const (
	// CaptureA captures source A only.
	CaptureA CaptureSource = iota
	// CaptureB captures source B only.
	CaptureB
	// CaptureBlend blends source A and source B.
	CaptureBlend
)

// captureSizes are the width and height of each capture size setting.
var captureSizes = [4][2]int{{128, 128}, {256, 64}, {256, 128}, {256, 192}}

// Capture is the display capture control of engine A. Its value is
// stored in DISPCAPCNT (0x04000064) as follows:
//
//	Bit 0-4   EVA (0..16)
//	Bit 8-12  EVB (0..16)
//	Bit 16-17 VRAM Write Block (0-3 = A-D)
//	Bit 18-19 VRAM Write Offset (0=0, 1=8000h, 2=10000h, 3=18000h)
//	Bit 20-21 Capture Size (0=128x128, 1=256x64, 2=256x128, 3=256x192)
//	Bit 24    Source A (0=Graphics Screen BG+3D+OBJ, 1=3D Screen)
//	Bit 25    Source B (0=VRAM, 1=Main Memory Display FIFO)
//	Bit 26-27 VRAM Read Offset (0=0, 1=8000h, 2=10000h, 3=18000h)
//	Bit 29-30 Capture Source (0=A, 1=B, 2/3=A+B blended)
//	Bit 31    Capture Enable (cleared when the capture is finished)
type Capture struct {
	// EVA and EVB are the blend coefficients, clamped to 16.
	EVA, EVB uint8
	// WriteBlock is the destination bank.
	WriteBlock uint8
	// WriteOffset is the destination offset setting.
	WriteOffset uint8
	// Size is the capture size setting.
	Size uint8
	// Source3D selects the 3D layer as source A.
	Source3D bool
	// SourceFIFO selects the main memory display FIFO as source B.
	SourceFIFO bool
	// ReadOffset is the source B VRAM offset setting.
	ReadOffset uint8
	// Source selects which sources are captured.
	Source CaptureSource
	// Enabled is set while a capture is requested or in progress.
	Enabled bool
}

// Write writes the value to the capture control register.
func (c *Capture) Write(value uint32) {
	c.EVA = utils.Min(uint8(bits.Field(value, 0, 5)), 16)
	c.EVB = utils.Min(uint8(bits.Field(value, 8, 5)), 16)
	c.WriteBlock = uint8(bits.Field(value, 16, 2))
	c.WriteOffset = uint8(bits.Field(value, 18, 2))
	c.Size = uint8(bits.Field(value, 20, 2))
	c.Source3D = bits.Test(value, 24)
	c.SourceFIFO = bits.Test(value, 25)
	c.ReadOffset = uint8(bits.Field(value, 26, 2))
	c.Source = CaptureSource(utils.Min(bits.Field(value, 29, 2), 2))
	c.Enabled = bits.Test(value, 31)
}

// Read packs the capture control register.
func (c *Capture) Read() uint32 {
	return uint32(c.EVA) |
		uint32(c.EVB)<<8 |
		uint32(c.WriteBlock&3)<<16 |
		uint32(c.WriteOffset&3)<<18 |
		uint32(c.Size&3)<<20 |
		bits.From[uint32](c.Source3D, 24) |
		bits.From[uint32](c.SourceFIFO, 25) |
		uint32(c.ReadOffset&3)<<26 |
		uint32(c.Source&3)<<29 |
		bits.From[uint32](c.Enabled, 31)
}

// Dimensions returns the width and height of the captured area.
func (c *Capture) Dimensions() (int, int) {
	s := captureSizes[c.Size&3]
	return s[0], s[1]
}

// WriteAddress returns the destination byte offset of pixel x on line
// y, wrapping within the 128KB bank.
func (c *Capture) WriteAddress(x, y int) uint32 {
	w, _ := c.Dimensions()
	return (uint32(c.WriteOffset)*0x8000 + uint32(y*w+x)*2) & 0x1FFFF
}

// ReadAddress returns the source B byte offset of pixel x on line y. The
// source is always read as a 256 pixel wide bitmap.
func (c *Capture) ReadAddress(x, y int) uint32 {
	return (uint32(c.ReadOffset)*0x8000 + uint32(y*256+x)*2) & 0x1FFFF
}

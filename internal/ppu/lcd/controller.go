package lcd

import (
	"github.com/thelolagemann/gomeds/internal/types"
	"github.com/thelolagemann/gomeds/pkg/bits"
)

// Controller is the display controller of a 2D engine. It selects the BG
// mode, which layers are displayed, how OBJ tiles are mapped and which
// display mode drives the screen.
//
// Its value is stored in DISPCNT (0x04000000, engine B 0x04001000) as
// follows:
//
//	Bit 0-2   BG Mode
//	Bit 3     BG0 2D/3D Selection (engine A only)
//	Bit 4     Tile OBJ Mapping (0=2D, 1=1D)
//	Bit 5     Bitmap OBJ 2D-Dimension (0=128x512, 1=256x256)
//	Bit 6     Bitmap OBJ Mapping (0=2D, 1=1D)
//	Bit 7     Forced Blank
//	Bit 8-11  Screen Display BG0-BG3
//	Bit 12    Screen Display OBJ
//	Bit 13-14 Window 0/1 Display Flag
//	Bit 15    OBJ Window Display Flag
//	Bit 16-17 Display Mode (engine B: 0-1 only)
//	Bit 18-19 VRAM block (engine A only)
//	Bit 20-21 Tile OBJ 1D-Boundary
//	Bit 22    Bitmap OBJ 1D-Boundary (engine A only)
//	Bit 23    OBJ Processing during H-Blank
//	Bit 24-26 Character Base (engine A only)
//	Bit 27-29 Screen Base (engine A only)
//	Bit 30    BG Extended Palettes
//	Bit 31    OBJ Extended Palettes
type Controller struct {
	engine types.Engine

	// BGMode selects how BG0-BG3 are interpreted (0-6).
	BGMode uint8
	// BG03D is set when BG0 displays the 3D layer.
	BG03D bool
	// TileOBJ1D selects 1D tile OBJ mapping.
	TileOBJ1D bool
	// BitmapOBJWide selects the 256 pixel wide 2D bitmap OBJ layout.
	BitmapOBJWide bool
	// BitmapOBJ1D selects 1D bitmap OBJ mapping.
	BitmapOBJ1D bool
	// ForcedBlank blanks the screen regardless of the display mode.
	ForcedBlank bool
	// BGEnabled holds the display flags of BG0-BG3.
	BGEnabled [4]bool
	// OBJEnabled is the OBJ display flag.
	OBJEnabled bool
	// WindowEnabled holds the display flags of window 0 and 1.
	WindowEnabled [2]bool
	// OBJWindowEnabled is the OBJ window display flag.
	OBJWindowEnabled bool
	// DisplayMode selects what is shown on the screen.
	DisplayMode DisplayMode
	// VRAMBlock is the bank displayed in DisplayVRAM mode.
	VRAMBlock uint8
	// TileOBJBoundary is the 1D tile OBJ boundary shift (32<<n bytes).
	TileOBJBoundary uint8
	// BitmapOBJBoundary is the 1D bitmap OBJ boundary shift (128<<n bytes).
	BitmapOBJBoundary uint8
	// HBlankOBJ allows OBJ processing during HBlank.
	HBlankOBJ bool
	// CharBase is the coarse character base, in 64KB steps.
	CharBase uint8
	// ScreenBase is the coarse screen base, in 64KB steps.
	ScreenBase uint8
	// BGExtPalettes enables the BG extended palettes.
	BGExtPalettes bool
	// OBJExtPalettes enables the OBJ extended palettes.
	OBJExtPalettes bool
}

// NewController returns a Controller for engine e.
func NewController(e types.Engine) *Controller {
	return &Controller{engine: e}
}

// writeMaskB holds the DISPCNT bits implemented by engine B.
const writeMaskB = 0xC0B1FFF7

// Write writes the value to the controller.
func (c *Controller) Write(value uint32) {
	if c.engine == types.EngineB {
		value &= writeMaskB
	}
	c.BGMode = uint8(bits.Field(value, 0, 3))
	c.BG03D = bits.Test(value, 3)
	c.TileOBJ1D = bits.Test(value, 4)
	c.BitmapOBJWide = bits.Test(value, 5)
	c.BitmapOBJ1D = bits.Test(value, 6)
	c.ForcedBlank = bits.Test(value, 7)
	for i := range c.BGEnabled {
		c.BGEnabled[i] = bits.Test(value, uint8(8+i))
	}
	c.OBJEnabled = bits.Test(value, 12)
	c.WindowEnabled[0] = bits.Test(value, 13)
	c.WindowEnabled[1] = bits.Test(value, 14)
	c.OBJWindowEnabled = bits.Test(value, 15)
	c.DisplayMode = DisplayMode(bits.Field(value, 16, 2))
	c.VRAMBlock = uint8(bits.Field(value, 18, 2))
	c.TileOBJBoundary = uint8(bits.Field(value, 20, 2))
	c.BitmapOBJBoundary = uint8(bits.Field(value, 22, 1))
	c.HBlankOBJ = bits.Test(value, 23)
	c.CharBase = uint8(bits.Field(value, 24, 3))
	c.ScreenBase = uint8(bits.Field(value, 27, 3))
	c.BGExtPalettes = bits.Test(value, 30)
	c.OBJExtPalettes = bits.Test(value, 31)
}

// Read packs the controller back into its register value.
func (c *Controller) Read() uint32 {
	value := uint32(c.BGMode&7) |
		bits.From[uint32](c.BG03D, 3) |
		bits.From[uint32](c.TileOBJ1D, 4) |
		bits.From[uint32](c.BitmapOBJWide, 5) |
		bits.From[uint32](c.BitmapOBJ1D, 6) |
		bits.From[uint32](c.ForcedBlank, 7)
	for i, on := range c.BGEnabled {
		value |= bits.From[uint32](on, uint8(8+i))
	}
	value |= bits.From[uint32](c.OBJEnabled, 12) |
		bits.From[uint32](c.WindowEnabled[0], 13) |
		bits.From[uint32](c.WindowEnabled[1], 14) |
		bits.From[uint32](c.OBJWindowEnabled, 15) |
		uint32(c.DisplayMode&3)<<16 |
		uint32(c.VRAMBlock&3)<<18 |
		uint32(c.TileOBJBoundary&3)<<20 |
		uint32(c.BitmapOBJBoundary&1)<<22 |
		bits.From[uint32](c.HBlankOBJ, 23) |
		uint32(c.CharBase&7)<<24 |
		uint32(c.ScreenBase&7)<<27 |
		bits.From[uint32](c.BGExtPalettes, 30) |
		bits.From[uint32](c.OBJExtPalettes, 31)
	return value
}

// WindowsEnabled reports whether any window is enabled, in which case
// layers are masked by the window control registers.
func (c *Controller) WindowsEnabled() bool {
	return c.WindowEnabled[0] || c.WindowEnabled[1] || c.OBJWindowEnabled
}

// Is3D reports whether BG0 displays the 3D layer.
func (c *Controller) Is3D() bool {
	return c.engine == types.EngineA && (c.BG03D || c.BGMode == 6)
}

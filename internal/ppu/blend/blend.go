// Package blend provides the colour special effect registers of a 2D
// engine and the effect applied to each composed pixel.
package blend

import (
	"github.com/thelolagemann/gomeds/internal/ppu/palette"
	"github.com/thelolagemann/gomeds/pkg/bits"
	"github.com/thelolagemann/gomeds/pkg/utils"
)

// Layer indices used by the target masks.
const (
	LayerBG0 = iota
	LayerBG1
	LayerBG2
	LayerBG3
	LayerOBJ
	LayerBackdrop
)

// Effect is the colour special effect selected by BLDCNT.
type Effect uint8

const (
	EffectNone Effect = iota
	EffectAlpha
	EffectBrighten
	EffectDarken
)

// Control is the blend control register. Its value is stored in BLDCNT
// (0x04000050) as follows:
//
//	Bit 0-5   1st Target Pixel (BG0, BG1, BG2, BG3, OBJ, Backdrop)
//	Bit 6-7   Colour Special Effect (0=None, 1=Alpha, 2=Brighten, 3=Darken)
//	Bit 8-13  2nd Target Pixel (BG0, BG1, BG2, BG3, OBJ, Backdrop)
type Control struct {
	First  uint8
	Effect Effect
	Second uint8

	// EVA and EVB are the alpha coefficients from BLDALPHA, EVY the
	// brightness coefficient from BLDY. All are clamped to 16.
	EVA, EVB, EVY uint8
}

// Write writes BLDCNT.
func (c *Control) Write(value uint16) {
	c.First = uint8(bits.Field(value, 0, 6))
	c.Effect = Effect(bits.Field(value, 6, 2))
	c.Second = uint8(bits.Field(value, 8, 6))
}

// Read packs BLDCNT.
func (c *Control) Read() uint16 {
	return uint16(c.First) | uint16(c.Effect)<<6 | uint16(c.Second)<<8
}

// WriteAlpha writes BLDALPHA (EVA bits 0-4, EVB bits 8-12).
func (c *Control) WriteAlpha(value uint16) {
	c.EVA = utils.Min(uint8(bits.Field(value, 0, 5)), 16)
	c.EVB = utils.Min(uint8(bits.Field(value, 8, 5)), 16)
}

// ReadAlpha packs BLDALPHA.
func (c *Control) ReadAlpha() uint16 {
	return uint16(c.EVA) | uint16(c.EVB)<<8
}

// WriteBrightness writes BLDY (EVY bits 0-4).
func (c *Control) WriteBrightness(value uint16) {
	c.EVY = utils.Min(uint8(bits.Field(value, 0, 5)), 16)
}

// IsFirst reports whether layer is a 1st target.
func (c *Control) IsFirst(layer int) bool {
	return c.First&(1<<layer) != 0
}

// IsSecond reports whether layer is a 2nd target.
func (c *Control) IsSecond(layer int) bool {
	return c.Second&(1<<layer) != 0
}

// Kind describes how the top pixel of a column was produced, which
// decides whether it is blended regardless of the selected effect.
type Kind uint8

const (
	// Normal pixels follow BLDCNT.
	Normal Kind = iota
	// SemiTransparent OBJ pixels always alpha blend with a 2nd target
	// using EVA/EVB.
	SemiTransparent
	// Bitmap OBJ pixels always alpha blend with a 2nd target using
	// their own 4-bit alpha.
	Bitmap
	// Layer3D pixels always alpha blend with a 2nd target using their
	// own 5-bit alpha.
	Layer3D
)

// Pixel is one candidate layer pixel of a column.
type Pixel struct {
	Colour palette.Colour
	Layer  int
	Kind   Kind
	Alpha  uint8
}

// Apply returns the colour displayed for a column whose top pixel is top
// with second directly behind it. effects is the window's colour special
// effect enable for the column.
func (c *Control) Apply(top, second Pixel, effects bool) palette.Colour {
	target := c.IsSecond(second.Layer)
	switch top.Kind {
	case SemiTransparent:
		if target {
			return palette.Mix(top.Colour, second.Colour, c.EVA, c.EVB, 4)
		}
	case Bitmap:
		if target && top.Alpha < 15 {
			eva := top.Alpha + 1
			return palette.Mix(top.Colour, second.Colour, eva, 16-eva, 4)
		}
	case Layer3D:
		if target && top.Alpha < 31 {
			eva := top.Alpha + 1
			return palette.Mix(top.Colour, second.Colour, eva, 32-eva, 5)
		}
	}
	if !effects || !c.IsFirst(top.Layer) {
		return top.Colour
	}
	switch c.Effect {
	case EffectAlpha:
		if target {
			return palette.Mix(top.Colour, second.Colour, c.EVA, c.EVB, 4)
		}
	case EffectBrighten:
		return palette.Brighten(top.Colour, c.EVY)
	case EffectDarken:
		return palette.Darken(top.Colour, c.EVY)
	}
	return top.Colour
}

package palette

import (
	"github.com/thelolagemann/gomeds/pkg/bits"
	"github.com/thelolagemann/gomeds/pkg/utils"
)

// BrightnessMode selects the direction of the master brightness.
type BrightnessMode uint8

const (
	// BrightnessOff leaves the output unchanged.
	BrightnessOff BrightnessMode = iota
	// BrightnessUp fades towards white.
	BrightnessUp
	// BrightnessDown fades towards black.
	BrightnessDown
)

// Brightness is the master brightness of an engine, applied to the
// final image of every display mode except the blank screen. Its value is
// stored in MASTERBRIGHT (0x0400006C) as follows:
//
//	Bit 0-4   Factor (0..16, clamped)
//	Bit 14-15 Mode (0=Disable, 1=Up, 2=Down, 3=Reserved)
type Brightness struct {
	Factor uint8
	Mode   BrightnessMode
	// reserved mode 3 reads back but has no effect
	mode uint8
}

// Write writes the value to the brightness register.
func (b *Brightness) Write(value uint16) {
	b.Factor = utils.Min(uint8(bits.Field(value, 0, 5)), 16)
	b.mode = uint8(bits.Field(value, 14, 2))
	b.Mode = BrightnessMode(b.mode)
	if b.mode == 3 {
		b.Mode = BrightnessOff
	}
}

// Read packs the brightness register.
func (b *Brightness) Read() uint16 {
	return uint16(b.Factor) | uint16(b.mode)<<14
}

// Apply returns c adjusted by the master brightness.
func (b *Brightness) Apply(c Colour) Colour {
	if b.Factor == 0 {
		return c & 0x7FFF
	}
	switch b.Mode {
	case BrightnessUp:
		return Brighten(c, b.Factor)
	case BrightnessDown:
		return Darken(c, b.Factor)
	}
	return c & 0x7FFF
}

// Brighten moves each channel of c towards white by evy/16.
func Brighten(c Colour, evy uint8) Colour {
	f := func(v uint8) uint8 {
		return v + uint8(uint16(31-v)*uint16(evy)/16)
	}
	return RGB(f(c.R()), f(c.G()), f(c.B()))
}

// Darken moves each channel of c towards black by evy/16.
func Darken(c Colour, evy uint8) Colour {
	f := func(v uint8) uint8 {
		return v - uint8(uint16(v)*uint16(evy)/16)
	}
	return RGB(f(c.R()), f(c.G()), f(c.B()))
}

// Mix blends a and b with the coefficients eva and evb over a
// denominator of 1<<shift, saturating each channel at 31.
func Mix(a, b Colour, eva, evb, shift uint8) Colour {
	f := func(x, y uint8) uint8 {
		v := (uint16(x)*uint16(eva) + uint16(y)*uint16(evb)) >> shift
		return uint8(utils.Min(v, 31))
	}
	return RGB(f(a.R(), b.R()), f(a.G(), b.G()), f(a.B(), b.B()))
}

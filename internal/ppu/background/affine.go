package background

import "github.com/thelolagemann/gomeds/pkg/bits"

// Affine is the rotation/scaling state of an affine background. The
// parameters PA-PD are signed 8.8 fixed point, the reference point is
// signed 20.8 fixed point stored in 28 bits.
//
// The CPU writes the external reference point. Rendering reads an
// internal copy which advances by PB/PD after each scanline and is
// reloaded from the external registers at the start of every frame, or
// straight away when written outside the visible period.
type Affine struct {
	PA, PB, PC, PD int16

	// X and Y are the external reference point.
	X, Y int32

	internalX, internalY int32
}

// NewAffine returns the identity transform.
func NewAffine() Affine {
	return Affine{PA: 0x100, PD: 0x100}
}

// WriteParam writes parameter i (0=PA, 1=PB, 2=PC, 3=PD).
func (a *Affine) WriteParam(i int, value uint16) {
	switch i {
	case 0:
		a.PA = int16(value)
	case 1:
		a.PB = int16(value)
	case 2:
		a.PC = int16(value)
	case 3:
		a.PD = int16(value)
	}
}

// WriteX writes the external X reference point. When latch is set the
// internal copy is reloaded too.
func (a *Affine) WriteX(value uint32, latch bool) {
	a.X = bits.SignExtend(value, 28)
	if latch {
		a.internalX = a.X
	}
}

// WriteY writes the external Y reference point. When latch is set the
// internal copy is reloaded too.
func (a *Affine) WriteY(value uint32, latch bool) {
	a.Y = bits.SignExtend(value, 28)
	if latch {
		a.internalY = a.Y
	}
}

// ReadX returns the external X reference point as written.
func (a *Affine) ReadX() uint32 {
	return uint32(a.X) & 0x0FFFFFFF
}

// ReadY returns the external Y reference point as written.
func (a *Affine) ReadY() uint32 {
	return uint32(a.Y) & 0x0FFFFFFF
}

// Latch reloads the internal reference point from the external one.
func (a *Affine) Latch() {
	a.internalX, a.internalY = a.X, a.Y
}

// Advance moves the internal reference point to the next scanline.
func (a *Affine) Advance() {
	a.internalX += int32(a.PB)
	a.internalY += int32(a.PD)
}

// Origin returns the internal reference point for the current scanline.
func (a *Affine) Origin() (int32, int32) {
	return a.internalX, a.internalY
}

// Step returns the per pixel increments along the scanline.
func (a *Affine) Step() (int32, int32) {
	return int32(a.PA), int32(a.PC)
}

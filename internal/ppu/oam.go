package ppu

import (
	"github.com/thelolagemann/gomeds/internal/memory"
	"github.com/thelolagemann/gomeds/internal/types"
	"github.com/thelolagemann/gomeds/pkg/bits"
)

// objects is the number of OAM entries per engine.
const objects = 128

// objMode is the mode field of attribute 0.
type objMode uint8

const (
	objNormal objMode = iota
	objSemiTransparent
	objWindow
	objBitmap
)

// objSizes are the dimensions of each shape (square, horizontal,
// vertical) and size setting.
var objSizes = [3][4][2]int{
	{{8, 8}, {16, 16}, {32, 32}, {64, 64}},
	{{16, 8}, {32, 8}, {32, 16}, {64, 32}},
	{{8, 16}, {8, 32}, {16, 32}, {32, 64}},
}

// Sprite is one decoded OAM entry. Each entry is made of three
// attribute halfwords, the fourth halfword of every entry holding one
// of the affine parameters:
//
//	Attr0 Bit 0-7   Y coordinate
//	      Bit 8     Rotation/Scaling flag
//	      Bit 9     Double size (affine) or disable (normal)
//	      Bit 10-11 Mode (0=Normal, 1=Semi-Transparent, 2=Window, 3=Bitmap)
//	      Bit 12    Mosaic
//	      Bit 13    Colours (0=16/16, 1=256/1)
//	      Bit 14-15 Shape (0=Square, 1=Horizontal, 2=Vertical)
//	Attr1 Bit 0-8   X coordinate (signed)
//	      Bit 9-13  Affine parameter group (affine)
//	      Bit 12    Horizontal flip (normal)
//	      Bit 13    Vertical flip (normal)
//	      Bit 14-15 Size
//	Attr2 Bit 0-9   Tile number
//	      Bit 10-11 Priority
//	      Bit 12-15 Palette number, or alpha of bitmap sprites
type Sprite struct {
	X, Y          int
	Affine        bool
	DoubleSize    bool
	Disabled      bool
	Mode          objMode
	Colours256    bool
	Width, Height int
	Group         int
	FlipX, FlipY  bool
	Tile          int
	Priority      uint8
	Palette       uint8
}

func decodeSprite(attr0, attr1, attr2 uint16) Sprite {
	s := Sprite{
		Y:          int(attr0 & 0xFF),
		Affine:     bits.Test(attr0, 8),
		Mode:       objMode(bits.Field(attr0, 10, 2)),
		Colours256: bits.Test(attr0, 13),
		X:          int(bits.SignExtend(uint32(attr1), 9)),
		Tile:       int(attr2 & 0x3FF),
		Priority:   uint8(bits.Field(attr2, 10, 2)),
		Palette:    uint8(bits.Field(attr2, 12, 4)),
	}
	if s.Affine {
		s.DoubleSize = bits.Test(attr0, 9)
		s.Group = int(bits.Field(attr1, 9, 5))
	} else {
		s.Disabled = bits.Test(attr0, 9)
		s.FlipX = bits.Test(attr1, 12)
		s.FlipY = bits.Test(attr1, 13)
	}
	shape := bits.Field(attr0, 14, 2)
	if shape == 3 {
		// prohibited shape, never displayed
		s.Disabled = true
		shape = 0
	}
	size := objSizes[shape][bits.Field(attr1, 14, 2)]
	s.Width, s.Height = size[0], size[1]
	return s
}

// readSprite decodes OAM entry i of engine e.
func readSprite(v memory.VRAM, e types.Engine, i int) Sprite {
	off := uint32(i * 8)
	return decodeSprite(v.OAM(e, off), v.OAM(e, off+2), v.OAM(e, off+4))
}

// readAffine returns the PA-PD parameters of group g.
func readAffine(v memory.VRAM, e types.Engine, g int) [4]int32 {
	var m [4]int32
	for i := range m {
		m[i] = int32(int16(v.OAM(e, uint32(g*32+i*8+6))))
	}
	return m
}

// bounds returns the size of the area the sprite covers on screen.
func (s *Sprite) bounds() (int, int) {
	if s.DoubleSize {
		return s.Width * 2, s.Height * 2
	}
	return s.Width, s.Height
}

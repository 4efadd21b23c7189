// Package memory provides the video memory collaborator used by the
// display pipeline. The bus-side bank mapping (VRAMCNT) lives outside the
// pipeline; the pipeline only sees the already mapped regions below.
package memory

import (
	"encoding/binary"

	"github.com/thelolagemann/gomeds/internal/types"
)

// VRAM is the accessor the 2D engines and the rasterizer read pixel data
// through. Offsets are byte offsets into the named region.
type VRAM interface {
	// BG reads a byte of the engine's background VRAM.
	BG(e types.Engine, offset uint32) uint8
	// OBJ reads a byte of the engine's object VRAM.
	OBJ(e types.Engine, offset uint32) uint8
	// OAM reads a halfword of the engine's object attribute memory.
	OAM(e types.Engine, offset uint32) uint16
	// Palette reads a standard palette entry; indices 0-255 are BG
	// colours and 256-511 OBJ colours.
	Palette(e types.Engine, index int) uint16
	// BGExtPalette reads an extended BG palette entry from slot 0-3.
	BGExtPalette(e types.Engine, slot int, index int) uint16
	// OBJExtPalette reads an extended OBJ palette entry.
	OBJExtPalette(e types.Engine, index int) uint16
	// Texture reads a byte of texture image memory.
	Texture(offset uint32) uint8
	// TexturePalette reads a halfword of texture palette memory.
	TexturePalette(offset uint32) uint16
	// Bank reads a halfword of an LCDC mapped bank (0-3 = A-D).
	Bank(bank int, offset uint32) uint16
	// WriteBank writes a halfword of an LCDC mapped bank.
	WriteBank(bank int, offset uint32, value uint16)
}

const (
	PaletteSize        = 0x400
	BGSizeA            = 0x80000
	BGSizeB            = 0x20000
	OBJSizeA           = 0x40000
	OBJSizeB           = 0x20000
	OAMSize            = 0x400
	BGExtSlotSize      = 0x2000
	OBJExtSize         = 0x2000
	TextureSize        = 0x80000
	TexturePaletteSize = 0x18000
	BankSize           = 0x20000
)

// Flat is a VRAM backed by plain byte slices, one per mapped region.
type Flat struct {
	palette [2][]byte
	bg      [2][]byte
	obj     [2][]byte
	oam     [2][]byte
	bgExt   [2][4][]byte
	objExt  [2][]byte
	texture []byte
	texPal  []byte
	banks   [4][]byte
}

// NewFlat allocates every region at its hardware size.
func NewFlat() *Flat {
	f := &Flat{
		texture: make([]byte, TextureSize),
		texPal:  make([]byte, TexturePaletteSize),
	}
	sizes := [2][2]int{{BGSizeA, OBJSizeA}, {BGSizeB, OBJSizeB}}
	for e := 0; e < 2; e++ {
		f.palette[e] = make([]byte, PaletteSize)
		f.bg[e] = make([]byte, sizes[e][0])
		f.obj[e] = make([]byte, sizes[e][1])
		f.oam[e] = make([]byte, OAMSize)
		f.objExt[e] = make([]byte, OBJExtSize)
		for s := 0; s < 4; s++ {
			f.bgExt[e][s] = make([]byte, BGExtSlotSize)
		}
	}
	for b := range f.banks {
		f.banks[b] = make([]byte, BankSize)
	}
	return f
}

func read16(b []byte, offset uint32) uint16 {
	offset &^= 1
	if int(offset)+1 >= len(b) {
		return 0
	}
	return binary.LittleEndian.Uint16(b[offset:])
}

func write16(b []byte, offset uint32, v uint16) {
	offset &^= 1
	if int(offset)+1 >= len(b) {
		return
	}
	binary.LittleEndian.PutUint16(b[offset:], v)
}

func read8(b []byte, offset uint32) uint8 {
	if int(offset) >= len(b) {
		return 0
	}
	return b[offset]
}

func (f *Flat) BG(e types.Engine, offset uint32) uint8 {
	return read8(f.bg[e], offset%uint32(len(f.bg[e])))
}

func (f *Flat) OBJ(e types.Engine, offset uint32) uint8 {
	return read8(f.obj[e], offset%uint32(len(f.obj[e])))
}

func (f *Flat) OAM(e types.Engine, offset uint32) uint16 {
	return read16(f.oam[e], offset%OAMSize)
}

func (f *Flat) Palette(e types.Engine, index int) uint16 {
	return read16(f.palette[e], uint32(index&0x1FF)*2)
}

func (f *Flat) BGExtPalette(e types.Engine, slot int, index int) uint16 {
	return read16(f.bgExt[e][slot&3], uint32(index&0xFFF)*2)
}

func (f *Flat) OBJExtPalette(e types.Engine, index int) uint16 {
	return read16(f.objExt[e], uint32(index&0xFFF)*2)
}

func (f *Flat) Texture(offset uint32) uint8 {
	return read8(f.texture, offset%TextureSize)
}

func (f *Flat) TexturePalette(offset uint32) uint16 {
	return read16(f.texPal, offset%TexturePaletteSize)
}

func (f *Flat) Bank(bank int, offset uint32) uint16 {
	return read16(f.banks[bank&3], offset%BankSize)
}

func (f *Flat) WriteBank(bank int, offset uint32, value uint16) {
	write16(f.banks[bank&3], offset%BankSize, value)
}

// SetPalette writes a standard palette entry.
func (f *Flat) SetPalette(e types.Engine, index int, colour uint16) {
	write16(f.palette[e], uint32(index&0x1FF)*2, colour)
}

// SetBGExtPalette writes an extended BG palette entry.
func (f *Flat) SetBGExtPalette(e types.Engine, slot, index int, colour uint16) {
	write16(f.bgExt[e][slot&3], uint32(index&0xFFF)*2, colour)
}

// SetOBJExtPalette writes an extended OBJ palette entry.
func (f *Flat) SetOBJExtPalette(e types.Engine, index int, colour uint16) {
	write16(f.objExt[e], uint32(index&0xFFF)*2, colour)
}

// WriteBG8 writes a byte of background VRAM.
func (f *Flat) WriteBG8(e types.Engine, offset uint32, v uint8) {
	f.bg[e][offset%uint32(len(f.bg[e]))] = v
}

// WriteBG16 writes a halfword of background VRAM.
func (f *Flat) WriteBG16(e types.Engine, offset uint32, v uint16) {
	write16(f.bg[e], offset%uint32(len(f.bg[e])), v)
}

// WriteOBJ8 writes a byte of object VRAM.
func (f *Flat) WriteOBJ8(e types.Engine, offset uint32, v uint8) {
	f.obj[e][offset%uint32(len(f.obj[e]))] = v
}

// WriteOBJ16 writes a halfword of object VRAM.
func (f *Flat) WriteOBJ16(e types.Engine, offset uint32, v uint16) {
	write16(f.obj[e], offset%uint32(len(f.obj[e])), v)
}

// WriteOAM writes a halfword of object attribute memory.
func (f *Flat) WriteOAM(e types.Engine, offset uint32, v uint16) {
	write16(f.oam[e], offset%OAMSize, v)
}

// WriteTexture8 writes a byte of texture image memory.
func (f *Flat) WriteTexture8(offset uint32, v uint8) {
	f.texture[offset%TextureSize] = v
}

// WriteTexture16 writes a halfword of texture image memory.
func (f *Flat) WriteTexture16(offset uint32, v uint16) {
	write16(f.texture, offset%TextureSize, v)
}

// WriteTexturePalette writes a halfword of texture palette memory.
func (f *Flat) WriteTexturePalette(offset uint32, v uint16) {
	write16(f.texPal, offset%TexturePaletteSize, v)
}

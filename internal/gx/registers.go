package gx

import "github.com/thelolagemann/gomeds/pkg/bits"

// Control is the 3D display control register (DISP3DCNT).
//
//	Bit 0     Texture Mapping      (0=Disable, 1=Enable)
//	Bit 1     Polygon Attr Shading (0=Toon, 1=Highlight)
//	Bit 2     Alpha-Test           (0=Disable, 1=Enable)
//	Bit 3     Alpha-Blending       (0=Disable, 1=Enable)
//	Bit 4     Anti-Aliasing        (0=Disable, 1=Enable)
//	Bit 5     Edge-Marking         (0=Disable, 1=Enable)
//	Bit 6     Fog Color/Alpha Mode (0=Alpha and Color, 1=Only Alpha)
//	Bit 7     Fog Master Enable    (0=Disable, 1=Enable)
//	Bit 8-11  Fog Depth Shift
//	Bit 12    Color Buffer RDLINES Underflow (0=None, 1=Underflow/Acknowledge)
//	Bit 13    Polygon/Vertex RAM Overflow    (0=None, 1=Overflow/Acknowledge)
//	Bit 14    Rear-Plane Mode      (0=Blank, 1=Bitmap)
type Control struct {
	Textures        bool
	Highlight       bool
	AlphaTest       bool
	AlphaBlend      bool
	AntiAlias       bool
	EdgeMarking     bool
	FogAlphaOnly    bool
	Fog             bool
	FogShift        uint8
	Underflow       bool
	RAMOverflow     bool
	RearPlaneBitmap bool
}

// Write updates the control register. The two status bits are
// acknowledged by writing 1.
func (c *Control) Write(value uint16) {
	c.Textures = bits.Test(value, 0)
	c.Highlight = bits.Test(value, 1)
	c.AlphaTest = bits.Test(value, 2)
	c.AlphaBlend = bits.Test(value, 3)
	c.AntiAlias = bits.Test(value, 4)
	c.EdgeMarking = bits.Test(value, 5)
	c.FogAlphaOnly = bits.Test(value, 6)
	c.Fog = bits.Test(value, 7)
	c.FogShift = uint8(bits.Field(value, 8, 4))
	if bits.Test(value, 12) {
		c.Underflow = false
	}
	if bits.Test(value, 13) {
		c.RAMOverflow = false
	}
	c.RearPlaneBitmap = bits.Test(value, 14)
}

// Read packs the control register.
func (c *Control) Read() uint16 {
	return bits.From[uint16](c.Textures, 0) |
		bits.From[uint16](c.Highlight, 1) |
		bits.From[uint16](c.AlphaTest, 2) |
		bits.From[uint16](c.AlphaBlend, 3) |
		bits.From[uint16](c.AntiAlias, 4) |
		bits.From[uint16](c.EdgeMarking, 5) |
		bits.From[uint16](c.FogAlphaOnly, 6) |
		bits.From[uint16](c.Fog, 7) |
		uint16(c.FogShift&0xF)<<8 |
		bits.From[uint16](c.Underflow, 12) |
		bits.From[uint16](c.RAMOverflow, 13) |
		bits.From[uint16](c.RearPlaneBitmap, 14)
}

// PolygonMode selects how texture and vertex colours are combined.
type PolygonMode uint8

const (
	Modulate PolygonMode = iota
	Decal
	Toon
	Shadow
)

// PolygonAttr is the latched POLYGON_ATTR value of a polygon.
//
//	Bit 0-3   Light 0..3 Enable
//	Bit 4-5   Polygon Mode (0=Modulate, 1=Decal, 2=Toon/Highlight, 3=Shadow)
//	Bit 6     Polygon Back Surface  (0=Hide, 1=Render)
//	Bit 7     Polygon Front Surface (0=Hide, 1=Render)
//	Bit 11    Depth-value for Translucent Pixels (0=Keep Old, 1=Set New)
//	Bit 12    Far-plane intersecting polygons (0=Hide, 1=Render/clipped)
//	Bit 13    1-Dot polygons behind DISP_1DOT_DEPTH (0=Hide, 1=Render)
//	Bit 14    Depth Test, Draw Pixels with Depth (0=Less, 1=Equal)
//	Bit 15    Fog Enable
//	Bit 16-20 Alpha (0=Wire-Frame, 1..30=Translucent, 31=Solid)
//	Bit 24-29 Polygon ID
type PolygonAttr uint32

func (p PolygonAttr) Lights() uint8          { return uint8(p & 0xF) }
func (p PolygonAttr) Mode() PolygonMode      { return PolygonMode(p >> 4 & 3) }
func (p PolygonAttr) Back() bool             { return p&(1<<6) != 0 }
func (p PolygonAttr) Front() bool            { return p&(1<<7) != 0 }
func (p PolygonAttr) TranslucentDepth() bool { return p&(1<<11) != 0 }
func (p PolygonAttr) FarPlane() bool         { return p&(1<<12) != 0 }
func (p PolygonAttr) DepthEqual() bool       { return p&(1<<14) != 0 }
func (p PolygonAttr) Fog() bool              { return p&(1<<15) != 0 }
func (p PolygonAttr) Alpha() uint8           { return uint8(p >> 16 & 0x1F) }
func (p PolygonAttr) ID() uint8              { return uint8(p >> 24 & 0x3F) }

// TextureFormat is the texel format of TEXIMAGE_PARAM.
type TextureFormat uint8

const (
	TexNone TextureFormat = iota
	TexA3I5
	Tex4Colour
	Tex16Colour
	Tex256Colour
	TexCompressed
	TexA5I3
	TexDirect
)

// TexImageParam is the latched TEXIMAGE_PARAM value of a polygon.
//
//	Bit 0-15  Texture VRAM Offset (divided by 8)
//	Bit 16-17 Repeat in S/T Direction
//	Bit 18-19 Flip in S/T Direction
//	Bit 20-22 Texture S-Size (8 << n)
//	Bit 23-25 Texture T-Size (8 << n)
//	Bit 26-28 Texture Format
//	Bit 29    Color 0 of 4/16/256-Color Palettes (0=Displayed, 1=Transparent)
//	Bit 30-31 Texture Coordinates Transformation Mode
type TexImageParam uint32

func (t TexImageParam) Offset() uint32        { return uint32(t&0xFFFF) << 3 }
func (t TexImageParam) RepeatS() bool         { return t&(1<<16) != 0 }
func (t TexImageParam) RepeatT() bool         { return t&(1<<17) != 0 }
func (t TexImageParam) FlipS() bool           { return t&(1<<18) != 0 }
func (t TexImageParam) FlipT() bool           { return t&(1<<19) != 0 }
func (t TexImageParam) Width() int            { return 8 << (t >> 20 & 7) }
func (t TexImageParam) Height() int           { return 8 << (t >> 23 & 7) }
func (t TexImageParam) Format() TextureFormat { return TextureFormat(t >> 26 & 7) }
func (t TexImageParam) Transparent0() bool    { return t&(1<<29) != 0 }
func (t TexImageParam) TransformMode() uint8  { return uint8(t >> 30) }

// Status is the geometry engine status register (GXSTAT).
//
//	Bit 0     BoxTest,PositionTest,VectorTest Busy
//	Bit 1     BoxTest Result (0=All Outside View, 1=Parts or Fully Inside View)
//	Bit 8-12  Position & Vector Matrix Stack Level
//	Bit 13    Projection Matrix Stack Level
//	Bit 14    Matrix Stack Busy
//	Bit 15    Matrix Stack Overflow/Underflow Error (1=Error/Acknowledge)
//	Bit 16-24 Number of 40bit-entries in Command FIFO
//	Bit 25    Command FIFO Less Than Half Full
//	Bit 26    Command FIFO Empty
//	Bit 27    Geometry Engine Busy
//	Bit 30-31 Command FIFO IRQ (0=Never, 1=Less than half full, 2=Empty, 3=Reserved)
type Status struct {
	BoxResult  bool
	StackError bool
	IRQMode    uint8
}

// IRQ modes of GXSTAT.
const (
	IRQNever uint8 = iota
	IRQLessThanHalf
	IRQEmpty
)

// Viewport is the screen rectangle polygons are mapped to. Y is measured
// from the bottom of the screen.
type Viewport struct {
	X1, Y1, X2, Y2 int32
}

func (v *Viewport) Write(value uint32) {
	v.X1 = int32(value & 0xFF)
	v.Y1 = int32(value >> 8 & 0xFF)
	v.X2 = int32(value >> 16 & 0xFF)
	v.Y2 = int32(value >> 24 & 0xFF)
}

// RenderState is the rasterizer configuration held in the 3D registers.
type RenderState struct {
	Control Control

	ClearColour  uint16 // BGR555
	ClearFog     bool
	ClearAlpha   uint8
	ClearID      uint8
	ClearDepth   uint16
	ClearOffsetX uint8
	ClearOffsetY uint8
	AlphaTestRef uint8
	EdgeColours  [8]uint16
	FogColour    uint16
	FogAlpha     uint8
	FogOffset    uint16
	FogTable     [32]uint8
	ToonTable    [32]uint16
	OneDotDepth  uint16
}

// WriteClearColour decodes CLEAR_COLOR.
func (r *RenderState) WriteClearColour(value uint32) {
	r.ClearColour = uint16(value & 0x7FFF)
	r.ClearFog = value&(1<<15) != 0
	r.ClearAlpha = uint8(value >> 16 & 0x1F)
	r.ClearID = uint8(value >> 24 & 0x3F)
}

// ReadClearColour packs CLEAR_COLOR.
func (r *RenderState) ReadClearColour() uint32 {
	return uint32(r.ClearColour) | bits.From[uint32](r.ClearFog, 15) |
		uint32(r.ClearAlpha)<<16 | uint32(r.ClearID)<<24
}

// WriteFogColour decodes FOG_COLOR.
func (r *RenderState) WriteFogColour(value uint32) {
	r.FogColour = uint16(value & 0x7FFF)
	r.FogAlpha = uint8(value >> 16 & 0x1F)
}

// ClearDepth24 expands the 15-bit clear depth to the 24-bit depth buffer
// range.
func (r *RenderState) ClearDepth24() uint32 {
	return ExpandDepth(r.ClearDepth)
}

// ExpandDepth expands a 15-bit depth value to 24 bits.
func ExpandDepth(depth uint16) uint32 {
	d := uint32(depth & 0x7FFF)
	return d*0x200 + (d+1)/0x8000*0x1FF
}

package fifo

import "fmt"

// Opcode is a geometry command byte.
type Opcode uint8

const (
	Nop         Opcode = 0x00
	MtxMode     Opcode = 0x10
	MtxPush     Opcode = 0x11
	MtxPop      Opcode = 0x12
	MtxStore    Opcode = 0x13
	MtxRestore  Opcode = 0x14
	MtxIdentity Opcode = 0x15
	MtxLoad4x4  Opcode = 0x16
	MtxLoad4x3  Opcode = 0x17
	MtxMult4x4  Opcode = 0x18
	MtxMult4x3  Opcode = 0x19
	MtxMult3x3  Opcode = 0x1A
	MtxScale    Opcode = 0x1B
	MtxTrans    Opcode = 0x1C
	Color       Opcode = 0x20
	Normal      Opcode = 0x21
	TexCoord    Opcode = 0x22
	Vtx16       Opcode = 0x23
	Vtx10       Opcode = 0x24
	VtxXY       Opcode = 0x25
	VtxXZ       Opcode = 0x26
	VtxYZ       Opcode = 0x27
	VtxDiff     Opcode = 0x28
	PolygonAttr Opcode = 0x29
	TexImage    Opcode = 0x2A
	PlttBase    Opcode = 0x2B
	DifAmb      Opcode = 0x30
	SpeEmi      Opcode = 0x31
	LightVector Opcode = 0x32
	LightColor  Opcode = 0x33
	Shininess   Opcode = 0x34
	BeginVtxs   Opcode = 0x40
	EndVtxs     Opcode = 0x41
	SwapBuffers Opcode = 0x50
	Viewport    Opcode = 0x60
	BoxTest     Opcode = 0x70
	PosTest     Opcode = 0x71
	VecTest     Opcode = 0x72
)

const (
	maxParams     = 32
	unknownCycles = 1
)

type opInfo struct {
	name   string
	params uint8
	cycles int
	valid  bool
}

var opTable = func() (t [256]opInfo) {
	def := func(op Opcode, name string, params uint8, cycles int) {
		t[op] = opInfo{name: name, params: params, cycles: cycles, valid: true}
	}
	def(Nop, "NOP", 0, 1)
	def(MtxMode, "MTX_MODE", 1, 1)
	def(MtxPush, "MTX_PUSH", 0, 17)
	def(MtxPop, "MTX_POP", 1, 36)
	def(MtxStore, "MTX_STORE", 1, 17)
	def(MtxRestore, "MTX_RESTORE", 1, 36)
	def(MtxIdentity, "MTX_IDENTITY", 0, 19)
	def(MtxLoad4x4, "MTX_LOAD_4x4", 16, 34)
	def(MtxLoad4x3, "MTX_LOAD_4x3", 12, 30)
	def(MtxMult4x4, "MTX_MULT_4x4", 16, 35)
	def(MtxMult4x3, "MTX_MULT_4x3", 12, 31)
	def(MtxMult3x3, "MTX_MULT_3x3", 9, 28)
	def(MtxScale, "MTX_SCALE", 3, 22)
	def(MtxTrans, "MTX_TRANS", 3, 22)
	def(Color, "COLOR", 1, 1)
	def(Normal, "NORMAL", 1, 9)
	def(TexCoord, "TEXCOORD", 1, 1)
	def(Vtx16, "VTX_16", 2, 9)
	def(Vtx10, "VTX_10", 1, 8)
	def(VtxXY, "VTX_XY", 1, 8)
	def(VtxXZ, "VTX_XZ", 1, 8)
	def(VtxYZ, "VTX_YZ", 1, 8)
	def(VtxDiff, "VTX_DIFF", 1, 8)
	def(PolygonAttr, "POLYGON_ATTR", 1, 1)
	def(TexImage, "TEXIMAGE_PARAM", 1, 1)
	def(PlttBase, "PLTT_BASE", 1, 1)
	def(DifAmb, "DIF_AMB", 1, 4)
	def(SpeEmi, "SPE_EMI", 1, 4)
	def(LightVector, "LIGHT_VECTOR", 1, 6)
	def(LightColor, "LIGHT_COLOR", 1, 1)
	def(Shininess, "SHININESS", 32, 32)
	def(BeginVtxs, "BEGIN_VTXS", 1, 1)
	def(EndVtxs, "END_VTXS", 0, 1)
	def(SwapBuffers, "SWAP_BUFFERS", 1, 392)
	def(Viewport, "VIEWPORT", 1, 1)
	def(BoxTest, "BOX_TEST", 3, 103)
	def(PosTest, "POS_TEST", 2, 9)
	def(VecTest, "VEC_TEST", 1, 5)
	return t
}()

// Valid reports whether the opcode is a known command.
func (o Opcode) Valid() bool {
	return opTable[o].valid
}

// Params returns the number of parameter words the opcode takes. Unknown
// opcodes take none.
func (o Opcode) Params() int {
	return int(opTable[o].params)
}

// Cycles returns the estimated execution cost of the opcode.
func (o Opcode) Cycles() int {
	if !opTable[o].valid {
		return unknownCycles
	}
	return opTable[o].cycles
}

func (o Opcode) String() string {
	if !opTable[o].valid {
		return fmt.Sprintf("UNKNOWN(%02X)", uint8(o))
	}
	return opTable[o].name
}

// Lookup returns the opcode with the given command name, such as
// "VTX_16".
func Lookup(name string) (Opcode, bool) {
	for i := range opTable {
		if opTable[i].valid && opTable[i].name == name {
			return Opcode(i), true
		}
	}
	return Nop, false
}

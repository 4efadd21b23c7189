// Package script runs Lua scenes against the display pipeline. A scene
// sets up registers, VRAM and geometry when it is loaded, and may define
// a global function frame(n) that is called before every frame.
//
// Besides the standard Lua libraries a scene can use:
//
//	write16(addr, v) write32(addr, v) read16(addr) read32(addr)
//	gx(op, params...)            queue a geometry command by name or number
//	vtx(x, y, z)                 VTX_16 from floats
//	translate(x, y, z)           MTX_TRANS from floats
//	scale(x, y, z)               MTX_SCALE from floats
//	color(r, g, b)               COLOR from 5-bit channels
//	rgb(r, g, b)                 a BGR555 colour
//	fx(v)                        a 20.12 fixed point value
//	palette(engine, index, c)    bg16(engine, off, v) obj16(engine, off, v)
//	oam(engine, off, v)          texture16(off, v) texpalette(off, v)
//	log(msg)
//
// Register addresses are available in the table reg (reg.DISPCNT) and
// engines as ENGINE_A and ENGINE_B.
package script

import (
	"bytes"
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/thelolagemann/gomeds/internal/gx/fifo"
	"github.com/thelolagemann/gomeds/internal/types"
	"github.com/thelolagemann/gomeds/pkg/log"
	"github.com/thelolagemann/gomeds/pkg/utils"
)

// Pipeline is the register and command surface exposed to scenes.
type Pipeline interface {
	Write16(address types.Address, value uint16)
	Write32(address types.Address, value uint32)
	Read16(address types.Address) uint16
	Read32(address types.Address) uint32
	WriteFIFO(word uint32) error
}

// Memory is the VRAM surface exposed to scenes.
type Memory interface {
	SetPalette(e types.Engine, index int, colour uint16)
	WriteBG16(e types.Engine, offset uint32, v uint16)
	WriteOBJ16(e types.Engine, offset uint32, v uint16)
	WriteOAM(e types.Engine, offset uint32, v uint16)
	WriteTexture16(offset uint32, v uint16)
	WriteTexturePalette(offset uint32, v uint16)
}

var registers = map[string]types.Address{
	"DISPCNT": types.DISPCNT, "DISPSTAT": types.DISPSTAT, "VCOUNT": types.VCOUNT,
	"BG0CNT": types.BG0CNT, "BG1CNT": types.BG1CNT, "BG2CNT": types.BG2CNT, "BG3CNT": types.BG3CNT,
	"BG0HOFS": types.BG0HOFS, "BG0VOFS": types.BG0VOFS,
	"BG2PA": types.BG2PA, "BG2X": types.BG2X, "BG2Y": types.BG2Y,
	"BG3PA": types.BG3PA, "BG3X": types.BG3X, "BG3Y": types.BG3Y,
	"WIN0H": types.WIN0H, "WIN1H": types.WIN1H, "WIN0V": types.WIN0V, "WIN1V": types.WIN1V,
	"WININ": types.WININ, "WINOUT": types.WINOUT, "MOSAIC": types.MOSAIC,
	"BLDCNT": types.BLDCNT, "BLDALPHA": types.BLDALPHA, "BLDY": types.BLDY,
	"DISPCAPCNT": types.DISPCAPCNT, "MASTERBRIGHT": types.MASTERBRIGHT,
	"DISP3DCNT": types.DISP3DCNT, "EDGECOLOR": types.EDGECOLOR, "ALPHATESTREF": types.ALPHATESTREF,
	"CLEARCOLOR": types.CLEARCOLOR, "CLEARDEPTH": types.CLEARDEPTH,
	"FOGCOLOR": types.FOGCOLOR, "FOGOFFSET": types.FOGOFFSET, "FOGTABLE": types.FOGTABLE,
	"TOONTABLE": types.TOONTABLE, "GXSTAT": types.GXSTAT, "RAMCOUNT": types.RAMCOUNT,
	"POSRESULT": types.POSRESULT, "VECRESULT": types.VECRESULT,
}

// ErrNoFrame is returned by Frame when the scene defines no frame
// function.
var ErrNoFrame = errors.New("script: scene has no frame function")

// Script is a loaded Lua scene.
type Script struct {
	L   *lua.LState
	pl  Pipeline
	mem Memory
	log log.Logger
}

// Opt configures a Script.
type Opt func(s *Script)

// WithLogger sets the logger that receives log() calls.
func WithLogger(l log.Logger) Opt {
	return func(s *Script) {
		s.log = l
	}
}

// New returns a Script bound to pl and mem with no scene loaded.
func New(pl Pipeline, mem Memory, opts ...Opt) *Script {
	s := &Script{
		L:   lua.NewState(),
		pl:  pl,
		mem: mem,
		log: log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.install()
	return s
}

// Close releases the Lua state.
func (s *Script) Close() {
	s.L.Close()
}

// Load reads and runs the scene at path, which may be compressed or
// archived.
func (s *Script) Load(path string) error {
	src, err := utils.LoadFile(path)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	return s.Run(utils.InnerName(path), src)
}

// Run runs src as a chunk called name.
func (s *Script) Run(name string, src []byte) error {
	fn, err := s.L.Load(bytes.NewReader(src), name)
	if err != nil {
		return fmt.Errorf("compile %s: %w", name, err)
	}
	s.L.Push(fn)
	if err := s.L.PCall(0, lua.MultRet, nil); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	return nil
}

// HasFrame reports whether the scene defines frame(n).
func (s *Script) HasFrame() bool {
	return s.L.GetGlobal("frame").Type() == lua.LTFunction
}

// Frame calls the frame function of the scene with n.
func (s *Script) Frame(n int) error {
	fn := s.L.GetGlobal("frame")
	if fn.Type() != lua.LTFunction {
		return ErrNoFrame
	}
	if err := s.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, lua.LNumber(n)); err != nil {
		return fmt.Errorf("frame %d: %w", n, err)
	}
	return nil
}

func (s *Script) install() {
	L := s.L
	reg := L.NewTable()
	for name, addr := range registers {
		L.SetField(reg, name, lua.LNumber(addr))
	}
	L.SetGlobal("reg", reg)
	L.SetGlobal("ENGINE_A", lua.LNumber(types.EngineA))
	L.SetGlobal("ENGINE_B", lua.LNumber(types.EngineB))

	for name, fn := range map[string]lua.LGFunction{
		"write16":    s.write16,
		"write32":    s.write32,
		"read16":     s.read16,
		"read32":     s.read32,
		"gx":         s.gx,
		"vtx":        s.vtx,
		"translate":  s.vector(fifo.MtxTrans),
		"scale":      s.vector(fifo.MtxScale),
		"color":      s.color,
		"rgb":        rgb,
		"fx":         fx,
		"palette":    s.palette,
		"bg16":       s.vram(s.mem.WriteBG16),
		"obj16":      s.vram(s.mem.WriteOBJ16),
		"oam":        s.vram(s.mem.WriteOAM),
		"texture16":  s.texture(s.mem.WriteTexture16),
		"texpalette": s.texture(s.mem.WriteTexturePalette),
		"log":        s.print,
	} {
		L.SetGlobal(name, L.NewFunction(fn))
	}
}

func word(L *lua.LState, n int) uint32 {
	return uint32(L.CheckInt64(n))
}

func toFixed(v float64, frac uint) int32 {
	return int32(v * float64(int32(1)<<frac))
}

func (s *Script) write16(L *lua.LState) int {
	s.pl.Write16(word(L, 1), uint16(word(L, 2)))
	return 0
}

func (s *Script) write32(L *lua.LState) int {
	s.pl.Write32(word(L, 1), word(L, 2))
	return 0
}

func (s *Script) read16(L *lua.LState) int {
	L.Push(lua.LNumber(s.pl.Read16(word(L, 1))))
	return 1
}

func (s *Script) read32(L *lua.LState) int {
	L.Push(lua.LNumber(s.pl.Read32(word(L, 1))))
	return 1
}

// submit queues op and its parameters through the packed port.
func (s *Script) submit(L *lua.LState, op fifo.Opcode, params ...uint32) {
	if len(params) != op.Params() {
		L.RaiseError("%v takes %d parameters, got %d", op, op.Params(), len(params))
	}
	if err := s.pl.WriteFIFO(uint32(op)); err != nil {
		L.RaiseError("%v: %v", op, err)
	}
	for _, p := range params {
		if err := s.pl.WriteFIFO(p); err != nil {
			L.RaiseError("%v: %v", op, err)
		}
	}
}

func (s *Script) gx(L *lua.LState) int {
	var op fifo.Opcode
	switch v := L.Get(1).(type) {
	case lua.LString:
		o, ok := fifo.Lookup(string(v))
		if !ok {
			L.ArgError(1, "unknown command "+string(v))
		}
		op = o
	case lua.LNumber:
		op = fifo.Opcode(v)
	default:
		L.ArgError(1, "command name or number expected")
	}
	params := make([]uint32, 0, L.GetTop()-1)
	for i := 2; i <= L.GetTop(); i++ {
		params = append(params, word(L, i))
	}
	s.submit(L, op, params...)
	return 0
}

func (s *Script) vtx(L *lua.LState) int {
	x := uint16(toFixed(float64(L.CheckNumber(1)), 12))
	y := uint16(toFixed(float64(L.CheckNumber(2)), 12))
	z := uint16(toFixed(float64(L.OptNumber(3, 0)), 12))
	s.submit(L, fifo.Vtx16, uint32(x)|uint32(y)<<16, uint32(z))
	return 0
}

func (s *Script) vector(op fifo.Opcode) lua.LGFunction {
	return func(L *lua.LState) int {
		var params [3]uint32
		for i := range params {
			params[i] = uint32(toFixed(float64(L.CheckNumber(i+1)), 12))
		}
		s.submit(L, op, params[:]...)
		return 0
	}
}

func channels(L *lua.LState) uint16 {
	r := utils.Clamp(0, L.CheckInt(1), 31)
	g := utils.Clamp(0, L.CheckInt(2), 31)
	b := utils.Clamp(0, L.CheckInt(3), 31)
	return uint16(r | g<<5 | b<<10)
}

func (s *Script) color(L *lua.LState) int {
	s.submit(L, fifo.Color, uint32(channels(L)))
	return 0
}

func rgb(L *lua.LState) int {
	L.Push(lua.LNumber(channels(L)))
	return 1
}

func fx(L *lua.LState) int {
	L.Push(lua.LNumber(toFixed(float64(L.CheckNumber(1)), 12)))
	return 1
}

func engine(L *lua.LState, n int) types.Engine {
	e := L.CheckInt(n)
	if e != int(types.EngineA) && e != int(types.EngineB) {
		L.ArgError(n, "engine must be ENGINE_A or ENGINE_B")
	}
	return types.Engine(e)
}

func (s *Script) palette(L *lua.LState) int {
	s.mem.SetPalette(engine(L, 1), L.CheckInt(2), uint16(word(L, 3)))
	return 0
}

func (s *Script) vram(write func(types.Engine, uint32, uint16)) lua.LGFunction {
	return func(L *lua.LState) int {
		write(engine(L, 1), word(L, 2), uint16(word(L, 3)))
		return 0
	}
}

func (s *Script) texture(write func(uint32, uint16)) lua.LGFunction {
	return func(L *lua.LState) int {
		write(word(L, 1), uint16(word(L, 2)))
		return 0
	}
}

func (s *Script) print(L *lua.LState) int {
	s.log.Infof("script: %s", L.CheckString(1))
	return 0
}

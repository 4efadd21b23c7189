// Package gx implements the geometry engine: the command processor,
// matrix stacks, vertex and polygon assembly, clipping and the double
// buffered vertex and polygon RAM read by the rasterizer.
package gx

import (
	"errors"

	"github.com/thelolagemann/gomeds/internal/gx/fifo"
	"github.com/thelolagemann/gomeds/internal/types"
	"github.com/thelolagemann/gomeds/pkg/log"
)

// Matrix modes selected by MTX_MODE.
const (
	ModeProjection uint8 = iota
	ModePosition
	ModePositionVector
	ModeTexture
)

// Primitive types selected by BEGIN_VTXS.
const (
	Triangles uint8 = iota
	Quads
	TriangleStrip
	QuadStrip
)

// Engine is the geometry engine.
type Engine struct {
	queue   *fifo.Queue
	decoder *fifo.Decoder

	// matrices
	mode                                    uint8
	projection, position, direction, tex    Matrix
	projStack, posStack, dirStack, texStack stack
	clip                                    Matrix
	clipDirty                               bool

	// vertex state
	colour       [3]int32
	rawTexCoord  [2]int32
	texCoord     [2]int32
	last         [3]int32
	lights       [4]light
	diffuse      [3]int32
	ambient      [3]int32
	specular     [3]int32
	emission     [3]int32
	shininess    [128]uint8
	useShininess bool

	// polygon state
	pendingAttr PolygonAttr
	attr        PolygonAttr
	texParam    TexImageParam
	paletteBase uint32
	viewport    Viewport
	primitive   uint8
	inRun       bool
	run         [4]Vertex
	runLen      int
	odd         bool

	// scratch space for clipping
	clipIn, clipOut clipScratch

	buffers     [2]Buffer
	geometry    int
	swapPending bool
	swapParam   uint32
	overflowed  bool

	// bus writes refused while a swap is pending, in arrival order
	held []heldWrite

	credit int

	Status       Status
	Render       RenderState
	posResult    [4]int32
	vecResult    [3]int16
	lastPolygons int
	lastVertices int

	log log.Logger
}

// Opt configures an Engine.
type Opt func(e *Engine)

// WithLogger sets the logger used for protocol and capacity warnings.
func WithLogger(l log.Logger) Opt {
	return func(e *Engine) {
		e.log = l
	}
}

// New returns a geometry engine in its power-on state.
func New(opts ...Opt) *Engine {
	e := &Engine{
		queue:     fifo.NewQueue(),
		projStack: newStack(1),
		posStack:  newStack(32),
		dirStack:  newStack(32),
		texStack:  newStack(1),
		buffers:   [2]Buffer{newBuffer(), newBuffer()},
		log:       log.NewNullLogger(),
	}
	e.decoder = fifo.NewDecoder(e.queue)
	e.projection, e.position, e.direction, e.tex = Identity(), Identity(), Identity(), Identity()
	e.clipDirty = true
	e.viewport = Viewport{X1: 0, Y1: 0, X2: types.ScreenWidth - 1, Y2: types.ScreenHeight - 1}

	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Queue returns the command queue, for status observers.
func (e *Engine) Queue() *fifo.Queue {
	return e.queue
}

// WriteFIFO writes a word to the packed command port. It returns
// fifo.ErrQueueFull without consuming the word when the queue is full.
func (e *Engine) WriteFIFO(word uint32) error {
	return e.decoder.Write(word)
}

// WriteFIFODirect writes a word to a direct command port.
func (e *Engine) WriteFIFODirect(address types.Address, word uint32) error {
	return e.decoder.WriteDirect(address, word)
}

// Submit writes a word to the packed command port, executing queued
// commands out of budget while the queue is full, the way the bus stalls
// the CPU. It only fails if the queue cannot make progress because a
// buffer swap is pending.
func (e *Engine) Submit(word uint32) error {
	return e.stalled(func() error { return e.WriteFIFO(word) })
}

// SubmitDirect is Submit for the direct command ports.
func (e *Engine) SubmitDirect(address types.Address, word uint32) error {
	return e.stalled(func() error { return e.WriteFIFODirect(address, word) })
}

type heldWrite struct {
	address types.Address
	word    uint32
}

// Post writes a word arriving over the bus to address, which is either
// GXFIFO or a direct command port. A word the queue cannot take while a
// swap is pending is held, together with every word after it, and
// replayed in order once the swap has taken place.
func (e *Engine) Post(address types.Address, word uint32) {
	if len(e.held) == 0 {
		err := e.submitAt(address, word)
		if err == nil {
			return
		}
		if !errors.Is(err, fifo.ErrQueueFull) {
			e.log.Errorf("gx: dropped write %08X to %08X: %v", word, address, err)
			return
		}
	}
	e.held = append(e.held, heldWrite{address, word})
}

// Held returns the number of bus writes waiting for a buffer swap.
func (e *Engine) Held() int {
	return len(e.held)
}

func (e *Engine) submitAt(address types.Address, word uint32) error {
	if address >= types.GXFIFO && address <= types.GXFIFO+0x3C {
		return e.Submit(word)
	}
	return e.SubmitDirect(address, word)
}

// release replays held writes until the queue refuses one again.
func (e *Engine) release() {
	for len(e.held) > 0 {
		w := e.held[0]
		if err := e.submitAt(w.address, w.word); err != nil {
			if errors.Is(err, fifo.ErrQueueFull) {
				return
			}
			e.log.Errorf("gx: dropped write %08X to %08X: %v", w.word, w.address, err)
		}
		e.held = e.held[1:]
	}
	e.held = nil
}

func (e *Engine) stalled(write func() error) error {
	for {
		err := write()
		if !errors.Is(err, fifo.ErrQueueFull) {
			return err
		}
		if !e.step() {
			return err
		}
	}
}

// step executes a single command regardless of the budget, charging its
// cost as debt.
func (e *Engine) step() bool {
	if e.swapPending {
		return false
	}
	cmd, ok := e.queue.Next()
	if !ok {
		return false
	}
	e.credit -= cmd.Op.Cycles()
	e.execute(&cmd)
	return true
}

// Run grants the engine budget cycles. Commands execute in order while
// credit remains; a command that straddles the end of the budget still
// completes and its overrun is carried into the next call. Credit left
// when the queue runs dry is dropped, and nothing runs while a buffer
// swap is waiting for the end of the frame.
func (e *Engine) Run(budget int) {
	if e.swapPending {
		return
	}
	e.credit += budget
	for e.credit > 0 {
		if !e.step() {
			if e.credit > 0 {
				e.credit = 0
			}
			return
		}
	}
}

// SwapPending reports whether SWAP_BUFFERS is waiting for the end of
// the frame.
func (e *Engine) SwapPending() bool {
	return e.swapPending
}

// Busy reports whether the engine has queued work or a pending swap.
func (e *Engine) Busy() bool {
	return !e.queue.Empty() || e.swapPending || len(e.held) > 0
}

// EndOfFrame honours a pending buffer swap: the geometry buffer becomes
// the render buffer and the new geometry buffer starts empty. It reports
// whether a swap took place.
func (e *Engine) EndOfFrame() bool {
	if !e.swapPending {
		return false
	}
	g := &e.buffers[e.geometry]
	g.ManualSort = e.swapParam&1 != 0
	g.WBuffer = e.swapParam&2 != 0
	e.lastPolygons, e.lastVertices = len(g.Polygons), len(g.Vertices)

	e.geometry ^= 1
	e.buffers[e.geometry].reset()
	e.swapPending = false
	e.overflowed = false
	e.release()
	return true
}

// Geometry returns the buffer commands are currently writing.
func (e *Engine) Geometry() *Buffer {
	return &e.buffers[e.geometry]
}

// RenderBuffer returns the buffer the rasterizer reads.
func (e *Engine) RenderBuffer() *Buffer {
	return &e.buffers[e.geometry^1]
}

func (e *Engine) execute(cmd *fifo.Command) {
	p := cmd.Params[:cmd.N]
	switch cmd.Op {
	case fifo.Nop:
	case fifo.MtxMode:
		e.mode = uint8(cmd.Param(0) & 3)
	case fifo.MtxPush:
		e.push()
	case fifo.MtxPop:
		e.pop(cmd.Param(0))
	case fifo.MtxStore:
		e.store(cmd.Param(0))
	case fifo.MtxRestore:
		e.restore(cmd.Param(0))
	case fifo.MtxIdentity:
		e.load(Identity())
	case fifo.MtxLoad4x4:
		e.load(load4x4(p))
	case fifo.MtxLoad4x3:
		e.load(load4x3(p))
	case fifo.MtxMult4x4:
		e.mult(load4x4(p))
	case fifo.MtxMult4x3:
		e.mult(load4x3(p))
	case fifo.MtxMult3x3:
		e.mult(load3x3(p))
	case fifo.MtxScale:
		e.scale(int32(p[0]), int32(p[1]), int32(p[2]))
	case fifo.MtxTrans:
		e.translate(int32(p[0]), int32(p[1]), int32(p[2]))
	case fifo.Color:
		e.colour = rgb6(uint16(cmd.Param(0)))
	case fifo.Normal:
		e.normal(cmd.Param(0))
	case fifo.TexCoord:
		e.texCoordinate(cmd.Param(0))
	case fifo.Vtx16:
		e.vertex(int32(int16(p[0])), int32(int16(p[0]>>16)), int32(int16(p[1])))
	case fifo.Vtx10:
		x, y, z := unpack10(cmd.Param(0))
		e.vertex(x<<6, y<<6, z<<6)
	case fifo.VtxXY:
		e.vertex(int32(int16(cmd.Param(0))), int32(int16(cmd.Param(0)>>16)), e.last[2])
	case fifo.VtxXZ:
		e.vertex(int32(int16(cmd.Param(0))), e.last[1], int32(int16(cmd.Param(0)>>16)))
	case fifo.VtxYZ:
		e.vertex(e.last[0], int32(int16(cmd.Param(0))), int32(int16(cmd.Param(0)>>16)))
	case fifo.VtxDiff:
		x, y, z := unpack10(cmd.Param(0))
		e.vertex(int32(int16(e.last[0]+x)), int32(int16(e.last[1]+y)), int32(int16(e.last[2]+z)))
	case fifo.PolygonAttr:
		e.pendingAttr = PolygonAttr(cmd.Param(0))
	case fifo.TexImage:
		e.texParam = TexImageParam(cmd.Param(0))
	case fifo.PlttBase:
		e.paletteBase = cmd.Param(0) & 0x1FFF
	case fifo.DifAmb:
		e.difAmb(cmd.Param(0))
	case fifo.SpeEmi:
		e.speEmi(cmd.Param(0))
	case fifo.LightVector:
		e.lightVector(cmd.Param(0))
	case fifo.LightColor:
		e.lightColour(cmd.Param(0))
	case fifo.Shininess:
		e.setShininess(p)
	case fifo.BeginVtxs:
		e.begin(uint8(cmd.Param(0) & 3))
	case fifo.EndVtxs:
	case fifo.SwapBuffers:
		e.endRun()
		e.swapParam = cmd.Param(0) & 3
		e.swapPending = true
	case fifo.Viewport:
		e.viewport.Write(cmd.Param(0))
	case fifo.BoxTest:
		e.boxTest(p)
	case fifo.PosTest:
		e.posTest(p)
	case fifo.VecTest:
		e.vecTest(cmd.Param(0))
	default:
		e.log.Debugf("gx: ignoring unknown command %s", cmd.Op)
	}
}

// unpack10 splits a word into three signed 10-bit fields.
func unpack10(v uint32) (x, y, z int32) {
	x = int32(v<<22) >> 22
	y = int32(v<<12) >> 22
	z = int32(v<<2) >> 22
	return
}

// rgb6 expands a BGR555 colour to three 6-bit channels.
func rgb6(c uint16) [3]int32 {
	var out [3]int32
	for i := 0; i < 3; i++ {
		v := int32(c>>(5*i)) & 0x1F
		out[i] = v * 2
		if v != 0 {
			out[i]++
		}
	}
	return out
}

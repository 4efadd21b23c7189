package gx

import (
	"github.com/thelolagemann/gomeds/internal/io"
	"github.com/thelolagemann/gomeds/internal/types"
	"github.com/thelolagemann/gomeds/pkg/bits"
	"github.com/thelolagemann/gomeds/pkg/utils"
)

// renderLines is reported by RDLINES_COUNT; the whole frame is rendered
// ahead of the scanline compositor, so the buffer never runs low.
const renderLines = 46

// ReadStatus packs GXSTAT.
func (e *Engine) ReadStatus() uint32 {
	return bits.From[uint32](e.Status.BoxResult, 1) |
		uint32(e.posStack.sp&0x1F)<<8 |
		uint32(e.projStack.sp&1)<<13 |
		bits.From[uint32](e.Status.StackError, 15) |
		uint32(utils.Min(e.queue.Count(), 256))<<16 |
		bits.From[uint32](e.queue.LessThanHalf(), 25) |
		bits.From[uint32](e.queue.Empty(), 26) |
		bits.From[uint32](e.Busy(), 27) |
		uint32(e.Status.IRQMode&3)<<30
}

// WriteStatus handles a write to GXSTAT. Writing bit 15 acknowledges a
// stack error and resets the projection stack.
func (e *Engine) WriteStatus(value uint32) {
	if value&(1<<15) != 0 {
		e.Status.StackError = false
		e.projStack.reset()
	}
	e.Status.IRQMode = uint8(value >> 30)
}

// RAMCount returns the polygon and vertex counts of the last swapped
// frame.
func (e *Engine) RAMCount() uint32 {
	return uint32(e.lastPolygons&0xFFF) | uint32(e.lastVertices&0x1FFF)<<16
}

// Attach reserves the 3D engine registers and command ports on b.
func (e *Engine) Attach(b *io.Bus) {
	r := &e.Render
	b.ReserveAddress(types.DISP3DCNT, r.Control.Read, r.Control.Write)
	b.ReserveAddress(types.RDLINESCOUNT, func() uint16 { return renderLines }, nil)
	for i := 0; i < 8; i++ {
		i := i
		b.ReserveAddress(types.EDGECOLOR+types.Address(i*2), nil, func(v uint16) {
			r.EdgeColours[i] = v & 0x7FFF
		})
	}
	b.ReserveAddress(types.ALPHATESTREF, nil, func(v uint16) { r.AlphaTestRef = uint8(v & 0x1F) })
	b.ReserveWords(types.CLEARCOLOR, types.CLEARCOLOR, func(types.Address) uint32 {
		return r.ReadClearColour()
	}, func(_ types.Address, v uint32) {
		r.WriteClearColour(v)
	})
	b.ReserveAddress(types.CLEARDEPTH, nil, func(v uint16) { r.ClearDepth = v & 0x7FFF })
	b.ReserveAddress(types.CLRIMAGEOFFSET, nil, func(v uint16) {
		r.ClearOffsetX, r.ClearOffsetY = uint8(v), uint8(v>>8)
	})
	b.ReserveWords(types.FOGCOLOR, types.FOGCOLOR, func(types.Address) uint32 {
		return uint32(r.FogColour) | uint32(r.FogAlpha)<<16
	}, func(_ types.Address, v uint32) {
		r.WriteFogColour(v)
	})
	b.ReserveAddress(types.FOGOFFSET, nil, func(v uint16) { r.FogOffset = v & 0x7FFF })
	for i := 0; i < 16; i++ {
		i := i
		b.ReserveAddress(types.FOGTABLE+types.Address(i*2), nil, func(v uint16) {
			r.FogTable[i*2] = uint8(v & 0x7F)
			r.FogTable[i*2+1] = uint8(v >> 8 & 0x7F)
		})
	}
	for i := 0; i < 32; i++ {
		i := i
		b.ReserveAddress(types.TOONTABLE+types.Address(i*2), nil, func(v uint16) {
			r.ToonTable[i] = v & 0x7FFF
		})
	}

	b.ReserveWords(types.GXFIFO, types.GXFIFO+0x3C, nil, e.Post)
	b.ReserveWords(types.GXCMDBASE, types.GXCMDEND, nil, e.Post)

	b.ReserveAddress(types.GXSTAT, func() uint16 { return utils.Lo16(e.ReadStatus()) }, func(v uint16) {
		if v&(1<<15) != 0 {
			e.Status.StackError = false
			e.projStack.reset()
		}
	})
	b.ReserveAddress(types.GXSTAT+2, func() uint16 { return utils.Hi16(e.ReadStatus()) }, func(v uint16) {
		e.Status.IRQMode = uint8(v >> 14)
	})
	b.ReserveWords(types.RAMCOUNT, types.RAMCOUNT, func(types.Address) uint32 { return e.RAMCount() }, nil)
	b.ReserveAddress(types.DISP1DOTDEPTH, nil, func(v uint16) { r.OneDotDepth = v & 0x7FFF })
	b.ReserveWords(types.POSRESULT, types.POSRESULT+0xC, func(a types.Address) uint32 {
		return e.PosResult(int(a-types.POSRESULT) / 4)
	}, nil)
	for i := 0; i < 3; i++ {
		i := i
		b.ReserveAddress(types.VECRESULT+types.Address(i*2), func() uint16 { return e.VecResult(i) }, nil)
	}
	b.ReserveWords(types.CLIPMTXRESULT, types.CLIPMTXRESULT+0x3C, func(a types.Address) uint32 {
		return e.ClipMatrixResult(int(a-types.CLIPMTXRESULT) / 4)
	}, nil)
	b.ReserveWords(types.VECMTXRESULT, types.VECMTXRESULT+0x20, func(a types.Address) uint32 {
		return e.DirectionMatrixResult(int(a-types.VECMTXRESULT) / 4)
	}, nil)
}

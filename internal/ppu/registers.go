package ppu

import (
	"github.com/thelolagemann/gomeds/internal/io"
	"github.com/thelolagemann/gomeds/internal/types"
	"github.com/thelolagemann/gomeds/pkg/utils"
)

// Attach reserves the engine's registers on b. Engine B registers are
// mirrored at +0x1000; capture and the main memory display FIFO only
// exist on engine A.
func (p *PPU) Attach(b *io.Bus) {
	var base types.Address
	if p.engine == types.EngineB {
		base = types.EngineBOffset
	}
	at := func(a types.Address) types.Address { return a + base }

	// DISPCNT
	b.ReserveAddress(at(types.DISPCNT), func() uint16 {
		return utils.Lo16(p.Controller.Read())
	}, func(v uint16) {
		p.Controller.Write(utils.MergeHalf(p.Controller.Read(), v, false))
	})
	b.ReserveAddress(at(types.DISPCNT+2), func() uint16 {
		return utils.Hi16(p.Controller.Read())
	}, func(v uint16) {
		p.Controller.Write(utils.MergeHalf(p.Controller.Read(), v, true))
	})

	for i := range p.Backgrounds {
		bg := &p.Backgrounds[i]
		off := types.Address(i * 2)
		b.ReserveAddress(at(types.BG0CNT+off), bg.Control.Read, bg.Control.Write)
		b.ReserveAddress(at(types.BG0HOFS+off*2), nil, bg.WriteHOffset)
		b.ReserveAddress(at(types.BG0VOFS+off*2), nil, bg.WriteVOffset)
	}

	// BG2/BG3 affine parameters and reference points
	for i := 2; i < 4; i++ {
		a := &p.Backgrounds[i].Affine
		start := types.BG2PA + types.Address(i-2)*0x10
		for j := 0; j < 4; j++ {
			j := j
			b.ReserveAddress(at(start+types.Address(j*2)), nil, func(v uint16) {
				a.WriteParam(j, v)
			})
		}
		b.ReserveAddress(at(start+8), nil, func(v uint16) {
			a.WriteX(utils.MergeHalf(a.ReadX(), v, false), !p.inVisible())
		})
		b.ReserveAddress(at(start+10), nil, func(v uint16) {
			a.WriteX(utils.MergeHalf(a.ReadX(), v, true), !p.inVisible())
		})
		b.ReserveAddress(at(start+12), nil, func(v uint16) {
			a.WriteY(utils.MergeHalf(a.ReadY(), v, false), !p.inVisible())
		})
		b.ReserveAddress(at(start+14), nil, func(v uint16) {
			a.WriteY(utils.MergeHalf(a.ReadY(), v, true), !p.inVisible())
		})
	}

	b.ReserveAddress(at(types.WIN0H), nil, p.Windows[0].WriteH)
	b.ReserveAddress(at(types.WIN1H), nil, p.Windows[1].WriteH)
	b.ReserveAddress(at(types.WIN0V), nil, p.Windows[0].WriteV)
	b.ReserveAddress(at(types.WIN1V), nil, p.Windows[1].WriteV)
	b.ReserveAddress(at(types.WININ), p.WindowControl.ReadIn, p.WindowControl.WriteIn)
	b.ReserveAddress(at(types.WINOUT), p.WindowControl.ReadOut, p.WindowControl.WriteOut)
	b.ReserveAddress(at(types.MOSAIC), nil, func(v uint16) { p.Mosaic = v })

	b.ReserveAddress(at(types.BLDCNT), p.Blend.Read, p.Blend.Write)
	b.ReserveAddress(at(types.BLDALPHA), p.Blend.ReadAlpha, p.Blend.WriteAlpha)
	b.ReserveAddress(at(types.BLDY), nil, p.Blend.WriteBrightness)

	b.ReserveAddress(at(types.MASTERBRIGHT), p.Brightness.Read, p.Brightness.Write)

	if p.engine != types.EngineA {
		return
	}
	b.ReserveWords(types.DISPCAPCNT, types.DISPCAPCNT, func(types.Address) uint32 {
		return p.Capture.Read()
	}, func(_ types.Address, v uint32) {
		p.Capture.Write(v)
	})
	b.ReserveWords(types.DISPMMEMFIFO, types.DISPMMEMFIFO, nil, func(_ types.Address, v uint32) {
		p.WriteMemoryFIFO(v)
	})
}

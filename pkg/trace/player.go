package trace

import (
	"fmt"

	"github.com/thelolagemann/gomeds/internal/types"
)

// Pipeline is the register and command surface records are replayed to.
type Pipeline interface {
	Write16(address types.Address, value uint16)
	Write32(address types.Address, value uint32)
	WriteFIFO(word uint32) error
	WriteFIFODirect(address types.Address, word uint32) error
}

// Memory receives the VRAM writes of a trace.
type Memory interface {
	SetPalette(e types.Engine, index int, colour uint16)
	WriteBG16(e types.Engine, offset uint32, v uint16)
	WriteOBJ16(e types.Engine, offset uint32, v uint16)
	WriteOAM(e types.Engine, offset uint32, v uint16)
	WriteTexture16(offset uint32, v uint16)
	WriteTexturePalette(offset uint32, v uint16)
}

// Player replays a trace one frame at a time.
type Player struct {
	records []Record
	pos     int
	frame   int
}

// NewPlayer returns a Player positioned at the start of records.
func NewPlayer(records []Record) *Player {
	return &Player{records: records}
}

// Done reports whether every record was replayed.
func (p *Player) Done() bool {
	return p.pos >= len(p.records)
}

// Rewind restarts the trace.
func (p *Player) Rewind() {
	p.pos, p.frame = 0, 0
}

// Frame applies the records of the next frame, stopping after a FrameEnd
// record or at the end of the trace.
func (p *Player) Frame(pl Pipeline, m Memory) error {
	for p.pos < len(p.records) {
		r := p.records[p.pos]
		p.pos++
		if r.Kind == FrameEnd {
			break
		}
		if err := Apply(r, pl, m); err != nil {
			return fmt.Errorf("frame %d: %v: %w", p.frame, r, err)
		}
	}
	p.frame++
	return nil
}

// Apply performs the write r describes.
func Apply(r Record, pl Pipeline, m Memory) error {
	switch r.Kind {
	case Reg16:
		pl.Write16(r.Address, uint16(r.Value))
	case Reg32:
		pl.Write32(r.Address, r.Value)
	case FIFO:
		return pl.WriteFIFO(r.Value)
	case FIFODirect:
		return pl.WriteFIFODirect(r.Address, r.Value)
	case Palette:
		m.SetPalette(r.Engine(), int(r.Offset()), uint16(r.Value))
	case BG:
		m.WriteBG16(r.Engine(), r.Offset(), uint16(r.Value))
	case OBJ:
		m.WriteOBJ16(r.Engine(), r.Offset(), uint16(r.Value))
	case OAM:
		m.WriteOAM(r.Engine(), r.Offset(), uint16(r.Value))
	case Texture:
		m.WriteTexture16(r.Offset(), uint16(r.Value))
	case TexturePalette:
		m.WriteTexturePalette(r.Offset(), uint16(r.Value))
	}
	return nil
}

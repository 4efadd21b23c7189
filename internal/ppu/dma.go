package ppu

import (
	"github.com/thelolagemann/gomeds/internal/ppu/palette"
	"github.com/thelolagemann/gomeds/pkg/utils"
)

// fifoPixels is the capacity of the main memory display FIFO, 16 words
// of two pixels each.
const fifoPixels = 32

// displayFIFO streams pixels from main memory to the screen in display
// mode 3. The host refills it through DISPMMEMFIFO, usually with a main
// memory display DMA started by request.
type displayFIFO struct {
	pixels  *utils.FIFO[uint16]
	request func()
	last    uint16
}

func newDisplayFIFO() *displayFIFO {
	return &displayFIFO{pixels: utils.NewFIFO[uint16](fifoPixels)}
}

// push queues the two pixels of a word, dropping them when full.
func (f *displayFIFO) push(word uint32) {
	f.pixels.Push(utils.Lo16(word))
	f.pixels.Push(utils.Hi16(word))
}

// pop returns the next pixel. When the FIFO is half empty a refill is
// requested; an underrun repeats the last pixel.
func (f *displayFIFO) pop() palette.Colour {
	if f.pixels.Size <= fifoPixels/2 && f.request != nil {
		f.request()
	}
	if v, ok := f.pixels.Pop(); ok {
		f.last = v
	}
	return palette.Colour(f.last)
}

// WriteMemoryFIFO queues two pixels into the main memory display FIFO.
func (p *PPU) WriteMemoryFIFO(word uint32) {
	p.fifo.push(word)
}

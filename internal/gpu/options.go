package gpu

import (
	"github.com/thelolagemann/gomeds/internal/interrupts"
	"github.com/thelolagemann/gomeds/pkg/log"
)

// Opt is a function that modifies a Pipeline instance.
type Opt func(p *Pipeline)

// WithLogger sets the logger shared by every component.
func WithLogger(l log.Logger) Opt {
	return func(p *Pipeline) {
		p.log = l
	}
}

// WithIRQ sets the function used to request interrupts.
func WithIRQ(fn func(interrupts.Flag)) Opt {
	return func(p *Pipeline) {
		p.irq = fn
	}
}

// WithFIFODMA sets the function called when the geometry command FIFO
// drops below half full, which starts a geometry FIFO DMA on hardware.
func WithFIFODMA(fn func()) Opt {
	return func(p *Pipeline) {
		p.fifoDMA = fn
	}
}

// WithDisplayDMA sets the function called when the main memory display
// FIFO of engine A needs refilling.
func WithDisplayDMA(fn func()) Opt {
	return func(p *Pipeline) {
		p.displayDMA = fn
	}
}

// WithFrameSkip draws only one in every n+1 frames. Geometry is still
// processed for skipped frames.
func WithFrameSkip(n int) Opt {
	return func(p *Pipeline) {
		if n < 0 {
			n = 0
		}
		p.frameSkip = n
	}
}

// WithFrameLimiter paces RunFrame to the hardware refresh rate.
func WithFrameLimiter(enabled bool) Opt {
	return func(p *Pipeline) {
		p.limiter = enabled
	}
}

// WithGeometryBudget sets the number of cycles granted to the geometry
// engine per scanline.
func WithGeometryBudget(cycles int) Opt {
	return func(p *Pipeline) {
		if cycles > 0 {
			p.gxBudget = cycles
		}
	}
}

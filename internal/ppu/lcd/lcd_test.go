package lcd

import (
	"testing"

	"github.com/thelolagemann/gomeds/internal/types"
)

func TestController_RoundTrip(t *testing.T) {
	c := NewController(types.EngineA)
	for _, v := range []uint32{0, 0xFFFFFFFF, 0x00011F00, 0x8A5A1234} {
		c.Write(v)
		if got := c.Read(); got != v {
			t.Errorf("expected %#08x, got %#08x", v, got)
		}
	}
}

func TestController_EngineB(t *testing.T) {
	c := NewController(types.EngineB)
	c.Write(0xFFFFFFFF)
	if c.BG03D || c.VRAMBlock != 0 || c.CharBase != 0 || c.ScreenBase != 0 {
		t.Errorf("expected engine A only fields to stay clear")
	}
	if c.DisplayMode != DisplayGraphics {
		t.Errorf("expected display mode 1, got %s", c.DisplayMode)
	}
	if c.Is3D() {
		t.Errorf("engine B never shows the 3D layer")
	}
}

func TestController_Fields(t *testing.T) {
	c := NewController(types.EngineA)
	c.Write(3 | 1<<9 | 1<<14 | 2<<16 | 3<<18 | 2<<20 | 5<<24 | 7<<27)
	if c.BGMode != 3 || !c.BGEnabled[1] || !c.WindowEnabled[1] || c.DisplayMode != DisplayVRAM ||
		c.VRAMBlock != 3 || c.TileOBJBoundary != 2 || c.CharBase != 5 || c.ScreenBase != 7 {
		t.Errorf("unexpected decode: %+v", c)
	}
	if !c.WindowsEnabled() {
		t.Errorf("expected windows enabled")
	}
}

func TestStatus(t *testing.T) {
	var s Status
	s.Write(0xFFFF)
	if s.LYC != 0x1FF || !s.VBlankIRQ || !s.HBlankIRQ || !s.CoincidenceIRQ {
		t.Errorf("unexpected decode: %+v", s)
	}
	if got := s.Read(); got != 0xFFB8 {
		t.Errorf("expected read only flags clear, got %#04x", got)
	}
	s.Write(100 << 8)
	if s.Compare(99) {
		t.Errorf("unexpected match")
	}
	if !s.Compare(100) {
		t.Errorf("expected a rising match")
	}
	if s.Compare(100) {
		t.Errorf("expected the match to rise only once")
	}
}

func TestCapture(t *testing.T) {
	var c Capture
	c.Write(0xFFFFFFFF)
	if c.EVA != 16 || c.EVB != 16 || c.Source != CaptureBlend {
		t.Errorf("expected clamped fields, got %+v", c)
	}
	if got := c.Read(); got != 0xCF3F1010 {
		t.Errorf("expected 0xCF3F1010, got %#08x", got)
	}
	c.Write(1<<20 | 2<<18)
	if w, h := c.Dimensions(); w != 256 || h != 64 {
		t.Errorf("expected 256x64, got %dx%d", w, h)
	}
	if got := c.WriteAddress(1, 1); got != 0x10000+(256+1)*2 {
		t.Errorf("unexpected write address %#x", got)
	}
	c.Write(3 << 18)
	if got := c.WriteAddress(0, 0x80); got != (0x18000+0x80*128*2)&0x1FFFF {
		t.Errorf("expected the write address to wrap, got %#x", got)
	}
}

package interrupts

import "testing"

func TestService(t *testing.T) {
	s := NewService()
	s.Request(VBlankFlag)
	s.Request(GXFIFOFlag)
	s.Request(GXFIFOFlag)
	if s.HasInterrupts() {
		t.Errorf("expected nothing enabled")
	}
	s.Enable = GXFIFOFlag
	if !s.HasInterrupts() {
		t.Errorf("expected a pending GXFIFO interrupt")
	}
	s.Acknowledge(GXFIFOFlag)
	if s.Flag != VBlankFlag || s.HasInterrupts() {
		t.Errorf("unexpected flags %#x", s.Flag)
	}
	if s.Counts[GXFIFOFlag] != 2 {
		t.Errorf("expected 2 requests, got %d", s.Counts[GXFIFOFlag])
	}
}

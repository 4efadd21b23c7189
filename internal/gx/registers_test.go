package gx

import "testing"

func TestControl_RoundTrip(t *testing.T) {
	var c Control
	c.Write(0x4FFF)
	if got := c.Read(); got != 0x4FFF {
		t.Errorf("expected 0x4FFF, got %#x", got)
	}
	c.RAMOverflow = true
	c.Write(c.Read() &^ (1 << 13))
	if !c.RAMOverflow {
		t.Error("writing 0 must not acknowledge the overflow")
	}
}

func TestTexImageParam(t *testing.T) {
	p := TexImageParam(0x0010 | 1<<16 | 1<<19 | 3<<20 | 2<<23 | uint32(Tex16Colour)<<26 | 1<<29 | 2<<30)
	if p.Offset() != 0x80 || !p.RepeatS() || p.RepeatT() || !p.FlipT() {
		t.Errorf("unexpected decode of %#x", uint32(p))
	}
	if p.Width() != 64 || p.Height() != 32 || p.Format() != Tex16Colour || !p.Transparent0() || p.TransformMode() != 2 {
		t.Errorf("unexpected decode of %#x", uint32(p))
	}
}

func TestRenderState_ClearDepth(t *testing.T) {
	r := RenderState{ClearDepth: 0x7FFF}
	if r.ClearDepth24() != 0xFFFFFF {
		t.Errorf("expected max depth, got %#x", r.ClearDepth24())
	}
	r.ClearDepth = 0x4000
	if r.ClearDepth24() != 0x800000 {
		t.Errorf("unexpected depth %#x", r.ClearDepth24())
	}
}

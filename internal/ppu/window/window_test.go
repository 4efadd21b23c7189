package window

import "testing"

func TestRect_Wrap(t *testing.T) {
	var r Rect
	r.WriteH(200<<8 | 50)
	if !r.ContainsX(220) || !r.ContainsX(10) || r.ContainsX(50) || r.ContainsX(100) {
		t.Errorf("expected a wrapping window")
	}
	r.WriteV(10<<8 | 20)
	if !r.ContainsLine(10) || r.ContainsLine(20) || r.ContainsLine(9) {
		t.Errorf("unexpected vertical range")
	}
}

func TestControl_RoundTrip(t *testing.T) {
	var c Control
	c.WriteIn(0xFFFF)
	c.WriteOut(0x1234)
	if c.ReadIn() != 0x3F3F || c.ReadOut() != 0x1234 {
		t.Errorf("unexpected round trip %#04x %#04x", c.ReadIn(), c.ReadOut())
	}
}

func TestCompute(t *testing.T) {
	rects := [2]Rect{{X1: 10, X2: 20, Y1: 0, Y2: 100}, {X1: 15, X2: 30, Y1: 0, Y2: 100}}
	c := Control{Win0: MaskBG0, Win1: MaskBG1, Outside: MaskBG3, OBJWin: MaskOBJ}
	mask := make([]uint8, 256)
	objWin := make([]bool, 256)
	objWin[40] = true

	Compute(mask, 0, Enables{}, &rects, &c, objWin)
	for x, m := range mask {
		if m != MaskAll {
			t.Fatalf("x=%d: expected every layer with no windows, got %#x", x, m)
		}
	}

	Compute(mask, 50, Enables{Win0: true, Win1: true, OBJWin: true}, &rects, &c, objWin)
	tests := []struct {
		x    int
		want uint8
	}{
		{5, MaskBG3},
		{10, MaskBG0},
		{15, MaskBG0}, // window 0 has priority
		{20, MaskBG1},
		{30, MaskBG3},
		{40, MaskOBJ},
	}
	for _, tt := range tests {
		if mask[tt.x] != tt.want {
			t.Errorf("x=%d: expected %#x, got %#x", tt.x, tt.want, mask[tt.x])
		}
	}

	// outside the vertical range only the outside region applies
	Compute(mask, 150, Enables{Win0: true}, &rects, &c, objWin)
	if mask[12] != MaskBG3 {
		t.Errorf("expected outside below the window, got %#x", mask[12])
	}
}

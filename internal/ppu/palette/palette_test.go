package palette

import "testing"

func TestColour_ARGB(t *testing.T) {
	tests := []struct {
		c    Colour
		want uint32
	}{
		{0x0000, 0xFF000000},
		{0x7FFF, 0xFFF8F8F8},
		{0x801F, 0xFFF80000},
		{0x03E0, 0xFF00F800},
		{0x7C00, 0xFF0000F8},
	}
	for _, tt := range tests {
		if got := tt.c.ARGB(); got != tt.want {
			t.Errorf("%#04x: expected %#08x, got %#08x", uint16(tt.c), tt.want, got)
		}
	}
}

func TestBrightness(t *testing.T) {
	var b Brightness
	b.Write(1<<14 | 0x1F)
	if b.Factor != 16 || b.Mode != BrightnessUp {
		t.Errorf("unexpected decode %+v", b)
	}
	if got := b.Apply(RGB(0, 10, 31)); got != RGB(31, 31, 31) {
		t.Errorf("expected white, got %#04x", got)
	}
	b.Write(2<<14 | 8)
	if got := b.Apply(RGB(31, 10, 0)); got != RGB(16, 5, 0) {
		t.Errorf("expected half brightness, got %#04x", got)
	}
	b.Write(3<<14 | 8)
	if b.Mode != BrightnessOff || b.Read() != 3<<14|8 {
		t.Errorf("expected the reserved mode to read back without effect")
	}
	if got := b.Apply(RGB(31, 10, 0) | 0x8000); got != RGB(31, 10, 0) {
		t.Errorf("expected the colour unchanged, got %#04x", got)
	}
}

func TestMix(t *testing.T) {
	if got := Mix(RGB(31, 31, 31), RGB(31, 31, 31), 16, 16, 4); got != RGB(31, 31, 31) {
		t.Errorf("expected saturation at 31, got %#04x", got)
	}
	if got := Mix(RGB(20, 0, 0), RGB(0, 0, 20), 8, 8, 4); got != RGB(10, 0, 10) {
		t.Errorf("expected an even mix, got %#04x", got)
	}
}

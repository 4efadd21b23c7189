package utils

import (
	"bytes"
	"compress/gzip"
	"testing"
)

func TestClamp(t *testing.T) {
	if Clamp(0, 17, 16) != 16 {
		t.Errorf("expected 16")
	}
	if Clamp(0, -3, 16) != 0 {
		t.Errorf("expected 0")
	}
	if Clamp(0.0, 0.5, 1.0) != 0.5 {
		t.Errorf("expected 0.5")
	}
}

func TestFIFO(t *testing.T) {
	f := NewFIFO[int](3)
	for i := 1; i <= 3; i++ {
		if !f.Push(i) {
			t.Fatalf("push %d failed", i)
		}
	}
	if f.Push(4) {
		t.Fatal("expected push into full FIFO to fail")
	}
	if v, _ := f.Peek(); v != 1 {
		t.Errorf("expected peek 1, got %d", v)
	}
	for i := 1; i <= 3; i++ {
		v, ok := f.Pop()
		if !ok || v != i {
			t.Fatalf("expected %d, got %d (%v)", i, v, ok)
		}
	}
	if _, ok := f.Pop(); ok {
		t.Error("expected pop from empty FIFO to fail")
	}

	// wrap around
	f.Push(5)
	f.Push(6)
	f.Pop()
	f.Push(7)
	f.Push(8)
	if f.Size != 3 || !f.Full() {
		t.Errorf("expected full FIFO after wrap, size %d", f.Size)
	}
	f.Reset()
	if f.Size != 0 {
		t.Errorf("expected empty FIFO after reset")
	}
}

func TestDecompress(t *testing.T) {
	var b bytes.Buffer
	w := gzip.NewWriter(&b)
	w.Write([]byte("gx trace"))
	w.Close()

	out, err := Decompress("scene.gxt.gz", b.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "gx trace" {
		t.Errorf("unexpected payload %q", out)
	}

	raw, err := Decompress("scene.lua", []byte("x"))
	if err != nil || string(raw) != "x" {
		t.Errorf("expected passthrough, got %q %v", raw, err)
	}

	if InnerName("scene.gxt.gz") != "scene.gxt" {
		t.Errorf("unexpected inner name %q", InnerName("scene.gxt.gz"))
	}
}

func TestMergeHalf(t *testing.T) {
	if MergeHalf(0x11112222, 0xABCD, true) != 0xABCD2222 {
		t.Error("high merge failed")
	}
	if MergeHalf(0x11112222, 0xABCD, false) != 0x1111ABCD {
		t.Error("low merge failed")
	}
}

func TestFrameToImage(t *testing.T) {
	img := FrameToImage([]uint32{0xFF102030, 0x80405060}, 2, 1)
	if img.Pix[0] != 0x10 || img.Pix[1] != 0x20 || img.Pix[2] != 0x30 || img.Pix[3] != 0xFF {
		t.Errorf("unexpected first pixel %v", img.Pix[:4])
	}
	if img.Pix[7] != 0x80 {
		t.Errorf("unexpected alpha %d", img.Pix[7])
	}
}

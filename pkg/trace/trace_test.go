package trace

import (
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/thelolagemann/gomeds/internal/memory"
	"github.com/thelolagemann/gomeds/internal/types"
)

var scene = []Record{
	{Kind: Palette, Address: 1<<16 | 3, Value: 0x7C00},
	{Kind: Reg32, Address: types.DISPCNT, Value: 0x10000},
	{Kind: FIFO, Value: 0x11},
	{Kind: FrameEnd},
	{Kind: Reg16, Address: types.BLDY, Value: 8},
	{Kind: BG, Address: 0<<24 | 0x40, Value: 0x1234},
	{Kind: FrameEnd},
}

func TestDecode(t *testing.T) {
	data := Encode(scene)
	if string(data[:4]) != Magic || len(data) != 4+len(scene)*recordSize {
		t.Fatalf("unexpected encoding of %d bytes", len(data))
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, scene) {
		t.Errorf("expected %v, got %v", scene, got)
	}
}

func TestDecode_Errors(t *testing.T) {
	data := Encode(scene)
	if _, err := Decode([]byte("GXT0")); !errors.Is(err, ErrMagic) {
		t.Errorf("expected ErrMagic, got %v", err)
	}
	if _, err := Decode(data[:len(data)-1]); !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
	bad := Encode([]Record{{Kind: kinds}})
	if _, err := Decode(bad); err == nil {
		t.Error("expected an error for an unknown kind")
	}
}

func TestLoad_Compressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.gxt.gz")
	var b bytes.Buffer
	zw := gzip.NewWriter(&b)
	_, _ = zw.Write(Encode(scene))
	_ = zw.Close()
	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(scene) {
		t.Errorf("expected %d records, got %d", len(scene), len(got))
	}
}

type write struct {
	kind    Kind
	address uint32
	value   uint32
}

type recorder struct {
	writes []write
}

func (r *recorder) Write16(a types.Address, v uint16) {
	r.writes = append(r.writes, write{Reg16, a, uint32(v)})
}

func (r *recorder) Write32(a types.Address, v uint32) {
	r.writes = append(r.writes, write{Reg32, a, v})
}

func (r *recorder) WriteFIFO(w uint32) error {
	r.writes = append(r.writes, write{FIFO, 0, w})
	return nil
}

func (r *recorder) WriteFIFODirect(a types.Address, w uint32) error {
	r.writes = append(r.writes, write{FIFODirect, a, w})
	return nil
}

func TestPlayer(t *testing.T) {
	p := NewPlayer(scene)
	rec := &recorder{}
	vram := memory.NewFlat()

	if err := p.Frame(rec, vram); err != nil {
		t.Fatal(err)
	}
	want := []write{{Reg32, types.DISPCNT, 0x10000}, {FIFO, 0, 0x11}}
	if !reflect.DeepEqual(rec.writes, want) {
		t.Errorf("frame 0: expected %v, got %v", want, rec.writes)
	}
	if c := vram.Palette(types.EngineB, 3); c != 0x7C00 {
		t.Errorf("palette write not applied, got %#04x", c)
	}
	if p.Done() {
		t.Fatal("trace ended early")
	}

	rec.writes = nil
	if err := p.Frame(rec, vram); err != nil {
		t.Fatal(err)
	}
	if len(rec.writes) != 1 || rec.writes[0].address != types.BLDY {
		t.Errorf("frame 1: unexpected writes %v", rec.writes)
	}
	if v := vram.BG(types.EngineA, 0x40); v != 0x34 {
		t.Errorf("bg write not applied, got %#02x", v)
	}
	if !p.Done() {
		t.Error("expected the trace to be done")
	}

	p.Rewind()
	if p.Done() {
		t.Error("rewind did not restart the trace")
	}
}
